// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// ErrUnknownFormat reports an output format Format does not support.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the accepted output formats.
var Formats = []string{"table", "json", "csl", "markdown"}

// Format writes out in the named format.
func Format(out SearchOutput, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "", "table":
		FormatTable(out, w)
		return nil
	case "json":
		return FormatJSON(out, w)
	case "csl", "yaml":
		return FormatCSL(out, w)
	case "markdown", "md":
		FormatMarkdown(out, w)
		return nil
	}
	return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out SearchOutput, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "ID", "Title", "Authors", "Year", "Category"})
	table.SetAutoWrapText(false)
	for i, r := range out.Results {
		year := ""
		if y := r.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			r.Identifier,
			truncate(r.Title, 60),
			formatAuthors(r.Authors),
			year,
			r.Category,
		})
	}
	table.Render()

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}

// FormatMarkdown writes one section per result with the metadata an agent
// needs to decide whether to read the paper in full.
func FormatMarkdown(out SearchOutput, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	for i, r := range out.Results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "## %d. %s\n\n", i+1, r.Title)
		fmt.Fprintf(w, "- **ID:** %s\n", r.Identifier)
		if len(r.Authors) > 0 {
			fmt.Fprintf(w, "- **Authors:** %s\n", strings.Join(r.Authors, ", "))
		}
		if !r.Date.IsZero() {
			fmt.Fprintf(w, "- **Published:** %s\n", r.Date.Format("2006-01-02"))
		}
		if r.Category != "" {
			fmt.Fprintf(w, "- **Category:** %s\n", r.Category)
		}
		if r.JournalRef != "" {
			fmt.Fprintf(w, "- **Journal:** %s\n", r.JournalRef)
		}
		if r.Comment != "" {
			fmt.Fprintf(w, "- **Comment:** %s\n", r.Comment)
		}
		if r.Abstract != "" {
			fmt.Fprintf(w, "\n%s\n", r.Abstract)
		}
	}
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
