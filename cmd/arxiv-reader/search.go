package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-reader/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search arXiv for papers",
	Long: `Search queries the arXiv API for papers matching free-text terms, an author,
or a category. Results are ranked by the API's order, deduplicated, and
printed as a table, JSON, CSL YAML, or Markdown.

--save writes the query and its results to a YAML file; --from re-prints a
saved file without querying arXiv again.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("author", "", "filter by author name")
	searchCmd.Flags().String("category", "", "filter by arXiv category (e.g. cs.CL)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 10, at most 50)")
	searchCmd.Flags().String("sort", "", "sort order: relevance, submitted, or updated")
	searchCmd.Flags().String("format", "table", "output format: "+strings.Join(search.Formats, ", "))
	searchCmd.Flags().String("save", "", "write the query and results to a YAML file")
	searchCmd.Flags().String("from", "", "print results from a saved YAML file instead of searching")

	_ = viper.BindPFlag("search.max_results", searchCmd.Flags().Lookup("max-results"))
	_ = viper.BindPFlag("search.sort_by", searchCmd.Flags().Lookup("sort"))

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		qf, err := search.ReadQueryFile(from)
		if err != nil {
			return err
		}
		return search.Format(qf.Output(), format, os.Stdout)
	}

	author, _ := cmd.Flags().GetString("author")
	category, _ := cmd.Flags().GetString("category")
	query := search.Query{
		FreeText: strings.Join(args, " "),
		Author:   author,
		Category: category,
	}
	if query.IsEmpty() {
		return fmt.Errorf("provide search terms, --author, or --category")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	query.MaxResults = cfg.Search.MaxResults
	query.SortBy = cfg.Search.SortBy

	backends := []search.Backend{
		&search.ArxivBackend{Client: &http.Client{Timeout: cfg.HTTP.Timeout}},
	}
	out, err := search.Search(cmd.Context(), query, backends, cfg.Search, os.Stderr)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := search.WriteQueryFile(save, query, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved:   %s\n", save)
	}
	return search.Format(out, format, os.Stdout)
}
