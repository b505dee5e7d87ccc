// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-reader/internal/httputil"
	"github.com/pdiddy/arxiv-reader/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint used when the configuration
// does not name one. Declared as a var so tests can substitute an
// httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// sortParams maps accepted sort orders to arXiv API sortBy values.
var sortParams = map[string]string{
	"relevance": "relevance",
	"submitted": "submittedDate",
	"updated":   "lastUpdatedDate",
}

// ArxivBackend queries the arXiv Atom API.
type ArxivBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return "arxiv" }

// Search queries the arXiv API and returns results in feed order with a
// position-based relevance score.
func (b *ArxivBackend) Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.SearchResult, error) {
	q := buildArxivQuery(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	sortBy, err := sortParam(firstNonEmpty(query.SortBy, cfg.SortBy))
	if err != nil {
		return nil, err
	}

	base := cfg.APIBase
	if base == "" {
		base = arxivAPIBase
	}
	params := url.Values{}
	params.Set("search_query", q)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(limit(query, cfg)))
	params.Set("sortBy", sortBy)
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	total := len(feed.Entries)
	var results []types.SearchResult
	for i, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		r := types.SearchResult{
			Identifier: arxivID,
			Title:      collapse(entry.Title),
			Abstract:   collapse(entry.Summary),
			Category:   entry.PrimaryCategory.Term,
			Comment:    collapse(entry.Comment),
			JournalRef: collapse(entry.JournalRef),
			DOI:        strings.TrimSpace(entry.DOI),
			Source:     "arxiv",
		}
		if r.Category == "" && len(entry.Categories) > 0 {
			r.Category = entry.Categories[0].Term
		}

		for _, a := range entry.Authors {
			r.Authors = append(r.Authors, collapse(a.Name))
		}

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			r.Date = t
		}

		// Position-based relevance score.
		if total > 1 {
			r.RelevanceScore = 1.0 - float64(i)/float64(total-1)*0.9
		} else {
			r.RelevanceScore = 1.0
		}

		results = append(results, r)
	}
	return results, nil
}

// buildArxivQuery constructs the search_query parameter from structured
// fields. Every free-text term must match; a multi-word author is quoted as
// a phrase.
func buildArxivQuery(q Query) string {
	var parts []string

	for _, term := range strings.Fields(q.FreeText) {
		parts = append(parts, "all:"+term)
	}
	if author := strings.Fields(q.Author); len(author) == 1 {
		parts = append(parts, "au:"+author[0])
	} else if len(author) > 1 {
		parts = append(parts, `au:"`+strings.Join(author, " ")+`"`)
	}
	if cat := strings.TrimSpace(q.Category); cat != "" {
		parts = append(parts, "cat:"+cat)
	}

	return strings.Join(parts, " AND ")
}

// sortParam validates a sort order and returns the arXiv API value. An
// empty order means relevance.
func sortParam(order string) (string, error) {
	order = strings.ToLower(strings.TrimSpace(order))
	if order == "" {
		order = "relevance"
	}
	v, ok := sortParams[order]
	if !ok {
		return "", fmt.Errorf("%w: %q (want relevance, submitted or updated)", ErrInvalidSort, order)
	}
	return v, nil
}

// arXiv Atom feed XML structures. Fields from the arxiv: namespace match
// by local name.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string          `xml:"id"`
	Title           string          `xml:"title"`
	Summary         string          `xml:"summary"`
	Published       string          `xml:"published"`
	Authors         []arxivAuthor   `xml:"author"`
	Comment         string          `xml:"comment"`
	JournalRef      string          `xml:"journal_ref"`
	DOI             string          `xml:"doi"`
	PrimaryCategory arxivCategory   `xml:"primary_category"`
	Categories      []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
