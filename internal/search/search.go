// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the arXiv listing API and returns unified,
// deduplicated candidate papers.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/pdiddy/arxiv-reader/pkg/types"
)

var (
	// ErrEmptyQuery reports a query with no searchable terms.
	ErrEmptyQuery = errors.New("query is empty: provide search terms, an author or a category")

	// ErrInvalidSort reports an unknown sort order.
	ErrInvalidSort = errors.New("invalid sort order")

	// ErrNoBackends reports a search with nothing to query.
	ErrNoBackends = errors.New("no search backends configured")
)

// Backend searches a single source.
type Backend interface {
	Name() string
	Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.SearchResult, error)
}

// Query holds the search parameters.
type Query struct {
	FreeText   string
	Author     string
	Category   string
	MaxResults int
	SortBy     string
}

// IsEmpty reports whether the query contains no searchable terms.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.FreeText) == "" &&
		strings.TrimSpace(q.Author) == "" &&
		strings.TrimSpace(q.Category) == ""
}

// SearchOutput holds the results and dedup statistics.
type SearchOutput struct {
	Results       []types.SearchResult
	DupsRemoved   int
	BackendErrors []string
}

// Search fans out the query to all backends concurrently, deduplicates
// results, ranks them, and returns the top N. A failing backend is
// reported on w; the search fails only when every backend fails.
func Search(ctx context.Context, query Query, backends []Backend, cfg types.SearchConfig, w io.Writer) (SearchOutput, error) {
	if query.IsEmpty() {
		return SearchOutput{}, ErrEmptyQuery
	}
	if len(backends) == 0 {
		return SearchOutput{}, ErrNoBackends
	}
	if _, err := sortParam(firstNonEmpty(query.SortBy, cfg.SortBy)); err != nil {
		return SearchOutput{}, err
	}

	type backendResult struct {
		results []types.SearchResult
		err     error
		name    string
	}

	ch := make(chan backendResult, len(backends))
	var wg sync.WaitGroup

	for _, b := range backends {
		wg.Add(1)
		go func(b Backend) {
			defer wg.Done()
			results, err := b.Search(ctx, query, cfg)
			ch <- backendResult{results: results, err: err, name: b.Name()}
		}(b)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.SearchResult
	var backendErrors []string
	var lastErr error
	for br := range ch {
		if br.err != nil {
			backendErrors = append(backendErrors, fmt.Sprintf("%s: %v", br.name, br.err))
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", br.name, br.err)
			lastErr = br.err
			continue
		}
		all = append(all, br.results...)
	}
	if len(backendErrors) == len(backends) {
		return SearchOutput{BackendErrors: backendErrors}, fmt.Errorf("search failed: %w", lastErr)
	}

	deduped, removed := deduplicate(all)

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].RelevanceScore > deduped[j].RelevanceScore
	})

	if n := limit(query, cfg); len(deduped) > n {
		deduped = deduped[:n]
	}

	return SearchOutput{
		Results:       deduped,
		DupsRemoved:   removed,
		BackendErrors: backendErrors,
	}, nil
}

// limit returns the number of results to keep: the query's count, else the
// configured default, capped at types.MaxSearchResults.
func limit(q Query, cfg types.SearchConfig) int {
	n := q.MaxResults
	if n <= 0 {
		n = cfg.MaxResults
	}
	if n <= 0 {
		n = types.DefaultMaxResults
	}
	if n > types.MaxSearchResults {
		n = types.MaxSearchResults
	}
	return n
}

// deduplicate merges results that share an identifier or normalized title.
func deduplicate(results []types.SearchResult) ([]types.SearchResult, int) {
	seen := make(map[string]int) // dedup key -> index in deduped
	var deduped []types.SearchResult
	removed := 0

	for _, r := range results {
		key := dedupKey(r)
		if idx, ok := seen[key]; ok {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}

		// Also check by normalized title.
		titleKey := "title:" + normalizeTitle(r.Title)
		if titleKey != "title:" {
			if idx, ok := seen[titleKey]; ok {
				mergeInto(&deduped[idx], r)
				removed++
				continue
			}
		}

		idx := len(deduped)
		deduped = append(deduped, r)
		if key != "" {
			seen[key] = idx
		}
		if titleKey != "title:" {
			seen[titleKey] = idx
		}
	}
	return deduped, removed
}

func dedupKey(r types.SearchResult) string {
	if r.Identifier != "" {
		return "id:" + r.Identifier
	}
	return ""
}

// mergeInto fills empty fields of dst from src and keeps the higher score.
func mergeInto(dst *types.SearchResult, src types.SearchResult) {
	fill := func(d *string, s string) {
		if *d == "" && s != "" {
			*d = s
		}
	}
	fill(&dst.Title, src.Title)
	fill(&dst.Abstract, src.Abstract)
	fill(&dst.Category, src.Category)
	fill(&dst.Comment, src.Comment)
	fill(&dst.JournalRef, src.JournalRef)
	fill(&dst.DOI, src.DOI)
	if len(dst.Authors) == 0 && len(src.Authors) > 0 {
		dst.Authors = src.Authors
	}
	if dst.Date.IsZero() && !src.Date.IsZero() {
		dst.Date = src.Date
	}
	if src.RelevanceScore > dst.RelevanceScore {
		dst.RelevanceScore = src.RelevanceScore
	}
	if src.Source != "" && !strings.Contains(dst.Source, src.Source) {
		if dst.Source == "" {
			dst.Source = src.Source
		} else {
			dst.Source = dst.Source + "," + src.Source
		}
	}
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
