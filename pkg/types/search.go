// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for arxiv-reader: the
// configuration tree, detail levels, and literature search results.
package types

import "time"

// SearchResult represents a candidate paper returned by a literature search.
// It carries everything a driving agent needs to decide whether to read the
// paper: identifier, bibliographic metadata and the abstract.
type SearchResult struct {
	// Identifier is the arXiv ID without version suffix (e.g. "2301.07041").
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Date is the first-version submission date.
	Date time.Time `json:"date" yaml:"date"`

	// Category is the primary arXiv category (e.g. "cs.CL").
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Comment is the free-text author comment ("12 pages, 4 figures").
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// JournalRef is the venue of record when the paper has been published.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`

	// DOI is the identifier of record for the published version.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Source identifies which backend found this result (e.g. "arxiv").
	Source string `json:"source" yaml:"source"`

	// RelevanceScore is a value between 0.0 and 1.0 indicating relevance to the query.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// Year returns the submission year, or 0 when the date is unknown.
func (r SearchResult) Year() int {
	if r.Date.IsZero() {
		return 0
	}
	return r.Date.Year()
}
