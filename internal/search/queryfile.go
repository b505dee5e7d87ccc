// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-reader/pkg/types"
)

// QueryFile is the on-disk form of a search and its results. A saved search
// can be reformatted later without querying arXiv again.
type QueryFile struct {
	Query   QueryParams          `yaml:"query"`
	Results []types.SearchResult `yaml:"results"`
	Summary QuerySummary         `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	FreeText   string `yaml:"free_text,omitempty"`
	Author     string `yaml:"author,omitempty"`
	Category   string `yaml:"category,omitempty"`
	MaxResults int    `yaml:"max_results,omitempty"`
	SortBy     string `yaml:"sort_by,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total             int       `yaml:"total"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	BackendErrors     []string  `yaml:"backend_errors,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves query parameters and results to a YAML file.
func WriteQueryFile(path string, query Query, out SearchOutput) error {
	qf := QueryFile{
		Query: QueryParams{
			FreeText:   query.FreeText,
			Author:     query.Author,
			Category:   query.Category,
			MaxResults: query.MaxResults,
			SortBy:     query.SortBy,
		},
		Results: out.Results,
		Summary: QuerySummary{
			Total:             len(out.Results),
			DuplicatesRemoved: out.DupsRemoved,
			BackendErrors:     out.BackendErrors,
			Timestamp:         time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query struct.
func (p QueryParams) ToQuery() Query {
	return Query{
		FreeText:   p.FreeText,
		Author:     p.Author,
		Category:   p.Category,
		MaxResults: p.MaxResults,
		SortBy:     p.SortBy,
	}
}

// Output rebuilds the search output recorded in the file.
func (qf *QueryFile) Output() SearchOutput {
	return SearchOutput{
		Results:       qf.Results,
		DupsRemoved:   qf.Summary.DuplicatesRemoved,
		BackendErrors: qf.Summary.BackendErrors,
	}
}
