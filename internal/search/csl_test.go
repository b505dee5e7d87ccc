// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-reader/pkg/types"
)

func TestToCSLItemPreprint(t *testing.T) {
	r := types.SearchResult{
		Identifier: "1706.03762",
		Title:      "Attention Is All You Need",
		Authors:    []string{"Ashish Vaswani", "Noam Shazeer"},
		Abstract:   "We propose a new architecture.",
		Comment:    "15 pages, 5 figures",
		Date:       time.Date(2017, 6, 12, 0, 0, 0, 0, time.UTC),
		Source:     "arxiv",
	}

	item := toCSLItem(r)

	if item.Type != "article" {
		t.Errorf("Type = %q, want %q", item.Type, "article")
	}
	if item.ContainerTitle != "arXiv" {
		t.Errorf("ContainerTitle = %q, want %q", item.ContainerTitle, "arXiv")
	}
	if item.Number != "1706.03762" {
		t.Errorf("Number = %q, want %q", item.Number, "1706.03762")
	}
	if item.URL != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("URL = %q", item.URL)
	}
	if item.Note != "15 pages, 5 figures" {
		t.Errorf("Note = %q", item.Note)
	}
	if item.DOI != "" {
		t.Errorf("DOI should be empty, got %q", item.DOI)
	}
	if len(item.Author) != 2 || item.Author[0].Family != "Vaswani" || item.Author[0].Given != "Ashish" {
		t.Errorf("Author = %+v", item.Author)
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2017 || item.Issued.DateParts[0][1] != 6 {
		t.Errorf("Issued = %+v, want 2017-06", item.Issued)
	}
}

func TestToCSLItemPublished(t *testing.T) {
	r := types.SearchResult{
		Identifier: "1810.04805",
		Title:      "BERT",
		JournalRef: "NAACL 2019",
		DOI:        "10.18653/v1/N19-1423",
	}

	item := toCSLItem(r)

	if item.Type != "article-journal" {
		t.Errorf("Type = %q, want %q", item.Type, "article-journal")
	}
	if item.ContainerTitle != "NAACL 2019" {
		t.Errorf("ContainerTitle = %q", item.ContainerTitle)
	}
	if item.DOI != "10.18653/v1/N19-1423" {
		t.Errorf("DOI = %q", item.DOI)
	}
	if item.Issued != nil {
		t.Errorf("Issued should be nil without a date, got %+v", item.Issued)
	}
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		input string
		want  CSLName
	}{
		{"Ashish Vaswani", CSLName{Given: "Ashish", Family: "Vaswani"}},
		{"Jacob M. Devlin", CSLName{Given: "Jacob M.", Family: "Devlin"}},
		{"OpenAI", CSLName{Literal: "OpenAI"}},
		{"  ", CSLName{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseAuthorName(tt.input); got != tt.want {
				t.Errorf("parseAuthorName(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCSL(t *testing.T) {
	out := SearchOutput{Results: []types.SearchResult{
		{Identifier: "1706.03762", Title: "Attention Is All You Need", Authors: []string{"Ashish Vaswani"}},
		{Identifier: "1810.04805", Title: "BERT", JournalRef: "NAACL 2019"},
	}}

	var buf bytes.Buffer
	if err := FormatCSL(out, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}

	var items []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0]["URL"] != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("items[0].URL = %v", items[0]["URL"])
	}
	if items[1]["container-title"] != "NAACL 2019" {
		t.Errorf("items[1].container-title = %v", items[1]["container-title"])
	}
	if !strings.Contains(buf.String(), "family: Vaswani") {
		t.Error("CSL output should contain the author family name")
	}
}
