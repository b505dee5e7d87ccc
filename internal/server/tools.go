// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/arxiv-reader/internal/search"
	"github.com/pdiddy/arxiv-reader/pkg/types"
)

// MetadataReadPaper describes the read_paper tool.
var MetadataReadPaper = &mcp.Tool{
	Name: "read_paper",
	Description: "Read an arXiv paper as Markdown. The paper is fetched from its HTML rendering " +
		"(arxiv.org, falling back to ar5iv) and converted with math as LaTeX, citations as " +
		"bracketed keys and tables as pipe tables. Use level to control how much is returned: " +
		"abstract (title, authors, abstract), body (adds the sections; default), appendix " +
		"(appendix sections only) or all (body, references and appendix).",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"paper_id"},
		"properties": map[string]interface{}{
			"paper_id": map[string]interface{}{
				"type":        "string",
				"description": "arXiv identifier such as 2301.07041, arXiv:2301.07041v2 or hep-th/9901001, or an arxiv.org URL.",
			},
			"level": map[string]interface{}{
				"type":        "string",
				"description": "Detail level. One of: abstract, body, appendix, all. Defaults to body.",
				"enum":        []string{"abstract", "body", "appendix", "all"},
			},
		},
	},
}

// InputReadPaper is the input for the ReadPaper tool.
type InputReadPaper struct {
	PaperID string `json:"paper_id"`
	Level   string `json:"level"`
}

// OutputReadPaper is the output for the ReadPaper tool. The Markdown itself
// is returned as text content.
type OutputReadPaper struct {
	PaperID       string `json:"paper_id"`
	Level         string `json:"level"`
	SourceURL     string `json:"source_url"`
	Mirror        string `json:"mirror"`
	TokenEstimate int    `json:"token_estimate"`
}

// MetadataSearchPapers describes the search_papers tool.
var MetadataSearchPapers = &mcp.Tool{
	Name: "search_papers",
	Description: "Search arXiv for papers. Returns identifiers, titles, authors, dates, categories " +
		"and abstracts so you can decide which papers to read with read_paper. At least one of " +
		"query, author or category is required.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Free-text search terms; every term must match.",
			},
			"author": map[string]interface{}{
				"type":        "string",
				"description": "Author name, e.g. Vaswani or \"Ashish Vaswani\".",
			},
			"category": map[string]interface{}{
				"type":        "string",
				"description": "arXiv category such as cs.CL or hep-th.",
			},
			"max_results": map[string]interface{}{
				"type":        "integer",
				"description": "Number of results (default 10, maximum 50).",
				"minimum":     1,
				"maximum":     types.MaxSearchResults,
			},
			"sort_by": map[string]interface{}{
				"type":        "string",
				"description": "Sort order. One of: relevance, submitted, updated.",
				"enum":        []string{"relevance", "submitted", "updated"},
			},
		},
	},
}

// InputSearchPapers is the input for the SearchPapers tool.
type InputSearchPapers struct {
	Query      string `json:"query"`
	Author     string `json:"author"`
	Category   string `json:"category"`
	MaxResults int    `json:"max_results"`
	SortBy     string `json:"sort_by"`
}

// OutputSearchPapers is the output for the SearchPapers tool.
type OutputSearchPapers struct {
	Results []PaperSummary `json:"results"`
	Count   int            `json:"count"`
}

// PaperSummary is one search hit in tool output.
type PaperSummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Published  string   `json:"published,omitempty"`
	Category   string   `json:"category,omitempty"`
	JournalRef string   `json:"journal_ref,omitempty"`
	Abstract   string   `json:"abstract,omitempty"`
}

// PaperReader reads one paper at a detail level.
type PaperReader interface {
	Read(ctx context.Context, identifier string, level types.DetailLevel) (types.Paper, error)
}

// Tools holds the dependencies of the MCP tool handlers.
type Tools struct {
	Reader       PaperReader
	Backends     []search.Backend
	SearchConfig types.SearchConfig

	// Warnings receives backend warnings from searches. Nil discards.
	Warnings io.Writer
}

// ReadPaper fetches and converts a paper.
func (t *Tools) ReadPaper(ctx context.Context, _ *mcp.CallToolRequest, input InputReadPaper) (*mcp.CallToolResult, OutputReadPaper, error) {
	if strings.TrimSpace(input.PaperID) == "" {
		return nil, OutputReadPaper{}, fmt.Errorf("paper_id is required")
	}
	level, err := types.ParseDetailLevel(input.Level)
	if err != nil {
		return nil, OutputReadPaper{}, err
	}

	p, err := t.Reader.Read(ctx, input.PaperID, level)
	if err != nil {
		return nil, OutputReadPaper{}, err
	}

	text := p.Markdown
	if text == "" {
		text = fmt.Sprintf("Paper %s has no %s content.", p.ID, level)
	}
	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
	return result, OutputReadPaper{
		PaperID:       p.ID,
		Level:         p.Level.String(),
		SourceURL:     p.SourceURL,
		Mirror:        p.Mirror,
		TokenEstimate: p.TokenEstimate,
	}, nil
}

// SearchPapers runs a literature search.
func (t *Tools) SearchPapers(ctx context.Context, _ *mcp.CallToolRequest, input InputSearchPapers) (*mcp.CallToolResult, OutputSearchPapers, error) {
	query := search.Query{
		FreeText:   input.Query,
		Author:     input.Author,
		Category:   input.Category,
		MaxResults: input.MaxResults,
		SortBy:     input.SortBy,
	}
	w := t.Warnings
	if w == nil {
		w = io.Discard
	}
	out, err := search.Search(ctx, query, t.Backends, t.SearchConfig, w)
	if err != nil {
		return nil, OutputSearchPapers{}, err
	}

	var md bytes.Buffer
	search.FormatMarkdown(out, &md)

	summaries := make([]PaperSummary, 0, len(out.Results))
	for _, r := range out.Results {
		s := PaperSummary{
			ID:         r.Identifier,
			Title:      r.Title,
			Authors:    r.Authors,
			Category:   r.Category,
			JournalRef: r.JournalRef,
			Abstract:   r.Abstract,
		}
		if !r.Date.IsZero() {
			s.Published = r.Date.Format("2006-01-02")
		}
		summaries = append(summaries, s)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: md.String()}},
	}, OutputSearchPapers{Results: summaries, Count: len(summaries)}, nil
}
