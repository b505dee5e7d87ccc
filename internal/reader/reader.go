// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader fetches papers and converts them to leveled Markdown. It
// joins the source resolver and the converter and is the single entry point
// the CLI and the MCP server use.
package reader

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/arxiv-reader/internal/convert"
	"github.com/pdiddy/arxiv-reader/internal/source"
	"github.com/pdiddy/arxiv-reader/internal/tokens"
	"github.com/pdiddy/arxiv-reader/pkg/types"
)

// Fetcher returns the HTML page of a paper.
type Fetcher interface {
	FetchHTML(ctx context.Context, identifier string) (*source.Page, error)
}

// Reader reads papers at a detail level.
type Reader struct {
	Source      Fetcher
	Options     convert.Options
	Concurrency int

	// CountTokens estimates the size of the output; nil leaves
	// Paper.TokenEstimate at zero.
	CountTokens func(string) int

	// Log receives one status line per paper. Nil discards.
	Log io.Writer

	logMu sync.Mutex
}

// New builds a Reader backed by the arXiv mirrors named in cfg.
func New(cfg types.Config, log io.Writer) *Reader {
	return &Reader{
		Source:      source.NewResolver(cfg),
		Options:     convert.OptionsFromConfig(cfg),
		Concurrency: cfg.Read.Concurrency,
		CountTokens: tokens.Estimate,
		Log:         log,
	}
}

// Read fetches one paper and returns its Markdown at level. It returns
// either a paper or an error, never a partial document.
func (r *Reader) Read(ctx context.Context, identifier string, level types.DetailLevel) (types.Paper, error) {
	level, err := types.ParseDetailLevel(string(level))
	if err != nil {
		return types.Paper{}, err
	}

	page, err := r.Source.FetchHTML(ctx, identifier)
	if err != nil {
		return types.Paper{}, err
	}

	opts := r.Options
	opts.BaseURL = page.URL
	md, err := convert.Convert(page.HTML, level, opts)
	if err != nil {
		return types.Paper{}, fmt.Errorf("converting %s: %w", page.Identifier, err)
	}

	p := types.Paper{
		ID:        page.Identifier,
		SourceURL: page.URL,
		Mirror:    page.Mirror,
		Level:     level,
		Markdown:  md,
	}
	if r.CountTokens != nil {
		p.TokenEstimate = r.CountTokens(md)
	}
	fmt.Fprintf(r.logger(), "fetched: %s (%s, %s, ~%d tokens)\n", p.ID, p.Mirror, p.Level, p.TokenEstimate)
	return p, nil
}

// Item is the outcome of one identifier in a batch.
type Item struct {
	Identifier string
	Paper      types.Paper
	Err        error
}

// BatchResult holds the outcome of a batch read in input order.
type BatchResult struct {
	Items  []Item
	Read   int
	Failed int
}

// Total returns the total number of identifiers processed.
func (b BatchResult) Total() int {
	return b.Read + b.Failed
}

// HasFailures reports whether any paper failed.
func (b BatchResult) HasFailures() bool {
	return b.Failed > 0
}

// ReadBatch reads several papers concurrently, bounded by Concurrency. It
// continues after individual failures, printing per-item status and a
// summary line.
func (r *Reader) ReadBatch(ctx context.Context, identifiers []string, level types.DetailLevel) BatchResult {
	w := r.logger()
	items := make([]Item, len(identifiers))

	var g errgroup.Group
	limit := r.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, id := range identifiers {
		g.Go(func() error {
			p, err := r.Read(ctx, id, level)
			items[i] = Item{Identifier: id, Paper: p, Err: err}
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			}
			return nil
		})
	}
	g.Wait()

	result := BatchResult{Items: items}
	for _, it := range items {
		if it.Err != nil {
			result.Failed++
		} else {
			result.Read++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d read, %d failed (total: %d)\n",
		result.Read, result.Failed, result.Total())
	return result
}

// logger returns a writer safe for concurrent status lines.
func (r *Reader) logger() io.Writer {
	if r.Log == nil {
		return io.Discard
	}
	return &lockedWriter{w: r.Log, mu: &r.logMu}
}

type lockedWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
