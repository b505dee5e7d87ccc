// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source resolves arXiv identifiers and fetches the HTML rendering
// of a paper, falling back from arxiv.org to the ar5iv mirror when the
// primary has no HTML for the paper.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/arxiv-reader/internal/httputil"
	"github.com/pdiddy/arxiv-reader/pkg/types"
)

var (
	// ErrSourceUnavailable reports that no mirror served HTML for a paper.
	ErrSourceUnavailable = errors.New("paper HTML not available")

	// ErrInvalidIdentifier reports input that is not an arXiv identifier.
	ErrInvalidIdentifier = errors.New("invalid arXiv identifier")

	// errNotFound is the mirror-level unavailability signal that triggers
	// the fallback.
	errNotFound = errors.New("no HTML rendering")
)

// Mirror names recorded on a fetched Page.
const (
	MirrorPrimary   = "arxiv"
	MirrorSecondary = "ar5iv"
)

// Page is the HTML of one paper as served by a mirror.
type Page struct {
	Identifier string
	URL        string
	Mirror     string
	HTML       string
}

// Resolver fetches paper HTML from the primary mirror and, on a not-found
// signal, once from the secondary mirror.
type Resolver struct {
	Client        *http.Client
	PrimaryBase   string
	SecondaryBase string
	UserAgent     string
	MaxBytes      int64
	MaxRetries    int
}

// NewResolver builds a Resolver from the configuration tree.
func NewResolver(cfg types.Config) *Resolver {
	return &Resolver{
		Client:        &http.Client{Timeout: cfg.HTTP.Timeout},
		PrimaryBase:   cfg.Source.PrimaryBase,
		SecondaryBase: cfg.Source.SecondaryBase,
		UserAgent:     cfg.HTTP.UserAgent,
		MaxBytes:      cfg.Source.MaxBytes,
	}
}

// FetchHTML returns the HTML page for identifier. A 404 from the primary,
// or a primary response that redirected to an abstract page, falls back to
// the secondary mirror exactly once. Every other primary failure is
// returned immediately. All fetch errors wrap ErrSourceUnavailable; a
// malformed identifier wraps ErrInvalidIdentifier.
func (r *Resolver) FetchHTML(ctx context.Context, identifier string) (*Page, error) {
	id, err := Normalize(identifier)
	if err != nil {
		return nil, err
	}

	page, err := r.fetch(ctx, r.PrimaryBase, id, MirrorPrimary)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, errNotFound) || r.SecondaryBase == "" {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, id, err)
	}

	page, err2 := r.fetch(ctx, r.SecondaryBase, id, MirrorSecondary)
	if err2 != nil {
		return nil, fmt.Errorf("%w: %s: %s: %v; %s: %w", ErrSourceUnavailable, id, MirrorPrimary, err, MirrorSecondary, err2)
	}
	return page, nil
}

func (r *Resolver) fetch(ctx context.Context, base, id, mirror string) (*Page, error) {
	target := strings.TrimRight(base, "/") + "/" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	req.Header.Set("Accept", "text/html")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, r.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: HTTP 404 from %s", errNotFound, target)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, target)
	case resp.Request != nil && strings.Contains(resp.Request.URL.Path, "/abs/"):
		return nil, fmt.Errorf("%w: redirected to %s", errNotFound, final)
	}

	body, err := readLimited(resp.Body, r.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return &Page{Identifier: id, URL: final, Mirror: mirror, HTML: body}, nil
}

// readLimited reads at most limit bytes; a longer body is an error. A
// non-positive limit reads everything.
func readLimited(r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		return string(data), err
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("response exceeds %d bytes", limit)
	}
	return string(data), nil
}
