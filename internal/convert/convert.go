// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns the LaTeXML-generated HTML of an arXiv paper into
// leveled Markdown.
//
// Conversion runs in three steps: Extract walks the document tree and renders
// the title, authors, abstract, body, appendix and references; Assemble
// concatenates the regions a DetailLevel selects; Convert does both from raw
// HTML text. Malformed or unexpected markup degrades the output, it never
// fails the conversion.
package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/arxiv-reader/pkg/types"
)

// DefaultImageHost is used for site-relative image paths when Options does
// not name a host.
const DefaultImageHost = "https://arxiv.org"

// Options configures one conversion.
type Options struct {
	// ImageHost is the scheme and host site-relative image paths resolve
	// against (default DefaultImageHost).
	ImageHost string

	// BaseURL is the URL the page was served from. When set, image paths
	// relative to the page resolve against it.
	BaseURL string

	// GenericFallback converts pages without a LaTeXML document container
	// with a general-purpose HTML converter.
	GenericFallback bool
}

// OptionsFromConfig builds conversion options from the configuration tree.
func OptionsFromConfig(cfg types.Config) Options {
	return Options{
		ImageHost:       cfg.Source.ImageHost,
		GenericFallback: cfg.Convert.GenericFallback,
	}
}

// Parse builds a document tree from HTML text.
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// ExtractHTML parses htmlText and extracts its regions.
func ExtractHTML(htmlText string, opts Options) (ExtractedDocument, error) {
	doc, err := Parse(strings.NewReader(htmlText))
	if err != nil {
		return ExtractedDocument{}, err
	}
	return Extract(doc, opts), nil
}

// Convert parses htmlText and returns the Markdown for level.
func Convert(htmlText string, level types.DetailLevel, opts Options) (string, error) {
	doc, err := ExtractHTML(htmlText, opts)
	if err != nil {
		return "", err
	}
	return Assemble(doc, level), nil
}
