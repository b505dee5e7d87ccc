// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper holds the outcome of reading one paper: where its HTML came from
// and the Markdown assembled at the requested level.
type Paper struct {
	// ID is the normalized arXiv identifier (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// SourceURL is the URL the HTML was served from after redirects.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Mirror names the mirror that served the HTML ("arxiv" or "ar5iv").
	Mirror string `json:"mirror" yaml:"mirror"`

	// Level is the detail level the Markdown was assembled at.
	Level DetailLevel `json:"level" yaml:"level"`

	// Markdown is the assembled document.
	Markdown string `json:"markdown" yaml:"markdown"`

	// TokenEstimate approximates the language-model cost of Markdown.
	TokenEstimate int `json:"token_estimate" yaml:"token_estimate"`
}
