// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every stage that makes
// network requests (source resolution and search).
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-reader/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceConfig locates the two HTML mirrors a paper can be fetched from.
type SourceConfig struct {
	// PrimaryBase is the preferred mirror; the identifier is appended.
	PrimaryBase string `json:"primary_base" yaml:"primary_base" mapstructure:"primary_base"`

	// SecondaryBase is tried once when the primary reports the paper
	// has no HTML rendering.
	SecondaryBase string `json:"secondary_base" yaml:"secondary_base" mapstructure:"secondary_base"`

	// ImageHost is the scheme and host that site-relative image paths
	// ("/html/2301.07041/x1.png") are resolved against.
	ImageHost string `json:"image_host" yaml:"image_host" mapstructure:"image_host"`

	// MaxBytes caps the size of a fetched HTML page.
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`
}

// ConvertConfig holds settings for the HTML-to-Markdown stage.
type ConvertConfig struct {
	// GenericFallback converts pages without a LaTeXML document container
	// with a general-purpose HTML converter instead of returning an empty body.
	GenericFallback bool `json:"generic_fallback" yaml:"generic_fallback" mapstructure:"generic_fallback"`
}

// ReadConfig holds settings for reading several papers in one call.
type ReadConfig struct {
	// Concurrency bounds the number of papers fetched and converted at once.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// SearchConfig holds settings for the literature search.
type SearchConfig struct {
	// APIBase is the arXiv Atom query endpoint.
	APIBase string `json:"api_base" yaml:"api_base" mapstructure:"api_base"`

	// MaxResults is the number of results returned when a query does not
	// ask for a specific count (default 10, capped at 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// SortBy is one of relevance, submitted or updated.
	SortBy string `json:"sort_by" yaml:"sort_by" mapstructure:"sort_by"`

	// UserAgent is copied from HTTPConfig when the search client is built.
	UserAgent string `json:"-" yaml:"-" mapstructure:"-"`
}

// ServerConfig holds settings for the MCP server.
type ServerConfig struct {
	// HTTPAddr switches the server from stdio to streamable HTTP when set
	// (e.g. ":8080").
	HTTPAddr string `json:"http_addr" yaml:"http_addr" mapstructure:"http_addr"`
}

// Config groups all stage configurations.
type Config struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Source  SourceConfig  `json:"source" yaml:"source" mapstructure:"source"`
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Read    ReadConfig    `json:"read" yaml:"read" mapstructure:"read"`
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}

// Search limits.
const (
	DefaultMaxResults = 10
	MaxSearchResults  = 50
)

// DefaultConfig returns the configuration used when no file, environment
// variable or flag overrides a value.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "arxiv-reader/0.1",
		},
		Source: SourceConfig{
			PrimaryBase:   "https://arxiv.org/html/",
			SecondaryBase: "https://ar5iv.labs.arxiv.org/html/",
			ImageHost:     "https://arxiv.org",
			MaxBytes:      50 << 20,
		},
		Read: ReadConfig{
			Concurrency: 4,
		},
		Search: SearchConfig{
			APIBase:    "https://export.arxiv.org/api/query",
			MaxResults: DefaultMaxResults,
			SortBy:     "relevance",
		},
	}
}
