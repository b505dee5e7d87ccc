// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// IdentifierType classifies an input identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeArxiv
	TypeLegacy
)

func (t IdentifierType) String() string {
	switch t {
	case TypeArxiv:
		return "arxiv"
	case TypeLegacy:
		return "arxiv-legacy"
	default:
		return "unknown"
	}
}

// arxivPattern matches new-style IDs: "2301.07041", "2301.07041v2".
var arxivPattern = regexp.MustCompile(`^(\d{4}\.\d{4,5}(?:v\d+)?)$`)

// legacyPattern matches archive-prefixed IDs: "hep-th/9901001",
// "math.GT/0309136v1".
var legacyPattern = regexp.MustCompile(`^([a-z]+(?:-[a-z]+)*(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?)$`)

// namespace is the optional tag in front of an identifier, matched without
// regard to case.
const namespace = "arxiv:"

// Classify determines the identifier type and returns the normalized form.
// It strips the optional "arXiv:" prefix and accepts abs, html and pdf URLs
// on arxiv.org and its mirrors.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	if len(identifier) > len(namespace) && strings.EqualFold(identifier[:len(namespace)], namespace) {
		identifier = identifier[len(namespace):]
	}
	if id, ok := fromURL(identifier); ok {
		identifier = id
	}

	if m := arxivPattern.FindStringSubmatch(identifier); m != nil {
		return TypeArxiv, m[1]
	}
	if m := legacyPattern.FindStringSubmatch(identifier); m != nil {
		return TypeLegacy, m[1]
	}
	return TypeUnknown, identifier
}

// Normalize returns the canonical form of identifier, or an error wrapping
// ErrInvalidIdentifier.
func Normalize(identifier string) (string, error) {
	idType, norm := Classify(identifier)
	if idType == TypeUnknown {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}
	return norm, nil
}

// fromURL extracts the identifier from a paper URL such as
// https://arxiv.org/abs/2301.07041 or https://arxiv.org/pdf/2301.07041v2.pdf.
func fromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "arxiv.org" && !strings.HasSuffix(host, ".arxiv.org") && host != "ar5iv.org" {
		return "", false
	}
	for _, prefix := range []string{"/abs/", "/html/", "/pdf/"} {
		if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
			rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".pdf")
			return rest, rest != ""
		}
	}
	return "", false
}
