// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// inlineKind classifies a node inside running text.
type inlineKind int

const (
	inlineText inlineKind = iota
	inlineMath
	inlineCitation
	inlineCrossRef
	inlineFootnote
	inlineBold
	inlineItalic
	inlineCode
	inlineLink
	inlineBreak
	inlineUnknown
)

// blockKind classifies a node that is a direct child of a section container.
type blockKind int

const (
	blockSkip blockKind = iota
	blockParagraph
	blockEquation
	blockFigure
	blockTable
	blockTheorem
	blockSubsection
	blockGroup
	blockHeading
	blockList
)

// groupClasses mark transparent wrappers whose children belong to the
// enclosing section.
var groupClasses = []string{
	"ltx_para",
	"ltx_logical-block",
	"ltx_block",
	"ltx_flex_figure",
	"ltx_flex_cell",
}

func classifyInline(n *html.Node) inlineKind {
	switch n.Type {
	case html.TextNode:
		return inlineText
	case html.ElementNode:
	default:
		return inlineUnknown
	}

	switch {
	case n.Data == "math":
		return inlineMath
	case n.Data == "cite" || hasClass(n, "ltx_cite"):
		return inlineCitation
	case hasClass(n, "ltx_note") && hasClass(n, "ltx_role_footnote"):
		return inlineFootnote
	case n.Data == "a" && hasClass(n, "ltx_ref"):
		return inlineCrossRef
	case n.Data == "a":
		return inlineLink
	case n.Data == "br":
		return inlineBreak
	case n.Data == "code" || hasClass(n, "ltx_verbatim"):
		return inlineCode
	case n.Data == "b" || n.Data == "strong" || hasClass(n, "ltx_font_bold"):
		return inlineBold
	case n.Data == "i" || n.Data == "em" || hasClass(n, "ltx_font_italic"):
		return inlineItalic
	}
	return inlineUnknown
}

func classifyBlock(n *html.Node) blockKind {
	if n.Type != html.ElementNode {
		return blockSkip
	}

	switch {
	case headingLevel(n.Data) > 0:
		return blockHeading
	case n.Data == "section":
		return blockSubsection
	case hasClass(n, "ltx_equation") || hasClass(n, "ltx_equationgroup"):
		return blockEquation
	case n.Data == "figure" || hasClass(n, "ltx_figure"):
		return blockFigure
	case n.Data == "table":
		return blockTable
	case hasClass(n, "ltx_theorem") || hasClass(n, "ltx_proof"):
		return blockTheorem
	case n.Data == "p":
		return blockParagraph
	case n.Data == "ul" || n.Data == "ol":
		return blockList
	}
	for _, c := range groupClasses {
		if hasClass(n, c) {
			return blockGroup
		}
	}
	return blockSkip
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// hasClass reports whether n carries class name c.
func hasClass(n *html.Node, c string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == c {
			return true
		}
	}
	return false
}

// attr returns the value of attribute key, or "" when absent.
func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates every text node below n without trimming. Math
// reads as its alttext.
func textContent(n *html.Node) string {
	return plainText(n, nil)
}

// plainText is textContent leaving out the subtrees for which skip returns
// true; skip may be nil.
func plainText(n *html.Node, skip func(*html.Node) bool) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case skip != nil && skip(n):
		case n.Data == "math":
			b.WriteString(attr(n, "alttext"))
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// findAll returns every descendant of n matching pred in document order.
// The search does not enter subtrees for which stop returns true; stop may
// be nil.
func findAll(n *html.Node, pred, stop func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if pred(c) {
				out = append(out, c)
			}
			if stop != nil && stop(c) {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// findFirst returns the first descendant of n matching pred, or nil.
func findFirst(n *html.Node, pred, stop func(*html.Node) bool) *html.Node {
	if all := findAll(n, pred, stop); len(all) > 0 {
		return all[0]
	}
	return nil
}

func isTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func withClass(c string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, c) }
}

// collapseSpace replaces every whitespace run with a single space and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeBlock collapses whitespace inside each line of rendered inline
// text and drops blank lines, keeping explicit line breaks.
func normalizeBlock(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = collapseSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
