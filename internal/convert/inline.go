// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// footnoteAbbrevLen is the number of runes of a footnote body kept in the
// inline marker.
const footnoteAbbrevLen = 50

// citationPointer matches the reference pointers nested in a citation:
// resolved anchors on arxiv.org and unresolved spans on ar5iv.
func citationPointer(n *html.Node) bool {
	return hasClass(n, "ltx_ref") && (n.Data == "a" || n.Data == "span")
}

// inline renders the children of n as one Markdown string. Text is kept
// verbatim; callers normalize whitespace at block level. It never fails:
// missing attributes degrade to empty strings.
func (r *renderer) inline(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(r.inlineNode(c))
	}
	return b.String()
}

func (r *renderer) inlineNode(n *html.Node) string {
	switch classifyInline(n) {
	case inlineText:
		return n.Data
	case inlineMath:
		return "$" + attr(n, "alttext") + "$"
	case inlineCitation:
		return renderCitation(n)
	case inlineCrossRef, inlineLink:
		return "[" + strings.TrimSpace(textContent(n)) + "](" + attr(n, "href") + ")"
	case inlineFootnote:
		return renderFootnote(n)
	case inlineBold:
		return wrapNonEmpty(r.inline(n), "**")
	case inlineItalic:
		return wrapNonEmpty(r.inline(n), "*")
	case inlineCode:
		return "`" + textContent(n) + "`"
	case inlineBreak:
		return "\n"
	}
	return r.inline(n)
}

func renderCitation(n *html.Node) string {
	var keys []string
	for _, p := range findAll(n, citationPointer, citationPointer) {
		if k := collapseSpace(textContent(p)); k != "" {
			keys = append(keys, k)
		}
	}
	return "[" + strings.Join(keys, ", ") + "]"
}

// renderFootnote emits a caret marker holding the start of the footnote
// body. The full body is not reproduced anywhere in the output.
func renderFootnote(n *html.Node) string {
	body := findFirst(n, withClass("ltx_note_content"), nil)
	if body == nil {
		body = n
	}
	noteMark := func(c *html.Node) bool {
		return hasClass(c, "ltx_note_mark") || hasClass(c, "ltx_tag")
	}
	text := []rune(collapseSpace(plainText(body, noteMark)))
	if len(text) > footnoteAbbrevLen {
		text = text[:footnoteAbbrevLen]
	}
	return "[^" + strings.TrimSpace(string(text)) + "]"
}

func wrapNonEmpty(s, marker string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	return marker + s + marker
}
