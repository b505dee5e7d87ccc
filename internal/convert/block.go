// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// renderer carries the per-conversion options through the traversal. It
// holds no mutable state, so one renderer may serve a whole document.
type renderer struct {
	imageHost string
	base      *url.URL
}

func newRenderer(opts Options) *renderer {
	r := &renderer{imageHost: strings.TrimRight(opts.ImageHost, "/")}
	if r.imageHost == "" {
		r.imageHost = DefaultImageHost
	}
	if opts.BaseURL != "" {
		if u, err := url.Parse(opts.BaseURL); err == nil && u.IsAbs() {
			r.base = asDirectory(u)
		}
	}
	return r
}

// asDirectory treats a page URL as the directory holding the page's assets.
// Mirrors serve /html/<id> without a trailing slash while the images live
// under /html/<id>/.
func asDirectory(u *url.URL) *url.URL {
	if strings.HasSuffix(u.Path, "/") {
		return u
	}
	d := *u
	d.Path += "/"
	d.RawPath = ""
	return &d
}

// setBaseHref applies the page's <base href>. A relative href resolves
// against the page URL, or against the image host when the page URL is
// unknown.
func (r *renderer) setBaseHref(href string) {
	href = strings.TrimSpace(href)
	if href == "" {
		return
	}
	ref, err := url.Parse(href)
	if err != nil {
		return
	}
	parent := r.base
	if parent == nil {
		host, err := url.Parse(r.imageHost + "/")
		if err != nil || !host.IsAbs() {
			return
		}
		parent = host
	}
	r.base = parent.ResolveReference(ref)
}

// section renders every child block of a section container at depth.
func (r *renderer) section(n *html.Node, depth int) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(r.block(c, depth))
	}
	return b.String()
}

// block renders one block-level node. Unrecognized nodes render as "".
func (r *renderer) block(n *html.Node, depth int) string {
	switch classifyBlock(n) {
	case blockParagraph:
		return r.paragraph(n)
	case blockEquation:
		return r.equation(n)
	case blockFigure:
		return r.figure(n)
	case blockTable:
		return r.table(n)
	case blockTheorem:
		return r.theorem(n)
	case blockSubsection:
		return r.section(n, depth+1)
	case blockGroup:
		return r.section(n, depth)
	case blockHeading:
		return r.heading(n, depth)
	case blockList:
		return r.list(n)
	}
	return ""
}

// paragraph is where source whitespace is normalized: the inline text
// keeps it verbatim.
func (r *renderer) paragraph(n *html.Node) string {
	text := normalizeBlock(r.inline(n))
	if text == "" {
		return ""
	}
	return text + "\n\n"
}

func (r *renderer) heading(n *html.Node, depth int) string {
	if !hasClass(n, "ltx_title") {
		return ""
	}
	return strings.Repeat("#", depth) + " " + collapseSpace(r.inline(n)) + "\n\n"
}

func isEquationRow(n *html.Node) bool {
	return n.Data == "tr" && (hasClass(n, "ltx_equation") || hasClass(n, "ltx_eqn_row"))
}

// equation renders a display equation. Equation groups render one display
// block per numbered row.
func (r *renderer) equation(n *html.Node) string {
	if hasClass(n, "ltx_equationgroup") {
		rows := findAll(n, isEquationRow, isEquationRow)
		if len(rows) > 0 {
			var b strings.Builder
			for _, row := range rows {
				b.WriteString(displayMath(row))
			}
			return b.String()
		}
	}
	return displayMath(n)
}

func displayMath(n *html.Node) string {
	var parts []string
	for _, m := range findAll(n, isTag("math"), isTag("math")) {
		if alt := strings.TrimSpace(attr(m, "alttext")); alt != "" {
			parts = append(parts, alt)
		}
	}
	formula := strings.Join(parts, " ")

	var tag string
	if t := findFirst(n, withClass("ltx_tag_equation"), nil); t != nil {
		tag = strings.TrimSpace(textContent(t))
		if strings.HasPrefix(tag, "(") && strings.HasSuffix(tag, ")") {
			tag = tag[1 : len(tag)-1]
		}
	}

	out := "\n$$\n" + formula + "\n$$"
	if tag != "" {
		out += " (" + tag + ")"
	}
	return out + "\n\n"
}

func (r *renderer) figure(n *html.Node) string {
	var b strings.Builder

	// Sub-figures own their images and captions.
	subs := findAll(n, isFigure, isFigure)
	if len(subs) > 0 {
		for _, s := range subs {
			b.WriteString(r.figure(s))
		}
	} else {
		if img := findFirst(n, isTag("img"), nil); img != nil {
			alt := attr(img, "alt")
			if alt == "" {
				alt = "Figure"
			}
			fmt.Fprintf(&b, "![%s](%s)\n\n", alt, r.resolveSrc(attr(img, "src")))
		}
		for _, t := range findAll(n, isTag("table"), isTag("table")) {
			b.WriteString(r.table(t))
		}
	}

	if caption := findFirst(n, isTag("figcaption"), isFigure); caption != nil {
		if text := collapseSpace(r.inline(caption)); text != "" {
			b.WriteString("*" + text + "*\n\n")
		}
	}
	return b.String()
}

func isFigure(n *html.Node) bool {
	return n.Data == "figure"
}

// resolveSrc makes an image reference absolute. Site-relative paths resolve
// against the image host; other relative paths against the page's base
// (its <base href> or its URL) when one is known.
func (r *renderer) resolveSrc(src string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return src
	case strings.HasPrefix(src, "/"):
		return r.imageHost + src
	case src == "" || r.base == nil:
		return src
	}
	ref, err := url.Parse(src)
	if err != nil || ref.IsAbs() {
		return src
	}
	return r.base.ResolveReference(ref).String()
}

func (r *renderer) table(n *html.Node) string {
	rows := findAll(n, isTag("tr"), isTag("table"))
	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		var cells []string
		for c := row.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, r.cell(c))
			}
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			sep := make([]string, len(cells))
			for j := range sep {
				sep[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n") + "\n\n"
}

func (r *renderer) cell(n *html.Node) string {
	text := strings.ReplaceAll(r.inline(n), "|", `\|`)
	return collapseSpace(strings.ReplaceAll(text, "\n", " "))
}

func (r *renderer) theorem(n *html.Node) string {
	var b strings.Builder
	if title := findFirst(n, withClass("ltx_title"), nil); title != nil {
		if text := collapseSpace(r.inline(title)); text != "" {
			b.WriteString("**" + text + "**\n\n")
		}
	}
	for _, p := range findAll(n, isTag("p"), isTag("p")) {
		b.WriteString(r.paragraph(p))
	}
	return b.String()
}

// list renders itemize and enumerate environments one item per line.
func (r *renderer) list(n *html.Node) string {
	var lines []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		text := collapseSpace(itemText(r, c))
		if text == "" {
			continue
		}
		if n.Data == "ol" {
			lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, text))
		} else {
			lines = append(lines, "- "+text)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n\n"
}

// itemText renders a list item, dropping the LaTeXML bullet tag so the
// Markdown marker is the only one.
func itemText(r *renderer, li *html.Node) string {
	var b strings.Builder
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if hasClass(c, "ltx_tag") && hasClass(c, "ltx_tag_item") {
			continue
		}
		b.WriteString(r.inlineNode(c))
		b.WriteString(" ")
	}
	return b.String()
}
