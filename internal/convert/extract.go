// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// sectionDepth is the heading depth of top-level body and appendix
// sections; depth 1 belongs to the document title.
const sectionDepth = 2

// ExtractedDocument holds the rendered regions of one paper before they are
// assembled at a detail level.
type ExtractedDocument struct {
	Title      string
	Authors    string
	Abstract   string
	Body       string
	Appendix   string
	References string
}

// Extract locates the document-level regions of a LaTeXML page and renders
// each one. Missing regions leave their field empty.
func Extract(doc *goquery.Document, opts Options) ExtractedDocument {
	r := newRenderer(opts)
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		r.setBaseHref(href)
	}
	var out ExtractedDocument

	if n := firstNode(doc.Find(".ltx_title_document")); n != nil {
		out.Title = collapseSpace(r.inline(n))
	}
	if n := firstNode(doc.Find(".ltx_authors")); n != nil {
		out.Authors = collapseSpace(r.inline(n))
	}
	if n := firstNode(doc.Find(".ltx_abstract")); n != nil {
		if p := findFirst(n, isTag("p"), nil); p != nil {
			out.Abstract = normalizeBlock(r.inline(p))
		}
	}

	root := doc.Find("article.ltx_document").First()
	if root.Length() == 0 {
		root = doc.Find(".ltx_document").First()
	}
	if root.Length() == 0 {
		if opts.GenericFallback {
			return genericDocument(doc, opts, out)
		}
		return out
	}

	out.Body = renderSections(r, root.ChildrenFiltered("section.ltx_section"))
	out.Appendix = renderSections(r, root.ChildrenFiltered("section.ltx_appendix"))

	if n := firstNode(doc.Find("section.ltx_bibliography")); n != nil {
		out.References = r.references(n)
	}
	return out
}

func renderSections(r *renderer, sel *goquery.Selection) string {
	var b strings.Builder
	sel.Each(func(_ int, s *goquery.Selection) {
		b.WriteString(r.section(s.Get(0), sectionDepth))
	})
	return b.String()
}

func (r *renderer) references(bib *html.Node) string {
	var entries []string
	for _, item := range findAll(bib, withClass("ltx_bibitem"), withClass("ltx_bibitem")) {
		var tag string
		if t := findFirst(item, withClass("ltx_tag_bibitem"), nil); t != nil {
			tag = strings.TrimSpace(textContent(t))
			tag = strings.TrimSuffix(strings.TrimPrefix(tag, "["), "]")
		}

		var blocks []string
		for _, blk := range findAll(item, withClass("ltx_bibblock"), withClass("ltx_bibblock")) {
			if text := collapseSpace(r.inline(blk)); text != "" {
				blocks = append(blocks, text)
			}
		}
		text := strings.Join(blocks, " ")

		switch {
		case tag != "" && text != "":
			entries = append(entries, "["+tag+"] "+text)
		case tag != "":
			entries = append(entries, "["+tag+"]")
		case text != "":
			entries = append(entries, text)
		}
	}
	if len(entries) == 0 {
		return ""
	}
	return "## References\n\n" + strings.Join(entries, "\n\n") + "\n"
}

// genericDocument converts a page that was not produced by LaTeXML. The
// body goes through a general-purpose HTML converter and the <title>
// element stands in for a missing document title.
func genericDocument(doc *goquery.Document, opts Options, out ExtractedDocument) ExtractedDocument {
	if out.Title == "" {
		out.Title = collapseSpace(doc.Find("title").First().Text())
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		body = doc.Selection
	}

	fragment, err := goquery.OuterHtml(body)
	if err != nil {
		return out
	}
	host := opts.ImageHost
	if host == "" {
		host = DefaultImageHost
	}
	md, err := htmltomarkdown.ConvertString(fragment, converter.WithDomain(host))
	if err != nil {
		return out
	}
	if md = strings.TrimSpace(md); md != "" {
		out.Body = md + "\n"
	}
	return out
}

func firstNode(sel *goquery.Selection) *html.Node {
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}
