// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int
	Text  string
}

// markdown parses assembled output the way a GFM consumer would.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Outline lists the headings of an assembled Markdown document in order.
func Outline(md string) []Heading {
	src := []byte(md)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var out []Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			out = append(out, Heading{
				Level: h.Level,
				Text:  strings.TrimSpace(string(h.Text(src))),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// WriteOutline prints headings as an indented tree, one per line.
func WriteOutline(w io.Writer, headings []Heading) {
	for _, h := range headings {
		indent := ""
		if h.Level > 1 {
			indent = strings.Repeat("  ", h.Level-1)
		}
		fmt.Fprintf(w, "%s- %s\n", indent, h.Text)
	}
}
