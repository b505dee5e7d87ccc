// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"

	"github.com/pdiddy/arxiv-reader/pkg/types"
)

var extraBlankLines = regexp.MustCompile(`\n{3,}`)

// Assemble concatenates the regions of doc selected by level into one
// Markdown document. It is deterministic: equal inputs give equal bytes.
func Assemble(doc ExtractedDocument, level types.DetailLevel) string {
	var title string
	if doc.Title != "" {
		title = "# " + doc.Title
	}
	var abstract string
	if doc.Abstract != "" {
		abstract = "## Abstract\n\n" + doc.Abstract
	}

	var parts []string
	switch level {
	case types.LevelAbstract:
		parts = []string{title, doc.Authors, abstract}
	case types.LevelAppendix:
		if strings.TrimSpace(doc.Appendix) == "" {
			return ""
		}
		parts = []string{title, doc.Appendix}
	case types.LevelAll:
		var appendix string
		if strings.TrimSpace(doc.Appendix) != "" {
			appendix = "---\n\n# Appendix\n\n" + doc.Appendix
		}
		parts = []string{title, doc.Authors, abstract, doc.Body, doc.References, appendix}
	default:
		parts = []string{title, doc.Authors, abstract, doc.Body}
	}
	return join(parts)
}

func join(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	out := strings.Join(kept, "\n\n")
	return extraBlankLines.ReplaceAllString(out, "\n\n") + "\n"
}
