// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// fragment parses src as the content of a <body> and returns its first
// element child.
func fragment(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + src + "</body></html>"))
	require.NoError(t, err)
	body := findFirst(doc, isTag("body"), nil)
	require.NotNil(t, body)
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	t.Fatalf("no element in fragment %q", src)
	return nil
}

func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/2301.07041.html")
	require.NoError(t, err)
	return string(data)
}
