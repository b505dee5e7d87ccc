// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "plain text is verbatim",
			src:  "<p>one\n   two</p>",
			want: "one\n   two",
		},
		{
			name: "inline math",
			src:  `<p>Let <math alttext="x^2" class="ltx_Math" display="inline"><semantics><mi>x</mi></semantics></math> be</p>`,
			want: "Let $x^2$ be",
		},
		{
			name: "math without alttext",
			src:  `<p>a <math class="ltx_Math"><mi>x</mi></math> b</p>`,
			want: "a $$ b",
		},
		{
			name: "citation with resolved pointers",
			src:  `<p>See <cite class="ltx_cite ltx_citemacro_cite">[<a href="#bib.bib12" class="ltx_ref">12</a>, <a href="#bib.bib7" class="ltx_ref">7</a>]</cite>.</p>`,
			want: "See [12, 7].",
		},
		{
			name: "citation with unresolved pointer",
			src:  `<p><cite class="ltx_cite"><span class="ltx_ref ltx_missing_citation ltx_ref_self">smith2020</span></cite></p>`,
			want: "[smith2020]",
		},
		{
			name: "citation without pointers",
			src:  `<p><cite class="ltx_cite">[?]</cite></p>`,
			want: "[]",
		},
		{
			name: "cross reference",
			src:  `<p>Section <a href="#S2" class="ltx_ref"><span class="ltx_text ltx_ref_tag">2</span></a></p>`,
			want: "Section [2](#S2)",
		},
		{
			name: "external link",
			src:  `<p><a href="https://example.com/x">the site</a></p>`,
			want: "[the site](https://example.com/x)",
		},
		{
			name: "bold and italic",
			src:  `<p><b>bold</b> <span class="ltx_text ltx_font_italic">it</span></p>`,
			want: "**bold** *it*",
		},
		{
			name: "empty emphasis emits no markers",
			src:  `<p>a<span class="ltx_font_bold"> </span>b</p>`,
			want: "a b",
		},
		{
			name: "code keeps text only",
			src:  "<p><code>f<b>(x)</b></code></p>",
			want: "`f(x)`",
		},
		{
			name: "line break",
			src:  "<p>a<br>b</p>",
			want: "a\nb",
		},
		{
			name: "unknown element passes children through",
			src:  `<p><span class="ltx_text ltx_phantom">kept <em>text</em></span></p>`,
			want: "kept *text*",
		},
		{
			name: "footnote skips marks and tags",
			src: `<p>x<span class="ltx_note ltx_role_footnote"><sup class="ltx_note_mark">1</sup><span class="ltx_note_outer">` +
				`<span class="ltx_note_content"><sup class="ltx_note_mark">1</sup><span class="ltx_tag ltx_tag_note">1</span>` +
				`Short note on <math alttext="k"></math>.</span></span></span></p>`,
			want: "x[^Short note on k.]",
		},
	}

	r := newRenderer(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.inline(fragment(t, tt.src)))
		})
	}
}

func TestFootnoteTruncation(t *testing.T) {
	long := strings.Repeat("abcdefghij", 8)
	src := `<p><span class="ltx_note ltx_role_footnote"><span class="ltx_note_content">` + long + `</span></span></p>`

	got := newRenderer(Options{}).inline(fragment(t, src))
	assert.Equal(t, "[^"+long[:footnoteAbbrevLen]+"]", got)
}

func TestClassifyInline(t *testing.T) {
	tests := []struct {
		src  string
		want inlineKind
	}{
		{`<math alttext="x"></math>`, inlineMath},
		{`<cite>x</cite>`, inlineCitation},
		{`<span class="ltx_cite">x</span>`, inlineCitation},
		{`<span class="ltx_note ltx_role_footnote">x</span>`, inlineFootnote},
		{`<span class="ltx_note ltx_role_margin">x</span>`, inlineUnknown},
		{`<a class="ltx_ref" href="#S1">x</a>`, inlineCrossRef},
		{`<a href="https://x">x</a>`, inlineLink},
		{`<code>x</code>`, inlineCode},
		{`<strong>x</strong>`, inlineBold},
		{`<em>x</em>`, inlineItalic},
		{`<span>x</span>`, inlineUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyInline(fragment(t, tt.src)))
		})
	}
}

func TestPlainText(t *testing.T) {
	n := fragment(t, `<span>a <math alttext="x^2"><mi>x</mi></math> <sup class="ltx_note_mark">1</sup>b</span>`)

	assert.Equal(t, "a x^2 1b", textContent(n))
	assert.Equal(t, "a x^2 b", plainText(n, withClass("ltx_note_mark")))
}

func TestCrossReferenceReadsMathAsAltText(t *testing.T) {
	r := newRenderer(Options{})
	p := fragment(t, `<p><a href="#E1" class="ltx_ref">Eq. <math alttext="\alpha"><mi>α</mi></math></a></p>`)
	assert.Equal(t, `[Eq. \alpha](#E1)`, r.inline(p))
}
