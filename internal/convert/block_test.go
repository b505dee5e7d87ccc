// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func TestBlockTable(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "header row and body row",
			src:  `<table class="ltx_tabular"><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>`,
			want: "| A | B |\n| --- | --- |\n| 1 | 2 |\n\n",
		},
		{
			name: "pipes are escaped and newlines collapse",
			src:  "<table><tr><td>a|b</td><td>c<br>d</td></tr></table>",
			want: "| a\\|b | c d |\n| --- | --- |\n\n",
		},
		{
			name: "table without rows",
			src:  "<table></table>",
			want: "",
		},
	}
	r := newRenderer(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.block(fragment(t, tt.src), sectionDepth))
		})
	}
}

func TestTableParsesAsGFMTable(t *testing.T) {
	src := `<table><tr><th>Model</th><th>Acc</th></tr><tr><td>Ours</td><td>91.2</td></tr></table>`
	md := []byte(newRenderer(Options{}).block(fragment(t, src), sectionDepth))

	doc := markdown.Parser().Parse(text.NewReader(md))
	var found bool
	require.NoError(t, ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if _, ok := n.(*extast.Table); ok && entering {
			found = true
		}
		return ast.WalkContinue, nil
	}))
	assert.True(t, found, "rendered table is not a GFM table:\n%s", md)
}

func TestBlockEquation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "numbered equation",
			src: `<table class="ltx_equation ltx_eqn_table"><tbody><tr class="ltx_equation ltx_eqn_row">` +
				`<td class="ltx_eqn_cell"><math alttext="x=y" display="block"></math></td>` +
				`<td class="ltx_eqn_cell ltx_eqn_eqno"><span class="ltx_tag ltx_tag_equation">(3)</span></td>` +
				`</tr></tbody></table>`,
			want: "\n$$\nx=y\n$$ (3)\n\n",
		},
		{
			name: "unnumbered equation",
			src:  `<table class="ltx_equation"><tr><td><math alttext="a+b"></math></td></tr></table>`,
			want: "\n$$\na+b\n$$\n\n",
		},
		{
			name: "aligned cells join",
			src: `<table class="ltx_equation"><tr><td><math alttext="f(x)"></math></td>` +
				`<td><math alttext="=x^2"></math></td></tr></table>`,
			want: "\n$$\nf(x) =x^2\n$$\n\n",
		},
		{
			name: "equation group renders one block per row",
			src: `<table class="ltx_equationgroup ltx_eqn_align"><tbody>` +
				`<tr class="ltx_equation ltx_eqn_row"><td><math alttext="a=1"></math></td><td><span class="ltx_tag ltx_tag_equation">(1)</span></td></tr>` +
				`<tr class="ltx_equation ltx_eqn_row"><td><math alttext="b=2"></math></td><td><span class="ltx_tag ltx_tag_equation">(2)</span></td></tr>` +
				`</tbody></table>`,
			want: "\n$$\na=1\n$$ (1)\n\n\n$$\nb=2\n$$ (2)\n\n",
		},
	}
	r := newRenderer(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.block(fragment(t, tt.src), sectionDepth))
		})
	}
}

func TestBlockFigure(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		src  string
		want string
	}{
		{
			name: "site-relative image and caption",
			src:  `<figure class="ltx_figure"><img src="/html/2301.07041/x1.png" alt="Refer to caption"><figcaption>Figure 1: Overview.</figcaption></figure>`,
			want: "![Refer to caption](https://arxiv.org/html/2301.07041/x1.png)\n\n*Figure 1: Overview.*\n\n",
		},
		{
			name: "configured image host",
			opts: Options{ImageHost: "https://ar5iv.labs.arxiv.org/"},
			src:  `<figure><img src="/assets/x1.png" alt="plot"></figure>`,
			want: "![plot](https://ar5iv.labs.arxiv.org/assets/x1.png)\n\n",
		},
		{
			name: "page-relative image resolves against base URL",
			opts: Options{BaseURL: "https://arxiv.org/html/2301.07041v2/"},
			src:  `<figure><img src="x1.png" alt="plot"></figure>`,
			want: "![plot](https://arxiv.org/html/2301.07041v2/x1.png)\n\n",
		},
		{
			name: "page URL without trailing slash is the asset directory",
			opts: Options{BaseURL: "https://arxiv.org/html/2301.07041"},
			src:  `<figure><img src="x1.png" alt="plot"></figure>`,
			want: "![plot](https://arxiv.org/html/2301.07041/x1.png)\n\n",
		},
		{
			name: "page-relative image without base URL",
			src:  `<figure><img src="x1.png"></figure>`,
			want: "![Figure](x1.png)\n\n",
		},
		{
			name: "absolute image unchanged",
			src:  `<figure><img src="https://cdn.example.org/a.png" alt="a"></figure>`,
			want: "![a](https://cdn.example.org/a.png)\n\n",
		},
		{
			name: "caption without image",
			src:  `<figure class="ltx_figure"><figcaption><span class="ltx_tag">Figure 2: </span>Text only.</figcaption></figure>`,
			want: "*Figure 2: Text only.*\n\n",
		},
		{
			name: "table float",
			src:  `<figure class="ltx_table"><figcaption>Table 1: Scores.</figcaption><table><tr><td>x</td></tr></table></figure>`,
			want: "| x |\n| --- |\n\n*Table 1: Scores.*\n\n",
		},
		{
			name: "sub-figures keep their own captions",
			src: `<figure class="ltx_figure">` +
				`<figure class="ltx_figure"><img src="/a.png" alt="a"><figcaption>(a)</figcaption></figure>` +
				`<figure class="ltx_figure"><img src="/b.png" alt="b"><figcaption>(b)</figcaption></figure>` +
				`<figcaption>Figure 3: Both.</figcaption></figure>`,
			want: "![a](https://arxiv.org/a.png)\n\n*(a)*\n\n![b](https://arxiv.org/b.png)\n\n*(b)*\n\n*Figure 3: Both.*\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(tt.opts)
			assert.Equal(t, tt.want, r.block(fragment(t, tt.src), sectionDepth))
		})
	}
}

func TestBlockTheorem(t *testing.T) {
	src := `<div class="ltx_theorem ltx_theorem_theorem">` +
		`<h6 class="ltx_title ltx_runin ltx_title_theorem"><span class="ltx_tag">Theorem 1</span>.</h6>` +
		`<div class="ltx_para"><p class="ltx_p">Every x is y.</p></div>` +
		`<div class="ltx_para"><p class="ltx_p">Also z.</p></div>` +
		`</div>`
	got := newRenderer(Options{}).block(fragment(t, src), sectionDepth)
	assert.Equal(t, "**Theorem 1.**\n\nEvery x is y.\n\nAlso z.\n\n", got)
}

func TestSectionDepth(t *testing.T) {
	src := `<section class="ltx_section">` +
		`<h2 class="ltx_title ltx_title_section">1 Intro</h2>` +
		`<div class="ltx_para"><p class="ltx_p">Hello.</p></div>` +
		`<h5 class="ltx_not_a_title">skipped</h5>` +
		`<div class="ltx_pagination">skipped</div>` +
		`<section class="ltx_subsection"><h3 class="ltx_title">1.1 Sub</h3>` +
		`<section class="ltx_subsubsection"><h4 class="ltx_title">1.1.1 Deep</h4>` +
		`<p>Deep text.</p></section></section></section>`

	got := newRenderer(Options{}).section(fragment(t, src), sectionDepth)
	want := "## 1 Intro\n\nHello.\n\n### 1.1 Sub\n\n#### 1.1.1 Deep\n\nDeep text.\n\n"
	assert.Equal(t, want, got)
}

func TestBlockList(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "itemize drops bullet tags",
			src: `<ul class="ltx_itemize"><li class="ltx_item"><span class="ltx_tag ltx_tag_item">•</span>` +
				`<div class="ltx_para"><p>First.</p></div></li><li><p>Second.</p></li></ul>`,
			want: "- First.\n- Second.\n\n",
		},
		{
			name: "enumerate numbers items",
			src:  `<ol><li>a</li><li></li><li>b</li></ol>`,
			want: "1. a\n2. b\n\n",
		},
		{
			name: "empty list",
			src:  `<ul></ul>`,
			want: "",
		},
	}
	r := newRenderer(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.block(fragment(t, tt.src), sectionDepth))
		})
	}
}

func TestParagraphSkipsEmpty(t *testing.T) {
	r := newRenderer(Options{})
	assert.Equal(t, "", r.block(fragment(t, "<p>  \n </p>"), sectionDepth))
	assert.Equal(t, "a\nb\n\n", r.block(fragment(t, "<p> a <br> b </p>"), sectionDepth))
}

func TestParagraphNormalizesSourceWhitespace(t *testing.T) {
	r := newRenderer(Options{})
	p := fragment(t, "<p>  one   two\n\n   three <em>four\tfive</em>  </p>")

	assert.Equal(t, "  one   two\n\n   three *four\tfive*  ", r.inline(p))
	assert.Equal(t, "one two\nthree *four five*\n\n", r.block(p, sectionDepth))
}

func TestBaseHref(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		href string
		want string
	}{
		{
			name: "site-relative base against the page URL",
			opts: Options{BaseURL: "https://arxiv.org/html/2301.07041"},
			href: "/html/2301.07041v1/",
			want: "https://arxiv.org/html/2301.07041v1/x1.png",
		},
		{
			name: "site-relative base without page URL uses the image host",
			opts: Options{ImageHost: "https://ar5iv.labs.arxiv.org"},
			href: "/html/2301.07041/",
			want: "https://ar5iv.labs.arxiv.org/html/2301.07041/x1.png",
		},
		{
			name: "absolute base",
			opts: Options{BaseURL: "https://arxiv.org/html/2301.07041"},
			href: "https://mirror.example.org/papers/2301.07041/",
			want: "https://mirror.example.org/papers/2301.07041/x1.png",
		},
		{
			name: "empty base keeps the page URL",
			opts: Options{BaseURL: "https://arxiv.org/html/2301.07041"},
			href: "  ",
			want: "https://arxiv.org/html/2301.07041/x1.png",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(tt.opts)
			r.setBaseHref(tt.href)
			assert.Equal(t, tt.want, r.resolveSrc("x1.png"))
		})
	}
}
