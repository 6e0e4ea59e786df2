package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cohortai/landing/sanity"
)

func renderBody(t *testing.T, blocks []sanity.Block) string {
	t.Helper()
	var buf bytes.Buffer
	if err := PortableText(blocks).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render error: %v", err)
	}
	return buf.String()
}

func textBlock(style, text string) sanity.Block {
	return sanity.Block{
		Type:     "block",
		Style:    style,
		Children: []sanity.Span{{Type: "span", Text: text}},
	}
}

func TestPortableTextStyles(t *testing.T) {
	tests := []struct {
		name  string
		block sanity.Block
		want  string
	}{
		{"normal", textBlock("normal", "body text"), "<p>body text</p>"},
		{"h2", textBlock("h2", "Section"), "<h2>Section</h2>"},
		{"h3", textBlock("h3", "Subsection"), "<h3>Subsection</h3>"},
		{"blockquote", textBlock("blockquote", "quoted"), "<blockquote>quoted</blockquote>"},
		{"unknown style degrades to paragraph", textBlock("h9", "odd"), "<p>odd</p>"},
		{"empty style", textBlock("", "plain"), "<p>plain</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderBody(t, []sanity.Block{tt.block}); got != tt.want {
				t.Fatalf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPortableTextListGrouping(t *testing.T) {
	bullet := func(text string) sanity.Block {
		b := textBlock("normal", text)
		b.ListItem = "bullet"
		return b
	}
	number := func(text string) sanity.Block {
		b := textBlock("normal", text)
		b.ListItem = "number"
		return b
	}

	blocks := []sanity.Block{
		bullet("one"), bullet("two"),
		number("first"), number("second"),
		textBlock("normal", "after"),
	}
	got := renderBody(t, blocks)
	want := "<ul><li>one</li><li>two</li></ul><ol><li>first</li><li>second</li></ol><p>after</p>"
	if got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestPortableTextTrailingListIsClosed(t *testing.T) {
	b := textBlock("normal", "only")
	b.ListItem = "bullet"
	got := renderBody(t, []sanity.Block{b})
	if got != "<ul><li>only</li></ul>" {
		t.Fatalf("render = %q", got)
	}
}

func TestPortableTextMarks(t *testing.T) {
	block := sanity.Block{
		Type:  "block",
		Style: "normal",
		Children: []sanity.Span{
			{Type: "span", Text: "bold", Marks: []string{"strong"}},
			{Type: "span", Text: " and "},
			{Type: "span", Text: "nested", Marks: []string{"strong", "em"}},
		},
	}
	got := renderBody(t, []sanity.Block{block})
	want := "<p><strong>bold</strong> and <strong><em>nested</em></strong></p>"
	if got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestPortableTextLinkMark(t *testing.T) {
	block := sanity.Block{
		Type:  "block",
		Style: "normal",
		Children: []sanity.Span{
			{Type: "span", Text: "read this", Marks: []string{"abc123"}},
		},
		MarkDefs: []sanity.MarkDef{
			{Key: "abc123", Type: "link", Href: "https://example.com/post"},
		},
	}
	got := renderBody(t, []sanity.Block{block})
	want := `<p><a href="https://example.com/post" target="_blank" rel="noreferrer">read this</a></p>`
	if got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestPortableTextUnknownMarkLeavesTextPlain(t *testing.T) {
	block := sanity.Block{
		Type:  "block",
		Style: "normal",
		Children: []sanity.Span{
			{Type: "span", Text: "highlighted", Marks: []string{"highlight"}},
		},
	}
	if got := renderBody(t, []sanity.Block{block}); got != "<p>highlighted</p>" {
		t.Fatalf("render = %q, want plain text for unknown mark", got)
	}
}

func TestPortableTextUnsafeHrefDropped(t *testing.T) {
	block := sanity.Block{
		Type:  "block",
		Style: "normal",
		Children: []sanity.Span{
			{Type: "span", Text: "click", Marks: []string{"bad"}},
		},
		MarkDefs: []sanity.MarkDef{
			{Key: "bad", Type: "link", Href: "javascript:alert(1)"},
		},
	}
	got := renderBody(t, []sanity.Block{block})
	if strings.Contains(got, "javascript") || strings.Contains(got, "<a") {
		t.Fatalf("render = %q, unsafe href must not produce a link", got)
	}
}

func TestPortableTextEscapesText(t *testing.T) {
	got := renderBody(t, []sanity.Block{textBlock("normal", `<script>"x"</script>`)})
	if strings.Contains(got, "<script>") {
		t.Fatalf("render = %q, text must be escaped", got)
	}
}

func TestPortableTextChildlessUnknownBlockSkipped(t *testing.T) {
	blocks := []sanity.Block{
		{Type: "imageEmbed", Style: ""},
		textBlock("normal", "kept"),
	}
	if got := renderBody(t, blocks); got != "<p>kept</p>" {
		t.Fatalf("render = %q", got)
	}
}

func TestReadingTime(t *testing.T) {
	if got := ReadingTime(nil); got != "3 min read" {
		t.Fatalf("empty body = %q, want default", got)
	}

	short := []sanity.Block{textBlock("normal", "just a few words")}
	if got := ReadingTime(short); got != "2 min read" {
		t.Fatalf("short body = %q, want floor of 2", got)
	}

	long := make([]sanity.Block, 0, 40)
	sentence := strings.Repeat("word ", 30)
	for i := 0; i < 40; i++ {
		long = append(long, textBlock("normal", sentence))
	}
	got := ReadingTime(long)
	if got == "2 min read" || got == "3 min read" {
		t.Fatalf("long body = %q, want larger estimate", got)
	}
	if !strings.HasSuffix(got, " min read") {
		t.Fatalf("long body = %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"mailto:hi@example.com", "mailto:hi@example.com"},
		{"/blog/post", "/blog/post"},
		{"#section", "#section"},
		{"javascript:alert(1)", ""},
		{"data:text/html,x", ""},
		{"no-scheme.example", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := safeURL(tt.in); got != tt.want {
			t.Fatalf("safeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
