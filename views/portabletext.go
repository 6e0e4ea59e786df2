package views

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/cohortai/landing/sanity"
)

// PortableText returns a templ.Component rendering a structured document
// body as HTML. Rendering is a pure function from block/mark tags to
// fragments: every tag the schema defines has exactly one rule, and any
// unknown tag degrades to its plain inline content instead of failing.
func PortableText(body []sanity.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderBlocks(&buf, body)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderBlocks(buf *bytes.Buffer, blocks []sanity.Block) {
	openList := "" // "ul", "ol", or "" when no list is open
	flushList := func() {
		if openList != "" {
			buf.WriteString("</" + openList + ">")
			openList = ""
		}
	}

	for _, b := range blocks {
		if b.ListItem != "" {
			tag := "ul"
			if b.ListItem == "number" {
				tag = "ol"
			}
			if openList != tag {
				flushList()
				buf.WriteString("<" + tag + ">")
				openList = tag
			}
			buf.WriteString("<li>")
			writeSpans(buf, b)
			buf.WriteString("</li>")
			continue
		}
		flushList()

		switch b.Style {
		case "h2":
			buf.WriteString("<h2>")
			writeSpans(buf, b)
			buf.WriteString("</h2>")
		case "h3":
			buf.WriteString("<h3>")
			writeSpans(buf, b)
			buf.WriteString("</h3>")
		case "blockquote":
			buf.WriteString("<blockquote>")
			writeSpans(buf, b)
			buf.WriteString("</blockquote>")
		default:
			// "normal" and any style without a rule render as a paragraph.
			if len(b.Children) == 0 {
				continue
			}
			buf.WriteString("<p>")
			writeSpans(buf, b)
			buf.WriteString("</p>")
		}
	}
	flushList()
}

func writeSpans(buf *bytes.Buffer, b sanity.Block) {
	for _, span := range b.Children {
		writeSpan(buf, span, b.MarkDefs)
	}
}

// writeSpan wraps the escaped text in one tag per recognized mark, nesting
// in declaration order. Marks without a rule leave the text plain.
func writeSpan(buf *bytes.Buffer, span sanity.Span, defs []sanity.MarkDef) {
	var open, closing string
	for _, mark := range span.Marks {
		switch mark {
		case "strong":
			open += "<strong>"
			closing = "</strong>" + closing
		case "em":
			open += "<em>"
			closing = "</em>" + closing
		case "code":
			open += "<code>"
			closing = "</code>" + closing
		default:
			if href := linkHref(mark, defs); href != "" {
				open += `<a href="` + href + `" target="_blank" rel="noreferrer">`
				closing = "</a>" + closing
			}
		}
	}
	buf.WriteString(open)
	buf.WriteString(html.EscapeString(span.Text))
	buf.WriteString(closing)
}

// linkHref resolves a span mark against the block's link definitions; the
// empty string means the mark is not a usable link.
func linkHref(key string, defs []sanity.MarkDef) string {
	for _, d := range defs {
		if d.Key == key && d.Type == "link" {
			return safeURL(d.Href)
		}
	}
	return ""
}

// ReadingTime estimates how long the body takes to read: the whitespace
// word count of the serialized document at 200 words per minute, never
// below 2 minutes. The serialized form overcounts words (keys and markup
// land in the tally), so this is a rough heuristic, not a measurement.
func ReadingTime(body []sanity.Block) string {
	if len(body) == 0 {
		return "3 min read"
	}
	serialized, err := json.Marshal(body)
	if err != nil {
		return "3 min read"
	}
	words := len(strings.Fields(string(serialized)))
	minutes := (words + 100) / 200
	if minutes < 2 {
		minutes = 2
	}
	return fmt.Sprintf("%d min read", minutes)
}

// safeURL validates and sanitizes a URL for use in HTML attributes.
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
