package views

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cohortai/landing/sanity"
)

const (
	fallbackTitle = "Untitled"
	fallbackLink  = "/blog/post"

	// Fixed teaser card dimensions; the placeholder endpoint renders them.
	cardImageWidth  = 600
	cardImageHeight = 400
)

// PlaceholderImage returns the internal placeholder URL used when a post
// has no resolvable cover image.
func PlaceholderImage(text string) string {
	return fmt.Sprintf("/placeholder/%dx%d.png?text=%s", cardImageWidth, cardImageHeight, url.QueryEscape(text))
}

// NewCards narrows partial remote posts into total BlogCards. The mapping
// never fails: every missing field gets its fixed default, the link is
// always an internal /blog/ path, and the output length always equals the
// input length. Optionality must not leak past this point.
func NewCards(posts []sanity.Post, placeholderText string) []BlogCard {
	cards := make([]BlogCard, len(posts))
	for i, p := range posts {
		title := p.Title
		if title == "" {
			title = fallbackTitle
		}
		link := fallbackLink
		if slug := string(p.Slug); slug != "" {
			link = "/blog/" + slug
		}
		image := string(p.Image)
		if image == "" {
			image = PlaceholderImage(placeholderText)
		}
		cards[i] = BlogCard{
			Title:   title,
			Excerpt: strings.TrimSpace(p.Excerpt),
			Link:    link,
			Image:   image,
		}
	}
	return cards
}
