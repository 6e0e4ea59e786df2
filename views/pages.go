package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/cohortai/landing/sanity"
)

// contributorLabel is the byline fallback when a post's author record has
// no bio of its own.
const contributorLabel = "Contributor, The Plan"

// page assembles the shared document chrome around a body writer. All page
// components below go through it so meta tags, the stylesheet, and the
// footer stay consistent.
func page(site Site, meta PageMeta, jsonLD string, body func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!doctype html><html lang=\"en\"><head>")
		buf.WriteString("<meta charset=\"utf-8\"/>")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		buf.WriteString("<title>" + html.EscapeString(meta.Title) + "</title>")
		if meta.Description != "" {
			buf.WriteString("<meta name=\"description\" content=\"" + html.EscapeString(meta.Description) + "\"/>")
		}
		if meta.URL != "" {
			buf.WriteString("<link rel=\"canonical\" href=\"" + html.EscapeString(meta.URL) + "\"/>")
			buf.WriteString("<meta property=\"og:url\" content=\"" + html.EscapeString(meta.URL) + "\"/>")
		}
		buf.WriteString("<meta property=\"og:type\" content=\"" + html.EscapeString(meta.OGType) + "\"/>")
		buf.WriteString("<meta property=\"og:title\" content=\"" + html.EscapeString(meta.Title) + "\"/>")
		if meta.Description != "" {
			buf.WriteString("<meta property=\"og:description\" content=\"" + html.EscapeString(meta.Description) + "\"/>")
		}
		buf.WriteString("<link rel=\"icon\" href=\"/favicon.svg\" type=\"image/svg+xml\"/>")
		buf.WriteString("<link rel=\"stylesheet\" href=\"/public/site.css\"/>")
		if jsonLD != "" {
			buf.WriteString("<script type=\"application/ld+json\">" + jsonLD + "</script>")
		}
		buf.WriteString("</head><body>")
		body(&buf)
		writeFooter(&buf, site)
		buf.WriteString("</body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHeader(buf *bytes.Buffer, site Site) {
	buf.WriteString("<header class=\"topnav\"><div class=\"container\">")
	buf.WriteString("<a class=\"brand\" href=\"/\">" + html.EscapeString(site.Name) + "</a>")
	buf.WriteString("<span class=\"badge\">Coming Soon</span>")
	buf.WriteString("<nav><a href=\"/#about\">About</a> <a href=\"/#blog\">The Plan Blog</a></nav>")
	buf.WriteString("</div></header>")
}

func writeFooter(buf *bytes.Buffer, site Site) {
	buf.WriteString("<footer class=\"footer\"><div class=\"container\">")
	buf.WriteString("<p>" + html.EscapeString(site.Description) + "</p>")
	buf.WriteString("<nav><a href=\"/#about\">About</a> <a href=\"/#blog\">The Plan Blog</a> <a href=\"/feed.xml\">RSS</a></nav>")
	buf.WriteString("<p class=\"fineprint\">&copy; " + html.EscapeString(site.Name) + ". All rights reserved.</p>")
	buf.WriteString("</div></footer>")
}

// Home renders the landing page: hero with the signup form, then the blog
// teaser grid.
func Home(site Site, cards []BlogCard, form SubscribeForm) templ.Component {
	meta := PageMeta{
		Title:       site.Name + " — Make better decisions with data",
		Description: site.Description,
		URL:         buildURL(site.URL),
		OGType:      "website",
	}
	return page(site, meta, WebsiteJsonLD(site), func(buf *bytes.Buffer) {
		writeHeader(buf, site)

		buf.WriteString("<section class=\"hero\" id=\"about\"><div class=\"container\">")
		buf.WriteString("<h1>We're not quite ready yet</h1>")
		buf.WriteString("<p>" + html.EscapeString(site.Description) + "</p>")
		buf.WriteString("<p class=\"accent\">Whilst you're waiting, enjoy our new AI in education blog &amp; newsletter called <strong>The Plan</strong>.</p>")
		writeSubscribeForm(buf, form)
		buf.WriteString("</div></section>")

		buf.WriteString("<section class=\"blog\" id=\"blog\"><div class=\"container\">")
		buf.WriteString("<h2>Latest from The Plan</h2><div class=\"grid\">")
		for _, card := range cards {
			buf.WriteString("<article class=\"card\">")
			buf.WriteString("<img src=\"" + html.EscapeString(card.Image) + "\" alt=\"" + html.EscapeString(card.Title) + "\" loading=\"lazy\"/>")
			buf.WriteString("<div class=\"card-body\"><h3>" + html.EscapeString(card.Title) + "</h3>")
			if card.Excerpt != "" {
				buf.WriteString("<p>" + html.EscapeString(card.Excerpt) + "</p>")
			}
			buf.WriteString("<a href=\"" + html.EscapeString(card.Link) + "\">Read more</a></div>")
			buf.WriteString("</article>")
		}
		buf.WriteString("</div></div></section>")
	})
}

func writeSubscribeForm(buf *bytes.Buffer, form SubscribeForm) {
	buf.WriteString("<form class=\"subscribe\" method=\"post\" action=\"" + html.EscapeString(form.Action) + "\">")
	buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + html.EscapeString(form.CSRF) + "\"/>")
	disabled := ""
	if !form.Ready {
		disabled = " disabled"
	}
	buf.WriteString("<input type=\"email\" name=\"EMAIL\" placeholder=\"Your work email\" required value=\"" + html.EscapeString(form.Email) + "\"" + disabled + "/>")
	// Honeypot: hidden from people, tempting to bots; forwarded verbatim.
	if form.Honeypot != "" {
		buf.WriteString("<input type=\"text\" name=\"" + html.EscapeString(form.Honeypot) + "\" tabindex=\"-1\" autocomplete=\"off\" class=\"hp\"/>")
	}
	for _, tag := range form.Tags {
		buf.WriteString("<input type=\"hidden\" name=\"tags[]\" value=\"" + html.EscapeString(tag) + "\"/>")
	}
	buf.WriteString("<button type=\"submit\"" + disabled + ">Join waitlist</button>")
	buf.WriteString("</form>")
	if !form.Ready {
		buf.WriteString("<p class=\"form-note\">Mailing list coming soon — the button is disabled until it's configured.</p>")
	}
	if form.Error != "" {
		buf.WriteString("<p class=\"form-error\">" + html.EscapeString(form.Error) + "</p>")
	}
}

// Post renders a full blog post reading view. Optional fields default at
// render time: the date is omitted when absent and the author byline falls
// back to the fixed contributor label.
func Post(site Site, post sanity.Post, comments Comments) templ.Component {
	title := post.Title
	if title == "" {
		title = "Untitled"
	}
	meta := PageMeta{
		Title:       title + " | " + site.Name,
		Description: post.Excerpt,
		URL:         buildURL(site.URL, "blog", string(post.Slug)),
		OGType:      "article",
	}
	return page(site, meta, BlogPostingJsonLD(site, post), func(buf *bytes.Buffer) {
		buf.WriteString("<header class=\"topnav\"><div class=\"container\">")
		buf.WriteString("<nav><a href=\"/\">&larr; Home</a> <span aria-hidden=\"true\">/</span> <a href=\"/#blog\">The Plan</a></nav>")
		buf.WriteString("</div></header>")

		buf.WriteString("<article class=\"post\"><div class=\"container\">")
		if cover := string(post.CoverImage); cover != "" {
			buf.WriteString("<img class=\"cover\" src=\"" + html.EscapeString(cover) + "\" alt=\"" + html.EscapeString(title) + "\"/>")
		}
		buf.WriteString("<h1>" + html.EscapeString(title) + "</h1>")

		buf.WriteString("<p class=\"meta\">")
		if date := FormatDate(post.PublishedAt); date != "" {
			buf.WriteString("<span>" + html.EscapeString(date) + "</span> &bull; ")
		}
		buf.WriteString("<span>" + html.EscapeString(ReadingTime(post.Body)) + "</span>")
		if post.Author != nil && post.Author.Name != "" {
			buf.WriteString(" &bull; <span>By " + html.EscapeString(post.Author.Name) + "</span>")
		}
		buf.WriteString("</p>")

		if post.Author != nil && post.Author.Name != "" {
			buf.WriteString("<aside class=\"author\">")
			if img := string(post.Author.Image); img != "" {
				buf.WriteString("<img src=\"" + html.EscapeString(img) + "\" alt=\"" + html.EscapeString(post.Author.Name) + "\"/>")
			}
			buf.WriteString("<div><strong>" + html.EscapeString(post.Author.Name) + "</strong>")
			bio := post.Author.Bio
			if bio == "" {
				bio = contributorLabel
			}
			buf.WriteString("<p>" + html.EscapeString(bio) + "</p></div></aside>")
		}

		buf.WriteString("<div class=\"prose\">")
		renderBlocks(buf, post.Body)
		buf.WriteString("</div>")

		buf.WriteString("<hr/><h2>Comments</h2>")
		writeComments(buf, comments)
		buf.WriteString("</div></article>")
	})
}

func writeComments(buf *bytes.Buffer, comments Comments) {
	if !comments.Configured() {
		buf.WriteString("<div class=\"comments\">Comments are coming soon. Want early access? <a href=\"/#top\">Join the waitlist</a>.</div>")
		return
	}
	buf.WriteString("<div class=\"comments\"><script src=\"https://giscus.app/client.js\"")
	buf.WriteString(" data-repo=\"" + html.EscapeString(comments.Repo) + "\"")
	buf.WriteString(" data-repo-id=\"" + html.EscapeString(comments.RepoID) + "\"")
	buf.WriteString(" data-category=\"" + html.EscapeString(comments.Category) + "\"")
	buf.WriteString(" data-category-id=\"" + html.EscapeString(comments.CategoryID) + "\"")
	buf.WriteString(" data-mapping=\"pathname\" data-reactions-enabled=\"1\" crossorigin=\"anonymous\" async></script></div>")
}

// Thanks renders the post-signup confirmation page.
func Thanks(site Site, email string) templ.Component {
	meta := PageMeta{
		Title:       "Thanks — Confirm your email | " + site.Name,
		Description: "You're nearly there — check your inbox and confirm your email to join The Plan.",
		URL:         buildURL(site.URL, "thanks"),
		OGType:      "website",
	}
	return page(site, meta, "", func(buf *bytes.Buffer) {
		writeHeader(buf, site)
		buf.WriteString("<section class=\"thanks\"><div class=\"container\">")
		buf.WriteString("<h1>Please confirm your email</h1>")
		if email != "" {
			buf.WriteString("<p>We've sent a confirmation link to <strong>" + html.EscapeString(email) + "</strong>. Click it to complete your subscription to <strong>The Plan</strong>.</p>")
		} else {
			buf.WriteString("<p>We've sent a confirmation link to your inbox. Click it to complete your subscription to <strong>The Plan</strong>.</p>")
		}
		buf.WriteString("<div class=\"help\"><p><strong>Didn't get an email?</strong></p><ul>")
		buf.WriteString("<li>Check your spam or junk folder.</li>")
		buf.WriteString("<li>Add the sender to your safe senders.</li>")
		buf.WriteString("<li>Try signing up again with the correct email address.</li>")
		buf.WriteString("</ul></div>")
		buf.WriteString("<p><a href=\"/\">&larr; Back to home</a> <a class=\"button\" href=\"/#blog\">Read The Plan</a></p>")
		buf.WriteString("</div></section>")
	})
}

// NotFound renders the terminal state for a missing post or unknown path.
func NotFound(site Site) templ.Component {
	meta := PageMeta{
		Title:  "Not found | " + site.Name,
		URL:    buildURL(site.URL),
		OGType: "website",
	}
	return page(site, meta, "", func(buf *bytes.Buffer) {
		writeHeader(buf, site)
		buf.WriteString("<section class=\"error-page\"><div class=\"container\">")
		buf.WriteString("<h1>Page not found</h1>")
		buf.WriteString("<p>That page doesn't exist or the post has been unpublished.</p>")
		buf.WriteString("<p><a href=\"/\">&larr; Back to home</a></p>")
		buf.WriteString("</div></section>")
	})
}

// ServerError renders the 5xx page.
func ServerError(site Site) templ.Component {
	meta := PageMeta{
		Title:  "Something went wrong | " + site.Name,
		URL:    buildURL(site.URL),
		OGType: "website",
	}
	return page(site, meta, "", func(buf *bytes.Buffer) {
		writeHeader(buf, site)
		buf.WriteString("<section class=\"error-page\"><div class=\"container\">")
		buf.WriteString("<h1>Something went wrong</h1>")
		buf.WriteString("<p>Please try again in a moment.</p>")
		buf.WriteString("<p><a href=\"/\">&larr; Back to home</a></p>")
		buf.WriteString("</div></section>")
	})
}
