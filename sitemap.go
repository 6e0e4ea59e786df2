package landing

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cohortai/landing/sanity"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// renderSitemap emits the crawl map: the landing page dominant and
// fast-moving, the thanks page a rarely-changing leaf, and whatever posts
// are currently known. Post URLs are best-effort; the sitemap must render
// even when the CMS is down.
func (a *App) renderSitemap(c echo.Context, posts []sanity.Post) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base), ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: BuildURL(base, "thanks"), ChangeFreq: "yearly", Priority: "0.3"},
	}
	for _, p := range posts {
		if p.Slug == "" {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", string(p.Slug)),
			LastMod: dateOnly(p.PublishedAt),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

// dateOnly reduces an RFC 3339 timestamp to its date part.
func dateOnly(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i > 0 {
		return ts[:i]
	}
	return ts
}
