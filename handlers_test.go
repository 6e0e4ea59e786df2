package landing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cohortai/landing/views"
)

// newTestApp wires a full App against a stub content API without binding a
// listener.
func newTestApp(t *testing.T, cmsURL string) *App {
	t.Helper()
	a := New(SiteConfig{
		SanityProjectID:      "p",
		SanityDataset:        "d",
		SessionSecret:        "test-secret",
		FallbackDatabasePath: filepath.Join(t.TempDir(), "teasers.db"),
	})
	if err := a.init(); err != nil {
		t.Fatalf("init() error = %v", err)
	}
	a.CMS.BaseURL = cmsURL
	t.Cleanup(func() { a.Close() })
	return a
}

func get(a *App, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return a.Echo.NewContext(req, rec), rec
}

func stubCMS(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const fivePosts = `{"result": [
	{"title": "One", "slug": "one", "image": "https://cdn.example/1.jpg"},
	{"title": "Two", "slug": "two", "image": "https://cdn.example/2.jpg"},
	{"title": "Three", "slug": "three", "image": "https://cdn.example/3.jpg"},
	{"title": "Four", "slug": "four", "image": "https://cdn.example/4.jpg"},
	{"title": "Five", "slug": "five", "image": "https://cdn.example/5.jpg"}
]}`

func TestAPIPostsHonorsLimit(t *testing.T) {
	srv := stubCMS(t, fivePosts)
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/api/posts?limit=2")
	if err := a.handleAPIPosts(c); err != nil {
		t.Fatalf("handleAPIPosts() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cards []views.BlogCard
	if err := json.Unmarshal(rec.Body.Bytes(), &cards); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
	if cards[0].Link != "/blog/one" {
		t.Fatalf("cards[0].Link = %q", cards[0].Link)
	}
}

func TestAPIPostsDefaultLimit(t *testing.T) {
	srv := stubCMS(t, fivePosts)
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/api/posts")
	if err := a.handleAPIPosts(c); err != nil {
		t.Fatalf("handleAPIPosts() error = %v", err)
	}
	var cards []views.BlogCard
	if err := json.Unmarshal(rec.Body.Bytes(), &cards); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want default 3", len(cards))
	}
}

func TestAPIPostsIgnoresBadLimit(t *testing.T) {
	srv := stubCMS(t, fivePosts)
	a := newTestApp(t, srv.URL)

	for _, target := range []string{"/api/posts?limit=0", "/api/posts?limit=-1", "/api/posts?limit=abc"} {
		c, rec := get(a, target)
		if err := a.handleAPIPosts(c); err != nil {
			t.Fatalf("handleAPIPosts(%q) error = %v", target, err)
		}
		var cards []views.BlogCard
		if err := json.Unmarshal(rec.Body.Bytes(), &cards); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(cards) != 3 {
			t.Fatalf("%q: len(cards) = %d, want fallback to default 3", target, len(cards))
		}
	}
}

func TestAPIPostsUpstreamFailureIsEmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/api/posts")
	if err := a.handleAPIPosts(c); err != nil {
		t.Fatalf("handleAPIPosts() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, failures must still be 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want empty array", got)
	}
}

func TestHandlePostNotFound(t *testing.T) {
	srv := stubCMS(t, `{"result": null}`)
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/blog/missing/")
	c.SetParamNames("slug")
	c.SetParamValues("missing")
	if err := a.handlePost(c); err != nil {
		t.Fatalf("handlePost() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown slug", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Fatalf("body does not render the not-found page")
	}
}

func TestHandlePostUpstreamErrorIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/blog/any/")
	c.SetParamNames("slug")
	c.SetParamValues("any")
	if err := a.handlePost(c); err != nil {
		t.Fatalf("handlePost() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 when the lookup fails", rec.Code)
	}
}

func TestHandlePostRendersDocument(t *testing.T) {
	srv := stubCMS(t, `{"result": {
		"title": "Deep Dive",
		"slug": "deep-dive",
		"publishedAt": "2025-06-01T09:00:00Z",
		"author": {"name": "Ada"},
		"body": [{"_type": "block", "style": "h2", "children": [{"_type": "span", "text": "Section"}]}]
	}}`)
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/blog/deep-dive/")
	c.SetParamNames("slug")
	c.SetParamValues("deep-dive")
	if err := a.handlePost(c); err != nil {
		t.Fatalf("handlePost() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Deep Dive", "<h2>Section</h2>", "By Ada", "min read"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestHandleRobots(t *testing.T) {
	a := newTestApp(t, "")

	c, rec := get(a, "/robots.txt")
	if err := a.handleRobots(c); err != nil {
		t.Fatalf("handleRobots() error = %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{"User-agent: *", "Allow: /", "Sitemap: http://localhost:3000/sitemap.xml"} {
		if !strings.Contains(body, want) {
			t.Fatalf("robots.txt missing %q:\n%s", want, body)
		}
	}
}

func TestRenderSitemapEntries(t *testing.T) {
	srv := stubCMS(t, `{"result": [
		{"title": "One", "slug": "one", "image": "x", "publishedAt": "2025-06-01T09:00:00Z"}
	]}`)
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/sitemap.xml")
	if err := a.handleSitemap(c); err != nil {
		t.Fatalf("handleSitemap() error = %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<priority>1.0</priority>",
		"<changefreq>weekly</changefreq>",
		"<priority>0.3</priority>",
		"<changefreq>yearly</changefreq>",
		"<loc>http://localhost:3000/thanks/</loc>",
		"<loc>http://localhost:3000/blog/one/</loc>",
		"<lastmod>2025-06-01</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("sitemap missing %q:\n%s", want, body)
		}
	}
}

func TestRenderSitemapSurvivesCMSOutage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/sitemap.xml")
	if err := a.handleSitemap(c); err != nil {
		t.Fatalf("handleSitemap() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, sitemap must render without the CMS", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<priority>1.0</priority>") {
		t.Fatalf("static entries missing from degraded sitemap")
	}
}

func TestHandleFeed(t *testing.T) {
	srv := stubCMS(t, `{"result": [
		{"title": "One", "excerpt": "first post", "slug": "one", "image": "x", "publishedAt": "2025-06-01T09:00:00Z"}
	]}`)
	a := newTestApp(t, srv.URL)

	c, rec := get(a, "/feed.xml")
	if err := a.handleFeed(c); err != nil {
		t.Fatalf("handleFeed() error = %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{"<rss", "<title>One</title>", "<link>http://localhost:3000/blog/one/</link>", "Jun 2025"} {
		if !strings.Contains(body, want) {
			t.Fatalf("feed missing %q:\n%s", want, body)
		}
	}
}

func TestTeaserCardsFallsBackToStore(t *testing.T) {
	srv := stubCMS(t, `{"result": []}`)
	a := newTestApp(t, srv.URL)

	c, _ := get(a, "/")
	cards := a.teaserCards(c)
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want the 3 seeded teasers when the CMS is empty", len(cards))
	}
}

func TestTeaserCardsPrefersCMS(t *testing.T) {
	srv := stubCMS(t, `{"result": [{"title": "Live", "slug": "live", "image": "https://cdn.example/l.jpg"}]}`)
	a := newTestApp(t, srv.URL)

	c, _ := get(a, "/")
	cards := a.teaserCards(c)
	if len(cards) != 1 || cards[0].Title != "Live" {
		t.Fatalf("cards = %+v, want the CMS post", cards)
	}
}

func TestHandleBlogRedirect(t *testing.T) {
	a := newTestApp(t, "")
	c, rec := get(a, "/blog")
	if err := handleBlogRedirect(c); err != nil {
		t.Fatalf("handleBlogRedirect() error = %v", err)
	}
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/#blog" {
		t.Fatalf("Location = %q", got)
	}
}

// The redirect must survive the full middleware stack: the trailing-slash
// rewrite runs before routing, so both spellings have to reach the handler.
func TestBlogRedirectThroughStack(t *testing.T) {
	srv := stubCMS(t, `{"result": []}`)
	a := newTestApp(t, srv.URL)
	a.setupMiddleware()
	a.setupRoutes()

	for _, target := range []string{"/blog", "/blog/"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)
		if rec.Code != http.StatusMovedPermanently {
			t.Fatalf("GET %s: status = %d, want 301", target, rec.Code)
		}
		if got := rec.Header().Get("Location"); got != "/#blog" {
			t.Fatalf("GET %s: Location = %q, want /#blog", target, got)
		}
	}
}
