package landing

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/cohortai/landing/views"
)

// teaserFetchLimit caps how many posts the card cache pulls per refresh;
// the home grid and feed never show more than this.
const teaserFetchLimit = 6

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func (a *App) comments() views.Comments {
	return views.Comments{
		Repo:       a.Config.GiscusRepo,
		RepoID:     a.Config.GiscusRepoID,
		Category:   a.Config.GiscusCategory,
		CategoryID: a.Config.GiscusCategoryID,
	}
}

func (a *App) subscribeForm(c echo.Context, email, errMsg string) views.SubscribeForm {
	return views.SubscribeForm{
		Action:   "/subscribe/",
		Ready:    a.Config.MailListAction != "",
		Honeypot: a.Config.MailListHoneypot,
		Tags:     a.Config.MailListTags,
		CSRF:     CsrfToken(c),
		Email:    email,
		Error:    errMsg,
	}
}

func (a *App) handleHome(c echo.Context) error {
	return Render(c, views.Home(a.site(), a.teaserCards(c), a.subscribeForm(c, "", "")))
}

// teaserCards returns the cards for the home grid. CMS failures are
// absorbed here: the grid is decorative and must never break the page, so
// an empty or failed fetch falls back to the seeded teasers.
func (a *App) teaserCards(c echo.Context) []views.BlogCard {
	posts, err := a.Cache.Recent(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("content api: %v", err)
	}
	if len(posts) > 0 {
		return views.NewCards(posts, a.Config.FallbackCardText)
	}
	cards, err := a.Fallback.Teasers()
	if err != nil {
		c.Logger().Errorf("fallback teasers: %v", err)
		return nil
	}
	return cards
}

// handleAPIPosts serves the capped, recency-ordered teaser list as JSON.
// The contract is 200-always: any upstream failure yields an empty array.
// The 60s staleness window is delegated to the serving layer via
// Cache-Control rather than cached in-process.
func (a *App) handleAPIPosts(c echo.Context) error {
	limit := 3
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=60, stale-while-revalidate=60")

	posts, err := a.CMS.RecentPosts(c.Request().Context(), limit)
	if err != nil {
		c.Logger().Errorf("api/posts: %v", err)
		return c.JSON(http.StatusOK, []views.BlogCard{})
	}
	// The $limit bound is advisory; enforce the cap locally too.
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return c.JSON(http.StatusOK, views.NewCards(posts, a.Config.FallbackCardText))
}

// handlePost serves the reading view for a single post. A failed or empty
// lookup renders the not-found terminal state — the only user-facing error
// path in the system.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.CMS.PostBySlug(c.Request().Context(), slug)
	if err != nil {
		c.Logger().Errorf("blog/%s: %v", slug, err)
		post = nil
	}
	if post == nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=60, stale-while-revalidate=60")
	return Render(c, views.Post(a.site(), *post, a.comments()))
}

func (a *App) handleThanks(c echo.Context) error {
	email := ""
	if sess, err := session.Get(sessionName, c); err == nil {
		if v, ok := sess.Values[flashEmailKey].(string); ok && v != "" {
			email = v
			delete(sess.Values, flashEmailKey)
			_ = sess.Save(c.Request(), c.Response())
		}
	}
	return Render(c, views.Thanks(a.site(), email))
}

// handleSubscribe relays the signup to the mailing-list provider and races
// its completion against the deadline timer. Success means "request was
// sent", nothing stronger; the provider's response body is not meaningful.
func (a *App) handleSubscribe(c echo.Context) error {
	if !a.subscribeLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	email := strings.TrimSpace(c.FormValue("EMAIL"))
	if a.Config.MailListAction == "" {
		// Form renders disabled; a direct POST just gets the page back.
		return Render(c, views.Home(a.site(), a.teaserCards(c), a.subscribeForm(c, email, "")))
	}
	if email == "" || !strings.Contains(email, "@") {
		return Render(c, views.Home(a.site(), a.teaserCards(c), a.subscribeForm(c, email, "Enter a valid email address.")))
	}

	fields := providerFields(email, a.Config.MailListHoneypot, c.FormValue(a.Config.MailListHoneypot), a.Config.MailListTags)
	if a.subscriber.Submit(c.Request().Context(), fields) == SubmitSuccess {
		if sess, err := session.Get(sessionName, c); err == nil {
			sess.Values[flashEmailKey] = email
			_ = sess.Save(c.Request(), c.Response())
		}
		return c.Redirect(http.StatusSeeOther, "/thanks/")
	}
	return Render(c, views.Home(a.site(), a.teaserCards(c),
		a.subscribeForm(c, email, "We couldn't reach the mailing list. Please try again.")))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Recent(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("sitemap: %v", err)
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Recent(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("feed: %v", err)
	}
	return a.renderFeed(c, posts)
}

// handleRobots generates robots.txt dynamically from the canonical URL.
func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	b.WriteString("Sitemap: " + a.Config.URL + "/sitemap.xml\n")
	b.WriteString("Host: " + a.Config.URL + "\n")
	return c.String(http.StatusOK, b.String())
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/#blog")
}

func (a *App) handleFavicon(c echo.Context) error {
	data, err := embeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
