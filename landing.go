// Package landing implements the Cohort AI marketing site: a landing page
// with a mailing-list signup, a blog front-end reading published posts from
// a hosted Sanity dataset, and the SEO artifacts around them (robots,
// sitemap, feed).
//
// Every non-trivial capability is delegated to an external hosted service
// over plain HTTP: content lives in the CMS, signups go to the mailing-list
// provider, comments to the comment host. The server's job is to fetch,
// normalize, and render — and to degrade to defaults whenever any of those
// collaborators is unconfigured or unavailable.
package landing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cohortai/landing/sanity"
)

// App is the central application. It wires together the content client,
// the card cache, the fallback teaser store, the subscribe relay, and the
// Echo server.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	CMS      *sanity.Client
	Cache    *cardCache
	Fallback *teaserStore

	subscriber       *subscriber
	subscribeLimiter *subscribeLimiter
	customRoutes     []func(*App)
	staticDir        string
}

// New creates the App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes dependencies, middleware, and routes, then serves.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init wires the non-HTTP dependencies. Split from Start so tests can build
// a fully wired App without binding a listener.
func (a *App) init() error {
	if a.Config.SessionSecret == "" {
		// Sessions only carry the post-signup flash; an ephemeral secret
		// just means flashes don't survive a restart.
		a.Config.SessionSecret = randomSecret(32)
		a.Echo.Logger.Warn("SESSION_SECRET not set; using an ephemeral secret")
	}

	a.CMS = sanity.NewClient(a.Config.SanityProjectID, a.Config.SanityDataset, a.Config.SanityReadToken)
	if !a.CMS.Configured() {
		a.Echo.Logger.Warn("content API not configured; the blog grid will show fallback teasers")
	}

	store, err := newTeaserStore(a.Config.FallbackDatabasePath)
	if err != nil {
		return fmt.Errorf("landing: init fallback store: %w", err)
	}
	a.Fallback = store

	a.Cache = newCardCache(a.Config.CardCacheTTL, func(ctx context.Context) ([]sanity.Post, error) {
		return a.CMS.RecentPosts(ctx, teaserFetchLimit)
	})

	a.subscriber = newSubscriber(a.Config.MailListAction, a.Config.SubscribeTimeout, nil)
	a.subscribeLimiter = newSubscribeLimiter(5, time.Minute)
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework-owned assets are embedded and served ahead of the user's
	// static dir.
	embeddedFS, _ := fs.Sub(embeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/thanks/", a.handleThanks)
	e.POST("/subscribe/", a.handleSubscribe)

	e.GET("/api/posts", a.handleAPIPosts)
	e.GET("/placeholder/:size", a.handlePlaceholder)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Fallback != nil {
		return a.Fallback.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func randomSecret(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable anyway; fall back to a
		// constant rather than refusing to start a decorative session.
		return "landing-ephemeral-secret"
	}
	return hex.EncodeToString(b)
}
