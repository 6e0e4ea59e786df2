package landing

import "time"

// SiteConfig holds all configuration for the landing site. It is built once
// at process start (cmd/landing reads the environment) and passed by
// reference into everything that needs it; nothing reads ambient state
// after startup. Every content, mailing-list, and comments value is
// optional: absence degrades the feature, never the process.
type SiteConfig struct {
	Name        string // site name (default "Cohort AI")
	URL         string // canonical URL (default "http://localhost:3000")
	Description string // site description for meta tags and the feed
	Author      string // fallback author name for JSON-LD

	Addr string // listen address (default ":3000")

	SanityProjectID string // content project id; empty disables the CMS
	SanityDataset   string // content dataset id
	SanityReadToken string // optional read credential

	MailListAction   string   // provider subscribe URL; empty disables the signup form
	MailListHoneypot string   // provider honeypot field name
	MailListTags     []string // tag values attached to every signup

	GiscusRepo       string // comment hosting; all four must be set to mount
	GiscusRepoID     string
	GiscusCategory   string
	GiscusCategoryID string

	SessionSecret string // cookie session secret; ephemeral random when empty
	CookieSecure  bool   // set true for HTTPS

	FallbackDatabasePath string        // sqlite path for the seeded teaser store
	FallbackCardText     string        // text drawn on generated placeholder images
	CardCacheTTL         time.Duration // teaser revalidation window (default 60s)
	SubscribeTimeout     time.Duration // relay race deadline (default 12s)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Cohort AI"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MailListHoneypot == "" {
		c.MailListHoneypot = "b_xxx_xxx"
	}
	if len(c.MailListTags) == 0 {
		c.MailListTags = []string{"The Plan", "Early Access"}
	}
	if c.FallbackDatabasePath == "" {
		c.FallbackDatabasePath = "data/teasers.db"
	}
	if c.FallbackCardText == "" {
		c.FallbackCardText = "The Plan"
	}
	if c.CardCacheTTL == 0 {
		c.CardCacheTTL = 60 * time.Second
	}
	if c.SubscribeTimeout == 0 {
		c.SubscribeTimeout = 12 * time.Second
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
