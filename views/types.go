package views

// Site holds the site-wide values every page renders into its chrome.
// Handlers pass it explicitly so templates never read ambient state.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// BlogCard is the presentation-stable teaser shape the home grid and the
// listing endpoint expose. The normalizer guarantees every field is set:
// the UI renders cards without nil checks.
type BlogCard struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Link    string `json:"link"`
	Image   string `json:"image"`
}

// SubscribeForm is the state the hero signup form renders with.
type SubscribeForm struct {
	Action   string   // where the form posts; the in-site relay endpoint
	Ready    bool     // false until the mailing-list provider is configured
	Honeypot string   // provider honeypot field name
	Tags     []string // provider tag values attached to the signup
	CSRF     string
	Email    string // sticky value after a failed attempt
	Error    string // non-empty renders the failure notice
}

// Comments identifies the hosted comment thread configuration. All four
// identifiers must be present before the mount point renders.
type Comments struct {
	Repo       string
	RepoID     string
	Category   string
	CategoryID string
}

// Configured reports whether the comment host can be mounted.
func (g Comments) Configured() bool {
	return g.Repo != "" && g.RepoID != "" && g.Category != "" && g.CategoryID != ""
}
