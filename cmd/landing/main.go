package main

import (
	"log"
	"os"
	"strings"

	"github.com/cohortai/landing"
)

func main() {
	cfg := landing.SiteConfig{
		Name:        landing.EnvOr("SITE_NAME", "Cohort AI"),
		URL:         landing.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: landing.EnvOr("SITE_DESCRIPTION", "Cohort AI helps schools make better decisions with data."),
		Author:      os.Getenv("SITE_AUTHOR"),
		Addr:        landing.EnvOr("ADDR", ":3000"),

		SanityProjectID: os.Getenv("SANITY_PROJECT_ID"),
		SanityDataset:   landing.EnvOr("SANITY_DATASET", "production"),
		SanityReadToken: os.Getenv("SANITY_API_READ_TOKEN"),

		MailListAction:   os.Getenv("MAILLIST_FORM_ACTION"),
		MailListHoneypot: os.Getenv("MAILLIST_HONEYPOT"),

		GiscusRepo:       os.Getenv("GISCUS_REPO"),
		GiscusRepoID:     os.Getenv("GISCUS_REPO_ID"),
		GiscusCategory:   os.Getenv("GISCUS_CATEGORY"),
		GiscusCategoryID: os.Getenv("GISCUS_CATEGORY_ID"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",

		FallbackDatabasePath: landing.EnvOr("FALLBACK_DB_PATH", "data/teasers.db"),
	}

	if tags := os.Getenv("MAILLIST_TAGS"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				cfg.MailListTags = append(cfg.MailListTags, tag)
			}
		}
	}

	app := landing.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
