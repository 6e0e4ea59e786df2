package landing

import "embed"

// embeddedAssets contains static assets shipped with the site:
// site.css, favicon.svg
//
//go:embed embedded/*
var embeddedAssets embed.FS
