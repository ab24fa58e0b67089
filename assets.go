// Package peopledesk provides embedded assets for production builds.
package peopledesk

import "embed"

// Embedded assets for production builds. The page templates and the small
// amount of first-party CSS ship inside the binary so the portal needs no
// asset pipeline at deploy time.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
