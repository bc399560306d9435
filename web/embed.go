// Package web embeds the SoundWave page templates and browser assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templatesFS embed.FS

//go:embed all:static
var staticFS embed.FS

// Templates returns the template tree rooted at layouts/, pages/ and partials/.
func Templates() (fs.FS, error) {
	return fs.Sub(templatesFS, "templates")
}

// Static returns the asset tree served under /static/.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
