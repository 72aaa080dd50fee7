// Package assets embeds the HTML templates and static files served by the
// front end.
package assets

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed templates static
var content embed.FS

// Templates parses every embedded page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Local().Format("15:04")
		},
		"formatDate": func(t time.Time) string {
			return t.Local().Format("Jan 2, 2006")
		},
	}).ParseFS(content, "templates/*.html")
}

// Static returns the embedded static file tree with its prefix stripped.
func Static() (fs.FS, error) {
	return fs.Sub(content, "static")
}
