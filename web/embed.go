// Package web embeds the page templates. The markup is deliberately
// skeletal: it exists so the handlers have a renderer to hand view-data to.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}
