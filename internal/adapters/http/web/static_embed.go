package web

import (
	"embed"
	"html/template"
)

//go:embed static/index.html.tmpl
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFS, "static/index.html.tmpl"))
