// Package templates holds the HTML pages rendered by the admin dashboard and
// the public site.
package templates

import (
	"embed"
	"html/template"
	"strings"

	"innovia-cms/pkg/models"
)

//go:embed *.html
var FS embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
	"label": func(t models.ContentType) string {
		if col, ok := models.CollectionFor(t); ok {
			return col.Label
		}
		return string(t)
	},
	"published": func(r models.ContentRecord) bool { return r.IsPublished() },
}

// Parse loads every embedded page. Page names are the file names.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "*.html")
}
