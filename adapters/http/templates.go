package http

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

type listEditorView struct {
	Label   string
	Field   string
	Items   []string
	Pending string
}

type itemRefView struct {
	Collection string
	ID         int
}

var templateFuncs = template.FuncMap{
	"listEditor": func(label, field string, items []string, pending string) listEditorView {
		return listEditorView{Label: label, Field: field, Items: items, Pending: pending}
	},
	"itemRef": func(collection string, id int) itemRefView {
		return itemRefView{Collection: collection, ID: id}
	},
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}
