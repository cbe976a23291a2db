// Package view renders HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/forgo/camp/internal/model"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData is the data every page template receives
type PageData struct {
	Title       string
	CurrentUser *model.User
	Success     []string
	Error       []string
	Data        interface{}
}

// Renderer renders a named view with page data
type Renderer struct {
	templates map[string]*template.Template
}

// New parses the embedded templates. Each page is parsed together with the
// shared layout.
func New() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/pages/*/*.tmpl")
	if err != nil {
		return nil, err
	}
	toplevel, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	pages = append(pages, toplevel...)

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		// templates/pages/campgrounds/index.tmpl -> campgrounds/index
		name := page[len("templates/pages/") : len(page)-len(".tmpl")]

		tmpl, err := template.New("layout").ParseFS(templateFS, "templates/layout.tmpl", page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[name] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render writes the named view. The page is rendered to a buffer first so a
// template failure never produces a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data PageData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("no such view: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded static assets under /static/
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}
