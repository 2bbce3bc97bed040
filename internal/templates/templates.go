// Package templates renders the server-side pages. Every page is parsed
// together with the shared layout.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"

	"macrotracker/internal/models"
)

//go:embed html/*.html
var files embed.FS

const layoutFile = "html/layout.html"

// Renderer implements gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"num": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
	"day": models.FormatDay,
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"prev": func(n int) int { return n - 1 },
	"next": func(n int) int { return n + 1 },
}

func New() (*Renderer, error) {
	names, err := fs.Glob(files, "html/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range names {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(files, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("templates: unknown page %q", name))
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

// Pages lists the names accepted by Instance.
func (r *Renderer) Pages() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	return names
}
