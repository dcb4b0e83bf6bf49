package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"
)

const baseTemplate = "base.html"

// TemplateFuncs, tüm sayfa şablonlarında kullanılan yardımcı fonksiyonlar
var TemplateFuncs = template.FuncMap{
	"formatDateTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
	"money": func(d decimal.Decimal) string {
		return "$" + d.StringFixed(2)
	},
	"percent": func(p float64) string {
		return fmt.Sprintf("%.1f", p)
	},
}

// HTMLRenderer, her sayfa için ayrı template setlerini yönetir.
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

// NewHTMLRenderer, dir altındaki her sayfayı base şablonuyla birlikte ayrı bir sete derler.
func NewHTMLRenderer(fsys fs.FS, dir string) (*HTMLRenderer, error) {
	pages, err := fs.Glob(fsys, path.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := path.Base(page)
		if name == baseTemplate {
			continue
		}
		tmpl, err := template.New(name).Funcs(TemplateFuncs).ParseFS(fsys, path.Join(dir, baseTemplate), page)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &HTMLRenderer{Templates: templates}, nil
}

// Instance, render işlemini gerçekleştirir.
func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.Templates[name]
	if !ok {
		return missingTemplate(name)
	}
	return render.HTML{
		Template: tmpl,
		Data:     data,
	}
}

type missingTemplate string

func (m missingTemplate) Render(w http.ResponseWriter) error {
	return fmt.Errorf("html template %q not found", string(m))
}

func (m missingTemplate) WriteContentType(w http.ResponseWriter) {}
