package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFiles embed.FS

// Templates is the compiled template set for all views.
var Templates = template.Must(template.New("").ParseFS(templateFiles, "templates/*.html"))

// Renderer adapts Templates to echo.Renderer.  html/template escapes every
// value, so environment and request data can be embedded directly.
type Renderer struct {
	t *template.Template
}

func NewRenderer() *Renderer { return &Renderer{t: Templates} }

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}
