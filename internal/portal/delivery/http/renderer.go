package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ratemynus-portal/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// Page template names.
const (
	pageHome   = "home.html"
	pageList   = "modules.html"
	pageDetail = "module.html"
	pageAbout  = "about.html"
	pageError  = "error.html"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"units": func(u float64) string {
		return strconv.FormatFloat(u, 'f', -1, 64)
	},
	"plural": func(n int, word string) string {
		if n == 1 {
			return word
		}
		return word + "s"
	},
}

// Page is the data handed to the layout. Data is the page-specific view.
type Page struct {
	Title  string
	Active string
	Data   interface{}
}

// Renderer renders the portal's HTML pages. Each page is parsed together
// with the shared layout once at startup.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every embedded page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageHome, pageList, pageDetail, pageAbout, pageError} {
		tmpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, layoutTemplate, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

// renderPage renders a page and falls back to a plain 500 so that partial
// HTML is never sent.
func renderPage(c echo.Context, log *logger.Logger, status int, name string, page Page) error {
	if err := c.Render(status, name, page); err != nil {
		log.ErrorContext(c.Request().Context(), "Template execution failed",
			logger.StringField("template", name),
			logger.StringField("path", c.Request().URL.Path),
			logger.ErrorField(err))
		return c.String(http.StatusInternalServerError, "Failed to render page")
	}
	return nil
}
