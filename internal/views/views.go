// Package views renders the catalog's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"time"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageIndex     = "index"
	PageMovieList = "movie_list"
	PageAdd       = "add"
	PageEdit      = "edit"
	PageTopList   = "top3_list"
	PageError     = "error"
)

var pages = []string{PageIndex, PageMovieList, PageAdd, PageEdit, PageTopList, PageError}

// ListData feeds the movie list and top list pages.
type ListData struct {
	Movies []catalog.Movie
}

// FormData feeds the add and edit forms. Data keeps whatever the user
// submitted so a rejected form is redisplayed as typed.
type FormData struct {
	ID           string
	Categories   []string
	Data         catalog.MovieForm
	ErrorMessage string
	NotFound     bool
}

// ErrorData feeds the error page.
type ErrorData struct {
	Status  int
	Message string
	Detail  string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"timestamp": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04")
	},
	"selected": func(current, option string) bool {
		return current == option
	},
	"options": categoryOptions,
}

// categoryOptions appends current to the category list when it is not one of
// the known names, so a stored category survives a re-save of the form.
func categoryOptions(categories []string, current string) []string {
	if current == "" || slices.Contains(categories, current) {
		return categories
	}
	return append(slices.Clip(categories), current)
}

// New parses every page against the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// MustNew is New for callers that cannot continue without templates.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes page into w. Output is buffered so a failing template
// never leaves a half-written page behind.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", page, err)
	}
	return nil
}
