// Package web renders the server-side HTML pages. Every page is assembled from
// sections, and a failing section is replaced by a fallback instead of failing the page.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/NoraMoser/exploring/internal/model"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// BoundaryTitle heads the fallback shown in place of a failed section.
	BoundaryTitle = "Something Unexpected Happened"
	// BoundaryMessage is the text under the fallback title.
	BoundaryMessage = "This part of the page could not be displayed. Please try again later."

	ErrLoadingCountries = "Error loading countries."
	ErrLoadingCountry   = "Error loading country."
)

// Renderer executes the embedded page templates
type Renderer struct {
	tmpl   *template.Template
	logger *zap.Logger
}

// HomeData feeds the list page. A non-empty Error replaces the table and pagination.
type HomeData struct {
	Query string
	View  *model.ListView
	Error string
}

// DetailData feeds the detail page
type DetailData struct {
	Code       string
	Detail     *model.CountryDetail
	IsFavorite bool
	Error      string
}

// FavoritesData feeds the wishlist page
type FavoritesData struct {
	Favorites []model.Favorite
}

type page struct {
	Title    string
	Sections []template.HTML
}

type messageData struct {
	Message string
}

// NewRenderer parses the embedded templates
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.New("pages").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, logger: logger}, nil
}

func funcs() template.FuncMap {
	return template.FuncMap{
		// fail aborts the current section; the boundary renders the fallback instead.
		"fail": func(msg string) (string, error) {
			return "", fmt.Errorf("%s", msg)
		},
		"prev": func(n int) int { return n - 1 },
		"next": func(n int) int { return n + 1 },
		"lower": strings.ToLower,
	}
}

// Home renders the countries list page
func (r *Renderer) Home(w io.Writer, data HomeData) error {
	sections := []template.HTML{r.Section("home.filter", data)}
	if data.Error != "" || data.View == nil {
		sections = append(sections, r.Section("message", messageData{Message: orDefault(data.Error, ErrLoadingCountries)}))
	} else {
		sections = append(sections, r.Section("home.table", data.View), r.Section("home.pagination", data.View))
	}
	return r.page(w, "Exploring", sections)
}

// Detail renders the page of a single country
func (r *Renderer) Detail(w io.Writer, data DetailData) error {
	if data.Error != "" || data.Detail == nil {
		return r.page(w, "Exploring", []template.HTML{
			r.Section("message", messageData{Message: orDefault(data.Error, ErrLoadingCountry)}),
		})
	}
	return r.page(w, data.Detail.CommonName+" | Exploring", []template.HTML{
		r.Section("detail.header", data),
		r.Section("detail.map", data.Detail),
		r.Section("detail.info", data.Detail),
	})
}

// Favorites renders the wishlist page
func (r *Renderer) Favorites(w io.Writer, data FavoritesData) error {
	return r.page(w, "Your Exploring Wishlist", []template.HTML{r.Section("favorites.list", data)})
}

// Message renders a page that only shows text, e.g. for a bad request
func (r *Renderer) Message(w io.Writer, title, msg string) error {
	return r.page(w, title, []template.HTML{r.Section("message", messageData{Message: msg})})
}

// Section renders one named template. Errors and panics yield the fallback markup.
func (r *Renderer) Section(name string, data any) template.HTML {
	out, err := r.render(name, data)
	if err != nil {
		r.logger.Error("Failed to render section", zap.String("section", name), zap.Error(err))
		return fallback()
	}
	return out
}

func (r *Renderer) render(name string, data any) (out template.HTML, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while rendering: %v", rec)
		}
	}()

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) page(w io.Writer, title string, sections []template.HTML) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", page{Title: title, Sections: sections}); err != nil {
		return fmt.Errorf("failed to render layout: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func fallback() template.HTML {
	return template.HTML(`<section class="error-boundary" role="alert"><h2>` +
		template.HTMLEscapeString(BoundaryTitle) + `</h2><p>` +
		template.HTMLEscapeString(BoundaryMessage) + `</p></section>`)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
