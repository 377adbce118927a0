package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/NoraMoser/exploring/internal/service"
	"github.com/NoraMoser/exploring/internal/web"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PageHandler serves the HTML pages
type PageHandler struct {
	service  service.ServiceInterface
	renderer *web.Renderer
	logger   *zap.Logger
}

// NewPageHandler creates a new page handler instance
func NewPageHandler(service service.ServiceInterface, renderer *web.Renderer, logger *zap.Logger) *PageHandler {
	return &PageHandler{service: service, renderer: renderer, logger: logger}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	req, err := parseListRequest(r)
	if err != nil {
		h.render(w, http.StatusBadRequest, func(out io.Writer) error {
			return h.renderer.Home(out, web.HomeData{Query: query, Error: validationMessage(err)})
		})
		return
	}

	view, err := h.service.ListCountries(r.Context(), req)
	if err != nil {
		h.logger.Error("Error listing countries", zap.Error(err))
		h.render(w, statusFor(err), func(out io.Writer) error {
			return h.renderer.Home(out, web.HomeData{Query: query, Error: web.ErrLoadingCountries})
		})
		return
	}

	h.render(w, http.StatusOK, func(out io.Writer) error {
		return h.renderer.Home(out, web.HomeData{Query: view.Query, View: view})
	})
}

// Country handles GET /country/{code}
func (h *PageHandler) Country(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := validateCode(code); err != nil {
		h.render(w, http.StatusBadRequest, func(out io.Writer) error {
			return h.renderer.Detail(out, web.DetailData{Code: code, Error: web.ErrLoadingCountry})
		})
		return
	}

	detail, err := h.service.GetCountry(r.Context(), code)
	if err != nil {
		h.logger.Error("Error getting country", zap.String("code", code), zap.Error(err))
		h.render(w, statusFor(err), func(out io.Writer) error {
			return h.renderer.Detail(out, web.DetailData{Code: code, Error: web.ErrLoadingCountry})
		})
		return
	}

	session := sessionFromContext(r.Context())
	h.render(w, http.StatusOK, func(out io.Writer) error {
		return h.renderer.Detail(out, web.DetailData{
			Code:       detail.Code,
			Detail:     detail,
			IsFavorite: h.service.IsFavorite(session, detail.Code),
		})
	})
}

// Favorites handles GET /favorites
func (h *PageHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	favs := h.service.ListFavorites(sessionFromContext(r.Context()))
	h.render(w, http.StatusOK, func(out io.Writer) error {
		return h.renderer.Favorites(out, web.FavoritesData{Favorites: favs})
	})
}

// AddFavorite handles POST /favorites with a form field "code"
func (h *PageHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	if err := validateCode(code); err != nil {
		h.render(w, http.StatusBadRequest, func(out io.Writer) error {
			return h.renderer.Message(out, "Exploring", err.Error())
		})
		return
	}

	fav, err := h.service.AddFavorite(r.Context(), sessionFromContext(r.Context()), code)
	if err != nil {
		h.logger.Error("Error adding favorite", zap.String("code", code), zap.Error(err))
		h.render(w, statusFor(err), func(out io.Writer) error {
			return h.renderer.Message(out, "Exploring", web.ErrLoadingCountry)
		})
		return
	}

	http.Redirect(w, r, "/country/"+strings.ToLower(fav.Code), http.StatusSeeOther)
}

// RemoveFavorite handles POST /favorites/{code}/delete
func (h *PageHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := validateCode(code); err != nil {
		h.render(w, http.StatusBadRequest, func(out io.Writer) error {
			return h.renderer.Message(out, "Exploring", err.Error())
		})
		return
	}

	h.service.RemoveFavorite(sessionFromContext(r.Context()), strings.ToUpper(code))
	http.Redirect(w, r, localRedirect(r.FormValue("next"), "/favorites"), http.StatusSeeOther)
}

// render buffers the page so that a template failure can still become a clean 500
func (h *PageHandler) render(w http.ResponseWriter, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		h.logger.Error("Error rendering page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("Error writing page", zap.Error(err))
	}
}

// localRedirect only follows same-site absolute paths
func localRedirect(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return fallback
}
