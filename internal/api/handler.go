package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/NoraMoser/exploring/internal/model"
	"github.com/NoraMoser/exploring/internal/restcountries"
	"github.com/NoraMoser/exploring/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler handles JSON API requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

type favoritesResponse struct {
	Favorites []model.Favorite `json:"favorites"`
	Count     int              `json:"count"`
}

// ListCountries handles GET /api/v1/countries
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	view, err := h.service.ListCountries(r.Context(), req)
	if err != nil {
		h.logger.Error("Error listing countries", zap.Error(err))
		h.writeError(w, statusFor(err), "failed to load countries")
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// GetCountry handles GET /api/v1/countries/{code}
func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := validateCode(code); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.service.GetCountry(r.Context(), code)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			h.writeError(w, status, "country not found")
			return
		}
		h.logger.Error("Error getting country", zap.String("code", code), zap.Error(err))
		h.writeError(w, status, "failed to load country")
		return
	}

	h.writeJSON(w, http.StatusOK, detail)
}

// ListFavorites handles GET /api/v1/favorites
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs := h.service.ListFavorites(sessionFromContext(r.Context()))
	h.writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favs, Count: len(favs)})
}

// AddFavorite handles POST /api/v1/favorites with a {"code": "..."} body
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var body favoriteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		h.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	fav, err := h.service.AddFavorite(r.Context(), sessionFromContext(r.Context()), body.Code)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			h.writeError(w, status, "country not found")
			return
		}
		h.logger.Error("Error adding favorite", zap.String("code", body.Code), zap.Error(err))
		h.writeError(w, status, "failed to add favorite")
		return
	}

	h.writeJSON(w, http.StatusCreated, fav)
}

// RemoveFavorite handles DELETE /api/v1/favorites/{code}. Removing an absent code is not an error.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := validateCode(code); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.service.RemoveFavorite(sessionFromContext(r.Context()), strings.ToUpper(code))
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	var netErr *restcountries.NetworkError
	switch {
	case errors.Is(err, restcountries.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &netErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
