package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/trouze/movienight/internal/api/apierr"
	"github.com/trouze/movienight/internal/api/middleware"
	"github.com/trouze/movienight/internal/api/request"
	"github.com/trouze/movienight/internal/api/response"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/services/catalog"
)

// MovieHandler handles movie catalog endpoints
type MovieHandler struct {
	catalogService *catalog.Service
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(catalogService *catalog.Service) *MovieHandler {
	return &MovieHandler{
		catalogService: catalogService,
	}
}

// Add handles POST /api/v1/movies
func (h *MovieHandler) Add(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.AddMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	input := catalog.AddMovieInput{
		Title:    req.Title,
		TMDBID:   req.TMDBID,
		PickedBy: model.MemberID(req.PickedBy),
	}
	if req.WatchedAt != "" {
		watchedAt, err := time.Parse(time.RFC3339, req.WatchedAt)
		if err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequestError("watched_at must be RFC 3339"))
			return
		}
		input.WatchedAt = watchedAt
	}

	movie, err := h.catalogService.Add(r.Context(), member.ID, input)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MovieFromModel(movie))
}

// List handles GET /api/v1/movies
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalogService.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MovieListFromModel(movies))
}

// Get handles GET /api/v1/movies/{movie_id}
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	movieID := model.MovieID(mux.Vars(r)["movie_id"])

	movie, err := h.catalogService.Get(r.Context(), movieID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MovieFromModel(movie))
}

// Remove handles DELETE /api/v1/movies/{movie_id}
func (h *MovieHandler) Remove(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())
	movieID := model.MovieID(mux.Vars(r)["movie_id"])

	if err := h.catalogService.Remove(r.Context(), member.ID, movieID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Search handles GET /api/v1/movies/search
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("q is required"))
		return
	}

	results, err := h.catalogService.Search(r.Context(), query)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SearchResultsFromMetadata(results))
}
