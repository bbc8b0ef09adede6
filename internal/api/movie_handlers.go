package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dhanush217/Movie-review/internal/domain"
)

// GetMovies handles GET /api/movies with optional keyword, genre, year, and
// rating filters plus pagination.
func (h *Handler) GetMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("pageNumber"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))

	filter := domain.MovieListFilter{
		Keyword: query.Get("keyword"),
		Genre:   query.Get("genre"),
	}
	if year := query.Get("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "Invalid year filter")
			return
		}
		filter.Year = parsed
	}
	if rating := query.Get("rating"); rating != "" {
		parsed, err := strconv.ParseFloat(rating, 64)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "Invalid rating filter")
			return
		}
		filter.MinRating = parsed
	}

	result, err := h.catalog.ListMovies(ctx, filter, page, pageSize)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, result)
}

// GetMovieByID handles GET /api/movies/{id}, returning the movie with its
// populated review list.
func (h *Handler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["id"]

	detail, err := h.catalog.GetMovieDetail(ctx, movieID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, detail)
}

// AddMovie handles POST /api/movies (admin only).
func (h *Handler) AddMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateMovieRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Movie creation validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Please enter all fields: "+err.Error())
		return
	}

	movie, err := h.catalog.AddMovie(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, movie)
}
