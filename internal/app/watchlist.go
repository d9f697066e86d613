package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// WatchlistKey is the Redis key holding the saved-movies list. It is a
// sibling of the ticket list and the two must never share a key: a booking
// flow touching the watchlist (or vice versa) is a bug.
const WatchlistKey = "cinema_watchlist"

type watchlistEntry struct {
	Id           int    `json:"id"`
	Title        string `json:"title"`
	PosterPath   string `json:"posterPath,omitempty"`
	BackdropPath string `json:"backdropPath,omitempty"`
	MediaType    string `json:"mediaType,omitempty"`
}

func (app *Application) GetWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := app.fetchWatchlist(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movies := make([]api.MovieSummary, len(entries))
	for i, entry := range entries {
		movies[i] = api.MovieSummary(entry)
	}

	resp := api.WatchlistResponse{
		Movies: movies,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) AddToWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be a positive integer"))
		return
	}

	movie, err := app.catalogRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("movie %d not found in the catalog", movieId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	entries, err := app.fetchWatchlist(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Adding an already-saved movie is a no-op; insertion order is kept.
	for _, entry := range entries {
		if entry.Id == movie.ID {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	entries = append(entries, watchlistEntry{
		Id:           movie.ID,
		Title:        movie.Title,
		PosterPath:   movie.PosterPath,
		BackdropPath: movie.BackdropPath,
		MediaType:    string(movie.MediaType),
	})

	err = app.storeWatchlist(r, entries)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) RemoveFromWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be a positive integer"))
		return
	}

	entries, err := app.fetchWatchlist(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	kept := entries[:0]
	for _, entry := range entries {
		if entry.Id != movieId {
			kept = append(kept, entry)
		}
	}

	if len(kept) == len(entries) {
		app.notFoundResponseWithErr(w, r, fmt.Errorf("movie %d is not on the watchlist", movieId))
		return
	}

	err = app.storeWatchlist(r, kept)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) fetchWatchlist(r *http.Request) ([]watchlistEntry, error) {
	logger := app.contextGetLogger(r)

	data, err := app.redis.Get(r.Context(), WatchlistKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, err
	}

	var entries []watchlistEntry

	err = json.Unmarshal(data, &entries)
	if err != nil {
		logger.Warn("watchlist data is corrupt, starting from an empty list", "error", err)
		return nil, nil
	}

	return entries, nil
}

func (app *Application) storeWatchlist(r *http.Request, entries []watchlistEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return app.redis.Set(r.Context(), WatchlistKey, data, 0).Err()
}
