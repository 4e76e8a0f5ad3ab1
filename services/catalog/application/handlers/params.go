package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/pkg/httpx"
)

// idParam parses the {id} path parameter as a UUID. Writes a 400 and returns
// false on failure.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid game id")
		return uuid.Nil, false
	}
	return id, true
}

// pageParam parses the optional ?page= query parameter. Pages are zero-based;
// missing or malformed values default to the first page (0).
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
