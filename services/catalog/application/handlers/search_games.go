package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/pkg/errhttp"
	"github.com/ghuser/gamecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// SearchGamesHandler handles GET /games/search requests.
type SearchGamesHandler struct {
	svc *appsvcs.Services
}

// NewSearchGamesHandler returns a SearchGamesHandler backed by the given services.
func NewSearchGamesHandler(svc *appsvcs.Services) *SearchGamesHandler {
	return &SearchGamesHandler{svc: svc}
}

// Execute runs a personalized ranked search. The caller's library shapes the
// ranking through a genre boost derived at query time; results themselves are
// not filtered to owned games.
//
//	@Summary		Search games
//	@Description	Personalized ranked search over the game catalog
//	@Tags			games
//	@Produce		json
//	@Param			user_id	query		string	true	"Requesting user id"
//	@Param			q		query		string	false	"Free-text query"
//	@Param			page	query		int		false	"Page number, zero-based"	default(0)
//	@Success		200		{array}		GameResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/games/search [get]
func (h *SearchGamesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid or missing user_id")
		return
	}

	docs, err := h.svc.Personalization.Search(r.Context(), userID, r.URL.Query().Get("q"), pageParam(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toGameResponses(docs))
}
