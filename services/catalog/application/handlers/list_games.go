package handlers

import (
	"net/http"

	"github.com/ghuser/gamecatalog/pkg/errhttp"
	"github.com/ghuser/gamecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// ListGamesHandler handles GET /games requests.
type ListGamesHandler struct {
	svc *appsvcs.Services
}

// NewListGamesHandler returns a ListGamesHandler backed by the given services.
func NewListGamesHandler(svc *appsvcs.Services) *ListGamesHandler {
	return &ListGamesHandler{svc: svc}
}

// Execute returns one page of game documents in insertion order. Pages past
// the end of the catalog return an empty list.
//
//	@Summary		List games
//	@Description	Returns a page of game documents in insertion order
//	@Tags			games
//	@Produce		json
//	@Param			page	query		int	false	"Page number, zero-based"	default(0)
//	@Success		200		{array}		GameResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/games [get]
func (h *ListGamesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Game.List(r.Context(), pageParam(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toGameResponses(docs))
}
