package handlers

import (
	"net/http"

	"github.com/ghuser/gamecatalog/pkg/errhttp"
	"github.com/ghuser/gamecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// TopSellersHandler handles GET /games/top-sellers requests.
type TopSellersHandler struct {
	svc *appsvcs.Services
}

// NewTopSellersHandler returns a TopSellersHandler backed by the given services.
func NewTopSellersHandler(svc *appsvcs.Services) *TopSellersHandler {
	return &TopSellersHandler{svc: svc}
}

// Execute returns one page of game documents ordered by sales count
// descending. Ties keep their insertion order.
//
//	@Summary		Top sellers
//	@Description	Returns a page of game documents ordered by sales count
//	@Tags			games
//	@Produce		json
//	@Param			page	query		int	false	"Page number, zero-based"	default(0)
//	@Success		200		{array}		GameResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/games/top-sellers [get]
func (h *TopSellersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Game.TopSellers(r.Context(), pageParam(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toGameResponses(docs))
}
