package handlers

import (
	"net/http"

	"github.com/ghuser/gamecatalog/pkg/errhttp"
	"github.com/ghuser/gamecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// GetGameHandler handles GET /games/{id} requests.
type GetGameHandler struct {
	svc *appsvcs.Services
}

// NewGetGameHandler returns a GetGameHandler backed by the given services.
func NewGetGameHandler(svc *appsvcs.Services) *GetGameHandler {
	return &GetGameHandler{svc: svc}
}

// Execute returns one game document from the read model.
//
//	@Summary		Get game
//	@Description	Returns a single game document by id
//	@Tags			games
//	@Produce		json
//	@Param			id	path		string	true	"Game id"
//	@Success		200	{object}	GameResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/games/{id} [get]
func (h *GetGameHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Game.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toGameResponse(doc))
}
