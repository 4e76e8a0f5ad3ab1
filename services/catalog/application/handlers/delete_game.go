package handlers

import (
	"net/http"

	"github.com/ghuser/gamecatalog/pkg/errhttp"
	"github.com/ghuser/gamecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// DeleteGameHandler handles DELETE /games/{id} requests.
type DeleteGameHandler struct {
	svc *appsvcs.Services
}

// NewDeleteGameHandler returns a DeleteGameHandler backed by the given services.
func NewDeleteGameHandler(svc *appsvcs.Services) *DeleteGameHandler {
	return &DeleteGameHandler{svc: svc}
}

// Execute publishes GameDeleted for an existing game, plus the removal event
// consumed by the ownership context.
//
//	@Summary		Delete game
//	@Description	Publishes a GameDeleted event for an existing game
//	@Tags			games
//	@Produce		json
//	@Param			id	path		string	true	"Game id"
//	@Success		202	{object}	AcceptedResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/games/{id} [delete]
func (h *DeleteGameHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Game.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusAccepted, AcceptedResponse{ID: id})
}
