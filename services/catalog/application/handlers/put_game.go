package handlers

import (
	"net/http"

	"github.com/ghuser/gamecatalog/pkg/errhttp"
	"github.com/ghuser/gamecatalog/pkg/httpx"
	pkgvalidator "github.com/ghuser/gamecatalog/pkg/validator"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// PutGameHandler handles PUT /games/{id} requests.
type PutGameHandler struct {
	svc *appsvcs.Services
}

// NewPutGameHandler returns a PutGameHandler backed by the given services.
func NewPutGameHandler(svc *appsvcs.Services) *PutGameHandler {
	return &PutGameHandler{svc: svc}
}

// Execute replaces a game's details and publishes GameUpdated. Sales counters
// are not part of the request and survive the update untouched.
//
//	@Summary		Update game
//	@Description	Publishes a GameUpdated event after validating the request
//	@Tags			games
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Game id"
//	@Param			request	body		GameRequest	true	"Game update request"
//	@Success		202		{object}	AcceptedResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/games/{id} [put]
func (h *PutGameHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[GameRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Game.Update(r.Context(), id, req.command()); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusAccepted, AcceptedResponse{ID: id})
}
