package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/gamecatalog/pkg/errhttp"
	"github.com/ghuser/gamecatalog/pkg/httpx"
	pkgvalidator "github.com/ghuser/gamecatalog/pkg/validator"
	appsvcs "github.com/ghuser/gamecatalog/services/catalog/application/services"
)

// GameRequest is the request body for POST /games and PUT /games/{id}.
type GameRequest struct {
	Title      string  `json:"title"       validate:"required,max=200"     example:"Alpha Quest"`
	Price      float64 `json:"price"       validate:"gte=0"                example:"59.90"`
	LaunchYear int     `json:"launch_year" validate:"required,gte=1950"    example:"2020"`
	Developer  string  `json:"developer"   validate:"required,max=100"     example:"Sample Studio"`
	Genre      string  `json:"genre"       validate:"required"             example:"RPG"`
} // @name GameRequest

func (r GameRequest) command() appsvcs.GameCommand {
	return appsvcs.GameCommand{
		Title:      r.Title,
		Price:      decimal.NewFromFloat(r.Price),
		LaunchYear: r.LaunchYear,
		Developer:  r.Developer,
		Genre:      r.Genre,
	}
}

// PostGameHandler handles POST /games requests.
type PostGameHandler struct {
	svc *appsvcs.Services
}

// NewPostGameHandler returns a PostGameHandler backed by the given services.
func NewPostGameHandler(svc *appsvcs.Services) *PostGameHandler {
	return &PostGameHandler{svc: svc}
}

// Execute registers a new game. The write is event-driven: the handler audits
// and publishes GameCreated, and the projection worker materializes the game.
//
//	@Summary		Create game
//	@Description	Publishes a GameCreated event after validating the request
//	@Tags			games
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GameRequest	true	"Game creation request"
//	@Success		202		{object}	AcceptedResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/games [post]
func (h *PostGameHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[GameRequest](w, r)
	if !ok {
		return
	}

	id, err := h.svc.Game.Create(r.Context(), req.command())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusAccepted, AcceptedResponse{ID: id})
}
