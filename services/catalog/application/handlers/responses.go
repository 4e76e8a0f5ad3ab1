package handlers

import (
	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
)

// GameResponse is the document-backed view returned by every query endpoint.
type GameResponse struct {
	ID         uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Title      string    `json:"title"       example:"Alpha Quest"`
	Developer  string    `json:"developer"   example:"Sample Studio"`
	Genre      string    `json:"genre"       example:"RPG"`
	LaunchYear int       `json:"launch_year" example:"2020"`
	Price      string    `json:"price"       example:"59.90"`
	SalesCount int64     `json:"sales_count" example:"42"`
} // @name GameResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"game not found"`
} // @name ErrorResponse

// AcceptedResponse acknowledges an event-driven write; the projection worker
// applies it asynchronously.
type AcceptedResponse struct {
	ID uuid.UUID `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name AcceptedResponse

func toGameResponse(doc *models.GameDocument) GameResponse {
	return GameResponse{
		ID:         doc.ID,
		Title:      doc.Title,
		Developer:  doc.Developer,
		Genre:      doc.Genre,
		LaunchYear: doc.LaunchYear,
		Price:      doc.Price.String(),
		SalesCount: doc.SalesCount,
	}
}

func toGameResponses(docs []*models.GameDocument) []GameResponse {
	out := make([]GameResponse, len(docs))
	for i, doc := range docs {
		out[i] = toGameResponse(doc)
	}
	return out
}
