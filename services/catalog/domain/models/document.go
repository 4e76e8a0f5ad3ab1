package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GameDocument is the denormalized search read model for a Game. It shares
// the Game's identity and additionally tracks SalesCount, a counter that
// exists only in the read model.
//
// The read model may lag the write model (eventual consistency); the
// reconciliation workflow repairs documents that drift or go missing after a
// partial projection.
type GameDocument struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Developer  string          `json:"developer"`
	Genre      string          `json:"genre"`
	LaunchYear int             `json:"launchYear"`
	Price      decimal.Decimal `json:"price"`
	SalesCount int64           `json:"salesCount"`
}

// NewGameDocument projects a Game into a fresh search document with a zero
// sales counter.
func NewGameDocument(g *Game) *GameDocument {
	return &GameDocument{
		ID:         g.ID,
		Title:      g.Title,
		Developer:  g.Developer,
		Genre:      g.Genre.String(),
		LaunchYear: g.LaunchYear,
		Price:      g.Price,
	}
}

// ApplyDetails overwrites the denormalized fields from the write model.
// SalesCount is deliberately untouched: it is owned by the read model.
func (d *GameDocument) ApplyDetails(g *Game) {
	d.Title = g.Title
	d.Developer = g.Developer
	d.Genre = g.Genre.String()
	d.LaunchYear = g.LaunchYear
	d.Price = g.Price
}
