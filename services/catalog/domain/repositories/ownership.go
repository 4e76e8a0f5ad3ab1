package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnershipRecord is one entry of a user's library, supplied by the external
// ownership service. The catalog core does not own this data.
type OwnershipRecord struct {
	ItemID      uuid.UUID       `json:"itemId"`
	UserID      uuid.UUID       `json:"userId"`
	GameID      uuid.UUID       `json:"gameId"`
	Status      string          `json:"status"`
	PricePaid   decimal.Decimal `json:"pricePaid"`
	PaymentType string          `json:"paymentType"`
}

// OwnershipService looks up a user's owned games. Failures wrap
// ErrOwnershipUnavailable and propagate to the caller unreduced — personalized
// search has no non-personalized fallback.
type OwnershipService interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OwnershipRecord, error)
}
