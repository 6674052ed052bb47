package promo

import (
	"context"

	"remitdesk/internal/model"

	"github.com/google/uuid"
)

// Store is the registry abstraction for promo definitions and the
// redemption ledger. The in-memory registry implements it for the demo
// deployment; a transactional database-backed implementation can be
// swapped in without touching the evaluator.
type Store interface {
	// Lookup finds a promo code by its human-entered code string.
	// Matching is case-insensitive. Returns (nil, nil) when the code
	// does not exist; absence is not an error.
	Lookup(ctx context.Context, code string) (*model.PromoCode, error)

	// CountUserRedemptions counts ledger entries for the given user and
	// promo code.
	CountUserRedemptions(ctx context.Context, userID string, promoCodeID uuid.UUID) (int, error)

	// Apply records one redemption: increments the usage counter, adds
	// the discount to the utilised total, and appends a ledger entry,
	// all as a single atomic unit. It is NOT idempotent - callers must
	// invoke it exactly once per completed transaction. Returns
	// model.ErrPromoNotFound when the promo code ID is unknown.
	Apply(ctx context.Context, promoCodeID uuid.UUID, transactionID, userID string, discountAmount float64) error
}

// Catalog is a seed set of promo definitions loaded at startup.
type Catalog struct {
	Promos []model.PromoCode `json:"promos"`
}

// Loader defines the interface for loading seed promo catalogs.
type Loader interface {
	// Load reads a promo catalog JSON document from the given path.
	Load(ctx context.Context, path string) (*Catalog, error)
}
