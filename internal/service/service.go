package service

import (
	"context"

	"remitdesk/internal/model"
)

// PromoValidator is the evaluator dependency: a side-effect-free check of
// a candidate code against a proposed transaction.
type PromoValidator interface {
	Validate(ctx context.Context, req *model.ValidateRequest) (*model.PromoValidation, error)
}

// PromoService defines the operations backing the promo code endpoints.
type PromoService interface {
	// Validate checks a promo code against a proposed transaction. It is
	// repeatable and never mutates registry state.
	Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidateResponse, error)

	// Apply durably records one redemption for a completed transaction.
	Apply(ctx context.Context, req *model.ApplyRequest) (*model.ApplyResponse, error)
}

// WalletService defines operations on the bonus balance ledger.
type WalletService interface {
	// Balance returns a user's current bonus balance.
	Balance(ctx context.Context, userID string) (*model.WalletResponse, error)

	// Redeem deducts from a user's bonus balance.
	Redeem(ctx context.Context, userID string, amount float64) (*model.WalletResponse, error)
}
