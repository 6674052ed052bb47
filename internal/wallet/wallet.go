package wallet

import (
	"context"
	"sync"

	"remitdesk/internal/model"

	"github.com/rs/zerolog"
)

// Store is the bonus-balance ledger the promo engine collaborates with.
// BonusCredit promos top it up on apply; the pricing pipeline redeems from
// it when a sender pays fees with bonus balance.
type Store interface {
	// Balance returns the current bonus balance for a user. Unknown users
	// have a zero balance.
	Balance(ctx context.Context, userID string) (float64, error)

	// Credit adds the given amount to a user's balance.
	Credit(ctx context.Context, userID string, amount float64) error

	// Redeem deducts the given amount from a user's balance. Returns
	// model.ErrInsufficientBalance when the balance does not cover it.
	Redeem(ctx context.Context, userID string, amount float64) error
}

// memoryStore implements Store with a mutex-guarded balance map.
type memoryStore struct {
	mu       sync.Mutex
	balances map[string]float64
	logger   zerolog.Logger
}

// NewMemoryStore creates an in-memory bonus balance store.
func NewMemoryStore(logger zerolog.Logger) Store {
	return &memoryStore{
		balances: make(map[string]float64),
		logger:   logger.With().Str("component", "bonus-wallet").Logger(),
	}
}

func (s *memoryStore) Balance(ctx context.Context, userID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID], nil
}

func (s *memoryStore) Credit(ctx context.Context, userID string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[userID] += amount

	s.logger.Debug().
		Str("user_id", userID).
		Float64("amount", amount).
		Float64("balance", s.balances[userID]).
		Msg("bonus balance credited")

	return nil
}

func (s *memoryStore) Redeem(ctx context.Context, userID string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.balances[userID]
	if balance < amount {
		s.logger.Debug().
			Str("user_id", userID).
			Float64("amount", amount).
			Float64("balance", balance).
			Msg("bonus redemption rejected")
		return model.ErrInsufficientBalance
	}

	s.balances[userID] = balance - amount

	s.logger.Debug().
		Str("user_id", userID).
		Float64("amount", amount).
		Float64("balance", s.balances[userID]).
		Msg("bonus balance redeemed")

	return nil
}
