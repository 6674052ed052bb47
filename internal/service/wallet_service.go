package service

import (
	"context"
	"errors"
	"fmt"

	"remitdesk/internal/model"
	"remitdesk/internal/wallet"

	"github.com/rs/zerolog"
)

// walletService implements WalletService.
type walletService struct {
	store    wallet.Store
	currency string
	logger   zerolog.Logger
}

// NewWalletService creates a new wallet service.
func NewWalletService(store wallet.Store, currency string, logger zerolog.Logger) WalletService {
	return &walletService{
		store:    store,
		currency: currency,
		logger:   logger.With().Str("service", "wallet").Logger(),
	}
}

// Balance returns a user's current bonus balance.
func (s *walletService) Balance(ctx context.Context, userID string) (*model.WalletResponse, error) {
	balance, err := s.store.Balance(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to read bonus balance")
		return nil, fmt.Errorf("failed to read bonus balance: %w", err)
	}

	return &model.WalletResponse{
		UserID:   userID,
		Balance:  balance,
		Currency: s.currency,
	}, nil
}

// Redeem deducts from a user's bonus balance and returns the new balance.
func (s *walletService) Redeem(ctx context.Context, userID string, amount float64) (*model.WalletResponse, error) {
	if err := s.store.Redeem(ctx, userID, amount); err != nil {
		if errors.Is(err, model.ErrInsufficientBalance) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to redeem bonus balance")
		return nil, fmt.Errorf("failed to redeem bonus balance: %w", err)
	}

	return s.Balance(ctx, userID)
}
