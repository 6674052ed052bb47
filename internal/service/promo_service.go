package service

import (
	"context"
	"errors"
	"fmt"

	"remitdesk/internal/model"
	"remitdesk/internal/promo"
	"remitdesk/internal/wallet"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// promoService implements PromoService on top of the registry, the
// evaluator and the bonus wallet collaborator.
type promoService struct {
	store      promo.Store
	evaluator  PromoValidator
	wallet     wallet.Store
	demoUserID string
	logger     zerolog.Logger
}

// NewPromoService creates a new promo service.
func NewPromoService(
	store promo.Store,
	evaluator PromoValidator,
	walletStore wallet.Store,
	demoUserID string,
	logger zerolog.Logger,
) PromoService {
	return &promoService{
		store:      store,
		evaluator:  evaluator,
		wallet:     walletStore,
		demoUserID: demoUserID,
		logger:     logger.With().Str("service", "promo").Logger(),
	}
}

// Validate checks a candidate code against a proposed transaction. The
// request may be repeated as the user edits the form; nothing is mutated.
func (s *promoService) Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidateResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("validate request is nil")
	}
	if req.Code == "" {
		return nil, model.ErrInvalidPromoCode
	}
	if req.UserID == "" {
		req.UserID = s.demoUserID
	}

	result, err := s.evaluator.Validate(ctx, req)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			s.logger.Debug().
				Str("code", req.Code).
				Str("reason", domainErr.Code).
				Msg("promo validation rejected")
			return nil, err
		}
		s.logger.Error().Err(err).Str("code", req.Code).Msg("promo validation failed")
		return nil, fmt.Errorf("failed to validate promo code: %w", err)
	}

	return &model.ValidateResponse{
		Valid:           true,
		AppliedDiscount: result.AppliedDiscount,
		DisplayText:     result.DisplayText,
		Promo:           result.Promo,
	}, nil
}

// Apply records one redemption against a completed transaction. Callers
// are responsible for invoking it exactly once per real transaction; the
// registry does not deduplicate. A BonusCredit promo additionally credits
// the user's bonus wallet with the promo value.
func (s *promoService) Apply(ctx context.Context, req *model.ApplyRequest) (*model.ApplyResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("apply request is nil")
	}
	if req.UserID == "" {
		req.UserID = s.demoUserID
	}
	if req.TransactionID == "" {
		req.TransactionID = "txn-" + uuid.NewString()
	}

	p, err := s.store.Lookup(ctx, req.Code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", req.Code).Msg("promo lookup failed")
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}
	if p == nil {
		return nil, model.ErrPromoNotFound
	}

	if err := s.store.Apply(ctx, p.ID, req.TransactionID, req.UserID, req.DiscountAmount); err != nil {
		if errors.Is(err, model.ErrPromoNotFound) {
			return nil, err
		}
		s.logger.Error().
			Err(err).
			Str("code", p.Code).
			Str("transaction_id", req.TransactionID).
			Msg("failed to record redemption")
		return nil, fmt.Errorf("failed to apply promo code: %w", err)
	}

	if p.Kind == model.KindBonusCredit {
		if err := s.wallet.Credit(ctx, req.UserID, p.Value); err != nil {
			// The redemption is already recorded; surface the wallet
			// failure rather than pretend the credit landed.
			s.logger.Error().
				Err(err).
				Str("code", p.Code).
				Str("user_id", req.UserID).
				Msg("failed to credit bonus wallet")
			return nil, fmt.Errorf("failed to credit bonus wallet: %w", err)
		}
	}

	s.logger.Info().
		Str("code", p.Code).
		Str("transaction_id", req.TransactionID).
		Str("user_id", req.UserID).
		Float64("discount_amount", req.DiscountAmount).
		Msg("promo code applied")

	return &model.ApplyResponse{
		Success: true,
		Message: fmt.Sprintf("Promo code %s applied to transaction %s", p.Code, req.TransactionID),
	}, nil
}
