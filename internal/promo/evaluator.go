package promo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remitdesk/internal/model"

	"github.com/rs/zerolog"
)

// DefaultReferenceFee is the fixed nominal transfer fee, in the promo's
// currency, used as the base for percentage discounts.
const DefaultReferenceFee = 5.00

// Evaluator is the stateless decision logic mapping a candidate code plus
// a proposed transaction to a verdict and, if valid, a computed discount.
// It holds no mutable state and only reads through the store.
type Evaluator struct {
	store        Store
	referenceFee float64
	now          func() time.Time
	logger       zerolog.Logger
}

// NewEvaluator creates a new promo evaluator backed by the given store.
func NewEvaluator(store Store, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		store:        store,
		referenceFee: DefaultReferenceFee,
		now:          time.Now,
		logger:       logger.With().Str("component", "promo-evaluator").Logger(),
	}
}

// Validate runs the eligibility checks in a fixed order and short-circuits
// on the first failure, so repeated calls for the same registry state
// report the same reason. It has no side effects and may be called any
// number of times while the user edits the transaction form.
//
// Check order: existence, status, start date, end date, global usage
// limit, budget, per-user limit, minimum amount, corridor, payment method.
func (e *Evaluator) Validate(ctx context.Context, req *model.ValidateRequest) (*model.PromoValidation, error) {
	p, err := e.store.Lookup(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("promo lookup failed: %w", err)
	}
	if p == nil {
		return nil, e.reject(req, model.ErrInvalidPromoCode)
	}

	if p.Status != model.StatusActive {
		return nil, e.reject(req, model.ErrPromoInactive)
	}

	now := e.now()
	if now.Before(p.StartDate) {
		return nil, e.reject(req, model.ErrPromoNotStarted)
	}
	if now.After(p.EndDate) {
		return nil, e.reject(req, model.ErrPromoExpired)
	}

	if p.UsageLimitGlobal != model.Unlimited && p.UsageCount >= p.UsageLimitGlobal {
		return nil, e.reject(req, model.ErrUsageLimitReached)
	}

	if p.BudgetLimit != model.Unlimited && p.TotalDiscountUtilized >= p.BudgetLimit {
		return nil, e.reject(req, model.ErrBudgetExhausted)
	}

	userCount, err := e.store.CountUserRedemptions(ctx, req.UserID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("per-user redemption count failed: %w", err)
	}
	if userCount >= p.UsageLimitPerUser {
		return nil, e.reject(req, model.ErrPerUserLimitReached)
	}

	if req.Amount < p.MinThreshold {
		return nil, e.reject(req, model.ErrBelowMinimum)
	}

	if len(p.Restrictions.Corridors) > 0 {
		corridor := fmt.Sprintf("%s-%s", req.SourceCurrency, req.DestCurrency)
		if !containsFold(p.Restrictions.Corridors, corridor) {
			return nil, e.reject(req, model.ErrCorridorNotAllowed)
		}
	}

	if len(p.Restrictions.PaymentMethods) > 0 {
		if !containsFold(p.Restrictions.PaymentMethods, req.PaymentMethod) {
			return nil, e.reject(req, model.ErrPaymentMethodNotAllowed)
		}
	}

	discount := CalculateDiscount(p, e.referenceFee)

	e.logger.Debug().
		Str("code", p.Code).
		Str("user_id", req.UserID).
		Float64("discount", discount).
		Msg("promo code validated")

	return &model.PromoValidation{
		Promo:           p,
		AppliedDiscount: discount,
		DisplayText:     DisplayText(p, discount),
	}, nil
}

// reject logs the failure reason at debug level and passes it through.
func (e *Evaluator) reject(req *model.ValidateRequest, reason *model.DomainError) error {
	e.logger.Debug().
		Str("code", req.Code).
		Str("user_id", req.UserID).
		Str("reason", reason.Code).
		Msg("promo code rejected")
	return reason
}

// containsFold reports whether the list contains the value, ignoring case.
func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
