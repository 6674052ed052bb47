package promo

import (
	"context"
	"strings"
	"sync"
	"time"

	"remitdesk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry is the in-memory implementation of Store. It owns the promo
// definitions and the redemption ledger for the lifetime of the process.
// Reads take the shared lock; Apply takes the exclusive lock so the
// counter increments and the ledger append land as one atomic unit.
type Registry struct {
	mu          sync.RWMutex
	byCode      map[string]*model.PromoCode
	byID        map[uuid.UUID]*model.PromoCode
	redemptions []model.PromoRedemption
	logger      zerolog.Logger
}

// NewRegistry creates a registry seeded from the given catalog. Promos
// without an ID are assigned one. Duplicate codes keep the first entry.
func NewRegistry(catalog *Catalog, logger zerolog.Logger) *Registry {
	logger = logger.With().Str("component", "promo-registry").Logger()

	r := &Registry{
		byCode: make(map[string]*model.PromoCode),
		byID:   make(map[uuid.UUID]*model.PromoCode),
		logger: logger,
	}

	if catalog == nil {
		catalog = &Catalog{}
	}

	for i := range catalog.Promos {
		p := catalog.Promos[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}

		key := strings.ToLower(p.Code)
		if _, exists := r.byCode[key]; exists {
			logger.Warn().Str("code", p.Code).Msg("duplicate promo code in catalog, skipping")
			continue
		}

		r.byCode[key] = &p
		r.byID[p.ID] = &p
	}

	logger.Info().Int("promo_count", len(r.byCode)).Msg("promo registry initialised")

	return r
}

// Lookup finds a promo code by its code string, case-insensitively.
// It returns a defensive copy so callers never observe counter mutations
// mid-validation.
func (r *Registry) Lookup(ctx context.Context, code string) (*model.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, nil
	}

	snapshot := clonePromo(p)
	return &snapshot, nil
}

// CountUserRedemptions counts ledger entries matching both the user and
// the promo code. Linear over the ledger.
func (r *Registry) CountUserRedemptions(ctx context.Context, userID string, promoCodeID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.redemptions {
		if r.redemptions[i].UserID == userID && r.redemptions[i].PromoCodeID == promoCodeID {
			count++
		}
	}
	return count, nil
}

// Apply records one redemption under the exclusive lock. Counters only
// ever grow here; validation never mutates them.
func (r *Registry) Apply(ctx context.Context, promoCodeID uuid.UUID, transactionID, userID string, discountAmount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[promoCodeID]
	if !ok {
		r.logger.Warn().
			Str("promo_code_id", promoCodeID.String()).
			Str("transaction_id", transactionID).
			Msg("apply requested for unknown promo code")
		return model.ErrPromoNotFound
	}

	p.UsageCount++
	p.TotalDiscountUtilized += discountAmount

	r.redemptions = append(r.redemptions, model.PromoRedemption{
		ID:             uuid.New(),
		PromoCodeID:    promoCodeID,
		TransactionID:  transactionID,
		UserID:         userID,
		DiscountAmount: discountAmount,
		Status:         model.RedemptionStatusCompleted,
		CreatedAt:      time.Now().UTC(),
	})

	r.logger.Debug().
		Str("code", p.Code).
		Str("transaction_id", transactionID).
		Str("user_id", userID).
		Float64("discount_amount", discountAmount).
		Int("usage_count", p.UsageCount).
		Msg("promo redemption recorded")

	return nil
}

// Redemptions returns a copy of the redemption ledger.
func (r *Registry) Redemptions() []model.PromoRedemption {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.PromoRedemption, len(r.redemptions))
	copy(out, r.redemptions)
	return out
}

// Size returns the number of promo definitions held.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}

// clonePromo copies a promo including its restriction slices and the
// optional discount cap, so snapshots are fully detached.
func clonePromo(p *model.PromoCode) model.PromoCode {
	snapshot := *p

	if p.MaxDiscount != nil {
		capValue := *p.MaxDiscount
		snapshot.MaxDiscount = &capValue
	}

	snapshot.Restrictions.Corridors = append([]string(nil), p.Restrictions.Corridors...)
	snapshot.Restrictions.PaymentMethods = append([]string(nil), p.Restrictions.PaymentMethods...)
	snapshot.Restrictions.Affiliates = append([]string(nil), p.Restrictions.Affiliates...)

	return snapshot
}
