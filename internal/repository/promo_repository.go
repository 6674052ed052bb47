package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"remitdesk/internal/model"
	"remitdesk/internal/promo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PromoRepository is the PostgreSQL-backed implementation of promo.Store.
// It gives the registry durable, transactional semantics: the counter
// increments and the ledger insert in Apply commit or roll back together.
type PromoRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoRepository creates a new PostgreSQL-backed promo store.
func NewPromoRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PromoRepository {
	return &PromoRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo").Logger(),
	}
}

var _ promo.Store = (*PromoRepository)(nil)

const promoColumns = `
	id, code, kind, value, min_threshold, max_discount, currency,
	usage_limit_global, usage_limit_per_user, usage_count,
	total_discount_utilized, budget_limit, start_date, end_date, status,
	corridors, payment_methods, affiliates
`

// Lookup finds a promo code by its code string, case-insensitively.
func (r *PromoRepository) Lookup(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE LOWER(code) = LOWER(TRIM($1))`

	p, err := scanPromo(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query promo code")
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	return p, nil
}

// CountUserRedemptions counts ledger entries for the given user and promo code.
func (r *PromoRepository) CountUserRedemptions(ctx context.Context, userID string, promoCodeID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM promo_redemptions WHERE user_id = $1 AND promo_code_id = $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, promoCodeID).Scan(&count); err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("promo_code_id", promoCodeID.String()).
			Msg("failed to count user redemptions")
		return 0, fmt.Errorf("failed to count user redemptions: %w", err)
	}

	return count, nil
}

// Apply records one redemption in a single transaction. The row-level lock
// taken by UPDATE serialises concurrent applies for the same code, so no
// increment is ever lost.
func (r *PromoRepository) Apply(ctx context.Context, promoCodeID uuid.UUID, transactionID, userID string, discountAmount float64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updateQuery := `
		UPDATE promo_codes
		SET usage_count = usage_count + 1,
		    total_discount_utilized = total_discount_utilized + $2
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, updateQuery, promoCodeID, discountAmount)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("promo_code_id", promoCodeID.String()).
			Msg("failed to update promo counters")
		return fmt.Errorf("failed to update promo counters: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromoNotFound
	}

	insertQuery := `
		INSERT INTO promo_redemptions (id, promo_code_id, transaction_id, user_id, discount_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, insertQuery,
		uuid.New(), promoCodeID, transactionID, userID, discountAmount,
		model.RedemptionStatusCompleted, time.Now().UTC())
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("promo_code_id", promoCodeID.String()).
			Str("transaction_id", transactionID).
			Msg("failed to insert redemption")
		return fmt.Errorf("failed to insert redemption: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit redemption")
		return fmt.Errorf("failed to commit redemption: %w", err)
	}

	r.logger.Debug().
		Str("promo_code_id", promoCodeID.String()).
		Str("transaction_id", transactionID).
		Str("user_id", userID).
		Float64("discount_amount", discountAmount).
		Msg("promo redemption recorded")

	return nil
}

// SeedCatalog inserts catalog entries that are not present yet, keyed by
// code. Used at startup and by tests.
func (r *PromoRepository) SeedCatalog(ctx context.Context, catalog *promo.Catalog) error {
	if catalog == nil || len(catalog.Promos) == 0 {
		return nil
	}

	query := `
		INSERT INTO promo_codes (` + promoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (code) DO NOTHING
	`

	batch := &pgx.Batch{}
	for i := range catalog.Promos {
		p := catalog.Promos[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		batch.Queue(query,
			p.ID, p.Code, p.Kind, p.Value, p.MinThreshold, p.MaxDiscount, p.Currency,
			p.UsageLimitGlobal, p.UsageLimitPerUser, p.UsageCount,
			p.TotalDiscountUtilized, p.BudgetLimit, p.StartDate, p.EndDate, p.Status,
			p.Restrictions.Corridors, p.Restrictions.PaymentMethods, p.Restrictions.Affiliates)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(catalog.Promos); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("code", catalog.Promos[i].Code).
				Msg("failed to seed promo code")
			return fmt.Errorf("failed to seed promo code %s: %w", catalog.Promos[i].Code, err)
		}
	}

	r.logger.Info().Int("promo_count", len(catalog.Promos)).Msg("promo catalog seeded")

	return nil
}

// Migrate creates the promo tables when they do not exist.
func (r *PromoRepository) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS promo_codes (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			min_threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_discount DOUBLE PRECISION,
			currency TEXT NOT NULL,
			usage_limit_global INTEGER NOT NULL DEFAULT -1,
			usage_limit_per_user INTEGER NOT NULL DEFAULT 1,
			usage_count INTEGER NOT NULL DEFAULT 0,
			total_discount_utilized DOUBLE PRECISION NOT NULL DEFAULT 0,
			budget_limit DOUBLE PRECISION NOT NULL DEFAULT -1,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			corridors TEXT[] NOT NULL DEFAULT '{}',
			payment_methods TEXT[] NOT NULL DEFAULT '{}',
			affiliates TEXT[] NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS promo_redemptions (
			id UUID PRIMARY KEY,
			promo_code_id UUID NOT NULL REFERENCES promo_codes(id),
			transaction_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			discount_amount DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_promo_redemptions_user
			ON promo_redemptions(promo_code_id, user_id);
	`

	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create promo schema: %w", err)
	}

	return nil
}

// scanPromo reads one promo row including its restriction arrays.
func scanPromo(row pgx.Row) (*model.PromoCode, error) {
	var p model.PromoCode
	err := row.Scan(
		&p.ID, &p.Code, &p.Kind, &p.Value, &p.MinThreshold, &p.MaxDiscount, &p.Currency,
		&p.UsageLimitGlobal, &p.UsageLimitPerUser, &p.UsageCount,
		&p.TotalDiscountUtilized, &p.BudgetLimit, &p.StartDate, &p.EndDate, &p.Status,
		&p.Restrictions.Corridors, &p.Restrictions.PaymentMethods, &p.Restrictions.Affiliates,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
