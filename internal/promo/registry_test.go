package promo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"remitdesk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	p := testPromo("SAVE20", model.KindPercentage, 20)
	registry := NewRegistry(&Catalog{Promos: []model.PromoCode{p}}, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name  string
		code  string
		found bool
	}{
		{name: "exact match", code: "SAVE20", found: true},
		{name: "lowercase", code: "save20", found: true},
		{name: "mixed case", code: "Save20", found: true},
		{name: "surrounding whitespace", code: "  SAVE20  ", found: true},
		{name: "unknown", code: "NOPE", found: false},
		{name: "empty", code: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.Lookup(ctx, tt.code)

			require.NoError(t, err)
			if tt.found {
				require.NotNil(t, got)
				assert.Equal(t, p.ID, got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestRegistry_Lookup_ReturnsDetachedSnapshot(t *testing.T) {
	p := testPromo("SNAP", model.KindFixed, 5)
	p.Restrictions.Corridors = []string{"GBP-NGN"}

	registry := NewRegistry(&Catalog{Promos: []model.PromoCode{p}}, zerolog.Nop())
	ctx := context.Background()

	first, err := registry.Lookup(ctx, "SNAP")
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the registry.
	first.UsageCount = 99
	first.Restrictions.Corridors[0] = "USD-INR"

	second, err := registry.Lookup(ctx, "SNAP")
	require.NoError(t, err)
	assert.Equal(t, 0, second.UsageCount)
	assert.Equal(t, []string{"GBP-NGN"}, second.Restrictions.Corridors)
}

func TestRegistry_Apply(t *testing.T) {
	p := testPromo("APPLYME", model.KindFixed, 5)
	registry := NewRegistry(&Catalog{Promos: []model.PromoCode{p}}, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, registry.Apply(ctx, p.ID, "txn-1", "user-1", 5))
	require.NoError(t, registry.Apply(ctx, p.ID, "txn-2", "user-1", 2.50))

	got, err := registry.Lookup(ctx, "APPLYME")
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageCount)
	assert.Equal(t, 7.50, got.TotalDiscountUtilized)

	redemptions := registry.Redemptions()
	require.Len(t, redemptions, 2)
	assert.Equal(t, p.ID, redemptions[0].PromoCodeID)
	assert.Equal(t, "txn-1", redemptions[0].TransactionID)
	assert.Equal(t, model.RedemptionStatusCompleted, redemptions[0].Status)
	assert.False(t, redemptions[0].CreatedAt.IsZero())
}

func TestRegistry_Apply_UnknownPromo(t *testing.T) {
	registry := NewRegistry(&Catalog{}, zerolog.Nop())

	err := registry.Apply(context.Background(), uuid.New(), "txn-1", "user-1", 5)

	assert.Equal(t, model.ErrPromoNotFound, err)
	assert.Empty(t, registry.Redemptions())
}

func TestRegistry_Apply_ConcurrentNoLostUpdates(t *testing.T) {
	const workers = 50
	const appliesPerWorker = 20

	p := testPromo("HOTCODE", model.KindFixed, 5)
	registry := NewRegistry(&Catalog{Promos: []model.PromoCode{p}}, zerolog.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < appliesPerWorker; i++ {
				userID := fmt.Sprintf("user-%d", worker)
				txnID := fmt.Sprintf("txn-%d-%d", worker, i)
				if err := registry.Apply(ctx, p.ID, txnID, userID, 0.50); err != nil {
					t.Error(err)
				}
			}
		}(w)
	}
	wg.Wait()

	got, err := registry.Lookup(ctx, "HOTCODE")
	require.NoError(t, err)
	assert.Equal(t, workers*appliesPerWorker, got.UsageCount)
	assert.InDelta(t, float64(workers*appliesPerWorker)*0.50, got.TotalDiscountUtilized, 0.001)
	assert.Len(t, registry.Redemptions(), workers*appliesPerWorker)

	count, err := registry.CountUserRedemptions(ctx, "user-0", p.ID)
	require.NoError(t, err)
	assert.Equal(t, appliesPerWorker, count)
}

func TestRegistry_CountUserRedemptions(t *testing.T) {
	p := testPromo("COUNTED", model.KindFixed, 5)
	other := testPromo("OTHER", model.KindFixed, 5)
	registry := NewRegistry(&Catalog{Promos: []model.PromoCode{p, other}}, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, registry.Apply(ctx, p.ID, "txn-1", "user-1", 5))
	require.NoError(t, registry.Apply(ctx, p.ID, "txn-2", "user-1", 5))
	require.NoError(t, registry.Apply(ctx, p.ID, "txn-3", "user-2", 5))
	require.NoError(t, registry.Apply(ctx, other.ID, "txn-4", "user-1", 5))

	count, err := registry.CountUserRedemptions(ctx, "user-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = registry.CountUserRedemptions(ctx, "user-2", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = registry.CountUserRedemptions(ctx, "user-3", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNewRegistry_AssignsIDsAndSkipsDuplicates(t *testing.T) {
	withoutID := testPromo("NOID", model.KindFixed, 5)
	withoutID.ID = uuid.Nil
	duplicate := testPromo("noid", model.KindFixed, 10)

	registry := NewRegistry(&Catalog{Promos: []model.PromoCode{withoutID, duplicate}}, zerolog.Nop())

	assert.Equal(t, 1, registry.Size())

	got, err := registry.Lookup(context.Background(), "NOID")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, 5.0, got.Value)
}

func TestNewRegistry_NilCatalog(t *testing.T) {
	registry := NewRegistry(nil, zerolog.Nop())

	assert.Equal(t, 0, registry.Size())
}
