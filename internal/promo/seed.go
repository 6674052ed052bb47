package promo

import (
	"time"

	"remitdesk/internal/model"

	"github.com/google/uuid"
)

// DefaultCatalog returns the built-in promo catalog used when no seed file
// is configured. Windows are anchored to the current time so the demo
// codes are always redeemable on a fresh start.
func DefaultCatalog() *Catalog {
	now := time.Now().UTC()
	start := now.Add(-24 * time.Hour)
	end := now.AddDate(1, 0, 0)

	maxSave20 := 2.50

	return &Catalog{
		Promos: []model.PromoCode{
			{
				ID:                uuid.New(),
				Code:              "SAVE20",
				Kind:              model.KindPercentage,
				Value:             20,
				MinThreshold:      100,
				MaxDiscount:       &maxSave20,
				Currency:          "GBP",
				UsageLimitGlobal:  model.Unlimited,
				UsageLimitPerUser: 3,
				BudgetLimit:       500,
				StartDate:         start,
				EndDate:           end,
				Status:            model.StatusActive,
			},
			{
				ID:                uuid.New(),
				Code:              "WELCOME",
				Kind:              model.KindFixed,
				Value:             5,
				MinThreshold:      50,
				Currency:          "GBP",
				UsageLimitGlobal:  1000,
				UsageLimitPerUser: 1,
				BudgetLimit:       model.Unlimited,
				StartDate:         start,
				EndDate:           end,
				Status:            model.StatusActive,
			},
			{
				ID:                uuid.New(),
				Code:              "BOOSTRATE",
				Kind:              model.KindFxBoost,
				Value:             5,
				MinThreshold:      500,
				Currency:          "GBP",
				UsageLimitGlobal:  model.Unlimited,
				UsageLimitPerUser: 2,
				BudgetLimit:       model.Unlimited,
				StartDate:         start,
				EndDate:           end,
				Status:            model.StatusActive,
				Restrictions: model.PromoRestrictions{
					Corridors: []string{"GBP-NGN", "GBP-GHS"},
				},
			},
			{
				ID:                uuid.New(),
				Code:              "BONUS25",
				Kind:              model.KindBonusCredit,
				Value:             25,
				MinThreshold:      200,
				Currency:          "GBP",
				UsageLimitGlobal:  500,
				UsageLimitPerUser: 1,
				BudgetLimit:       model.Unlimited,
				StartDate:         start,
				EndDate:           end,
				Status:            model.StatusActive,
				Restrictions: model.PromoRestrictions{
					PaymentMethods: []string{"bank_transfer", "debit_card"},
				},
			},
			{
				ID:                uuid.New(),
				Code:              "FIRSTFREE",
				Kind:              model.KindPercentage,
				Value:             100,
				MinThreshold:      20,
				Currency:          "GBP",
				UsageLimitGlobal:  100,
				UsageLimitPerUser: 1,
				BudgetLimit:       500,
				StartDate:         start,
				EndDate:           end,
				Status:            model.StatusActive,
			},
		},
	}
}
