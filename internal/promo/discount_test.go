package promo

import (
	"testing"

	"remitdesk/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDiscount(t *testing.T) {
	cap150 := 1.50

	tests := []struct {
		name     string
		kind     model.PromoKind
		value    float64
		cap      *float64
		expected float64
	}{
		{name: "20 percent of 5.00 fee", kind: model.KindPercentage, value: 20, expected: 1.00},
		{name: "33 percent rounds exactly", kind: model.KindPercentage, value: 33, expected: 1.65},
		{name: "12.5 percent rounds half up", kind: model.KindPercentage, value: 12.5, expected: 0.63},
		{name: "100 percent equals full fee", kind: model.KindPercentage, value: 100, expected: 5.00},
		{name: "fixed amount", kind: model.KindFixed, value: 5, expected: 5.00},
		{name: "fixed clamped to cap", kind: model.KindFixed, value: 5, cap: &cap150, expected: 1.50},
		{name: "percentage clamped to cap", kind: model.KindPercentage, value: 80, cap: &cap150, expected: 1.50},
		{name: "fx boost grants no fee discount", kind: model.KindFxBoost, value: 5, expected: 0.00},
		{name: "bonus credit grants no fee discount", kind: model.KindBonusCredit, value: 25, expected: 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.PromoCode{
				Kind:        tt.kind,
				Value:       tt.value,
				MaxDiscount: tt.cap,
				Currency:    "GBP",
			}

			assert.Equal(t, tt.expected, CalculateDiscount(p, DefaultReferenceFee))
		})
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name     string
		kind     model.PromoKind
		value    float64
		discount float64
		expected string
	}{
		{
			name:     "percentage",
			kind:     model.KindPercentage,
			value:    20,
			discount: 1.00,
			expected: "20% off fees (GBP 1.00 saved)",
		},
		{
			name:     "percentage with fractional value",
			kind:     model.KindPercentage,
			value:    12.5,
			discount: 0.63,
			expected: "12.5% off fees (GBP 0.63 saved)",
		},
		{
			name:     "fixed",
			kind:     model.KindFixed,
			value:    5,
			discount: 5.00,
			expected: "GBP 5.00 off fees",
		},
		{
			name:     "fx boost reports the magnitude",
			kind:     model.KindFxBoost,
			value:    5,
			discount: 0,
			expected: "FX rate boosted by 5",
		},
		{
			name:     "bonus credit reports the credit amount",
			kind:     model.KindBonusCredit,
			value:    25,
			discount: 0,
			expected: "GBP 25.00 bonus credit on completion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.PromoCode{
				Kind:     tt.kind,
				Value:    tt.value,
				Currency: "GBP",
			}

			assert.Equal(t, tt.expected, DisplayText(p, tt.discount))
		})
	}
}
