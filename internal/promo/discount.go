package promo

import (
	"fmt"
	"strconv"

	"remitdesk/internal/model"

	"github.com/shopspring/decimal"
)

// CalculateDiscount computes the fee discount for a promo as a pure
// function of its kind, value, the reference fee and the optional cap.
//
// FxBoost and BonusCredit grant no fee discount: the rate adjustment and
// the wallet credit are applied elsewhere, the evaluator only reports the
// magnitude through the display text.
//
// The result is rounded to 2 decimal places, half up (away from zero).
func CalculateDiscount(p *model.PromoCode, referenceFee float64) float64 {
	var d decimal.Decimal

	switch p.Kind {
	case model.KindPercentage:
		d = decimal.NewFromFloat(referenceFee).
			Mul(decimal.NewFromFloat(p.Value)).
			Div(decimal.NewFromInt(100))
	case model.KindFixed:
		d = decimal.NewFromFloat(p.Value)
	case model.KindFxBoost, model.KindBonusCredit:
		d = decimal.Zero
	default:
		d = decimal.Zero
	}

	if p.MaxDiscount != nil {
		capValue := decimal.NewFromFloat(*p.MaxDiscount)
		if d.GreaterThan(capValue) {
			d = capValue
		}
	}

	return d.Round(2).InexactFloat64()
}

// DisplayText renders the human-readable summary for a validated promo.
func DisplayText(p *model.PromoCode, discount float64) string {
	switch p.Kind {
	case model.KindPercentage:
		return fmt.Sprintf("%s%% off fees (%s %.2f saved)", formatMagnitude(p.Value), p.Currency, discount)
	case model.KindFixed:
		return fmt.Sprintf("%s %.2f off fees", p.Currency, discount)
	case model.KindFxBoost:
		return fmt.Sprintf("FX rate boosted by %s", formatMagnitude(p.Value))
	case model.KindBonusCredit:
		return fmt.Sprintf("%s %.2f bonus credit on completion", p.Currency, p.Value)
	default:
		return ""
	}
}

// formatMagnitude prints a promo value without trailing zeros, so a 20.0
// percentage renders as "20".
func formatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
