package model

import (
	"time"

	"github.com/google/uuid"
)

// PromoKind determines which discount formula applies to a promo code.
type PromoKind string

const (
	KindPercentage  PromoKind = "percentage"
	KindFixed       PromoKind = "fixed"
	KindFxBoost     PromoKind = "fx_boost"
	KindBonusCredit PromoKind = "bonus_credit"
)

// PromoStatus is the administrative kill switch, independent of the date window.
type PromoStatus string

const (
	StatusActive   PromoStatus = "active"
	StatusDisabled PromoStatus = "disabled"
)

// Unlimited is the sentinel for uncapped global usage and budget limits.
const Unlimited = -1

// PromoRestrictions holds optional allow-lists. An empty list means unrestricted.
type PromoRestrictions struct {
	Corridors      []string `json:"corridors,omitempty"`
	PaymentMethods []string `json:"paymentMethods,omitempty"`
	Affiliates     []string `json:"affiliates,omitempty"`
}

// PromoCode is a promo definition plus its mutable redemption counters.
// UsageCount and TotalDiscountUtilized are only ever mutated by the
// registry's Apply step, never by validation.
type PromoCode struct {
	ID                    uuid.UUID         `json:"id" db:"id"`
	Code                  string            `json:"code" db:"code"`
	Kind                  PromoKind         `json:"kind" db:"kind"`
	Value                 float64           `json:"value" db:"value"`
	MinThreshold          float64           `json:"minThreshold" db:"min_threshold"`
	MaxDiscount           *float64          `json:"maxDiscount,omitempty" db:"max_discount"`
	Currency              string            `json:"currency" db:"currency"`
	UsageLimitGlobal      int               `json:"usageLimitGlobal" db:"usage_limit_global"`
	UsageLimitPerUser     int               `json:"usageLimitPerUser" db:"usage_limit_per_user"`
	UsageCount            int               `json:"usageCount" db:"usage_count"`
	TotalDiscountUtilized float64           `json:"totalDiscountUtilized" db:"total_discount_utilized"`
	BudgetLimit           float64           `json:"budgetLimit" db:"budget_limit"`
	StartDate             time.Time         `json:"startDate" db:"start_date"`
	EndDate               time.Time         `json:"endDate" db:"end_date"`
	Status                PromoStatus       `json:"status" db:"status"`
	Restrictions          PromoRestrictions `json:"restrictions"`
}

// PromoRedemption is an append-only ledger entry recording one completed
// use of a promo code. Entries are never mutated or deleted.
type PromoRedemption struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PromoCodeID    uuid.UUID `json:"promoCodeId" db:"promo_code_id"`
	TransactionID  string    `json:"transactionId" db:"transaction_id"`
	UserID         string    `json:"userId" db:"user_id"`
	DiscountAmount float64   `json:"discountAmount" db:"discount_amount"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// RedemptionStatusCompleted is the status written for every ledger entry.
const RedemptionStatusCompleted = "completed"

// ValidateRequest represents the request payload for validating a promo code
// against a proposed transaction.
type ValidateRequest struct {
	Code           string  `json:"code"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	UserID         string  `json:"userId,omitempty"`
	SourceCurrency string  `json:"sourceCurrency"`
	DestCurrency   string  `json:"destCurrency"`
	PaymentMethod  string  `json:"paymentMethod"`
}

// PromoValidation is the successful outcome of a validation: a snapshot of
// the promo plus the computed discount and its display text.
type PromoValidation struct {
	Promo           *PromoCode `json:"promo"`
	AppliedDiscount float64    `json:"appliedDiscount"`
	DisplayText     string     `json:"displayText"`
}

// ValidateResponse represents the response payload for a successful validation.
type ValidateResponse struct {
	Valid           bool       `json:"valid"`
	AppliedDiscount float64    `json:"appliedDiscount"`
	DisplayText     string     `json:"displayText"`
	Promo           *PromoCode `json:"promo"`
}

// ApplyRequest represents the request payload for recording a redemption.
type ApplyRequest struct {
	Code           string  `json:"code"`
	UserID         string  `json:"userId,omitempty"`
	TransactionID  string  `json:"transactionId,omitempty"`
	DiscountAmount float64 `json:"discountAmount,omitempty"`
}

// ApplyResponse represents the response payload for a recorded redemption.
type ApplyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WalletResponse represents the response payload for a bonus balance lookup.
type WalletResponse struct {
	UserID   string  `json:"userId"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}
