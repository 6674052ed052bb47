package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeInvalidPromoCode        = "INVALID_PROMO_CODE"
	ErrCodePromoInactive           = "PROMO_INACTIVE"
	ErrCodePromoNotStarted         = "PROMO_NOT_STARTED"
	ErrCodePromoExpired            = "PROMO_EXPIRED"
	ErrCodeUsageLimitReached       = "USAGE_LIMIT_REACHED"
	ErrCodeBudgetExhausted         = "BUDGET_EXHAUSTED"
	ErrCodePerUserLimitReached     = "PER_USER_LIMIT_REACHED"
	ErrCodeBelowMinimum            = "BELOW_MINIMUM"
	ErrCodeCorridorNotAllowed      = "CORRIDOR_NOT_ALLOWED"
	ErrCodePaymentMethodNotAllowed = "PAYMENT_METHOD_NOT_ALLOWED"
	ErrCodePromoNotFound           = "PROMO_NOT_FOUND"
	ErrCodeInsufficientBalance     = "INSUFFICIENT_BALANCE"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Validation failure taxonomy. The set is closed: every well-formed
// validation request that fails maps to exactly one of these, and the
// caller surfaces the message verbatim.
var (
	ErrInvalidPromoCode        = NewDomainError(ErrCodeInvalidPromoCode, "Invalid promo code")
	ErrPromoInactive           = NewDomainError(ErrCodePromoInactive, "This promo code is currently disabled")
	ErrPromoNotStarted         = NewDomainError(ErrCodePromoNotStarted, "This promo code is not active yet")
	ErrPromoExpired            = NewDomainError(ErrCodePromoExpired, "This promo code has expired")
	ErrUsageLimitReached       = NewDomainError(ErrCodeUsageLimitReached, "This promo code has reached its usage limit")
	ErrBudgetExhausted         = NewDomainError(ErrCodeBudgetExhausted, "This promo code has exhausted its budget")
	ErrPerUserLimitReached     = NewDomainError(ErrCodePerUserLimitReached, "You have reached the usage limit for this promo code")
	ErrBelowMinimum            = NewDomainError(ErrCodeBelowMinimum, "Transaction amount is below the minimum required for this promo code")
	ErrCorridorNotAllowed      = NewDomainError(ErrCodeCorridorNotAllowed, "This promo code is not available for the selected corridor")
	ErrPaymentMethodNotAllowed = NewDomainError(ErrCodePaymentMethodNotAllowed, "This promo code is not available for the selected payment method")
)

// Non-validation domain errors.
var (
	ErrPromoNotFound       = NewDomainError(ErrCodePromoNotFound, "Promo code not found")
	ErrInsufficientBalance = NewDomainError(ErrCodeInsufficientBalance, "Insufficient bonus balance")
)
