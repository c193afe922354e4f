package service

import "errors"

// Business errors shared across services. Handlers map these to HTTP
// status codes and error envelopes.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrPurchaseNotFound    = errors.New("purchase not found")
	ErrInvalidItemType     = errors.New("invalid item type")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserDisabled        = errors.New("account disabled")
	ErrEmailExists         = errors.New("email already registered")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrWeakPassword        = errors.New("password does not meet policy")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponNotStarted    = errors.New("coupon is not yet valid")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponNotApplicable = errors.New("coupon does not apply to this item")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrCouponMinPurchase   = errors.New("purchase amount below coupon minimum")
	ErrCodeExists          = errors.New("coupon code already exists")
	ErrDiscountInvalid     = errors.New("invalid discount definition")
	ErrAlreadyOwned        = errors.New("item already owned")
	ErrEntitlementRequired = errors.New("purchase required for access")
	ErrPaymentPending      = errors.New("a pending payment already exists for this item")
	ErrInvalidSignature    = errors.New("payment signature verification failed")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrItemInactive        = errors.New("item is not available for purchase")
	ErrInvalidStatus       = errors.New("invalid status transition")
	ErrValidation          = errors.New("validation failed")
)
