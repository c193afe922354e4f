package public

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon is not active"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "coupon is not valid yet"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon has expired"},
	{target: service.ErrCouponNotApplicable, code: response.CodeBadRequest, msg: "coupon does not apply to this item"},
	{target: service.ErrCouponExhausted, code: response.CodeBadRequest, msg: "coupon usage limit reached"},
	{target: service.ErrCouponMinPurchase, code: response.CodeBadRequest, msg: "order amount below coupon minimum"},
}

var quoteErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidItemType, code: response.CodeBadRequest, msg: "invalid item type"},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, msg: "item not found"},
}

var purchaseCreateExtraErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "account not found"},
	{target: service.ErrAlreadyOwned, code: response.CodeBadRequest, msg: "item already purchased"},
	{target: service.ErrPaymentPending, code: response.CodeBadRequest, msg: "a payment for this item is already in progress"},
	{target: service.ErrGatewayUnavailable, code: response.CodeInternal, msg: "payment gateway unavailable"},
}

var purchaseVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidSignature, code: response.CodeBadRequest, msg: "payment signature verification failed"},
	{target: service.ErrPurchaseNotFound, code: response.CodeNotFound, msg: "purchase not found"},
	{target: service.ErrInvalidStatus, code: response.CodeBadRequest, msg: "purchase cannot be completed in its current state"},
}

func respondQuoteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(quoteErrorRules, couponErrorRules), response.CodeInternal, "failed to price item")
}

func respondPurchaseCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(quoteErrorRules, couponErrorRules, purchaseCreateExtraErrorRules), response.CodeInternal, "failed to create purchase")
}

func respondPurchaseVerifyError(c *gin.Context, err error) {
	respondWithMappedError(c, err, purchaseVerifyErrorRules, response.CodeInternal, "failed to verify payment")
}
