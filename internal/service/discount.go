package service

import (
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ResolveDiscount reduces a base price by the item-level discount.
// An absent or expired descriptor leaves the price unchanged, and the
// result never goes below zero. No rounding happens here; callers round
// once at the end of the full price computation.
func ResolveDiscount(basePrice models.Money, discount *models.DiscountDescriptor, now time.Time) models.Money {
	if discount == nil {
		return basePrice
	}
	// The discount stays live through its deadline instant; only a
	// deadline strictly in the past deactivates it.
	if discount.ValidUntil != nil && discount.ValidUntil.Before(now) {
		return basePrice
	}

	base := basePrice.Decimal
	var reduced decimal.Decimal
	switch discount.Type {
	case constants.DiscountTypePercentage:
		reduced = base.Sub(base.Mul(discount.Value.Decimal).Div(oneHundred))
	case constants.DiscountTypeFixed:
		reduced = base.Sub(discount.Value.Decimal)
	default:
		return basePrice
	}

	if reduced.IsNegative() {
		reduced = decimal.Zero
	}
	// Unrounded on purpose: rounding happens once, in the pricing service
	return models.Money{Decimal: reduced}
}
