package service

import (
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
)

// DiscountInput carries an optional item-level discount on a catalog write.
// A nil Type clears the discount.
type DiscountInput struct {
	Type       *string
	Value      models.Money
	ValidUntil *time.Time
}

// validateDiscountInput enforces discount shape at the admin write
// boundary so the pricing path never sees a malformed descriptor.
func validateDiscountInput(input DiscountInput) error {
	if input.Type == nil {
		return nil
	}
	switch *input.Type {
	case constants.DiscountTypePercentage:
		if !input.Value.IsPositive() || input.Value.Decimal.GreaterThan(oneHundred) {
			return ErrDiscountInvalid
		}
	case constants.DiscountTypeFixed:
		if !input.Value.IsPositive() {
			return ErrDiscountInvalid
		}
	default:
		return ErrDiscountInvalid
	}
	return nil
}
