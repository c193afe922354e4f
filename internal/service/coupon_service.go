package service

import (
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService evaluates coupons against items and prices. It never
// mutates used_count; redemption is counted by the purchase ledger when
// a payment completes.
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates the coupon engine
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// FindApplicable resolves a code to a coupon usable on the given item
// right now. Codes are matched upper-cased.
func (s *CouponService) FindApplicable(code, itemType string, itemID uint, now time.Time) (*models.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrCouponNotFound
	}

	coupon, err := s.couponRepo.GetByCode(normalized)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if now.Before(coupon.ValidFrom) {
		return nil, ErrCouponNotStarted
	}
	if now.After(coupon.ValidUntil) {
		return nil, ErrCouponExpired
	}
	if !coupon.ApplicableItems.Matches(itemType, itemID) {
		return nil, ErrCouponNotApplicable
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return nil, ErrCouponExhausted
	}
	return coupon, nil
}

// ApplyDiscount computes the price after the coupon. Percentage coupons
// are clamped to the coupon's max discount, and the final price never
// goes below zero. A price under the coupon's minimum makes the coupon
// not applicable for that price.
func (s *CouponService) ApplyDiscount(price models.Money, coupon *models.Coupon) (final models.Money, discount models.Money, err error) {
	if coupon == nil {
		return price, models.Money{}, nil
	}
	if coupon.MinPurchaseAmount.IsPositive() && price.Decimal.LessThan(coupon.MinPurchaseAmount.Decimal) {
		return price, models.Money{}, ErrCouponMinPurchase
	}

	raw := couponRawDiscount(price, coupon)
	reduced := price.Decimal.Sub(raw)
	if reduced.IsNegative() {
		reduced = decimal.Zero
	}

	final = models.Money{Decimal: reduced}
	discount = models.Money{Decimal: price.Decimal.Sub(reduced)}
	return final, discount, nil
}

func couponRawDiscount(price models.Money, coupon *models.Coupon) decimal.Decimal {
	switch coupon.DiscountType {
	case constants.DiscountTypePercentage:
		raw := price.Decimal.Mul(coupon.DiscountValue.Decimal).Div(oneHundred)
		if coupon.MaxDiscount.IsPositive() && raw.GreaterThan(coupon.MaxDiscount.Decimal) {
			raw = coupon.MaxDiscount.Decimal
		}
		return raw
	case constants.DiscountTypeFixed:
		return coupon.DiscountValue.Decimal
	default:
		return decimal.Zero
	}
}
