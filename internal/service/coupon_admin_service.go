package service

import (
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

var validCouponItemTypes = map[string]bool{
	constants.CouponScopeAll:      true,
	constants.ItemTypeTestSeries:  true,
	constants.ItemTypeCourse:      true,
	constants.ItemTypeEBook:       true,
	constants.ItemTypePublication: true,
}

// CouponAdminService manages coupon definitions from the back office
type CouponAdminService struct {
	couponRepo      repository.CouponRepository
	couponUsageRepo repository.CouponUsageRepository
}

// NewCouponAdminService creates the coupon admin service
func NewCouponAdminService(couponRepo repository.CouponRepository, couponUsageRepo repository.CouponUsageRepository) *CouponAdminService {
	return &CouponAdminService{
		couponRepo:      couponRepo,
		couponUsageRepo: couponUsageRepo,
	}
}

// CouponInput carries create/update fields for a coupon
type CouponInput struct {
	Code              string
	DiscountType      string
	DiscountValue     models.Money
	MaxDiscount       models.Money
	MinPurchaseAmount models.Money
	MaxUses           int
	ValidFrom         time.Time
	ValidUntil        time.Time
	ApplicableItems   []models.CouponApplicability
	IsActive          bool
}

// List returns coupons matching the filter
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// Get returns one coupon
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Create creates a coupon. Codes are stored upper-cased.
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	code, err := validateCouponInput(input)
	if err != nil {
		return nil, err
	}
	existing, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCodeExists
	}

	coupon := models.Coupon{Code: code}
	applyCouponInput(&coupon, input)
	if err := s.couponRepo.Create(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Update updates a coupon. The code itself is immutable once issued.
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	input.Code = coupon.Code
	if _, err := validateCouponInput(input); err != nil {
		return nil, err
	}
	applyCouponInput(coupon, input)
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon
func (s *CouponAdminService) Delete(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.couponRepo.Delete(id)
}

// ListUsages returns redemption records
func (s *CouponAdminService) ListUsages(filter repository.CouponUsageListFilter) ([]models.CouponUsage, int64, error) {
	return s.couponUsageRepo.List(filter)
}

func validateCouponInput(input CouponInput) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return "", ErrValidation
	}
	if !input.DiscountValue.IsPositive() {
		return "", ErrValidation
	}
	switch input.DiscountType {
	case constants.DiscountTypePercentage:
		if input.DiscountValue.Decimal.GreaterThan(oneHundred) {
			return "", ErrValidation
		}
		if !input.MaxDiscount.IsPositive() {
			return "", ErrValidation
		}
	case constants.DiscountTypeFixed:
	default:
		return "", ErrValidation
	}
	if input.MinPurchaseAmount.IsNegative() || input.MaxUses < 0 {
		return "", ErrValidation
	}
	if input.ValidUntil.IsZero() || !input.ValidUntil.After(input.ValidFrom) {
		return "", ErrValidation
	}
	for _, entry := range input.ApplicableItems {
		if !validCouponItemTypes[entry.ItemType] {
			return "", ErrValidation
		}
	}
	return code, nil
}

func applyCouponInput(coupon *models.Coupon, input CouponInput) {
	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MaxDiscount = input.MaxDiscount
	coupon.MinPurchaseAmount = input.MinPurchaseAmount
	coupon.MaxUses = input.MaxUses
	coupon.ValidFrom = input.ValidFrom
	coupon.ValidUntil = input.ValidUntil
	coupon.ApplicableItems = input.ApplicableItems
	coupon.IsActive = input.IsActive
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = time.Now()
	}
}
