package service

import (
	"errors"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"

	"github.com/shopspring/decimal"
)

// PriceableItem is the pricing view of any sellable catalog entry
type PriceableItem struct {
	ItemType       string
	ItemID         uint
	Title          string
	BasePrice      models.Money
	Discount       *models.DiscountDescriptor
	ValidityMonths int
	IsFree         bool
	IsActive       bool
}

// CouponSummary is the client-facing slice of an applied coupon;
// redemption bookkeeping fields stay server-side.
type CouponSummary struct {
	Code          string       `json:"code"`
	DiscountType  string       `json:"discount_type"`
	DiscountValue models.Money `json:"discount_value"`
	MaxDiscount   models.Money `json:"max_discount"`
}

// QuoteResult is a fully priced item, the single source for both display
// prices and gateway charge amounts
type QuoteResult struct {
	ItemType       string         `json:"item_type"`
	ItemID         uint           `json:"item_id"`
	Title          string         `json:"title"`
	OriginalPrice  models.Money   `json:"original_price"`
	ItemDiscount   models.Money   `json:"item_discount"`
	CouponDiscount models.Money   `json:"coupon_discount"`
	FinalPrice     models.Money   `json:"final_price"`
	Coupon         *CouponSummary `json:"coupon,omitempty"`
	// CouponMessage explains why a requested coupon was not applied
	CouponMessage  string `json:"coupon_message,omitempty"`
	ValidityMonths int    `json:"-"`

	appliedCoupon *models.Coupon
	couponErr     error
}

// PricingService computes the charge price for catalog items. All price
// math runs unrounded and the result is rounded to two decimals exactly
// once, at the end of Quote.
type PricingService struct {
	testSeriesRepo  repository.TestSeriesRepository
	courseRepo      repository.CourseRepository
	ebookRepo       repository.EBookRepository
	publicationRepo repository.PublicationRepository
	couponService   *CouponService
}

// NewPricingService creates the pricing service
func NewPricingService(
	testSeriesRepo repository.TestSeriesRepository,
	courseRepo repository.CourseRepository,
	ebookRepo repository.EBookRepository,
	publicationRepo repository.PublicationRepository,
	couponService *CouponService,
) *PricingService {
	return &PricingService{
		testSeriesRepo:  testSeriesRepo,
		courseRepo:      courseRepo,
		ebookRepo:       ebookRepo,
		publicationRepo: publicationRepo,
		couponService:   couponService,
	}
}

// GetItem loads the pricing view of a catalog item
func (s *PricingService) GetItem(itemType string, itemID uint) (*PriceableItem, error) {
	switch itemType {
	case constants.ItemTypeTestSeries:
		series, err := s.testSeriesRepo.GetByID(itemID)
		if err != nil {
			return nil, err
		}
		if series == nil {
			return nil, ErrItemNotFound
		}
		return &PriceableItem{
			ItemType:       itemType,
			ItemID:         series.ID,
			Title:          series.Name,
			BasePrice:      series.BasePrice,
			Discount:       series.Discount(),
			ValidityMonths: series.ValidityMonths,
			IsActive:       series.IsActive,
		}, nil
	case constants.ItemTypeCourse:
		course, err := s.courseRepo.GetByID(itemID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, ErrItemNotFound
		}
		return &PriceableItem{
			ItemType:       itemType,
			ItemID:         course.ID,
			Title:          course.Name,
			BasePrice:      course.BasePrice,
			Discount:       course.Discount(),
			ValidityMonths: course.ValidityMonths,
			IsActive:       course.IsActive,
		}, nil
	case constants.ItemTypeEBook:
		ebook, err := s.ebookRepo.GetByID(itemID)
		if err != nil {
			return nil, err
		}
		if ebook == nil {
			return nil, ErrItemNotFound
		}
		base := ebook.BasePrice
		if ebook.IsFree {
			base = models.NewMoneyFromDecimal(decimal.Zero)
		}
		return &PriceableItem{
			ItemType:  itemType,
			ItemID:    ebook.ID,
			Title:     ebook.Title,
			BasePrice: base,
			Discount:  ebook.Discount(),
			IsFree:    ebook.IsFree,
			IsActive:  ebook.IsActive,
		}, nil
	case constants.ItemTypePublication:
		publication, err := s.publicationRepo.GetByID(itemID)
		if err != nil {
			return nil, err
		}
		if publication == nil {
			return nil, ErrItemNotFound
		}
		return &PriceableItem{
			ItemType:       itemType,
			ItemID:         publication.ID,
			Title:          publication.Title,
			BasePrice:      publication.BasePrice,
			Discount:       publication.Discount(),
			ValidityMonths: publication.ValidityMonths,
			IsActive:       publication.IsActive,
		}, nil
	default:
		return nil, ErrInvalidItemType
	}
}

// Quote prices an item, applying the item-level discount first and the
// coupon on the already discounted price. A coupon that cannot be
// applied (missing, expired, below the minimum, exhausted) is a normal
// quote outcome, not a failure: the quote degrades to the
// item-discounted price and reports why. Side-effect free.
func (s *PricingService) Quote(itemType string, itemID uint, couponCode string, now time.Time) (*QuoteResult, error) {
	item, err := s.GetItem(itemType, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrItemNotFound
	}

	afterItemDiscount := ResolveDiscount(item.BasePrice, item.Discount, now)

	result := &QuoteResult{
		ItemType:       item.ItemType,
		ItemID:         item.ItemID,
		Title:          item.Title,
		OriginalPrice:  roundMoney(item.BasePrice),
		ItemDiscount:   roundMoney(models.Money{Decimal: item.BasePrice.Decimal.Sub(afterItemDiscount.Decimal)}),
		FinalPrice:     roundMoney(afterItemDiscount),
		ValidityMonths: item.ValidityMonths,
	}
	if couponCode == "" {
		return result, nil
	}

	coupon, couponErr := s.couponService.FindApplicable(couponCode, itemType, itemID, now)
	var finalPrice, couponDiscount models.Money
	if couponErr == nil {
		finalPrice, couponDiscount, couponErr = s.couponService.ApplyDiscount(afterItemDiscount, coupon)
	}
	if couponErr != nil {
		if !isCouponQuoteMiss(couponErr) {
			return nil, couponErr
		}
		result.CouponMessage = couponErr.Error()
		result.couponErr = couponErr
		return result, nil
	}

	result.CouponDiscount = roundMoney(couponDiscount)
	result.FinalPrice = roundMoney(finalPrice)
	result.Coupon = &CouponSummary{
		Code:          coupon.Code,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
		MaxDiscount:   coupon.MaxDiscount,
	}
	result.appliedCoupon = coupon
	return result, nil
}

// QuoteStrict is Quote, except a coupon that cannot be applied fails
// the call. The purchase path uses it so a buyer who asked for a coupon
// is never silently charged the undiscounted price.
func (s *PricingService) QuoteStrict(itemType string, itemID uint, couponCode string, now time.Time) (*QuoteResult, error) {
	quote, err := s.Quote(itemType, itemID, couponCode, now)
	if err != nil {
		return nil, err
	}
	if quote.couponErr != nil {
		return nil, quote.couponErr
	}
	return quote, nil
}

// isCouponQuoteMiss separates business reasons a coupon does not apply
// from real failures like a broken database connection.
func isCouponQuoteMiss(err error) bool {
	for _, miss := range []error{
		ErrCouponNotFound,
		ErrCouponInactive,
		ErrCouponNotStarted,
		ErrCouponExpired,
		ErrCouponNotApplicable,
		ErrCouponExhausted,
		ErrCouponMinPurchase,
	} {
		if errors.Is(err, miss) {
			return true
		}
	}
	return false
}

func roundMoney(m models.Money) models.Money {
	return models.NewMoneyFromDecimal(m.Decimal.Round(2))
}
