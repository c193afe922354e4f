package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPricingServiceTest(t *testing.T) (*PricingService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:pricing_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.TestSeries{}, &models.Course{}, &models.EBook{}, &models.Publication{},
		&models.Coupon{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	couponSvc := NewCouponService(repository.NewCouponRepository(db))
	svc := NewPricingService(
		repository.NewTestSeriesRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEBookRepository(db),
		repository.NewPublicationRepository(db),
		couponSvc,
	)
	return svc, db
}

func createTestCourse(t *testing.T, db *gorm.DB, mutate func(*models.Course)) models.Course {
	t.Helper()

	course := models.Course{
		Name:      "Banking Foundation",
		BasePrice: moneyFromFloat(1000),
		IsActive:  true,
	}
	if mutate != nil {
		mutate(&course)
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	return course
}

func TestQuoteBasePriceOnly(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	course := createTestCourse(t, db, nil)

	quote, err := svc.Quote(constants.ItemTypeCourse, course.ID, "", time.Now())
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if !quote.FinalPrice.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected 1000, got %s", quote.FinalPrice)
	}
	if !quote.ItemDiscount.Decimal.IsZero() || !quote.CouponDiscount.Decimal.IsZero() {
		t.Fatalf("expected no discounts, got %+v", quote)
	}
}

func TestQuoteItemDiscountThenCoupon(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	kind := constants.DiscountTypePercentage
	course := createTestCourse(t, db, func(c *models.Course) {
		c.DiscountType = &kind
		c.DiscountValue = moneyFromFloat(10)
	})
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.DiscountType = constants.DiscountTypeFixed
		c.DiscountValue = moneyFromFloat(100)
	})

	quote, err := svc.Quote(constants.ItemTypeCourse, course.ID, "SAVE20", time.Now())
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if !quote.ItemDiscount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected item discount 100, got %s", quote.ItemDiscount)
	}
	if !quote.CouponDiscount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected coupon discount 100, got %s", quote.CouponDiscount)
	}
	if !quote.FinalPrice.Decimal.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected 800, got %s", quote.FinalPrice)
	}
}

func TestQuoteCouponSeesDiscountedPrice(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	kind := constants.DiscountTypePercentage
	course := createTestCourse(t, db, func(c *models.Course) {
		c.DiscountType = &kind
		c.DiscountValue = moneyFromFloat(50)
	})
	// Min purchase sits between the discounted price (500) and the base
	// price (1000): the coupon must be evaluated after the item discount,
	// so it does not qualify and the quote keeps the discounted price.
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.DiscountType = constants.DiscountTypeFixed
		c.DiscountValue = moneyFromFloat(50)
		c.MinPurchaseAmount = moneyFromFloat(600)
	})

	quote, err := svc.Quote(constants.ItemTypeCourse, course.ID, "SAVE20", time.Now())
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if !quote.FinalPrice.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected 500, got %s", quote.FinalPrice)
	}
	if quote.Coupon != nil || !quote.CouponDiscount.Decimal.IsZero() {
		t.Fatalf("expected coupon to be skipped, got %+v", quote)
	}
	if quote.CouponMessage == "" {
		t.Fatalf("expected a message explaining the skipped coupon")
	}
}

func TestQuoteDegradesOnUnusableCoupon(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	course := createTestCourse(t, db, nil)
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.ValidUntil = time.Now().Add(-time.Hour)
	})

	cases := []struct {
		name string
		code string
	}{
		{name: "expired", code: "SAVE20"},
		{name: "unknown", code: "NOSUCHCODE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := svc.Quote(constants.ItemTypeCourse, course.ID, tc.code, time.Now())
			if err != nil {
				t.Fatalf("quote should degrade to no discount, got %v", err)
			}
			if !quote.FinalPrice.Decimal.Equal(decimal.NewFromInt(1000)) {
				t.Fatalf("expected full price 1000, got %s", quote.FinalPrice)
			}
			if quote.Coupon != nil {
				t.Fatalf("expected no coupon on the quote, got %+v", quote.Coupon)
			}
			if quote.CouponMessage == "" {
				t.Fatalf("expected a message explaining the skipped coupon")
			}
		})
	}
}

func TestQuoteStrictFailsOnUnusableCoupon(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	course := createTestCourse(t, db, nil)
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.ValidUntil = time.Now().Add(-time.Hour)
	})

	if _, err := svc.QuoteStrict(constants.ItemTypeCourse, course.ID, "SAVE20", time.Now()); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
}

func TestQuoteReportsCouponSummaryOnly(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	course := createTestCourse(t, db, nil)
	coupon := createTestCoupon(t, db, func(c *models.Coupon) {
		c.MaxUses = 100
		c.UsedCount = 7
	})

	quote, err := svc.Quote(constants.ItemTypeCourse, course.ID, "SAVE20", time.Now())
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if quote.Coupon == nil {
		t.Fatalf("expected coupon on the quote")
	}
	if quote.Coupon.Code != coupon.Code || quote.Coupon.DiscountType != coupon.DiscountType {
		t.Fatalf("unexpected coupon summary: %+v", quote.Coupon)
	}
	if !quote.Coupon.MaxDiscount.Decimal.Equal(coupon.MaxDiscount.Decimal) {
		t.Fatalf("unexpected max discount: %s", quote.Coupon.MaxDiscount)
	}
}

func TestQuoteRoundsOnce(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	kind := constants.DiscountTypePercentage
	course := createTestCourse(t, db, func(c *models.Course) {
		c.BasePrice = moneyFromFloat(999)
		c.DiscountType = &kind
		c.DiscountValue = moneyFromFloat(33.33)
	})

	quote, err := svc.Quote(constants.ItemTypeCourse, course.ID, "", time.Now())
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	// 999 - 999*0.3333 = 666.0333, rounded once to 666.03
	if !quote.FinalPrice.Decimal.Equal(decimal.NewFromFloat(666.03)) {
		t.Fatalf("expected 666.03, got %s", quote.FinalPrice)
	}
}

func TestQuoteUnknownItem(t *testing.T) {
	svc, _ := setupPricingServiceTest(t)

	if _, err := svc.Quote(constants.ItemTypeCourse, 42, "", time.Now()); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := svc.Quote("garbage", 1, "", time.Now()); !errors.Is(err, ErrInvalidItemType) {
		t.Fatalf("expected ErrInvalidItemType, got %v", err)
	}
}

func TestQuoteInactiveItemHidden(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	course := createTestCourse(t, db, func(c *models.Course) {
		c.IsActive = false
	})

	if _, err := svc.Quote(constants.ItemTypeCourse, course.ID, "", time.Now()); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for inactive item, got %v", err)
	}
}

func TestQuoteFreeEBook(t *testing.T) {
	svc, db := setupPricingServiceTest(t)
	ebook := models.EBook{
		Title:     "Free Notes",
		BasePrice: moneyFromFloat(199),
		IsFree:    true,
		IsActive:  true,
	}
	if err := db.Create(&ebook).Error; err != nil {
		t.Fatalf("create ebook failed: %v", err)
	}

	quote, err := svc.Quote(constants.ItemTypeEBook, ebook.ID, "", time.Now())
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if !quote.FinalPrice.Decimal.IsZero() {
		t.Fatalf("expected 0 for free ebook, got %s", quote.FinalPrice)
	}
}
