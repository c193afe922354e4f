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

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:coupon_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func createTestCoupon(t *testing.T, db *gorm.DB, mutate func(*models.Coupon)) models.Coupon {
	t.Helper()

	now := time.Now()
	coupon := models.Coupon{
		Code:          "SAVE20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: moneyFromFloat(20),
		MaxDiscount:   moneyFromFloat(100),
		ValidFrom:     now.Add(-time.Hour),
		ValidUntil:    now.Add(time.Hour),
		ApplicableItems: models.ApplicabilityArray{
			{ItemType: constants.CouponScopeAll},
		},
		IsActive: true,
	}
	if mutate != nil {
		mutate(&coupon)
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func TestFindApplicableMatchesUpperCased(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, nil)

	coupon, err := svc.FindApplicable("  save20 ", constants.ItemTypeCourse, 1, time.Now())
	if err != nil {
		t.Fatalf("FindApplicable error: %v", err)
	}
	if coupon.Code != "SAVE20" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
}

func TestFindApplicableUnknownCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	if _, err := svc.FindApplicable("NOPE", constants.ItemTypeCourse, 1, time.Now()); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestFindApplicableWindow(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	now := time.Now()
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.Code = "FUTURE"
		c.ValidFrom = now.Add(time.Hour)
		c.ValidUntil = now.Add(2 * time.Hour)
	})
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.Code = "PAST"
		c.ValidFrom = now.Add(-2 * time.Hour)
		c.ValidUntil = now.Add(-time.Hour)
	})

	if _, err := svc.FindApplicable("FUTURE", constants.ItemTypeCourse, 1, now); !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("expected ErrCouponNotStarted, got %v", err)
	}
	if _, err := svc.FindApplicable("PAST", constants.ItemTypeCourse, 1, now); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
}

func TestFindApplicableScope(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.ApplicableItems = models.ApplicabilityArray{
			{ItemType: constants.ItemTypeTestSeries, ItemID: 7},
		}
	})

	if _, err := svc.FindApplicable("SAVE20", constants.ItemTypeTestSeries, 7, time.Now()); err != nil {
		t.Fatalf("expected scoped match, got %v", err)
	}
	if _, err := svc.FindApplicable("SAVE20", constants.ItemTypeTestSeries, 8, time.Now()); !errors.Is(err, ErrCouponNotApplicable) {
		t.Fatalf("expected ErrCouponNotApplicable, got %v", err)
	}
	if _, err := svc.FindApplicable("SAVE20", constants.ItemTypeCourse, 7, time.Now()); !errors.Is(err, ErrCouponNotApplicable) {
		t.Fatalf("expected ErrCouponNotApplicable for wrong type, got %v", err)
	}
}

func TestFindApplicableExhausted(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.MaxUses = 5
		c.UsedCount = 5
	})

	if _, err := svc.FindApplicable("SAVE20", constants.ItemTypeCourse, 1, time.Now()); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}
}

func TestFindApplicableInactive(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.IsActive = false
	})

	if _, err := svc.FindApplicable("SAVE20", constants.ItemTypeCourse, 1, time.Now()); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive, got %v", err)
	}
}

func TestApplyDiscountPercentageClamped(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: moneyFromFloat(50),
		MaxDiscount:   moneyFromFloat(100),
	}

	final, discount, err := svc.ApplyDiscount(moneyFromFloat(1000), coupon)
	if err != nil {
		t.Fatalf("ApplyDiscount error: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected clamp to 100, got %s", discount)
	}
	if !final.Decimal.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected 900, got %s", final)
	}
}

func TestApplyDiscountFixedFloorsAtZero(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: moneyFromFloat(500),
	}

	final, discount, err := svc.ApplyDiscount(moneyFromFloat(300), coupon)
	if err != nil {
		t.Fatalf("ApplyDiscount error: %v", err)
	}
	if !final.Decimal.IsZero() {
		t.Fatalf("expected 0, got %s", final)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected reported discount 300, got %s", discount)
	}
}

func TestApplyDiscountMinPurchase(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	coupon := &models.Coupon{
		DiscountType:      constants.DiscountTypeFixed,
		DiscountValue:     moneyFromFloat(50),
		MinPurchaseAmount: moneyFromFloat(500),
	}

	if _, _, err := svc.ApplyDiscount(moneyFromFloat(499), coupon); !errors.Is(err, ErrCouponMinPurchase) {
		t.Fatalf("expected ErrCouponMinPurchase, got %v", err)
	}
	if _, _, err := svc.ApplyDiscount(moneyFromFloat(500), coupon); err != nil {
		t.Fatalf("expected exact minimum to pass, got %v", err)
	}
}
