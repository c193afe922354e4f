package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/payment/razorpay"
	"github.com/Deekshith-46/brain-buzz/internal/queue"
	"github.com/Deekshith-46/brain-buzz/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testGatewaySecret = "testsecret"

func setupPurchaseServiceTest(t *testing.T, gatewayURL string) (*PurchaseService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:purchase_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.TestSeries{}, &models.Course{}, &models.EBook{}, &models.Publication{},
		&models.Coupon{}, &models.CouponUsage{},
		&models.Purchase{}, &models.PurchaseItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	// Buyer rows for the user IDs the tests purchase with
	for _, email := range []string{"buyer1@example.com", "buyer2@example.com"} {
		if err := db.Create(&models.User{
			Email:        email,
			PasswordHash: "x",
			Status:       constants.UserStatusActive,
		}).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	couponRepo := repository.NewCouponRepository(db)
	couponSvc := NewCouponService(couponRepo)
	pricingSvc := NewPricingService(
		repository.NewTestSeriesRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEBookRepository(db),
		repository.NewPublicationRepository(db),
		couponSvc,
	)
	gateway, err := razorpay.NewClient(razorpay.Config{
		KeyID:     "rzp_test_key",
		KeySecret: testGatewaySecret,
		BaseURL:   gatewayURL,
	})
	if err != nil {
		t.Fatalf("gateway client failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}

	svc := NewPurchaseService(
		repository.NewPurchaseRepository(db),
		repository.NewUserRepository(db),
		couponRepo,
		repository.NewCouponUsageRepository(db),
		pricingSvc,
		gateway,
		queueClient,
		30,
	)
	return svc, db
}

func newGatewayStub(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"order_stub_1","amount":80000,"currency":"INR","status":"created"}`)
	}))
}

func createPendingPurchaseRow(t *testing.T, db *gorm.DB, userID uint, orderID string, itemType string, itemID uint, mutate func(*models.Purchase)) models.Purchase {
	t.Helper()

	expiresAt := time.Now().Add(30 * time.Minute)
	purchase := models.Purchase{
		UserID:         userID,
		OrderID:        orderID,
		Status:         constants.PurchaseStatusPending,
		Currency:       constants.SiteCurrencyDefault,
		OriginalAmount: moneyFromFloat(1000),
		Amount:         moneyFromFloat(1000),
		ExpiresAt:      &expiresAt,
	}
	if mutate != nil {
		mutate(&purchase)
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}
	item := models.PurchaseItem{
		PurchaseID: purchase.ID,
		ItemType:   itemType,
		ItemID:     itemID,
		Title:      "test item",
		Price:      purchase.Amount,
		Quantity:   1,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create purchase item failed: %v", err)
	}
	purchase.Items = []models.PurchaseItem{item}
	return purchase
}

func TestCreatePendingOpensGatewayOrder(t *testing.T) {
	stub := newGatewayStub(t)
	defer stub.Close()
	svc, db := setupPurchaseServiceTest(t, stub.URL)
	course := createTestCourse(t, db, nil)

	checkout, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, "")
	if err != nil {
		t.Fatalf("CreatePending error: %v", err)
	}
	if checkout.Purchase.Status != constants.PurchaseStatusPending {
		t.Fatalf("expected pending, got %s", checkout.Purchase.Status)
	}
	if checkout.RazorpayOrderID != "order_stub_1" || checkout.Purchase.OrderID != "order_stub_1" {
		t.Fatalf("unexpected order reference: %+v", checkout)
	}
	if checkout.AmountPaise != 100000 {
		t.Fatalf("expected 100000 paise, got %d", checkout.AmountPaise)
	}
	if checkout.Purchase.ExpiresAt == nil {
		t.Fatalf("expected a payment deadline")
	}
}

func TestCreatePendingAlreadyOwned(t *testing.T) {
	stub := newGatewayStub(t)
	defer stub.Close()
	svc, db := setupPurchaseServiceTest(t, stub.URL)
	course := createTestCourse(t, db, nil)

	now := time.Now()
	createPendingPurchaseRow(t, db, 1, "order_done", constants.ItemTypeCourse, course.ID, func(p *models.Purchase) {
		p.Status = constants.PurchaseStatusCompleted
		p.PurchaseDate = &now
		p.ExpiresAt = nil
	})

	if _, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, ""); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
}

func TestCreatePendingBlockedByLivePending(t *testing.T) {
	stub := newGatewayStub(t)
	defer stub.Close()
	svc, db := setupPurchaseServiceTest(t, stub.URL)
	course := createTestCourse(t, db, nil)

	createPendingPurchaseRow(t, db, 1, "order_live", constants.ItemTypeCourse, course.ID, nil)

	if _, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, ""); !errors.Is(err, ErrPaymentPending) {
		t.Fatalf("expected ErrPaymentPending, got %v", err)
	}
}

func TestCreatePendingExpiredPendingDoesNotBlock(t *testing.T) {
	stub := newGatewayStub(t)
	defer stub.Close()
	svc, db := setupPurchaseServiceTest(t, stub.URL)
	course := createTestCourse(t, db, nil)

	past := time.Now().Add(-time.Minute)
	createPendingPurchaseRow(t, db, 1, "order_stale", constants.ItemTypeCourse, course.ID, func(p *models.Purchase) {
		p.ExpiresAt = &past
	})

	if _, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, ""); err != nil {
		t.Fatalf("expected stale pending to be ignored, got %v", err)
	}
}

func TestCreatePendingUnknownUser(t *testing.T) {
	stub := newGatewayStub(t)
	defer stub.Close()
	svc, db := setupPurchaseServiceTest(t, stub.URL)
	course := createTestCourse(t, db, nil)

	if _, err := svc.CreatePending(context.Background(), 9999, constants.ItemTypeCourse, course.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown buyer, got %v", err)
	}
}

func TestCreatePendingRejectsUnusableCoupon(t *testing.T) {
	stub := newGatewayStub(t)
	defer stub.Close()
	svc, db := setupPurchaseServiceTest(t, stub.URL)
	course := createTestCourse(t, db, nil)
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.ValidUntil = time.Now().Add(-time.Hour)
	})

	// The quote endpoint degrades here, but a buyer who asked for a
	// coupon on checkout must not be charged full price quietly.
	if _, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, "SAVE20"); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Purchase{}).Count(&count).Error; err != nil {
		t.Fatalf("count purchases failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no purchase rows, got %d", count)
	}
}

func TestCreatePendingDuplicateBlockedSecondTime(t *testing.T) {
	stub := newGatewayStub(t)
	defer stub.Close()
	svc, db := setupPurchaseServiceTest(t, stub.URL)
	course := createTestCourse(t, db, nil)

	if _, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, ""); err != nil {
		t.Fatalf("first CreatePending error: %v", err)
	}
	if _, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, ""); !errors.Is(err, ErrPaymentPending) {
		t.Fatalf("expected second buy to be blocked, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Purchase{}).Count(&count).Error; err != nil {
		t.Fatalf("count purchases failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single pending purchase, got %d", count)
	}
}

func TestCreatePendingZeroPriceCompletesWithoutGateway(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "http://127.0.0.1:1") // unreachable on purpose
	course := createTestCourse(t, db, func(c *models.Course) {
		c.BasePrice = moneyFromFloat(100)
	})
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.Code = "FULLOFF"
		c.DiscountType = constants.DiscountTypeFixed
		c.DiscountValue = moneyFromFloat(100)
		c.MaxUses = 10
	})

	checkout, err := svc.CreatePending(context.Background(), 1, constants.ItemTypeCourse, course.ID, "FULLOFF")
	if err != nil {
		t.Fatalf("CreatePending error: %v", err)
	}
	if !checkout.Completed || checkout.Purchase.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("expected immediate completion: %+v", checkout)
	}

	var coupon models.Coupon
	if err := db.Where("code = ?", "FULLOFF").First(&coupon).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if coupon.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", coupon.UsedCount)
	}
}

func TestVerifyAndCompleteHappyPath(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "")
	course := createTestCourse(t, db, func(c *models.Course) {
		c.ValidityMonths = 12
	})
	createPendingPurchaseRow(t, db, 1, "order_abc", constants.ItemTypeCourse, course.ID, nil)

	sig := razorpay.Sign("order_abc|pay_1", testGatewaySecret)
	purchase, err := svc.VerifyAndComplete("order_abc", "pay_1", sig)
	if err != nil {
		t.Fatalf("VerifyAndComplete error: %v", err)
	}
	if purchase.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("expected completed, got %s", purchase.Status)
	}
	if purchase.PaymentID != "pay_1" {
		t.Fatalf("expected payment id recorded, got %q", purchase.PaymentID)
	}
	if purchase.ExpiryDate == nil {
		t.Fatalf("expected entitlement expiry from validity months")
	}
	if approx := time.Now().AddDate(0, 12, 0); purchase.ExpiryDate.Before(approx.Add(-time.Hour)) || purchase.ExpiryDate.After(approx.Add(time.Hour)) {
		t.Fatalf("unexpected expiry date %v", purchase.ExpiryDate)
	}
}

func TestVerifyAndCompleteIdempotent(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "")
	course := createTestCourse(t, db, nil)
	createPendingPurchaseRow(t, db, 1, "order_idem", constants.ItemTypeCourse, course.ID, func(p *models.Purchase) {
		p.CouponCode = "SAVE20"
	})
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.MaxUses = 10
	})

	sig := razorpay.Sign("order_idem|pay_2", testGatewaySecret)
	if _, err := svc.VerifyAndComplete("order_idem", "pay_2", sig); err != nil {
		t.Fatalf("first completion error: %v", err)
	}
	if _, err := svc.VerifyAndComplete("order_idem", "pay_2", sig); err != nil {
		t.Fatalf("second completion error: %v", err)
	}

	var coupon models.Coupon
	if err := db.Where("code = ?", "SAVE20").First(&coupon).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if coupon.UsedCount != 1 {
		t.Fatalf("expected single redemption, got %d", coupon.UsedCount)
	}
	var usages int64
	if err := db.Model(&models.CouponUsage{}).Count(&usages).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if usages != 1 {
		t.Fatalf("expected one usage record, got %d", usages)
	}
}

func TestVerifyAndCompleteBadSignature(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "")
	course := createTestCourse(t, db, nil)
	createPendingPurchaseRow(t, db, 1, "order_bad", constants.ItemTypeCourse, course.ID, nil)

	if _, err := svc.VerifyAndComplete("order_bad", "pay_3", "deadbeef"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	var purchase models.Purchase
	if err := db.Where("order_id = ?", "order_bad").First(&purchase).Error; err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if purchase.Status != constants.PurchaseStatusPending {
		t.Fatalf("expected purchase to stay pending, got %s", purchase.Status)
	}
}

func TestVerifyAndCompleteHonoredWhenCapLost(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "")
	course := createTestCourse(t, db, nil)
	createPendingPurchaseRow(t, db, 1, "order_cap", constants.ItemTypeCourse, course.ID, func(p *models.Purchase) {
		p.CouponCode = "SAVE20"
	})
	createTestCoupon(t, db, func(c *models.Coupon) {
		c.MaxUses = 1
		c.UsedCount = 1
	})

	sig := razorpay.Sign("order_cap|pay_4", testGatewaySecret)
	purchase, err := svc.VerifyAndComplete("order_cap", "pay_4", sig)
	if err != nil {
		t.Fatalf("expected captured payment to be honored, got %v", err)
	}
	if purchase.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("expected completed, got %s", purchase.Status)
	}

	var coupon models.Coupon
	if err := db.Where("code = ?", "SAVE20").First(&coupon).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if coupon.UsedCount != 1 {
		t.Fatalf("expected cap to hold at 1, got %d", coupon.UsedCount)
	}
}

func TestMarkFailed(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "")
	course := createTestCourse(t, db, nil)
	createPendingPurchaseRow(t, db, 1, "order_fail", constants.ItemTypeCourse, course.ID, nil)

	purchase, err := svc.MarkFailed("order_fail", "payment declined")
	if err != nil {
		t.Fatalf("MarkFailed error: %v", err)
	}
	if purchase.Status != constants.PurchaseStatusFailed || purchase.FailureReason != "payment declined" {
		t.Fatalf("unexpected purchase: %+v", purchase)
	}

	// Failed is terminal
	sig := razorpay.Sign("order_fail|pay_5", testGatewaySecret)
	if _, err := svc.VerifyAndComplete("order_fail", "pay_5", sig); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCancelExpired(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "")
	course := createTestCourse(t, db, nil)
	past := time.Now().Add(-time.Minute)
	stale := createPendingPurchaseRow(t, db, 1, "order_old", constants.ItemTypeCourse, course.ID, func(p *models.Purchase) {
		p.ExpiresAt = &past
	})
	fresh := createPendingPurchaseRow(t, db, 2, "order_new", constants.ItemTypeCourse, course.ID, nil)

	if err := svc.CancelExpired(stale.ID); err != nil {
		t.Fatalf("CancelExpired error: %v", err)
	}
	if err := svc.CancelExpired(fresh.ID); err != nil {
		t.Fatalf("CancelExpired on live purchase error: %v", err)
	}

	var reloaded models.Purchase
	if err := db.First(&reloaded, stale.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.PurchaseStatusCancelled {
		t.Fatalf("expected cancelled, got %s", reloaded.Status)
	}
	reloaded = models.Purchase{}
	if err := db.First(&reloaded, fresh.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.PurchaseStatusPending {
		t.Fatalf("expected live purchase untouched, got %s", reloaded.Status)
	}
}

func TestCompletedAfterCancelIsHonored(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t, "")
	course := createTestCourse(t, db, nil)
	createPendingPurchaseRow(t, db, 1, "order_late", constants.ItemTypeCourse, course.ID, func(p *models.Purchase) {
		p.Status = constants.PurchaseStatusCancelled
	})

	sig := razorpay.Sign("order_late|pay_6", testGatewaySecret)
	purchase, err := svc.VerifyAndComplete("order_late", "pay_6", sig)
	if err != nil {
		t.Fatalf("expected late capture to complete, got %v", err)
	}
	if purchase.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("expected completed, got %s", purchase.Status)
	}
}
