package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupEntitlementServiceTest(t *testing.T) (*EntitlementService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:entitlement_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Purchase{}, &models.PurchaseItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewEntitlementService(repository.NewPurchaseRepository(db)), db
}

func createEntitlementRow(t *testing.T, db *gorm.DB, userID uint, status string, itemID uint, expiryDate *time.Time) {
	t.Helper()

	now := time.Now()
	purchase := models.Purchase{
		UserID:     userID,
		OrderID:    fmt.Sprintf("order_ent_%d_%d", userID, time.Now().UnixNano()),
		Status:     status,
		Currency:   constants.SiteCurrencyDefault,
		Amount:     moneyFromFloat(500),
		ExpiryDate: expiryDate,
	}
	if status == constants.PurchaseStatusCompleted {
		purchase.PurchaseDate = &now
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}
	item := models.PurchaseItem{
		PurchaseID: purchase.ID,
		ItemType:   constants.ItemTypeCourse,
		ItemID:     itemID,
		Title:      "test course",
		Price:      purchase.Amount,
		Quantity:   1,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create purchase item failed: %v", err)
	}
}

func TestHasAccessLifetimePurchase(t *testing.T) {
	svc, db := setupEntitlementServiceTest(t)
	createEntitlementRow(t, db, 1, constants.PurchaseStatusCompleted, 10, nil)

	ok, err := svc.HasAccess(1, constants.ItemTypeCourse, 10, time.Now())
	if err != nil {
		t.Fatalf("HasAccess error: %v", err)
	}
	if !ok {
		t.Fatalf("expected access for lifetime purchase")
	}
}

func TestHasAccessUnexpiredPurchase(t *testing.T) {
	svc, db := setupEntitlementServiceTest(t)
	future := time.Now().AddDate(0, 6, 0)
	createEntitlementRow(t, db, 1, constants.PurchaseStatusCompleted, 10, &future)

	ok, err := svc.HasAccess(1, constants.ItemTypeCourse, 10, time.Now())
	if err != nil {
		t.Fatalf("HasAccess error: %v", err)
	}
	if !ok {
		t.Fatalf("expected access before expiry")
	}
}

func TestHasAccessExpiredPurchase(t *testing.T) {
	svc, db := setupEntitlementServiceTest(t)
	past := time.Now().Add(-time.Hour)
	createEntitlementRow(t, db, 1, constants.PurchaseStatusCompleted, 10, &past)

	ok, err := svc.HasAccess(1, constants.ItemTypeCourse, 10, time.Now())
	if err != nil {
		t.Fatalf("HasAccess error: %v", err)
	}
	if ok {
		t.Fatalf("expected no access after expiry")
	}
}

func TestHasAccessPendingPurchase(t *testing.T) {
	svc, db := setupEntitlementServiceTest(t)
	createEntitlementRow(t, db, 1, constants.PurchaseStatusPending, 10, nil)

	ok, err := svc.HasAccess(1, constants.ItemTypeCourse, 10, time.Now())
	if err != nil {
		t.Fatalf("HasAccess error: %v", err)
	}
	if ok {
		t.Fatalf("expected no access for pending purchase")
	}
}

func TestHasAccessOtherItemOrUser(t *testing.T) {
	svc, db := setupEntitlementServiceTest(t)
	createEntitlementRow(t, db, 1, constants.PurchaseStatusCompleted, 10, nil)

	if ok, _ := svc.HasAccess(1, constants.ItemTypeCourse, 11, time.Now()); ok {
		t.Fatalf("expected no access for a different item")
	}
	if ok, _ := svc.HasAccess(2, constants.ItemTypeCourse, 10, time.Now()); ok {
		t.Fatalf("expected no access for a different user")
	}
	if ok, _ := svc.HasAccess(0, constants.ItemTypeCourse, 10, time.Now()); ok {
		t.Fatalf("expected no access for anonymous user")
	}
}
