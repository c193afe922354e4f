package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/provider"
	"github.com/Deekshith-46/brain-buzz/internal/queue"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Coupon{}, &models.CouponUsage{},
		&models.Purchase{}, &models.PurchaseItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	purchaseRepo := repository.NewPurchaseRepository(db)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	purchaseSvc := service.NewPurchaseService(
		purchaseRepo,
		repository.NewUserRepository(db),
		repository.NewCouponRepository(db),
		repository.NewCouponUsageRepository(db),
		nil,
		nil,
		queueClient,
		30,
	)

	consumer := NewConsumer(&provider.Container{
		PurchaseRepo:    purchaseRepo,
		PurchaseService: purchaseSvc,
	})
	return consumer, db
}

func timeoutCancelTask(t *testing.T, purchaseID uint) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(queue.PurchaseTimeoutCancelPayload{PurchaseID: purchaseID})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(queue.TaskPurchaseTimeoutCancel, body)
}

func TestPurchaseTimeoutCancelExpiredPending(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	expired := time.Now().Add(-time.Minute)
	purchase := models.Purchase{
		UserID:    7,
		OrderID:   "order_worker_1",
		Status:    constants.PurchaseStatusPending,
		Amount:    models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		Currency:  constants.SiteCurrencyDefault,
		ExpiresAt: &expired,
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	if err := consumer.handlePurchaseTimeoutCancel(context.Background(), timeoutCancelTask(t, purchase.ID)); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var got models.Purchase
	if err := db.First(&got, purchase.ID).Error; err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if got.Status != constants.PurchaseStatusCancelled {
		t.Fatalf("status want cancelled got %s", got.Status)
	}
}

func TestPurchaseTimeoutCancelLeavesUnexpired(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	future := time.Now().Add(10 * time.Minute)
	purchase := models.Purchase{
		UserID:    8,
		OrderID:   "order_worker_2",
		Status:    constants.PurchaseStatusPending,
		Amount:    models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		Currency:  constants.SiteCurrencyDefault,
		ExpiresAt: &future,
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	if err := consumer.handlePurchaseTimeoutCancel(context.Background(), timeoutCancelTask(t, purchase.ID)); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var got models.Purchase
	if err := db.First(&got, purchase.ID).Error; err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if got.Status != constants.PurchaseStatusPending {
		t.Fatalf("status want pending got %s", got.Status)
	}
}

func TestPurchaseTimeoutCancelLeavesCompleted(t *testing.T) {
	consumer, db := setupWorkerTest(t)

	expired := time.Now().Add(-time.Minute)
	purchase := models.Purchase{
		UserID:    9,
		OrderID:   "order_worker_3",
		Status:    constants.PurchaseStatusCompleted,
		Amount:    models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		Currency:  constants.SiteCurrencyDefault,
		ExpiresAt: &expired,
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	if err := consumer.handlePurchaseTimeoutCancel(context.Background(), timeoutCancelTask(t, purchase.ID)); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var got models.Purchase
	if err := db.First(&got, purchase.ID).Error; err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if got.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("status want completed got %s", got.Status)
	}
}

func TestPurchaseTimeoutCancelSkipsUnknownID(t *testing.T) {
	consumer, _ := setupWorkerTest(t)

	if err := consumer.handlePurchaseTimeoutCancel(context.Background(), timeoutCancelTask(t, 9999)); err != nil {
		t.Fatalf("unknown purchase should not error: %v", err)
	}
}
