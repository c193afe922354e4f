package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/logger"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/payment/razorpay"
	"github.com/Deekshith-46/brain-buzz/internal/queue"
	"github.com/Deekshith-46/brain-buzz/internal/repository"

	"gorm.io/gorm"
)

var allowedTransitions = map[string]map[string]bool{
	constants.PurchaseStatusPending: {
		constants.PurchaseStatusProcessing: true,
		constants.PurchaseStatusCompleted:  true,
		constants.PurchaseStatusFailed:     true,
		constants.PurchaseStatusCancelled:  true,
	},
	constants.PurchaseStatusProcessing: {
		constants.PurchaseStatusCompleted: true,
		constants.PurchaseStatusFailed:    true,
		constants.PurchaseStatusCancelled: true,
	},
	// A cancelled purchase can still complete: the gateway may capture the
	// payment after our timeout cancelled the record.
	constants.PurchaseStatusCancelled: {
		constants.PurchaseStatusCompleted: true,
	},
	constants.PurchaseStatusCompleted: {
		constants.PurchaseStatusRefunded: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	nexts, ok := allowedTransitions[strings.ToLower(strings.TrimSpace(current))]
	if !ok {
		return false
	}
	return nexts[target]
}

// PendingCheckout is everything the client needs to open the gateway
// checkout for a freshly created purchase
type PendingCheckout struct {
	Purchase        *models.Purchase `json:"purchase"`
	RazorpayKeyID   string           `json:"razorpay_key_id,omitempty"`
	RazorpayOrderID string           `json:"razorpay_order_id,omitempty"`
	AmountPaise     int64            `json:"amount_paise"`
	Currency        string           `json:"currency"`
	// Completed is set when the final price was zero and no gateway
	// round-trip was needed
	Completed bool `json:"completed"`
}

// PurchaseService owns the purchase ledger: creating pending purchases,
// completing them after payment verification, and failing or cancelling
// them. All money amounts come from the pricing service; the gateway is
// charged in paise.
type PurchaseService struct {
	purchaseRepo    repository.PurchaseRepository
	userRepo        repository.UserRepository
	couponRepo      repository.CouponRepository
	couponUsageRepo repository.CouponUsageRepository
	pricingService  *PricingService
	gateway         *razorpay.Client
	queueClient     *queue.Client
	expireMinutes   int
}

// NewPurchaseService creates the purchase ledger service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	userRepo repository.UserRepository,
	couponRepo repository.CouponRepository,
	couponUsageRepo repository.CouponUsageRepository,
	pricingService *PricingService,
	gateway *razorpay.Client,
	queueClient *queue.Client,
	expireMinutes int,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:    purchaseRepo,
		userRepo:        userRepo,
		couponRepo:      couponRepo,
		couponUsageRepo: couponUsageRepo,
		pricingService:  pricingService,
		gateway:         gateway,
		queueClient:     queueClient,
		expireMinutes:   expireMinutes,
	}
}

func (s *PurchaseService) resolveExpireMinutes() int {
	if s.expireMinutes > 0 {
		return s.expireMinutes
	}
	return 30
}

// CreatePending prices the item, opens a gateway order and records a
// pending purchase. Creation is serialized per user by locking the user
// row inside the transaction: the duplicate check alone cannot take a
// lock when no live purchase exists yet, so two concurrent buys would
// otherwise both pass it.
func (s *PurchaseService) CreatePending(ctx context.Context, userID uint, itemType string, itemID uint, couponCode string) (*PendingCheckout, error) {
	quote, err := s.pricingService.QuoteStrict(itemType, itemID, couponCode, time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Fast-path rejection before touching the gateway
	if existing, err := s.purchaseRepo.FindLiveForItem(userID, itemType, itemID, now); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.Status == constants.PurchaseStatusCompleted {
			return nil, ErrAlreadyOwned
		}
		return nil, ErrPaymentPending
	}

	amountPaise := quote.FinalPrice.Paise()
	if amountPaise == 0 {
		return s.createFreePurchase(userID, quote, now)
	}

	receipt := generateReceiptNo()
	gwOrder, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderInput{
		Amount:   amountPaise,
		Currency: constants.SiteCurrencyDefault,
		Receipt:  receipt,
		Notes: map[string]string{
			"user_id":   fmt.Sprintf("%d", userID),
			"item_type": itemType,
			"item_id":   fmt.Sprintf("%d", itemID),
		},
	})
	if err != nil {
		logger.Errorw("purchase_gateway_order_failed",
			"user_id", userID,
			"item_type", itemType,
			"item_id", itemID,
			"error", err,
		)
		return nil, ErrGatewayUnavailable
	}

	expiresAt := now.Add(time.Duration(s.resolveExpireMinutes()) * time.Minute)
	purchase := buildPendingPurchase(userID, quote, gwOrder.ID, now, &expiresAt)
	items := buildPurchaseItems(quote)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.lockBuyer(tx, userID); err != nil {
			return err
		}
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		existing, err := purchaseRepo.FindLiveForItemForUpdate(userID, itemType, itemID, now)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status == constants.PurchaseStatusCompleted {
				return ErrAlreadyOwned
			}
			return ErrPaymentPending
		}
		return purchaseRepo.Create(purchase, items)
	})
	if err != nil {
		return nil, err
	}
	purchase.Items = items

	if s.queueClient != nil {
		if err := s.queueClient.EnqueuePurchaseTimeoutCancel(queue.PurchaseTimeoutCancelPayload{
			PurchaseID: purchase.ID,
		}, time.Until(expiresAt)); err != nil {
			// The pending row still self-expires through expires_at, so a
			// failed enqueue is logged rather than fatal.
			logger.Errorw("purchase_enqueue_timeout_cancel_failed",
				"purchase_id", purchase.ID,
				"order_id", purchase.OrderID,
				"error", err,
			)
		}
	}

	return &PendingCheckout{
		Purchase:        purchase,
		RazorpayKeyID:   s.gateway.KeyID(),
		RazorpayOrderID: gwOrder.ID,
		AmountPaise:     amountPaise,
		Currency:        purchase.Currency,
	}, nil
}

// createFreePurchase completes a zero-price purchase immediately, skipping
// the gateway entirely. The coupon redemption still counts against the cap.
func (s *PurchaseService) createFreePurchase(userID uint, quote *QuoteResult, now time.Time) (*PendingCheckout, error) {
	purchase := buildPendingPurchase(userID, quote, generateReceiptNo(), now, nil)
	purchase.Status = constants.PurchaseStatusCompleted
	purchase.PurchaseDate = &now
	purchase.ExpiryDate = entitlementExpiry(now, quote.ValidityMonths)
	items := buildPurchaseItems(quote)

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.lockBuyer(tx, userID); err != nil {
			return err
		}
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		existing, err := purchaseRepo.FindLiveForItemForUpdate(userID, quote.ItemType, quote.ItemID, now)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status == constants.PurchaseStatusCompleted {
				return ErrAlreadyOwned
			}
			return ErrPaymentPending
		}
		if err := purchaseRepo.Create(purchase, items); err != nil {
			return err
		}
		if quote.appliedCoupon != nil {
			if err := s.redeemCoupon(tx, quote.appliedCoupon, purchase); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	purchase.Items = items

	return &PendingCheckout{
		Purchase:  purchase,
		Currency:  purchase.Currency,
		Completed: true,
	}, nil
}

// VerifyAndComplete checks the gateway signature for a payment and marks
// the purchase completed. Safe to call repeatedly for the same order: a
// purchase that already completed is returned unchanged.
func (s *PurchaseService) VerifyAndComplete(orderID, paymentID, signature string) (*models.Purchase, error) {
	if err := s.gateway.VerifyPaymentSignature(orderID, paymentID, signature); err != nil {
		logger.Warnw("purchase_signature_mismatch",
			"order_id", orderID,
			"payment_id", paymentID,
		)
		return nil, ErrInvalidSignature
	}

	var result *models.Purchase
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		purchase, err := purchaseRepo.GetByOrderIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return ErrPurchaseNotFound
		}
		if purchase.Status == constants.PurchaseStatusCompleted {
			result = purchase
			return nil
		}
		if !isTransitionAllowed(purchase.Status, constants.PurchaseStatusCompleted) {
			return ErrInvalidStatus
		}
		if purchase.Status == constants.PurchaseStatusCancelled {
			logger.Warnw("purchase_completed_after_cancel",
				"purchase_id", purchase.ID,
				"order_id", orderID,
			)
		}

		now := time.Now()
		expiry := s.entitlementExpiryForPurchase(purchase, now)
		updates := map[string]interface{}{
			"payment_id":     paymentID,
			"purchase_date":  now,
			"failure_reason": "",
			"payment_details": models.JSON{
				"razorpay_order_id":   orderID,
				"razorpay_payment_id": paymentID,
			},
		}
		if expiry != nil {
			updates["expiry_date"] = *expiry
		}
		if err := purchaseRepo.UpdateStatus(purchase.ID, constants.PurchaseStatusCompleted, updates); err != nil {
			return err
		}

		if purchase.CouponCode != "" {
			coupon, err := s.couponRepo.WithTx(tx).GetByCode(purchase.CouponCode)
			if err != nil {
				return err
			}
			if coupon != nil {
				if err := s.redeemCoupon(tx, coupon, purchase); err != nil {
					return err
				}
			}
		}

		purchase.Status = constants.PurchaseStatusCompleted
		purchase.PaymentID = paymentID
		purchase.PurchaseDate = &now
		purchase.ExpiryDate = expiry
		result = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockBuyer takes a row lock on the buyer inside the transaction. The
// user row always exists, so concurrent purchase creation for the same
// user queues here even when no live purchase row is there to lock yet.
func (s *PurchaseService) lockBuyer(tx *gorm.DB, userID uint) error {
	user, err := s.userRepo.WithTx(tx).GetByIDForUpdate(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return nil
}

// redeemCoupon records the usage and counts it against the cap. Losing the
// cap race does not void a captured payment; the overshoot is logged for
// reconciliation instead.
func (s *PurchaseService) redeemCoupon(tx *gorm.DB, coupon *models.Coupon, purchase *models.Purchase) error {
	usage := &models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         purchase.UserID,
		PurchaseID:     purchase.ID,
		DiscountAmount: purchase.DiscountAmount,
	}
	if err := s.couponUsageRepo.WithTx(tx).Create(usage); err != nil {
		return err
	}
	if err := s.couponRepo.WithTx(tx).IncrementUsedCount(coupon.ID); err != nil {
		if errors.Is(err, repository.ErrUsageCapReached) {
			logger.Warnw("coupon_cap_exceeded_on_completion",
				"coupon_id", coupon.ID,
				"coupon_code", coupon.Code,
				"purchase_id", purchase.ID,
			)
			return nil
		}
		return err
	}
	return nil
}

func (s *PurchaseService) entitlementExpiryForPurchase(purchase *models.Purchase, completedAt time.Time) *time.Time {
	if len(purchase.Items) == 0 {
		return nil
	}
	item, err := s.pricingService.GetItem(purchase.Items[0].ItemType, purchase.Items[0].ItemID)
	if err != nil || item == nil {
		logger.Warnw("purchase_validity_lookup_failed",
			"purchase_id", purchase.ID,
			"item_type", purchase.Items[0].ItemType,
			"item_id", purchase.Items[0].ItemID,
		)
		return nil
	}
	return entitlementExpiry(completedAt, item.ValidityMonths)
}

func entitlementExpiry(from time.Time, validityMonths int) *time.Time {
	if validityMonths <= 0 {
		return nil
	}
	expiry := from.AddDate(0, validityMonths, 0)
	return &expiry
}

// MarkFailed records a terminal payment failure. Coupon usage is never
// counted for failed purchases.
func (s *PurchaseService) MarkFailed(orderID, reason string) (*models.Purchase, error) {
	return s.transition(orderID, constants.PurchaseStatusFailed, reason)
}

// CancelExpired cancels a purchase whose payment window lapsed while it
// was still pending. Invoked by the timeout worker.
func (s *PurchaseService) CancelExpired(purchaseID uint) error {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return nil
	}
	if purchase.Status != constants.PurchaseStatusPending {
		return nil
	}
	if purchase.ExpiresAt != nil && purchase.ExpiresAt.After(time.Now()) {
		return nil
	}
	_, err = s.transition(purchase.OrderID, constants.PurchaseStatusCancelled, "payment window expired")
	return err
}

// SweepExpiredPending cancels a batch of lapsed pending purchases. Used as
// a safety net behind the per-purchase timeout tasks.
func (s *PurchaseService) SweepExpiredPending(now time.Time, limit int) (int, error) {
	expired, err := s.purchaseRepo.ListExpiredPending(now, limit)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for i := range expired {
		if _, err := s.transition(expired[i].OrderID, constants.PurchaseStatusCancelled, "payment window expired"); err != nil {
			logger.Errorw("purchase_sweep_cancel_failed",
				"purchase_id", expired[i].ID,
				"order_id", expired[i].OrderID,
				"error", err,
			)
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

func (s *PurchaseService) transition(orderID, target, reason string) (*models.Purchase, error) {
	var result *models.Purchase
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		purchase, err := purchaseRepo.GetByOrderIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return ErrPurchaseNotFound
		}
		if purchase.Status == target {
			result = purchase
			return nil
		}
		if !isTransitionAllowed(purchase.Status, target) {
			return ErrInvalidStatus
		}
		updates := map[string]interface{}{}
		if reason != "" {
			updates["failure_reason"] = reason
		}
		if err := purchaseRepo.UpdateStatus(purchase.ID, target, updates); err != nil {
			return err
		}
		purchase.Status = target
		purchase.FailureReason = reason
		result = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func buildPendingPurchase(userID uint, quote *QuoteResult, orderID string, now time.Time, expiresAt *time.Time) *models.Purchase {
	purchase := &models.Purchase{
		UserID:         userID,
		OrderID:        orderID,
		Status:         constants.PurchaseStatusPending,
		Currency:       constants.SiteCurrencyDefault,
		OriginalAmount: quote.OriginalPrice,
		DiscountAmount: models.NewMoneyFromDecimal(quote.ItemDiscount.Decimal.Add(quote.CouponDiscount.Decimal)),
		Amount:         quote.FinalPrice,
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if quote.Coupon != nil {
		purchase.CouponCode = quote.Coupon.Code
		purchase.CouponSnapshot = models.JSON{
			"code":           quote.Coupon.Code,
			"discount_type":  quote.Coupon.DiscountType,
			"discount_value": quote.Coupon.DiscountValue.String(),
			"max_discount":   quote.Coupon.MaxDiscount.String(),
			"discount":       quote.CouponDiscount.String(),
		}
	}
	return purchase
}

func buildPurchaseItems(quote *QuoteResult) []models.PurchaseItem {
	return []models.PurchaseItem{
		{
			ItemType: quote.ItemType,
			ItemID:   quote.ItemID,
			Title:    quote.Title,
			Price:    quote.FinalPrice,
			Quantity: 1,
		},
	}
}

func generateReceiptNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("BB%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
