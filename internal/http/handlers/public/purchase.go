package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePurchaseRequest carries the checkout payload
type CreatePurchaseRequest struct {
	ItemType   string `json:"item_type" binding:"required"`
	ItemID     uint   `json:"item_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// CreatePurchase prices the item, opens a gateway order and records a
// pending purchase. Zero-priced checkouts complete immediately.
func (h *Handler) CreatePurchase(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	checkout, err := h.PurchaseService.CreatePending(c.Request.Context(), uid, req.ItemType, req.ItemID, req.CouponCode)
	if err != nil {
		respondPurchaseCreateError(c, err)
		return
	}

	response.Success(c, checkout)
}

// VerifyPaymentRequest carries the gateway callback payload the client
// receives after a successful payment
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment checks the gateway signature and completes the purchase
func (h *Handler) VerifyPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	purchase, err := h.PurchaseService.VerifyAndComplete(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		respondPurchaseVerifyError(c, err)
		return
	}
	if purchase.UserID != uid {
		requestLog(c).Warnw("payment_verified_for_other_user",
			"purchase_id", purchase.ID,
			"purchase_user_id", purchase.UserID,
			"caller_user_id", uid,
		)
		respondError(c, response.CodeNotFound, "purchase not found", nil)
		return
	}

	response.Success(c, purchase)
}

// ListPurchases returns the user's purchase history
func (h *Handler) ListPurchases(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PurchaseListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		ItemType: c.Query("item_type"),
	}

	purchases, total, err := h.PurchaseService.ListForUser(uid, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list purchases", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, purchases, pagination)
}

// GetPurchase returns one purchase owned by the user
func (h *Handler) GetPurchase(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	purchase, err := h.PurchaseService.GetForUser(id, uid)
	if err != nil {
		if errors.Is(err, service.ErrPurchaseNotFound) {
			respondError(c, response.CodeNotFound, "purchase not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load purchase", err)
		return
	}

	response.Success(c, purchase)
}

// CheckEntitlement reports whether the user currently owns an item
func (h *Handler) CheckEntitlement(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemType := c.Query("item_type")
	itemID, _ := strconv.ParseUint(c.Query("item_id"), 10, 64)
	if itemType == "" || itemID == 0 {
		respondError(c, response.CodeBadRequest, "item_type and item_id are required", nil)
		return
	}

	hasAccess, err := h.EntitlementService.HasAccess(uid, itemType, uint(itemID), time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to check entitlement", err)
		return
	}

	response.Success(c, gin.H{"has_access": hasAccess})
}
