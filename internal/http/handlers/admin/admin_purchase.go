package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAdminPurchases returns the purchase ledger
func (h *Handler) ListAdminPurchases(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	itemID, _ := strconv.ParseUint(c.Query("item_id"), 10, 64)

	filter := repository.PurchaseListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		Status:   c.Query("status"),
		ItemType: c.Query("item_type"),
		ItemID:   uint(itemID),
		OrderID:  c.Query("order_id"),
	}
	if from, err := time.Parse("2006-01-02", c.Query("created_from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("created_to")); err == nil {
		filter.CreatedTo = &to
	}

	purchases, total, err := h.PurchaseService.ListAdmin(filter)
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

// GetAdminPurchase returns one purchase
func (h *Handler) GetAdminPurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	purchase, err := h.PurchaseService.GetAdmin(id)
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

// MarkPurchaseFailedRequest carries the failure reason
type MarkPurchaseFailedRequest struct {
	Reason string `json:"reason"`
}

// MarkPurchaseFailed flags a pending purchase as failed
func (h *Handler) MarkPurchaseFailed(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req MarkPurchaseFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	existing, err := h.PurchaseService.GetAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrPurchaseNotFound) {
			respondError(c, response.CodeNotFound, "purchase not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load purchase", err)
		return
	}

	purchase, err := h.PurchaseService.MarkFailed(existing.OrderID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseNotFound):
			respondError(c, response.CodeNotFound, "purchase not found", nil)
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, response.CodeBadRequest, "purchase cannot be failed in its current state", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update purchase", err)
		}
		return
	}

	requestLog(c).Infow("admin_marked_purchase_failed",
		"purchase_id", purchase.ID,
		"order_id", purchase.OrderID,
		"reason", req.Reason,
	)
	response.Success(c, purchase)
}
