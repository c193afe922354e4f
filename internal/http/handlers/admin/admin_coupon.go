package admin

import (
	"errors"
	"strconv"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponApplicabilityRequest names one item or class of items
type CouponApplicabilityRequest struct {
	ItemType string `json:"item_type" binding:"required"`
	ItemID   uint   `json:"item_id"`
}

// CouponRequest carries create/update fields for a coupon
type CouponRequest struct {
	Code              string                       `json:"code" binding:"required"`
	DiscountType      string                       `json:"discount_type" binding:"required"`
	DiscountValue     float64                      `json:"discount_value" binding:"required"`
	MaxDiscount       float64                      `json:"max_discount"`
	MinPurchaseAmount float64                      `json:"min_purchase_amount"`
	MaxUses           int                          `json:"max_uses"`
	ValidFrom         string                       `json:"valid_from"`
	ValidUntil        string                       `json:"valid_until" binding:"required"`
	ApplicableItems   []CouponApplicabilityRequest `json:"applicable_items" binding:"required"`
	IsActive          *bool                        `json:"is_active"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	validFrom, err := parseTimeNullable(r.ValidFrom)
	if err != nil {
		return service.CouponInput{}, err
	}
	validUntil, err := parseTimeNullable(r.ValidUntil)
	if err != nil {
		return service.CouponInput{}, err
	}

	applicable := make([]models.CouponApplicability, 0, len(r.ApplicableItems))
	for _, item := range r.ApplicableItems {
		applicable = append(applicable, models.CouponApplicability{
			ItemType: item.ItemType,
			ItemID:   item.ItemID,
		})
	}

	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	input := service.CouponInput{
		Code:              r.Code,
		DiscountType:      r.DiscountType,
		DiscountValue:     moneyFromRequest(r.DiscountValue),
		MaxDiscount:       moneyFromRequest(r.MaxDiscount),
		MinPurchaseAmount: moneyFromRequest(r.MinPurchaseAmount),
		MaxUses:           r.MaxUses,
		ApplicableItems:   applicable,
		IsActive:          active,
	}
	if validFrom != nil {
		input.ValidFrom = *validFrom
	}
	if validUntil != nil {
		input.ValidUntil = *validUntil
	}
	return input, nil
}

func respondCouponWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "coupon not found", nil)
	case errors.Is(err, service.ErrCodeExists):
		respondError(c, response.CodeBadRequest, "coupon code already exists", nil)
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "invalid coupon payload", nil)
	default:
		respondError(c, response.CodeInternal, "failed to save coupon", err)
	}
}

// ListCoupons returns coupons
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     c.Query("code"),
	}
	if isActive := c.Query("is_active"); isActive != "" {
		parsed := isActive == "true" || isActive == "1"
		filter.IsActive = &parsed
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list coupons", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, coupons, pagination)
}

// GetCoupon returns one coupon
func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load coupon", err)
		return
	}
	response.Success(c, coupon)
}

// CreateCoupon creates a coupon
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid coupon validity window", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		respondCouponWriteError(c, err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon updates a coupon. The code cannot be changed.
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid coupon validity window", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(id, input)
	if err != nil {
		respondCouponWriteError(c, err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon removes a coupon
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete coupon", err)
		return
	}
	response.SuccessWithMsg(c, "coupon deleted", nil)
}

// ListCouponUsages returns redemption records for a coupon
func (h *Handler) ListCouponUsages(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	usages, total, err := h.CouponAdminService.ListUsages(repository.CouponUsageListFilter{
		Page:     page,
		PageSize: pageSize,
		CouponID: couponID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list coupon usages", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, usages, pagination)
}
