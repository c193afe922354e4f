package admin

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicationRequest carries create/update fields for a publication
type PublicationRequest struct {
	Title          string          `json:"title" binding:"required"`
	Author         string          `json:"author"`
	Description    string          `json:"description"`
	CoverURL       string          `json:"cover_url"`
	CategoryIDs    []uint          `json:"category_ids"`
	ValidityMonths int             `json:"validity_months"`
	BasePrice      float64         `json:"base_price"`
	Discount       DiscountRequest `json:"discount"`
	IsActive       *bool           `json:"is_active"`
}

func (r PublicationRequest) toInput() (service.PublicationInput, error) {
	discount, err := r.Discount.toInput()
	if err != nil {
		return service.PublicationInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.PublicationInput{
		Title:          r.Title,
		Author:         r.Author,
		Description:    r.Description,
		CoverURL:       r.CoverURL,
		CategoryIDs:    r.CategoryIDs,
		ValidityMonths: r.ValidityMonths,
		BasePrice:      moneyFromRequest(r.BasePrice),
		Discount:       discount,
		IsActive:       active,
	}, nil
}

// ListAdminPublications returns publications including inactive ones
func (h *Handler) ListAdminPublications(c *gin.Context) {
	filter := adminCatalogFilterFromQuery(c)
	publications, total, err := h.PublicationService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list publications", err)
		return
	}
	response.SuccessWithPage(c, publications, adminPaginationFor(filter, total))
}

// GetAdminPublication returns one publication
func (h *Handler) GetAdminPublication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	publication, err := h.PublicationService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "publication not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load publication", err)
		return
	}
	response.Success(c, publication)
}

// CreatePublication creates a publication
func (h *Handler) CreatePublication(c *gin.Context) {
	var req PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	publication, err := h.PublicationService.Create(input)
	if err != nil {
		respondCatalogWriteError(c, err, "publication")
		return
	}
	response.Success(c, publication)
}

// UpdatePublication updates a publication
func (h *Handler) UpdatePublication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	publication, err := h.PublicationService.Update(id, input)
	if err != nil {
		respondCatalogWriteError(c, err, "publication")
		return
	}
	response.Success(c, publication)
}

// DeletePublication removes a publication
func (h *Handler) DeletePublication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.PublicationService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "publication not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete publication", err)
		return
	}
	response.SuccessWithMsg(c, "publication deleted", nil)
}
