package admin

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

// EBookRequest carries create/update fields for an e-book
type EBookRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	CoverURL    string          `json:"cover_url"`
	FileURL     string          `json:"file_url"`
	CategoryIDs []uint          `json:"category_ids"`
	LanguageIDs []uint          `json:"language_ids"`
	BasePrice   float64         `json:"base_price"`
	Discount    DiscountRequest `json:"discount"`
	IsFree      bool            `json:"is_free"`
	IsActive    *bool           `json:"is_active"`
}

func (r EBookRequest) toInput() (service.EBookInput, error) {
	discount, err := r.Discount.toInput()
	if err != nil {
		return service.EBookInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.EBookInput{
		Title:       r.Title,
		Description: r.Description,
		CoverURL:    r.CoverURL,
		FileURL:     r.FileURL,
		CategoryIDs: r.CategoryIDs,
		LanguageIDs: r.LanguageIDs,
		BasePrice:   moneyFromRequest(r.BasePrice),
		Discount:    discount,
		IsFree:      r.IsFree,
		IsActive:    active,
	}, nil
}

// ListAdminEBooks returns e-books including inactive ones
func (h *Handler) ListAdminEBooks(c *gin.Context) {
	filter := adminCatalogFilterFromQuery(c)
	ebooks, total, err := h.EBookService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list e-books", err)
		return
	}
	response.SuccessWithPage(c, ebooks, adminPaginationFor(filter, total))
}

// GetAdminEBook returns one e-book
func (h *Handler) GetAdminEBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	ebook, err := h.EBookService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "e-book not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load e-book", err)
		return
	}
	response.Success(c, ebook)
}

// CreateEBook creates an e-book
func (h *Handler) CreateEBook(c *gin.Context) {
	var req EBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	ebook, err := h.EBookService.Create(input)
	if err != nil {
		respondCatalogWriteError(c, err, "e-book")
		return
	}
	response.Success(c, ebook)
}

// UpdateEBook updates an e-book
func (h *Handler) UpdateEBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req EBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	ebook, err := h.EBookService.Update(id, input)
	if err != nil {
		respondCatalogWriteError(c, err, "e-book")
		return
	}
	response.Success(c, ebook)
}

// DeleteEBook removes an e-book
func (h *Handler) DeleteEBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.EBookService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "e-book not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete e-book", err)
		return
	}
	response.SuccessWithMsg(c, "e-book deleted", nil)
}
