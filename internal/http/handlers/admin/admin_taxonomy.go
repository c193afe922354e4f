package admin

import (
	"errors"
	"strconv"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

func respondTaxonomyWriteError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, resource+" not found", nil)
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "invalid "+resource+" payload", nil)
	default:
		respondError(c, response.CodeInternal, "failed to save "+resource, err)
	}
}

// CategoryRequest carries create/update fields for a category
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Thumbnail string `json:"thumbnail"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.CategoryInput{
		Name:      r.Name,
		Thumbnail: r.Thumbnail,
		SortOrder: r.SortOrder,
		IsActive:  active,
	}
}

// ListAdminCategories returns all categories
func (h *Handler) ListAdminCategories(c *gin.Context) {
	categories, err := h.TaxonomyService.ListCategories(false)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list categories", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory creates a category
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.TaxonomyService.CreateCategory(req.toInput())
	if err != nil {
		respondTaxonomyWriteError(c, err, "category")
		return
	}
	response.Success(c, category)
}

// UpdateCategory updates a category
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.TaxonomyService.UpdateCategory(id, req.toInput())
	if err != nil {
		respondTaxonomyWriteError(c, err, "category")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteCategory(id); err != nil {
		respondTaxonomyWriteError(c, err, "category")
		return
	}
	response.SuccessWithMsg(c, "category deleted", nil)
}

// SubCategoryRequest carries create/update fields for a sub-category
type SubCategoryRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Thumbnail  string `json:"thumbnail"`
	SortOrder  int    `json:"sort_order"`
	IsActive   *bool  `json:"is_active"`
}

func (r SubCategoryRequest) toInput() service.SubCategoryInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.SubCategoryInput{
		CategoryID: r.CategoryID,
		Name:       r.Name,
		Thumbnail:  r.Thumbnail,
		SortOrder:  r.SortOrder,
		IsActive:   active,
	}
}

// ListAdminSubCategories returns sub-categories, optionally scoped to
// one category
func (h *Handler) ListAdminSubCategories(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	subCategories, err := h.TaxonomyService.ListSubCategories(uint(categoryID), false)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list sub-categories", err)
		return
	}
	response.Success(c, subCategories)
}

// CreateSubCategory creates a sub-category
func (h *Handler) CreateSubCategory(c *gin.Context) {
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	subCategory, err := h.TaxonomyService.CreateSubCategory(req.toInput())
	if err != nil {
		respondTaxonomyWriteError(c, err, "sub-category")
		return
	}
	response.Success(c, subCategory)
}

// UpdateSubCategory updates a sub-category
func (h *Handler) UpdateSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	subCategory, err := h.TaxonomyService.UpdateSubCategory(id, req.toInput())
	if err != nil {
		respondTaxonomyWriteError(c, err, "sub-category")
		return
	}
	response.Success(c, subCategory)
}

// DeleteSubCategory removes a sub-category
func (h *Handler) DeleteSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteSubCategory(id); err != nil {
		respondTaxonomyWriteError(c, err, "sub-category")
		return
	}
	response.SuccessWithMsg(c, "sub-category deleted", nil)
}

// LanguageRequest carries create/update fields for a language
type LanguageRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code"`
	IsActive *bool  `json:"is_active"`
}

func (r LanguageRequest) toInput() service.LanguageInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.LanguageInput{
		Name:     r.Name,
		Code:     r.Code,
		IsActive: active,
	}
}

// ListAdminLanguages returns all languages
func (h *Handler) ListAdminLanguages(c *gin.Context) {
	languages, err := h.TaxonomyService.ListLanguages(false)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list languages", err)
		return
	}
	response.Success(c, languages)
}

// CreateLanguage creates a language
func (h *Handler) CreateLanguage(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	language, err := h.TaxonomyService.CreateLanguage(req.toInput())
	if err != nil {
		respondTaxonomyWriteError(c, err, "language")
		return
	}
	response.Success(c, language)
}

// UpdateLanguage updates a language
func (h *Handler) UpdateLanguage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	language, err := h.TaxonomyService.UpdateLanguage(id, req.toInput())
	if err != nil {
		respondTaxonomyWriteError(c, err, "language")
		return
	}
	response.Success(c, language)
}

// DeleteLanguage removes a language
func (h *Handler) DeleteLanguage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteLanguage(id); err != nil {
		respondTaxonomyWriteError(c, err, "language")
		return
	}
	response.SuccessWithMsg(c, "language deleted", nil)
}
