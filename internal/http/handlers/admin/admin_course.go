package admin

import (
	"errors"
	"strconv"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

func adminCatalogFilterFromQuery(c *gin.Context) repository.CatalogListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	subCategoryID, _ := strconv.ParseUint(c.Query("sub_category_id"), 10, 64)
	languageID, _ := strconv.ParseUint(c.Query("language_id"), 10, 64)

	return repository.CatalogListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    uint(categoryID),
		SubCategoryID: uint(subCategoryID),
		LanguageID:    uint(languageID),
		Search:        c.Query("search"),
	}
}

func adminPaginationFor(filter repository.CatalogListFilter, total int64) response.Pagination {
	return response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: (total + int64(filter.PageSize) - 1) / int64(filter.PageSize),
	}
}

func respondCatalogWriteError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, resource+" not found", nil)
	case errors.Is(err, service.ErrDiscountInvalid):
		respondError(c, response.CodeBadRequest, "invalid discount", nil)
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "invalid "+resource+" payload", nil)
	default:
		respondError(c, response.CodeInternal, "failed to save "+resource, err)
	}
}

// CourseRequest carries create/update fields for a course
type CourseRequest struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	Thumbnail      string          `json:"thumbnail"`
	CategoryIDs    []uint          `json:"category_ids"`
	SubCategoryIDs []uint          `json:"sub_category_ids"`
	LanguageIDs    []uint          `json:"language_ids"`
	ValidityMonths int             `json:"validity_months"`
	BasePrice      float64         `json:"base_price"`
	Discount       DiscountRequest `json:"discount"`
	IsActive       *bool           `json:"is_active"`
	SortOrder      int             `json:"sort_order"`
}

func (r CourseRequest) toInput() (service.CourseInput, error) {
	discount, err := r.Discount.toInput()
	if err != nil {
		return service.CourseInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.CourseInput{
		Name:           r.Name,
		Description:    r.Description,
		Thumbnail:      r.Thumbnail,
		CategoryIDs:    r.CategoryIDs,
		SubCategoryIDs: r.SubCategoryIDs,
		LanguageIDs:    r.LanguageIDs,
		ValidityMonths: r.ValidityMonths,
		BasePrice:      moneyFromRequest(r.BasePrice),
		Discount:       discount,
		IsActive:       active,
		SortOrder:      r.SortOrder,
	}, nil
}

// ListAdminCourses returns courses including inactive ones
func (h *Handler) ListAdminCourses(c *gin.Context) {
	filter := adminCatalogFilterFromQuery(c)
	courses, total, err := h.CourseService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list courses", err)
		return
	}
	response.SuccessWithPage(c, courses, adminPaginationFor(filter, total))
}

// GetAdminCourse returns one course
func (h *Handler) GetAdminCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	course, err := h.CourseService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "course not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load course", err)
		return
	}
	response.Success(c, course)
}

// CreateCourse creates a course
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	course, err := h.CourseService.Create(input)
	if err != nil {
		respondCatalogWriteError(c, err, "course")
		return
	}
	response.Success(c, course)
}

// UpdateCourse updates a course
func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	course, err := h.CourseService.Update(id, input)
	if err != nil {
		respondCatalogWriteError(c, err, "course")
		return
	}
	response.Success(c, course)
}

// DeleteCourse removes a course
func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CourseService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "course not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete course", err)
		return
	}
	response.SuccessWithMsg(c, "course deleted", nil)
}
