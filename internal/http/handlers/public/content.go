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

// ListCategories returns active categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.TaxonomyService.ListCategories(true)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list categories", err)
		return
	}
	response.Success(c, categories)
}

// ListSubCategories returns active sub-categories, optionally scoped
// to one category
func (h *Handler) ListSubCategories(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	subCategories, err := h.TaxonomyService.ListSubCategories(uint(categoryID), true)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list sub-categories", err)
		return
	}
	response.Success(c, subCategories)
}

// ListLanguages returns active languages
func (h *Handler) ListLanguages(c *gin.Context) {
	languages, err := h.TaxonomyService.ListLanguages(true)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list languages", err)
		return
	}
	response.Success(c, languages)
}

// ListCurrentAffairs returns active current-affairs articles
func (h *Handler) ListCurrentAffairs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	filter := repository.CurrentAffairListFilter{
		Page:       page,
		PageSize:   pageSize,
		Kind:       c.Query("kind"),
		CategoryID: uint(categoryID),
		Search:     c.Query("search"),
		OnlyActive: true,
	}
	if from, err := time.Parse("2006-01-02", c.Query("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("date_to")); err == nil {
		filter.DateTo = &to
	}

	affairs, total, err := h.CurrentAffairService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list current affairs", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, affairs, pagination)
}

// GetCurrentAffair returns one article
func (h *Handler) GetCurrentAffair(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	affair, err := h.CurrentAffairService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "article not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load article", err)
		return
	}
	if !affair.IsActive {
		respondError(c, response.CodeNotFound, "article not found", nil)
		return
	}
	response.Success(c, affair)
}

// ListDailyQuizzes returns active daily quizzes, newest first
func (h *Handler) ListDailyQuizzes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	quizzes, total, err := h.DailyQuizService.List(page, pageSize, true)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list daily quizzes", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, quizzes, pagination)
}

// GetDailyQuiz returns one quiz with its questions
func (h *Handler) GetDailyQuiz(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	quiz, err := h.DailyQuizService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "quiz not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load quiz", err)
		return
	}
	if !quiz.IsActive {
		respondError(c, response.CodeNotFound, "quiz not found", nil)
		return
	}
	response.Success(c, quiz)
}

// GetDailyQuizByDate returns the quiz published on a given day
func (h *Handler) GetDailyQuizByDate(c *gin.Context) {
	raw := c.Param("date")
	var date time.Time
	if raw == "today" {
		date = time.Now()
	} else {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid date, expected YYYY-MM-DD", err)
			return
		}
		date = parsed
	}

	quiz, err := h.DailyQuizService.GetByDate(date)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "no quiz for that date", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load quiz", err)
		return
	}
	if !quiz.IsActive {
		respondError(c, response.CodeNotFound, "no quiz for that date", nil)
		return
	}
	response.Success(c, quiz)
}
