package admin

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

// TestSeriesRequest carries create/update fields for a test series
type TestSeriesRequest struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	Thumbnail      string          `json:"thumbnail"`
	CategoryIDs    []uint          `json:"category_ids"`
	SubCategoryIDs []uint          `json:"sub_category_ids"`
	LanguageIDs    []uint          `json:"language_ids"`
	MaxTests       int             `json:"max_tests"`
	ValidityMonths int             `json:"validity_months"`
	BasePrice      float64         `json:"base_price"`
	Discount       DiscountRequest `json:"discount"`
	IsActive       *bool           `json:"is_active"`
	SortOrder      int             `json:"sort_order"`
}

func (r TestSeriesRequest) toInput() (service.TestSeriesInput, error) {
	discount, err := r.Discount.toInput()
	if err != nil {
		return service.TestSeriesInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.TestSeriesInput{
		Name:           r.Name,
		Description:    r.Description,
		Thumbnail:      r.Thumbnail,
		CategoryIDs:    r.CategoryIDs,
		SubCategoryIDs: r.SubCategoryIDs,
		LanguageIDs:    r.LanguageIDs,
		MaxTests:       r.MaxTests,
		ValidityMonths: r.ValidityMonths,
		BasePrice:      moneyFromRequest(r.BasePrice),
		Discount:       discount,
		IsActive:       active,
		SortOrder:      r.SortOrder,
	}, nil
}

// ListAdminTestSeries returns test series including inactive ones
func (h *Handler) ListAdminTestSeries(c *gin.Context) {
	filter := adminCatalogFilterFromQuery(c)
	series, total, err := h.TestSeriesService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list test series", err)
		return
	}
	response.SuccessWithPage(c, series, adminPaginationFor(filter, total))
}

// GetAdminTestSeries returns one series with its tests
func (h *Handler) GetAdminTestSeries(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	series, err := h.TestSeriesService.GetWithTests(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "test series not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load test series", err)
		return
	}
	response.Success(c, series)
}

// CreateTestSeries creates a series
func (h *Handler) CreateTestSeries(c *gin.Context) {
	var req TestSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	series, err := h.TestSeriesService.Create(input)
	if err != nil {
		respondCatalogWriteError(c, err, "test series")
		return
	}
	response.Success(c, series)
}

// UpdateTestSeries updates a series
func (h *Handler) UpdateTestSeries(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TestSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid discount valid_until", err)
		return
	}

	series, err := h.TestSeriesService.Update(id, input)
	if err != nil {
		respondCatalogWriteError(c, err, "test series")
		return
	}
	response.Success(c, series)
}

// DeleteTestSeries removes a series
func (h *Handler) DeleteTestSeries(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TestSeriesService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "test series not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete test series", err)
		return
	}
	response.SuccessWithMsg(c, "test series deleted", nil)
}

// TestRequest carries create/update fields for a test
type TestRequest struct {
	Name             string  `json:"name" binding:"required"`
	DurationMinutes  int     `json:"duration_minutes"`
	TotalMarks       int     `json:"total_marks"`
	PositiveMarks    float64 `json:"positive_marks"`
	NegativeMarks    float64 `json:"negative_marks"`
	StartsAt         string  `json:"starts_at"`
	EndsAt           string  `json:"ends_at"`
	Instructions     string  `json:"instructions"`
	SolutionVideoURL string  `json:"solution_video_url"`
	IsFree           bool    `json:"is_free"`
	SortOrder        int     `json:"sort_order"`
}

func (r TestRequest) toInput() (service.TestInput, error) {
	startsAt, err := parseTimeNullable(r.StartsAt)
	if err != nil {
		return service.TestInput{}, err
	}
	endsAt, err := parseTimeNullable(r.EndsAt)
	if err != nil {
		return service.TestInput{}, err
	}
	return service.TestInput{
		Name:             r.Name,
		DurationMinutes:  r.DurationMinutes,
		TotalMarks:       r.TotalMarks,
		PositiveMarks:    r.PositiveMarks,
		NegativeMarks:    r.NegativeMarks,
		StartsAt:         startsAt,
		EndsAt:           endsAt,
		Instructions:     r.Instructions,
		SolutionVideoURL: r.SolutionVideoURL,
		IsFree:           r.IsFree,
		SortOrder:        r.SortOrder,
	}, nil
}

// ListAdminTests returns the tests of a series
func (h *Handler) ListAdminTests(c *gin.Context) {
	seriesID, ok := parseIDParam(c)
	if !ok {
		return
	}
	tests, err := h.TestSeriesService.ListTests(seriesID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "test series not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to list tests", err)
		return
	}
	response.Success(c, tests)
}

// CreateTest adds a test to a series
func (h *Handler) CreateTest(c *gin.Context) {
	seriesID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid test schedule", err)
		return
	}

	test, err := h.TestSeriesService.CreateTest(seriesID, input)
	if err != nil {
		respondCatalogWriteError(c, err, "test")
		return
	}
	response.Success(c, test)
}

// UpdateTest updates a test
func (h *Handler) UpdateTest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid test schedule", err)
		return
	}

	test, err := h.TestSeriesService.UpdateTest(id, input)
	if err != nil {
		respondCatalogWriteError(c, err, "test")
		return
	}
	response.Success(c, test)
}

// DeleteTest removes a test
func (h *Handler) DeleteTest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TestSeriesService.DeleteTest(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "test not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete test", err)
		return
	}
	response.SuccessWithMsg(c, "test deleted", nil)
}

// TestSectionRequest carries create/update fields for a section
type TestSectionRequest struct {
	Title     string `json:"title" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateTestSection adds a section to a test
func (h *Handler) CreateTestSection(c *gin.Context) {
	testID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TestSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	section, err := h.TestSeriesService.CreateSection(testID, service.TestSectionInput{
		Title:     req.Title,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCatalogWriteError(c, err, "section")
		return
	}
	response.Success(c, section)
}

// UpdateTestSection updates a section
func (h *Handler) UpdateTestSection(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TestSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	section, err := h.TestSeriesService.UpdateSection(id, service.TestSectionInput{
		Title:     req.Title,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCatalogWriteError(c, err, "section")
		return
	}
	response.Success(c, section)
}

// DeleteTestSection removes a section
func (h *Handler) DeleteTestSection(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TestSeriesService.DeleteSection(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "section not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete section", err)
		return
	}
	response.SuccessWithMsg(c, "section deleted", nil)
}

// TestQuestionRequest carries create/update fields for a question
type TestQuestionRequest struct {
	Number        int      `json:"number"`
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
}

func (r TestQuestionRequest) toInput() service.TestQuestionInput {
	return service.TestQuestionInput{
		Number:        r.Number,
		Text:          r.Text,
		Options:       r.Options,
		CorrectOption: r.CorrectOption,
		Explanation:   r.Explanation,
	}
}

// CreateTestQuestion adds a question to a section
func (h *Handler) CreateTestQuestion(c *gin.Context) {
	sectionID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TestQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	question, err := h.TestSeriesService.CreateQuestion(sectionID, req.toInput())
	if err != nil {
		respondCatalogWriteError(c, err, "question")
		return
	}
	response.Success(c, question)
}

// UpdateTestQuestion updates a question
func (h *Handler) UpdateTestQuestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TestQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	question, err := h.TestSeriesService.UpdateQuestion(id, req.toInput())
	if err != nil {
		respondCatalogWriteError(c, err, "question")
		return
	}
	response.Success(c, question)
}

// DeleteTestQuestion removes a question
func (h *Handler) DeleteTestQuestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TestSeriesService.DeleteQuestion(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "question not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete question", err)
		return
	}
	response.SuccessWithMsg(c, "question deleted", nil)
}
