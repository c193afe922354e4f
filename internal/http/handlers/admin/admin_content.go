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

// CurrentAffairRequest carries create/update fields for an article
type CurrentAffairRequest struct {
	Kind        string                 `json:"kind" binding:"required"`
	AffairDate  string                 `json:"affair_date" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	FullContent string                 `json:"full_content"`
	Thumbnail   string                 `json:"thumbnail"`
	CategoryIDs []uint                 `json:"category_ids"`
	LanguageIDs []uint                 `json:"language_ids"`
	Payload     map[string]interface{} `json:"payload"`
	IsActive    *bool                  `json:"is_active"`
}

func (r CurrentAffairRequest) toInput() (service.CurrentAffairInput, error) {
	affairDate, err := time.Parse("2006-01-02", r.AffairDate)
	if err != nil {
		return service.CurrentAffairInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.CurrentAffairInput{
		Kind:        r.Kind,
		AffairDate:  affairDate,
		Title:       r.Title,
		Description: r.Description,
		FullContent: r.FullContent,
		Thumbnail:   r.Thumbnail,
		CategoryIDs: r.CategoryIDs,
		LanguageIDs: r.LanguageIDs,
		Payload:     r.Payload,
		IsActive:    active,
	}, nil
}

// ListAdminCurrentAffairs returns articles including inactive ones
func (h *Handler) ListAdminCurrentAffairs(c *gin.Context) {
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

// CreateCurrentAffair creates an article
func (h *Handler) CreateCurrentAffair(c *gin.Context) {
	var req CurrentAffairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid affair_date, expected YYYY-MM-DD", err)
		return
	}

	affair, err := h.CurrentAffairService.Create(input)
	if err != nil {
		respondTaxonomyWriteError(c, err, "article")
		return
	}
	response.Success(c, affair)
}

// UpdateCurrentAffair updates an article
func (h *Handler) UpdateCurrentAffair(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CurrentAffairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid affair_date, expected YYYY-MM-DD", err)
		return
	}

	affair, err := h.CurrentAffairService.Update(id, input)
	if err != nil {
		respondTaxonomyWriteError(c, err, "article")
		return
	}
	response.Success(c, affair)
}

// DeleteCurrentAffair removes an article
func (h *Handler) DeleteCurrentAffair(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CurrentAffairService.Delete(id); err != nil {
		respondTaxonomyWriteError(c, err, "article")
		return
	}
	response.SuccessWithMsg(c, "article deleted", nil)
}

// DailyQuizRequest carries create/update fields for a daily quiz
type DailyQuizRequest struct {
	QuizDate string `json:"quiz_date" binding:"required"`
	Title    string `json:"title" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (r DailyQuizRequest) toInput() (service.DailyQuizInput, error) {
	quizDate, err := time.Parse("2006-01-02", r.QuizDate)
	if err != nil {
		return service.DailyQuizInput{}, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.DailyQuizInput{
		QuizDate: quizDate,
		Title:    r.Title,
		IsActive: active,
	}, nil
}

// ListAdminDailyQuizzes returns quizzes including inactive ones
func (h *Handler) ListAdminDailyQuizzes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	quizzes, total, err := h.DailyQuizService.List(page, pageSize, false)
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

// GetAdminDailyQuiz returns one quiz with questions
func (h *Handler) GetAdminDailyQuiz(c *gin.Context) {
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
	response.Success(c, quiz)
}

// CreateDailyQuiz creates a quiz
func (h *Handler) CreateDailyQuiz(c *gin.Context) {
	var req DailyQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid quiz_date, expected YYYY-MM-DD", err)
		return
	}

	quiz, err := h.DailyQuizService.Create(input)
	if err != nil {
		respondTaxonomyWriteError(c, err, "quiz")
		return
	}
	response.Success(c, quiz)
}

// UpdateDailyQuiz updates a quiz
func (h *Handler) UpdateDailyQuiz(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req DailyQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid quiz_date, expected YYYY-MM-DD", err)
		return
	}

	quiz, err := h.DailyQuizService.Update(id, input)
	if err != nil {
		respondTaxonomyWriteError(c, err, "quiz")
		return
	}
	response.Success(c, quiz)
}

// DeleteDailyQuiz removes a quiz
func (h *Handler) DeleteDailyQuiz(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.DailyQuizService.Delete(id); err != nil {
		respondTaxonomyWriteError(c, err, "quiz")
		return
	}
	response.SuccessWithMsg(c, "quiz deleted", nil)
}

// QuizQuestionRequest carries fields for a quiz question
type QuizQuestionRequest struct {
	Number        int      `json:"number"`
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
}

// AddQuizQuestion appends a question to a quiz
func (h *Handler) AddQuizQuestion(c *gin.Context) {
	quizID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req QuizQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	question, err := h.DailyQuizService.AddQuestion(quizID, service.QuizQuestionInput{
		Number:        req.Number,
		Text:          req.Text,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Explanation:   req.Explanation,
	})
	if err != nil {
		respondTaxonomyWriteError(c, err, "question")
		return
	}
	response.Success(c, question)
}

// DeleteQuizQuestion removes a question from a quiz
func (h *Handler) DeleteQuizQuestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.DailyQuizService.DeleteQuestion(id); err != nil {
		respondTaxonomyWriteError(c, err, "question")
		return
	}
	response.SuccessWithMsg(c, "question deleted", nil)
}
