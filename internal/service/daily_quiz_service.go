package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/cache"
	"github.com/Deekshith-46/brain-buzz/internal/logger"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// The quiz of the day is the hottest public read, so it is served from
// redis. Writes invalidate the day's key.
const dailyQuizCacheTTL = 10 * time.Minute

func dailyQuizCacheKey(date time.Time) string {
	return fmt.Sprintf("daily_quiz:%s", date.Format("2006-01-02"))
}

// DailyQuizService manages the free daily quizzes
type DailyQuizService struct {
	repo repository.DailyQuizRepository
}

// NewDailyQuizService creates the daily quiz service
func NewDailyQuizService(repo repository.DailyQuizRepository) *DailyQuizService {
	return &DailyQuizService{repo: repo}
}

// DailyQuizInput carries create/update fields for a quiz
type DailyQuizInput struct {
	QuizDate time.Time
	Title    string
	IsActive bool
}

// QuizQuestionInput carries create/update fields for a quiz question
type QuizQuestionInput struct {
	Number        int
	Text          string
	Options       []string
	CorrectOption int
	Explanation   string
}

// List returns quizzes, newest first
func (s *DailyQuizService) List(page, pageSize int, onlyActive bool) ([]models.DailyQuiz, int64, error) {
	return s.repo.List(page, pageSize, onlyActive)
}

// Get returns one quiz with its questions
func (s *DailyQuizService) Get(id uint) (*models.DailyQuiz, error) {
	quiz, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	return quiz, nil
}

// GetByDate returns the quiz published on the given day
func (s *DailyQuizService) GetByDate(date time.Time) (*models.DailyQuiz, error) {
	key := dailyQuizCacheKey(date)
	var cached models.DailyQuiz
	if hit, err := cache.GetJSON(context.Background(), key, &cached); err == nil && hit {
		return &cached, nil
	}

	quiz, err := s.repo.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	if err := cache.SetJSON(context.Background(), key, quiz, dailyQuizCacheTTL); err != nil {
		logger.Warnw("daily_quiz_cache_set_failed", "key", key, "error", err)
	}
	return quiz, nil
}

func (s *DailyQuizService) invalidateQuizCache(dates ...time.Time) {
	for _, date := range dates {
		if err := cache.Del(context.Background(), dailyQuizCacheKey(date)); err != nil {
			logger.Warnw("daily_quiz_cache_del_failed", "date", date.Format("2006-01-02"), "error", err)
		}
	}
}

// Create creates a quiz
func (s *DailyQuizService) Create(input DailyQuizInput) (*models.DailyQuiz, error) {
	if strings.TrimSpace(input.Title) == "" || input.QuizDate.IsZero() {
		return nil, ErrValidation
	}
	quiz := models.DailyQuiz{
		QuizDate: input.QuizDate,
		Title:    strings.TrimSpace(input.Title),
		IsActive: input.IsActive,
	}
	if err := s.repo.Create(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Update updates a quiz
func (s *DailyQuizService) Update(id uint, input DailyQuizInput) (*models.DailyQuiz, error) {
	quiz, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Title) == "" || input.QuizDate.IsZero() {
		return nil, ErrValidation
	}
	previousDate := quiz.QuizDate
	quiz.QuizDate = input.QuizDate
	quiz.Title = strings.TrimSpace(input.Title)
	quiz.IsActive = input.IsActive
	if err := s.repo.Update(quiz); err != nil {
		return nil, err
	}
	s.invalidateQuizCache(previousDate, quiz.QuizDate)
	return quiz, nil
}

// Delete removes a quiz
func (s *DailyQuizService) Delete(id uint) error {
	quiz, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if quiz == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateQuizCache(quiz.QuizDate)
	return nil
}

// AddQuestion appends a question to a quiz
func (s *DailyQuizService) AddQuestion(quizID uint, input QuizQuestionInput) (*models.QuizQuestion, error) {
	quiz, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	if err := validateQuizQuestionInput(input); err != nil {
		return nil, err
	}
	question := models.QuizQuestion{
		QuizID:        quizID,
		Number:        input.Number,
		Text:          strings.TrimSpace(input.Text),
		Options:       input.Options,
		CorrectOption: input.CorrectOption,
		Explanation:   input.Explanation,
	}
	if err := s.repo.CreateQuestion(&question); err != nil {
		return nil, err
	}
	s.invalidateQuizCache(quiz.QuizDate)
	return &question, nil
}

// DeleteQuestion removes a question
func (s *DailyQuizService) DeleteQuestion(id uint) error {
	question, err := s.repo.GetQuestion(id)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteQuestion(id); err != nil {
		return err
	}
	if quiz, err := s.repo.GetByID(question.QuizID); err == nil && quiz != nil {
		s.invalidateQuizCache(quiz.QuizDate)
	}
	return nil
}

func validateQuizQuestionInput(input QuizQuestionInput) error {
	if strings.TrimSpace(input.Text) == "" || len(input.Options) < 2 {
		return ErrValidation
	}
	if input.CorrectOption < 0 || input.CorrectOption >= len(input.Options) {
		return ErrValidation
	}
	return nil
}
