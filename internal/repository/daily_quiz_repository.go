package repository

import (
	"errors"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
)

// DailyQuizRepository is the daily-quiz data access interface
type DailyQuizRepository interface {
	GetByID(id uint) (*models.DailyQuiz, error)
	GetByDate(date time.Time) (*models.DailyQuiz, error)
	Create(quiz *models.DailyQuiz) error
	Update(quiz *models.DailyQuiz) error
	Delete(id uint) error
	List(page, pageSize int, onlyActive bool) ([]models.DailyQuiz, int64, error)
	GetQuestion(id uint) (*models.QuizQuestion, error)
	CreateQuestion(question *models.QuizQuestion) error
	UpdateQuestion(question *models.QuizQuestion) error
	DeleteQuestion(id uint) error
}

// GormDailyQuizRepository is the GORM implementation
type GormDailyQuizRepository struct {
	db *gorm.DB
}

// NewDailyQuizRepository builds the daily-quiz repository
func NewDailyQuizRepository(db *gorm.DB) *GormDailyQuizRepository {
	return &GormDailyQuizRepository{db: db}
}

// GetByID fetches a quiz with questions
func (r *GormDailyQuizRepository) GetByID(id uint) (*models.DailyQuiz, error) {
	var quiz models.DailyQuiz
	if err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("number asc")
	}).First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

// GetByDate fetches the quiz for a calendar day
func (r *GormDailyQuizRepository) GetByDate(date time.Time) (*models.DailyQuiz, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	var quiz models.DailyQuiz
	if err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("number asc")
	}).Where("quiz_date >= ? AND quiz_date < ?", dayStart, dayEnd).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

// Create inserts a quiz
func (r *GormDailyQuizRepository) Create(quiz *models.DailyQuiz) error {
	return r.db.Create(quiz).Error
}

// Update saves a quiz
func (r *GormDailyQuizRepository) Update(quiz *models.DailyQuiz) error {
	return r.db.Save(quiz).Error
}

// Delete soft-deletes a quiz
func (r *GormDailyQuizRepository) Delete(id uint) error {
	return r.db.Delete(&models.DailyQuiz{}, id).Error
}

// List returns quizzes, newest first
func (r *GormDailyQuizRepository) List(page, pageSize int, onlyActive bool) ([]models.DailyQuiz, int64, error) {
	query := r.db.Model(&models.DailyQuiz{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var quizzes []models.DailyQuiz
	if err := query.Order("quiz_date desc").Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

// GetQuestion fetches one quiz question
func (r *GormDailyQuizRepository) GetQuestion(id uint) (*models.QuizQuestion, error) {
	var question models.QuizQuestion
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// CreateQuestion inserts a quiz question
func (r *GormDailyQuizRepository) CreateQuestion(question *models.QuizQuestion) error {
	return r.db.Create(question).Error
}

// UpdateQuestion saves a quiz question
func (r *GormDailyQuizRepository) UpdateQuestion(question *models.QuizQuestion) error {
	return r.db.Save(question).Error
}

// DeleteQuestion soft-deletes a quiz question
func (r *GormDailyQuizRepository) DeleteQuestion(id uint) error {
	return r.db.Delete(&models.QuizQuestion{}, id).Error
}
