package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDailyQuizServiceTest(t *testing.T) (*DailyQuizService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:daily_quiz_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.DailyQuiz{}, &models.QuizQuestion{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewDailyQuizService(repository.NewDailyQuizRepository(db)), db
}

func TestDailyQuizGetByDate(t *testing.T) {
	svc, db := setupDailyQuizServiceTest(t)
	day := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	quiz := models.DailyQuiz{QuizDate: day, Title: "Daily GK Quiz", IsActive: true}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz failed: %v", err)
	}

	got, err := svc.GetByDate(day)
	if err != nil {
		t.Fatalf("GetByDate error: %v", err)
	}
	if got.ID != quiz.ID {
		t.Fatalf("expected quiz %d, got %d", quiz.ID, got.ID)
	}

	if _, err := svc.GetByDate(day.AddDate(0, 0, 1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty day, got %v", err)
	}
}

func TestDailyQuizDeleteQuestion(t *testing.T) {
	svc, db := setupDailyQuizServiceTest(t)
	quiz := models.DailyQuiz{QuizDate: time.Now(), Title: "Daily GK Quiz", IsActive: true}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz failed: %v", err)
	}
	question := models.QuizQuestion{
		QuizID:        quiz.ID,
		Number:        1,
		Text:          "Capital of India?",
		Options:       models.StringArray{"Mumbai", "New Delhi"},
		CorrectOption: 1,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("create question failed: %v", err)
	}

	if err := svc.DeleteQuestion(question.ID); err != nil {
		t.Fatalf("DeleteQuestion error: %v", err)
	}
	if err := svc.DeleteQuestion(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown question, got %v", err)
	}
}
