package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyQuiz is the free quiz published for one calendar day
type DailyQuiz struct {
	ID        uint           `gorm:"primarykey" json:"id"`                 // primary key
	QuizDate  time.Time      `gorm:"uniqueIndex;not null" json:"quiz_date"` // one quiz per day
	Title     string         `gorm:"not null" json:"title"`                // display title
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`  // visible to users
	CreatedAt time.Time      `gorm:"index" json:"created_at"`              // created
	UpdatedAt time.Time      `json:"updated_at"`                           // updated
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                       // soft delete

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"` // member questions
}

// TableName sets the table name
func (DailyQuiz) TableName() string {
	return "daily_quizzes"
}

// QuizQuestion is a single daily-quiz MCQ
type QuizQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`              // primary key
	QuizID        uint           `gorm:"not null;index" json:"quiz_id"`     // owning quiz
	Number        int            `gorm:"not null;default:0" json:"number"`  // question number
	Text          string         `gorm:"type:text;not null" json:"text"`    // question body
	Options       StringArray    `gorm:"type:json;not null" json:"options"` // answer options
	CorrectOption int            `gorm:"not null" json:"correct_option"`    // index into Options
	Explanation   string         `gorm:"type:text" json:"explanation"`      // answer explanation
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`           // created
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete
}

// TableName sets the table name
func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
