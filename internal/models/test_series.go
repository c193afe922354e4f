package models

import (
	"time"

	"gorm.io/gorm"
)

// TestSeries is a purchasable bundle of mock tests
type TestSeries struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                        // primary key
	Name               string         `gorm:"not null;index" json:"name"`                                  // display name
	Description        string         `gorm:"type:text" json:"description"`                                // long description
	Thumbnail          string         `gorm:"type:varchar(500)" json:"thumbnail"`                          // cover image
	CategoryIDs        UintArray      `gorm:"type:json" json:"category_ids"`                               // category references
	SubCategoryIDs     UintArray      `gorm:"type:json" json:"sub_category_ids"`                           // sub-category references
	LanguageIDs        UintArray      `gorm:"type:json" json:"language_ids"`                               // language references
	MaxTests           int            `gorm:"not null;default:0" json:"max_tests"`                         // advertised test count
	ValidityMonths     int            `gorm:"not null;default:0" json:"validity_months"`                   // entitlement window, 0 means lifetime
	BasePrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`     // list price
	DiscountType       *string        `gorm:"type:varchar(20)" json:"discount_type"`                       // percentage/fixed, nil means none
	DiscountValue      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"` // discount magnitude
	DiscountValidUntil *time.Time     `gorm:"index" json:"discount_valid_until"`                           // nil means no expiry
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`                         // purchasable/visible
	SortOrder          int            `gorm:"default:0;index" json:"sort_order"`                           // ordering weight
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                     // created
	UpdatedAt          time.Time      `json:"updated_at"`                                                  // updated
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                              // soft delete

	Tests []Test `gorm:"foreignKey:SeriesID" json:"tests,omitempty"` // member tests
}

// TableName sets the table name
func (TestSeries) TableName() string {
	return "test_series"
}

// Discount returns the item-level discount descriptor, nil when unset
func (s TestSeries) Discount() *DiscountDescriptor {
	if s.DiscountType == nil {
		return nil
	}
	return &DiscountDescriptor{Type: *s.DiscountType, Value: s.DiscountValue, ValidUntil: s.DiscountValidUntil}
}

// Test is one mock test inside a series. Tests, sections and questions are
// flat tables linked by parent IDs so sibling edits touch only their own row.
type Test struct {
	ID               uint           `gorm:"primarykey" json:"id"`                      // primary key
	SeriesID         uint           `gorm:"not null;index" json:"series_id"`           // owning series
	Name             string         `gorm:"not null" json:"name"`                      // display name
	DurationMinutes  int            `gorm:"not null;default:0" json:"duration_minutes"` // attempt window
	TotalMarks       int            `gorm:"not null;default:0" json:"total_marks"`     // maximum marks
	PositiveMarks    float64        `gorm:"not null;default:1" json:"positive_marks"`  // marks per correct answer
	NegativeMarks    float64        `gorm:"not null;default:0" json:"negative_marks"`  // deducted per wrong answer
	StartsAt         *time.Time     `gorm:"index" json:"starts_at"`                    // availability start
	EndsAt           *time.Time     `gorm:"index" json:"ends_at"`                      // availability end
	Instructions     string         `gorm:"type:text" json:"instructions"`             // pre-test instructions
	SolutionVideoURL string         `gorm:"type:varchar(500)" json:"solution_video_url"` // paid solution video
	IsFree           bool           `gorm:"default:false;index" json:"is_free"`        // free preview test
	SortOrder        int            `gorm:"default:0;index" json:"sort_order"`         // ordering weight
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                   // created
	UpdatedAt        time.Time      `json:"updated_at"`                                // updated
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                            // soft delete

	Sections []TestSection `gorm:"foreignKey:TestID" json:"sections,omitempty"` // member sections
}

// TableName sets the table name
func (Test) TableName() string {
	return "tests"
}

// TestSection groups questions inside a test
type TestSection struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // primary key
	TestID    uint           `gorm:"not null;index" json:"test_id"`     // owning test
	Title     string         `gorm:"not null" json:"title"`             // section title
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // ordering weight
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // created
	UpdatedAt time.Time      `json:"updated_at"`                        // updated
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete

	Questions []TestQuestion `gorm:"foreignKey:SectionID" json:"questions,omitempty"` // member questions
}

// TableName sets the table name
func (TestSection) TableName() string {
	return "test_sections"
}

// TestQuestion is a single MCQ
type TestQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`                     // primary key
	SectionID     uint           `gorm:"not null;index" json:"section_id"`         // owning section
	Number        int            `gorm:"not null;default:0" json:"number"`         // question number within section
	Text          string         `gorm:"type:text;not null" json:"text"`           // question body
	Options       StringArray    `gorm:"type:json;not null" json:"options"`        // answer options
	CorrectOption int            `gorm:"not null" json:"correct_option"`           // index into Options
	Explanation   string         `gorm:"type:text" json:"explanation"`             // answer explanation
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                  // created
	UpdatedAt     time.Time      `json:"updated_at"`                               // updated
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                           // soft delete
}

// TableName sets the table name
func (TestQuestion) TableName() string {
	return "test_questions"
}
