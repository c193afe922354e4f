package models

import (
	"time"

	"gorm.io/gorm"
)

// CurrentAffair is a news/GK article. Kind selects the variant
// (latest/monthly/state/sports); variant-only fields live in Payload.
type CurrentAffair struct {
	ID          uint           `gorm:"primarykey" json:"id"`                // primary key
	Kind        string         `gorm:"type:varchar(20);not null;index" json:"kind"` // latest/monthly/state/sports
	AffairDate  time.Time      `gorm:"index;not null" json:"affair_date"`   // publication date
	Title       string         `gorm:"not null" json:"title"`               // headline
	Description string         `gorm:"type:text" json:"description"`        // summary
	FullContent string         `gorm:"type:text" json:"full_content"`       // article body
	Thumbnail   string         `gorm:"type:varchar(500)" json:"thumbnail"`  // cover image
	CategoryIDs UintArray      `gorm:"type:json" json:"category_ids"`       // category references
	LanguageIDs UintArray      `gorm:"type:json" json:"language_ids"`       // language references
	Payload     JSON           `gorm:"type:json" json:"payload"`            // variant fields: month/year, state, sport
	IsActive    bool           `gorm:"default:true;index" json:"is_active"` // visible to users
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`             // created
	UpdatedAt   time.Time      `json:"updated_at"`                          // updated
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                      // soft delete
}

// TableName sets the table name
func (CurrentAffair) TableName() string {
	return "current_affairs"
}
