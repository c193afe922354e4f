package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the top-level content taxonomy (e.g. Banking, SSC, Railways)
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                // primary key
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`    // display name
	Thumbnail string         `gorm:"type:varchar(500)" json:"thumbnail"`  // icon/image path
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`   // ordering weight
	IsActive  bool           `gorm:"default:true;index" json:"is_active"` // visible to users
	CreatedAt time.Time      `gorm:"index" json:"created_at"`             // created
	UpdatedAt time.Time      `json:"updated_at"`                          // updated
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                      // soft delete
}

// TableName sets the table name
func (Category) TableName() string {
	return "categories"
}

// SubCategory refines a Category (e.g. Banking > IBPS PO)
type SubCategory struct {
	ID         uint           `gorm:"primarykey" json:"id"`                // primary key
	CategoryID uint           `gorm:"not null;index" json:"category_id"`   // parent category
	Name       string         `gorm:"not null" json:"name"`                // display name
	Thumbnail  string         `gorm:"type:varchar(500)" json:"thumbnail"`  // icon/image path
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`   // ordering weight
	IsActive   bool           `gorm:"default:true;index" json:"is_active"` // visible to users
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`             // created
	UpdatedAt  time.Time      `json:"updated_at"`                          // updated
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                      // soft delete

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // parent
}

// TableName sets the table name
func (SubCategory) TableName() string {
	return "sub_categories"
}

// Language is a content language (Hindi, English, ...)
type Language struct {
	ID        uint           `gorm:"primarykey" json:"id"`                // primary key
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`    // display name
	Code      string         `gorm:"type:varchar(10)" json:"code"`        // ISO-ish short code
	IsActive  bool           `gorm:"default:true;index" json:"is_active"` // visible to users
	CreatedAt time.Time      `gorm:"index" json:"created_at"`             // created
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                      // soft delete
}

// TableName sets the table name
func (Language) TableName() string {
	return "languages"
}
