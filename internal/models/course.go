package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is a paid online course
type Course struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                         // primary key
	Name               string         `gorm:"not null;index" json:"name"`                                   // display name
	Description        string         `gorm:"type:text" json:"description"`                                 // long description
	Thumbnail          string         `gorm:"type:varchar(500)" json:"thumbnail"`                           // cover image
	CategoryIDs        UintArray      `gorm:"type:json" json:"category_ids"`                                // category references
	SubCategoryIDs     UintArray      `gorm:"type:json" json:"sub_category_ids"`                            // sub-category references
	LanguageIDs        UintArray      `gorm:"type:json" json:"language_ids"`                                // language references
	ValidityMonths     int            `gorm:"not null;default:0" json:"validity_months"`                    // entitlement window, 0 means lifetime
	BasePrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`      // list price
	DiscountType       *string        `gorm:"type:varchar(20)" json:"discount_type"`                        // percentage/fixed, nil means none
	DiscountValue      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"`  // discount magnitude
	DiscountValidUntil *time.Time     `gorm:"index" json:"discount_valid_until"`                            // nil means no expiry
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`                          // purchasable/visible
	SortOrder          int            `gorm:"default:0;index" json:"sort_order"`                            // ordering weight
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                      // created
	UpdatedAt          time.Time      `json:"updated_at"`                                                   // updated
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete
}

// TableName sets the table name
func (Course) TableName() string {
	return "courses"
}

// Discount returns the item-level discount descriptor, nil when unset
func (c Course) Discount() *DiscountDescriptor {
	if c.DiscountType == nil {
		return nil
	}
	return &DiscountDescriptor{Type: *c.DiscountType, Value: c.DiscountValue, ValidUntil: c.DiscountValidUntil}
}
