package models

import (
	"time"

	"gorm.io/gorm"
)

// Publication is a printed/periodical product shipped to the buyer
type Publication struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                        // primary key
	Title              string         `gorm:"not null;index" json:"title"`                                 // display title
	Author             string         `gorm:"index" json:"author"`                                         // author/publisher
	Description        string         `gorm:"type:text" json:"description"`                                // long description
	CoverURL           string         `gorm:"type:varchar(500)" json:"cover_url"`                          // cover image
	CategoryIDs        UintArray      `gorm:"type:json" json:"category_ids"`                               // category references
	ValidityMonths     int            `gorm:"not null;default:0" json:"validity_months"`                   // subscription window, 0 means one-off
	BasePrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`     // list price
	DiscountType       *string        `gorm:"type:varchar(20)" json:"discount_type"`                       // percentage/fixed, nil means none
	DiscountValue      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"` // discount magnitude
	DiscountValidUntil *time.Time     `gorm:"index" json:"discount_valid_until"`                           // nil means no expiry
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`                         // purchasable/visible
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                     // created
	UpdatedAt          time.Time      `json:"updated_at"`                                                  // updated
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                              // soft delete
}

// TableName sets the table name
func (Publication) TableName() string {
	return "publications"
}

// Discount returns the item-level discount descriptor, nil when unset
func (p Publication) Discount() *DiscountDescriptor {
	if p.DiscountType == nil {
		return nil
	}
	return &DiscountDescriptor{Type: *p.DiscountType, Value: p.DiscountValue, ValidUntil: p.DiscountValidUntil}
}
