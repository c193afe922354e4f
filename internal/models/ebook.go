package models

import (
	"time"

	"gorm.io/gorm"
)

// EBook is a downloadable study book
type EBook struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                        // primary key
	Title              string         `gorm:"not null;index" json:"title"`                                 // display title
	Description        string         `gorm:"type:text" json:"description"`                                // long description
	CoverURL           string         `gorm:"type:varchar(500)" json:"cover_url"`                          // cover image
	FileURL            string         `gorm:"type:varchar(500)" json:"-"`                                  // download path, entitlement-gated
	CategoryIDs        UintArray      `gorm:"type:json" json:"category_ids"`                               // category references
	LanguageIDs        UintArray      `gorm:"type:json" json:"language_ids"`                               // language references
	BasePrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`     // list price
	DiscountType       *string        `gorm:"type:varchar(20)" json:"discount_type"`                       // percentage/fixed, nil means none
	DiscountValue      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"` // discount magnitude
	DiscountValidUntil *time.Time     `gorm:"index" json:"discount_valid_until"`                           // nil means no expiry
	IsFree             bool           `gorm:"default:false;index" json:"is_free"`                          // free downloads skip the ledger
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`                         // purchasable/visible
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                     // created
	UpdatedAt          time.Time      `json:"updated_at"`                                                  // updated
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                              // soft delete
}

// TableName sets the table name
func (EBook) TableName() string {
	return "ebooks"
}

// Discount returns the item-level discount descriptor, nil when unset
func (e EBook) Discount() *DiscountDescriptor {
	if e.DiscountType == nil {
		return nil
	}
	return &DiscountDescriptor{Type: *e.DiscountType, Value: e.DiscountValue, ValidUntil: e.DiscountValidUntil}
}
