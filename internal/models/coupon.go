package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// CouponApplicability names one item (or class of items) a coupon covers.
// ItemType "all" matches everything; ItemID 0 matches every item of the type.
type CouponApplicability struct {
	ItemType string `json:"item_type"`         // test_series/course/ebook/publication/all
	ItemID   uint   `json:"item_id,omitempty"` // 0 means any item of the type
}

// ApplicabilityArray stores the applicability list as JSON
type ApplicabilityArray []CouponApplicability

// Value implements driver.Valuer
func (a ApplicabilityArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *ApplicabilityArray) Scan(value interface{}) error {
	if value == nil {
		*a = ApplicabilityArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, a)
}

// Matches reports whether the list covers the given item
func (a ApplicabilityArray) Matches(itemType string, itemID uint) bool {
	for _, entry := range a {
		if entry.ItemType == "all" {
			return true
		}
		if entry.ItemType == itemType && (entry.ItemID == 0 || entry.ItemID == itemID) {
			return true
		}
	}
	return false
}

// Coupon is a redeemable discount code
type Coupon struct {
	ID                uint               `gorm:"primarykey" json:"id"`                                             // primary key
	Code              string             `gorm:"uniqueIndex;not null" json:"code"`                                 // stored upper-cased
	DiscountType      string             `gorm:"type:varchar(20);not null" json:"discount_type"`                   // percentage/fixed
	DiscountValue     Money              `gorm:"type:decimal(20,2);not null" json:"discount_value"`                // percentage points or fixed amount
	MaxDiscount       Money              `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount"`        // cap for percentage coupons
	MinPurchaseAmount Money              `gorm:"type:decimal(20,2);not null;default:0" json:"min_purchase_amount"` // eligibility floor
	MaxUses           int                `gorm:"not null;default:0" json:"max_uses"`                               // total redemption cap, 0 means unlimited
	UsedCount         int                `gorm:"not null;default:0" json:"used_count"`                             // completed redemptions
	ValidFrom         time.Time          `gorm:"index;not null" json:"valid_from"`                                 // activity window start
	ValidUntil        time.Time          `gorm:"index;not null" json:"valid_until"`                                // activity window end
	ApplicableItems   ApplicabilityArray `gorm:"type:json" json:"applicable_items"`                                // covered items, empty means none
	IsActive          bool               `gorm:"not null;default:true" json:"is_active"`                           // admin kill switch
	CreatedAt         time.Time          `gorm:"index" json:"created_at"`                                          // created
	UpdatedAt         time.Time          `gorm:"index" json:"updated_at"`                                          // updated
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`                                                   // soft delete
}

// TableName sets the table name
func (Coupon) TableName() string {
	return "coupons"
}
