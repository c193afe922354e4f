package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponUsage records one completed redemption
type CouponUsage struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // primary key
	CouponID       uint           `gorm:"index;not null" json:"coupon_id"`                              // redeemed coupon
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                // redeeming user
	PurchaseID     uint           `gorm:"index;not null" json:"purchase_id"`                            // completed purchase
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // money saved
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // created
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete
}

// TableName sets the table name
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
