package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase is one entry in the purchase ledger. OrderID is the gateway order
// reference created when the purchase goes pending; amounts are snapshots
// taken at creation and never recomputed.
type Purchase struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // primary key
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                // buying user
	OrderID        string         `gorm:"uniqueIndex;not null" json:"order_id"`                         // gateway order reference
	PaymentID      string         `gorm:"index" json:"payment_id"`                                      // gateway payment id, set on completion
	Status         string         `gorm:"index;not null" json:"status"`                                 // pending/processing/completed/failed/cancelled/refunded
	Currency       string         `gorm:"not null;default:'INR'" json:"currency"`                       // ISO currency
	OriginalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_amount"` // pre-discount total
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // item + coupon discount total
	Amount         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`          // charged total
	CouponCode     string         `gorm:"index" json:"coupon_code,omitempty"`                           // applied coupon, empty when none
	CouponSnapshot JSON           `gorm:"type:json" json:"coupon_snapshot,omitempty"`                   // coupon terms at purchase time
	PaymentDetails JSON           `gorm:"type:json" json:"payment_details,omitempty"`                   // opaque gateway payload
	FailureReason  string         `gorm:"type:varchar(500)" json:"failure_reason,omitempty"`            // set on failed/cancelled
	PurchaseDate   *time.Time     `gorm:"index" json:"purchase_date"`                                   // completion time
	ExpiryDate     *time.Time     `gorm:"index" json:"expiry_date"`                                     // entitlement end, nil means lifetime
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at"`                                      // pending-payment deadline
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // created
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // updated
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"` // purchased items
}

// TableName sets the table name
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem snapshots one purchased item
type PurchaseItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                 // primary key
	PurchaseID uint           `gorm:"index;not null" json:"purchase_id"`                    // owning purchase
	ItemType   string         `gorm:"type:varchar(20);not null;index" json:"item_type"`     // test_series/course/ebook/publication
	ItemID     uint           `gorm:"not null;index" json:"item_id"`                        // purchased item
	Title      string         `gorm:"not null" json:"title"`                                // title snapshot
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`   // paid unit price snapshot
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`                   // always >= 1
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                              // created
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                       // soft delete
}

// TableName sets the table name
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
