package repository

import "time"

// CatalogListFilter filters catalog listings (courses, ebooks, publications)
type CatalogListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	SubCategoryID uint
	LanguageID    uint
	Search        string
	OnlyActive    bool
}

// CurrentAffairListFilter filters current-affairs listings
type CurrentAffairListFilter struct {
	Page       int
	PageSize   int
	Kind       string
	CategoryID uint
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
	OnlyActive bool
}

// PurchaseListFilter filters purchase ledger listings
type PurchaseListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	ItemType    string
	ItemID      uint
	OrderID     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CouponListFilter filters coupon listings
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// CouponUsageListFilter filters coupon usage listings
type CouponUsageListFilter struct {
	Page     int
	PageSize int
	CouponID uint
	UserID   uint
}

// UserListFilter filters user listings
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
