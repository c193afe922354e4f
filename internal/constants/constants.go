package constants

// Purchase status constants
const (
	PurchaseStatusPending    = "pending"
	PurchaseStatusProcessing = "processing"
	PurchaseStatusCompleted  = "completed"
	PurchaseStatusFailed     = "failed"
	PurchaseStatusCancelled  = "cancelled"
	PurchaseStatusRefunded   = "refunded"
)

// Purchasable item type constants
const (
	ItemTypeTestSeries  = "test_series"
	ItemTypeCourse      = "course"
	ItemTypeEBook       = "ebook"
	ItemTypePublication = "publication"
)

// Coupon applicability wildcard
const (
	CouponScopeAll = "all"
)

// Discount and coupon type constants
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Current-affairs variant constants
const (
	AffairKindLatest  = "latest"
	AffairKindMonthly = "monthly"
	AffairKindState   = "state"
	AffairKindSports  = "sports"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Queue constants
const (
	QueueDefault              = "default"
	TaskPurchaseTimeoutCancel = "purchase:timeout_cancel"
)

// Cache constants
const (
	RedisPrefixDefault = "bb"
)

// Currency constants
const (
	SiteCurrencyDefault = "INR"
)
