package repository

import (
	"errors"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseRepository is the purchase ledger data access interface
type PurchaseRepository interface {
	Create(purchase *models.Purchase, items []models.PurchaseItem) error
	GetByID(id uint) (*models.Purchase, error)
	GetByIDAndUser(id, userID uint) (*models.Purchase, error)
	GetByOrderID(orderID string) (*models.Purchase, error)
	GetByOrderIDForUpdate(orderID string) (*models.Purchase, error)
	FindLiveForItem(userID uint, itemType string, itemID uint, now time.Time) (*models.Purchase, error)
	FindLiveForItemForUpdate(userID uint, itemType string, itemID uint, now time.Time) (*models.Purchase, error)
	HasCompletedForItem(userID uint, itemType string, itemID uint, now time.Time) (bool, error)
	ListByUser(filter PurchaseListFilter) ([]models.Purchase, int64, error)
	ListAdmin(filter PurchaseListFilter) ([]models.Purchase, int64, error)
	ListExpiredPending(now time.Time, limit int) ([]models.Purchase, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormPurchaseRepository
}

// GormPurchaseRepository is the GORM implementation
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository builds the purchase repository
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) *GormPurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// Create inserts a purchase with its items
func (r *GormPurchaseRepository) Create(purchase *models.Purchase, items []models.PurchaseItem) error {
	if err := r.db.Create(purchase).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].PurchaseID = purchase.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches a purchase with items
func (r *GormPurchaseRepository) GetByID(id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Preload("Items").First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// GetByIDAndUser fetches a user's purchase
func (r *GormPurchaseRepository) GetByIDAndUser(id, userID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// GetByOrderID fetches a purchase by its gateway order reference
func (r *GormPurchaseRepository) GetByOrderID(orderID string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Preload("Items").
		Where("order_id = ?", orderID).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// GetByOrderIDForUpdate locks and fetches a purchase by order reference.
// Call inside a transaction.
func (r *GormPurchaseRepository) GetByOrderIDForUpdate(orderID string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.db.Where("purchase_id = ?", purchase.ID).Find(&purchase.Items).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// liveForItemQuery matches purchases for the item that are still pending or
// grant an unexpired entitlement.
func (r *GormPurchaseRepository) liveForItemQuery(userID uint, itemType string, itemID uint, now time.Time) *gorm.DB {
	return r.db.Model(&models.Purchase{}).
		Joins("JOIN purchase_items ON purchase_items.purchase_id = purchases.id").
		Where("purchases.user_id = ?", userID).
		Where("purchase_items.item_type = ? AND purchase_items.item_id = ?", itemType, itemID).
		Where(
			"(purchases.status = ? AND (purchases.expires_at IS NULL OR purchases.expires_at > ?))"+
				" OR (purchases.status = ? AND (purchases.expiry_date IS NULL OR purchases.expiry_date > ?))",
			constants.PurchaseStatusPending, now,
			constants.PurchaseStatusCompleted, now,
		)
}

// FindLiveForItem returns the blocking purchase for (user, item), nil when none
func (r *GormPurchaseRepository) FindLiveForItem(userID uint, itemType string, itemID uint, now time.Time) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.liveForItemQuery(userID, itemType, itemID, now).
		Order("purchases.id desc").
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// FindLiveForItemForUpdate is FindLiveForItem with a row lock; call inside a
// transaction to serialize concurrent purchase creation for the same item.
func (r *GormPurchaseRepository) FindLiveForItemForUpdate(userID uint, itemType string, itemID uint, now time.Time) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.liveForItemQuery(userID, itemType, itemID, now).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "purchases"}}).
		Order("purchases.id desc").
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// HasCompletedForItem reports whether the user holds an unexpired completed
// purchase of the item
func (r *GormPurchaseRepository) HasCompletedForItem(userID uint, itemType string, itemID uint, now time.Time) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Purchase{}).
		Joins("JOIN purchase_items ON purchase_items.purchase_id = purchases.id").
		Where("purchases.user_id = ? AND purchases.status = ?", userID, constants.PurchaseStatusCompleted).
		Where("purchase_items.item_type = ? AND purchase_items.item_id = ?", itemType, itemID).
		Where("purchases.expiry_date IS NULL OR purchases.expiry_date > ?", now).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns a user's purchases
func (r *GormPurchaseRepository) ListByUser(filter PurchaseListFilter) ([]models.Purchase, int64, error) {
	query := r.db.Model(&models.Purchase{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var purchases []models.Purchase
	if err := query.Preload("Items").Order("id desc").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// ListAdmin returns ledger entries for the back office
func (r *GormPurchaseRepository) ListAdmin(filter PurchaseListFilter) ([]models.Purchase, int64, error) {
	query := r.db.Model(&models.Purchase{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.ItemType != "" || filter.ItemID != 0 {
		query = query.Joins("JOIN purchase_items ON purchase_items.purchase_id = purchases.id")
		if filter.ItemType != "" {
			query = query.Where("purchase_items.item_type = ?", filter.ItemType)
		}
		if filter.ItemID != 0 {
			query = query.Where("purchase_items.item_id = ?", filter.ItemID)
		}
	}
	if filter.CreatedFrom != nil {
		query = query.Where("purchases.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("purchases.created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var purchases []models.Purchase
	if err := query.Preload("Items").Order("purchases.id desc").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// ListExpiredPending returns pending purchases past their payment deadline
func (r *GormPurchaseRepository) ListExpiredPending(now time.Time, limit int) ([]models.Purchase, error) {
	query := r.db.Where("status = ?", constants.PurchaseStatusPending).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var purchases []models.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// UpdateStatus updates a purchase status with extra columns
func (r *GormPurchaseRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Purchase{}).Where("id = ?", id).Updates(updates).Error
}
