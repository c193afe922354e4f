package repository

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
)

// CurrentAffairRepository is the current-affairs data access interface
type CurrentAffairRepository interface {
	GetByID(id uint) (*models.CurrentAffair, error)
	Create(affair *models.CurrentAffair) error
	Update(affair *models.CurrentAffair) error
	Delete(id uint) error
	List(filter CurrentAffairListFilter) ([]models.CurrentAffair, int64, error)
}

// GormCurrentAffairRepository is the GORM implementation
type GormCurrentAffairRepository struct {
	db *gorm.DB
}

// NewCurrentAffairRepository builds the current-affairs repository
func NewCurrentAffairRepository(db *gorm.DB) *GormCurrentAffairRepository {
	return &GormCurrentAffairRepository{db: db}
}

// GetByID fetches an article by ID
func (r *GormCurrentAffairRepository) GetByID(id uint) (*models.CurrentAffair, error) {
	var affair models.CurrentAffair
	if err := r.db.First(&affair, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &affair, nil
}

// Create inserts an article
func (r *GormCurrentAffairRepository) Create(affair *models.CurrentAffair) error {
	return r.db.Create(affair).Error
}

// Update saves an article
func (r *GormCurrentAffairRepository) Update(affair *models.CurrentAffair) error {
	return r.db.Save(affair).Error
}

// Delete soft-deletes an article
func (r *GormCurrentAffairRepository) Delete(id uint) error {
	return r.db.Delete(&models.CurrentAffair{}, id).Error
}

// List returns articles matching the filter, newest first
func (r *GormCurrentAffairRepository) List(filter CurrentAffairListFilter) ([]models.CurrentAffair, int64, error) {
	query := r.db.Model(&models.CurrentAffair{})

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		condition, args := jsonArrayContainsCondition("category_ids", filter.CategoryID)
		query = query.Where(condition, args...)
	}
	if filter.DateFrom != nil {
		query = query.Where("affair_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("affair_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		condition, argCount := buildSearchCondition(r.db, []string{"title", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var affairs []models.CurrentAffair
	if err := query.Order("affair_date desc, id desc").Find(&affairs).Error; err != nil {
		return nil, 0, err
	}
	return affairs, total, nil
}
