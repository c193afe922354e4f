package repository

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
)

// PublicationRepository is the publication data access interface
type PublicationRepository interface {
	GetByID(id uint) (*models.Publication, error)
	Create(publication *models.Publication) error
	Update(publication *models.Publication) error
	Delete(id uint) error
	List(filter CatalogListFilter) ([]models.Publication, int64, error)
}

// GormPublicationRepository is the GORM implementation
type GormPublicationRepository struct {
	db *gorm.DB
}

// NewPublicationRepository builds the publication repository
func NewPublicationRepository(db *gorm.DB) *GormPublicationRepository {
	return &GormPublicationRepository{db: db}
}

// GetByID fetches a publication by ID
func (r *GormPublicationRepository) GetByID(id uint) (*models.Publication, error) {
	var publication models.Publication
	if err := r.db.First(&publication, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &publication, nil
}

// Create inserts a publication
func (r *GormPublicationRepository) Create(publication *models.Publication) error {
	return r.db.Create(publication).Error
}

// Update saves a publication
func (r *GormPublicationRepository) Update(publication *models.Publication) error {
	return r.db.Save(publication).Error
}

// Delete soft-deletes a publication
func (r *GormPublicationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Publication{}, id).Error
}

// List returns publications matching the filter
func (r *GormPublicationRepository) List(filter CatalogListFilter) ([]models.Publication, int64, error) {
	query := r.db.Model(&models.Publication{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		condition, args := jsonArrayContainsCondition("category_ids", filter.CategoryID)
		query = query.Where(condition, args...)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		condition, argCount := buildSearchCondition(r.db, []string{"title", "author", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var publications []models.Publication
	if err := query.Order("id desc").Find(&publications).Error; err != nil {
		return nil, 0, err
	}
	return publications, total, nil
}
