package repository

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
)

// EBookRepository is the e-book data access interface
type EBookRepository interface {
	GetByID(id uint) (*models.EBook, error)
	Create(ebook *models.EBook) error
	Update(ebook *models.EBook) error
	Delete(id uint) error
	List(filter CatalogListFilter) ([]models.EBook, int64, error)
}

// GormEBookRepository is the GORM implementation
type GormEBookRepository struct {
	db *gorm.DB
}

// NewEBookRepository builds the e-book repository
func NewEBookRepository(db *gorm.DB) *GormEBookRepository {
	return &GormEBookRepository{db: db}
}

// GetByID fetches an e-book by ID
func (r *GormEBookRepository) GetByID(id uint) (*models.EBook, error) {
	var ebook models.EBook
	if err := r.db.First(&ebook, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ebook, nil
}

// Create inserts an e-book
func (r *GormEBookRepository) Create(ebook *models.EBook) error {
	return r.db.Create(ebook).Error
}

// Update saves an e-book
func (r *GormEBookRepository) Update(ebook *models.EBook) error {
	return r.db.Save(ebook).Error
}

// Delete soft-deletes an e-book
func (r *GormEBookRepository) Delete(id uint) error {
	return r.db.Delete(&models.EBook{}, id).Error
}

// List returns e-books matching the filter
func (r *GormEBookRepository) List(filter CatalogListFilter) ([]models.EBook, int64, error) {
	query := r.db.Model(&models.EBook{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		condition, args := jsonArrayContainsCondition("category_ids", filter.CategoryID)
		query = query.Where(condition, args...)
	}
	if filter.LanguageID > 0 {
		condition, args := jsonArrayContainsCondition("language_ids", filter.LanguageID)
		query = query.Where(condition, args...)
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

	var ebooks []models.EBook
	if err := query.Order("id desc").Find(&ebooks).Error; err != nil {
		return nil, 0, err
	}
	return ebooks, total, nil
}
