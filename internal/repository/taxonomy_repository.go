package repository

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository is the category data access interface
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	List(onlyActive bool) ([]models.Category, error)
}

// GormCategoryRepository is the GORM implementation
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository builds the category repository
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// GetByID fetches a category by ID
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update saves a category
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete soft-deletes a category
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// List returns categories ordered by weight
func (r *GormCategoryRepository) List(onlyActive bool) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := query.Order("sort_order desc, id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// SubCategoryRepository is the sub-category data access interface
type SubCategoryRepository interface {
	GetByID(id uint) (*models.SubCategory, error)
	Create(subCategory *models.SubCategory) error
	Update(subCategory *models.SubCategory) error
	Delete(id uint) error
	ListByCategory(categoryID uint, onlyActive bool) ([]models.SubCategory, error)
}

// GormSubCategoryRepository is the GORM implementation
type GormSubCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository builds the sub-category repository
func NewSubCategoryRepository(db *gorm.DB) *GormSubCategoryRepository {
	return &GormSubCategoryRepository{db: db}
}

// GetByID fetches a sub-category by ID
func (r *GormSubCategoryRepository) GetByID(id uint) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	if err := r.db.First(&subCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subCategory, nil
}

// Create inserts a sub-category
func (r *GormSubCategoryRepository) Create(subCategory *models.SubCategory) error {
	return r.db.Create(subCategory).Error
}

// Update saves a sub-category
func (r *GormSubCategoryRepository) Update(subCategory *models.SubCategory) error {
	return r.db.Save(subCategory).Error
}

// Delete soft-deletes a sub-category
func (r *GormSubCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.SubCategory{}, id).Error
}

// ListByCategory returns sub-categories of a category, 0 means all
func (r *GormSubCategoryRepository) ListByCategory(categoryID uint, onlyActive bool) ([]models.SubCategory, error) {
	query := r.db.Model(&models.SubCategory{})
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var subCategories []models.SubCategory
	if err := query.Order("sort_order desc, id asc").Find(&subCategories).Error; err != nil {
		return nil, err
	}
	return subCategories, nil
}

// LanguageRepository is the language data access interface
type LanguageRepository interface {
	GetByID(id uint) (*models.Language, error)
	Create(language *models.Language) error
	Update(language *models.Language) error
	Delete(id uint) error
	List(onlyActive bool) ([]models.Language, error)
}

// GormLanguageRepository is the GORM implementation
type GormLanguageRepository struct {
	db *gorm.DB
}

// NewLanguageRepository builds the language repository
func NewLanguageRepository(db *gorm.DB) *GormLanguageRepository {
	return &GormLanguageRepository{db: db}
}

// GetByID fetches a language by ID
func (r *GormLanguageRepository) GetByID(id uint) (*models.Language, error) {
	var language models.Language
	if err := r.db.First(&language, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &language, nil
}

// Create inserts a language
func (r *GormLanguageRepository) Create(language *models.Language) error {
	return r.db.Create(language).Error
}

// Update saves a language
func (r *GormLanguageRepository) Update(language *models.Language) error {
	return r.db.Save(language).Error
}

// Delete soft-deletes a language
func (r *GormLanguageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Language{}, id).Error
}

// List returns languages ordered by name
func (r *GormLanguageRepository) List(onlyActive bool) ([]models.Language, error) {
	query := r.db.Model(&models.Language{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var languages []models.Language
	if err := query.Order("name asc").Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}
