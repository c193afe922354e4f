package repository

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
)

// CourseRepository is the course data access interface
type CourseRepository interface {
	GetByID(id uint) (*models.Course, error)
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id uint) error
	List(filter CatalogListFilter) ([]models.Course, int64, error)
}

// GormCourseRepository is the GORM implementation
type GormCourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository builds the course repository
func NewCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// GetByID fetches a course by ID
func (r *GormCourseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// Create inserts a course
func (r *GormCourseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

// Update saves a course
func (r *GormCourseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete soft-deletes a course
func (r *GormCourseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Course{}, id).Error
}

// List returns courses matching the filter
func (r *GormCourseRepository) List(filter CatalogListFilter) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		condition, args := jsonArrayContainsCondition("category_ids", filter.CategoryID)
		query = query.Where(condition, args...)
	}
	if filter.SubCategoryID > 0 {
		condition, args := jsonArrayContainsCondition("sub_category_ids", filter.SubCategoryID)
		query = query.Where(condition, args...)
	}
	if filter.LanguageID > 0 {
		condition, args := jsonArrayContainsCondition("language_ids", filter.LanguageID)
		query = query.Where(condition, args...)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		condition, argCount := buildSearchCondition(r.db, []string{"name", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var courses []models.Course
	if err := query.Order("sort_order desc, id desc").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}
