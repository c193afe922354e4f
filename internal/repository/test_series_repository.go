package repository

import (
	"errors"

	"github.com/Deekshith-46/brain-buzz/internal/models"

	"gorm.io/gorm"
)

// TestSeriesRepository is the test-series data access interface. Tests,
// sections and questions are separate rows, so every mutation below touches
// exactly one record.
type TestSeriesRepository interface {
	GetByID(id uint) (*models.TestSeries, error)
	GetByIDWithTests(id uint) (*models.TestSeries, error)
	Create(series *models.TestSeries) error
	Update(series *models.TestSeries) error
	Delete(id uint) error
	List(filter CatalogListFilter) ([]models.TestSeries, int64, error)

	GetTestByID(id uint) (*models.Test, error)
	GetTestWithQuestions(id uint) (*models.Test, error)
	CreateTest(test *models.Test) error
	UpdateTest(test *models.Test) error
	DeleteTest(id uint) error
	ListTests(seriesID uint) ([]models.Test, error)

	GetSectionByID(id uint) (*models.TestSection, error)
	CreateSection(section *models.TestSection) error
	UpdateSection(section *models.TestSection) error
	DeleteSection(id uint) error

	GetQuestionByID(id uint) (*models.TestQuestion, error)
	CreateQuestion(question *models.TestQuestion) error
	UpdateQuestion(question *models.TestQuestion) error
	DeleteQuestion(id uint) error
}

// GormTestSeriesRepository is the GORM implementation
type GormTestSeriesRepository struct {
	db *gorm.DB
}

// NewTestSeriesRepository builds the test-series repository
func NewTestSeriesRepository(db *gorm.DB) *GormTestSeriesRepository {
	return &GormTestSeriesRepository{db: db}
}

// GetByID fetches a series without children
func (r *GormTestSeriesRepository) GetByID(id uint) (*models.TestSeries, error) {
	var series models.TestSeries
	if err := r.db.First(&series, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &series, nil
}

// GetByIDWithTests fetches a series with its tests (no questions)
func (r *GormTestSeriesRepository) GetByIDWithTests(id uint) (*models.TestSeries, error) {
	var series models.TestSeries
	if err := r.db.Preload("Tests", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order desc, id asc")
	}).First(&series, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &series, nil
}

// Create inserts a series
func (r *GormTestSeriesRepository) Create(series *models.TestSeries) error {
	return r.db.Create(series).Error
}

// Update saves a series
func (r *GormTestSeriesRepository) Update(series *models.TestSeries) error {
	return r.db.Save(series).Error
}

// Delete soft-deletes a series
func (r *GormTestSeriesRepository) Delete(id uint) error {
	return r.db.Delete(&models.TestSeries{}, id).Error
}

// List returns series matching the filter
func (r *GormTestSeriesRepository) List(filter CatalogListFilter) ([]models.TestSeries, int64, error) {
	query := r.db.Model(&models.TestSeries{})

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

	var series []models.TestSeries
	if err := query.Order("sort_order desc, id desc").Find(&series).Error; err != nil {
		return nil, 0, err
	}
	return series, total, nil
}

// GetTestByID fetches a test without questions
func (r *GormTestSeriesRepository) GetTestByID(id uint) (*models.Test, error) {
	var test models.Test
	if err := r.db.First(&test, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

// GetTestWithQuestions fetches a test with sections and questions
func (r *GormTestSeriesRepository) GetTestWithQuestions(id uint) (*models.Test, error) {
	var test models.Test
	if err := r.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order desc, id asc")
	}).Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("number asc")
	}).First(&test, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

// CreateTest inserts a test
func (r *GormTestSeriesRepository) CreateTest(test *models.Test) error {
	return r.db.Create(test).Error
}

// UpdateTest saves a test
func (r *GormTestSeriesRepository) UpdateTest(test *models.Test) error {
	return r.db.Save(test).Error
}

// DeleteTest soft-deletes a test
func (r *GormTestSeriesRepository) DeleteTest(id uint) error {
	return r.db.Delete(&models.Test{}, id).Error
}

// ListTests returns tests of a series
func (r *GormTestSeriesRepository) ListTests(seriesID uint) ([]models.Test, error) {
	var tests []models.Test
	if err := r.db.Where("series_id = ?", seriesID).
		Order("sort_order desc, id asc").
		Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

// GetSectionByID fetches a section
func (r *GormTestSeriesRepository) GetSectionByID(id uint) (*models.TestSection, error) {
	var section models.TestSection
	if err := r.db.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

// CreateSection inserts a section
func (r *GormTestSeriesRepository) CreateSection(section *models.TestSection) error {
	return r.db.Create(section).Error
}

// UpdateSection saves a section
func (r *GormTestSeriesRepository) UpdateSection(section *models.TestSection) error {
	return r.db.Save(section).Error
}

// DeleteSection soft-deletes a section
func (r *GormTestSeriesRepository) DeleteSection(id uint) error {
	return r.db.Delete(&models.TestSection{}, id).Error
}

// GetQuestionByID fetches a question
func (r *GormTestSeriesRepository) GetQuestionByID(id uint) (*models.TestQuestion, error) {
	var question models.TestQuestion
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// CreateQuestion inserts a question
func (r *GormTestSeriesRepository) CreateQuestion(question *models.TestQuestion) error {
	return r.db.Create(question).Error
}

// UpdateQuestion saves a question
func (r *GormTestSeriesRepository) UpdateQuestion(question *models.TestQuestion) error {
	return r.db.Save(question).Error
}

// DeleteQuestion soft-deletes a question
func (r *GormTestSeriesRepository) DeleteQuestion(id uint) error {
	return r.db.Delete(&models.TestQuestion{}, id).Error
}
