package service

import (
	"strings"

	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// TaxonomyService manages categories, sub-categories and languages
type TaxonomyService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	languageRepo    repository.LanguageRepository
}

// NewTaxonomyService creates the taxonomy service
func NewTaxonomyService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	languageRepo repository.LanguageRepository,
) *TaxonomyService {
	return &TaxonomyService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		languageRepo:    languageRepo,
	}
}

// CategoryInput carries create/update fields for a category
type CategoryInput struct {
	Name      string
	Thumbnail string
	SortOrder int
	IsActive  bool
}

// ListCategories returns categories, optionally restricted to active ones
func (s *TaxonomyService) ListCategories(onlyActive bool) ([]models.Category, error) {
	return s.categoryRepo.List(onlyActive)
}

// CreateCategory creates a category
func (s *TaxonomyService) CreateCategory(input CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	category := models.Category{
		Name:      strings.TrimSpace(input.Name),
		Thumbnail: input.Thumbnail,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
	}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category
func (s *TaxonomyService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	category.Name = strings.TrimSpace(input.Name)
	category.Thumbnail = input.Thumbnail
	category.SortOrder = input.SortOrder
	category.IsActive = input.IsActive
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category
func (s *TaxonomyService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.categoryRepo.Delete(id)
}

// SubCategoryInput carries create/update fields for a sub-category
type SubCategoryInput struct {
	CategoryID uint
	Name       string
	Thumbnail  string
	SortOrder  int
	IsActive   bool
}

// ListSubCategories returns sub-categories of a category
func (s *TaxonomyService) ListSubCategories(categoryID uint, onlyActive bool) ([]models.SubCategory, error) {
	return s.subCategoryRepo.ListByCategory(categoryID, onlyActive)
}

// CreateSubCategory creates a sub-category under an existing category
func (s *TaxonomyService) CreateSubCategory(input SubCategoryInput) (*models.SubCategory, error) {
	if strings.TrimSpace(input.Name) == "" || input.CategoryID == 0 {
		return nil, ErrValidation
	}
	parent, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	subCategory := models.SubCategory{
		CategoryID: input.CategoryID,
		Name:       strings.TrimSpace(input.Name),
		Thumbnail:  input.Thumbnail,
		SortOrder:  input.SortOrder,
		IsActive:   input.IsActive,
	}
	if err := s.subCategoryRepo.Create(&subCategory); err != nil {
		return nil, err
	}
	return &subCategory, nil
}

// UpdateSubCategory updates a sub-category
func (s *TaxonomyService) UpdateSubCategory(id uint, input SubCategoryInput) (*models.SubCategory, error) {
	subCategory, err := s.subCategoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	if input.CategoryID != 0 && input.CategoryID != subCategory.CategoryID {
		parent, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrNotFound
		}
		subCategory.CategoryID = input.CategoryID
	}
	subCategory.Name = strings.TrimSpace(input.Name)
	subCategory.Thumbnail = input.Thumbnail
	subCategory.SortOrder = input.SortOrder
	subCategory.IsActive = input.IsActive
	if err := s.subCategoryRepo.Update(subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

// DeleteSubCategory removes a sub-category
func (s *TaxonomyService) DeleteSubCategory(id uint) error {
	subCategory, err := s.subCategoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if subCategory == nil {
		return ErrNotFound
	}
	return s.subCategoryRepo.Delete(id)
}

// LanguageInput carries create/update fields for a language
type LanguageInput struct {
	Name     string
	Code     string
	IsActive bool
}

// ListLanguages returns languages, optionally restricted to active ones
func (s *TaxonomyService) ListLanguages(onlyActive bool) ([]models.Language, error) {
	return s.languageRepo.List(onlyActive)
}

// CreateLanguage creates a language
func (s *TaxonomyService) CreateLanguage(input LanguageInput) (*models.Language, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	language := models.Language{
		Name:     strings.TrimSpace(input.Name),
		Code:     strings.TrimSpace(input.Code),
		IsActive: input.IsActive,
	}
	if err := s.languageRepo.Create(&language); err != nil {
		return nil, err
	}
	return &language, nil
}

// UpdateLanguage updates a language
func (s *TaxonomyService) UpdateLanguage(id uint, input LanguageInput) (*models.Language, error) {
	language, err := s.languageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if language == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	language.Name = strings.TrimSpace(input.Name)
	language.Code = strings.TrimSpace(input.Code)
	language.IsActive = input.IsActive
	if err := s.languageRepo.Update(language); err != nil {
		return nil, err
	}
	return language, nil
}

// DeleteLanguage removes a language
func (s *TaxonomyService) DeleteLanguage(id uint) error {
	language, err := s.languageRepo.GetByID(id)
	if err != nil {
		return err
	}
	if language == nil {
		return ErrNotFound
	}
	return s.languageRepo.Delete(id)
}
