package service

import (
	"strings"

	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// CourseService manages the course catalog
type CourseService struct {
	repo repository.CourseRepository
}

// NewCourseService creates the course service
func NewCourseService(repo repository.CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

// CourseInput carries create/update fields for a course
type CourseInput struct {
	Name           string
	Description    string
	Thumbnail      string
	CategoryIDs    []uint
	SubCategoryIDs []uint
	LanguageIDs    []uint
	ValidityMonths int
	BasePrice      models.Money
	Discount       DiscountInput
	IsActive       bool
	SortOrder      int
}

// List returns courses matching the filter
func (s *CourseService) List(filter repository.CatalogListFilter) ([]models.Course, int64, error) {
	return s.repo.List(filter)
}

// Get returns one course
func (s *CourseService) Get(id uint) (*models.Course, error) {
	course, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	return course, nil
}

// Create creates a course
func (s *CourseService) Create(input CourseInput) (*models.Course, error) {
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}
	course := models.Course{}
	applyCourseInput(&course, input)
	if err := s.repo.Create(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Update updates a course
func (s *CourseService) Update(id uint, input CourseInput) (*models.Course, error) {
	course, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}
	applyCourseInput(course, input)
	if err := s.repo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course
func (s *CourseService) Delete(id uint) error {
	course, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func validateCourseInput(input CourseInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrValidation
	}
	if input.BasePrice.IsNegative() || input.ValidityMonths < 0 {
		return ErrValidation
	}
	return validateDiscountInput(input.Discount)
}

func applyCourseInput(course *models.Course, input CourseInput) {
	course.Name = strings.TrimSpace(input.Name)
	course.Description = input.Description
	course.Thumbnail = input.Thumbnail
	course.CategoryIDs = input.CategoryIDs
	course.SubCategoryIDs = input.SubCategoryIDs
	course.LanguageIDs = input.LanguageIDs
	course.ValidityMonths = input.ValidityMonths
	course.BasePrice = input.BasePrice
	course.DiscountType = input.Discount.Type
	course.DiscountValue = input.Discount.Value
	course.DiscountValidUntil = input.Discount.ValidUntil
	course.IsActive = input.IsActive
	course.SortOrder = input.SortOrder
}
