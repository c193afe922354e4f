package service

import (
	"strings"

	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// PublicationService manages the printed publication catalog
type PublicationService struct {
	repo repository.PublicationRepository
}

// NewPublicationService creates the publication service
func NewPublicationService(repo repository.PublicationRepository) *PublicationService {
	return &PublicationService{repo: repo}
}

// PublicationInput carries create/update fields for a publication
type PublicationInput struct {
	Title          string
	Author         string
	Description    string
	CoverURL       string
	CategoryIDs    []uint
	ValidityMonths int
	BasePrice      models.Money
	Discount       DiscountInput
	IsActive       bool
}

// List returns publications matching the filter
func (s *PublicationService) List(filter repository.CatalogListFilter) ([]models.Publication, int64, error) {
	return s.repo.List(filter)
}

// Get returns one publication
func (s *PublicationService) Get(id uint) (*models.Publication, error) {
	publication, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if publication == nil {
		return nil, ErrNotFound
	}
	return publication, nil
}

// Create creates a publication
func (s *PublicationService) Create(input PublicationInput) (*models.Publication, error) {
	if err := validatePublicationInput(input); err != nil {
		return nil, err
	}
	publication := models.Publication{}
	applyPublicationInput(&publication, input)
	if err := s.repo.Create(&publication); err != nil {
		return nil, err
	}
	return &publication, nil
}

// Update updates a publication
func (s *PublicationService) Update(id uint, input PublicationInput) (*models.Publication, error) {
	publication, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if publication == nil {
		return nil, ErrNotFound
	}
	if err := validatePublicationInput(input); err != nil {
		return nil, err
	}
	applyPublicationInput(publication, input)
	if err := s.repo.Update(publication); err != nil {
		return nil, err
	}
	return publication, nil
}

// Delete removes a publication
func (s *PublicationService) Delete(id uint) error {
	publication, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if publication == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func validatePublicationInput(input PublicationInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrValidation
	}
	if input.BasePrice.IsNegative() || input.ValidityMonths < 0 {
		return ErrValidation
	}
	return validateDiscountInput(input.Discount)
}

func applyPublicationInput(publication *models.Publication, input PublicationInput) {
	publication.Title = strings.TrimSpace(input.Title)
	publication.Author = strings.TrimSpace(input.Author)
	publication.Description = input.Description
	publication.CoverURL = input.CoverURL
	publication.CategoryIDs = input.CategoryIDs
	publication.ValidityMonths = input.ValidityMonths
	publication.BasePrice = input.BasePrice
	publication.DiscountType = input.Discount.Type
	publication.DiscountValue = input.Discount.Value
	publication.DiscountValidUntil = input.Discount.ValidUntil
	publication.IsActive = input.IsActive
}
