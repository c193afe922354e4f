package service

import (
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// EBookService manages the e-book catalog. Download URLs are gated on
// entitlement unless the book is marked free.
type EBookService struct {
	repo        repository.EBookRepository
	entitlement *EntitlementService
}

// NewEBookService creates the e-book service
func NewEBookService(repo repository.EBookRepository, entitlement *EntitlementService) *EBookService {
	return &EBookService{repo: repo, entitlement: entitlement}
}

// EBookInput carries create/update fields for an e-book
type EBookInput struct {
	Title       string
	Description string
	CoverURL    string
	FileURL     string
	CategoryIDs []uint
	LanguageIDs []uint
	BasePrice   models.Money
	Discount    DiscountInput
	IsFree      bool
	IsActive    bool
}

// List returns e-books matching the filter
func (s *EBookService) List(filter repository.CatalogListFilter) ([]models.EBook, int64, error) {
	return s.repo.List(filter)
}

// Get returns one e-book
func (s *EBookService) Get(id uint) (*models.EBook, error) {
	ebook, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ebook == nil {
		return nil, ErrNotFound
	}
	return ebook, nil
}

// DownloadURL returns the file location for a user with access. Free books
// are open to any signed-in user; paid books require a live entitlement.
func (s *EBookService) DownloadURL(userID, id uint) (string, error) {
	ebook, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if !ebook.IsActive {
		return "", ErrNotFound
	}
	if !ebook.IsFree {
		ok, err := s.entitlement.HasAccess(userID, constants.ItemTypeEBook, id, time.Now())
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrEntitlementRequired
		}
	}
	return ebook.FileURL, nil
}

// Create creates an e-book
func (s *EBookService) Create(input EBookInput) (*models.EBook, error) {
	if err := validateEBookInput(input); err != nil {
		return nil, err
	}
	ebook := models.EBook{}
	applyEBookInput(&ebook, input)
	if err := s.repo.Create(&ebook); err != nil {
		return nil, err
	}
	return &ebook, nil
}

// Update updates an e-book
func (s *EBookService) Update(id uint, input EBookInput) (*models.EBook, error) {
	ebook, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ebook == nil {
		return nil, ErrNotFound
	}
	if err := validateEBookInput(input); err != nil {
		return nil, err
	}
	applyEBookInput(ebook, input)
	if err := s.repo.Update(ebook); err != nil {
		return nil, err
	}
	return ebook, nil
}

// Delete removes an e-book
func (s *EBookService) Delete(id uint) error {
	ebook, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if ebook == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func validateEBookInput(input EBookInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrValidation
	}
	if input.BasePrice.IsNegative() {
		return ErrValidation
	}
	return validateDiscountInput(input.Discount)
}

func applyEBookInput(ebook *models.EBook, input EBookInput) {
	ebook.Title = strings.TrimSpace(input.Title)
	ebook.Description = input.Description
	ebook.CoverURL = input.CoverURL
	ebook.FileURL = input.FileURL
	ebook.CategoryIDs = input.CategoryIDs
	ebook.LanguageIDs = input.LanguageIDs
	ebook.BasePrice = input.BasePrice
	ebook.DiscountType = input.Discount.Type
	ebook.DiscountValue = input.Discount.Value
	ebook.DiscountValidUntil = input.Discount.ValidUntil
	ebook.IsFree = input.IsFree
	ebook.IsActive = input.IsActive
}
