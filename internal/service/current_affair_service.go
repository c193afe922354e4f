package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/cache"
	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/logger"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// Public listings are cached per (kind, category, page). The TTL bounds
// staleness after admin edits; list keys are too many to invalidate
// individually.
const currentAffairListCacheTTL = 5 * time.Minute

var validAffairKinds = map[string]bool{
	constants.AffairKindLatest:  true,
	constants.AffairKindMonthly: true,
	constants.AffairKindState:   true,
	constants.AffairKindSports:  true,
}

// CurrentAffairService manages current-affairs articles. Every variant
// shares one table; kind-specific fields live in the payload.
type CurrentAffairService struct {
	repo repository.CurrentAffairRepository
}

// NewCurrentAffairService creates the current-affairs service
func NewCurrentAffairService(repo repository.CurrentAffairRepository) *CurrentAffairService {
	return &CurrentAffairService{repo: repo}
}

// CurrentAffairInput carries create/update fields for an article
type CurrentAffairInput struct {
	Kind        string
	AffairDate  time.Time
	Title       string
	Description string
	FullContent string
	Thumbnail   string
	CategoryIDs []uint
	LanguageIDs []uint
	Payload     map[string]interface{}
	IsActive    bool
}

type currentAffairPage struct {
	Items []models.CurrentAffair `json:"items"`
	Total int64                  `json:"total"`
}

// List returns articles matching the filter. Plain active listings, the
// public read path, are served from redis; searches and date-filtered or
// admin queries go straight to the database.
func (s *CurrentAffairService) List(filter repository.CurrentAffairListFilter) ([]models.CurrentAffair, int64, error) {
	key, cacheable := currentAffairListCacheKey(filter)
	if cacheable {
		var page currentAffairPage
		if hit, err := cache.GetJSON(context.Background(), key, &page); err == nil && hit {
			return page.Items, page.Total, nil
		}
	}

	items, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if cacheable {
		if err := cache.SetJSON(context.Background(), key, currentAffairPage{Items: items, Total: total}, currentAffairListCacheTTL); err != nil {
			logger.Warnw("current_affair_cache_set_failed", "key", key, "error", err)
		}
	}
	return items, total, nil
}

func currentAffairListCacheKey(filter repository.CurrentAffairListFilter) (string, bool) {
	if !filter.OnlyActive || filter.Search != "" || filter.DateFrom != nil || filter.DateTo != nil {
		return "", false
	}
	return fmt.Sprintf("current_affairs:%s:%d:%d:%d", filter.Kind, filter.CategoryID, filter.Page, filter.PageSize), true
}

// Get returns one article
func (s *CurrentAffairService) Get(id uint) (*models.CurrentAffair, error) {
	affair, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if affair == nil {
		return nil, ErrNotFound
	}
	return affair, nil
}

// Create creates an article
func (s *CurrentAffairService) Create(input CurrentAffairInput) (*models.CurrentAffair, error) {
	if err := validateCurrentAffairInput(input); err != nil {
		return nil, err
	}
	affair := models.CurrentAffair{}
	applyCurrentAffairInput(&affair, input)
	if err := s.repo.Create(&affair); err != nil {
		return nil, err
	}
	return &affair, nil
}

// Update updates an article
func (s *CurrentAffairService) Update(id uint, input CurrentAffairInput) (*models.CurrentAffair, error) {
	affair, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if affair == nil {
		return nil, ErrNotFound
	}
	if err := validateCurrentAffairInput(input); err != nil {
		return nil, err
	}
	applyCurrentAffairInput(affair, input)
	if err := s.repo.Update(affair); err != nil {
		return nil, err
	}
	return affair, nil
}

// Delete removes an article
func (s *CurrentAffairService) Delete(id uint) error {
	affair, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if affair == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func validateCurrentAffairInput(input CurrentAffairInput) error {
	if strings.TrimSpace(input.Title) == "" || input.AffairDate.IsZero() {
		return ErrValidation
	}
	if !validAffairKinds[input.Kind] {
		return ErrValidation
	}
	return nil
}

func applyCurrentAffairInput(affair *models.CurrentAffair, input CurrentAffairInput) {
	affair.Kind = input.Kind
	affair.AffairDate = input.AffairDate
	affair.Title = strings.TrimSpace(input.Title)
	affair.Description = input.Description
	affair.FullContent = input.FullContent
	affair.Thumbnail = input.Thumbnail
	affair.CategoryIDs = input.CategoryIDs
	affair.LanguageIDs = input.LanguageIDs
	affair.Payload = models.JSON(input.Payload)
	affair.IsActive = input.IsActive
}
