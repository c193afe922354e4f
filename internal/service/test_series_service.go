package service

import (
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// TestSeriesService manages test series and their tests, sections and
// questions. Question content and solution videos are entitlement-gated
// unless the test is a free preview.
type TestSeriesService struct {
	repo        repository.TestSeriesRepository
	entitlement *EntitlementService
}

// NewTestSeriesService creates the test series service
func NewTestSeriesService(repo repository.TestSeriesRepository, entitlement *EntitlementService) *TestSeriesService {
	return &TestSeriesService{repo: repo, entitlement: entitlement}
}

// TestSeriesInput carries create/update fields for a series
type TestSeriesInput struct {
	Name           string
	Description    string
	Thumbnail      string
	CategoryIDs    []uint
	SubCategoryIDs []uint
	LanguageIDs    []uint
	MaxTests       int
	ValidityMonths int
	BasePrice      models.Money
	Discount       DiscountInput
	IsActive       bool
	SortOrder      int
}

// TestInput carries create/update fields for a test
type TestInput struct {
	Name             string
	DurationMinutes  int
	TotalMarks       int
	PositiveMarks    float64
	NegativeMarks    float64
	StartsAt         *time.Time
	EndsAt           *time.Time
	Instructions     string
	SolutionVideoURL string
	IsFree           bool
	SortOrder        int
}

// TestSectionInput carries create/update fields for a section
type TestSectionInput struct {
	Title     string
	SortOrder int
}

// TestQuestionInput carries create/update fields for a question
type TestQuestionInput struct {
	Number        int
	Text          string
	Options       []string
	CorrectOption int
	Explanation   string
}

// List returns series matching the filter
func (s *TestSeriesService) List(filter repository.CatalogListFilter) ([]models.TestSeries, int64, error) {
	return s.repo.List(filter)
}

// Get returns one series without its tests
func (s *TestSeriesService) Get(id uint) (*models.TestSeries, error) {
	series, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, ErrNotFound
	}
	return series, nil
}

// GetWithTests returns one series with its test list
func (s *TestSeriesService) GetWithTests(id uint) (*models.TestSeries, error) {
	series, err := s.repo.GetByIDWithTests(id)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, ErrNotFound
	}
	return series, nil
}

// Create creates a series
func (s *TestSeriesService) Create(input TestSeriesInput) (*models.TestSeries, error) {
	if err := validateTestSeriesInput(input); err != nil {
		return nil, err
	}
	series := models.TestSeries{}
	applyTestSeriesInput(&series, input)
	if err := s.repo.Create(&series); err != nil {
		return nil, err
	}
	return &series, nil
}

// Update updates a series
func (s *TestSeriesService) Update(id uint, input TestSeriesInput) (*models.TestSeries, error) {
	series, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, ErrNotFound
	}
	if err := validateTestSeriesInput(input); err != nil {
		return nil, err
	}
	applyTestSeriesInput(series, input)
	if err := s.repo.Update(series); err != nil {
		return nil, err
	}
	return series, nil
}

// Delete removes a series
func (s *TestSeriesService) Delete(id uint) error {
	series, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if series == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// ListTests returns the tests of a series
func (s *TestSeriesService) ListTests(seriesID uint) ([]models.Test, error) {
	return s.repo.ListTests(seriesID)
}

// CreateTest adds a test to a series
func (s *TestSeriesService) CreateTest(seriesID uint, input TestInput) (*models.Test, error) {
	series, err := s.repo.GetByID(seriesID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	test := models.Test{SeriesID: seriesID}
	applyTestInput(&test, input)
	if err := s.repo.CreateTest(&test); err != nil {
		return nil, err
	}
	return &test, nil
}

// UpdateTest updates a test
func (s *TestSeriesService) UpdateTest(id uint, input TestInput) (*models.Test, error) {
	test, err := s.repo.GetTestByID(id)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}
	applyTestInput(test, input)
	if err := s.repo.UpdateTest(test); err != nil {
		return nil, err
	}
	return test, nil
}

// DeleteTest removes a test
func (s *TestSeriesService) DeleteTest(id uint) error {
	test, err := s.repo.GetTestByID(id)
	if err != nil {
		return err
	}
	if test == nil {
		return ErrNotFound
	}
	return s.repo.DeleteTest(id)
}

// GetTestForUser returns a test with sections and questions for a user
// with access. Free preview tests are open to everyone.
func (s *TestSeriesService) GetTestForUser(userID, testID uint) (*models.Test, error) {
	test, err := s.repo.GetTestWithQuestions(testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrNotFound
	}
	if !test.IsFree {
		ok, err := s.entitlement.HasAccess(userID, constants.ItemTypeTestSeries, test.SeriesID, time.Now())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrEntitlementRequired
		}
	}
	return test, nil
}

// SolutionVideoForUser returns the solution video URL, entitlement-gated
// even for free preview tests
func (s *TestSeriesService) SolutionVideoForUser(userID, testID uint) (string, error) {
	test, err := s.repo.GetTestByID(testID)
	if err != nil {
		return "", err
	}
	if test == nil {
		return "", ErrNotFound
	}
	ok, err := s.entitlement.HasAccess(userID, constants.ItemTypeTestSeries, test.SeriesID, time.Now())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrEntitlementRequired
	}
	return test.SolutionVideoURL, nil
}

// CreateSection adds a section to a test
func (s *TestSeriesService) CreateSection(testID uint, input TestSectionInput) (*models.TestSection, error) {
	test, err := s.repo.GetTestByID(testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrValidation
	}
	section := models.TestSection{
		TestID:    testID,
		Title:     strings.TrimSpace(input.Title),
		SortOrder: input.SortOrder,
	}
	if err := s.repo.CreateSection(&section); err != nil {
		return nil, err
	}
	return &section, nil
}

// UpdateSection updates a section
func (s *TestSeriesService) UpdateSection(id uint, input TestSectionInput) (*models.TestSection, error) {
	section, err := s.repo.GetSectionByID(id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrValidation
	}
	section.Title = strings.TrimSpace(input.Title)
	section.SortOrder = input.SortOrder
	if err := s.repo.UpdateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection removes a section
func (s *TestSeriesService) DeleteSection(id uint) error {
	section, err := s.repo.GetSectionByID(id)
	if err != nil {
		return err
	}
	if section == nil {
		return ErrNotFound
	}
	return s.repo.DeleteSection(id)
}

// CreateQuestion adds a question to a section
func (s *TestSeriesService) CreateQuestion(sectionID uint, input TestQuestionInput) (*models.TestQuestion, error) {
	section, err := s.repo.GetSectionByID(sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrNotFound
	}
	if err := validateTestQuestionInput(input); err != nil {
		return nil, err
	}
	question := models.TestQuestion{SectionID: sectionID}
	applyTestQuestionInput(&question, input)
	if err := s.repo.CreateQuestion(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

// UpdateQuestion updates a question
func (s *TestSeriesService) UpdateQuestion(id uint, input TestQuestionInput) (*models.TestQuestion, error) {
	question, err := s.repo.GetQuestionByID(id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrNotFound
	}
	if err := validateTestQuestionInput(input); err != nil {
		return nil, err
	}
	applyTestQuestionInput(question, input)
	if err := s.repo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes a question
func (s *TestSeriesService) DeleteQuestion(id uint) error {
	question, err := s.repo.GetQuestionByID(id)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrNotFound
	}
	return s.repo.DeleteQuestion(id)
}

func validateTestSeriesInput(input TestSeriesInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrValidation
	}
	if input.BasePrice.IsNegative() || input.ValidityMonths < 0 || input.MaxTests < 0 {
		return ErrValidation
	}
	return validateDiscountInput(input.Discount)
}

func applyTestSeriesInput(series *models.TestSeries, input TestSeriesInput) {
	series.Name = strings.TrimSpace(input.Name)
	series.Description = input.Description
	series.Thumbnail = input.Thumbnail
	series.CategoryIDs = input.CategoryIDs
	series.SubCategoryIDs = input.SubCategoryIDs
	series.LanguageIDs = input.LanguageIDs
	series.MaxTests = input.MaxTests
	series.ValidityMonths = input.ValidityMonths
	series.BasePrice = input.BasePrice
	series.DiscountType = input.Discount.Type
	series.DiscountValue = input.Discount.Value
	series.DiscountValidUntil = input.Discount.ValidUntil
	series.IsActive = input.IsActive
	series.SortOrder = input.SortOrder
}

func applyTestInput(test *models.Test, input TestInput) {
	test.Name = strings.TrimSpace(input.Name)
	test.DurationMinutes = input.DurationMinutes
	test.TotalMarks = input.TotalMarks
	test.PositiveMarks = input.PositiveMarks
	test.NegativeMarks = input.NegativeMarks
	test.StartsAt = input.StartsAt
	test.EndsAt = input.EndsAt
	test.Instructions = input.Instructions
	test.SolutionVideoURL = input.SolutionVideoURL
	test.IsFree = input.IsFree
	test.SortOrder = input.SortOrder
}

func validateTestQuestionInput(input TestQuestionInput) error {
	if strings.TrimSpace(input.Text) == "" || len(input.Options) < 2 {
		return ErrValidation
	}
	if input.CorrectOption < 0 || input.CorrectOption >= len(input.Options) {
		return ErrValidation
	}
	return nil
}

func applyTestQuestionInput(question *models.TestQuestion, input TestQuestionInput) {
	question.Number = input.Number
	question.Text = strings.TrimSpace(input.Text)
	question.Options = input.Options
	question.CorrectOption = input.CorrectOption
	question.Explanation = input.Explanation
}
