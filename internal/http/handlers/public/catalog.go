package public

import (
	"errors"
	"strconv"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
)

func catalogFilterFromQuery(c *gin.Context) repository.CatalogListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	subCategoryID, _ := strconv.ParseUint(c.Query("sub_category_id"), 10, 64)
	languageID, _ := strconv.ParseUint(c.Query("language_id"), 10, 64)

	return repository.CatalogListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    uint(categoryID),
		SubCategoryID: uint(subCategoryID),
		LanguageID:    uint(languageID),
		Search:        c.Query("search"),
		OnlyActive:    true,
	}
}

func paginationFor(filter repository.CatalogListFilter, total int64) response.Pagination {
	return response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: (total + int64(filter.PageSize) - 1) / int64(filter.PageSize),
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", err)
		return 0, false
	}
	return uint(id), true
}

// ListCourses returns active courses
func (h *Handler) ListCourses(c *gin.Context) {
	filter := catalogFilterFromQuery(c)
	courses, total, err := h.CourseService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list courses", err)
		return
	}
	response.SuccessWithPage(c, courses, paginationFor(filter, total))
}

// GetCourse returns one course
func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	course, err := h.CourseService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "course not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load course", err)
		return
	}
	if !course.IsActive {
		respondError(c, response.CodeNotFound, "course not found", nil)
		return
	}
	response.Success(c, course)
}

// ListEBooks returns active e-books
func (h *Handler) ListEBooks(c *gin.Context) {
	filter := catalogFilterFromQuery(c)
	ebooks, total, err := h.EBookService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list e-books", err)
		return
	}
	response.SuccessWithPage(c, ebooks, paginationFor(filter, total))
}

// GetEBook returns one e-book
func (h *Handler) GetEBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	ebook, err := h.EBookService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "e-book not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load e-book", err)
		return
	}
	if !ebook.IsActive {
		respondError(c, response.CodeNotFound, "e-book not found", nil)
		return
	}
	response.Success(c, ebook)
}

// DownloadEBook hands out the file URL for free or purchased e-books
func (h *Handler) DownloadEBook(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	url, err := h.EBookService.DownloadURL(uid, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "e-book not found", nil)
		case errors.Is(err, service.ErrEntitlementRequired):
			respondError(c, response.CodeForbidden, "purchase required to download this e-book", nil)
		default:
			respondError(c, response.CodeInternal, "failed to resolve download", err)
		}
		return
	}

	response.Success(c, gin.H{"file_url": url})
}

// ListPublications returns active publications
func (h *Handler) ListPublications(c *gin.Context) {
	filter := catalogFilterFromQuery(c)
	publications, total, err := h.PublicationService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list publications", err)
		return
	}
	response.SuccessWithPage(c, publications, paginationFor(filter, total))
}

// GetPublication returns one publication
func (h *Handler) GetPublication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	publication, err := h.PublicationService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "publication not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load publication", err)
		return
	}
	if !publication.IsActive {
		respondError(c, response.CodeNotFound, "publication not found", nil)
		return
	}
	response.Success(c, publication)
}

// ListTestSeries returns active test series
func (h *Handler) ListTestSeries(c *gin.Context) {
	filter := catalogFilterFromQuery(c)
	series, total, err := h.TestSeriesService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list test series", err)
		return
	}
	response.SuccessWithPage(c, series, paginationFor(filter, total))
}

// GetTestSeries returns one series with its tests
func (h *Handler) GetTestSeries(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	series, err := h.TestSeriesService.GetWithTests(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "test series not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load test series", err)
		return
	}
	if !series.IsActive {
		respondError(c, response.CodeNotFound, "test series not found", nil)
		return
	}
	response.Success(c, series)
}

// GetTest returns a test with its sections and questions. Paid tests
// require an entitlement to the parent series; free tests are open.
func (h *Handler) GetTest(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	test, err := h.TestSeriesService.GetTestForUser(uid, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "test not found", nil)
		case errors.Is(err, service.ErrEntitlementRequired):
			respondError(c, response.CodeForbidden, "purchase the test series to access this test", nil)
		default:
			respondError(c, response.CodeInternal, "failed to load test", err)
		}
		return
	}

	response.Success(c, test)
}

// GetTestSolutionVideo returns the solution video URL, entitlement gated
func (h *Handler) GetTestSolutionVideo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	url, err := h.TestSeriesService.SolutionVideoForUser(uid, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "test not found", nil)
		case errors.Is(err, service.ErrEntitlementRequired):
			respondError(c, response.CodeForbidden, "purchase the test series to watch solutions", nil)
		default:
			respondError(c, response.CodeInternal, "failed to resolve solution video", err)
		}
		return
	}

	response.Success(c, gin.H{"solution_video_url": url})
}
