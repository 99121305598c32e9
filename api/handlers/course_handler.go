// api/handlers/course_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/versehub/versehub/api/middleware"
	"github.com/versehub/versehub/api/models"
	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/domain"
	"github.com/versehub/versehub/internal/events"
	"github.com/versehub/versehub/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CourseHandler holds dependencies for course handlers.
type CourseHandler struct {
	Courses *store.CourseStore
	Events  *events.Broker
}

func NewCourseHandler(courses *store.CourseStore, broker *events.Broker) *CourseHandler {
	return &CourseHandler{
		Courses: courses,
		Events:  broker,
	}
}

// List returns a paginated course listing. Public.
func (h *CourseHandler) List(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), 1)
	pageSize := parsePositiveInt(c.Query("page_size"), defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	courses, total := h.Courses.List(page, pageSize)
	items := make([]models.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, models.NewCourseResponse(course))
	}

	c.JSON(http.StatusOK, models.CourseListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get returns one course by ID. Public.
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Courses.Get(c.Param("course_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.NewCourseResponse(course))
}

// Create stores a new course with the acting identity as instructor.
func (h *CourseHandler) Create(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	var req models.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Course create binding error: %v", err)
		_ = c.Error(err)
		return
	}

	course := h.Courses.Create(&domain.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Instructor:  record.Username,
	})

	h.Events.Publish("course.created", map[string]any{
		"course_id": course.ID,
		"title":     course.Title,
	})

	c.JSON(http.StatusCreated, models.NewCourseResponse(course))
}

// Update overwrites a course. Only the instructor or an admin may update.
func (h *CourseHandler) Update(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	courseID := c.Param("course_id")
	existing, err := h.Courses.Get(courseID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if existing.Instructor != record.Username && !record.HasScope("admin") {
		_ = c.Error(auth.ErrForbidden)
		return
	}

	var req models.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	course, err := h.Courses.Update(courseID, &domain.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.NewCourseResponse(course))
}

// Delete removes a course. Only the instructor or an admin may delete.
func (h *CourseHandler) Delete(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	courseID := c.Param("course_id")
	existing, err := h.Courses.Get(courseID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if existing.Instructor != record.Username && !record.HasScope("admin") {
		_ = c.Error(auth.ErrForbidden)
		return
	}

	if err := h.Courses.Delete(courseID); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

// parsePositiveInt parses a query value, falling back for anything that is
// not a positive integer.
func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
