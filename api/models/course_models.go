// api/models/course_models.go
package models

import (
	"time"

	"github.com/versehub/versehub/internal/domain"
)

// CourseRequest is the body for creating or updating a course
type CourseRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Category    string `json:"category" binding:"required"`
	Level       string `json:"level" binding:"required,oneof=beginner intermediate advanced"`
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Instructor  string    `json:"instructor"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseListResponse is a paginated course listing
type CourseListResponse struct {
	Items    []CourseResponse `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// NewCourseResponse builds the public view of a course record.
func NewCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		Level:       course.Level,
		Instructor:  course.Instructor,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}
