// internal/store/courses.go
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/versehub/versehub/internal/domain"
)

var (
	ErrCourseNotFound = errors.New("course not found")
)

// CourseStore holds tutorial courses in process memory, mirroring the
// credential store's lifecycle: seeded at startup, reset on restart.
type CourseStore struct {
	mu      sync.RWMutex
	courses map[string]*domain.Course
}

func NewCourseStore() *CourseStore {
	return &CourseStore{
		courses: make(map[string]*domain.Course),
	}
}

// Seed loads a couple of sample courses so list endpoints have content on
// a fresh start.
func (s *CourseStore) Seed() {
	samples := []*domain.Course{
		{Title: "Getting Started with Web APIs", Description: "Routing, handlers and JSON basics.", Category: "web", Level: "beginner", Instructor: "admin"},
		{Title: "Token-Based Authentication", Description: "Sessions, bearer tokens and scopes.", Category: "security", Level: "intermediate", Instructor: "admin"},
	}
	for _, c := range samples {
		s.Create(c)
	}
}

// Create assigns an ID and timestamps, then stores the course.
func (s *CourseStore) Create(course *domain.Course) *domain.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	course.ID = uuid.New().String()
	course.CreatedAt = now
	course.UpdatedAt = now
	s.courses[course.ID] = copyCourse(course)
	return copyCourse(course)
}

// Get returns the course with the given ID.
func (s *CourseStore) Get(id string) (*domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return copyCourse(course), nil
}

// List returns a page of courses ordered by creation time (newest first),
// plus the total count for pagination metadata.
func (s *CourseStore) List(page, pageSize int) ([]*domain.Course, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Course, 0, len(s.courses))
	for _, c := range s.courses {
		all = append(all, copyCourse(c))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return []*domain.Course{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total
}

// Update overwrites the mutable fields of an existing course.
func (s *CourseStore) Update(id string, update *domain.Course) (*domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	course.Title = update.Title
	course.Description = update.Description
	course.Category = update.Category
	course.Level = update.Level
	course.UpdatedAt = time.Now().UTC()
	return copyCourse(course), nil
}

// Delete removes a course by ID.
func (s *CourseStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return ErrCourseNotFound
	}
	delete(s.courses, id)
	return nil
}

func copyCourse(course *domain.Course) *domain.Course {
	clone := *course
	return &clone
}
