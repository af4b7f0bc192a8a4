package catalog

import (
	"strings"

	"github.com/terra-clan/catalogue-browser/internal/models"
)

// Store holds the immutable course collection loaded at startup.
// It is safe for concurrent readers since nothing mutates it after New.
type Store struct {
	courses []models.Course
	byID    map[int]int
}

// New creates a store over courses, keeping their order.
// Callers must not modify the slice afterwards.
func New(courses []models.Course) *Store {
	byID := make(map[int]int, len(courses))
	for i, c := range courses {
		byID[c.ID] = i
	}
	return &Store{courses: courses, byID: byID}
}

// Search returns every course whose title or description contains term,
// case-insensitively, in catalogue order. An empty term matches everything.
func (s *Store) Search(term string) []models.Course {
	needle := strings.ToLower(term)
	result := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if strings.Contains(strings.ToLower(c.Title), needle) ||
			strings.Contains(strings.ToLower(c.Description), needle) {
			result = append(result, c)
		}
	}
	return result
}

// Get returns a course by ID
func (s *Store) Get(id int) (models.Course, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Course{}, false
	}
	return s.courses[i], true
}

// List returns all courses in catalogue order
func (s *Store) List() []models.Course {
	return s.Search("")
}

// Len returns the number of courses
func (s *Store) Len() int {
	return len(s.courses)
}
