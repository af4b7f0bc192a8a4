package navigation

import "github.com/terra-clan/catalogue-browser/internal/models"

// Catalog is the read-only course collection the controller navigates
type Catalog interface {
	Search(term string) []models.Course
	Get(id int) (models.Course, bool)
}
