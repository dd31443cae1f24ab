package services

import (
	"sort"

	"folio/app/models"
)

// DefaultPreviewCount is how many cards a section shows before "view more".
const DefaultPreviewCount = 3

// Split returns the first n items and the remainder. A non-positive n
// shows everything.
func Split[T any](items []T, n int) (shown, rest []T) {
	if n <= 0 || len(items) <= n {
		return items, nil
	}
	return items[:n], items[n:]
}

// FeaturedFirst returns a copy of projects with featured ones moved to
// the front. Order is otherwise kept.
func FeaturedFirst(projects []models.Project) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Featured && !out[j].Featured
	})
	return out
}
