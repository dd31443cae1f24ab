package repositories

import (
	"log"
	"sort"

	"folio/app/content"
	"folio/app/models"
)

// JSONProjectRepository implements ProjectRepository over a JSON fixture
type JSONProjectRepository struct {
	source *content.Source[models.Project]
}

// NewJSONProjectRepository creates a project repository reading path
func NewJSONProjectRepository(path string) *JSONProjectRepository {
	return &JSONProjectRepository{source: content.NewSource[models.Project](path, content.ProjectKeys)}
}

// List returns projects in file order, skipping records without a usable id
func (r *JSONProjectRepository) List() ([]models.Project, error) {
	records, err := r.source.Load()
	if err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(records))
	for _, p := range records {
		if !p.ID.Valid() {
			skipped("project", p.ID, p.Title)
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// GetByID retrieves a project by ID
func (r *JSONProjectRepository) GetByID(id models.RecordID) (*models.Project, error) {
	projects, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, ErrNotFound
}

// JSONBlogRepository implements BlogRepository over a JSON fixture
type JSONBlogRepository struct {
	source *content.Source[models.BlogPost]
}

// NewJSONBlogRepository creates a blog repository reading path
func NewJSONBlogRepository(path string) *JSONBlogRepository {
	return &JSONBlogRepository{source: content.NewSource[models.BlogPost](path, content.BlogKeys)}
}

// List returns posts newest first. Posts without a parseable date keep
// their file order after the dated ones.
func (r *JSONBlogRepository) List() ([]models.BlogPost, error) {
	records, err := r.source.Load()
	if err != nil {
		return nil, err
	}
	posts := make([]models.BlogPost, 0, len(records))
	for _, p := range records {
		if !p.ID.Valid() {
			skipped("post", p.ID, p.Title)
			continue
		}
		posts = append(posts, p)
	}
	SortNewestFirst(posts)
	return posts, nil
}

// GetByID retrieves a post by ID
func (r *JSONBlogRepository) GetByID(id models.RecordID) (*models.BlogPost, error) {
	posts, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, ErrNotFound
}

func skipped(kind string, id models.RecordID, title string) {
	log.Printf("Skipping %s %q with invalid id %q", kind, title, id)
}

// SortNewestFirst orders posts by publication date, descending.
func SortNewestFirst(posts []models.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, iok := posts[i].PublishedAt()
		tj, jok := posts[j].PublishedAt()
		switch {
		case iok && jok:
			return ti.After(tj)
		case iok:
			return true
		default:
			return false
		}
	})
}
