package services

import (
	"errors"
	"fmt"
	"html/template"
	"log"

	"folio/app/content"
	"folio/app/markdown"
	"folio/app/models"
	"folio/app/repositories"
)

// Section is one listing on the overview page. When the underlying
// fixture failed to load, Err is set and the listing is empty.
type Section[T any] struct {
	Shown    []T
	Rest     []T
	Expanded bool
	Err      error
}

// HasMore reports whether a "view more" control is needed.
func (s Section[T]) HasMore() bool { return len(s.Rest) > 0 }

// Total is the number of records in the section.
func (s Section[T]) Total() int { return len(s.Shown) + len(s.Rest) }

// Overview is everything the portfolio page renders.
type Overview struct {
	Projects Section[models.Project]
	Blogs    Section[models.BlogPost]
}

// Expand selects which sections render in full.
type Expand struct {
	Projects bool
	Blogs    bool
}

// RenderedPost is a blog post with its body converted to HTML.
type RenderedPost struct {
	models.BlogPost
	Body template.HTML `json:"body_html,omitempty"`
}

// CatalogService handles read access to projects and blog posts
type CatalogService struct {
	projectRepo  repositories.ProjectRepository
	blogRepo     repositories.BlogRepository
	renderer     *markdown.Renderer
	previewCount int
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(projectRepo repositories.ProjectRepository, blogRepo repositories.BlogRepository, previewCount int) *CatalogService {
	if previewCount < 1 {
		previewCount = DefaultPreviewCount
	}
	return &CatalogService{
		projectRepo:  projectRepo,
		blogRepo:     blogRepo,
		renderer:     markdown.NewRenderer(),
		previewCount: previewCount,
	}
}

// Overview loads both listings. A failure in one does not hide the other.
func (s *CatalogService) Overview(expand Expand) *Overview {
	ov := &Overview{}

	projects, err := s.projectRepo.List()
	if err != nil {
		log.Printf("Failed to load projects: %v", err)
		ov.Projects.Err = err
	} else {
		ov.Projects = section(FeaturedFirst(projects), s.previewCount, expand.Projects)
	}

	posts, err := s.blogRepo.List()
	if err != nil {
		log.Printf("Failed to load blog posts: %v", err)
		ov.Blogs.Err = err
	} else {
		ov.Blogs = section(posts, s.previewCount, expand.Blogs)
	}

	return ov
}

// Projects returns every project.
func (s *CatalogService) Projects() ([]models.Project, error) {
	return s.projectRepo.List()
}

// Blogs returns every blog post, newest first.
func (s *CatalogService) Blogs() ([]models.BlogPost, error) {
	return s.blogRepo.List()
}

// Project retrieves a project by ID
func (s *CatalogService) Project(id models.RecordID) (*models.Project, error) {
	if !id.Valid() {
		return nil, repositories.ErrNotFound
	}
	return s.projectRepo.GetByID(id)
}

// Blog retrieves a post by ID and renders its markdown body
func (s *CatalogService) Blog(id models.RecordID) (*RenderedPost, error) {
	if !id.Valid() {
		return nil, repositories.ErrNotFound
	}
	post, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	body, err := s.renderer.Render(post.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to render post %s: %w", id, err)
	}
	return &RenderedPost{BlogPost: *post, Body: body}, nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}

// IsUnavailable reports whether err means the fixture could not be loaded.
func IsUnavailable(err error) bool {
	return errors.Is(err, content.ErrUnavailable) || errors.Is(err, content.ErrMalformed)
}

func section[T any](items []T, n int, expanded bool) Section[T] {
	if expanded {
		return Section[T]{Shown: items, Expanded: true}
	}
	shown, rest := Split(items, n)
	return Section[T]{Shown: shown, Rest: rest}
}
