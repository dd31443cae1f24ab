package services

import (
	"errors"
	"fmt"
	"testing"

	"folio/app/content"
	"folio/app/models"
	"folio/app/repositories"
	"folio/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProjects(n int) []models.Project {
	projects := make([]models.Project, n)
	for i := range projects {
		projects[i] = models.Project{
			ID:    models.RecordID(fmt.Sprint(i + 1)),
			Title: fmt.Sprintf("Project %d", i+1),
		}
	}
	return projects
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		items     []int
		n         int
		wantShown []int
		wantRest  []int
	}{
		{"fewer than preview", []int{1, 2}, 3, []int{1, 2}, nil},
		{"exactly preview", []int{1, 2, 3}, 3, []int{1, 2, 3}, nil},
		{"more than preview", []int{1, 2, 3, 4, 5}, 3, []int{1, 2, 3}, []int{4, 5}},
		{"empty", nil, 3, nil, nil},
		{"zero count shows everything", []int{1, 2}, 0, []int{1, 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown, rest := Split(tt.items, tt.n)
			assert.Equal(t, len(tt.wantShown), len(shown))
			assert.Equal(t, len(tt.wantRest), len(rest))
			for i := range tt.wantShown {
				assert.Equal(t, tt.wantShown[i], shown[i])
			}
			for i := range tt.wantRest {
				assert.Equal(t, tt.wantRest[i], rest[i])
			}
		})
	}
}

func TestCatalogService(t *testing.T) {
	projectRepo := mock.NewProjectRepository(makeProjects(5)...)
	blogRepo := mock.NewBlogRepository(
		models.BlogPost{ID: "a", Title: "Older", Date: "2023-01-01", Content: "# Hello\n\nBody text."},
		models.BlogPost{ID: "b", Title: "Newer", Date: "2024-06-01", Content: "Plain."},
	)
	service := NewCatalogService(projectRepo, blogRepo, DefaultPreviewCount)

	t.Run("overview previews three projects", func(t *testing.T) {
		ov := service.Overview(Expand{})
		require.NoError(t, ov.Projects.Err)
		assert.Len(t, ov.Projects.Shown, 3)
		assert.Len(t, ov.Projects.Rest, 2)
		assert.True(t, ov.Projects.HasMore())
		assert.Equal(t, 5, ov.Projects.Total())
		assert.Equal(t, models.RecordID("4"), ov.Projects.Rest[0].ID)

		assert.Len(t, ov.Blogs.Shown, 2)
		assert.False(t, ov.Blogs.HasMore())
		assert.Equal(t, "Newer", ov.Blogs.Shown[0].Title)
	})

	t.Run("expanded section shows everything", func(t *testing.T) {
		ov := service.Overview(Expand{Projects: true})
		assert.Len(t, ov.Projects.Shown, 5)
		assert.Empty(t, ov.Projects.Rest)
		assert.True(t, ov.Projects.Expanded)
	})

	t.Run("failed section does not hide the other", func(t *testing.T) {
		broken := &mock.ProjectRepository{Err: fmt.Errorf("read projects: %w", content.ErrUnavailable)}
		svc := NewCatalogService(broken, blogRepo, DefaultPreviewCount)

		ov := svc.Overview(Expand{})
		assert.True(t, errors.Is(ov.Projects.Err, content.ErrUnavailable))
		assert.Empty(t, ov.Projects.Shown)
		assert.NoError(t, ov.Blogs.Err)
		assert.Len(t, ov.Blogs.Shown, 2)
	})

	t.Run("get project", func(t *testing.T) {
		p, err := service.Project("2")
		require.NoError(t, err)
		assert.Equal(t, "Project 2", p.Title)

		_, err = service.Project("99")
		assert.True(t, IsNotFound(err))

		_, err = service.Project("")
		assert.Equal(t, repositories.ErrNotFound, err)
	})

	t.Run("get blog renders markdown", func(t *testing.T) {
		post, err := service.Blog("a")
		require.NoError(t, err)
		assert.Contains(t, string(post.Body), "<h1")
		assert.Contains(t, string(post.Body), "Body text.")
		assert.Equal(t, "Older", post.Title)
	})

	t.Run("preview count defaults", func(t *testing.T) {
		svc := NewCatalogService(projectRepo, blogRepo, 0)
		ov := svc.Overview(Expand{})
		assert.Len(t, ov.Projects.Shown, DefaultPreviewCount)
	})
}

func TestFeaturedFirst(t *testing.T) {
	in := []models.Project{
		{ID: "1"},
		{ID: "2", Featured: true},
		{ID: "3"},
		{ID: "4", Featured: true},
	}
	out := FeaturedFirst(in)

	var ids []models.RecordID
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []models.RecordID{"2", "4", "1", "3"}, ids)
	assert.Equal(t, models.RecordID("1"), in[0].ID, "input is not reordered")
}

func TestOverviewPreviewsFeaturedProjects(t *testing.T) {
	projectRepo := mock.NewProjectRepository(
		models.Project{ID: "1"}, models.Project{ID: "2"}, models.Project{ID: "3"},
		models.Project{ID: "4", Featured: true},
	)
	svc := NewCatalogService(projectRepo, mock.NewBlogRepository(), DefaultPreviewCount)

	ov := svc.Overview(Expand{})
	require.NoError(t, ov.Projects.Err)
	assert.Equal(t, models.RecordID("4"), ov.Projects.Shown[0].ID)
	assert.Equal(t, models.RecordID("3"), ov.Projects.Rest[0].ID)

	all, err := svc.Projects()
	require.NoError(t, err)
	assert.Equal(t, models.RecordID("1"), all[0].ID)
}
