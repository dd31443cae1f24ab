package mock

import (
	"sort"
	"sync"

	"folio/app/models"
	"folio/app/repositories"
)

type ProjectRepository struct {
	Projects []models.Project
	Err      error
}

type BlogRepository struct {
	Posts []models.BlogPost
	Err   error
}

type SubmissionRepository struct {
	submissions map[int]*models.ContactSubmission
	nextID      int
	mutex       sync.RWMutex
}

func NewProjectRepository(projects ...models.Project) *ProjectRepository {
	return &ProjectRepository{Projects: projects}
}

func NewBlogRepository(posts ...models.BlogPost) *BlogRepository {
	return &BlogRepository{Posts: posts}
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{
		submissions: make(map[int]*models.ContactSubmission),
		nextID:      1,
	}
}

// ProjectRepository implementation
func (m *ProjectRepository) List() ([]models.Project, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Project(nil), m.Projects...), nil
}

func (m *ProjectRepository) GetByID(id models.RecordID) (*models.Project, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Projects {
		if m.Projects[i].ID == id {
			p := m.Projects[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// BlogRepository implementation
func (m *BlogRepository) List() ([]models.BlogPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	posts := append([]models.BlogPost(nil), m.Posts...)
	repositories.SortNewestFirst(posts)
	return posts, nil
}

func (m *BlogRepository) GetByID(id models.RecordID) (*models.BlogPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Posts {
		if m.Posts[i].ID == id {
			p := m.Posts[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// SubmissionRepository implementation
func (m *SubmissionRepository) Create(submission *models.ContactSubmission) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	submission.ID = m.nextID
	m.nextID++
	stored := *submission
	m.submissions[submission.ID] = &stored
	return nil
}

func (m *SubmissionRepository) GetByID(id int) (*models.ContactSubmission, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	s, exists := m.submissions[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (m *SubmissionRepository) GetByReference(ref string) (*models.ContactSubmission, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, s := range m.submissions {
		if s.Reference == ref {
			out := *s
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *SubmissionRepository) List(limit, offset int) ([]*models.ContactSubmission, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	all := make([]*models.ContactSubmission, 0, len(m.submissions))
	for _, s := range m.submissions {
		out := *s
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return []*models.ContactSubmission{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (m *SubmissionRepository) Update(submission *models.ContactSubmission) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.submissions[submission.ID]; !exists {
		return repositories.ErrNotFound
	}
	stored := *submission
	m.submissions[submission.ID] = &stored
	return nil
}

func (m *SubmissionRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.submissions[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.submissions, id)
	return nil
}
