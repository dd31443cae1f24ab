package repositories

import "folio/app/models"

// ProjectRepository defines read access to portfolio projects
type ProjectRepository interface {
	List() ([]models.Project, error)
	GetByID(id models.RecordID) (*models.Project, error)
}

// BlogRepository defines read access to blog posts
type BlogRepository interface {
	List() ([]models.BlogPost, error)
	GetByID(id models.RecordID) (*models.BlogPost, error)
}

// SubmissionRepository defines the interface for contact submission storage
type SubmissionRepository interface {
	Create(submission *models.ContactSubmission) error
	GetByID(id int) (*models.ContactSubmission, error)
	GetByReference(ref string) (*models.ContactSubmission, error)
	List(limit, offset int) ([]*models.ContactSubmission, error)
	Update(submission *models.ContactSubmission) error
	Delete(id int) error
}
