package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Project represents a portfolio project card.
type Project struct {
	ID           RecordID `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Details      string   `json:"details,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Image        string   `json:"image,omitempty"`
	Date         string   `json:"date,omitempty"`
	GitHubURL    string   `json:"github,omitempty"`
	LiveURL      string   `json:"demo,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
}

// BlogPost represents a blog entry. Content is markdown.
type BlogPost struct {
	ID      RecordID `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Content string   `json:"content,omitempty"`
	Author  string   `json:"author,omitempty"`
	Image   string   `json:"image,omitempty"`
	Link    string   `json:"link,omitempty"`
}

// SubmissionStatus tracks a contact submission through the relay.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusSent     SubmissionStatus = "sent"
	StatusRejected SubmissionStatus = "rejected"
	StatusFailed   SubmissionStatus = "failed"
)

// ContactSubmission is one message sent through the contact form.
type ContactSubmission struct {
	ID            int              `json:"id" validate:"gte=0"`
	Reference     string           `json:"reference"`
	Name          string           `json:"name" validate:"required,min=2,max=100"`
	Email         string           `json:"email" validate:"required,email,max=254"`
	Subject       string           `json:"subject,omitempty" validate:"max=150"`
	Message       string           `json:"message" validate:"required,min=10,max=5000"`
	Status        SubmissionStatus `json:"status"`
	ClientHash    string           `json:"client_hash,omitempty"`
	FailureReason string           `json:"failure_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
