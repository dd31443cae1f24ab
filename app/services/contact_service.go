package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"folio/app/formspree"
	"folio/app/models"
	"folio/app/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

var (
	// ErrRelayUnavailable means the form-handling service could not be reached.
	ErrRelayUnavailable = errors.New("contact relay unavailable")
	// ErrNotResendable means only failed submissions may be relayed again.
	ErrNotResendable = errors.New("submission is not in a failed state")
)

// Relay delivers a submission to the form-handling service.
type Relay interface {
	Submit(ctx context.Context, fields map[string]string) (*formspree.Result, error)
}

// ContactInput is what the visitor typed into the contact form.
type ContactInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Honeypot string `json:"_gotcha"`
}

// ContactOutcome describes an accepted submission.
type ContactOutcome struct {
	Reference string
	// Spam is set when the honeypot caught a bot; nothing was stored or sent.
	Spam bool
}

// RelayError carries the fallback address shown when delivery failed.
type RelayError struct {
	FallbackEmail string
	Err           error
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("%v: %v", ErrRelayUnavailable, e.Err)
}

func (e *RelayError) Unwrap() []error {
	return []error{ErrRelayUnavailable, e.Err}
}

// ContactService validates, records and relays contact form submissions
type ContactService struct {
	repo          repositories.SubmissionRepository
	relay         Relay
	fallbackEmail string
	salt          string
}

// NewContactService creates a new ContactService
func NewContactService(repo repositories.SubmissionRepository, relay Relay, fallbackEmail, salt string) *ContactService {
	return &ContactService{
		repo:          repo,
		relay:         relay,
		fallbackEmail: fallbackEmail,
		salt:          salt,
	}
}

// FallbackEmail is the address visitors can write to directly.
func (s *ContactService) FallbackEmail() string { return s.fallbackEmail }

// Submit handles one contact form post. Validation failures return
// models.FieldErrors and never reach the relay.
func (s *ContactService) Submit(ctx context.Context, input ContactInput, clientIP string) (*ContactOutcome, error) {
	if input.Honeypot != "" {
		log.Printf("Dropped contact submission from %s: honeypot filled", s.hashClient(clientIP))
		return &ContactOutcome{Spam: true}, nil
	}

	submission := &models.ContactSubmission{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	submission.Normalize()
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	submission.Reference = uuid.NewString()
	submission.ClientHash = s.hashClient(clientIP)
	submission.BeforeCreate()

	stored := true
	if err := s.repo.Create(submission); err != nil {
		log.Printf("Failed to record submission %s: %v", submission.Reference, err)
		stored = false
	}

	if err := s.deliver(ctx, submission, stored); err != nil {
		return nil, err
	}
	return &ContactOutcome{Reference: submission.Reference}, nil
}

// Resend relays a stored submission whose earlier delivery failed.
func (s *ContactService) Resend(ctx context.Context, id int) (*models.ContactSubmission, error) {
	submission, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if submission.Status != models.StatusFailed {
		return submission, fmt.Errorf("submission %d is %s: %w", id, submission.Status, ErrNotResendable)
	}
	err = s.deliver(ctx, submission, true)
	return submission, err
}

// Recent lists the latest submissions, newest first.
func (s *ContactService) Recent(limit int) ([]*models.ContactSubmission, error) {
	return s.repo.List(limit, 0)
}

// Delete removes a stored submission and its reference.
func (s *ContactService) Delete(id int) error {
	return s.repo.Delete(id)
}

// Lookup retrieves a submission by its visitor-facing reference.
func (s *ContactService) Lookup(ref string) (*models.ContactSubmission, error) {
	return s.repo.GetByReference(ref)
}

func (s *ContactService) deliver(ctx context.Context, submission *models.ContactSubmission, stored bool) error {
	_, relayErr := s.relay.Submit(ctx, submission.Fields())

	var result error
	var rejected *formspree.RejectedError
	switch {
	case relayErr == nil:
		submission.Transition(models.StatusSent, "")
		log.Printf("Contact submission %s relayed", submission.Reference)
	case errors.As(relayErr, &rejected):
		submission.Transition(models.StatusRejected, relayErr.Error())
		log.Printf("Contact submission %s rejected: %v", submission.Reference, relayErr)
		result = rejectionFieldErrors(rejected)
	default:
		submission.Transition(models.StatusFailed, relayErr.Error())
		log.Printf("Contact submission %s failed: %v", submission.Reference, relayErr)
		result = &RelayError{FallbackEmail: s.fallbackEmail, Err: relayErr}
	}

	if stored {
		if err := s.repo.Update(submission); err != nil {
			log.Printf("Failed to update submission %s: %v", submission.Reference, err)
		}
	}
	return result
}

// formspreeFields maps the service's field names onto the form's inputs.
var formspreeFields = map[string]string{
	"name":     "name",
	"email":    "email",
	"_replyto": "email",
	"_subject": "subject",
	"subject":  "subject",
	"message":  "message",
}

func rejectionFieldErrors(rejected *formspree.RejectedError) models.FieldErrors {
	fe := models.FieldErrors{}
	for _, e := range rejected.Errors {
		fe.Add(formspreeFields[e.Field], e.Message)
	}
	if len(fe) == 0 {
		fe.Add("", "The message could not be accepted.")
	}
	return fe
}

func (s *ContactService) hashClient(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha3.Sum256([]byte(s.salt + "|" + ip))
	return hex.EncodeToString(sum[:8])
}
