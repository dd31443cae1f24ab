package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Normalize trims whitespace from the visitor supplied fields.
func (s *ContactSubmission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
}

// Validate checks the visitor supplied fields. Failures come back as
// FieldErrors so they can be shown next to each input.
func (s *ContactSubmission) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, v := range verrs {
		fe.Add(v.Field(), fieldMessage(v))
	}
	return fe
}

// BeforeCreate sets up any necessary fields before creation
func (s *ContactSubmission) BeforeCreate() {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = StatusPending
	}
}

// Transition moves the submission to status, recording reason for
// failures.
func (s *ContactSubmission) Transition(status SubmissionStatus, reason string) {
	s.Status = status
	s.FailureReason = reason
	s.UpdatedAt = time.Now()
}

// Fields returns the values relayed to the form-handling service.
func (s *ContactSubmission) Fields() map[string]string {
	fields := map[string]string{
		"name":    s.Name,
		"email":   s.Email,
		"message": s.Message,
	}
	if s.Subject != "" {
		fields["_subject"] = s.Subject
	}
	if s.Reference != "" {
		fields["reference"] = s.Reference
	}
	return fields
}

func fieldMessage(v validator.FieldError) string {
	label := strings.ToUpper(v.Field()[:1]) + v.Field()[1:]
	switch v.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Please enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, v.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, v.Param())
	default:
		return label + " is invalid."
	}
}
