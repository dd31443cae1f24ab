package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionValidation(t *testing.T) {
	tests := []struct {
		name       string
		submission *ContactSubmission
		wantFields []string
	}{
		{
			name: "valid submission",
			submission: &ContactSubmission{
				Name:    "Ada Lovelace",
				Email:   "ada@example.com",
				Message: "I would like to talk about your compiler project.",
			},
		},
		{
			name: "empty required fields",
			submission: &ContactSubmission{
				Name:    "",
				Email:   "",
				Message: "",
			},
			wantFields: []string{"name", "email", "message"},
		},
		{
			name: "invalid email",
			submission: &ContactSubmission{
				Name:    "Ada Lovelace",
				Email:   "not-an-email",
				Message: "I would like to talk about your compiler project.",
			},
			wantFields: []string{"email"},
		},
		{
			name: "message too short",
			submission: &ContactSubmission{
				Name:    "Ada Lovelace",
				Email:   "ada@example.com",
				Message: "hi",
			},
			wantFields: []string{"message"},
		},
		{
			name: "subject too long",
			submission: &ContactSubmission{
				Name:    "Ada Lovelace",
				Email:   "ada@example.com",
				Subject: string(make([]byte, 151)),
				Message: "I would like to talk about your compiler project.",
			},
			wantFields: []string{"subject"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.submission.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Len(t, fe, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.True(t, fe.Has(f), "expected error for %s", f)
			}
		})
	}
}

func TestSubmissionRequiredMessage(t *testing.T) {
	s := &ContactSubmission{Email: "ada@example.com", Message: "A long enough message body."}
	err := s.Validate()

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Name is required.", fe.Get("name"))
	assert.Contains(t, err.Error(), "name: Name is required.")
}

func TestSubmissionNormalize(t *testing.T) {
	s := &ContactSubmission{Name: "  Ada ", Email: " ada@example.com\n", Message: "\thello there friend "}
	s.Normalize()

	assert.Equal(t, "Ada", s.Name)
	assert.Equal(t, "ada@example.com", s.Email)
	assert.Equal(t, "hello there friend", s.Message)
}

func TestSubmissionBeforeCreate(t *testing.T) {
	s := &ContactSubmission{Name: "Ada"}

	assert.True(t, s.CreatedAt.IsZero())
	s.BeforeCreate()
	assert.False(t, s.CreatedAt.IsZero())
	assert.Equal(t, StatusPending, s.Status)

	created := s.CreatedAt
	time.Sleep(time.Millisecond)
	s.Transition(StatusFailed, "timeout")
	assert.Equal(t, created, s.CreatedAt)
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "timeout", s.FailureReason)
	assert.True(t, s.UpdatedAt.After(created))
}

func TestSubmissionFields(t *testing.T) {
	s := &ContactSubmission{
		Reference: "ref-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Hello there",
	}

	fields := s.Fields()
	assert.Equal(t, "Ada", fields["name"])
	assert.Equal(t, "ref-1", fields["reference"])
	assert.NotContains(t, fields, "_subject")

	s.Subject = "Hiring"
	assert.Equal(t, "Hiring", s.Fields()["_subject"])
}
