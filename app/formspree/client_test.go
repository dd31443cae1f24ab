package formspree

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = map[string]string{
	"name":    "Ada Lovelace",
	"email":   "ada@example.com",
	"message": "Hello there",
}

func TestSubmitSuccess(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		got = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			got[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "next": "/thanks"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	result, err := client.Submit(context.Background(), testFields)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "/thanks", result.Next)
	assert.Equal(t, testFields, got)
}

func TestSubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors": [{"field": "email", "code": "TYPE_EMAIL", "message": "should be an email"}, {"code": "EMPTY", "message": "form is empty"}]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Submit(context.Background(), testFields)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnprocessableEntity, rejected.Status)
	require.Len(t, rejected.Errors, 2)
	assert.Equal(t, "email", rejected.Errors[0].Field)
	assert.Equal(t, "TYPE_EMAIL", rejected.Errors[0].Code)
	assert.Contains(t, err.Error(), "email: should be an email")
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestSubmitRejectedWithSingleError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Form not found"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Submit(context.Background(), testFields)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Form not found", rejected.Errors[0].Message)
	assert.Empty(t, rejected.Errors[0].Field)
}

func TestSubmitUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "client error without json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("<html>blocked</html>"))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(server.URL, 50*time.Millisecond).Submit(context.Background(), testFields)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestSubmitSingleAttempt(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Submit(context.Background(), testFields)
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
