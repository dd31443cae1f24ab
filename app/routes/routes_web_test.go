package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"folio/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebRoutes(t *testing.T) {
	app := setupTestRouter(t, http.StatusOK)

	t.Run("portfolio page", func(t *testing.T) {
		w := app.serve(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Equal(t, 5, strings.Count(body, `class="card project-card`))
		assert.Contains(t, body, "View more (2)")
		assert.Contains(t, body, `href="/projects/open/four"`)
		// newest post first
		assert.Less(t, strings.Index(body, "Second Post"), strings.Index(body, "First Post"))
	})

	t.Run("project handoff round trip", func(t *testing.T) {
		w := app.serve(httptest.NewRequest(http.MethodGet, "/projects/open/1", nil))
		require.Equal(t, http.StatusSeeOther, w.Code)

		req := httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil)
		for _, c := range w.Result().Cookies() {
			req.AddCookie(c)
		}
		w = app.serve(req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Compiler")
		assert.Contains(t, w.Body.String(), "https://github.com/jane/compiler")
	})

	t.Run("project by query id", func(t *testing.T) {
		w := app.serve(httptest.NewRequest(http.MethodGet, "/project?id=four", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dotfiles")
	})

	t.Run("post page renders markdown", func(t *testing.T) {
		w := app.serve(httptest.NewRequest(http.MethodGet, "/blog/second", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<code>code</code>")
	})

	t.Run("unknown post", func(t *testing.T) {
		w := app.serve(httptest.NewRequest(http.MethodGet, "/blog/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("contact page", func(t *testing.T) {
		w := app.serve(httptest.NewRequest(http.MethodGet, "/contact", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/contact"`)
		assert.Contains(t, w.Body.String(), `name="_gotcha"`)
	})
}

func TestContactRoutes(t *testing.T) {
	post := func(app *testApp, values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return app.serve(req)
	}
	valid := url.Values{
		"name":    {"Grace Hopper"},
		"email":   {"grace@example.com"},
		"message": {"Would you like to give a talk?"},
	}

	t.Run("submission is relayed and stored", func(t *testing.T) {
		app := setupTestRouter(t, http.StatusOK)

		w := post(app, valid)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, int32(1), atomic.LoadInt32(app.relayCalls))

		list, err := app.submitRepo.List(10, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, models.StatusSent, list[0].Status)
		assert.Equal(t, "Grace Hopper", list[0].Name)
		assert.Contains(t, w.Header().Get("Location"), list[0].Reference)
	})

	t.Run("missing field stops before the relay", func(t *testing.T) {
		app := setupTestRouter(t, http.StatusOK)

		form := url.Values{"name": {"Grace Hopper"}, "message": {"Would you like to give a talk?"}}
		w := post(app, form)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Email is required.")
		assert.Equal(t, int32(0), atomic.LoadInt32(app.relayCalls))

		list, err := app.submitRepo.List(0, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("relay outage keeps a failed record", func(t *testing.T) {
		app := setupTestRouter(t, http.StatusServiceUnavailable)

		w := post(app, valid)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "jane@example.com")
		assert.Equal(t, int32(1), atomic.LoadInt32(app.relayCalls))

		list, err := app.submitRepo.List(0, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, models.StatusFailed, list[0].Status)
	})
}

func TestContentReloadsAfterEdit(t *testing.T) {
	app := setupTestRouter(t, http.StatusOK)

	w := app.serve(httptest.NewRequest(http.MethodGet, "/blog/first", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// A broken fixture shows the retry placeholder for blogs only.
	require.NoError(t, os.WriteFile(app.blogsPath, []byte(`{"not":"a list"`), 0644))
	w = app.serve(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "could not be loaded")
	assert.Contains(t, w.Body.String(), "Compiler")
}
