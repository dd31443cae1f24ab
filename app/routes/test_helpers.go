package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

const testProjects = `{
  "projects": [
    {"id": 1, "title": "Compiler", "description": "A toy compiler.", "tech": ["Go"], "github": "https://github.com/jane/compiler"},
    {"id": 2, "title": "Ray Tracer", "description": "Renders spheres."},
    {"id": 3, "title": "Chat", "description": "Websocket chat."},
    {"id": "four", "title": "Dotfiles", "description": "Configuration."},
    {"id": 5, "title": "Blog Engine", "description": "This site."}
  ]
}`

const testBlogs = `[
  {"id": "first", "title": "First Post", "date": "2023-05-01", "content": "# First\n\nHello there."},
  {"id": "second", "title": "Second Post", "date": "June 3, 2024", "content": "Some ` + "`code`" + ` here."}
]`

// setupTestContent writes project and blog fixtures and returns their paths.
func setupTestContent(t *testing.T) (string, string) {
	tmpDir := t.TempDir()
	projects := filepath.Join(tmpDir, "projects.json")
	blogs := filepath.Join(tmpDir, "blogs.json")
	require.NoError(t, os.WriteFile(projects, []byte(testProjects), 0644))
	require.NoError(t, os.WriteFile(blogs, []byte(testBlogs), 0644))
	return projects, blogs
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestRelay starts a form endpoint answering with status and counts
// the submissions it receives.
func setupTestRelay(t *testing.T, status int) (*httptest.Server, *int32) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status < 300 {
			w.Write([]byte(`{"ok":true,"next":"https://formspree.io/thanks"}`))
			return
		}
		w.Write([]byte(`{"error":"unavailable"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}
