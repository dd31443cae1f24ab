package controllers

import (
	"log"
	"net/http"

	"folio/app/models"
	"folio/app/services"

	"github.com/gorilla/mux"
)

// APIController serves the project and blog records as JSON
type APIController struct {
	catalog *services.CatalogService
}

// NewAPIController creates a new APIController
func NewAPIController(catalog *services.CatalogService) *APIController {
	return &APIController{catalog: catalog}
}

// Projects handles GET /api/projects
func (ac *APIController) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := ac.catalog.Projects()
	if err != nil {
		ac.failed(w, "projects", err)
		return
	}
	sendJSON(w, http.StatusOK, projects)
}

// Project handles GET /api/projects/{id}
func (ac *APIController) Project(w http.ResponseWriter, r *http.Request) {
	project, err := ac.catalog.Project(models.ParseRecordID(mux.Vars(r)["id"]))
	if err != nil {
		ac.failed(w, "project", err)
		return
	}
	sendJSON(w, http.StatusOK, project)
}

// Blogs handles GET /api/blogs
func (ac *APIController) Blogs(w http.ResponseWriter, r *http.Request) {
	posts, err := ac.catalog.Blogs()
	if err != nil {
		ac.failed(w, "blogs", err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Blog handles GET /api/blogs/{id}
func (ac *APIController) Blog(w http.ResponseWriter, r *http.Request) {
	post, err := ac.catalog.Blog(models.ParseRecordID(mux.Vars(r)["id"]))
	if err != nil {
		ac.failed(w, "post", err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

func (ac *APIController) failed(w http.ResponseWriter, what string, err error) {
	switch {
	case services.IsNotFound(err):
		sendJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found"})
	case services.IsUnavailable(err):
		log.Printf("Failed to load %s: %v", what, err)
		sendJSON(w, http.StatusServiceUnavailable, map[string]string{"error": what + " unavailable"})
	default:
		log.Printf("Failed to serve %s: %v", what, err)
		sendJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
