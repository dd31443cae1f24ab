package controllers

import (
	"net/http"
	"net/url"

	"folio/app/models"
	"folio/app/services"
	"folio/app/views"

	"github.com/gorilla/mux"
)

// Handoff cookies carry the identifier picked on the portfolio page to
// the detail page for the rest of the browser session.
const (
	ProjectCookie = "folio_project"
	PostCookie    = "folio_post"
)

// PageController serves the portfolio and detail pages
type PageController struct {
	base
	catalog *services.CatalogService
}

// NewPageController creates a new PageController
func NewPageController(catalog *services.CatalogService, v *views.Views, site views.Site) *PageController {
	return &PageController{
		base:    base{views: v, site: site},
		catalog: catalog,
	}
}

// Home renders the portfolio overview. ?more=projects or ?more=blog
// renders that section in full.
func (pc *PageController) Home(w http.ResponseWriter, r *http.Request) {
	var expand services.Expand
	for _, section := range r.URL.Query()["more"] {
		switch section {
		case "projects":
			expand.Projects = true
		case "blog", "blogs":
			expand.Blogs = true
		case "all":
			expand.Projects, expand.Blogs = true, true
		}
	}

	overview := pc.catalog.Overview(expand)
	pc.render(w, http.StatusOK, views.PageHome, "", overview)
}

// OpenProject remembers the chosen project and sends the visitor to
// the project page.
func (pc *PageController) OpenProject(w http.ResponseWriter, r *http.Request) {
	pc.handoff(w, r, ProjectCookie, "/project")
}

// OpenPost remembers the chosen post and sends the visitor to the post
// page.
func (pc *PageController) OpenPost(w http.ResponseWriter, r *http.Request) {
	pc.handoff(w, r, PostCookie, "/post")
}

// Project renders one project
func (pc *PageController) Project(w http.ResponseWriter, r *http.Request) {
	id := resolveID(r, ProjectCookie)
	if id.IsZero() {
		pc.sendError(w, r, "No project was selected.", http.StatusNotFound, false)
		return
	}

	project, err := pc.catalog.Project(id)
	if err != nil {
		pc.lookupFailed(w, r, "Project", err)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, project)
		return
	}
	pc.render(w, http.StatusOK, views.PageProject, project.Title, project)
}

// Post renders one blog post
func (pc *PageController) Post(w http.ResponseWriter, r *http.Request) {
	id := resolveID(r, PostCookie)
	if id.IsZero() {
		pc.sendError(w, r, "No post was selected.", http.StatusNotFound, false)
		return
	}

	post, err := pc.catalog.Blog(id)
	if err != nil {
		pc.lookupFailed(w, r, "Post", err)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, post)
		return
	}
	pc.render(w, http.StatusOK, views.PagePost, post.Title, post)
}

// NotFound renders the 404 page for unmatched routes.
func (pc *PageController) NotFound(w http.ResponseWriter, r *http.Request) {
	pc.sendError(w, r, "The page you were looking for does not exist.", http.StatusNotFound, false)
}

func (pc *PageController) handoff(w http.ResponseWriter, r *http.Request, cookie, target string) {
	id := models.ParseRecordID(mux.Vars(r)["id"])
	if id.IsZero() {
		pc.sendError(w, r, "Missing identifier.", http.StatusBadRequest, false)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookie,
		Value:    url.QueryEscape(id.String()),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (pc *PageController) lookupFailed(w http.ResponseWriter, r *http.Request, kind string, err error) {
	switch {
	case services.IsNotFound(err):
		pc.sendError(w, r, kind+" not found.", http.StatusNotFound, false)
	case services.IsUnavailable(err):
		pc.sendError(w, r, "Content is temporarily unavailable.", http.StatusServiceUnavailable, true)
	default:
		pc.sendError(w, r, "Something went wrong loading this page.", http.StatusInternalServerError, true)
	}
}

// resolveID picks the identifier from the path, then ?id=, then the
// handoff cookie.
func resolveID(r *http.Request, cookie string) models.RecordID {
	if id := models.ParseRecordID(mux.Vars(r)["id"]); !id.IsZero() {
		return id
	}
	if id := models.ParseRecordID(r.URL.Query().Get("id")); !id.IsZero() {
		return id
	}
	if c, err := r.Cookie(cookie); err == nil {
		if raw, err := url.QueryUnescape(c.Value); err == nil {
			return models.ParseRecordID(raw)
		}
	}
	return ""
}
