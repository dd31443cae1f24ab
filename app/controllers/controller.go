package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"folio/app/middleware"
	"folio/app/views"
)

// base holds what every HTML controller needs to render pages.
type base struct {
	views *views.Views
	site  views.Site
}

// wantsJSON reports whether the client asked for JSON, either through
// Accept or by calling the API.
func wantsJSON(r *http.Request) bool {
	if middleware.IsAPI(r.URL.Path) {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

func (b *base) render(w http.ResponseWriter, status int, page, title string, data interface{}) {
	var buf strings.Builder
	err := b.views.Render(&buf, page, views.Page{Site: b.site, Title: title, Data: data})
	if err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

// sendError answers with a JSON error or the error page. retry offers
// the visitor a reload button.
func (b *base) sendError(w http.ResponseWriter, r *http.Request, message string, status int, retry bool) {
	if wantsJSON(r) {
		sendJSON(w, status, map[string]string{"error": message})
		return
	}
	title := "Error"
	if status == http.StatusNotFound {
		title = "Not found"
	}
	b.render(w, status, views.PageError, title, views.ErrorPage{
		Status:  status,
		Message: message,
		Retry:   retry,
	})
}
