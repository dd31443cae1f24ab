package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"

	"folio/app/models"
	"folio/app/services"
	"folio/app/views"
)

const maxContactBody = 64 << 10

// SentCookie carries the reference of an accepted submission to the
// confirmation page, so it shows even when the record was not stored.
const SentCookie = "folio_sent"

// ContactController handles the contact form
type ContactController struct {
	base
	contact *services.ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contact *services.ContactService, v *views.Views, site views.Site) *ContactController {
	return &ContactController{
		base:    base{views: v, site: site},
		contact: contact,
	}
}

// New displays the contact form. ?sent=<reference> shows the
// confirmation for an accepted submission.
func (cc *ContactController) New(w http.ResponseWriter, r *http.Request) {
	form := views.ContactForm{}
	if ref := r.URL.Query().Get("sent"); ref != "" {
		if c, err := r.Cookie(SentCookie); err == nil && c.Value == ref {
			form.Sent = ref
			http.SetCookie(w, &http.Cookie{Name: SentCookie, Path: "/contact", MaxAge: -1})
		} else if _, err := cc.contact.Lookup(ref); err == nil {
			form.Sent = ref
		}
	}
	cc.render(w, http.StatusOK, views.PageContact, "Contact", form)
}

// Create handles a contact form post, as a form or as JSON
func (cc *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	input, jsonBody, err := decodeContact(r)
	if err != nil {
		cc.sendError(w, r, "Invalid request: "+err.Error(), http.StatusBadRequest, false)
		return
	}
	asJSON := jsonBody || wantsJSON(r)

	outcome, err := cc.contact.Submit(r.Context(), input, clientIP(r))

	var fieldErrs models.FieldErrors
	var relayErr *services.RelayError
	switch {
	case errors.As(err, &fieldErrs):
		if asJSON {
			sendJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"ok":     false,
				"errors": fieldErrs,
			})
			return
		}
		cc.render(w, http.StatusUnprocessableEntity, views.PageContact, "Contact", views.ContactForm{
			Values: input,
			Errors: fieldErrs,
		})
	case errors.As(err, &relayErr):
		if asJSON {
			sendJSON(w, http.StatusBadGateway, map[string]interface{}{
				"ok":             false,
				"error":          "message could not be sent",
				"fallback_email": relayErr.FallbackEmail,
			})
			return
		}
		cc.render(w, http.StatusBadGateway, views.PageContact, "Contact", views.ContactForm{
			Values: input,
			Failed: true,
		})
	case err != nil:
		log.Printf("Contact submission failed: %v", err)
		cc.sendError(w, r, "Failed to send message", http.StatusInternalServerError, false)
	default:
		if asJSON {
			sendJSON(w, http.StatusOK, map[string]interface{}{
				"ok":        true,
				"reference": outcome.Reference,
			})
			return
		}
		target := "/contact"
		if outcome.Reference != "" {
			target += "?sent=" + url.QueryEscape(outcome.Reference)
			http.SetCookie(w, &http.Cookie{
				Name:     SentCookie,
				Value:    outcome.Reference,
				Path:     "/contact",
				MaxAge:   300,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// decodeContact reads the submission and reports whether it arrived as
// JSON.
func decodeContact(r *http.Request) (services.ContactInput, bool, error) {
	var input services.ContactInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, true, err
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxContactBody); err != nil {
			return input, false, err
		}
	default:
		if err := r.ParseForm(); err != nil {
			return input, false, err
		}
	}

	input.Name = r.FormValue("name")
	input.Email = r.FormValue("email")
	input.Subject = r.FormValue("subject")
	if input.Subject == "" {
		input.Subject = r.FormValue("_subject")
	}
	input.Message = r.FormValue("message")
	input.Honeypot = r.FormValue("_gotcha")
	return input, false, nil
}

// clientIP is only used to derive a salted hash for abuse tracking.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
