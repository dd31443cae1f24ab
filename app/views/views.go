// Package views holds the embedded page templates and static assets.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"folio/app/models"
	"folio/app/services"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages rendered inside the shared layout.
const (
	PageHome    = "home"
	PageProject = "project"
	PagePost    = "post"
	PageContact = "contact"
	PageError   = "error"
)

var pageNames = []string{PageHome, PageProject, PagePost, PageContact, PageError}

// Static returns the embedded asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Links decides what URLs the templates produce. The live server links
// through the handoff routes; a static build links to generated files.
type Links struct {
	// Base prefixes every site-relative URL. Defaults to "/".
	Base string
	// Static selects file URLs instead of server routes.
	Static bool
	// ContactAction is where the contact form posts in a static build.
	ContactAction string
}

// LiveLinks returns the links used by the HTTP server.
func LiveLinks() Links { return Links{Base: "/"} }

// StaticLinks returns the links used by the static build.
func StaticLinks(base, contactAction string) Links {
	return Links{Base: base, Static: true, ContactAction: contactAction}
}

func (l Links) base() string {
	if l.Base == "" {
		return "/"
	}
	if !strings.HasSuffix(l.Base, "/") {
		return l.Base + "/"
	}
	return l.Base
}

// Home is the portfolio page URL.
func (l Links) Home() string { return l.base() }

// Project is the detail URL for a project.
func (l Links) Project(id models.RecordID) string {
	if l.Static {
		return l.base() + "projects/" + FileName(id)
	}
	return l.base() + "projects/open/" + url.PathEscape(id.String())
}

// Post is the detail URL for a blog post.
func (l Links) Post(id models.RecordID) string {
	if l.Static {
		return l.base() + "blog/" + FileName(id)
	}
	return l.base() + "blog/open/" + url.PathEscape(id.String())
}

// Contact is the contact page URL.
func (l Links) Contact() string {
	if l.Static {
		return l.base() + "contact.html"
	}
	return l.base() + "contact"
}

// ContactForm is where the contact form posts.
func (l Links) ContactForm() string {
	if l.Static && l.ContactAction != "" {
		return l.ContactAction
	}
	return l.Contact()
}

// More expands a section of the portfolio page without script.
func (l Links) More(section string) string {
	if l.Static {
		return "#" + section
	}
	return l.base() + "?more=" + url.QueryEscape(section) + "#" + section
}

// Asset is the URL of an embedded static file.
func (l Links) Asset(name string) string {
	return l.base() + "static/" + strings.TrimPrefix(name, "/")
}

// FileName is the generated file for a record in a static build.
func FileName(id models.RecordID) string {
	return url.PathEscape(id.String()) + ".html"
}

// Site is the metadata shared by every page.
type Site struct {
	Title         string
	Author        string
	Tagline       string
	FallbackEmail string
}

// Page is the root value handed to the layout.
type Page struct {
	Site  Site
	Title string
	Data  any
}

// ContactForm is the contact page state.
type ContactForm struct {
	Values services.ContactInput
	Errors models.FieldErrors
	// Sent holds the reference of an accepted submission.
	Sent string
	// Failed is set when the relay could not be reached.
	Failed bool
}

// ErrorPage is shown for missing records and failed loads.
type ErrorPage struct {
	Status  int
	Message string
	Retry   bool
}

// Views renders pages with one template set per page.
type Views struct {
	pages map[string]*template.Template
}

// New parses every page template against links.
func New(links Links) (*Views, error) {
	funcs := template.FuncMap{
		"homeURL":     links.Home,
		"projectURL":  links.Project,
		"postURL":     links.Post,
		"contactURL":  links.Contact,
		"contactForm": links.ContactForm,
		"moreURL":     links.More,
		"asset":       links.Asset,
		"isStatic":    func() bool { return links.Static },
		"date":        formatDate,
		"year":        func() int { return time.Now().Year() },
		"join":        strings.Join,
	}

	v := &Views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// Render executes page into w. Output is buffered so a failed render
// never leaves a half-written page.
func (v *Views) Render(w io.Writer, page string, data Page) error {
	t, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(raw string) string {
	post := models.BlogPost{Date: raw}
	if t, ok := post.PublishedAt(); ok {
		return t.Format("January 2, 2006")
	}
	return raw
}
