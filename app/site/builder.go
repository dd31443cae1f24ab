// Package site renders the portfolio into a directory of static files.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"folio/app/services"
	"folio/app/views"

	"github.com/bmatcuk/doublestar/v4"
)

// Builder writes the static rendition of the site.
type Builder struct {
	Catalog   *services.CatalogService
	Views     *views.Views
	Site      views.Site
	OutputDir string
	// AssetsDir is copied under static/ after the embedded assets.
	AssetsDir string
	Include   []string
	Exclude   []string
}

// Result summarises a build.
type Result struct {
	Pages  int
	Assets int
}

// Build renders every page and copies the assets. A fixture that fails
// to load aborts the build instead of publishing a placeholder page.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	projects, err := b.Catalog.Projects()
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	posts, err := b.Catalog.Blogs()
	if err != nil {
		return nil, fmt.Errorf("loading blogs: %w", err)
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return nil, err
	}
	res := &Result{}

	overview := b.Catalog.Overview(services.Expand{})
	if err := b.page(res, "index.html", views.PageHome, "", overview); err != nil {
		return nil, err
	}

	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		project := p
		name := path.Join("projects", views.FileName(project.ID))
		if err := b.page(res, name, views.PageProject, project.Title, &project); err != nil {
			return nil, err
		}
	}

	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.IsExternal() {
			continue
		}
		post, err := b.Catalog.Blog(p.ID)
		if err != nil {
			return nil, fmt.Errorf("rendering post %s: %w", p.ID, err)
		}
		name := path.Join("blog", views.FileName(p.ID))
		if err := b.page(res, name, views.PagePost, post.Title, post); err != nil {
			return nil, err
		}
	}

	if err := b.page(res, "contact.html", views.PageContact, "Contact", views.ContactForm{}); err != nil {
		return nil, err
	}
	notFound := views.ErrorPage{Status: http.StatusNotFound, Message: "The page you were looking for does not exist."}
	if err := b.page(res, "404.html", views.PageError, "Not found", notFound); err != nil {
		return nil, err
	}

	n, err := b.copyFS(views.Static(), "static")
	if err != nil {
		return nil, fmt.Errorf("copying embedded assets: %w", err)
	}
	res.Assets += n

	if b.AssetsDir != "" {
		n, err := b.copyFiltered(b.AssetsDir, "static")
		if err != nil {
			return nil, fmt.Errorf("copying assets from %s: %w", b.AssetsDir, err)
		}
		res.Assets += n
	}

	log.Printf("Built %d pages and %d assets into %s", res.Pages, res.Assets, b.OutputDir)
	return res, nil
}

func (b *Builder) page(res *Result, name, page, title string, data interface{}) error {
	var buf bytes.Buffer
	if err := b.Views.Render(&buf, page, views.Page{Site: b.Site, Title: title, Data: data}); err != nil {
		return err
	}
	if err := b.write(name, buf.Bytes()); err != nil {
		return err
	}
	res.Pages++
	return nil
}

func (b *Builder) write(name string, data []byte) error {
	dest := filepath.Join(b.OutputDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

func (b *Builder) copyFS(fsys fs.FS, prefix string) (int, error) {
	count := 0
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		count++
		return b.write(path.Join(prefix, p), data)
	})
	return count, err
}

// copyFiltered copies files under dir whose relative path matches an
// include pattern and no exclude pattern.
func (b *Builder) copyFiltered(dir, prefix string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && MatchesAny(rel, b.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !MatchesInclude(rel, b.Include) || MatchesAny(rel, b.Exclude) {
			return nil
		}
		if err := copyFile(p, filepath.Join(b.OutputDir, prefix, filepath.FromSlash(rel))); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

// MatchesInclude returns true if relPath matches any include pattern.
// If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return MatchesAny(relPath, patterns)
}

// MatchesAny checks relPath, then its base name, against doublestar
// patterns.
func MatchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := path.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
