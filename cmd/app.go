package cmd

import (
	"log"

	"folio/app/config"
	"folio/app/formspree"
	"folio/app/repositories"
	"folio/app/services"
	"folio/app/views"

	"github.com/dgraph-io/badger/v4"
)

func newCatalog(cfg *config.Config) *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewJSONProjectRepository(cfg.Content.ProjectsFile),
		repositories.NewJSONBlogRepository(cfg.Content.BlogsFile),
		cfg.Content.PreviewCount,
	)
}

func newContact(cfg *config.Config, db *badger.DB) *services.ContactService {
	if cfg.Contact.HashSalt == "" {
		log.Printf("Warning: contact.hash_salt is empty; client hashes are unsalted")
	}
	return services.NewContactService(
		repositories.NewBadgerSubmissionRepository(db),
		formspree.NewClient(cfg.Contact.Endpoint, cfg.Contact.Timeout),
		cfg.Contact.FallbackEmail,
		cfg.Contact.HashSalt,
	)
}

func siteInfo(cfg *config.Config) views.Site {
	return views.Site{
		Title:         cfg.Site.Title,
		Author:        cfg.Site.Author,
		Tagline:       cfg.Site.Tagline,
		FallbackEmail: cfg.Contact.FallbackEmail,
	}
}
