package cmd

import (
	"fmt"

	"folio/app/config"
	"folio/app/site"
	"folio/app/views"

	"github.com/spf13/cobra"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site to static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildOutput != "" {
			cfg.Site.OutputDir = buildOutput
		}

		res, err := buildSite(cmd, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d assets into %s\n", res.Pages, res.Assets, cfg.Site.OutputDir)
		return nil
	},
}

func buildSite(cmd *cobra.Command, cfg *config.Config) (*site.Result, error) {
	v, err := views.New(views.StaticLinks(cfg.Site.BaseURL, cfg.Contact.Endpoint))
	if err != nil {
		return nil, err
	}
	b := &site.Builder{
		Catalog:   newCatalog(cfg),
		Views:     v,
		Site:      siteInfo(cfg),
		OutputDir: cfg.Site.OutputDir,
		AssetsDir: cfg.Site.AssetsDir,
		Include:   cfg.Site.Include,
		Exclude:   cfg.Site.Exclude,
	}
	return b.Build(cmd.Context())
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (overrides site.output_dir)")
	rootCmd.AddCommand(buildCmd)
}
