package cmd

import (
	"fmt"

	"folio/app/deploy"
	"folio/app/progress"

	"github.com/spf13/cobra"
)

var (
	deployBucket  string
	deployPrefix  string
	deployRegion  string
	deploySkipRun bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Build the static site and upload it to S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if deployBucket != "" {
			cfg.Deploy.Bucket = deployBucket
		}
		if cmd.Flags().Changed("prefix") {
			cfg.Deploy.Prefix = deployPrefix
		}
		if deployRegion != "" {
			cfg.Deploy.Region = deployRegion
		}

		if !deploySkipRun {
			res, err := buildSite(cmd, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d assets\n", res.Pages, res.Assets)
		}

		publisher, err := deploy.NewS3Publisher(cmd.Context(), cfg.Deploy.Bucket, cfg.Deploy.Prefix, cfg.Deploy.Region)
		if err != nil {
			return err
		}
		publisher.CacheControl = cfg.Deploy.CacheControl
		publisher.Reporter = progress.NewReporter("Uploading")

		n, err := publisher.Publish(cmd.Context(), cfg.Site.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d files to s3://%s/%s\n", n, cfg.Deploy.Bucket, cfg.Deploy.Prefix)
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVar(&deployBucket, "bucket", "", "target bucket (overrides deploy.bucket)")
	deployCmd.Flags().StringVar(&deployPrefix, "prefix", "", "key prefix (overrides deploy.prefix)")
	deployCmd.Flags().StringVar(&deployRegion, "region", "", "AWS region (overrides deploy.region)")
	deployCmd.Flags().BoolVar(&deploySkipRun, "skip-build", false, "upload the existing output directory as is")
	rootCmd.AddCommand(deployCmd)
}
