package cmd

import (
	"fmt"

	"folio/app/store"

	"github.com/spf13/cobra"
)

var (
	storeYes       bool
	storeBackupDir string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the submission database",
}

func confirmer(cmd *cobra.Command) store.Confirm {
	if storeYes {
		return store.Yes
	}
	return store.Prompt(cmd.InOrStdin(), cmd.OutOrStdout())
}

var storeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := store.Init(cfg.Store.Path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database initialized at %s\n", cfg.Store.Path)
		return nil
	},
}

var storeCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := store.Clean(cfg.Store.Path, confirmer(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database deleted")
		return nil
	},
}

var storeBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a backup of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		file, err := store.Backup(cfg.Store.Path, storeBackupDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", file)
		return nil
	},
}

var storeRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Replace the database with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := store.Restore(cfg.Store.Path, args[0], confirmer(cmd)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database restored from %s\n", args[0])
		return nil
	},
}

func init() {
	storeCmd.PersistentFlags().BoolVarP(&storeYes, "yes", "y", false, "skip confirmation prompts")
	storeBackupCmd.Flags().StringVar(&storeBackupDir, "dir", "data/backups", "backup directory")
	storeCmd.AddCommand(storeInitCmd, storeCleanCmd, storeBackupCmd, storeRestoreCmd)
	rootCmd.AddCommand(storeCmd)
}
