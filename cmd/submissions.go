package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"folio/app/store"

	"github.com/spf13/cobra"
)

var (
	submissionsLimit int
	submissionsYes   bool
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect stored contact submissions",
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		subs, err := newContact(cfg, db).Recent(submissionsLimit)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No submissions.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tREFERENCE\tSTATUS\tEMAIL\tRECEIVED")
		for _, s := range subs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Reference, s.Status, s.Email, s.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var submissionsResendCmd = &cobra.Command{
	Use:   "resend <id>",
	Short: "Relay a failed submission again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid submission id %q", args[0])
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		sub, err := newContact(cfg, db).Resend(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Submission %d is now %s\n", sub.ID, sub.Status)
		return nil
	},
}

var submissionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid submission id %q", args[0])
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		confirm := store.Prompt(cmd.InOrStdin(), cmd.OutOrStdout())
		if submissionsYes {
			confirm = store.Yes
		}
		if !confirm(fmt.Sprintf("Delete submission %d?", id)) {
			return store.ErrCancelled
		}

		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := newContact(cfg, db).Delete(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Submission %d deleted\n", id)
		return nil
	},
}

func init() {
	submissionsListCmd.Flags().IntVarP(&submissionsLimit, "limit", "n", 20, "number of submissions to show")
	submissionsDeleteCmd.Flags().BoolVarP(&submissionsYes, "yes", "y", false, "skip the confirmation prompt")
	submissionsCmd.AddCommand(submissionsListCmd, submissionsResendCmd, submissionsDeleteCmd)
	rootCmd.AddCommand(submissionsCmd)
}
