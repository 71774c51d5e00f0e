package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recent sync runs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if a.history == nil {
				return errors.New("sync-run history is disabled (history.enabled = false)")
			}

			runs, err := a.history.Recent(ctx, limit)
			if err != nil {
				return err
			}
			return printRuns(cmd.OutOrStdout(), rootOpts.Format, runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")

	return cmd
}
