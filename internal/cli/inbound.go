package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewInboundCommand creates the inbound command.
func NewInboundCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inbound",
		Short: "Sync pending client files into the CMMS store",
		Long: `List the pending JSON files in the inbound directory, translate each into
the canonical work-order shape, and upsert them into the CMMS store keyed by
order number. Records that fail validation or date parsing are reported and
skipped; the batch continues.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			report, runErr := a.inbound.Run(ctx)
			a.record(ctx, report)
			if err := printReport(cmd.OutOrStdout(), rootOpts.Format, report); err != nil {
				return err
			}
			return runErr
		},
	}
}
