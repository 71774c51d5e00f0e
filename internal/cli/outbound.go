package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewOutboundCommand creates the outbound command.
func NewOutboundCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "outbound",
		Short: "Export unsynced work orders to client files",
		Long: `Query the CMMS store for work orders not yet synced, translate each into
the client shape, write it atomically to the outbound directory, and only
after the write is confirmed mark the source record synced. A record whose
write fails stays pending and is retried on the next pass.`,
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

			report, runErr := a.outbound.Run(ctx)
			a.record(ctx, report)
			if err := printReport(cmd.OutOrStdout(), rootOpts.Format, report); err != nil {
				return err
			}
			return runErr
		},
	}
}
