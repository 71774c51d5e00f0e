package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command, one full pass in both directions.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one inbound and one outbound sync pass",
		Long: `Run one inbound pass (client files into the CMMS store) followed by one
outbound pass (unsynced work orders out to client files). The two passes
share no state beyond the store; interrupting between records leaves every
already-persisted record committed.`,
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

			inboundReport, inboundErr := a.inbound.Run(ctx)
			a.record(ctx, inboundReport)
			if err := printReport(cmd.OutOrStdout(), rootOpts.Format, inboundReport); err != nil {
				return err
			}
			if inboundErr != nil {
				return inboundErr
			}

			outboundReport, outboundErr := a.outbound.Run(ctx)
			a.record(ctx, outboundReport)
			if err := printReport(cmd.OutOrStdout(), rootOpts.Format, outboundReport); err != nil {
				return err
			}
			return outboundErr
		},
	}
}
