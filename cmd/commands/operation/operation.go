package operation

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operation",
		Short: "Track long-running operations started with --no-wait",
		Long: `Track long-running operations started with --no-wait.

When a mutating command is run with --no-wait, the accepted request is
recorded locally. These commands list the recorded operations, wait for
them to finish, and clean up old records. The service keeps working
whether or not anything is watching.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ResumeCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
