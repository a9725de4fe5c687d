package audit

import "github.com/spf13/cobra"

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the local command audit trail",
		Long: "View a local audit trail of aznet commands and prune old entries.\n\n" +
			"Every mutating command records what it touched, the subscription,\n" +
			"the sanitized arguments, the outcome and the duration. History is\n" +
			"stored locally in ~/.config/aznet/aznet.db and never leaves the\n" +
			"machine.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
