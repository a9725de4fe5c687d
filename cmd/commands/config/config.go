package config

import (
	"nathanbeddoewebdev/aznet/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage aznet configuration",
		Long: "View and modify persistent aznet settings.\n\n" +
			"Configuration is stored at ~/.config/aznet/config.json. Values set\n" +
			"here become the defaults for --subscription, --resource-group and\n" +
			"friends, so day-to-day commands stay short.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
