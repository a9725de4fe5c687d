package group

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage resource groups",
		Long: `Manage resource groups.

Resource groups hold every other resource aznet creates. Most commands
default to the group configured with 'aznet config set resource-group'.`,
	}

	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(ExistsCommand())
	cmd.AddCommand(DeleteCommand())

	return cmd
}
