package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/cli"
)

func ExistsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists",
		Short: "Check whether a resource group exists",
		Long: `Check whether a resource group exists. Prints true or false.

Example:
  aznet group exists -n my-rg`,
		RunE:         runExists,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("name", "n", "", "Name of the resource group")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runExists(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	exists, err := clients.ResourceGroups.CheckExistence(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to check resource group %q: %w", name, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), exists)
	return nil
}
