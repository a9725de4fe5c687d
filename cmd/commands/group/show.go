package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a resource group",
		Long: `Show the details of a resource group.

Example:
  aznet group show -n my-rg`,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("name", "n", "", "Name of the resource group")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	group, err := clients.ResourceGroups.Get(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to get resource group %q: %w", name, err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, group)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:     %s\n", armutil.Value(group.Name))
	fmt.Fprintf(out, "Location: %s\n", armutil.Value(group.Location))
	if group.Properties != nil {
		fmt.Fprintf(out, "Status:   %s\n", armutil.Value(group.Properties.ProvisioningState))
	}
	if len(group.Tags) > 0 {
		fmt.Fprintln(out, "Tags:")
		for k, v := range group.Tags {
			fmt.Fprintf(out, "  %s: %s\n", k, armutil.Value(v))
		}
	}
	return nil
}
