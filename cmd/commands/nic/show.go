package nic

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/cli"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a network interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, name)
			if err != nil {
				return fmt.Errorf("failed to get network interface %q: %w", name, err)
			}

			return cli.PrintJSON(cmd, nic)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the network interface")
	cmd.MarkFlagRequired("name")

	return cmd
}
