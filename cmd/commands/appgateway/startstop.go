package appgateway

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/cli"
)

func StartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a stopped application gateway",
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

			err = cli.Spin(cmd, fmt.Sprintf("Starting application gateway %s...", name), func() error {
				return clients.ApplicationGateways.StartAndWait(cmd.Context(), resourceGroup, name)
			})
			if err != nil {
				return fmt.Errorf("failed to start application gateway %q: %w", name, err)
			}

			auditGateway(cmd, "applicationGateway", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Started application gateway %s.\n", name)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the application gateway")
	cmd.MarkFlagRequired("name")

	return cmd
}

func StopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop a running application gateway",
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

			err = cli.Spin(cmd, fmt.Sprintf("Stopping application gateway %s...", name), func() error {
				return clients.ApplicationGateways.StopAndWait(cmd.Context(), resourceGroup, name)
			})
			if err != nil {
				return fmt.Errorf("failed to stop application gateway %q: %w", name, err)
			}

			auditGateway(cmd, "applicationGateway", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped application gateway %s.\n", name)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the application gateway")
	cmd.MarkFlagRequired("name")

	return cmd
}
