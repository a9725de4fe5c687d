package appgateway

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/cli"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an application gateway",
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

			gw, err := getGateway(cmd, clients, resourceGroup, name)
			if err != nil {
				return err
			}

			return cli.PrintJSON(cmd, gw)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the application gateway")
	cmd.MarkFlagRequired("name")

	return cmd
}
