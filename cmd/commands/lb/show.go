package lb

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/cli"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a load balancer",
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

			lb, err := getLb(cmd, clients, resourceGroup, name)
			if err != nil {
				return err
			}

			return cli.PrintJSON(cmd, lb)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the load balancer")
	cmd.MarkFlagRequired("name")

	return cmd
}
