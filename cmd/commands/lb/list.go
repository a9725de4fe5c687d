package lb

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List load balancers",
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Limit to a resource group")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	var lbs []*armnetwork.LoadBalancer
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		lbs, err = clients.LoadBalancers.List(cmd.Context(), rg)
	} else {
		lbs, err = clients.LoadBalancers.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list load balancers: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, lbs)
	}

	if len(lbs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No load balancers found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tFRONTENDS\tPOOLS\tRULES")
	fmt.Fprintln(w, "----\t--------------\t--------\t---------\t-----\t-----")
	for _, b := range lbs {
		frontends, pools, rules := 0, 0, 0
		if b.Properties != nil {
			frontends = len(b.Properties.FrontendIPConfigurations)
			pools = len(b.Properties.BackendAddressPools)
			rules = len(b.Properties.LoadBalancingRules)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			armutil.Value(b.Name),
			armutil.ResourceGroupOf(armutil.Value(b.ID)),
			armutil.Value(b.Location),
			frontends,
			pools,
			rules,
		)
	}
	return w.Flush()
}
