package lb

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func AddressPoolCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a backend address pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			lbName, _ := cmd.Flags().GetString("lb-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			lb, err := getLb(cmd, clients, resourceGroup, lbName)
			if err != nil {
				return err
			}

			newPool := &armnetwork.BackendAddressPool{Name: to.Ptr(name)}
			var replaced bool
			lb.Properties.BackendAddressPools, replaced = armutil.UpsertByName(lb.Properties.BackendAddressPools, newPool, poolName)
			warnReplaced(cmd, replaced, name)

			updated, err := saveLb(cmd, clients, fmt.Sprintf("Creating address pool %s...", name), resourceGroup, lbName, lb)
			if err != nil {
				return err
			}

			created, err := armutil.FindByName(updated.Properties.BackendAddressPools, "backend address pool", name, poolName)
			if err != nil {
				return err
			}

			auditLb(cmd, "backendAddressPool", armutil.Value(created.ID), name)

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created address pool %s on %s.\n", name, lbName)
			return nil
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}

func AddressPoolDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a backend address pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			lbName, _ := cmd.Flags().GetString("lb-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			lb, err := getLb(cmd, clients, resourceGroup, lbName)
			if err != nil {
				return err
			}

			var removed bool
			lb.Properties.BackendAddressPools, removed = armutil.RemoveByName(lb.Properties.BackendAddressPools, name, poolName)
			if !removed {
				return fmt.Errorf("backend address pool %q not found", name)
			}

			if _, err := saveLb(cmd, clients, fmt.Sprintf("Deleting address pool %s...", name), resourceGroup, lbName, lb); err != nil {
				return err
			}

			auditLb(cmd, "backendAddressPool", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted address pool %s from %s.\n", name, lbName)
			return nil
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}

func AddressPoolListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backend address pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			lbName, _ := cmd.Flags().GetString("lb-name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			lb, err := getLb(cmd, clients, resourceGroup, lbName)
			if err != nil {
				return err
			}
			pools := lb.Properties.BackendAddressPools

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, pools)
			}

			if len(pools) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backend address pools found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tBACKEND IP CONFIGURATIONS")
			fmt.Fprintln(w, "----\t-------------------------")
			for _, p := range pools {
				members := 0
				if p.Properties != nil {
					members = len(p.Properties.BackendIPConfigurations)
				}
				fmt.Fprintf(w, "%s\t%d\n", armutil.Value(p.Name), members)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("lb-name", "", "Name of the load balancer")
	cmd.MarkFlagRequired("lb-name")

	return cmd
}
