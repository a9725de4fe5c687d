package vnet

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func SubnetCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subnet",
		Long: `Create a subnet in a virtual network.

The security group and route table accept either a name in the same
resource group or a full resource ID.

Example:
  aznet vnet subnet create -g my-rg --vnet-name my-vnet -n frontend --address-prefix 10.0.1.0/24`,
		RunE:         runSubnetCreate,
		SilenceUsage: true,
	}

	addSubnetFlags(cmd)
	cmd.MarkFlagRequired("address-prefix")

	return cmd
}

func SubnetUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a subnet",
		Long: `Update a subnet in place. Only the provided flags change; passing
an empty string detaches the security group or route table.

Example:
  aznet vnet subnet update -g my-rg --vnet-name my-vnet -n frontend --network-security-group ""`,
		RunE:         runSubnetUpdate,
		SilenceUsage: true,
	}

	addSubnetFlags(cmd)

	return cmd
}

func addSubnetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("vnet-name", "", "Name of the virtual network")
	cmd.Flags().StringP("name", "n", "", "Name of the subnet")
	cmd.Flags().String("address-prefix", "", "Address prefix in CIDR format")
	cmd.Flags().String("network-security-group", "", "Name or ID of a network security group")
	cmd.Flags().String("route-table", "", "Name or ID of a route table")
	cmd.MarkFlagRequired("vnet-name")
	cmd.MarkFlagRequired("name")
}

func runSubnetCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	vnetName, _ := cmd.Flags().GetString("vnet-name")
	name, _ := cmd.Flags().GetString("name")
	prefix, _ := cmd.Flags().GetString("address-prefix")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	subnet := armnetwork.Subnet{
		Name: to.Ptr(name),
		Properties: &armnetwork.SubnetPropertiesFormat{
			AddressPrefix: to.Ptr(prefix),
		},
	}
	if nsg, _ := cmd.Flags().GetString("network-security-group"); nsg != "" {
		id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "networkSecurityGroups", nsg)
		subnet.Properties.NetworkSecurityGroup = &armnetwork.SecurityGroup{ID: to.Ptr(id)}
	}
	if rt, _ := cmd.Flags().GetString("route-table"); rt != "" {
		id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "routeTables", rt)
		subnet.Properties.RouteTable = &armnetwork.RouteTable{ID: to.Ptr(id)}
	}

	var created armnetwork.Subnet
	err = cli.Spin(cmd, fmt.Sprintf("Creating subnet %s...", name), func() error {
		var err error
		created, err = clients.Subnets.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, vnetName, name, subnet)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create subnet %q: %w", name, err)
	}

	auditVnet(cmd, "subnet", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created subnet %s in %s.\n", name, vnetName)
	return nil
}

func runSubnetUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	vnetName, _ := cmd.Flags().GetString("vnet-name")
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	subnet, err := clients.Subnets.Get(cmd.Context(), resourceGroup, vnetName, name)
	if err != nil {
		return fmt.Errorf("failed to get subnet %q: %w", name, err)
	}
	if subnet.Properties == nil {
		subnet.Properties = &armnetwork.SubnetPropertiesFormat{}
	}

	if cmd.Flags().Changed("address-prefix") {
		prefix, _ := cmd.Flags().GetString("address-prefix")
		subnet.Properties.AddressPrefix = to.Ptr(prefix)
	}
	if cmd.Flags().Changed("network-security-group") {
		nsg, _ := cmd.Flags().GetString("network-security-group")
		if nsg == "" {
			subnet.Properties.NetworkSecurityGroup = nil
		} else {
			id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "networkSecurityGroups", nsg)
			subnet.Properties.NetworkSecurityGroup = &armnetwork.SecurityGroup{ID: to.Ptr(id)}
		}
	}
	if cmd.Flags().Changed("route-table") {
		rt, _ := cmd.Flags().GetString("route-table")
		if rt == "" {
			subnet.Properties.RouteTable = nil
		} else {
			id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "routeTables", rt)
			subnet.Properties.RouteTable = &armnetwork.RouteTable{ID: to.Ptr(id)}
		}
	}

	var updated armnetwork.Subnet
	err = cli.Spin(cmd, fmt.Sprintf("Updating subnet %s...", name), func() error {
		var err error
		updated, err = clients.Subnets.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, vnetName, name, subnet)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update subnet %q: %w", name, err)
	}

	auditVnet(cmd, "subnet", armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated subnet %s.\n", name)
	return nil
}

func SubnetListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subnets in a virtual network",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			vnetName, _ := cmd.Flags().GetString("vnet-name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			subnets, err := clients.Subnets.List(cmd.Context(), resourceGroup, vnetName)
			if err != nil {
				return fmt.Errorf("failed to list subnets: %w", err)
			}

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, subnets)
			}

			if len(subnets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subnets found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tADDRESS PREFIX\tSECURITY GROUP\tROUTE TABLE")
			fmt.Fprintln(w, "----\t--------------\t--------------\t-----------")
			for _, s := range subnets {
				prefix, nsg, rt := "", "-", "-"
				if s.Properties != nil {
					prefix = armutil.Value(s.Properties.AddressPrefix)
					if s.Properties.NetworkSecurityGroup != nil {
						nsg = armutil.NameOf(armutil.Value(s.Properties.NetworkSecurityGroup.ID))
					}
					if s.Properties.RouteTable != nil {
						rt = armutil.NameOf(armutil.Value(s.Properties.RouteTable.ID))
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", armutil.Value(s.Name), prefix, nsg, rt)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("vnet-name", "", "Name of the virtual network")
	cmd.MarkFlagRequired("vnet-name")

	return cmd
}

func SubnetShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a subnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			vnetName, _ := cmd.Flags().GetString("vnet-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			subnet, err := clients.Subnets.Get(cmd.Context(), resourceGroup, vnetName, name)
			if err != nil {
				return fmt.Errorf("failed to get subnet %q: %w", name, err)
			}

			return cli.PrintJSON(cmd, subnet)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("vnet-name", "", "Name of the virtual network")
	cmd.Flags().StringP("name", "n", "", "Name of the subnet")
	cmd.MarkFlagRequired("vnet-name")
	cmd.MarkFlagRequired("name")

	return cmd
}

func SubnetDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a subnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			vnetName, _ := cmd.Flags().GetString("vnet-name")
			name, _ := cmd.Flags().GetString("name")

			clients, session, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			err = cli.Spin(cmd, fmt.Sprintf("Deleting subnet %s...", name), func() error {
				return clients.Subnets.DeleteAndWait(cmd.Context(), resourceGroup, vnetName, name)
			})
			if err != nil {
				return fmt.Errorf("failed to delete subnet %q: %w", name, err)
			}

			auditVnet(cmd, "subnet", armutil.SubnetID(session.SubscriptionID, resourceGroup, vnetName, name), name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted subnet %s.\n", name)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("vnet-name", "", "Name of the virtual network")
	cmd.Flags().StringP("name", "n", "", "Name of the subnet")
	cmd.MarkFlagRequired("vnet-name")
	cmd.MarkFlagRequired("name")

	return cmd
}
