package lb

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func addFrontendIPFlags(cmd *cobra.Command) {
	addChildFlags(cmd)
	cmd.Flags().String("private-ip-address", "", "Static private address (\"\" reverts to dynamic)")
	cmd.Flags().String("public-ip-address", "", "Public IP name or ID (\"\" detaches)")
	cmd.Flags().String("subnet", "", "Subnet name or ID (name needs --vnet-name; \"\" detaches)")
	cmd.Flags().String("vnet-name", "", "Virtual network holding --subnet")
}

func FrontendIPCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a frontend IP configuration",
		Long: `Add a frontend IP configuration to a load balancer.

A static --private-ip-address switches the allocation to Static;
without one the frontend uses dynamic allocation.

Example:
  aznet lb frontend-ip create -g my-rg --lb-name web-lb -n fe2 --public-ip-address web-ip`,
		RunE:         runFrontendIPCreate,
		SilenceUsage: true,
	}

	addFrontendIPFlags(cmd)

	return cmd
}

func runFrontendIPCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	lbName, _ := cmd.Flags().GetString("lb-name")
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	lb, err := getLb(cmd, clients, resourceGroup, lbName)
	if err != nil {
		return err
	}

	props := &armnetwork.FrontendIPConfigurationPropertiesFormat{
		PrivateIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodDynamic),
	}
	if addr, _ := cmd.Flags().GetString("private-ip-address"); addr != "" {
		props.PrivateIPAddress = to.Ptr(addr)
		props.PrivateIPAllocationMethod = to.Ptr(armnetwork.IPAllocationMethodStatic)
	}
	if pip, _ := cmd.Flags().GetString("public-ip-address"); pip != "" {
		id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "publicIPAddresses", pip)
		props.PublicIPAddress = &armnetwork.PublicIPAddress{ID: to.Ptr(id)}
	}
	if subnet, _ := cmd.Flags().GetString("subnet"); subnet != "" {
		id, err := resolveSubnetID(cmd, session.SubscriptionID, resourceGroup, subnet)
		if err != nil {
			return err
		}
		props.Subnet = &armnetwork.Subnet{ID: to.Ptr(id)}
	}

	newConfig := &armnetwork.FrontendIPConfiguration{Name: to.Ptr(name), Properties: props}
	var replaced bool
	lb.Properties.FrontendIPConfigurations, replaced = armutil.UpsertByName(lb.Properties.FrontendIPConfigurations, newConfig, frontendName)
	warnReplaced(cmd, replaced, name)

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Creating frontend IP %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	created, err := armutil.FindByName(updated.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
	if err != nil {
		return err
	}

	auditLb(cmd, "frontendIPConfiguration", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created frontend IP %s on %s.\n", name, lbName)
	return nil
}

func FrontendIPSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "set",
		Short:        "Update a frontend IP configuration",
		RunE:         runFrontendIPSet,
		SilenceUsage: true,
	}

	addFrontendIPFlags(cmd)

	return cmd
}

func runFrontendIPSet(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	lbName, _ := cmd.Flags().GetString("lb-name")
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	lb, err := getLb(cmd, clients, resourceGroup, lbName)
	if err != nil {
		return err
	}

	config, err := armutil.FindByName(lb.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
	if err != nil {
		return err
	}
	if config.Properties == nil {
		config.Properties = &armnetwork.FrontendIPConfigurationPropertiesFormat{}
	}

	if cmd.Flags().Changed("private-ip-address") {
		if addr, _ := cmd.Flags().GetString("private-ip-address"); addr == "" {
			config.Properties.PrivateIPAddress = nil
			config.Properties.PrivateIPAllocationMethod = to.Ptr(armnetwork.IPAllocationMethodDynamic)
		} else {
			config.Properties.PrivateIPAddress = to.Ptr(addr)
			config.Properties.PrivateIPAllocationMethod = to.Ptr(armnetwork.IPAllocationMethodStatic)
		}
	}
	if cmd.Flags().Changed("public-ip-address") {
		if pip, _ := cmd.Flags().GetString("public-ip-address"); pip == "" {
			config.Properties.PublicIPAddress = nil
		} else {
			id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "publicIPAddresses", pip)
			config.Properties.PublicIPAddress = &armnetwork.PublicIPAddress{ID: to.Ptr(id)}
		}
	}
	if cmd.Flags().Changed("subnet") {
		if subnet, _ := cmd.Flags().GetString("subnet"); subnet == "" {
			config.Properties.Subnet = nil
		} else {
			id, err := resolveSubnetID(cmd, session.SubscriptionID, resourceGroup, subnet)
			if err != nil {
				return err
			}
			config.Properties.Subnet = &armnetwork.Subnet{ID: to.Ptr(id)}
		}
	}

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Updating frontend IP %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	result, err := armutil.FindByName(updated.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
	if err != nil {
		return err
	}

	auditLb(cmd, "frontendIPConfiguration", armutil.Value(result.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated frontend IP %s.\n", name)
	return nil
}

func FrontendIPDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a frontend IP configuration",
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
			lb.Properties.FrontendIPConfigurations, removed = armutil.RemoveByName(lb.Properties.FrontendIPConfigurations, name, frontendName)
			if !removed {
				return fmt.Errorf("frontend IP configuration %q not found", name)
			}

			if _, err := saveLb(cmd, clients, fmt.Sprintf("Deleting frontend IP %s...", name), resourceGroup, lbName, lb); err != nil {
				return err
			}

			auditLb(cmd, "frontendIPConfiguration", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted frontend IP %s from %s.\n", name, lbName)
			return nil
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}

func FrontendIPListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List frontend IP configurations",
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
			configs := lb.Properties.FrontendIPConfigurations

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, configs)
			}

			if len(configs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No frontend IP configurations found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tPRIVATE IP\tALLOCATION\tPUBLIC IP\tSUBNET")
			fmt.Fprintln(w, "----\t----------\t----------\t---------\t------")
			for _, c := range configs {
				p := c.Properties
				if p == nil {
					continue
				}
				allocation, publicIP, subnet := "", "-", "-"
				if p.PrivateIPAllocationMethod != nil {
					allocation = string(*p.PrivateIPAllocationMethod)
				}
				if p.PublicIPAddress != nil {
					publicIP = armutil.NameOf(armutil.Value(p.PublicIPAddress.ID))
				}
				if p.Subnet != nil {
					subnet = armutil.NameOf(armutil.Value(p.Subnet.ID))
				}
				privateIP := armutil.Value(p.PrivateIPAddress)
				if privateIP == "" {
					privateIP = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					armutil.Value(c.Name), privateIP, allocation, publicIP, subnet)
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

func FrontendIPShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a frontend IP configuration",
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

			config, err := armutil.FindByName(lb.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
			if err != nil {
				return err
			}

			return cli.PrintJSON(cmd, config)
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}

// resolveSubnetID turns a subnet name plus --vnet-name into a full ID.
// IDs pass through untouched.
func resolveSubnetID(cmd *cobra.Command, subscription, resourceGroup, subnet string) (string, error) {
	if armutil.IsResourceID(subnet) {
		return subnet, nil
	}
	vnetName, _ := cmd.Flags().GetString("vnet-name")
	if vnetName == "" {
		return "", fmt.Errorf("incorrect usage: --vnet-name is required when --subnet is a name")
	}
	return armutil.SubnetID(subscription, resourceGroup, vnetName, subnet), nil
}
