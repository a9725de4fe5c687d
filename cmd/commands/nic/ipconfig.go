package nic

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func addIPConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("nic-name", "", "Name of the network interface")
	cmd.Flags().StringP("name", "n", "", "Name of the IP configuration")
	cmd.MarkFlagRequired("nic-name")
	cmd.MarkFlagRequired("name")
}

func ipConfigName(c *armnetwork.InterfaceIPConfiguration) *string { return c.Name }

func IPConfigCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an IP configuration to a network interface",
		Long: `Add an IP configuration to a network interface.

An IPv4 configuration without --subnet inherits the subnet of the
interface's primary configuration. --make-primary demotes the current
primary configuration.

Example:
  aznet nic ip-config create -g my-rg --nic-name web-nic -n ipconfig2 --private-ip-address 10.0.1.20`,
		RunE:         runIPConfigCreate,
		SilenceUsage: true,
	}

	addIPConfigFlags(cmd)
	cmd.Flags().String("subnet", "", "Subnet name or ID (name needs --vnet-name)")
	cmd.Flags().String("vnet-name", "", "Virtual network holding --subnet")
	cmd.Flags().String("public-ip-address", "", "Public IP name or ID")
	cmd.Flags().String("private-ip-address", "", "Static private address (omit for dynamic)")
	cmd.Flags().String("version", "IPv4", "Address version: IPv4 or IPv6")
	cmd.Flags().Bool("make-primary", false, "Make this the primary configuration")

	return cmd
}

func runIPConfigCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	nicName, _ := cmd.Flags().GetString("nic-name")
	name, _ := cmd.Flags().GetString("name")

	rawVersion, _ := cmd.Flags().GetString("version")
	version, err := armutil.ParseEnum(rawVersion, "--version", armnetwork.PossibleIPVersionValues())
	if err != nil {
		return err
	}

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, nicName)
	if err != nil {
		return fmt.Errorf("failed to get network interface %q: %w", nicName, err)
	}
	if nic.Properties == nil {
		nic.Properties = &armnetwork.InterfacePropertiesFormat{}
	}

	props := &armnetwork.InterfaceIPConfigurationPropertiesFormat{
		PrivateIPAddressVersion:   to.Ptr(version),
		PrivateIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodDynamic),
	}
	if addr, _ := cmd.Flags().GetString("private-ip-address"); addr != "" {
		props.PrivateIPAddress = to.Ptr(addr)
		props.PrivateIPAllocationMethod = to.Ptr(armnetwork.IPAllocationMethodStatic)
	}
	if subnet, _ := cmd.Flags().GetString("subnet"); subnet != "" {
		id, err := resolveSubnetID(cmd, session.SubscriptionID, resourceGroup, subnet)
		if err != nil {
			return err
		}
		props.Subnet = &armnetwork.Subnet{ID: to.Ptr(id)}
	} else if version == armnetwork.IPVersionIPv4 {
		// Inherit before any primary demotion below.
		props.Subnet = primarySubnet(nic.Properties.IPConfigurations)
	}
	if pip, _ := cmd.Flags().GetString("public-ip-address"); pip != "" {
		id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "publicIPAddresses", pip)
		props.PublicIPAddress = &armnetwork.PublicIPAddress{ID: to.Ptr(id)}
	}

	makePrimary, _ := cmd.Flags().GetBool("make-primary")
	if makePrimary {
		for _, c := range nic.Properties.IPConfigurations {
			if c != nil && c.Properties != nil {
				c.Properties.Primary = to.Ptr(false)
			}
		}
	}
	props.Primary = to.Ptr(makePrimary)

	newConfig := &armnetwork.InterfaceIPConfiguration{Name: to.Ptr(name), Properties: props}
	var replaced bool
	nic.Properties.IPConfigurations, replaced = armutil.UpsertByName(nic.Properties.IPConfigurations, newConfig, ipConfigName)
	if replaced {
		fmt.Fprintf(cmd.ErrOrStderr(), "Item '%s' already exists. Replacing with new values.\n", name)
	}

	updated, err := saveNic(cmd, clients, fmt.Sprintf("Creating IP configuration %s...", name), resourceGroup, nicName, nic)
	if err != nil {
		return err
	}

	auditNic(cmd, armutil.Value(updated.ID), nicName)

	if cli.OutputFormat(cmd) == "json" {
		config, err := armutil.FindByName(updated.Properties.IPConfigurations, "IP configuration", name, ipConfigName)
		if err != nil {
			return err
		}
		return cli.PrintJSON(cmd, config)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created IP configuration %s on %s.\n", name, nicName)
	return nil
}

func IPConfigSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update an IP configuration",
		Long: `Update an IP configuration in place. Only the provided flags change.

Passing --private-ip-address "" reverts to dynamic allocation; passing
--subnet "" or --public-ip-address "" detaches the reference.`,
		RunE:         runIPConfigSet,
		SilenceUsage: true,
	}

	addIPConfigFlags(cmd)
	cmd.Flags().String("subnet", "", "Subnet name or ID (name needs --vnet-name)")
	cmd.Flags().String("vnet-name", "", "Virtual network holding --subnet")
	cmd.Flags().String("public-ip-address", "", "Public IP name or ID")
	cmd.Flags().String("private-ip-address", "", "Static private address (\"\" reverts to dynamic)")
	cmd.Flags().String("version", "", "Address version: IPv4 or IPv6")
	cmd.Flags().Bool("make-primary", false, "Make this the primary configuration")

	return cmd
}

func runIPConfigSet(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	nicName, _ := cmd.Flags().GetString("nic-name")
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, nicName)
	if err != nil {
		return fmt.Errorf("failed to get network interface %q: %w", nicName, err)
	}
	if nic.Properties == nil {
		nic.Properties = &armnetwork.InterfacePropertiesFormat{}
	}

	config, err := armutil.FindByName(nic.Properties.IPConfigurations, "IP configuration", name, ipConfigName)
	if err != nil {
		return err
	}
	if config.Properties == nil {
		config.Properties = &armnetwork.InterfaceIPConfigurationPropertiesFormat{}
	}

	if makePrimary, _ := cmd.Flags().GetBool("make-primary"); makePrimary {
		for _, c := range nic.Properties.IPConfigurations {
			if c != nil && c.Properties != nil {
				c.Properties.Primary = to.Ptr(false)
			}
		}
		config.Properties.Primary = to.Ptr(true)
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
	if cmd.Flags().Changed("public-ip-address") {
		if pip, _ := cmd.Flags().GetString("public-ip-address"); pip == "" {
			config.Properties.PublicIPAddress = nil
		} else {
			id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "publicIPAddresses", pip)
			config.Properties.PublicIPAddress = &armnetwork.PublicIPAddress{ID: to.Ptr(id)}
		}
	}
	if cmd.Flags().Changed("version") {
		rawVersion, _ := cmd.Flags().GetString("version")
		version, err := armutil.ParseEnum(rawVersion, "--version", armnetwork.PossibleIPVersionValues())
		if err != nil {
			return err
		}
		config.Properties.PrivateIPAddressVersion = to.Ptr(version)
	}

	updated, err := saveNic(cmd, clients, fmt.Sprintf("Updating IP configuration %s...", name), resourceGroup, nicName, nic)
	if err != nil {
		return err
	}

	auditNic(cmd, armutil.Value(updated.ID), nicName)

	if cli.OutputFormat(cmd) == "json" {
		config, err := armutil.FindByName(updated.Properties.IPConfigurations, "IP configuration", name, ipConfigName)
		if err != nil {
			return err
		}
		return cli.PrintJSON(cmd, config)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated IP configuration %s.\n", name)
	return nil
}

func IPConfigDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove an IP configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			nicName, _ := cmd.Flags().GetString("nic-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, nicName)
			if err != nil {
				return fmt.Errorf("failed to get network interface %q: %w", nicName, err)
			}
			if nic.Properties == nil {
				nic.Properties = &armnetwork.InterfacePropertiesFormat{}
			}

			var removed bool
			nic.Properties.IPConfigurations, removed = armutil.RemoveByName(nic.Properties.IPConfigurations, name, ipConfigName)
			if !removed {
				return fmt.Errorf("IP configuration %q not found", name)
			}

			updated, err := saveNic(cmd, clients, fmt.Sprintf("Deleting IP configuration %s...", name), resourceGroup, nicName, nic)
			if err != nil {
				return err
			}

			auditNic(cmd, armutil.Value(updated.ID), nicName)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted IP configuration %s from %s.\n", name, nicName)
			return nil
		},
		SilenceUsage: true,
	}

	addIPConfigFlags(cmd)

	return cmd
}

func IPConfigListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List IP configurations of a network interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			nicName, _ := cmd.Flags().GetString("nic-name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, nicName)
			if err != nil {
				return fmt.Errorf("failed to get network interface %q: %w", nicName, err)
			}

			var configs []*armnetwork.InterfaceIPConfiguration
			if nic.Properties != nil {
				configs = nic.Properties.IPConfigurations
			}

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, configs)
			}

			if len(configs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No IP configurations found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tPRIMARY\tPRIVATE IP\tALLOCATION\tSUBNET")
			fmt.Fprintln(w, "----\t-------\t----------\t----------\t------")
			for _, c := range configs {
				p := c.Properties
				if p == nil {
					continue
				}
				allocation, subnet := "", "-"
				if p.PrivateIPAllocationMethod != nil {
					allocation = string(*p.PrivateIPAllocationMethod)
				}
				if p.Subnet != nil {
					subnet = armutil.NameOf(armutil.Value(p.Subnet.ID))
				}
				fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%s\n",
					armutil.Value(c.Name),
					armutil.Value(p.Primary),
					armutil.Value(p.PrivateIPAddress),
					allocation,
					subnet,
				)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("nic-name", "", "Name of the network interface")
	cmd.MarkFlagRequired("nic-name")

	return cmd
}

func IPConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an IP configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			nicName, _ := cmd.Flags().GetString("nic-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, nicName)
			if err != nil {
				return fmt.Errorf("failed to get network interface %q: %w", nicName, err)
			}

			var configs []*armnetwork.InterfaceIPConfiguration
			if nic.Properties != nil {
				configs = nic.Properties.IPConfigurations
			}
			config, err := armutil.FindByName(configs, "IP configuration", name, ipConfigName)
			if err != nil {
				return err
			}

			return cli.PrintJSON(cmd, config)
		},
		SilenceUsage: true,
	}

	addIPConfigFlags(cmd)

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

// primarySubnet returns the primary configuration's subnet, falling back to
// the first configuration that has one.
func primarySubnet(configs []*armnetwork.InterfaceIPConfiguration) *armnetwork.Subnet {
	var first *armnetwork.Subnet
	for _, c := range configs {
		if c == nil || c.Properties == nil || c.Properties.Subnet == nil {
			continue
		}
		if first == nil {
			first = c.Properties.Subnet
		}
		if armutil.Value(c.Properties.Primary) {
			return c.Properties.Subnet
		}
	}
	return first
}

func saveNic(cmd *cobra.Command, clients *azure.Clients, title, resourceGroup, nicName string, nic armnetwork.Interface) (armnetwork.Interface, error) {
	var updated armnetwork.Interface
	err := cli.Spin(cmd, title, func() error {
		var err error
		updated, err = clients.Interfaces.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, nicName, nic)
		return err
	})
	if err != nil {
		return armnetwork.Interface{}, fmt.Errorf("failed to update network interface %q: %w", nicName, err)
	}
	return updated, nil
}
