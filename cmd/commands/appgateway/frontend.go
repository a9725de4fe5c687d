package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func FrontendIPCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a frontend IP configuration",
		Long: `Add a frontend IP configuration to an application gateway.

A public frontend references a public IP address; a private frontend
references a subnet and optionally pins a static private address.

Example:
  aznet application-gateway frontend-ip create -g my-rg --gateway-name app-gw -n public-fe --public-ip-address app-gw-ip`,
		RunE:         runFrontendIPCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("public-ip-address", "", "Public IP name or ID")
	cmd.Flags().String("subnet", "", "Subnet name or ID (name needs --vnet-name)")
	cmd.Flags().String("vnet-name", "", "Virtual network holding --subnet")
	cmd.Flags().String("private-ip-address", "", "Static private address inside --subnet")

	return cmd
}

func runFrontendIPCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	props := &armnetwork.ApplicationGatewayFrontendIPConfigurationPropertiesFormat{}
	publicIP, _ := cmd.Flags().GetString("public-ip-address")
	subnet, _ := cmd.Flags().GetString("subnet")
	switch {
	case publicIP != "":
		id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "publicIPAddresses", publicIP)
		props.PublicIPAddress = &armnetwork.SubResource{ID: to.Ptr(id)}
	case subnet != "":
		id, err := resolveSubnetID(cmd, session.SubscriptionID, resourceGroup, subnet)
		if err != nil {
			return err
		}
		props.Subnet = &armnetwork.SubResource{ID: to.Ptr(id)}
		props.PrivateIPAllocationMethod = to.Ptr(armnetwork.IPAllocationMethodDynamic)
		if addr, _ := cmd.Flags().GetString("private-ip-address"); addr != "" {
			props.PrivateIPAddress = to.Ptr(addr)
			props.PrivateIPAllocationMethod = to.Ptr(armnetwork.IPAllocationMethodStatic)
		}
	default:
		return fmt.Errorf("incorrect usage: --public-ip-address or --subnet is required")
	}

	newConfig := &armnetwork.ApplicationGatewayFrontendIPConfiguration{Name: to.Ptr(name), Properties: props}
	var replaced bool
	gw.Properties.FrontendIPConfigurations, replaced = armutil.UpsertByName(gw.Properties.FrontendIPConfigurations, newConfig, frontendName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating frontend IP %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "frontendIPConfiguration", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created frontend IP %s on %s.\n", name, gatewayName)
	return nil
}

func FrontendIPUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update a frontend IP configuration",
		RunE:         runFrontendIPUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("public-ip-address", "", "Public IP name or ID (\"\" detaches)")
	cmd.Flags().String("subnet", "", "Subnet name or ID (name needs --vnet-name; \"\" detaches)")
	cmd.Flags().String("vnet-name", "", "Virtual network holding --subnet")
	cmd.Flags().String("private-ip-address", "", "Static private address (\"\" reverts to dynamic)")

	return cmd
}

func runFrontendIPUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	config, err := armutil.FindByName(gw.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
	if err != nil {
		return err
	}
	if config.Properties == nil {
		config.Properties = &armnetwork.ApplicationGatewayFrontendIPConfigurationPropertiesFormat{}
	}

	if cmd.Flags().Changed("public-ip-address") {
		if pip, _ := cmd.Flags().GetString("public-ip-address"); pip == "" {
			config.Properties.PublicIPAddress = nil
		} else {
			id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "publicIPAddresses", pip)
			config.Properties.PublicIPAddress = &armnetwork.SubResource{ID: to.Ptr(id)}
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
			config.Properties.Subnet = &armnetwork.SubResource{ID: to.Ptr(id)}
		}
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

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating frontend IP %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "frontendIPConfiguration", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated frontend IP %s.\n", name)
	return nil
}

func FrontendPortCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Add a frontend port",
		RunE:         runFrontendPortCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().Int32("port", 0, "Port to listen on")
	cmd.MarkFlagRequired("port")

	return cmd
}

func runFrontendPortCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	port, _ := cmd.Flags().GetInt32("port")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	newPort := &armnetwork.ApplicationGatewayFrontendPort{
		Name: to.Ptr(name),
		Properties: &armnetwork.ApplicationGatewayFrontendPortPropertiesFormat{
			Port: to.Ptr(port),
		},
	}
	var replaced bool
	gw.Properties.FrontendPorts, replaced = armutil.UpsertByName(gw.Properties.FrontendPorts, newPort, portName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating frontend port %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "frontendPort", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.FrontendPorts, "frontend port", name, portName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created frontend port %s on %s.\n", name, gatewayName)
	return nil
}

func FrontendPortUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Change the port of a frontend port entry",
		RunE:         runFrontendPortUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().Int32("port", 0, "Port to listen on")

	return cmd
}

func runFrontendPortUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	entry, err := armutil.FindByName(gw.Properties.FrontendPorts, "frontend port", name, portName)
	if err != nil {
		return err
	}
	if entry.Properties == nil {
		entry.Properties = &armnetwork.ApplicationGatewayFrontendPortPropertiesFormat{}
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt32("port")
		entry.Properties.Port = to.Ptr(port)
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating frontend port %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "frontendPort", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.FrontendPorts, "frontend port", name, portName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated frontend port %s.\n", name)
	return nil
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
