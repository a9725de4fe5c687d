package appgateway

import (
	"fmt"
	"net"

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
		Long: `Add a backend address pool to an application gateway.

Servers are given as IP addresses or FQDNs; each entry is classified by
whether it parses as an address.

Example:
  aznet application-gateway address-pool create -g my-rg --gateway-name app-gw -n web-pool --servers 10.0.1.4,10.0.1.5,app.contoso.com`,
		RunE:         runAddressPoolCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().StringSlice("servers", nil, "Backend servers as IP addresses or FQDNs")
	cmd.MarkFlagRequired("servers")

	return cmd
}

func runAddressPoolCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	servers, _ := cmd.Flags().GetStringSlice("servers")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	pool := &armnetwork.ApplicationGatewayBackendAddressPool{
		Name: to.Ptr(name),
		Properties: &armnetwork.ApplicationGatewayBackendAddressPoolPropertiesFormat{
			BackendAddresses: backendAddresses(servers),
		},
	}
	var replaced bool
	gw.Properties.BackendAddressPools, replaced = armutil.UpsertByName(gw.Properties.BackendAddressPools, pool, poolName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating address pool %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "backendAddressPool", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.BackendAddressPools, "backend address pool", name, poolName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created address pool %s on %s.\n", name, gatewayName)
	return nil
}

func AddressPoolUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Replace the servers of a backend address pool",
		RunE:         runAddressPoolUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().StringSlice("servers", nil, "Backend servers as IP addresses or FQDNs")

	return cmd
}

func runAddressPoolUpdate(cmd *cobra.Command, args []string) error {
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

	pool, err := armutil.FindByName(gw.Properties.BackendAddressPools, "backend address pool", name, poolName)
	if err != nil {
		return err
	}
	if pool.Properties == nil {
		pool.Properties = &armnetwork.ApplicationGatewayBackendAddressPoolPropertiesFormat{}
	}
	if cmd.Flags().Changed("servers") {
		servers, _ := cmd.Flags().GetStringSlice("servers")
		pool.Properties.BackendAddresses = backendAddresses(servers)
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating address pool %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "backendAddressPool", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.BackendAddressPools, "backend address pool", name, poolName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated address pool %s.\n", name)
	return nil
}

// backendAddresses classifies each server entry as an IP address or FQDN.
func backendAddresses(servers []string) []*armnetwork.ApplicationGatewayBackendAddress {
	out := make([]*armnetwork.ApplicationGatewayBackendAddress, 0, len(servers))
	for _, server := range servers {
		if server == "" {
			continue
		}
		addr := &armnetwork.ApplicationGatewayBackendAddress{}
		if net.ParseIP(server) != nil {
			addr.IPAddress = to.Ptr(server)
		} else {
			addr.Fqdn = to.Ptr(server)
		}
		out = append(out, addr)
	}
	return out
}
