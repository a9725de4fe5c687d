package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func HTTPListenerCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an HTTP listener",
		Long: `Add an HTTP listener to an application gateway.

The listener speaks HTTPS when an SSL certificate is attached and plain
HTTP otherwise. With both a certificate and a host name, server name
indication is required on incoming connections. When --frontend-ip is
omitted the gateway's first frontend IP configuration is used.

Example:
  aznet application-gateway http-listener create -g my-rg --gateway-name app-gw -n https-listener --frontend-port port443 --ssl-cert shop-cert --host-name shop.contoso.com`,
		RunE:         runHTTPListenerCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("frontend-ip", "", "Frontend IP configuration name or ID (defaults to the first)")
	cmd.Flags().String("frontend-port", "", "Frontend port name or ID")
	cmd.Flags().String("host-name", "", "Host name to match")
	cmd.Flags().String("ssl-cert", "", "SSL certificate name or ID, switches the listener to HTTPS")
	cmd.MarkFlagRequired("frontend-port")

	return cmd
}

func runHTTPListenerCreate(cmd *cobra.Command, args []string) error {
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

	frontendIP, _ := cmd.Flags().GetString("frontend-ip")
	if frontendIP == "" {
		frontendIP, err = firstChildID(gw.Properties.FrontendIPConfigurations, "frontend IP configurations", frontendID)
		if err != nil {
			return err
		}
	}
	frontendPort, _ := cmd.Flags().GetString("frontend-port")
	hostName, _ := cmd.Flags().GetString("host-name")
	sslCert, _ := cmd.Flags().GetString("ssl-cert")

	props := &armnetwork.ApplicationGatewayHTTPListenerPropertiesFormat{
		FrontendIPConfiguration: childRef(gw, "frontendIPConfigurations", frontendIP),
		FrontendPort:            childRef(gw, "frontendPorts", frontendPort),
		Protocol:                to.Ptr(armnetwork.ApplicationGatewayProtocolHTTP),
	}
	if hostName != "" {
		props.HostName = to.Ptr(hostName)
	}
	if sslCert != "" {
		props.SSLCertificate = childRef(gw, "sslCertificates", sslCert)
		props.Protocol = to.Ptr(armnetwork.ApplicationGatewayProtocolHTTPS)
		if hostName != "" {
			props.RequireServerNameIndication = to.Ptr(true)
		}
	}

	listener := &armnetwork.ApplicationGatewayHTTPListener{Name: to.Ptr(name), Properties: props}
	var replaced bool
	gw.Properties.HTTPListeners, replaced = armutil.UpsertByName(gw.Properties.HTTPListeners, listener, listenerName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating HTTP listener %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "httpListener", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.HTTPListeners, "HTTP listener", name, listenerName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created HTTP listener %s on %s.\n", name, gatewayName)
	return nil
}

func HTTPListenerUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update an HTTP listener",
		RunE:         runHTTPListenerUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("frontend-ip", "", "Frontend IP configuration name or ID")
	cmd.Flags().String("frontend-port", "", "Frontend port name or ID")
	cmd.Flags().String("host-name", "", "Host name to match (\"\" clears)")
	cmd.Flags().String("ssl-cert", "", "SSL certificate name or ID (\"\" detaches and reverts to HTTP)")

	return cmd
}

func runHTTPListenerUpdate(cmd *cobra.Command, args []string) error {
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

	listener, err := armutil.FindByName(gw.Properties.HTTPListeners, "HTTP listener", name, listenerName)
	if err != nil {
		return err
	}
	if listener.Properties == nil {
		listener.Properties = &armnetwork.ApplicationGatewayHTTPListenerPropertiesFormat{}
	}
	p := listener.Properties

	if cmd.Flags().Changed("frontend-ip") {
		v, _ := cmd.Flags().GetString("frontend-ip")
		p.FrontendIPConfiguration = childRef(gw, "frontendIPConfigurations", v)
	}
	if cmd.Flags().Changed("frontend-port") {
		v, _ := cmd.Flags().GetString("frontend-port")
		p.FrontendPort = childRef(gw, "frontendPorts", v)
	}
	if cmd.Flags().Changed("ssl-cert") {
		if v, _ := cmd.Flags().GetString("ssl-cert"); v == "" {
			p.SSLCertificate = nil
			p.Protocol = to.Ptr(armnetwork.ApplicationGatewayProtocolHTTP)
		} else {
			p.SSLCertificate = childRef(gw, "sslCertificates", v)
			p.Protocol = to.Ptr(armnetwork.ApplicationGatewayProtocolHTTPS)
		}
	}
	if cmd.Flags().Changed("host-name") {
		if v, _ := cmd.Flags().GetString("host-name"); v == "" {
			p.HostName = nil
		} else {
			p.HostName = to.Ptr(v)
		}
	}
	isHTTPS := p.Protocol != nil && *p.Protocol == armnetwork.ApplicationGatewayProtocolHTTPS
	p.RequireServerNameIndication = to.Ptr(p.HostName != nil && isHTTPS)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating HTTP listener %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "httpListener", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.HTTPListeners, "HTTP listener", name, listenerName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated HTTP listener %s.\n", name)
	return nil
}
