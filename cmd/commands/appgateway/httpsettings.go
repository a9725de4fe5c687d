package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func HTTPSettingsCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Add a backend HTTP settings entry",
		RunE:         runHTTPSettingsCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().Int32("port", 0, "Backend port")
	cmd.Flags().String("protocol", "Http", "Backend protocol: Http or Https")
	cmd.Flags().String("cookie-based-affinity", "Disabled", "Cookie based affinity: Enabled or Disabled")
	cmd.Flags().Int32("timeout", 30, "Request timeout in seconds")
	cmd.Flags().String("probe", "", "Probe name or ID to associate")
	cmd.MarkFlagRequired("port")

	return cmd
}

func runHTTPSettingsCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")

	protocol, err := flagEnum(cmd, "protocol", armnetwork.PossibleApplicationGatewayProtocolValues())
	if err != nil {
		return err
	}
	affinity, err := flagEnum(cmd, "cookie-based-affinity", armnetwork.PossibleApplicationGatewayCookieBasedAffinityValues())
	if err != nil {
		return err
	}
	port, _ := cmd.Flags().GetInt32("port")
	timeout, _ := cmd.Flags().GetInt32("timeout")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	props := &armnetwork.ApplicationGatewayBackendHTTPSettingsPropertiesFormat{
		Port:                to.Ptr(port),
		Protocol:            to.Ptr(protocol),
		CookieBasedAffinity: to.Ptr(affinity),
		RequestTimeout:      to.Ptr(timeout),
	}
	if probe, _ := cmd.Flags().GetString("probe"); probe != "" {
		props.Probe = childRef(gw, "probes", probe)
	}

	settings := &armnetwork.ApplicationGatewayBackendHTTPSettings{Name: to.Ptr(name), Properties: props}
	var replaced bool
	gw.Properties.BackendHTTPSettingsCollection, replaced = armutil.UpsertByName(gw.Properties.BackendHTTPSettingsCollection, settings, settingsName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating HTTP settings %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "backendHttpSettings", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.BackendHTTPSettingsCollection, "backend HTTP settings", name, settingsName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created HTTP settings %s on %s.\n", name, gatewayName)
	return nil
}

func HTTPSettingsUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update a backend HTTP settings entry",
		RunE:         runHTTPSettingsUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().Int32("port", 0, "Backend port")
	cmd.Flags().String("protocol", "", "Backend protocol: Http or Https")
	cmd.Flags().String("cookie-based-affinity", "", "Cookie based affinity: Enabled or Disabled")
	cmd.Flags().Int32("timeout", 0, "Request timeout in seconds")
	cmd.Flags().String("probe", "", "Probe name or ID (\"\" detaches)")

	return cmd
}

func runHTTPSettingsUpdate(cmd *cobra.Command, args []string) error {
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

	settings, err := armutil.FindByName(gw.Properties.BackendHTTPSettingsCollection, "backend HTTP settings", name, settingsName)
	if err != nil {
		return err
	}
	if settings.Properties == nil {
		settings.Properties = &armnetwork.ApplicationGatewayBackendHTTPSettingsPropertiesFormat{}
	}
	p := settings.Properties

	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt32("port")
		p.Port = to.Ptr(port)
	}
	if cmd.Flags().Changed("protocol") {
		protocol, err := flagEnum(cmd, "protocol", armnetwork.PossibleApplicationGatewayProtocolValues())
		if err != nil {
			return err
		}
		p.Protocol = to.Ptr(protocol)
	}
	if cmd.Flags().Changed("cookie-based-affinity") {
		affinity, err := flagEnum(cmd, "cookie-based-affinity", armnetwork.PossibleApplicationGatewayCookieBasedAffinityValues())
		if err != nil {
			return err
		}
		p.CookieBasedAffinity = to.Ptr(affinity)
	}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetInt32("timeout")
		p.RequestTimeout = to.Ptr(timeout)
	}
	if cmd.Flags().Changed("probe") {
		if probe, _ := cmd.Flags().GetString("probe"); probe == "" {
			p.Probe = nil
		} else {
			p.Probe = childRef(gw, "probes", probe)
		}
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating HTTP settings %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "backendHttpSettings", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.BackendHTTPSettingsCollection, "backend HTTP settings", name, settingsName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated HTTP settings %s.\n", name)
	return nil
}
