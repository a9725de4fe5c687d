package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ProbeCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a health probe",
		Long: `Add a health probe to an application gateway.

Example:
  aznet application-gateway probe create -g my-rg --gateway-name app-gw -n health --protocol Http --host 127.0.0.1 --path /healthz`,
		RunE:         runProbeCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Probe protocol: Http or Https")
	cmd.Flags().String("host", "", "Host header sent with the probe")
	cmd.Flags().String("path", "", "Relative path to probe, must start with /")
	cmd.Flags().Int32("interval", 30, "Seconds between probes")
	cmd.Flags().Int32("timeout", 120, "Seconds before the probe times out")
	cmd.Flags().Int32("threshold", 8, "Failed probes before the backend is marked down")
	cmd.MarkFlagRequired("protocol")
	cmd.MarkFlagRequired("host")
	cmd.MarkFlagRequired("path")

	return cmd
}

func runProbeCreate(cmd *cobra.Command, args []string) error {
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
	host, _ := cmd.Flags().GetString("host")
	path, _ := cmd.Flags().GetString("path")
	interval, _ := cmd.Flags().GetInt32("interval")
	timeout, _ := cmd.Flags().GetInt32("timeout")
	threshold, _ := cmd.Flags().GetInt32("threshold")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	probe := &armnetwork.ApplicationGatewayProbe{
		Name: to.Ptr(name),
		Properties: &armnetwork.ApplicationGatewayProbePropertiesFormat{
			Protocol:           to.Ptr(protocol),
			Host:               to.Ptr(host),
			Path:               to.Ptr(path),
			Interval:           to.Ptr(interval),
			Timeout:            to.Ptr(timeout),
			UnhealthyThreshold: to.Ptr(threshold),
		},
	}
	var replaced bool
	gw.Properties.Probes, replaced = armutil.UpsertByName(gw.Properties.Probes, probe, probeName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating probe %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "probe", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.Probes, "probe", name, probeName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created probe %s on %s.\n", name, gatewayName)
	return nil
}

func ProbeUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update a health probe",
		RunE:         runProbeUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Probe protocol: Http or Https")
	cmd.Flags().String("host", "", "Host header sent with the probe")
	cmd.Flags().String("path", "", "Relative path to probe, must start with /")
	cmd.Flags().Int32("interval", 0, "Seconds between probes")
	cmd.Flags().Int32("timeout", 0, "Seconds before the probe times out")
	cmd.Flags().Int32("threshold", 0, "Failed probes before the backend is marked down")

	return cmd
}

func runProbeUpdate(cmd *cobra.Command, args []string) error {
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

	probe, err := armutil.FindByName(gw.Properties.Probes, "probe", name, probeName)
	if err != nil {
		return err
	}
	if probe.Properties == nil {
		probe.Properties = &armnetwork.ApplicationGatewayProbePropertiesFormat{}
	}
	p := probe.Properties

	if cmd.Flags().Changed("protocol") {
		protocol, err := flagEnum(cmd, "protocol", armnetwork.PossibleApplicationGatewayProtocolValues())
		if err != nil {
			return err
		}
		p.Protocol = to.Ptr(protocol)
	}
	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		p.Host = to.Ptr(host)
	}
	if cmd.Flags().Changed("path") {
		path, _ := cmd.Flags().GetString("path")
		p.Path = to.Ptr(path)
	}
	if cmd.Flags().Changed("interval") {
		interval, _ := cmd.Flags().GetInt32("interval")
		p.Interval = to.Ptr(interval)
	}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetInt32("timeout")
		p.Timeout = to.Ptr(timeout)
	}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetInt32("threshold")
		p.UnhealthyThreshold = to.Ptr(threshold)
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating probe %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "probe", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.Probes, "probe", name, probeName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated probe %s.\n", name)
	return nil
}
