package lb

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
		Long: `Add a health probe to a load balancer.

Example:
  aznet lb probe create -g my-rg --lb-name web-lb -n http-probe --protocol Http --port 80 --path /healthz`,
		RunE:         runProbeCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Probe protocol: Http, Https or Tcp")
	cmd.Flags().Int32("port", 0, "Port to probe")
	cmd.Flags().String("path", "", "Request path for HTTP probes")
	cmd.Flags().Int32("interval", 0, "Seconds between probes")
	cmd.Flags().Int32("threshold", 0, "Failures before a backend is taken out")
	cmd.MarkFlagRequired("protocol")
	cmd.MarkFlagRequired("port")

	return cmd
}

func runProbeCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	lbName, _ := cmd.Flags().GetString("lb-name")
	name, _ := cmd.Flags().GetString("name")

	rawProtocol, _ := cmd.Flags().GetString("protocol")
	protocol, err := armutil.ParseEnum(rawProtocol, "--protocol", armnetwork.PossibleProbeProtocolValues())
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	lb, err := getLb(cmd, clients, resourceGroup, lbName)
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt32("port")
	props := &armnetwork.ProbePropertiesFormat{
		Protocol: to.Ptr(protocol),
		Port:     to.Ptr(port),
	}
	if path, _ := cmd.Flags().GetString("path"); path != "" {
		props.RequestPath = to.Ptr(path)
	}
	if cmd.Flags().Changed("interval") {
		interval, _ := cmd.Flags().GetInt32("interval")
		props.IntervalInSeconds = to.Ptr(interval)
	}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetInt32("threshold")
		props.NumberOfProbes = to.Ptr(threshold)
	}

	newProbe := &armnetwork.Probe{Name: to.Ptr(name), Properties: props}
	var replaced bool
	lb.Properties.Probes, replaced = armutil.UpsertByName(lb.Properties.Probes, newProbe, probeName)
	warnReplaced(cmd, replaced, name)

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Creating probe %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	created, err := armutil.FindByName(updated.Properties.Probes, "probe", name, probeName)
	if err != nil {
		return err
	}

	auditLb(cmd, "probe", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created probe %s on %s.\n", name, lbName)
	return nil
}

func ProbeSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "set",
		Short:        "Update a health probe",
		RunE:         runProbeSet,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Probe protocol: Http, Https or Tcp")
	cmd.Flags().Int32("port", 0, "Port to probe")
	cmd.Flags().String("path", "", "Request path for HTTP probes (\"\" clears)")
	cmd.Flags().Int32("interval", 0, "Seconds between probes")
	cmd.Flags().Int32("threshold", 0, "Failures before a backend is taken out")

	return cmd
}

func runProbeSet(cmd *cobra.Command, args []string) error {
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

	probe, err := armutil.FindByName(lb.Properties.Probes, "probe", name, probeName)
	if err != nil {
		return err
	}
	if probe.Properties == nil {
		probe.Properties = &armnetwork.ProbePropertiesFormat{}
	}

	if cmd.Flags().Changed("protocol") {
		rawProtocol, _ := cmd.Flags().GetString("protocol")
		protocol, err := armutil.ParseEnum(rawProtocol, "--protocol", armnetwork.PossibleProbeProtocolValues())
		if err != nil {
			return err
		}
		probe.Properties.Protocol = to.Ptr(protocol)
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt32("port")
		probe.Properties.Port = to.Ptr(port)
	}
	if cmd.Flags().Changed("path") {
		if path, _ := cmd.Flags().GetString("path"); path == "" {
			probe.Properties.RequestPath = nil
		} else {
			probe.Properties.RequestPath = to.Ptr(path)
		}
	}
	if cmd.Flags().Changed("interval") {
		interval, _ := cmd.Flags().GetInt32("interval")
		probe.Properties.IntervalInSeconds = to.Ptr(interval)
	}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetInt32("threshold")
		probe.Properties.NumberOfProbes = to.Ptr(threshold)
	}

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Updating probe %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	result, err := armutil.FindByName(updated.Properties.Probes, "probe", name, probeName)
	if err != nil {
		return err
	}

	auditLb(cmd, "probe", armutil.Value(result.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated probe %s.\n", name)
	return nil
}

func ProbeDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a health probe",
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
			lb.Properties.Probes, removed = armutil.RemoveByName(lb.Properties.Probes, name, probeName)
			if !removed {
				return fmt.Errorf("probe %q not found", name)
			}

			if _, err := saveLb(cmd, clients, fmt.Sprintf("Deleting probe %s...", name), resourceGroup, lbName, lb); err != nil {
				return err
			}

			auditLb(cmd, "probe", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted probe %s from %s.\n", name, lbName)
			return nil
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}
