package lb

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func NatPoolCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an inbound NAT pool",
		Long: `Add an inbound NAT pool mapping a frontend port range onto a single
backend port, one frontend port per pool member.

Example:
  aznet lb inbound-nat-pool create -g my-rg --lb-name web-lb -n ssh-pool --protocol Tcp --frontend-port-range-start 50000 --frontend-port-range-end 50119 --backend-port 22`,
		RunE:         runNatPoolCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Transport protocol: Tcp, Udp or All")
	cmd.Flags().Int32("frontend-port-range-start", 0, "First frontend port of the range")
	cmd.Flags().Int32("frontend-port-range-end", 0, "Last frontend port of the range")
	cmd.Flags().Int32("backend-port", 0, "Port forwarded to the backend")
	cmd.Flags().String("frontend-ip-name", "", "Frontend IP configuration (defaults to the only one)")
	cmd.MarkFlagRequired("protocol")
	cmd.MarkFlagRequired("frontend-port-range-start")
	cmd.MarkFlagRequired("frontend-port-range-end")
	cmd.MarkFlagRequired("backend-port")

	return cmd
}

func runNatPoolCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	lbName, _ := cmd.Flags().GetString("lb-name")
	name, _ := cmd.Flags().GetString("name")

	rawProtocol, _ := cmd.Flags().GetString("protocol")
	protocol, err := armutil.ParseEnum(rawProtocol, "--protocol", armnetwork.PossibleTransportProtocolValues())
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

	frontend, err := pickFrontend(cmd, lb)
	if err != nil {
		return err
	}

	rangeStart, _ := cmd.Flags().GetInt32("frontend-port-range-start")
	rangeEnd, _ := cmd.Flags().GetInt32("frontend-port-range-end")
	backendPort, _ := cmd.Flags().GetInt32("backend-port")
	newPool := &armnetwork.InboundNatPool{
		Name: to.Ptr(name),
		Properties: &armnetwork.InboundNatPoolPropertiesFormat{
			Protocol:                to.Ptr(protocol),
			FrontendPortRangeStart:  to.Ptr(rangeStart),
			FrontendPortRangeEnd:    to.Ptr(rangeEnd),
			BackendPort:             to.Ptr(backendPort),
			FrontendIPConfiguration: &armnetwork.SubResource{ID: frontend.ID},
		},
	}

	var replaced bool
	lb.Properties.InboundNatPools, replaced = armutil.UpsertByName(lb.Properties.InboundNatPools, newPool, natPoolName)
	warnReplaced(cmd, replaced, name)

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Creating inbound NAT pool %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	created, err := armutil.FindByName(updated.Properties.InboundNatPools, "inbound NAT pool", name, natPoolName)
	if err != nil {
		return err
	}

	auditLb(cmd, "inboundNatPool", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created inbound NAT pool %s on %s.\n", name, lbName)
	return nil
}

func NatPoolSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "set",
		Short:        "Update an inbound NAT pool",
		RunE:         runNatPoolSet,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Transport protocol: Tcp, Udp or All")
	cmd.Flags().Int32("frontend-port-range-start", 0, "First frontend port of the range")
	cmd.Flags().Int32("frontend-port-range-end", 0, "Last frontend port of the range")
	cmd.Flags().Int32("backend-port", 0, "Port forwarded to the backend")
	cmd.Flags().String("frontend-ip-name", "", "Re-point to another frontend IP configuration")

	return cmd
}

func runNatPoolSet(cmd *cobra.Command, args []string) error {
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

	pool, err := armutil.FindByName(lb.Properties.InboundNatPools, "inbound NAT pool", name, natPoolName)
	if err != nil {
		return err
	}
	if pool.Properties == nil {
		pool.Properties = &armnetwork.InboundNatPoolPropertiesFormat{}
	}

	if frontendIP, _ := cmd.Flags().GetString("frontend-ip-name"); frontendIP != "" {
		frontend, err := armutil.FindByName(lb.Properties.FrontendIPConfigurations, "frontend IP configuration", frontendIP, frontendName)
		if err != nil {
			return err
		}
		pool.Properties.FrontendIPConfiguration = &armnetwork.SubResource{ID: frontend.ID}
	}
	if cmd.Flags().Changed("protocol") {
		rawProtocol, _ := cmd.Flags().GetString("protocol")
		protocol, err := armutil.ParseEnum(rawProtocol, "--protocol", armnetwork.PossibleTransportProtocolValues())
		if err != nil {
			return err
		}
		pool.Properties.Protocol = to.Ptr(protocol)
	}
	if cmd.Flags().Changed("frontend-port-range-start") {
		port, _ := cmd.Flags().GetInt32("frontend-port-range-start")
		pool.Properties.FrontendPortRangeStart = to.Ptr(port)
	}
	if cmd.Flags().Changed("frontend-port-range-end") {
		port, _ := cmd.Flags().GetInt32("frontend-port-range-end")
		pool.Properties.FrontendPortRangeEnd = to.Ptr(port)
	}
	if cmd.Flags().Changed("backend-port") {
		port, _ := cmd.Flags().GetInt32("backend-port")
		pool.Properties.BackendPort = to.Ptr(port)
	}

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Updating inbound NAT pool %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	result, err := armutil.FindByName(updated.Properties.InboundNatPools, "inbound NAT pool", name, natPoolName)
	if err != nil {
		return err
	}

	auditLb(cmd, "inboundNatPool", armutil.Value(result.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated inbound NAT pool %s.\n", name)
	return nil
}

func NatPoolDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove an inbound NAT pool",
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
			lb.Properties.InboundNatPools, removed = armutil.RemoveByName(lb.Properties.InboundNatPools, name, natPoolName)
			if !removed {
				return fmt.Errorf("inbound NAT pool %q not found", name)
			}

			if _, err := saveLb(cmd, clients, fmt.Sprintf("Deleting inbound NAT pool %s...", name), resourceGroup, lbName, lb); err != nil {
				return err
			}

			auditLb(cmd, "inboundNatPool", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted inbound NAT pool %s from %s.\n", name, lbName)
			return nil
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}
