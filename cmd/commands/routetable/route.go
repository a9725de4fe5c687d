package routetable

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func addRouteFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("route-table-name", "", "Name of the route table")
	cmd.Flags().StringP("name", "n", "", "Name of the route")
	cmd.MarkFlagRequired("route-table-name")
	cmd.MarkFlagRequired("name")
}

func RouteCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a route",
		Long: `Create a route in a route table.

Example:
  aznet route-table route create -g my-rg --route-table-name my-rt -n to-appliance --address-prefix 10.1.0.0/16 --next-hop-type VirtualAppliance --next-hop-ip-address 10.0.100.4`,
		RunE:         runRouteCreate,
		SilenceUsage: true,
	}

	addRouteFlags(cmd)
	cmd.Flags().String("address-prefix", "", "Destination CIDR the route applies to")
	cmd.Flags().String("next-hop-type", "", "Next hop: VirtualNetworkGateway, VnetLocal, Internet, VirtualAppliance or None")
	cmd.Flags().String("next-hop-ip-address", "", "Forwarding address, required for VirtualAppliance hops")
	cmd.MarkFlagRequired("address-prefix")
	cmd.MarkFlagRequired("next-hop-type")

	return cmd
}

func runRouteCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	tableName, _ := cmd.Flags().GetString("route-table-name")
	name, _ := cmd.Flags().GetString("name")
	prefix, _ := cmd.Flags().GetString("address-prefix")

	rawHop, _ := cmd.Flags().GetString("next-hop-type")
	hopType, err := armutil.ParseEnum(rawHop, "--next-hop-type", armnetwork.PossibleRouteNextHopTypeValues())
	if err != nil {
		return err
	}

	route := armnetwork.Route{
		Name: to.Ptr(name),
		Properties: &armnetwork.RoutePropertiesFormat{
			AddressPrefix: to.Ptr(prefix),
			NextHopType:   to.Ptr(hopType),
		},
	}
	if hopIP, _ := cmd.Flags().GetString("next-hop-ip-address"); hopIP != "" {
		route.Properties.NextHopIPAddress = to.Ptr(hopIP)
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	var created armnetwork.Route
	err = cli.Spin(cmd, fmt.Sprintf("Creating route %s...", name), func() error {
		var err error
		created, err = clients.Routes.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, tableName, name, route)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create route %q: %w", name, err)
	}

	auditRoute(cmd, armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created route %s in %s.\n", name, tableName)
	return nil
}

func RouteUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update a route",
		RunE:         runRouteUpdate,
		SilenceUsage: true,
	}

	addRouteFlags(cmd)
	cmd.Flags().String("address-prefix", "", "Destination CIDR the route applies to")
	cmd.Flags().String("next-hop-type", "", "Next hop: VirtualNetworkGateway, VnetLocal, Internet, VirtualAppliance or None")
	cmd.Flags().String("next-hop-ip-address", "", "Forwarding address, required for VirtualAppliance hops")

	return cmd
}

func runRouteUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	tableName, _ := cmd.Flags().GetString("route-table-name")
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	route, err := clients.Routes.Get(cmd.Context(), resourceGroup, tableName, name)
	if err != nil {
		return fmt.Errorf("failed to get route %q: %w", name, err)
	}
	if route.Properties == nil {
		route.Properties = &armnetwork.RoutePropertiesFormat{}
	}

	if cmd.Flags().Changed("address-prefix") {
		v, _ := cmd.Flags().GetString("address-prefix")
		route.Properties.AddressPrefix = to.Ptr(v)
	}
	if cmd.Flags().Changed("next-hop-type") {
		raw, _ := cmd.Flags().GetString("next-hop-type")
		hopType, err := armutil.ParseEnum(raw, "--next-hop-type", armnetwork.PossibleRouteNextHopTypeValues())
		if err != nil {
			return err
		}
		route.Properties.NextHopType = to.Ptr(hopType)
	}
	if cmd.Flags().Changed("next-hop-ip-address") {
		v, _ := cmd.Flags().GetString("next-hop-ip-address")
		route.Properties.NextHopIPAddress = to.Ptr(v)
	}

	var updated armnetwork.Route
	err = cli.Spin(cmd, fmt.Sprintf("Updating route %s...", name), func() error {
		var err error
		updated, err = clients.Routes.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, tableName, name, route)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update route %q: %w", name, err)
	}

	auditRoute(cmd, armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated route %s.\n", name)
	return nil
}

func RouteListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routes in a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			tableName, _ := cmd.Flags().GetString("route-table-name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			routes, err := clients.Routes.List(cmd.Context(), resourceGroup, tableName)
			if err != nil {
				return fmt.Errorf("failed to list routes: %w", err)
			}

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, routes)
			}

			if len(routes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No routes found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tADDRESS PREFIX\tNEXT HOP\tNEXT HOP IP")
			fmt.Fprintln(w, "----\t--------------\t--------\t-----------")
			for _, r := range routes {
				p := r.Properties
				if p == nil {
					continue
				}
				hopType := ""
				if p.NextHopType != nil {
					hopType = string(*p.NextHopType)
				}
				hopIP := armutil.Value(p.NextHopIPAddress)
				if hopIP == "" {
					hopIP = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					armutil.Value(r.Name),
					armutil.Value(p.AddressPrefix),
					hopType,
					hopIP,
				)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("route-table-name", "", "Name of the route table")
	cmd.MarkFlagRequired("route-table-name")

	return cmd
}

func RouteShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			tableName, _ := cmd.Flags().GetString("route-table-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			route, err := clients.Routes.Get(cmd.Context(), resourceGroup, tableName, name)
			if err != nil {
				return fmt.Errorf("failed to get route %q: %w", name, err)
			}

			return cli.PrintJSON(cmd, route)
		},
		SilenceUsage: true,
	}

	addRouteFlags(cmd)

	return cmd
}

func RouteDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			tableName, _ := cmd.Flags().GetString("route-table-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			err = cli.Spin(cmd, fmt.Sprintf("Deleting route %s...", name), func() error {
				return clients.Routes.DeleteAndWait(cmd.Context(), resourceGroup, tableName, name)
			})
			if err != nil {
				return fmt.Errorf("failed to delete route %q: %w", name, err)
			}

			auditRoute(cmd, "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted route %s from %s.\n", name, tableName)
			return nil
		},
		SilenceUsage: true,
	}

	addRouteFlags(cmd)

	return cmd
}
