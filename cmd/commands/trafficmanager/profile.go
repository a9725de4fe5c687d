package trafficmanager

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/trafficmanager/armtrafficmanager"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ProfileListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List Traffic Manager profiles",
		RunE:         runProfileList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Limit to a resource group")

	return cmd
}

func runProfileList(cmd *cobra.Command, args []string) error {
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	var profiles []*armtrafficmanager.Profile
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		profiles, err = clients.TrafficManagerProfiles.ListByResourceGroup(cmd.Context(), rg)
	} else {
		profiles, err = clients.TrafficManagerProfiles.ListBySubscription(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list Traffic Manager profiles: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, profiles)
	}

	if len(profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No Traffic Manager profiles found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tSTATUS\tROUTING\tFQDN\tTTL")
	fmt.Fprintln(w, "----\t--------------\t------\t-------\t----\t---")
	for _, p := range profiles {
		status, routing, fqdn, ttl := "-", "-", "-", "-"
		if p.Properties != nil {
			if p.Properties.ProfileStatus != nil {
				status = string(*p.Properties.ProfileStatus)
			}
			if p.Properties.TrafficRoutingMethod != nil {
				routing = string(*p.Properties.TrafficRoutingMethod)
			}
			if dns := p.Properties.DNSConfig; dns != nil {
				if dns.Fqdn != nil {
					fqdn = *dns.Fqdn
				}
				if dns.TTL != nil {
					ttl = fmt.Sprintf("%d", *dns.TTL)
				}
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			armutil.Value(p.Name),
			armutil.ResourceGroupOf(armutil.Value(p.ID)),
			status,
			routing,
			fqdn,
			ttl,
		)
	}
	return w.Flush()
}

func ProfileUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a Traffic Manager profile",
		Long: `Update a Traffic Manager profile in place. Only the provided flags change.

Example:
  aznet traffic-manager profile update -g my-rg -n my-profile --routing-method Weighted --ttl 60`,
		RunE:         runProfileUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the profile")
	cmd.Flags().String("status", "", "Profile status: Enabled or Disabled")
	cmd.Flags().String("routing-method", "", "Traffic routing method")
	cmd.Flags().Int64("ttl", 0, "DNS time to live in seconds")
	cmd.Flags().String("monitor-protocol", "", "Endpoint monitor protocol: HTTP, HTTPS or TCP")
	cmd.Flags().Int64("monitor-port", 0, "Endpoint monitor port")
	cmd.Flags().String("monitor-path", "", "Endpoint monitor path")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs (\"\" clears)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	profile, err := clients.TrafficManagerProfiles.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get Traffic Manager profile %q: %w", name, err)
	}
	if profile.Properties == nil {
		profile.Properties = &armtrafficmanager.ProfileProperties{}
	}

	if cmd.Flags().Changed("status") {
		raw, _ := cmd.Flags().GetString("status")
		status, err := armutil.ParseEnum(raw, "--status", armtrafficmanager.PossibleProfileStatusValues())
		if err != nil {
			return err
		}
		profile.Properties.ProfileStatus = to.Ptr(status)
	}
	if cmd.Flags().Changed("routing-method") {
		raw, _ := cmd.Flags().GetString("routing-method")
		method, err := armutil.ParseEnum(raw, "--routing-method", armtrafficmanager.PossibleTrafficRoutingMethodValues())
		if err != nil {
			return err
		}
		profile.Properties.TrafficRoutingMethod = to.Ptr(method)
	}
	if cmd.Flags().Changed("ttl") {
		ttl, _ := cmd.Flags().GetInt64("ttl")
		if profile.Properties.DNSConfig == nil {
			profile.Properties.DNSConfig = &armtrafficmanager.DNSConfig{}
		}
		profile.Properties.DNSConfig.TTL = to.Ptr(ttl)
	}
	if cmd.Flags().Changed("monitor-protocol") || cmd.Flags().Changed("monitor-port") || cmd.Flags().Changed("monitor-path") {
		if profile.Properties.MonitorConfig == nil {
			profile.Properties.MonitorConfig = &armtrafficmanager.MonitorConfig{}
		}
		monitor := profile.Properties.MonitorConfig
		if cmd.Flags().Changed("monitor-protocol") {
			raw, _ := cmd.Flags().GetString("monitor-protocol")
			protocol, err := armutil.ParseEnum(raw, "--monitor-protocol", armtrafficmanager.PossibleMonitorProtocolValues())
			if err != nil {
				return err
			}
			monitor.Protocol = to.Ptr(protocol)
		}
		if cmd.Flags().Changed("monitor-port") {
			port, _ := cmd.Flags().GetInt64("monitor-port")
			monitor.Port = to.Ptr(port)
		}
		if cmd.Flags().Changed("monitor-path") {
			path, _ := cmd.Flags().GetString("monitor-path")
			monitor.Path = to.Ptr(path)
		}
	}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		profile.Tags = cli.ParseTags(pairs)
	}

	var updated armtrafficmanager.Profile
	err = cli.Spin(cmd, fmt.Sprintf("Updating Traffic Manager profile %s...", name), func() error {
		var err error
		updated, err = clients.TrafficManagerProfiles.CreateOrUpdate(cmd.Context(), resourceGroup, name, profile)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update Traffic Manager profile %q: %w", name, err)
	}

	auditTrafficManager(cmd, "trafficManagerProfile", armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated Traffic Manager profile %s.\n", name)
	return nil
}
