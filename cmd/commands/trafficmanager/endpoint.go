package trafficmanager

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/trafficmanager/armtrafficmanager"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func addEndpointFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("profile-name", "", "Name of the profile")
	cmd.Flags().StringP("name", "n", "", "Name of the endpoint")
	cmd.Flags().String("type", "", "Endpoint type: azureEndpoints, externalEndpoints or nestedEndpoints")
	cmd.Flags().String("target", "", "Fully qualified DNS name of the endpoint")
	cmd.Flags().String("target-resource-id", "", "Resource ID of the Azure target")
	cmd.Flags().String("status", "", "Endpoint status: Enabled or Disabled")
	cmd.Flags().Int64("weight", 0, "Weight for the Weighted routing method (1-1000)")
	cmd.Flags().Int64("priority", 0, "Priority for the Priority routing method (1-1000)")
	cmd.Flags().String("endpoint-location", "", "Azure region of an external or nested endpoint")
	cmd.Flags().Int64("min-child-endpoints", 0, "Minimum healthy child endpoints of a nested endpoint")
	cmd.MarkFlagRequired("profile-name")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")
}

func EndpointCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an endpoint on a profile",
		Long: `Create an endpoint on a Traffic Manager profile. Azure endpoints point at
a resource ID, external endpoints at a DNS name, nested endpoints at a
child profile.

Example:
  aznet traffic-manager endpoint create -g my-rg --profile-name my-profile \
    -n web-eu --type externalEndpoints --target eu.contoso.com --weight 50`,
		RunE:         runEndpointCreate,
		SilenceUsage: true,
	}

	addEndpointFlags(cmd)

	return cmd
}

func runEndpointCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	profileName, _ := cmd.Flags().GetString("profile-name")
	name, _ := cmd.Flags().GetString("name")
	endpointType, err := flagEndpointType(cmd)
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	endpoint := armtrafficmanager.Endpoint{
		Name:       to.Ptr(name),
		Properties: &armtrafficmanager.EndpointProperties{},
	}
	if err := applyEndpointFlags(cmd, endpoint.Properties); err != nil {
		return err
	}

	var created armtrafficmanager.Endpoint
	err = cli.Spin(cmd, fmt.Sprintf("Creating endpoint %s...", name), func() error {
		var err error
		created, err = clients.TrafficManagerEndpoints.CreateOrUpdate(cmd.Context(), resourceGroup, profileName, endpointType, name, endpoint)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create endpoint %q: %w", name, err)
	}

	auditTrafficManager(cmd, "trafficManagerEndpoint", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created endpoint %s on %s.\n", name, profileName)
	return nil
}

func EndpointUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update an endpoint",
		RunE:         runEndpointUpdate,
		SilenceUsage: true,
	}

	addEndpointFlags(cmd)

	return cmd
}

func runEndpointUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	profileName, _ := cmd.Flags().GetString("profile-name")
	name, _ := cmd.Flags().GetString("name")
	endpointType, err := flagEndpointType(cmd)
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	endpoint, err := clients.TrafficManagerEndpoints.Get(cmd.Context(), resourceGroup, profileName, endpointType, name)
	if err != nil {
		return fmt.Errorf("failed to get endpoint %q: %w", name, err)
	}
	if endpoint.Properties == nil {
		endpoint.Properties = &armtrafficmanager.EndpointProperties{}
	}
	if err := applyEndpointFlags(cmd, endpoint.Properties); err != nil {
		return err
	}

	var updated armtrafficmanager.Endpoint
	err = cli.Spin(cmd, fmt.Sprintf("Updating endpoint %s...", name), func() error {
		var err error
		updated, err = clients.TrafficManagerEndpoints.CreateOrUpdate(cmd.Context(), resourceGroup, profileName, endpointType, name, endpoint)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update endpoint %q: %w", name, err)
	}

	auditTrafficManager(cmd, "trafficManagerEndpoint", armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated endpoint %s.\n", name)
	return nil
}

func EndpointListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List endpoints of a profile",
		RunE:         runEndpointList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("profile-name", "", "Name of the profile")
	cmd.Flags().String("type", "", "Limit to one endpoint type")
	cmd.MarkFlagRequired("profile-name")

	return cmd
}

func runEndpointList(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	profileName, _ := cmd.Flags().GetString("profile-name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	profile, err := clients.TrafficManagerProfiles.Get(cmd.Context(), resourceGroup, profileName)
	if err != nil {
		return fmt.Errorf("failed to get Traffic Manager profile %q: %w", profileName, err)
	}

	var endpoints []*armtrafficmanager.Endpoint
	if profile.Properties != nil {
		endpoints = profile.Properties.Endpoints
	}
	if cmd.Flags().Changed("type") {
		endpointType, err := flagEndpointType(cmd)
		if err != nil {
			return err
		}
		var filtered []*armtrafficmanager.Endpoint
		for _, e := range endpoints {
			if e != nil && strings.EqualFold(endpointTypeOf(e), string(endpointType)) {
				filtered = append(filtered, e)
			}
		}
		endpoints = filtered
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, endpoints)
	}

	if len(endpoints) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No endpoints found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tTYPE\tTARGET\tSTATUS\tWEIGHT\tPRIORITY")
	fmt.Fprintln(w, "----\t----\t------\t------\t------\t--------")
	for _, e := range endpoints {
		if e == nil {
			continue
		}
		target, status, weight, priority := "-", "-", "-", "-"
		if e.Properties != nil {
			if e.Properties.Target != nil {
				target = *e.Properties.Target
			}
			if e.Properties.EndpointStatus != nil {
				status = string(*e.Properties.EndpointStatus)
			}
			if e.Properties.Weight != nil {
				weight = fmt.Sprintf("%d", *e.Properties.Weight)
			}
			if e.Properties.Priority != nil {
				priority = fmt.Sprintf("%d", *e.Properties.Priority)
			}
		}
		endpointType := endpointTypeOf(e)
		if endpointType == "" {
			endpointType = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			armutil.Value(e.Name),
			endpointType,
			target,
			status,
			weight,
			priority,
		)
	}
	return w.Flush()
}

// applyEndpointFlags folds the shared endpoint flags into props. Only
// flags the caller provided change.
func applyEndpointFlags(cmd *cobra.Command, props *armtrafficmanager.EndpointProperties) error {
	if cmd.Flags().Changed("target") {
		v, _ := cmd.Flags().GetString("target")
		props.Target = to.Ptr(v)
	}
	if cmd.Flags().Changed("target-resource-id") {
		v, _ := cmd.Flags().GetString("target-resource-id")
		props.TargetResourceID = to.Ptr(v)
	}
	if cmd.Flags().Changed("status") {
		raw, _ := cmd.Flags().GetString("status")
		status, err := armutil.ParseEnum(raw, "--status", armtrafficmanager.PossibleEndpointStatusValues())
		if err != nil {
			return err
		}
		props.EndpointStatus = to.Ptr(status)
	}
	if cmd.Flags().Changed("weight") {
		v, _ := cmd.Flags().GetInt64("weight")
		props.Weight = to.Ptr(v)
	}
	if cmd.Flags().Changed("priority") {
		v, _ := cmd.Flags().GetInt64("priority")
		props.Priority = to.Ptr(v)
	}
	if cmd.Flags().Changed("endpoint-location") {
		v, _ := cmd.Flags().GetString("endpoint-location")
		props.EndpointLocation = to.Ptr(v)
	}
	if cmd.Flags().Changed("min-child-endpoints") {
		v, _ := cmd.Flags().GetInt64("min-child-endpoints")
		props.MinChildEndpoints = to.Ptr(v)
	}
	return nil
}

func flagEndpointType(cmd *cobra.Command) (armtrafficmanager.EndpointType, error) {
	raw, _ := cmd.Flags().GetString("type")
	return armutil.ParseEnum(raw, "--type", armtrafficmanager.PossibleEndpointTypeValues())
}

// endpointTypeOf returns the short type of an endpoint, e.g.
// "azureEndpoints" from "Microsoft.Network/trafficManagerProfiles/azureEndpoints".
func endpointTypeOf(e *armtrafficmanager.Endpoint) string {
	t := armutil.Value(e.Type)
	if i := strings.LastIndex(t, "/"); i >= 0 {
		return t[i+1:]
	}
	return t
}
