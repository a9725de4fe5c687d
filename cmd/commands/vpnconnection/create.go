package vpnconnection

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armtemplate"
	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
)

const connectionAPIVersion = "2022-01-01"

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a VPN connection from a virtual network gateway",
		Long: `Create a connection from a virtual network gateway through an ARM
deployment. The target decides the connection type: --vnet-gateway2 creates
a Vnet2Vnet connection, --local-gateway2 an IPsec connection and
--express-route-circuit2 an ExpressRoute connection.

Example:
  aznet vpn-connection create -g my-rg -n site-to-site --vnet-gateway1 vnet-gw \
    --local-gateway2 branch-gw --shared-key abc123`,
		RunE:         runCreate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the connection")
	cmd.Flags().StringP("location", "l", "", "Location, defaults to the resource group's")
	cmd.Flags().String("vnet-gateway1", "", "Name or ID of the source virtual network gateway")
	cmd.Flags().String("vnet-gateway2", "", "Name or ID of the target virtual network gateway")
	cmd.Flags().String("local-gateway2", "", "Name or ID of the target local network gateway")
	cmd.Flags().String("express-route-circuit2", "", "Name or ID of the target ExpressRoute circuit")
	cmd.Flags().String("authorization-key", "", "Authorization key for the connection")
	cmd.Flags().String("shared-key", "", "Shared key for the IPsec tunnel")
	cmd.Flags().String("enable-bgp", "", "Enable BGP: true or false")
	cmd.Flags().Int32("routing-weight", 10, "Connection routing weight")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs")
	cmd.Flags().Bool("validate", false, "Validate the deployment instead of creating it")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("vnet-gateway1")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	vnetGateway1, _ := cmd.Flags().GetString("vnet-gateway1")
	vnetGateway2, _ := cmd.Flags().GetString("vnet-gateway2")
	localGateway2, _ := cmd.Flags().GetString("local-gateway2")
	circuit2, _ := cmd.Flags().GetString("express-route-circuit2")
	sharedKey, _ := cmd.Flags().GetString("shared-key")
	routingWeight, _ := cmd.Flags().GetInt32("routing-weight")

	targets := 0
	for _, v := range []string{vnetGateway2, localGateway2, circuit2} {
		if v != "" {
			targets++
		}
	}
	if targets != 1 {
		return fmt.Errorf("incorrect usage: --vnet-gateway2 NAME_OR_ID | --local-gateway2 NAME_OR_ID | --express-route-circuit2 NAME_OR_ID")
	}

	enableBgp := false
	if cmd.Flags().Changed("enable-bgp") {
		if enableBgp, err = cli.FlagBool(cmd, "enable-bgp"); err != nil {
			return err
		}
	}

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	location, _ := cmd.Flags().GetString("location")
	if location == "" {
		group, err := clients.ResourceGroups.Get(cmd.Context(), resourceGroup)
		if err != nil {
			return fmt.Errorf("failed to get resource group %q: %w", resourceGroup, err)
		}
		location = armutil.Value(group.Location)
	}

	props := map[string]any{
		"virtualNetworkGateway1": map[string]any{
			"id": armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "virtualNetworkGateways", vnetGateway1),
		},
		"enableBgp":     enableBgp,
		"routingWeight": routingWeight,
	}
	if key, _ := cmd.Flags().GetString("authorization-key"); key != "" {
		props["authorizationKey"] = key
	}
	switch {
	case vnetGateway2 != "":
		props["connectionType"] = string(armnetwork.VirtualNetworkGatewayConnectionTypeVnet2Vnet)
		props["virtualNetworkGateway2"] = map[string]any{
			"id": armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "virtualNetworkGateways", vnetGateway2),
		}
		props["sharedKey"] = sharedKey
	case localGateway2 != "":
		props["connectionType"] = string(armnetwork.VirtualNetworkGatewayConnectionTypeIPsec)
		props["localNetworkGateway2"] = map[string]any{
			"id": armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "localNetworkGateways", localGateway2),
		}
		props["sharedKey"] = sharedKey
	default:
		props["connectionType"] = string(armnetwork.VirtualNetworkGatewayConnectionTypeExpressRoute)
		props["peer"] = map[string]any{
			"id": armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "expressRouteCircuits", circuit2),
		}
	}

	builder := armtemplate.NewBuilder()
	resource := armtemplate.Resource{
		Name:       name,
		Type:       "Microsoft.Network/connections",
		APIVersion: connectionAPIVersion,
		Location:   location,
		Properties: props,
	}
	if pairs, _ := cmd.Flags().GetStringSlice("tags"); len(pairs) > 0 {
		resource.Tags = cli.ParseTags(pairs)
	}
	builder.AddResource(resource)
	builder.AddOutput("resource", map[string]any{
		"type":  "object",
		"value": fmt.Sprintf("[reference('%s')]", name),
	})

	deployment := armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Mode:       to.Ptr(armresources.DeploymentModeIncremental),
			Template:   builder.Template(),
			Parameters: map[string]any{},
		},
	}
	deploymentName := "vpn_connection_deploy_" + uuid.NewString()

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		var result armresources.DeploymentValidateResult
		err = cli.Spin(cmd, "Validating the deployment...", func() error {
			var err error
			result, err = clients.Deployments.ValidateAndWait(cmd.Context(), resourceGroup, deploymentName, deployment)
			return err
		})
		if err != nil {
			return fmt.Errorf("deployment validation failed: %w", err)
		}
		return cli.PrintJSON(cmd, result)
	}

	connectionID := armutil.ResourceID(session.SubscriptionID, resourceGroup, armutil.NetworkNamespace, "connections", name)

	if noWait, _ := cmd.Flags().GetBool("no-wait"); noWait {
		if err := clients.Deployments.StartCreateOrUpdate(cmd.Context(), resourceGroup, deploymentName, deployment); err != nil {
			return fmt.Errorf("failed to create VPN connection %q: %w", name, err)
		}
		cli.StartedOperation(cmd, "network", store.ActionCreateOrUpdate, connectionID, name)
		return nil
	}

	err = cli.Spin(cmd, fmt.Sprintf("Creating VPN connection %s...", name), func() error {
		_, err := clients.Deployments.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, deploymentName, deployment)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create VPN connection %q: %w", name, err)
	}

	auditConnection(cmd, connectionID, name)

	conn, err := clients.Connections.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get VPN connection %q: %w", name, err)
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, conn)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created VPN connection %s.\n", name)
	return nil
}
