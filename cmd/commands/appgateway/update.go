package appgateway

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an application gateway",
		Long: `Update an application gateway in place. Only the provided flags change.

The SKU tier follows the SKU name: Standard_* names select the Standard
tier, WAF_* names the WAF tier, and the *_v2 names their v2 tiers.

Example:
  aznet application-gateway update -g my-rg -n app-gw --sku WAF_Medium --capacity 3`,
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the application gateway")
	cmd.Flags().String("sku", "", "SKU name, for example Standard_Small or WAF_v2")
	cmd.Flags().Int32("capacity", 0, "Number of instances")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs (\"\" clears)")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, name)
	if err != nil {
		return err
	}
	if gw.Properties.SKU == nil {
		gw.Properties.SKU = &armnetwork.ApplicationGatewaySKU{}
	}

	if cmd.Flags().Changed("sku") {
		raw, _ := cmd.Flags().GetString("sku")
		skuName, err := armutil.ParseEnum(raw, "--sku", armnetwork.PossibleApplicationGatewaySKUNameValues())
		if err != nil {
			return err
		}
		gw.Properties.SKU.Name = to.Ptr(skuName)
		gw.Properties.SKU.Tier = to.Ptr(skuTier(skuName))
	}
	if cmd.Flags().Changed("capacity") {
		capacity, _ := cmd.Flags().GetInt32("capacity")
		gw.Properties.SKU.Capacity = to.Ptr(capacity)
	}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		gw.Tags = cli.ParseTags(pairs)
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating application gateway %s...", name), resourceGroup, name, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "applicationGateway", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated application gateway %s.\n", name)
	return nil
}

// skuTier derives the SKU tier implied by a SKU name.
func skuTier(name armnetwork.ApplicationGatewaySKUName) armnetwork.ApplicationGatewayTier {
	s := strings.ToLower(string(name))
	switch {
	case strings.HasSuffix(s, "_v2") && strings.HasPrefix(s, "waf"):
		return armnetwork.ApplicationGatewayTierWAFV2
	case strings.HasSuffix(s, "_v2"):
		return armnetwork.ApplicationGatewayTierStandardV2
	case strings.HasPrefix(s, "waf"):
		return armnetwork.ApplicationGatewayTierWAF
	default:
		return armnetwork.ApplicationGatewayTierStandard
	}
}
