package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func RuleCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a request routing rule",
		Long: `Add a request routing rule to an application gateway.

The listener, address pool and HTTP settings each default to the
gateway's first entry of that kind when not named explicitly.

Example:
  aznet application-gateway rule create -g my-rg --gateway-name app-gw -n route-all --http-listener https-listener`,
		RunE:         runRuleCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("http-listener", "", "HTTP listener name or ID (defaults to the first)")
	cmd.Flags().String("address-pool", "", "Backend address pool name or ID (defaults to the first)")
	cmd.Flags().String("http-settings", "", "Backend HTTP settings name or ID (defaults to the first)")
	cmd.Flags().String("url-path-map", "", "URL path map name or ID for path based routing")
	cmd.Flags().String("rule-type", "Basic", "Rule type: Basic or PathBasedRouting")

	return cmd
}

func runRuleCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")

	ruleType, err := flagEnum(cmd, "rule-type", armnetwork.PossibleApplicationGatewayRequestRoutingRuleTypeValues())
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	listener, _ := cmd.Flags().GetString("http-listener")
	if listener == "" {
		listener, err = firstChildID(gw.Properties.HTTPListeners, "HTTP listeners", listenerID)
		if err != nil {
			return err
		}
	}
	addressPool, _ := cmd.Flags().GetString("address-pool")
	if addressPool == "" {
		addressPool, err = firstChildID(gw.Properties.BackendAddressPools, "backend address pools", poolID)
		if err != nil {
			return err
		}
	}
	httpSettings, _ := cmd.Flags().GetString("http-settings")
	if httpSettings == "" {
		httpSettings, err = firstChildID(gw.Properties.BackendHTTPSettingsCollection, "backend HTTP settings", settingsID)
		if err != nil {
			return err
		}
	}

	props := &armnetwork.ApplicationGatewayRequestRoutingRulePropertiesFormat{
		RuleType:            to.Ptr(ruleType),
		HTTPListener:        childRef(gw, "httpListeners", listener),
		BackendAddressPool:  childRef(gw, "backendAddressPools", addressPool),
		BackendHTTPSettings: childRef(gw, "backendHttpSettingsCollection", httpSettings),
	}
	if pathMap, _ := cmd.Flags().GetString("url-path-map"); pathMap != "" {
		props.URLPathMap = childRef(gw, "urlPathMaps", pathMap)
	}

	rule := &armnetwork.ApplicationGatewayRequestRoutingRule{Name: to.Ptr(name), Properties: props}
	var replaced bool
	gw.Properties.RequestRoutingRules, replaced = armutil.UpsertByName(gw.Properties.RequestRoutingRules, rule, ruleName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating routing rule %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "requestRoutingRule", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.RequestRoutingRules, "request routing rule", name, ruleName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created routing rule %s on %s.\n", name, gatewayName)
	return nil
}

func RuleUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update a request routing rule",
		RunE:         runRuleUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("http-listener", "", "HTTP listener name or ID")
	cmd.Flags().String("address-pool", "", "Backend address pool name or ID")
	cmd.Flags().String("http-settings", "", "Backend HTTP settings name or ID")
	cmd.Flags().String("url-path-map", "", "URL path map name or ID")
	cmd.Flags().String("rule-type", "", "Rule type: Basic or PathBasedRouting")

	return cmd
}

func runRuleUpdate(cmd *cobra.Command, args []string) error {
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

	rule, err := armutil.FindByName(gw.Properties.RequestRoutingRules, "request routing rule", name, ruleName)
	if err != nil {
		return err
	}
	if rule.Properties == nil {
		rule.Properties = &armnetwork.ApplicationGatewayRequestRoutingRulePropertiesFormat{}
	}
	p := rule.Properties

	if cmd.Flags().Changed("http-listener") {
		v, _ := cmd.Flags().GetString("http-listener")
		p.HTTPListener = childRef(gw, "httpListeners", v)
	}
	if cmd.Flags().Changed("address-pool") {
		v, _ := cmd.Flags().GetString("address-pool")
		p.BackendAddressPool = childRef(gw, "backendAddressPools", v)
	}
	if cmd.Flags().Changed("http-settings") {
		v, _ := cmd.Flags().GetString("http-settings")
		p.BackendHTTPSettings = childRef(gw, "backendHttpSettingsCollection", v)
	}
	if cmd.Flags().Changed("url-path-map") {
		v, _ := cmd.Flags().GetString("url-path-map")
		p.URLPathMap = childRef(gw, "urlPathMaps", v)
	}
	if cmd.Flags().Changed("rule-type") {
		ruleType, err := flagEnum(cmd, "rule-type", armnetwork.PossibleApplicationGatewayRequestRoutingRuleTypeValues())
		if err != nil {
			return err
		}
		p.RuleType = to.Ptr(ruleType)
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating routing rule %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "requestRoutingRule", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.RequestRoutingRules, "request routing rule", name, ruleName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated routing rule %s.\n", name)
	return nil
}
