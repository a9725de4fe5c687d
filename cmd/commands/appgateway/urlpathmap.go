package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func URLPathMapCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a URL path map",
		Long: `Add a URL path map with its first path rule.

The rule's pool and settings default to the gateway's first backend
address pool and first backend HTTP settings; the map-level defaults
follow the rule unless set explicitly.

Example:
  aznet application-gateway url-path-map create -g my-rg --gateway-name app-gw -n shop-map --paths /shop/*,/cart/* --address-pool shop-pool`,
		RunE:         runURLPathMapCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().StringSlice("paths", nil, "Path patterns of the first rule")
	cmd.Flags().String("rule-name", "default", "Name of the first rule")
	cmd.Flags().String("address-pool", "", "Pool of the first rule (defaults to the gateway's first)")
	cmd.Flags().String("http-settings", "", "Settings of the first rule (defaults to the gateway's first)")
	cmd.Flags().String("default-address-pool", "", "Map-level default pool (defaults to the rule's)")
	cmd.Flags().String("default-http-settings", "", "Map-level default settings (defaults to the rule's)")
	cmd.MarkFlagRequired("paths")

	return cmd
}

func runURLPathMapCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	paths, _ := cmd.Flags().GetStringSlice("paths")
	firstRuleName, _ := cmd.Flags().GetString("rule-name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
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
	defaultPool, _ := cmd.Flags().GetString("default-address-pool")
	if defaultPool == "" {
		defaultPool = addressPool
	}
	defaultSettings, _ := cmd.Flags().GetString("default-http-settings")
	if defaultSettings == "" {
		defaultSettings = httpSettings
	}

	newMap := &armnetwork.ApplicationGatewayURLPathMap{
		Name: to.Ptr(name),
		Properties: &armnetwork.ApplicationGatewayURLPathMapPropertiesFormat{
			DefaultBackendAddressPool:  childRef(gw, "backendAddressPools", defaultPool),
			DefaultBackendHTTPSettings: childRef(gw, "backendHttpSettingsCollection", defaultSettings),
			PathRules: []*armnetwork.ApplicationGatewayPathRule{{
				Name: to.Ptr(firstRuleName),
				Properties: &armnetwork.ApplicationGatewayPathRulePropertiesFormat{
					Paths:               toPtrSlice(paths),
					BackendAddressPool:  childRef(gw, "backendAddressPools", addressPool),
					BackendHTTPSettings: childRef(gw, "backendHttpSettingsCollection", httpSettings),
				},
			}},
		},
	}
	var replaced bool
	gw.Properties.URLPathMaps, replaced = armutil.UpsertByName(gw.Properties.URLPathMaps, newMap, pathMapName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating URL path map %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "urlPathMap", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.URLPathMaps, "URL path map", name, pathMapName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created URL path map %s on %s.\n", name, gatewayName)
	return nil
}

func URLPathMapUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update the defaults of a URL path map",
		RunE:         runURLPathMapUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("default-address-pool", "", "Map-level default pool name or ID")
	cmd.Flags().String("default-http-settings", "", "Map-level default settings name or ID")

	return cmd
}

func runURLPathMapUpdate(cmd *cobra.Command, args []string) error {
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

	urlMap, err := armutil.FindByName(gw.Properties.URLPathMaps, "URL path map", name, pathMapName)
	if err != nil {
		return err
	}
	if urlMap.Properties == nil {
		urlMap.Properties = &armnetwork.ApplicationGatewayURLPathMapPropertiesFormat{}
	}

	if cmd.Flags().Changed("default-address-pool") {
		v, _ := cmd.Flags().GetString("default-address-pool")
		urlMap.Properties.DefaultBackendAddressPool = childRef(gw, "backendAddressPools", v)
	}
	if cmd.Flags().Changed("default-http-settings") {
		v, _ := cmd.Flags().GetString("default-http-settings")
		urlMap.Properties.DefaultBackendHTTPSettings = childRef(gw, "backendHttpSettingsCollection", v)
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating URL path map %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "urlPathMap", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.URLPathMaps, "URL path map", name, pathMapName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated URL path map %s.\n", name)
	return nil
}

func PathRuleCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Add a path rule to a URL path map",
		RunE:         runPathRuleCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("path-map-name", "", "Name of the URL path map")
	cmd.Flags().StringSlice("paths", nil, "Path patterns to match")
	cmd.Flags().String("address-pool", "", "Pool name or ID (defaults to the map's default)")
	cmd.Flags().String("http-settings", "", "Settings name or ID (defaults to the map's default)")
	cmd.MarkFlagRequired("path-map-name")
	cmd.MarkFlagRequired("paths")

	return cmd
}

func runPathRuleCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	mapName, _ := cmd.Flags().GetString("path-map-name")
	name, _ := cmd.Flags().GetString("name")
	paths, _ := cmd.Flags().GetStringSlice("paths")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	urlMap, err := armutil.FindByName(gw.Properties.URLPathMaps, "URL path map", mapName, pathMapName)
	if err != nil {
		return err
	}
	if urlMap.Properties == nil {
		urlMap.Properties = &armnetwork.ApplicationGatewayURLPathMapPropertiesFormat{}
	}

	var poolRef *armnetwork.SubResource
	if addressPool, _ := cmd.Flags().GetString("address-pool"); addressPool != "" {
		poolRef = childRef(gw, "backendAddressPools", addressPool)
	} else if d := urlMap.Properties.DefaultBackendAddressPool; d != nil {
		poolRef = &armnetwork.SubResource{ID: d.ID}
	} else {
		return fmt.Errorf("URL path map %q has no default backend address pool: pass --address-pool", mapName)
	}
	var settingsRef *armnetwork.SubResource
	if httpSettings, _ := cmd.Flags().GetString("http-settings"); httpSettings != "" {
		settingsRef = childRef(gw, "backendHttpSettingsCollection", httpSettings)
	} else if d := urlMap.Properties.DefaultBackendHTTPSettings; d != nil {
		settingsRef = &armnetwork.SubResource{ID: d.ID}
	} else {
		return fmt.Errorf("URL path map %q has no default backend HTTP settings: pass --http-settings", mapName)
	}

	rule := &armnetwork.ApplicationGatewayPathRule{
		Name: to.Ptr(name),
		Properties: &armnetwork.ApplicationGatewayPathRulePropertiesFormat{
			Paths:               toPtrSlice(paths),
			BackendAddressPool:  poolRef,
			BackendHTTPSettings: settingsRef,
		},
	}
	var replaced bool
	urlMap.Properties.PathRules, replaced = armutil.UpsertByName(urlMap.Properties.PathRules, rule, pathRuleName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating path rule %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "pathRule", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	resultMap, err := armutil.FindByName(updated.Properties.URLPathMaps, "URL path map", mapName, pathMapName)
	if err != nil {
		return err
	}
	created, err := armutil.FindByName(resultMap.Properties.PathRules, "path rule", name, pathRuleName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created path rule %s in %s.\n", name, mapName)
	return nil
}

func PathRuleDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "delete",
		Short:        "Remove a path rule from a URL path map",
		RunE:         runPathRuleDelete,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("path-map-name", "", "Name of the URL path map")
	cmd.MarkFlagRequired("path-map-name")

	return cmd
}

func runPathRuleDelete(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	mapName, _ := cmd.Flags().GetString("path-map-name")
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	urlMap, err := armutil.FindByName(gw.Properties.URLPathMaps, "URL path map", mapName, pathMapName)
	if err != nil {
		return err
	}
	if urlMap.Properties == nil {
		urlMap.Properties = &armnetwork.ApplicationGatewayURLPathMapPropertiesFormat{}
	}

	var removed bool
	urlMap.Properties.PathRules, removed = armutil.RemoveByName(urlMap.Properties.PathRules, name, pathRuleName)
	if !removed {
		return fmt.Errorf("path rule %q not found", name)
	}

	if _, _, err := saveGateway(cmd, clients, fmt.Sprintf("Deleting path rule %s...", name), resourceGroup, gatewayName, gw); err != nil {
		return err
	}

	auditGateway(cmd, "pathRule", "", name)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted path rule %s from %s.\n", name, mapName)
	return nil
}

func toPtrSlice(values []string) []*string {
	out := make([]*string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, to.Ptr(v))
	}
	return out
}
