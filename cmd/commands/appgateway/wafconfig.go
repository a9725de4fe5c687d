package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func WafConfigSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the web application firewall configuration",
		Long: `Set the web application firewall configuration of a WAF-tier gateway.

The configuration is written whole: firewall mode and rule set fall
back to Detection and OWASP 3.0 when not given.

Example:
  aznet application-gateway waf-config set -g my-rg --gateway-name app-gw --enabled true --firewall-mode Prevention`,
		RunE:         runWafConfigSet,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("gateway-name", "", "Name of the application gateway")
	cmd.Flags().String("enabled", "", "Whether the firewall is enabled: true or false")
	cmd.Flags().String("firewall-mode", "Detection", "Firewall mode: Detection or Prevention")
	cmd.Flags().String("rule-set-type", "OWASP", "Rule set type")
	cmd.Flags().String("rule-set-version", "3.0", "Rule set version")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("gateway-name")
	cmd.MarkFlagRequired("enabled")

	return cmd
}

func runWafConfigSet(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")

	enabled, err := cli.FlagBool(cmd, "enabled")
	if err != nil {
		return err
	}
	mode, err := flagEnum(cmd, "firewall-mode", armnetwork.PossibleApplicationGatewayFirewallModeValues())
	if err != nil {
		return err
	}
	ruleSetType, _ := cmd.Flags().GetString("rule-set-type")
	ruleSetVersion, _ := cmd.Flags().GetString("rule-set-version")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	gw.Properties.WebApplicationFirewallConfiguration = &armnetwork.ApplicationGatewayWebApplicationFirewallConfiguration{
		Enabled:        to.Ptr(enabled),
		FirewallMode:   to.Ptr(mode),
		RuleSetType:    to.Ptr(ruleSetType),
		RuleSetVersion: to.Ptr(ruleSetVersion),
	}

	updated, done, err := saveGateway(cmd, clients, "Setting WAF configuration...", resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "wafConfiguration", armutil.Value(gw.ID), gatewayName)
	if !done {
		return nil
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated.Properties.WebApplicationFirewallConfiguration)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set the WAF configuration of %s.\n", gatewayName)
	return nil
}

func WafConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the web application firewall configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			gatewayName, _ := cmd.Flags().GetString("gateway-name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
			if err != nil {
				return err
			}

			return cli.PrintJSON(cmd, gw.Properties.WebApplicationFirewallConfiguration)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("gateway-name", "", "Name of the application gateway")
	cmd.MarkFlagRequired("gateway-name")

	return cmd
}
