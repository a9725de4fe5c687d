package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func SSLPolicySetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the SSL policy",
		Long: `Set the SSL policy of an application gateway.

Without --disabled-ssl-protocols the policy is cleared and the service
defaults apply again.

Example:
  aznet application-gateway ssl-policy set -g my-rg --gateway-name app-gw --disabled-ssl-protocols TLSv1_0,TLSv1_1`,
		RunE:         runSSLPolicySet,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("gateway-name", "", "Name of the application gateway")
	cmd.Flags().StringSlice("disabled-ssl-protocols", nil, "SSL protocols to disable")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("gateway-name")

	return cmd
}

func runSSLPolicySet(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	raw, _ := cmd.Flags().GetStringSlice("disabled-ssl-protocols")

	var disabled []*armnetwork.ApplicationGatewaySSLProtocol
	for _, entry := range raw {
		if entry == "" {
			continue
		}
		protocol, err := armutil.ParseEnum(entry, "--disabled-ssl-protocols", armnetwork.PossibleApplicationGatewaySSLProtocolValues())
		if err != nil {
			return err
		}
		p := protocol
		disabled = append(disabled, &p)
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	if len(disabled) == 0 {
		gw.Properties.SSLPolicy = nil
	} else {
		gw.Properties.SSLPolicy = &armnetwork.ApplicationGatewaySSLPolicy{
			DisabledSSLProtocols: disabled,
		}
	}

	updated, done, err := saveGateway(cmd, clients, "Setting SSL policy...", resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "sslPolicy", armutil.Value(gw.ID), gatewayName)
	if !done {
		return nil
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated.Properties.SSLPolicy)
	}
	if updated.Properties.SSLPolicy == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared the SSL policy of %s.\n", gatewayName)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Set the SSL policy of %s.\n", gatewayName)
	}
	return nil
}

func SSLPolicyShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the SSL policy",
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

			return cli.PrintJSON(cmd, gw.Properties.SSLPolicy)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("gateway-name", "", "Name of the application gateway")
	cmd.MarkFlagRequired("gateway-name")

	return cmd
}
