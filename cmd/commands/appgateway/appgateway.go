package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "application-gateway",
		Short: "Manage application gateways and their child resources",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(UpdateCommand())
	cmd.AddCommand(StartCommand())
	cmd.AddCommand(StopCommand())

	authCert := &cobra.Command{
		Use:   "auth-cert",
		Short: "Manage authentication certificates",
	}
	authCert.AddCommand(AuthCertCreateCommand())
	authCert.AddCommand(AuthCertUpdateCommand())
	cmd.AddCommand(authCert)

	addressPool := &cobra.Command{
		Use:   "address-pool",
		Short: "Manage backend address pools",
	}
	addressPool.AddCommand(AddressPoolCreateCommand())
	addressPool.AddCommand(AddressPoolUpdateCommand())
	cmd.AddCommand(addressPool)

	frontendIP := &cobra.Command{
		Use:   "frontend-ip",
		Short: "Manage frontend IP configurations",
	}
	frontendIP.AddCommand(FrontendIPCreateCommand())
	frontendIP.AddCommand(FrontendIPUpdateCommand())
	cmd.AddCommand(frontendIP)

	frontendPort := &cobra.Command{
		Use:   "frontend-port",
		Short: "Manage frontend ports",
	}
	frontendPort.AddCommand(FrontendPortCreateCommand())
	frontendPort.AddCommand(FrontendPortUpdateCommand())
	cmd.AddCommand(frontendPort)

	httpListener := &cobra.Command{
		Use:   "http-listener",
		Short: "Manage HTTP listeners",
	}
	httpListener.AddCommand(HTTPListenerCreateCommand())
	httpListener.AddCommand(HTTPListenerUpdateCommand())
	cmd.AddCommand(httpListener)

	httpSettings := &cobra.Command{
		Use:   "http-settings",
		Short: "Manage backend HTTP settings",
	}
	httpSettings.AddCommand(HTTPSettingsCreateCommand())
	httpSettings.AddCommand(HTTPSettingsUpdateCommand())
	cmd.AddCommand(httpSettings)

	probe := &cobra.Command{
		Use:   "probe",
		Short: "Manage health probes",
	}
	probe.AddCommand(ProbeCreateCommand())
	probe.AddCommand(ProbeUpdateCommand())
	cmd.AddCommand(probe)

	rule := &cobra.Command{
		Use:   "rule",
		Short: "Manage request routing rules",
	}
	rule.AddCommand(RuleCreateCommand())
	rule.AddCommand(RuleUpdateCommand())
	cmd.AddCommand(rule)

	sslCert := &cobra.Command{
		Use:   "ssl-cert",
		Short: "Manage SSL certificates",
	}
	sslCert.AddCommand(SSLCertCreateCommand())
	sslCert.AddCommand(SSLCertUpdateCommand())
	cmd.AddCommand(sslCert)

	sslPolicy := &cobra.Command{
		Use:   "ssl-policy",
		Short: "Manage the SSL policy",
	}
	sslPolicy.AddCommand(SSLPolicySetCommand())
	sslPolicy.AddCommand(SSLPolicyShowCommand())
	cmd.AddCommand(sslPolicy)

	urlPathMap := &cobra.Command{
		Use:   "url-path-map",
		Short: "Manage URL path maps",
	}
	urlPathMap.AddCommand(URLPathMapCreateCommand())
	urlPathMap.AddCommand(URLPathMapUpdateCommand())
	pathRule := &cobra.Command{
		Use:   "rule",
		Short: "Manage path rules inside a URL path map",
	}
	pathRule.AddCommand(PathRuleCreateCommand())
	pathRule.AddCommand(PathRuleDeleteCommand())
	urlPathMap.AddCommand(pathRule)
	cmd.AddCommand(urlPathMap)

	wafConfig := &cobra.Command{
		Use:   "waf-config",
		Short: "Manage the web application firewall configuration",
	}
	wafConfig.AddCommand(WafConfigSetCommand())
	wafConfig.AddCommand(WafConfigShowCommand())
	cmd.AddCommand(wafConfig)

	return cmd
}

func addChildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("gateway-name", "", "Name of the application gateway")
	cmd.Flags().StringP("name", "n", "", "Name of the child resource")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("gateway-name")
	cmd.MarkFlagRequired("name")
}

func auditGateway(cmd *cobra.Command, resourceType, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: resourceType,
		ResourceID:   id,
		ResourceName: name,
	}))
}

func getGateway(cmd *cobra.Command, clients *azure.Clients, resourceGroup, name string) (armnetwork.ApplicationGateway, error) {
	gw, err := clients.ApplicationGateways.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return armnetwork.ApplicationGateway{}, fmt.Errorf("failed to get application gateway %q: %w", name, err)
	}
	if gw.Properties == nil {
		gw.Properties = &armnetwork.ApplicationGatewayPropertiesFormat{}
	}
	return gw, nil
}

// saveGateway writes the gateway back. With --no-wait the operation is
// started and recorded instead of awaited; the returned bool reports
// whether the final gateway is available for inspection.
func saveGateway(cmd *cobra.Command, clients *azure.Clients, title, resourceGroup, name string, gw armnetwork.ApplicationGateway) (armnetwork.ApplicationGateway, bool, error) {
	if noWait, _ := cmd.Flags().GetBool("no-wait"); noWait {
		if err := clients.ApplicationGateways.StartCreateOrUpdate(cmd.Context(), resourceGroup, name, gw); err != nil {
			return armnetwork.ApplicationGateway{}, false, fmt.Errorf("failed to update application gateway %q: %w", name, err)
		}
		cli.StartedOperation(cmd, "network", store.ActionCreateOrUpdate, armutil.Value(gw.ID), name)
		return armnetwork.ApplicationGateway{}, false, nil
	}

	var updated armnetwork.ApplicationGateway
	err := cli.Spin(cmd, title, func() error {
		var err error
		updated, err = clients.ApplicationGateways.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, gw)
		return err
	})
	if err != nil {
		return armnetwork.ApplicationGateway{}, false, fmt.Errorf("failed to update application gateway %q: %w", name, err)
	}
	if updated.Properties == nil {
		updated.Properties = &armnetwork.ApplicationGatewayPropertiesFormat{}
	}
	return updated, true, nil
}

// childRef resolves a name-or-ID flag value into a reference to one of the
// gateway's own child resources.
func childRef(gw armnetwork.ApplicationGateway, childType, nameOrID string) *armnetwork.SubResource {
	id := nameOrID
	if !armutil.IsResourceID(nameOrID) {
		id = armutil.Value(gw.ID) + "/" + childType + "/" + nameOrID
	}
	return &armnetwork.SubResource{ID: to.Ptr(id)}
}

// flagEnum reads a string flag and maps it onto the ARM enum values.
func flagEnum[T ~string](cmd *cobra.Command, flag string, values []T) (T, error) {
	raw, _ := cmd.Flags().GetString(flag)
	return armutil.ParseEnum(raw, "--"+flag, values)
}

// firstChildID falls back to the collection's first element when the
// matching flag was omitted.
func firstChildID[T any](items []*T, kind string, idOf func(*T) *string) (string, error) {
	for _, item := range items {
		if item != nil {
			return armutil.Value(idOf(item)), nil
		}
	}
	return "", fmt.Errorf("no existing %s found: create one first and try again", kind)
}

func warnReplaced(cmd *cobra.Command, replaced bool, name string) {
	if replaced {
		fmt.Fprintf(cmd.ErrOrStderr(), "Item '%s' already exists. Replacing with new values.\n", name)
	}
}

func authCertName(c *armnetwork.ApplicationGatewayAuthenticationCertificate) *string { return c.Name }
func poolName(p *armnetwork.ApplicationGatewayBackendAddressPool) *string            { return p.Name }
func poolID(p *armnetwork.ApplicationGatewayBackendAddressPool) *string              { return p.ID }
func frontendName(c *armnetwork.ApplicationGatewayFrontendIPConfiguration) *string   { return c.Name }
func frontendID(c *armnetwork.ApplicationGatewayFrontendIPConfiguration) *string     { return c.ID }
func portName(p *armnetwork.ApplicationGatewayFrontendPort) *string                  { return p.Name }
func listenerName(l *armnetwork.ApplicationGatewayHTTPListener) *string              { return l.Name }
func listenerID(l *armnetwork.ApplicationGatewayHTTPListener) *string                { return l.ID }
func settingsName(s *armnetwork.ApplicationGatewayBackendHTTPSettings) *string       { return s.Name }
func settingsID(s *armnetwork.ApplicationGatewayBackendHTTPSettings) *string         { return s.ID }
func probeName(p *armnetwork.ApplicationGatewayProbe) *string                        { return p.Name }
func ruleName(r *armnetwork.ApplicationGatewayRequestRoutingRule) *string            { return r.Name }
func sslCertName(c *armnetwork.ApplicationGatewaySSLCertificate) *string             { return c.Name }
func pathMapName(m *armnetwork.ApplicationGatewayURLPathMap) *string                 { return m.Name }
func pathRuleName(r *armnetwork.ApplicationGatewayPathRule) *string                  { return r.Name }
