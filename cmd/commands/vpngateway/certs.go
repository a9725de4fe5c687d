package vpngateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func RootCertCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Upload a VPN client root certificate",
		RunE:         runRootCertCreate,
		SilenceUsage: true,
	}

	addCertFlags(cmd)
	cmd.Flags().String("public-cert-data", "", "Base-64 encoded public certificate")
	cmd.MarkFlagRequired("public-cert-data")

	return cmd
}

func runRootCertCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	certData, _ := cmd.Flags().GetString("public-cert-data")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getVPNGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}
	config, err := certConfig(gw, gatewayName, "root cert")
	if err != nil {
		return err
	}

	cert := &armnetwork.VPNClientRootCertificate{
		Name: to.Ptr(name),
		Properties: &armnetwork.VPNClientRootCertificatePropertiesFormat{
			PublicCertData: to.Ptr(certData),
		},
	}
	var replaced bool
	config.VPNClientRootCertificates, replaced = armutil.UpsertByName(config.VPNClientRootCertificates, cert, rootCertName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveVPNGateway(cmd, clients, fmt.Sprintf("Creating root certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditVPNGateway(cmd, "vpnClientRootCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	if cli.OutputFormat(cmd) == "json" {
		created, err := armutil.FindByName(updated.Properties.VPNClientConfiguration.VPNClientRootCertificates, "root certificate", name, rootCertName)
		if err != nil {
			return err
		}
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created root certificate %s on %s.\n", name, gatewayName)
	return nil
}

func RootCertDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "delete",
		Short:        "Delete a VPN client root certificate",
		RunE:         runRootCertDelete,
		SilenceUsage: true,
	}

	addCertFlags(cmd)

	return cmd
}

func runRootCertDelete(cmd *cobra.Command, args []string) error {
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

	gw, err := getVPNGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	var removed bool
	if config := gw.Properties.VPNClientConfiguration; config != nil {
		config.VPNClientRootCertificates, removed = armutil.RemoveByName(config.VPNClientRootCertificates, name, rootCertName)
	}
	if !removed {
		return fmt.Errorf("Certificate %q not found in gateway %q", name, gatewayName)
	}

	_, done, err := saveVPNGateway(cmd, clients, fmt.Sprintf("Deleting root certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditVPNGateway(cmd, "vpnClientRootCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted root certificate %s from %s.\n", name, gatewayName)
	return nil
}

func RevokedCertCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Revoke a VPN client certificate by thumbprint",
		RunE:         runRevokedCertCreate,
		SilenceUsage: true,
	}

	addCertFlags(cmd)
	cmd.Flags().String("thumbprint", "", "Thumbprint of the certificate to revoke")
	cmd.MarkFlagRequired("thumbprint")

	return cmd
}

func runRevokedCertCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	thumbprint, _ := cmd.Flags().GetString("thumbprint")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getVPNGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}
	config, err := certConfig(gw, gatewayName, "revoked cert")
	if err != nil {
		return err
	}

	cert := &armnetwork.VPNClientRevokedCertificate{
		Name: to.Ptr(name),
		Properties: &armnetwork.VPNClientRevokedCertificatePropertiesFormat{
			Thumbprint: to.Ptr(thumbprint),
		},
	}
	var replaced bool
	config.VPNClientRevokedCertificates, replaced = armutil.UpsertByName(config.VPNClientRevokedCertificates, cert, revokedCertName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveVPNGateway(cmd, clients, fmt.Sprintf("Creating revoked certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditVPNGateway(cmd, "vpnClientRevokedCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	if cli.OutputFormat(cmd) == "json" {
		created, err := armutil.FindByName(updated.Properties.VPNClientConfiguration.VPNClientRevokedCertificates, "revoked certificate", name, revokedCertName)
		if err != nil {
			return err
		}
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created revoked certificate %s on %s.\n", name, gatewayName)
	return nil
}

func RevokedCertDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "delete",
		Short:        "Delete a VPN client revoked certificate",
		RunE:         runRevokedCertDelete,
		SilenceUsage: true,
	}

	addCertFlags(cmd)

	return cmd
}

func runRevokedCertDelete(cmd *cobra.Command, args []string) error {
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

	gw, err := getVPNGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	var removed bool
	if config := gw.Properties.VPNClientConfiguration; config != nil {
		config.VPNClientRevokedCertificates, removed = armutil.RemoveByName(config.VPNClientRevokedCertificates, name, revokedCertName)
	}
	if !removed {
		return fmt.Errorf("Certificate %q not found in gateway %q", name, gatewayName)
	}

	_, done, err := saveVPNGateway(cmd, clients, fmt.Sprintf("Deleting revoked certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditVPNGateway(cmd, "vpnClientRevokedCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted revoked certificate %s from %s.\n", name, gatewayName)
	return nil
}
