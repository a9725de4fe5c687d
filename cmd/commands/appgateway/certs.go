package appgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func AuthCertCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Add an authentication certificate",
		RunE:         runAuthCertCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("cert-data", "", "Base-64 encoded public certificate")
	cmd.MarkFlagRequired("cert-data")

	return cmd
}

func runAuthCertCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	certData, _ := cmd.Flags().GetString("cert-data")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	cert := &armnetwork.ApplicationGatewayAuthenticationCertificate{
		Name: to.Ptr(name),
		Properties: &armnetwork.ApplicationGatewayAuthenticationCertificatePropertiesFormat{
			Data: to.Ptr(certData),
		},
	}
	var replaced bool
	gw.Properties.AuthenticationCertificates, replaced = armutil.UpsertByName(gw.Properties.AuthenticationCertificates, cert, authCertName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating authentication certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "authenticationCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.AuthenticationCertificates, "authentication certificate", name, authCertName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created authentication certificate %s on %s.\n", name, gatewayName)
	return nil
}

func AuthCertUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Replace the data of an authentication certificate",
		RunE:         runAuthCertUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("cert-data", "", "Base-64 encoded public certificate")
	cmd.MarkFlagRequired("cert-data")

	return cmd
}

func runAuthCertUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	certData, _ := cmd.Flags().GetString("cert-data")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	cert, err := armutil.FindByName(gw.Properties.AuthenticationCertificates, "authentication certificate", name, authCertName)
	if err != nil {
		return err
	}
	if cert.Properties == nil {
		cert.Properties = &armnetwork.ApplicationGatewayAuthenticationCertificatePropertiesFormat{}
	}
	cert.Properties.Data = to.Ptr(certData)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating authentication certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "authenticationCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.AuthenticationCertificates, "authentication certificate", name, authCertName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated authentication certificate %s.\n", name)
	return nil
}

func SSLCertCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Add an SSL certificate",
		RunE:         runSSLCertCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("cert-data", "", "Base-64 encoded pfx certificate")
	cmd.Flags().String("cert-password", "", "Password of the pfx file")
	cmd.MarkFlagRequired("cert-data")
	cmd.MarkFlagRequired("cert-password")

	return cmd
}

func runSSLCertCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	gatewayName, _ := cmd.Flags().GetString("gateway-name")
	name, _ := cmd.Flags().GetString("name")
	certData, _ := cmd.Flags().GetString("cert-data")
	certPassword, _ := cmd.Flags().GetString("cert-password")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getGateway(cmd, clients, resourceGroup, gatewayName)
	if err != nil {
		return err
	}

	cert := &armnetwork.ApplicationGatewaySSLCertificate{
		Name: to.Ptr(name),
		Properties: &armnetwork.ApplicationGatewaySSLCertificatePropertiesFormat{
			Data:     to.Ptr(certData),
			Password: to.Ptr(certPassword),
		},
	}
	var replaced bool
	gw.Properties.SSLCertificates, replaced = armutil.UpsertByName(gw.Properties.SSLCertificates, cert, sslCertName)
	warnReplaced(cmd, replaced, name)

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Creating SSL certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "sslCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	created, err := armutil.FindByName(updated.Properties.SSLCertificates, "SSL certificate", name, sslCertName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created SSL certificate %s on %s.\n", name, gatewayName)
	return nil
}

func SSLCertUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update an SSL certificate",
		RunE:         runSSLCertUpdate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("cert-data", "", "Base-64 encoded pfx certificate")
	cmd.Flags().String("cert-password", "", "Password of the pfx file")

	return cmd
}

func runSSLCertUpdate(cmd *cobra.Command, args []string) error {
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

	cert, err := armutil.FindByName(gw.Properties.SSLCertificates, "SSL certificate", name, sslCertName)
	if err != nil {
		return err
	}
	if cert.Properties == nil {
		cert.Properties = &armnetwork.ApplicationGatewaySSLCertificatePropertiesFormat{}
	}
	if cmd.Flags().Changed("cert-data") {
		v, _ := cmd.Flags().GetString("cert-data")
		cert.Properties.Data = to.Ptr(v)
	}
	if cmd.Flags().Changed("cert-password") {
		v, _ := cmd.Flags().GetString("cert-password")
		cert.Properties.Password = to.Ptr(v)
	}

	updated, done, err := saveGateway(cmd, clients, fmt.Sprintf("Updating SSL certificate %s...", name), resourceGroup, gatewayName, gw)
	if err != nil {
		return err
	}

	auditGateway(cmd, "sslCertificate", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	result, err := armutil.FindByName(updated.Properties.SSLCertificates, "SSL certificate", name, sslCertName)
	if err != nil {
		return err
	}
	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated SSL certificate %s.\n", name)
	return nil
}
