package auth

import (
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/services/auth"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// Seams for tests: swapped to avoid hitting Entra ID or the OS keychain.
var (
	verifyCredential = azure.VerifyServicePrincipal
	secretStore      = auth.DefaultStore
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a service principal",
		Long: `Sign in with a service principal and store its secret in the local keychain.

The secret can be passed with --secret or entered at the prompt. The
credential is verified against Azure before anything is saved.

Example:
  aznet auth login --tenant 00000000-0000-0000-0000-000000000000 --client-id my-app-id`,
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("tenant", "", "Tenant (directory) ID")
	cmd.Flags().String("client-id", "", "Application (client) ID")
	cmd.Flags().String("secret", "", "Client secret (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tenant, _ := cmd.Flags().GetString("tenant")
	if tenant = strings.TrimSpace(tenant); tenant == "" {
		tenant = cfg.TenantID
	}
	if tenant == "" {
		return fmt.Errorf("no tenant specified: pass --tenant")
	}

	clientID, _ := cmd.Flags().GetString("client-id")
	if clientID = strings.TrimSpace(clientID); clientID == "" {
		clientID = cfg.ClientID
	}
	if clientID == "" {
		return fmt.Errorf("no client ID specified: pass --client-id")
	}

	secret, _ := cmd.Flags().GetString("secret")
	secret = strings.TrimSpace(secret)
	if secret == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Enter client secret: ")
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		secret = strings.TrimSpace(string(bytes))
	}
	if secret == "" {
		return fmt.Errorf("client secret cannot be empty")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Verifying credentials for %s...\n", clientID)
	if err := verifyCredential(cmd.Context(), tenant, clientID, secret, cfg.Cloud); err != nil {
		return err
	}

	if err := secretStore().SetSecret(clientID, secret); err != nil {
		return fmt.Errorf("failed to store client secret: %w", err)
	}

	cfg.TenantID = tenant
	cfg.ClientID = clientID
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (tenant %s).\n", clientID, tenant)

	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "auth",
		ResourceType: "servicePrincipal",
		ResourceName: clientID,
	}))
	return nil
}
