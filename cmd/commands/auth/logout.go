package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored service principal",
		Long: `Remove the stored service principal.

Deletes the client secret from the keychain and clears the tenant and
client ID from the config file. Subsequent commands fall back to the
default credential chain.

Example:
  aznet auth logout`,
		RunE:         runLogout,
		SilenceUsage: true,
	}

	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.ClientID == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No service principal is configured.")
		return nil
	}

	clientID := cfg.ClientID

	if err := secretStore().DeleteSecret(clientID); err != nil && !errors.Is(err, auth.ErrSecretNotFound) {
		return fmt.Errorf("failed to delete client secret: %w", err)
	}

	cfg.TenantID = ""
	cfg.ClientID = ""
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s.\n", clientID)

	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "auth",
		ResourceType: "servicePrincipal",
		ResourceName: clientID,
	}))
	return nil
}
