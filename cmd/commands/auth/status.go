package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which credential aznet will use",
		Long: `Show which credential aznet will use.

Reports the configured service principal (if any) and whether its
secret is present in the keychain. Secrets are never printed.

Example:
  aznet auth status`,
		RunE:         runStatus,
		SilenceUsage: true,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if cfg.TenantID == "" || cfg.ClientID == "" {
		fmt.Fprintln(out, "Credential: default chain (environment, managed identity, Azure CLI)")
		fmt.Fprintln(out, "Run 'aznet auth login' to use a service principal instead.")
		return nil
	}

	fmt.Fprintln(out, "Credential: service principal")
	fmt.Fprintf(out, "Tenant:     %s\n", cfg.TenantID)
	fmt.Fprintf(out, "Client ID:  %s\n", cfg.ClientID)

	_, err = secretStore().GetSecret(cfg.ClientID)
	switch {
	case err == nil:
		fmt.Fprintln(out, "Secret:     stored in keychain")
	case errors.Is(err, auth.ErrSecretNotFound):
		fmt.Fprintln(out, "Secret:     missing (run 'aznet auth login' to store it)")
	default:
		fmt.Fprintf(out, "Secret:     error (%v)\n", err)
	}
	return nil
}
