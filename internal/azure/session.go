// Package azure resolves credentials and wraps the ARM SDK clients behind
// minimal interfaces so commands can be tested against fakes.
package azure

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/services/auth"
	"nathanbeddoewebdev/aznet/internal/util"
)

// Session carries everything needed to construct ARM clients: the target
// subscription, the resolved credential, and client options selecting the
// cloud environment.
type Session struct {
	SubscriptionID string
	TenantID       string
	ClientID       string
	Credential     azcore.TokenCredential
	Options        *arm.ClientOptions
}

// NewSession builds a session from persisted configuration plus an optional
// subscription override from the command line. The credential is a service
// principal when one is configured (tenant + client-id in config, secret in
// the keychain) and the SDK default chain otherwise.
func NewSession(cfg *config.Config, secrets auth.Store, subscriptionOverride string) (*Session, error) {
	subscription := subscriptionOverride
	if subscription == "" {
		subscription = cfg.Subscription
	}
	if subscription == "" {
		return nil, errors.New(`no subscription specified: pass --subscription or run "aznet config set subscription <id>"`)
	}

	cc, err := cloudConfiguration(cfg.Cloud)
	if err != nil {
		return nil, err
	}

	cred, err := resolveCredential(cfg, secrets, cc)
	if err != nil {
		return nil, err
	}

	return &Session{
		SubscriptionID: subscription,
		TenantID:       cfg.TenantID,
		ClientID:       cfg.ClientID,
		Credential:     cred,
		Options: &arm.ClientOptions{
			ClientOptions: azcore.ClientOptions{Cloud: cc},
		},
	}, nil
}

func resolveCredential(cfg *config.Config, secrets auth.Store, cc cloud.Configuration) (azcore.TokenCredential, error) {
	if cfg.TenantID != "" && cfg.ClientID != "" {
		secret, err := secrets.GetSecret(cfg.ClientID)
		if errors.Is(err, auth.ErrSecretNotFound) {
			return nil, fmt.Errorf(`service principal %s is configured but has no stored secret: run "aznet auth login"`, cfg.ClientID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read client secret: %w", err)
		}

		cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, secret,
			&azidentity.ClientSecretCredentialOptions{
				ClientOptions: azcore.ClientOptions{Cloud: cc},
			})
		if err != nil {
			return nil, fmt.Errorf("failed to build service principal credential: %w", err)
		}
		return cred, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: azcore.ClientOptions{Cloud: cc},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build default credential: %w", err)
	}
	return cred, nil
}

// cloudConfiguration maps the configured cloud name to the SDK endpoints.
func cloudConfiguration(name string) (cloud.Configuration, error) {
	switch util.NormalizeKey(name) {
	case "", "public", "azurecloud":
		return cloud.AzurePublic, nil
	case "government", "usgovernment", "azureusgovernment":
		return cloud.AzureGovernment, nil
	case "china", "azurechinacloud":
		return cloud.AzureChina, nil
	default:
		return cloud.Configuration{}, fmt.Errorf("unknown cloud %q (expected public, government, or china)", name)
	}
}
