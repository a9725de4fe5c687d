package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// VerifyServicePrincipal checks that the given service principal can
// acquire a Resource Manager token in the named cloud. It does not persist
// anything; callers save the credential details only after this succeeds.
func VerifyServicePrincipal(ctx context.Context, tenantID, clientID, secret, cloudName string) error {
	cc, err := cloudConfiguration(cloudName)
	if err != nil {
		return err
	}

	cred, err := azidentity.NewClientSecretCredential(tenantID, clientID, secret,
		&azidentity.ClientSecretCredentialOptions{
			ClientOptions: azcore.ClientOptions{Cloud: cc},
		})
	if err != nil {
		return fmt.Errorf("failed to build service principal credential: %w", err)
	}

	scope := cc.Services[cloud.ResourceManager].Audience + "/.default"
	if _, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}}); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	return nil
}
