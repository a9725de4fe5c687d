package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/trafficmanager/armtrafficmanager"
)

// ProfilesClient is a minimal interface for the Traffic Manager profiles client.
type ProfilesClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armtrafficmanager.Profile, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, profile armtrafficmanager.Profile) (armtrafficmanager.Profile, error)
	ListByResourceGroup(ctx context.Context, resourceGroup string) ([]*armtrafficmanager.Profile, error)
	ListBySubscription(ctx context.Context) ([]*armtrafficmanager.Profile, error)
}

type profilesClient struct {
	*armtrafficmanager.ProfilesClient
}

var _ ProfilesClient = (*profilesClient)(nil)

func newProfilesClient(s *Session) (ProfilesClient, error) {
	c, err := armtrafficmanager.NewProfilesClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &profilesClient{c}, nil
}

func (c *profilesClient) Get(ctx context.Context, resourceGroup, name string) (armtrafficmanager.Profile, error) {
	resp, err := c.ProfilesClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armtrafficmanager.Profile{}, err
	}
	return resp.Profile, nil
}

func (c *profilesClient) CreateOrUpdate(ctx context.Context, resourceGroup, name string, profile armtrafficmanager.Profile) (armtrafficmanager.Profile, error) {
	resp, err := c.ProfilesClient.CreateOrUpdate(ctx, resourceGroup, name, profile, nil)
	if err != nil {
		return armtrafficmanager.Profile{}, err
	}
	return resp.Profile, nil
}

func (c *profilesClient) ListByResourceGroup(ctx context.Context, resourceGroup string) ([]*armtrafficmanager.Profile, error) {
	var out []*armtrafficmanager.Profile
	pager := c.NewListByResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (c *profilesClient) ListBySubscription(ctx context.Context) ([]*armtrafficmanager.Profile, error) {
	var out []*armtrafficmanager.Profile
	pager := c.NewListBySubscriptionPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

// EndpointsClient is a minimal interface for the Traffic Manager endpoints client.
type EndpointsClient interface {
	Get(ctx context.Context, resourceGroup, profile string, endpointType armtrafficmanager.EndpointType, name string) (armtrafficmanager.Endpoint, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, profile string, endpointType armtrafficmanager.EndpointType, name string, endpoint armtrafficmanager.Endpoint) (armtrafficmanager.Endpoint, error)
}

type endpointsClient struct {
	*armtrafficmanager.EndpointsClient
}

var _ EndpointsClient = (*endpointsClient)(nil)

func newEndpointsClient(s *Session) (EndpointsClient, error) {
	c, err := armtrafficmanager.NewEndpointsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &endpointsClient{c}, nil
}

func (c *endpointsClient) Get(ctx context.Context, resourceGroup, profile string, endpointType armtrafficmanager.EndpointType, name string) (armtrafficmanager.Endpoint, error) {
	resp, err := c.EndpointsClient.Get(ctx, resourceGroup, profile, endpointType, name, nil)
	if err != nil {
		return armtrafficmanager.Endpoint{}, err
	}
	return resp.Endpoint, nil
}

func (c *endpointsClient) CreateOrUpdate(ctx context.Context, resourceGroup, profile string, endpointType armtrafficmanager.EndpointType, name string, endpoint armtrafficmanager.Endpoint) (armtrafficmanager.Endpoint, error) {
	resp, err := c.EndpointsClient.CreateOrUpdate(ctx, resourceGroup, profile, endpointType, name, endpoint, nil)
	if err != nil {
		return armtrafficmanager.Endpoint{}, err
	}
	return resp.Endpoint, nil
}
