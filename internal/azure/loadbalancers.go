package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
)

// LoadBalancersClient is a minimal interface for the ARM load balancers client.
type LoadBalancersClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.LoadBalancer, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, lb armnetwork.LoadBalancer) (armnetwork.LoadBalancer, error)
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.LoadBalancer, error)
	ListAll(ctx context.Context) ([]*armnetwork.LoadBalancer, error)
}

type loadBalancersClient struct {
	*armnetwork.LoadBalancersClient
}

var _ LoadBalancersClient = (*loadBalancersClient)(nil)

func newLoadBalancersClient(s *Session) (LoadBalancersClient, error) {
	c, err := armnetwork.NewLoadBalancersClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &loadBalancersClient{c}, nil
}

func (c *loadBalancersClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.LoadBalancer, error) {
	resp, err := c.LoadBalancersClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.LoadBalancer{}, err
	}
	return resp.LoadBalancer, nil
}

func (c *loadBalancersClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, lb armnetwork.LoadBalancer) (armnetwork.LoadBalancer, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, lb, nil)
	if err != nil {
		return armnetwork.LoadBalancer{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.LoadBalancer{}, err
	}
	return resp.LoadBalancer, nil
}

func (c *loadBalancersClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *loadBalancersClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.LoadBalancer, error) {
	var out []*armnetwork.LoadBalancer
	pager := c.NewListPager(resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (c *loadBalancersClient) ListAll(ctx context.Context) ([]*armnetwork.LoadBalancer, error) {
	var out []*armnetwork.LoadBalancer
	pager := c.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

// ApplicationGatewaysClient is a minimal interface for the ARM application gateways client.
type ApplicationGatewaysClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.ApplicationGateway, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, gateway armnetwork.ApplicationGateway) (armnetwork.ApplicationGateway, error)
	StartCreateOrUpdate(ctx context.Context, resourceGroup, name string, gateway armnetwork.ApplicationGateway) error
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	StartAndWait(ctx context.Context, resourceGroup, name string) error
	StopAndWait(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.ApplicationGateway, error)
	ListAll(ctx context.Context) ([]*armnetwork.ApplicationGateway, error)
}

type applicationGatewaysClient struct {
	*armnetwork.ApplicationGatewaysClient
}

var _ ApplicationGatewaysClient = (*applicationGatewaysClient)(nil)

func newApplicationGatewaysClient(s *Session) (ApplicationGatewaysClient, error) {
	c, err := armnetwork.NewApplicationGatewaysClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &applicationGatewaysClient{c}, nil
}

func (c *applicationGatewaysClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.ApplicationGateway, error) {
	resp, err := c.ApplicationGatewaysClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.ApplicationGateway{}, err
	}
	return resp.ApplicationGateway, nil
}

func (c *applicationGatewaysClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, gateway armnetwork.ApplicationGateway) (armnetwork.ApplicationGateway, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, gateway, nil)
	if err != nil {
		return armnetwork.ApplicationGateway{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.ApplicationGateway{}, err
	}
	return resp.ApplicationGateway, nil
}

// StartCreateOrUpdate submits the operation without polling for completion.
// The service keeps working server-side; progress is observable through
// the resource's provisioning state.
func (c *applicationGatewaysClient) StartCreateOrUpdate(ctx context.Context, resourceGroup, name string, gateway armnetwork.ApplicationGateway) error {
	_, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, gateway, nil)
	return err
}

func (c *applicationGatewaysClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *applicationGatewaysClient) StartAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginStart(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *applicationGatewaysClient) StopAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginStop(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *applicationGatewaysClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.ApplicationGateway, error) {
	var out []*armnetwork.ApplicationGateway
	pager := c.NewListPager(resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (c *applicationGatewaysClient) ListAll(ctx context.Context) ([]*armnetwork.ApplicationGateway, error) {
	var out []*armnetwork.ApplicationGateway
	pager := c.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}
