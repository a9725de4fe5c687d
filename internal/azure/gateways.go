package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
)

// VirtualNetworkGatewaysClient is a minimal interface for the ARM virtual
// network gateways client.
type VirtualNetworkGatewaysClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.VirtualNetworkGateway, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, gateway armnetwork.VirtualNetworkGateway) (armnetwork.VirtualNetworkGateway, error)
	StartCreateOrUpdate(ctx context.Context, resourceGroup, name string, gateway armnetwork.VirtualNetworkGateway) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.VirtualNetworkGateway, error)
}

type virtualNetworkGatewaysClient struct {
	*armnetwork.VirtualNetworkGatewaysClient
}

var _ VirtualNetworkGatewaysClient = (*virtualNetworkGatewaysClient)(nil)

func newVirtualNetworkGatewaysClient(s *Session) (VirtualNetworkGatewaysClient, error) {
	c, err := armnetwork.NewVirtualNetworkGatewaysClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &virtualNetworkGatewaysClient{c}, nil
}

func (c *virtualNetworkGatewaysClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.VirtualNetworkGateway, error) {
	resp, err := c.VirtualNetworkGatewaysClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGateway{}, err
	}
	return resp.VirtualNetworkGateway, nil
}

func (c *virtualNetworkGatewaysClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, gateway armnetwork.VirtualNetworkGateway) (armnetwork.VirtualNetworkGateway, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, gateway, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGateway{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGateway{}, err
	}
	return resp.VirtualNetworkGateway, nil
}

func (c *virtualNetworkGatewaysClient) StartCreateOrUpdate(ctx context.Context, resourceGroup, name string, gateway armnetwork.VirtualNetworkGateway) error {
	_, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, gateway, nil)
	return err
}

func (c *virtualNetworkGatewaysClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.VirtualNetworkGateway, error) {
	var out []*armnetwork.VirtualNetworkGateway
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

// ConnectionsClient is a minimal interface for the ARM virtual network
// gateway connections client.
type ConnectionsClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.VirtualNetworkGatewayConnection, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, conn armnetwork.VirtualNetworkGatewayConnection) (armnetwork.VirtualNetworkGatewayConnection, error)
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.VirtualNetworkGatewayConnection, error)
}

type connectionsClient struct {
	*armnetwork.VirtualNetworkGatewayConnectionsClient
}

var _ ConnectionsClient = (*connectionsClient)(nil)

func newConnectionsClient(s *Session) (ConnectionsClient, error) {
	c, err := armnetwork.NewVirtualNetworkGatewayConnectionsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &connectionsClient{c}, nil
}

func (c *connectionsClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.VirtualNetworkGatewayConnection, error) {
	resp, err := c.VirtualNetworkGatewayConnectionsClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGatewayConnection{}, err
	}
	return resp.VirtualNetworkGatewayConnection, nil
}

func (c *connectionsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, conn armnetwork.VirtualNetworkGatewayConnection) (armnetwork.VirtualNetworkGatewayConnection, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, conn, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGatewayConnection{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGatewayConnection{}, err
	}
	return resp.VirtualNetworkGatewayConnection, nil
}

func (c *connectionsClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.VirtualNetworkGatewayConnection, error) {
	var out []*armnetwork.VirtualNetworkGatewayConnection
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

// LocalNetworkGatewaysClient is a minimal interface for the ARM local
// network gateways client.
type LocalNetworkGatewaysClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.LocalNetworkGateway, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, gateway armnetwork.LocalNetworkGateway) (armnetwork.LocalNetworkGateway, error)
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.LocalNetworkGateway, error)
}

type localNetworkGatewaysClient struct {
	*armnetwork.LocalNetworkGatewaysClient
}

var _ LocalNetworkGatewaysClient = (*localNetworkGatewaysClient)(nil)

func newLocalNetworkGatewaysClient(s *Session) (LocalNetworkGatewaysClient, error) {
	c, err := armnetwork.NewLocalNetworkGatewaysClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &localNetworkGatewaysClient{c}, nil
}

func (c *localNetworkGatewaysClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.LocalNetworkGateway, error) {
	resp, err := c.LocalNetworkGatewaysClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.LocalNetworkGateway{}, err
	}
	return resp.LocalNetworkGateway, nil
}

func (c *localNetworkGatewaysClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, gateway armnetwork.LocalNetworkGateway) (armnetwork.LocalNetworkGateway, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, gateway, nil)
	if err != nil {
		return armnetwork.LocalNetworkGateway{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.LocalNetworkGateway{}, err
	}
	return resp.LocalNetworkGateway, nil
}

func (c *localNetworkGatewaysClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.LocalNetworkGateway, error) {
	var out []*armnetwork.LocalNetworkGateway
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
