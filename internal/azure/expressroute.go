package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
)

// ExpressRouteCircuitsClient is a minimal interface for the ARM express
// route circuits client.
type ExpressRouteCircuitsClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.ExpressRouteCircuit, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, circuit armnetwork.ExpressRouteCircuit) (armnetwork.ExpressRouteCircuit, error)
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.ExpressRouteCircuit, error)
	ListAll(ctx context.Context) ([]*armnetwork.ExpressRouteCircuit, error)
}

type expressRouteCircuitsClient struct {
	*armnetwork.ExpressRouteCircuitsClient
}

var _ ExpressRouteCircuitsClient = (*expressRouteCircuitsClient)(nil)

func newExpressRouteCircuitsClient(s *Session) (ExpressRouteCircuitsClient, error) {
	c, err := armnetwork.NewExpressRouteCircuitsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &expressRouteCircuitsClient{c}, nil
}

func (c *expressRouteCircuitsClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.ExpressRouteCircuit, error) {
	resp, err := c.ExpressRouteCircuitsClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.ExpressRouteCircuit{}, err
	}
	return resp.ExpressRouteCircuit, nil
}

func (c *expressRouteCircuitsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, circuit armnetwork.ExpressRouteCircuit) (armnetwork.ExpressRouteCircuit, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, circuit, nil)
	if err != nil {
		return armnetwork.ExpressRouteCircuit{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.ExpressRouteCircuit{}, err
	}
	return resp.ExpressRouteCircuit, nil
}

func (c *expressRouteCircuitsClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.ExpressRouteCircuit, error) {
	var out []*armnetwork.ExpressRouteCircuit
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

func (c *expressRouteCircuitsClient) ListAll(ctx context.Context) ([]*armnetwork.ExpressRouteCircuit, error) {
	var out []*armnetwork.ExpressRouteCircuit
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

// ExpressRouteCircuitPeeringsClient is a minimal interface for the ARM
// express route circuit peerings client.
type ExpressRouteCircuitPeeringsClient interface {
	Get(ctx context.Context, resourceGroup, circuitName, name string) (armnetwork.ExpressRouteCircuitPeering, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, circuitName, name string, peering armnetwork.ExpressRouteCircuitPeering) (armnetwork.ExpressRouteCircuitPeering, error)
	List(ctx context.Context, resourceGroup, circuitName string) ([]*armnetwork.ExpressRouteCircuitPeering, error)
}

type expressRouteCircuitPeeringsClient struct {
	*armnetwork.ExpressRouteCircuitPeeringsClient
}

var _ ExpressRouteCircuitPeeringsClient = (*expressRouteCircuitPeeringsClient)(nil)

func newExpressRouteCircuitPeeringsClient(s *Session) (ExpressRouteCircuitPeeringsClient, error) {
	c, err := armnetwork.NewExpressRouteCircuitPeeringsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &expressRouteCircuitPeeringsClient{c}, nil
}

func (c *expressRouteCircuitPeeringsClient) Get(ctx context.Context, resourceGroup, circuitName, name string) (armnetwork.ExpressRouteCircuitPeering, error) {
	resp, err := c.ExpressRouteCircuitPeeringsClient.Get(ctx, resourceGroup, circuitName, name, nil)
	if err != nil {
		return armnetwork.ExpressRouteCircuitPeering{}, err
	}
	return resp.ExpressRouteCircuitPeering, nil
}

func (c *expressRouteCircuitPeeringsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, circuitName, name string, peering armnetwork.ExpressRouteCircuitPeering) (armnetwork.ExpressRouteCircuitPeering, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, circuitName, name, peering, nil)
	if err != nil {
		return armnetwork.ExpressRouteCircuitPeering{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.ExpressRouteCircuitPeering{}, err
	}
	return resp.ExpressRouteCircuitPeering, nil
}

func (c *expressRouteCircuitPeeringsClient) List(ctx context.Context, resourceGroup, circuitName string) ([]*armnetwork.ExpressRouteCircuitPeering, error) {
	var out []*armnetwork.ExpressRouteCircuitPeering
	pager := c.NewListPager(resourceGroup, circuitName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}
