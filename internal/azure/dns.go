package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
)

// ZonesClient is a minimal interface for the ARM DNS zones client.
type ZonesClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armdns.Zone, error)
	// CreateOrUpdate passes ifMatch/ifNoneMatch through as etag
	// preconditions; empty strings mean no precondition.
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, zone armdns.Zone, ifMatch, ifNoneMatch string) (armdns.Zone, error)
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	StartDelete(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context) ([]*armdns.Zone, error)
	ListByResourceGroup(ctx context.Context, resourceGroup string) ([]*armdns.Zone, error)
}

type zonesClient struct {
	*armdns.ZonesClient
}

var _ ZonesClient = (*zonesClient)(nil)

func newZonesClient(s *Session) (ZonesClient, error) {
	c, err := armdns.NewZonesClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &zonesClient{c}, nil
}

func (c *zonesClient) Get(ctx context.Context, resourceGroup, name string) (armdns.Zone, error) {
	resp, err := c.ZonesClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armdns.Zone{}, err
	}
	return resp.Zone, nil
}

func (c *zonesClient) CreateOrUpdate(ctx context.Context, resourceGroup, name string, zone armdns.Zone, ifMatch, ifNoneMatch string) (armdns.Zone, error) {
	opts := &armdns.ZonesClientCreateOrUpdateOptions{}
	if ifMatch != "" {
		opts.IfMatch = to.Ptr(ifMatch)
	}
	if ifNoneMatch != "" {
		opts.IfNoneMatch = to.Ptr(ifNoneMatch)
	}
	resp, err := c.ZonesClient.CreateOrUpdate(ctx, resourceGroup, name, zone, opts)
	if err != nil {
		return armdns.Zone{}, err
	}
	return resp.Zone, nil
}

func (c *zonesClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *zonesClient) StartDelete(ctx context.Context, resourceGroup, name string) error {
	_, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	return err
}

func (c *zonesClient) List(ctx context.Context) ([]*armdns.Zone, error) {
	var out []*armdns.Zone
	pager := c.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (c *zonesClient) ListByResourceGroup(ctx context.Context, resourceGroup string) ([]*armdns.Zone, error) {
	var out []*armdns.Zone
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

// RecordSetsClient is a minimal interface for the ARM DNS record sets client.
type RecordSetsClient interface {
	Get(ctx context.Context, resourceGroup, zone, name string, recordType armdns.RecordType) (armdns.RecordSet, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, zone, name string, recordType armdns.RecordType, set armdns.RecordSet, ifMatch, ifNoneMatch string) (armdns.RecordSet, error)
	Delete(ctx context.Context, resourceGroup, zone, name string, recordType armdns.RecordType) error
	ListByZone(ctx context.Context, resourceGroup, zone string) ([]*armdns.RecordSet, error)
	ListByType(ctx context.Context, resourceGroup, zone string, recordType armdns.RecordType) ([]*armdns.RecordSet, error)
}

type recordSetsClient struct {
	*armdns.RecordSetsClient
}

var _ RecordSetsClient = (*recordSetsClient)(nil)

func newRecordSetsClient(s *Session) (RecordSetsClient, error) {
	c, err := armdns.NewRecordSetsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &recordSetsClient{c}, nil
}

func (c *recordSetsClient) Get(ctx context.Context, resourceGroup, zone, name string, recordType armdns.RecordType) (armdns.RecordSet, error) {
	resp, err := c.RecordSetsClient.Get(ctx, resourceGroup, zone, name, recordType, nil)
	if err != nil {
		return armdns.RecordSet{}, err
	}
	return resp.RecordSet, nil
}

func (c *recordSetsClient) CreateOrUpdate(ctx context.Context, resourceGroup, zone, name string, recordType armdns.RecordType, set armdns.RecordSet, ifMatch, ifNoneMatch string) (armdns.RecordSet, error) {
	opts := &armdns.RecordSetsClientCreateOrUpdateOptions{}
	if ifMatch != "" {
		opts.IfMatch = to.Ptr(ifMatch)
	}
	if ifNoneMatch != "" {
		opts.IfNoneMatch = to.Ptr(ifNoneMatch)
	}
	resp, err := c.RecordSetsClient.CreateOrUpdate(ctx, resourceGroup, zone, name, recordType, set, opts)
	if err != nil {
		return armdns.RecordSet{}, err
	}
	return resp.RecordSet, nil
}

func (c *recordSetsClient) Delete(ctx context.Context, resourceGroup, zone, name string, recordType armdns.RecordType) error {
	_, err := c.RecordSetsClient.Delete(ctx, resourceGroup, zone, name, recordType, nil)
	return err
}

func (c *recordSetsClient) ListByZone(ctx context.Context, resourceGroup, zone string) ([]*armdns.RecordSet, error) {
	var out []*armdns.RecordSet
	pager := c.NewListByDNSZonePager(resourceGroup, zone, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (c *recordSetsClient) ListByType(ctx context.Context, resourceGroup, zone string, recordType armdns.RecordType) ([]*armdns.RecordSet, error) {
	var out []*armdns.RecordSet
	pager := c.NewListByTypePager(resourceGroup, zone, recordType, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}
