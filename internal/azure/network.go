package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
)

// VirtualNetworksClient is a minimal interface for the ARM virtual networks client.
type VirtualNetworksClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.VirtualNetwork, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, vnet armnetwork.VirtualNetwork) (armnetwork.VirtualNetwork, error)
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.VirtualNetwork, error)
	ListAll(ctx context.Context) ([]*armnetwork.VirtualNetwork, error)
}

type virtualNetworksClient struct {
	*armnetwork.VirtualNetworksClient
}

var _ VirtualNetworksClient = (*virtualNetworksClient)(nil)

func newVirtualNetworksClient(s *Session) (VirtualNetworksClient, error) {
	c, err := armnetwork.NewVirtualNetworksClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &virtualNetworksClient{c}, nil
}

func (c *virtualNetworksClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.VirtualNetwork, error) {
	resp, err := c.VirtualNetworksClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.VirtualNetwork{}, err
	}
	return resp.VirtualNetwork, nil
}

func (c *virtualNetworksClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, vnet armnetwork.VirtualNetwork) (armnetwork.VirtualNetwork, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, vnet, nil)
	if err != nil {
		return armnetwork.VirtualNetwork{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.VirtualNetwork{}, err
	}
	return resp.VirtualNetwork, nil
}

func (c *virtualNetworksClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *virtualNetworksClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.VirtualNetwork, error) {
	var out []*armnetwork.VirtualNetwork
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

func (c *virtualNetworksClient) ListAll(ctx context.Context) ([]*armnetwork.VirtualNetwork, error) {
	var out []*armnetwork.VirtualNetwork
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

// SubnetsClient is a minimal interface for the ARM subnets client.
type SubnetsClient interface {
	Get(ctx context.Context, resourceGroup, vnetName, name string) (armnetwork.Subnet, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, vnetName, name string, subnet armnetwork.Subnet) (armnetwork.Subnet, error)
	DeleteAndWait(ctx context.Context, resourceGroup, vnetName, name string) error
	List(ctx context.Context, resourceGroup, vnetName string) ([]*armnetwork.Subnet, error)
}

type subnetsClient struct {
	*armnetwork.SubnetsClient
}

var _ SubnetsClient = (*subnetsClient)(nil)

func newSubnetsClient(s *Session) (SubnetsClient, error) {
	c, err := armnetwork.NewSubnetsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &subnetsClient{c}, nil
}

func (c *subnetsClient) Get(ctx context.Context, resourceGroup, vnetName, name string) (armnetwork.Subnet, error) {
	resp, err := c.SubnetsClient.Get(ctx, resourceGroup, vnetName, name, nil)
	if err != nil {
		return armnetwork.Subnet{}, err
	}
	return resp.Subnet, nil
}

func (c *subnetsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, vnetName, name string, subnet armnetwork.Subnet) (armnetwork.Subnet, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, vnetName, name, subnet, nil)
	if err != nil {
		return armnetwork.Subnet{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.Subnet{}, err
	}
	return resp.Subnet, nil
}

func (c *subnetsClient) DeleteAndWait(ctx context.Context, resourceGroup, vnetName, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, vnetName, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *subnetsClient) List(ctx context.Context, resourceGroup, vnetName string) ([]*armnetwork.Subnet, error) {
	var out []*armnetwork.Subnet
	pager := c.NewListPager(resourceGroup, vnetName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

// VirtualNetworkPeeringsClient is a minimal interface for the ARM vnet peerings client.
type VirtualNetworkPeeringsClient interface {
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, vnetName, name string, peering armnetwork.VirtualNetworkPeering) (armnetwork.VirtualNetworkPeering, error)
	DeleteAndWait(ctx context.Context, resourceGroup, vnetName, name string) error
	List(ctx context.Context, resourceGroup, vnetName string) ([]*armnetwork.VirtualNetworkPeering, error)
}

type virtualNetworkPeeringsClient struct {
	*armnetwork.VirtualNetworkPeeringsClient
}

var _ VirtualNetworkPeeringsClient = (*virtualNetworkPeeringsClient)(nil)

func newVirtualNetworkPeeringsClient(s *Session) (VirtualNetworkPeeringsClient, error) {
	c, err := armnetwork.NewVirtualNetworkPeeringsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &virtualNetworkPeeringsClient{c}, nil
}

func (c *virtualNetworkPeeringsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, vnetName, name string, peering armnetwork.VirtualNetworkPeering) (armnetwork.VirtualNetworkPeering, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, vnetName, name, peering, nil)
	if err != nil {
		return armnetwork.VirtualNetworkPeering{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.VirtualNetworkPeering{}, err
	}
	return resp.VirtualNetworkPeering, nil
}

func (c *virtualNetworkPeeringsClient) DeleteAndWait(ctx context.Context, resourceGroup, vnetName, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, vnetName, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *virtualNetworkPeeringsClient) List(ctx context.Context, resourceGroup, vnetName string) ([]*armnetwork.VirtualNetworkPeering, error) {
	var out []*armnetwork.VirtualNetworkPeering
	pager := c.NewListPager(resourceGroup, vnetName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

// SecurityGroupsClient is a minimal interface for the ARM network security groups client.
type SecurityGroupsClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.SecurityGroup, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, nsg armnetwork.SecurityGroup) (armnetwork.SecurityGroup, error)
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.SecurityGroup, error)
	ListAll(ctx context.Context) ([]*armnetwork.SecurityGroup, error)
}

type securityGroupsClient struct {
	*armnetwork.SecurityGroupsClient
}

var _ SecurityGroupsClient = (*securityGroupsClient)(nil)

func newSecurityGroupsClient(s *Session) (SecurityGroupsClient, error) {
	c, err := armnetwork.NewSecurityGroupsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &securityGroupsClient{c}, nil
}

func (c *securityGroupsClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.SecurityGroup, error) {
	resp, err := c.SecurityGroupsClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.SecurityGroup{}, err
	}
	return resp.SecurityGroup, nil
}

func (c *securityGroupsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, nsg armnetwork.SecurityGroup) (armnetwork.SecurityGroup, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, nsg, nil)
	if err != nil {
		return armnetwork.SecurityGroup{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.SecurityGroup{}, err
	}
	return resp.SecurityGroup, nil
}

func (c *securityGroupsClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *securityGroupsClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.SecurityGroup, error) {
	var out []*armnetwork.SecurityGroup
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

func (c *securityGroupsClient) ListAll(ctx context.Context) ([]*armnetwork.SecurityGroup, error) {
	var out []*armnetwork.SecurityGroup
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

// SecurityRulesClient is a minimal interface for the ARM security rules client.
type SecurityRulesClient interface {
	Get(ctx context.Context, resourceGroup, nsgName, name string) (armnetwork.SecurityRule, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, nsgName, name string, rule armnetwork.SecurityRule) (armnetwork.SecurityRule, error)
	DeleteAndWait(ctx context.Context, resourceGroup, nsgName, name string) error
	List(ctx context.Context, resourceGroup, nsgName string) ([]*armnetwork.SecurityRule, error)
}

type securityRulesClient struct {
	*armnetwork.SecurityRulesClient
}

var _ SecurityRulesClient = (*securityRulesClient)(nil)

func newSecurityRulesClient(s *Session) (SecurityRulesClient, error) {
	c, err := armnetwork.NewSecurityRulesClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &securityRulesClient{c}, nil
}

func (c *securityRulesClient) Get(ctx context.Context, resourceGroup, nsgName, name string) (armnetwork.SecurityRule, error) {
	resp, err := c.SecurityRulesClient.Get(ctx, resourceGroup, nsgName, name, nil)
	if err != nil {
		return armnetwork.SecurityRule{}, err
	}
	return resp.SecurityRule, nil
}

func (c *securityRulesClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, nsgName, name string, rule armnetwork.SecurityRule) (armnetwork.SecurityRule, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, nsgName, name, rule, nil)
	if err != nil {
		return armnetwork.SecurityRule{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.SecurityRule{}, err
	}
	return resp.SecurityRule, nil
}

func (c *securityRulesClient) DeleteAndWait(ctx context.Context, resourceGroup, nsgName, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, nsgName, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *securityRulesClient) List(ctx context.Context, resourceGroup, nsgName string) ([]*armnetwork.SecurityRule, error) {
	var out []*armnetwork.SecurityRule
	pager := c.NewListPager(resourceGroup, nsgName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

// InterfacesClient is a minimal interface for the ARM network interfaces client.
type InterfacesClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.Interface, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, nic armnetwork.Interface) (armnetwork.Interface, error)
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.Interface, error)
	ListAll(ctx context.Context) ([]*armnetwork.Interface, error)
}

type interfacesClient struct {
	*armnetwork.InterfacesClient
}

var _ InterfacesClient = (*interfacesClient)(nil)

func newInterfacesClient(s *Session) (InterfacesClient, error) {
	c, err := armnetwork.NewInterfacesClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &interfacesClient{c}, nil
}

func (c *interfacesClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.Interface, error) {
	resp, err := c.InterfacesClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.Interface{}, err
	}
	return resp.Interface, nil
}

func (c *interfacesClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, nic armnetwork.Interface) (armnetwork.Interface, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, nic, nil)
	if err != nil {
		return armnetwork.Interface{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.Interface{}, err
	}
	return resp.Interface, nil
}

func (c *interfacesClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *interfacesClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.Interface, error) {
	var out []*armnetwork.Interface
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

func (c *interfacesClient) ListAll(ctx context.Context) ([]*armnetwork.Interface, error) {
	var out []*armnetwork.Interface
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

// PublicIPAddressesClient is a minimal interface for the ARM public IP addresses client.
type PublicIPAddressesClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.PublicIPAddress, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, ip armnetwork.PublicIPAddress) (armnetwork.PublicIPAddress, error)
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.PublicIPAddress, error)
	ListAll(ctx context.Context) ([]*armnetwork.PublicIPAddress, error)
}

type publicIPAddressesClient struct {
	*armnetwork.PublicIPAddressesClient
}

var _ PublicIPAddressesClient = (*publicIPAddressesClient)(nil)

func newPublicIPAddressesClient(s *Session) (PublicIPAddressesClient, error) {
	c, err := armnetwork.NewPublicIPAddressesClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &publicIPAddressesClient{c}, nil
}

func (c *publicIPAddressesClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.PublicIPAddress, error) {
	resp, err := c.PublicIPAddressesClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.PublicIPAddress{}, err
	}
	return resp.PublicIPAddress, nil
}

func (c *publicIPAddressesClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, ip armnetwork.PublicIPAddress) (armnetwork.PublicIPAddress, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, ip, nil)
	if err != nil {
		return armnetwork.PublicIPAddress{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.PublicIPAddress{}, err
	}
	return resp.PublicIPAddress, nil
}

func (c *publicIPAddressesClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *publicIPAddressesClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.PublicIPAddress, error) {
	var out []*armnetwork.PublicIPAddress
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

func (c *publicIPAddressesClient) ListAll(ctx context.Context) ([]*armnetwork.PublicIPAddress, error) {
	var out []*armnetwork.PublicIPAddress
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

// RouteTablesClient is a minimal interface for the ARM route tables client.
type RouteTablesClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armnetwork.RouteTable, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, table armnetwork.RouteTable) (armnetwork.RouteTable, error)
	DeleteAndWait(ctx context.Context, resourceGroup, name string) error
	List(ctx context.Context, resourceGroup string) ([]*armnetwork.RouteTable, error)
	ListAll(ctx context.Context) ([]*armnetwork.RouteTable, error)
}

type routeTablesClient struct {
	*armnetwork.RouteTablesClient
}

var _ RouteTablesClient = (*routeTablesClient)(nil)

func newRouteTablesClient(s *Session) (RouteTablesClient, error) {
	c, err := armnetwork.NewRouteTablesClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &routeTablesClient{c}, nil
}

func (c *routeTablesClient) Get(ctx context.Context, resourceGroup, name string) (armnetwork.RouteTable, error) {
	resp, err := c.RouteTablesClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armnetwork.RouteTable{}, err
	}
	return resp.RouteTable, nil
}

func (c *routeTablesClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, table armnetwork.RouteTable) (armnetwork.RouteTable, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, table, nil)
	if err != nil {
		return armnetwork.RouteTable{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.RouteTable{}, err
	}
	return resp.RouteTable, nil
}

func (c *routeTablesClient) DeleteAndWait(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *routeTablesClient) List(ctx context.Context, resourceGroup string) ([]*armnetwork.RouteTable, error) {
	var out []*armnetwork.RouteTable
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

func (c *routeTablesClient) ListAll(ctx context.Context) ([]*armnetwork.RouteTable, error) {
	var out []*armnetwork.RouteTable
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

// RoutesClient is a minimal interface for the ARM routes client.
type RoutesClient interface {
	Get(ctx context.Context, resourceGroup, tableName, name string) (armnetwork.Route, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, tableName, name string, route armnetwork.Route) (armnetwork.Route, error)
	DeleteAndWait(ctx context.Context, resourceGroup, tableName, name string) error
	List(ctx context.Context, resourceGroup, tableName string) ([]*armnetwork.Route, error)
}

type routesClient struct {
	*armnetwork.RoutesClient
}

var _ RoutesClient = (*routesClient)(nil)

func newRoutesClient(s *Session) (RoutesClient, error) {
	c, err := armnetwork.NewRoutesClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &routesClient{c}, nil
}

func (c *routesClient) Get(ctx context.Context, resourceGroup, tableName, name string) (armnetwork.Route, error) {
	resp, err := c.RoutesClient.Get(ctx, resourceGroup, tableName, name, nil)
	if err != nil {
		return armnetwork.Route{}, err
	}
	return resp.Route, nil
}

func (c *routesClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, tableName, name string, route armnetwork.Route) (armnetwork.Route, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, tableName, name, route, nil)
	if err != nil {
		return armnetwork.Route{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.Route{}, err
	}
	return resp.Route, nil
}

func (c *routesClient) DeleteAndWait(ctx context.Context, resourceGroup, tableName, name string) error {
	poller, err := c.BeginDelete(ctx, resourceGroup, tableName, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *routesClient) List(ctx context.Context, resourceGroup, tableName string) ([]*armnetwork.Route, error) {
	var out []*armnetwork.Route
	pager := c.NewListPager(resourceGroup, tableName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}
