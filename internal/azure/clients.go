package azure

// Clients bundles the minimal ARM clients the commands work against.
// Tests substitute fakes for individual fields.
type Clients struct {
	VirtualNetworks         VirtualNetworksClient
	Subnets                 SubnetsClient
	VirtualNetworkPeerings  VirtualNetworkPeeringsClient
	SecurityGroups          SecurityGroupsClient
	SecurityRules           SecurityRulesClient
	Interfaces              InterfacesClient
	PublicIPAddresses       PublicIPAddressesClient
	RouteTables             RouteTablesClient
	Routes                  RoutesClient
	LoadBalancers           LoadBalancersClient
	ApplicationGateways     ApplicationGatewaysClient
	VirtualNetworkGateways  VirtualNetworkGatewaysClient
	Connections             ConnectionsClient
	LocalNetworkGateways    LocalNetworkGatewaysClient
	ExpressRouteCircuits    ExpressRouteCircuitsClient
	ExpressRoutePeerings    ExpressRouteCircuitPeeringsClient
	Zones                   ZonesClient
	RecordSets              RecordSetsClient
	TrafficManagerProfiles  ProfilesClient
	TrafficManagerEndpoints EndpointsClient
	ResourceGroups          ResourceGroupsClient
	Tags                    TagsClient
	Deployments             DeploymentsClient
}

// NewClients builds real SDK-backed clients from a session.
func NewClients(s *Session) (*Clients, error) {
	c := &Clients{}
	var err error
	if c.VirtualNetworks, err = newVirtualNetworksClient(s); err != nil {
		return nil, err
	}
	if c.Subnets, err = newSubnetsClient(s); err != nil {
		return nil, err
	}
	if c.VirtualNetworkPeerings, err = newVirtualNetworkPeeringsClient(s); err != nil {
		return nil, err
	}
	if c.SecurityGroups, err = newSecurityGroupsClient(s); err != nil {
		return nil, err
	}
	if c.SecurityRules, err = newSecurityRulesClient(s); err != nil {
		return nil, err
	}
	if c.Interfaces, err = newInterfacesClient(s); err != nil {
		return nil, err
	}
	if c.PublicIPAddresses, err = newPublicIPAddressesClient(s); err != nil {
		return nil, err
	}
	if c.RouteTables, err = newRouteTablesClient(s); err != nil {
		return nil, err
	}
	if c.Routes, err = newRoutesClient(s); err != nil {
		return nil, err
	}
	if c.LoadBalancers, err = newLoadBalancersClient(s); err != nil {
		return nil, err
	}
	if c.ApplicationGateways, err = newApplicationGatewaysClient(s); err != nil {
		return nil, err
	}
	if c.VirtualNetworkGateways, err = newVirtualNetworkGatewaysClient(s); err != nil {
		return nil, err
	}
	if c.Connections, err = newConnectionsClient(s); err != nil {
		return nil, err
	}
	if c.LocalNetworkGateways, err = newLocalNetworkGatewaysClient(s); err != nil {
		return nil, err
	}
	if c.ExpressRouteCircuits, err = newExpressRouteCircuitsClient(s); err != nil {
		return nil, err
	}
	if c.ExpressRoutePeerings, err = newExpressRouteCircuitPeeringsClient(s); err != nil {
		return nil, err
	}
	if c.Zones, err = newZonesClient(s); err != nil {
		return nil, err
	}
	if c.RecordSets, err = newRecordSetsClient(s); err != nil {
		return nil, err
	}
	if c.TrafficManagerProfiles, err = newProfilesClient(s); err != nil {
		return nil, err
	}
	if c.TrafficManagerEndpoints, err = newEndpointsClient(s); err != nil {
		return nil, err
	}
	if c.ResourceGroups, err = newResourceGroupsClient(s); err != nil {
		return nil, err
	}
	if c.Tags, err = newTagsClient(s); err != nil {
		return nil, err
	}
	if c.Deployments, err = newDeploymentsClient(s); err != nil {
		return nil, err
	}
	return c, nil
}
