package armutil

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

// NetworkNamespace is the resource provider namespace for network resources.
const NetworkNamespace = "Microsoft.Network"

// IsResourceID reports whether s looks like a full ARM resource ID rather
// than a bare resource name.
func IsResourceID(s string) bool {
	if !strings.HasPrefix(s, "/subscriptions/") {
		return false
	}
	_, err := arm.ParseResourceID(s)
	return err == nil
}

// Parse wraps arm.ParseResourceID with a consistent error.
func Parse(s string) (*arm.ResourceID, error) {
	id, err := arm.ParseResourceID(s)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID %q: %w", s, err)
	}
	return id, nil
}

// SubscriptionOf extracts the subscription ID, or "" for malformed input.
func SubscriptionOf(s string) string {
	id, err := arm.ParseResourceID(s)
	if err != nil {
		return ""
	}
	return id.SubscriptionID
}

// ResourceGroupOf extracts the resource group name, or "" for malformed input.
func ResourceGroupOf(s string) string {
	id, err := arm.ParseResourceID(s)
	if err != nil {
		return ""
	}
	return id.ResourceGroupName
}

// NameOf returns the trailing resource name of an ID. Bare names pass
// through unchanged, so it is safe on name-or-ID flag values.
func NameOf(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}
	id, err := arm.ParseResourceID(s)
	if err != nil {
		return s
	}
	return id.Name
}

// ResourceID assembles an ARM resource ID. childPairs alternates child type
// and child name segments, so
//
//	ResourceID(sub, rg, NetworkNamespace, "virtualNetworks", "vnet1", "subnets", "front")
//
// yields .../virtualNetworks/vnet1/subnets/front.
func ResourceID(subscription, resourceGroup, namespace, resourceType, name string, childPairs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "/subscriptions/%s/resourceGroups/%s/providers/%s/%s/%s",
		subscription, resourceGroup, namespace, resourceType, name)
	for i := 0; i+1 < len(childPairs); i += 2 {
		fmt.Fprintf(&b, "/%s/%s", childPairs[i], childPairs[i+1])
	}
	return b.String()
}

// EnsureNetworkID resolves a name-or-ID flag value: IDs pass through
// untouched, names are qualified into the caller's subscription and resource
// group under the given Microsoft.Network type.
func EnsureNetworkID(subscription, resourceGroup, resourceType, nameOrID string) string {
	if IsResourceID(nameOrID) {
		return nameOrID
	}
	return ResourceID(subscription, resourceGroup, NetworkNamespace, resourceType, nameOrID)
}

// ResourceGroupID builds a resource group ID.
func ResourceGroupID(subscription, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscription, name)
}

// VirtualNetworkID builds a virtual network resource ID.
func VirtualNetworkID(subscription, resourceGroup, name string) string {
	return ResourceID(subscription, resourceGroup, NetworkNamespace, "virtualNetworks", name)
}

// SubnetID builds a subnet resource ID.
func SubnetID(subscription, resourceGroup, vnet, name string) string {
	return ResourceID(subscription, resourceGroup, NetworkNamespace, "virtualNetworks", vnet, "subnets", name)
}

// GatewaySubnetID builds the ID of the reserved GatewaySubnet inside a
// virtual network.
func GatewaySubnetID(subscription, resourceGroup, vnet string) string {
	return SubnetID(subscription, resourceGroup, vnet, "GatewaySubnet")
}

// LoadBalancerChildID builds the ID of a load balancer child resource such
// as a frontend IP configuration or backend address pool.
func LoadBalancerChildID(subscription, resourceGroup, lb, childType, name string) string {
	return ResourceID(subscription, resourceGroup, NetworkNamespace, "loadBalancers", lb, childType, name)
}
