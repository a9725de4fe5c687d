package azure

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/aznet/internal/armutil"
)

// Terminal provisioning states reported by ARM.
const (
	StateSucceeded = "Succeeded"
	StateFailed    = "Failed"
	StateCanceled  = "Canceled"
)

// IsTerminalState reports whether a provisioning state will not change
// without another operation.
func IsTerminalState(state string) bool {
	switch state {
	case StateSucceeded, StateFailed, StateCanceled:
		return true
	}
	return false
}

// ProvisioningState fetches the current provisioning state of the resource
// identified by id. The resource type is dispatched to the matching client.
// DNS zones carry no provisioning state, so a successful GET reports
// Succeeded; a deleted zone surfaces as a not-found error the caller can
// map with IsNotFound.
func (c *Clients) ProvisioningState(ctx context.Context, id string) (string, error) {
	rid, err := armutil.Parse(id)
	if err != nil {
		return "", err
	}
	typ := rid.ResourceType.String()
	switch {
	case strings.EqualFold(typ, "Microsoft.Resources/resourceGroups"):
		group, err := c.ResourceGroups.Get(ctx, rid.Name)
		if err != nil {
			return "", err
		}
		if group.Properties == nil {
			return "", nil
		}
		return armutil.Value(group.Properties.ProvisioningState), nil
	case strings.EqualFold(typ, "Microsoft.Resources/deployments"):
		dep, err := c.Deployments.Get(ctx, rid.ResourceGroupName, rid.Name)
		if err != nil {
			return "", err
		}
		if dep.Properties == nil {
			return "", nil
		}
		return enumState(dep.Properties.ProvisioningState), nil
	case strings.EqualFold(typ, "Microsoft.Network/virtualNetworkGateways"):
		gw, err := c.VirtualNetworkGateways.Get(ctx, rid.ResourceGroupName, rid.Name)
		if err != nil {
			return "", err
		}
		if gw.Properties == nil {
			return "", nil
		}
		return enumState(gw.Properties.ProvisioningState), nil
	case strings.EqualFold(typ, "Microsoft.Network/applicationGateways"):
		gw, err := c.ApplicationGateways.Get(ctx, rid.ResourceGroupName, rid.Name)
		if err != nil {
			return "", err
		}
		if gw.Properties == nil {
			return "", nil
		}
		return enumState(gw.Properties.ProvisioningState), nil
	case strings.EqualFold(typ, "Microsoft.Network/dnszones"):
		if _, err := c.Zones.Get(ctx, rid.ResourceGroupName, rid.Name); err != nil {
			return "", err
		}
		return StateSucceeded, nil
	}
	return "", fmt.Errorf("resume is not supported for resource type %q", typ)
}

func enumState[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
