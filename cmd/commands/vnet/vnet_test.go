package vnet

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/config"
)

type fakeVnets struct {
	vnets     map[string]armnetwork.VirtualNetwork
	saved     *armnetwork.VirtualNetwork
	listedRG  string
	listedAll bool
}

func (f *fakeVnets) Get(_ context.Context, resourceGroup, name string) (armnetwork.VirtualNetwork, error) {
	v, ok := f.vnets[name]
	if !ok {
		return armnetwork.VirtualNetwork{}, fmt.Errorf("virtual network %q not found", name)
	}
	return v, nil
}

func (f *fakeVnets) CreateOrUpdateAndWait(_ context.Context, resourceGroup, name string, vnet armnetwork.VirtualNetwork) (armnetwork.VirtualNetwork, error) {
	f.saved = &vnet
	return vnet, nil
}

func (f *fakeVnets) DeleteAndWait(_ context.Context, resourceGroup, name string) error { return nil }

func (f *fakeVnets) List(_ context.Context, resourceGroup string) ([]*armnetwork.VirtualNetwork, error) {
	f.listedRG = resourceGroup
	return f.all(), nil
}

func (f *fakeVnets) ListAll(_ context.Context) ([]*armnetwork.VirtualNetwork, error) {
	f.listedAll = true
	return f.all(), nil
}

func (f *fakeVnets) all() []*armnetwork.VirtualNetwork {
	var out []*armnetwork.VirtualNetwork
	for name := range f.vnets {
		v := f.vnets[name]
		out = append(out, &v)
	}
	return out
}

type fakeSubnets struct {
	subnets map[string]armnetwork.Subnet
	saved   *armnetwork.Subnet
	deleted string
}

func (f *fakeSubnets) Get(_ context.Context, resourceGroup, vnetName, name string) (armnetwork.Subnet, error) {
	s, ok := f.subnets[name]
	if !ok {
		return armnetwork.Subnet{}, fmt.Errorf("subnet %q not found", name)
	}
	return s, nil
}

func (f *fakeSubnets) CreateOrUpdateAndWait(_ context.Context, resourceGroup, vnetName, name string, subnet armnetwork.Subnet) (armnetwork.Subnet, error) {
	f.saved = &subnet
	return subnet, nil
}

func (f *fakeSubnets) DeleteAndWait(_ context.Context, resourceGroup, vnetName, name string) error {
	f.deleted = name
	return nil
}

func (f *fakeSubnets) List(_ context.Context, resourceGroup, vnetName string) ([]*armnetwork.Subnet, error) {
	var out []*armnetwork.Subnet
	for name := range f.subnets {
		s := f.subnets[name]
		out = append(out, &s)
	}
	return out, nil
}

type fakePeerings struct {
	saved *armnetwork.VirtualNetworkPeering
}

func (f *fakePeerings) CreateOrUpdateAndWait(_ context.Context, resourceGroup, vnetName, name string, peering armnetwork.VirtualNetworkPeering) (armnetwork.VirtualNetworkPeering, error) {
	f.saved = &peering
	return peering, nil
}

func (f *fakePeerings) DeleteAndWait(_ context.Context, resourceGroup, vnetName, name string) error {
	return nil
}

func (f *fakePeerings) List(_ context.Context, resourceGroup, vnetName string) ([]*armnetwork.VirtualNetworkPeering, error) {
	return nil, nil
}

type fakes struct {
	vnets    *fakeVnets
	subnets  *fakeSubnets
	peerings *fakePeerings
}

func useFakes(t *testing.T) *fakes {
	t.Helper()
	f := &fakes{
		vnets:    &fakeVnets{vnets: map[string]armnetwork.VirtualNetwork{}},
		subnets:  &fakeSubnets{subnets: map[string]armnetwork.Subnet{}},
		peerings: &fakePeerings{},
	}
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		clients := &azure.Clients{
			VirtualNetworks:        f.vnets,
			Subnets:                f.subnets,
			VirtualNetworkPeerings: f.peerings,
		}
		return clients, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
	return f
}

func execVnet(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func sampleVnet(name string) armnetwork.VirtualNetwork {
	return armnetwork.VirtualNetwork{
		ID:       to.Ptr("/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/virtualNetworks/" + name),
		Name:     to.Ptr(name),
		Location: to.Ptr("westus2"),
		Properties: &armnetwork.VirtualNetworkPropertiesFormat{
			AddressSpace: &armnetwork.AddressSpace{
				AddressPrefixes: []*string{to.Ptr("10.0.0.0/16")},
			},
			Subnets: []*armnetwork.Subnet{{Name: to.Ptr("default")}},
		},
	}
}

func TestListAllAndByGroup(t *testing.T) {
	f := useFakes(t)
	f.vnets.vnets["vnet-a"] = sampleVnet("vnet-a")

	stdout, err := execVnet(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !f.vnets.listedAll {
		t.Error("expected subscription-wide listing without -g")
	}
	for _, want := range []string{"vnet-a", "my-rg", "westus2", "10.0.0.0/16", "1"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}

	if _, err := execVnet(t, "list", "-g", "my-rg"); err != nil {
		t.Fatal(err)
	}
	if f.vnets.listedRG != "my-rg" {
		t.Errorf("listed resource group = %q", f.vnets.listedRG)
	}
}

func TestUpdateAddressPrefixes(t *testing.T) {
	f := useFakes(t)
	f.vnets.vnets["vnet-a"] = sampleVnet("vnet-a")

	_, err := execVnet(t, "update", "-g", "my-rg", "-n", "vnet-a",
		"--address-prefixes", "10.0.0.0/16,10.1.0.0/16")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got := armutil.Strings(f.vnets.saved.Properties.AddressSpace.AddressPrefixes)
	if len(got) != 2 || got[1] != "10.1.0.0/16" {
		t.Errorf("address prefixes = %v", got)
	}
	// Untouched fields survive the read-modify-write.
	if len(f.vnets.saved.Properties.Subnets) != 1 {
		t.Errorf("subnets were dropped: %+v", f.vnets.saved.Properties)
	}
}

func TestUpdateClearsDNSServers(t *testing.T) {
	f := useFakes(t)
	v := sampleVnet("vnet-a")
	v.Properties.DhcpOptions = &armnetwork.DhcpOptions{DNSServers: []*string{to.Ptr("10.0.0.4")}}
	f.vnets.vnets["vnet-a"] = v

	_, err := execVnet(t, "update", "-g", "my-rg", "-n", "vnet-a", "--dns-servers", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if f.vnets.saved.Properties.DhcpOptions != nil {
		t.Errorf("dhcp options not cleared: %+v", f.vnets.saved.Properties.DhcpOptions)
	}
}

func TestSubnetCreateResolvesNames(t *testing.T) {
	f := useFakes(t)

	stdout, err := execVnet(t, "subnet", "create", "-g", "my-rg", "--vnet-name", "vnet-a",
		"-n", "frontend", "--address-prefix", "10.0.1.0/24",
		"--network-security-group", "web-nsg", "--route-table", "web-rt")
	if err != nil {
		t.Fatalf("subnet create failed: %v", err)
	}

	props := f.subnets.saved.Properties
	if got := armutil.Value(props.AddressPrefix); got != "10.0.1.0/24" {
		t.Errorf("address prefix = %q", got)
	}
	wantNSG := "/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/networkSecurityGroups/web-nsg"
	if got := armutil.Value(props.NetworkSecurityGroup.ID); got != wantNSG {
		t.Errorf("nsg ID = %q", got)
	}
	wantRT := "/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/routeTables/web-rt"
	if got := armutil.Value(props.RouteTable.ID); got != wantRT {
		t.Errorf("route table ID = %q", got)
	}
	if !strings.Contains(stdout, "Created subnet frontend in vnet-a.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestSubnetCreatePassesIDThrough(t *testing.T) {
	f := useFakes(t)
	nsgID := "/subscriptions/other/resourceGroups/shared/providers/Microsoft.Network/networkSecurityGroups/shared-nsg"

	_, err := execVnet(t, "subnet", "create", "-g", "my-rg", "--vnet-name", "vnet-a",
		"-n", "frontend", "--address-prefix", "10.0.1.0/24",
		"--network-security-group", nsgID)
	if err != nil {
		t.Fatalf("subnet create failed: %v", err)
	}
	if got := armutil.Value(f.subnets.saved.Properties.NetworkSecurityGroup.ID); got != nsgID {
		t.Errorf("nsg ID = %q, want pass-through", got)
	}
}

func TestSubnetUpdateClearsSecurityGroup(t *testing.T) {
	f := useFakes(t)
	f.subnets.subnets["frontend"] = armnetwork.Subnet{
		Name: to.Ptr("frontend"),
		Properties: &armnetwork.SubnetPropertiesFormat{
			AddressPrefix:        to.Ptr("10.0.1.0/24"),
			NetworkSecurityGroup: &armnetwork.SecurityGroup{ID: to.Ptr("/x/y/z")},
		},
	}

	_, err := execVnet(t, "subnet", "update", "-g", "my-rg", "--vnet-name", "vnet-a",
		"-n", "frontend", "--network-security-group", "")
	if err != nil {
		t.Fatalf("subnet update failed: %v", err)
	}
	if f.subnets.saved.Properties.NetworkSecurityGroup != nil {
		t.Error("security group not detached")
	}
	if got := armutil.Value(f.subnets.saved.Properties.AddressPrefix); got != "10.0.1.0/24" {
		t.Errorf("address prefix changed: %q", got)
	}
}

func TestSubnetDelete(t *testing.T) {
	f := useFakes(t)

	stdout, err := execVnet(t, "subnet", "delete", "-g", "my-rg", "--vnet-name", "vnet-a", "-n", "frontend")
	if err != nil {
		t.Fatalf("subnet delete failed: %v", err)
	}
	if f.subnets.deleted != "frontend" {
		t.Errorf("deleted = %q", f.subnets.deleted)
	}
	if !strings.Contains(stdout, "Deleted subnet frontend.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestPeeringCreateResolvesRemoteName(t *testing.T) {
	f := useFakes(t)

	_, err := execVnet(t, "peering", "create", "-g", "my-rg", "--vnet-name", "vnet-a",
		"-n", "to-b", "--remote-vnet", "vnet-b", "--allow-vnet-access", "--allow-forwarded-traffic")
	if err != nil {
		t.Fatalf("peering create failed: %v", err)
	}

	props := f.peerings.saved.Properties
	want := "/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/virtualNetworks/vnet-b"
	if got := armutil.Value(props.RemoteVirtualNetwork.ID); got != want {
		t.Errorf("remote vnet ID = %q", got)
	}
	if !*props.AllowVirtualNetworkAccess || !*props.AllowForwardedTraffic {
		t.Errorf("access flags = %+v", props)
	}
	if *props.AllowGatewayTransit || *props.UseRemoteGateways {
		t.Errorf("gateway flags should default false: %+v", props)
	}
}
