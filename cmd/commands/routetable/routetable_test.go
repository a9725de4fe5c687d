package routetable

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

type fakeRouteTables struct {
	tables    map[string]armnetwork.RouteTable
	saved     *armnetwork.RouteTable
	listedAll bool
}

func (f *fakeRouteTables) Get(_ context.Context, resourceGroup, name string) (armnetwork.RouteTable, error) {
	t, ok := f.tables[name]
	if !ok {
		return armnetwork.RouteTable{}, fmt.Errorf("route table %q not found", name)
	}
	return t, nil
}

func (f *fakeRouteTables) CreateOrUpdateAndWait(_ context.Context, resourceGroup, name string, table armnetwork.RouteTable) (armnetwork.RouteTable, error) {
	f.saved = &table
	return table, nil
}

func (f *fakeRouteTables) DeleteAndWait(_ context.Context, resourceGroup, name string) error {
	return nil
}

func (f *fakeRouteTables) List(_ context.Context, resourceGroup string) ([]*armnetwork.RouteTable, error) {
	return f.all(), nil
}

func (f *fakeRouteTables) ListAll(_ context.Context) ([]*armnetwork.RouteTable, error) {
	f.listedAll = true
	return f.all(), nil
}

func (f *fakeRouteTables) all() []*armnetwork.RouteTable {
	var out []*armnetwork.RouteTable
	for name := range f.tables {
		t := f.tables[name]
		out = append(out, &t)
	}
	return out
}

type fakeRoutes struct {
	routes  map[string]armnetwork.Route
	saved   *armnetwork.Route
	deleted string
}

func (f *fakeRoutes) Get(_ context.Context, resourceGroup, tableName, name string) (armnetwork.Route, error) {
	r, ok := f.routes[name]
	if !ok {
		return armnetwork.Route{}, fmt.Errorf("route %q not found", name)
	}
	return r, nil
}

func (f *fakeRoutes) CreateOrUpdateAndWait(_ context.Context, resourceGroup, tableName, name string, route armnetwork.Route) (armnetwork.Route, error) {
	f.saved = &route
	return route, nil
}

func (f *fakeRoutes) DeleteAndWait(_ context.Context, resourceGroup, tableName, name string) error {
	f.deleted = name
	return nil
}

func (f *fakeRoutes) List(_ context.Context, resourceGroup, tableName string) ([]*armnetwork.Route, error) {
	var out []*armnetwork.Route
	for name := range f.routes {
		r := f.routes[name]
		out = append(out, &r)
	}
	return out, nil
}

type fakes struct {
	tables *fakeRouteTables
	routes *fakeRoutes
}

func useFakes(t *testing.T) *fakes {
	t.Helper()
	f := &fakes{
		tables: &fakeRouteTables{tables: map[string]armnetwork.RouteTable{}},
		routes: &fakeRoutes{routes: map[string]armnetwork.Route{}},
	}
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		clients := &azure.Clients{
			RouteTables: f.tables,
			Routes:      f.routes,
		}
		return clients, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
	return f
}

func execRouteTable(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func TestListCountsRoutesAndSubnets(t *testing.T) {
	f := useFakes(t)
	f.tables.tables["my-rt"] = armnetwork.RouteTable{
		ID:       to.Ptr("/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/routeTables/my-rt"),
		Name:     to.Ptr("my-rt"),
		Location: to.Ptr("westus2"),
		Properties: &armnetwork.RouteTablePropertiesFormat{
			Routes:  []*armnetwork.Route{{Name: to.Ptr("r1")}, {Name: to.Ptr("r2")}},
			Subnets: []*armnetwork.Subnet{{Name: to.Ptr("s1")}},
		},
	}

	stdout, err := execRouteTable(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !f.tables.listedAll {
		t.Error("expected subscription-wide listing without -g")
	}
	for _, want := range []string{"my-rt", "my-rg", "westus2", "2", "1"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestUpdateReplacesTags(t *testing.T) {
	f := useFakes(t)
	table := armnetwork.RouteTable{
		Name: to.Ptr("my-rt"),
		Tags: map[string]*string{"env": to.Ptr("dev")},
	}
	f.tables.tables["my-rt"] = table

	_, err := execRouteTable(t, "update", "-g", "my-rg", "-n", "my-rt", "--tags", "env=prod,team=net")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := armutil.Value(f.tables.saved.Tags["env"]); got != "prod" {
		t.Errorf("env tag = %q", got)
	}
	if got := armutil.Value(f.tables.saved.Tags["team"]); got != "net" {
		t.Errorf("team tag = %q", got)
	}
}

func TestRouteCreate(t *testing.T) {
	f := useFakes(t)

	stdout, err := execRouteTable(t, "route", "create", "-g", "my-rg", "--route-table-name", "my-rt",
		"-n", "to-appliance", "--address-prefix", "10.1.0.0/16",
		"--next-hop-type", "VirtualAppliance", "--next-hop-ip-address", "10.0.100.4")
	if err != nil {
		t.Fatalf("route create failed: %v", err)
	}

	p := f.routes.saved.Properties
	if got := armutil.Value(p.AddressPrefix); got != "10.1.0.0/16" {
		t.Errorf("address prefix = %q", got)
	}
	if *p.NextHopType != armnetwork.RouteNextHopTypeVirtualAppliance {
		t.Errorf("next hop type = %v", *p.NextHopType)
	}
	if got := armutil.Value(p.NextHopIPAddress); got != "10.0.100.4" {
		t.Errorf("next hop IP = %q", got)
	}
	if !strings.Contains(stdout, "Created route to-appliance in my-rt.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestRouteCreateRejectsUnknownHopType(t *testing.T) {
	useFakes(t)

	_, err := execRouteTable(t, "route", "create", "-g", "my-rg", "--route-table-name", "my-rt",
		"-n", "bad", "--address-prefix", "10.1.0.0/16", "--next-hop-type", "Teleport")
	if err == nil {
		t.Fatal("expected an error for an unknown hop type")
	}
	if !strings.Contains(err.Error(), `invalid --next-hop-type "Teleport"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRouteUpdateKeepsUnchangedFields(t *testing.T) {
	f := useFakes(t)
	f.routes.routes["to-appliance"] = armnetwork.Route{
		Name: to.Ptr("to-appliance"),
		Properties: &armnetwork.RoutePropertiesFormat{
			AddressPrefix:    to.Ptr("10.1.0.0/16"),
			NextHopType:      to.Ptr(armnetwork.RouteNextHopTypeVirtualAppliance),
			NextHopIPAddress: to.Ptr("10.0.100.4"),
		},
	}

	_, err := execRouteTable(t, "route", "update", "-g", "my-rg", "--route-table-name", "my-rt",
		"-n", "to-appliance", "--next-hop-ip-address", "10.0.100.5")
	if err != nil {
		t.Fatalf("route update failed: %v", err)
	}

	p := f.routes.saved.Properties
	if got := armutil.Value(p.NextHopIPAddress); got != "10.0.100.5" {
		t.Errorf("next hop IP = %q", got)
	}
	if got := armutil.Value(p.AddressPrefix); got != "10.1.0.0/16" {
		t.Errorf("address prefix changed: %q", got)
	}
	if *p.NextHopType != armnetwork.RouteNextHopTypeVirtualAppliance {
		t.Errorf("next hop type changed: %v", *p.NextHopType)
	}
}

func TestRouteListTable(t *testing.T) {
	f := useFakes(t)
	f.routes.routes["default"] = armnetwork.Route{
		Name: to.Ptr("default"),
		Properties: &armnetwork.RoutePropertiesFormat{
			AddressPrefix: to.Ptr("0.0.0.0/0"),
			NextHopType:   to.Ptr(armnetwork.RouteNextHopTypeInternet),
		},
	}

	stdout, err := execRouteTable(t, "route", "list", "-g", "my-rg", "--route-table-name", "my-rt")
	if err != nil {
		t.Fatalf("route list failed: %v", err)
	}
	for _, want := range []string{"default", "0.0.0.0/0", "Internet"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRouteDelete(t *testing.T) {
	f := useFakes(t)

	stdout, err := execRouteTable(t, "route", "delete", "-g", "my-rg", "--route-table-name", "my-rt", "-n", "default")
	if err != nil {
		t.Fatalf("route delete failed: %v", err)
	}
	if f.routes.deleted != "default" {
		t.Errorf("deleted = %q", f.routes.deleted)
	}
	if !strings.Contains(stdout, "Deleted route default from my-rt.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}
