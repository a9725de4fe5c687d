package lb

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

type fakeLoadBalancers struct {
	lbs   map[string]armnetwork.LoadBalancer
	saved *armnetwork.LoadBalancer
}

func (f *fakeLoadBalancers) Get(_ context.Context, resourceGroup, name string) (armnetwork.LoadBalancer, error) {
	lb, ok := f.lbs[name]
	if !ok {
		return armnetwork.LoadBalancer{}, fmt.Errorf("load balancer %q not found", name)
	}
	return lb, nil
}

func (f *fakeLoadBalancers) CreateOrUpdateAndWait(_ context.Context, resourceGroup, name string, lb armnetwork.LoadBalancer) (armnetwork.LoadBalancer, error) {
	f.saved = &lb
	return lb, nil
}

func (f *fakeLoadBalancers) DeleteAndWait(_ context.Context, resourceGroup, name string) error {
	return nil
}

func (f *fakeLoadBalancers) List(_ context.Context, resourceGroup string) ([]*armnetwork.LoadBalancer, error) {
	return f.all(), nil
}

func (f *fakeLoadBalancers) ListAll(_ context.Context) ([]*armnetwork.LoadBalancer, error) {
	return f.all(), nil
}

func (f *fakeLoadBalancers) all() []*armnetwork.LoadBalancer {
	var out []*armnetwork.LoadBalancer
	for name := range f.lbs {
		lb := f.lbs[name]
		out = append(out, &lb)
	}
	return out
}

func useFake(t *testing.T) *fakeLoadBalancers {
	t.Helper()
	f := &fakeLoadBalancers{lbs: map[string]armnetwork.LoadBalancer{}}
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		return &azure.Clients{LoadBalancers: f}, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
	return f
}

func execLb(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

const lbID = "/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/loadBalancers/web-lb"

func sampleLb() armnetwork.LoadBalancer {
	return armnetwork.LoadBalancer{
		ID:       to.Ptr(lbID),
		Name:     to.Ptr("web-lb"),
		Location: to.Ptr("westus2"),
		Properties: &armnetwork.LoadBalancerPropertiesFormat{
			FrontendIPConfigurations: []*armnetwork.FrontendIPConfiguration{{
				ID:   to.Ptr(lbID + "/frontendIPConfigurations/fe1"),
				Name: to.Ptr("fe1"),
				Properties: &armnetwork.FrontendIPConfigurationPropertiesFormat{
					PrivateIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodDynamic),
				},
			}},
			BackendAddressPools: []*armnetwork.BackendAddressPool{{
				ID:   to.Ptr(lbID + "/backendAddressPools/backend"),
				Name: to.Ptr("backend"),
			}},
			Probes: []*armnetwork.Probe{{
				ID:   to.Ptr(lbID + "/probes/http-probe"),
				Name: to.Ptr("http-probe"),
				Properties: &armnetwork.ProbePropertiesFormat{
					Protocol: to.Ptr(armnetwork.ProbeProtocolHTTP),
					Port:     to.Ptr(int32(80)),
				},
			}},
		},
	}
}

func TestFrontendIPCreateStaticAllocation(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	_, _, err := execLb(t, "frontend-ip", "create", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "fe2", "--private-ip-address", "10.0.1.50")
	if err != nil {
		t.Fatalf("frontend-ip create failed: %v", err)
	}

	added, err := armutil.FindByName(f.saved.Properties.FrontendIPConfigurations, "frontend IP configuration", "fe2", frontendName)
	if err != nil {
		t.Fatal(err)
	}
	if *added.Properties.PrivateIPAllocationMethod != armnetwork.IPAllocationMethodStatic {
		t.Errorf("allocation = %v", *added.Properties.PrivateIPAllocationMethod)
	}
	if got := armutil.Value(added.Properties.PrivateIPAddress); got != "10.0.1.50" {
		t.Errorf("private address = %q", got)
	}
}

func TestFrontendIPSetClearRevertsToDynamic(t *testing.T) {
	f := useFake(t)
	lb := sampleLb()
	lb.Properties.FrontendIPConfigurations[0].Properties.PrivateIPAddress = to.Ptr("10.0.1.50")
	lb.Properties.FrontendIPConfigurations[0].Properties.PrivateIPAllocationMethod = to.Ptr(armnetwork.IPAllocationMethodStatic)
	f.lbs["web-lb"] = lb

	_, _, err := execLb(t, "frontend-ip", "set", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "fe1", "--private-ip-address", "")
	if err != nil {
		t.Fatalf("frontend-ip set failed: %v", err)
	}

	p := f.saved.Properties.FrontendIPConfigurations[0].Properties
	if p.PrivateIPAddress != nil {
		t.Errorf("private address not cleared: %q", *p.PrivateIPAddress)
	}
	if *p.PrivateIPAllocationMethod != armnetwork.IPAllocationMethodDynamic {
		t.Errorf("allocation = %v", *p.PrivateIPAllocationMethod)
	}
}

func TestNatRuleCreateDefaultsToOnlyFrontend(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	_, _, err := execLb(t, "inbound-nat-rule", "create", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "ssh-vm1", "--protocol", "Tcp", "--frontend-port", "4222", "--backend-port", "22")
	if err != nil {
		t.Fatalf("inbound-nat-rule create failed: %v", err)
	}

	added, err := armutil.FindByName(f.saved.Properties.InboundNatRules, "inbound NAT rule", "ssh-vm1", natRuleName)
	if err != nil {
		t.Fatal(err)
	}
	if got := armutil.Value(added.Properties.FrontendIPConfiguration.ID); got != lbID+"/frontendIPConfigurations/fe1" {
		t.Errorf("frontend ID = %q", got)
	}
	if armutil.Value(added.Properties.EnableFloatingIP) {
		t.Error("floating IP should default to false")
	}
	if armutil.Value(added.Properties.FrontendPort) != 4222 || armutil.Value(added.Properties.BackendPort) != 22 {
		t.Errorf("ports = %d/%d", armutil.Value(added.Properties.FrontendPort), armutil.Value(added.Properties.BackendPort))
	}
}

func TestNatRuleCreateAmbiguousFrontend(t *testing.T) {
	f := useFake(t)
	lb := sampleLb()
	lb.Properties.FrontendIPConfigurations = append(lb.Properties.FrontendIPConfigurations,
		&armnetwork.FrontendIPConfiguration{
			ID:   to.Ptr(lbID + "/frontendIPConfigurations/fe2"),
			Name: to.Ptr("fe2"),
		})
	f.lbs["web-lb"] = lb

	_, _, err := execLb(t, "inbound-nat-rule", "create", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "ssh-vm1", "--protocol", "Tcp", "--frontend-port", "4222", "--backend-port", "22")
	if err == nil {
		t.Fatal("expected an error with two frontends and no --frontend-ip-name")
	}
	if !strings.Contains(err.Error(), "multiple possible values found for --frontend-ip-name") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRuleCreateFallsBackToFirsts(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	_, _, err := execLb(t, "rule", "create", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "http", "--protocol", "Tcp", "--frontend-port", "80", "--backend-port", "8080",
		"--probe-name", "http-probe")
	if err != nil {
		t.Fatalf("rule create failed: %v", err)
	}

	added, err := armutil.FindByName(f.saved.Properties.LoadBalancingRules, "load balancing rule", "http", ruleName)
	if err != nil {
		t.Fatal(err)
	}
	p := added.Properties
	if got := armutil.Value(p.FrontendIPConfiguration.ID); got != lbID+"/frontendIPConfigurations/fe1" {
		t.Errorf("frontend ID = %q", got)
	}
	if got := armutil.Value(p.BackendAddressPool.ID); got != lbID+"/backendAddressPools/backend" {
		t.Errorf("backend pool ID = %q", got)
	}
	if got := armutil.Value(p.Probe.ID); got != lbID+"/probes/http-probe" {
		t.Errorf("probe ID = %q", got)
	}
	if *p.LoadDistribution != armnetwork.LoadDistributionDefault {
		t.Errorf("load distribution = %v", *p.LoadDistribution)
	}
}

func TestRuleSetDetachesProbe(t *testing.T) {
	f := useFake(t)
	lb := sampleLb()
	lb.Properties.LoadBalancingRules = []*armnetwork.LoadBalancingRule{{
		ID:   to.Ptr(lbID + "/loadBalancingRules/http"),
		Name: to.Ptr("http"),
		Properties: &armnetwork.LoadBalancingRulePropertiesFormat{
			Protocol:     to.Ptr(armnetwork.TransportProtocolTCP),
			FrontendPort: to.Ptr(int32(80)),
			BackendPort:  to.Ptr(int32(8080)),
			Probe:        &armnetwork.SubResource{ID: to.Ptr(lbID + "/probes/http-probe")},
		},
	}}
	f.lbs["web-lb"] = lb

	_, _, err := execLb(t, "rule", "set", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "http", "--probe-name", "")
	if err != nil {
		t.Fatalf("rule set failed: %v", err)
	}

	updated := f.saved.Properties.LoadBalancingRules[0].Properties
	if updated.Probe != nil {
		t.Error("probe not detached")
	}
	if armutil.Value(updated.FrontendPort) != 80 {
		t.Errorf("frontend port changed: %d", armutil.Value(updated.FrontendPort))
	}
}

func TestRuleSetRepointsBackendPool(t *testing.T) {
	f := useFake(t)
	lb := sampleLb()
	lb.Properties.BackendAddressPools = append(lb.Properties.BackendAddressPools,
		&armnetwork.BackendAddressPool{
			ID:   to.Ptr(lbID + "/backendAddressPools/backend2"),
			Name: to.Ptr("backend2"),
		})
	lb.Properties.LoadBalancingRules = []*armnetwork.LoadBalancingRule{{
		Name: to.Ptr("http"),
		Properties: &armnetwork.LoadBalancingRulePropertiesFormat{
			BackendAddressPool: &armnetwork.SubResource{ID: to.Ptr(lbID + "/backendAddressPools/backend")},
		},
	}}
	f.lbs["web-lb"] = lb

	_, _, err := execLb(t, "rule", "set", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "http", "--backend-pool-name", "backend2")
	if err != nil {
		t.Fatalf("rule set failed: %v", err)
	}

	got := armutil.Value(f.saved.Properties.LoadBalancingRules[0].Properties.BackendAddressPool.ID)
	if got != lbID+"/backendAddressPools/backend2" {
		t.Errorf("backend pool ID = %q", got)
	}
}

func TestProbeCreate(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	_, _, err := execLb(t, "probe", "create", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "tcp-probe", "--protocol", "Tcp", "--port", "443", "--interval", "10", "--threshold", "3")
	if err != nil {
		t.Fatalf("probe create failed: %v", err)
	}

	added, err := armutil.FindByName(f.saved.Properties.Probes, "probe", "tcp-probe", probeName)
	if err != nil {
		t.Fatal(err)
	}
	p := added.Properties
	if *p.Protocol != armnetwork.ProbeProtocolTCP {
		t.Errorf("protocol = %v", *p.Protocol)
	}
	if armutil.Value(p.Port) != 443 || armutil.Value(p.IntervalInSeconds) != 10 || armutil.Value(p.NumberOfProbes) != 3 {
		t.Errorf("probe fields = %+v", p)
	}
}

func TestProbeCreateReplacingWarns(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	_, stderr, err := execLb(t, "probe", "create", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "http-probe", "--protocol", "Tcp", "--port", "80")
	if err != nil {
		t.Fatalf("probe create failed: %v", err)
	}
	if !strings.Contains(stderr, "Item 'http-probe' already exists. Replacing with new values.") {
		t.Errorf("missing replacement warning:\n%s", stderr)
	}
	if got := len(f.saved.Properties.Probes); got != 1 {
		t.Errorf("probe count after replace = %d", got)
	}
}

func TestAddressPoolDeleteUnknown(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	_, _, err := execLb(t, "address-pool", "delete", "-g", "my-rg", "--lb-name", "web-lb", "-n", "nope")
	if err == nil {
		t.Fatal("expected an error for an unknown pool")
	}
	if !strings.Contains(err.Error(), `backend address pool "nope" not found`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNatPoolCreatePortRange(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	_, _, err := execLb(t, "inbound-nat-pool", "create", "-g", "my-rg", "--lb-name", "web-lb",
		"-n", "ssh-pool", "--protocol", "Tcp",
		"--frontend-port-range-start", "50000", "--frontend-port-range-end", "50119",
		"--backend-port", "22")
	if err != nil {
		t.Fatalf("inbound-nat-pool create failed: %v", err)
	}

	added, err := armutil.FindByName(f.saved.Properties.InboundNatPools, "inbound NAT pool", "ssh-pool", natPoolName)
	if err != nil {
		t.Fatal(err)
	}
	p := added.Properties
	if armutil.Value(p.FrontendPortRangeStart) != 50000 || armutil.Value(p.FrontendPortRangeEnd) != 50119 {
		t.Errorf("port range = %d-%d", armutil.Value(p.FrontendPortRangeStart), armutil.Value(p.FrontendPortRangeEnd))
	}
	if got := armutil.Value(p.FrontendIPConfiguration.ID); got != lbID+"/frontendIPConfigurations/fe1" {
		t.Errorf("frontend ID = %q", got)
	}
}

func TestListShowsCounts(t *testing.T) {
	f := useFake(t)
	f.lbs["web-lb"] = sampleLb()

	stdout, _, err := execLb(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"web-lb", "my-rg", "westus2"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}
