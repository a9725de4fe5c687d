package publicip

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

type fakePublicIPs struct {
	ips       map[string]armnetwork.PublicIPAddress
	saved     *armnetwork.PublicIPAddress
	listedAll bool
}

func (f *fakePublicIPs) Get(_ context.Context, resourceGroup, name string) (armnetwork.PublicIPAddress, error) {
	ip, ok := f.ips[name]
	if !ok {
		return armnetwork.PublicIPAddress{}, fmt.Errorf("public IP %q not found", name)
	}
	return ip, nil
}

func (f *fakePublicIPs) CreateOrUpdateAndWait(_ context.Context, resourceGroup, name string, ip armnetwork.PublicIPAddress) (armnetwork.PublicIPAddress, error) {
	f.saved = &ip
	return ip, nil
}

func (f *fakePublicIPs) DeleteAndWait(_ context.Context, resourceGroup, name string) error {
	return nil
}

func (f *fakePublicIPs) List(_ context.Context, resourceGroup string) ([]*armnetwork.PublicIPAddress, error) {
	return f.all(), nil
}

func (f *fakePublicIPs) ListAll(_ context.Context) ([]*armnetwork.PublicIPAddress, error) {
	f.listedAll = true
	return f.all(), nil
}

func (f *fakePublicIPs) all() []*armnetwork.PublicIPAddress {
	var out []*armnetwork.PublicIPAddress
	for name := range f.ips {
		ip := f.ips[name]
		out = append(out, &ip)
	}
	return out
}

func useFake(t *testing.T) *fakePublicIPs {
	t.Helper()
	f := &fakePublicIPs{ips: map[string]armnetwork.PublicIPAddress{}}
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		return &azure.Clients{PublicIPAddresses: f}, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
	return f
}

func execPublicIP(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func samplePublicIP(name string) armnetwork.PublicIPAddress {
	return armnetwork.PublicIPAddress{
		ID:       to.Ptr("/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/publicIPAddresses/" + name),
		Name:     to.Ptr(name),
		Location: to.Ptr("westus2"),
		Properties: &armnetwork.PublicIPAddressPropertiesFormat{
			IPAddress:                to.Ptr("20.1.2.3"),
			PublicIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodDynamic),
		},
	}
}

func TestList(t *testing.T) {
	f := useFake(t)
	f.ips["web-ip"] = samplePublicIP("web-ip")

	stdout, err := execPublicIP(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !f.listedAll {
		t.Error("expected subscription-wide listing without -g")
	}
	for _, want := range []string{"web-ip", "my-rg", "20.1.2.3", "Dynamic"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestUpdateCreatesDNSSettings(t *testing.T) {
	f := useFake(t)
	f.ips["web-ip"] = samplePublicIP("web-ip")

	_, err := execPublicIP(t, "update", "-g", "my-rg", "-n", "web-ip", "--dns-name", "myapp")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	dns := f.saved.Properties.DNSSettings
	if dns == nil {
		t.Fatal("DNS settings were not created")
	}
	if got := armutil.Value(dns.DomainNameLabel); got != "myapp" {
		t.Errorf("domain name label = %q", got)
	}
	// The existing allocation method survives the read-modify-write.
	if *f.saved.Properties.PublicIPAllocationMethod != armnetwork.IPAllocationMethodDynamic {
		t.Errorf("allocation method changed: %v", *f.saved.Properties.PublicIPAllocationMethod)
	}
}

func TestUpdateMutatesExistingDNSSettings(t *testing.T) {
	f := useFake(t)
	ip := samplePublicIP("web-ip")
	ip.Properties.DNSSettings = &armnetwork.PublicIPAddressDNSSettings{
		DomainNameLabel: to.Ptr("old"),
		Fqdn:            to.Ptr("old.westus2.cloudapp.azure.com"),
	}
	f.ips["web-ip"] = ip

	_, err := execPublicIP(t, "update", "-g", "my-rg", "-n", "web-ip", "--reverse-fqdn", "app.example.com")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	dns := f.saved.Properties.DNSSettings
	if got := armutil.Value(dns.ReverseFqdn); got != "app.example.com" {
		t.Errorf("reverse fqdn = %q", got)
	}
	if got := armutil.Value(dns.DomainNameLabel); got != "old" {
		t.Errorf("domain name label changed: %q", got)
	}
}

func TestUpdateAllocationAndVersion(t *testing.T) {
	f := useFake(t)
	f.ips["web-ip"] = samplePublicIP("web-ip")

	_, err := execPublicIP(t, "update", "-g", "my-rg", "-n", "web-ip",
		"--allocation-method", "static", "--version", "ipv4", "--idle-timeout", "15")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	p := f.saved.Properties
	if *p.PublicIPAllocationMethod != armnetwork.IPAllocationMethodStatic {
		t.Errorf("allocation method = %v", *p.PublicIPAllocationMethod)
	}
	if *p.PublicIPAddressVersion != armnetwork.IPVersionIPv4 {
		t.Errorf("version = %v", *p.PublicIPAddressVersion)
	}
	if armutil.Value(p.IdleTimeoutInMinutes) != 15 {
		t.Errorf("idle timeout = %d", armutil.Value(p.IdleTimeoutInMinutes))
	}
}

func TestUpdateRejectsBadAllocationMethod(t *testing.T) {
	f := useFake(t)
	f.ips["web-ip"] = samplePublicIP("web-ip")

	_, err := execPublicIP(t, "update", "-g", "my-rg", "-n", "web-ip", "--allocation-method", "Sticky")
	if err == nil {
		t.Fatal("expected an error for an unknown allocation method")
	}
	if !strings.Contains(err.Error(), `invalid --allocation-method "Sticky"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdateClearsTags(t *testing.T) {
	f := useFake(t)
	ip := samplePublicIP("web-ip")
	ip.Tags = map[string]*string{"env": to.Ptr("prod")}
	f.ips["web-ip"] = ip

	_, err := execPublicIP(t, "update", "-g", "my-rg", "-n", "web-ip", "--tags", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(f.saved.Tags) != 0 {
		t.Errorf("tags not cleared: %v", f.saved.Tags)
	}
}
