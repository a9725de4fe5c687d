package nsg

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

type fakeSecurityGroups struct {
	groups    map[string]armnetwork.SecurityGroup
	listedRG  string
	listedAll bool
}

func (f *fakeSecurityGroups) Get(_ context.Context, resourceGroup, name string) (armnetwork.SecurityGroup, error) {
	g, ok := f.groups[name]
	if !ok {
		return armnetwork.SecurityGroup{}, fmt.Errorf("security group %q not found", name)
	}
	return g, nil
}

func (f *fakeSecurityGroups) CreateOrUpdateAndWait(_ context.Context, resourceGroup, name string, nsg armnetwork.SecurityGroup) (armnetwork.SecurityGroup, error) {
	return nsg, nil
}

func (f *fakeSecurityGroups) DeleteAndWait(_ context.Context, resourceGroup, name string) error {
	return nil
}

func (f *fakeSecurityGroups) List(_ context.Context, resourceGroup string) ([]*armnetwork.SecurityGroup, error) {
	f.listedRG = resourceGroup
	return f.all(), nil
}

func (f *fakeSecurityGroups) ListAll(_ context.Context) ([]*armnetwork.SecurityGroup, error) {
	f.listedAll = true
	return f.all(), nil
}

func (f *fakeSecurityGroups) all() []*armnetwork.SecurityGroup {
	var out []*armnetwork.SecurityGroup
	for name := range f.groups {
		g := f.groups[name]
		out = append(out, &g)
	}
	return out
}

type fakeSecurityRules struct {
	rules   map[string]armnetwork.SecurityRule
	saved   *armnetwork.SecurityRule
	savedIn string
	deleted string
}

func (f *fakeSecurityRules) Get(_ context.Context, resourceGroup, nsgName, name string) (armnetwork.SecurityRule, error) {
	r, ok := f.rules[name]
	if !ok {
		return armnetwork.SecurityRule{}, fmt.Errorf("rule %q not found", name)
	}
	return r, nil
}

func (f *fakeSecurityRules) CreateOrUpdateAndWait(_ context.Context, resourceGroup, nsgName, name string, rule armnetwork.SecurityRule) (armnetwork.SecurityRule, error) {
	f.saved = &rule
	f.savedIn = nsgName
	return rule, nil
}

func (f *fakeSecurityRules) DeleteAndWait(_ context.Context, resourceGroup, nsgName, name string) error {
	f.deleted = name
	return nil
}

func (f *fakeSecurityRules) List(_ context.Context, resourceGroup, nsgName string) ([]*armnetwork.SecurityRule, error) {
	var out []*armnetwork.SecurityRule
	for name := range f.rules {
		r := f.rules[name]
		out = append(out, &r)
	}
	return out, nil
}

type fakes struct {
	groups *fakeSecurityGroups
	rules  *fakeSecurityRules
}

func useFakes(t *testing.T) *fakes {
	t.Helper()
	f := &fakes{
		groups: &fakeSecurityGroups{groups: map[string]armnetwork.SecurityGroup{}},
		rules:  &fakeSecurityRules{rules: map[string]armnetwork.SecurityRule{}},
	}
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		clients := &azure.Clients{
			SecurityGroups: f.groups,
			SecurityRules:  f.rules,
		}
		return clients, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
	return f
}

func execNsg(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func TestListShowsRuleCount(t *testing.T) {
	f := useFakes(t)
	f.groups.groups["web-nsg"] = armnetwork.SecurityGroup{
		ID:       to.Ptr("/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/networkSecurityGroups/web-nsg"),
		Name:     to.Ptr("web-nsg"),
		Location: to.Ptr("westus2"),
		Properties: &armnetwork.SecurityGroupPropertiesFormat{
			SecurityRules: []*armnetwork.SecurityRule{
				{Name: to.Ptr("allow-http")},
				{Name: to.Ptr("allow-https")},
			},
		},
	}

	stdout, err := execNsg(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !f.groups.listedAll {
		t.Error("expected subscription-wide listing without -g")
	}
	for _, want := range []string{"web-nsg", "my-rg", "westus2", "2"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}

	if _, err := execNsg(t, "list", "-g", "my-rg"); err != nil {
		t.Fatal(err)
	}
	if f.groups.listedRG != "my-rg" {
		t.Errorf("listed resource group = %q", f.groups.listedRG)
	}
}

func TestRuleCreateDefaults(t *testing.T) {
	f := useFakes(t)

	stdout, err := execNsg(t, "rule", "create", "-g", "my-rg", "--nsg-name", "web-nsg",
		"-n", "allow-web", "--priority", "100")
	if err != nil {
		t.Fatalf("rule create failed: %v", err)
	}

	if f.rules.savedIn != "web-nsg" {
		t.Errorf("rule saved to %q", f.rules.savedIn)
	}
	p := f.rules.saved.Properties
	if got := armutil.Value(p.Priority); got != 100 {
		t.Errorf("priority = %d", got)
	}
	if *p.Protocol != armnetwork.SecurityRuleProtocolAsterisk {
		t.Errorf("protocol = %q", *p.Protocol)
	}
	if *p.Direction != armnetwork.SecurityRuleDirectionInbound {
		t.Errorf("direction = %q", *p.Direction)
	}
	if *p.Access != armnetwork.SecurityRuleAccessAllow {
		t.Errorf("access = %q", *p.Access)
	}
	if armutil.Value(p.SourceAddressPrefix) != "*" || armutil.Value(p.SourcePortRange) != "*" {
		t.Errorf("source = %q:%q", armutil.Value(p.SourceAddressPrefix), armutil.Value(p.SourcePortRange))
	}
	if armutil.Value(p.DestinationAddressPrefix) != "*" || armutil.Value(p.DestinationPortRange) != "80" {
		t.Errorf("destination = %q:%q", armutil.Value(p.DestinationAddressPrefix), armutil.Value(p.DestinationPortRange))
	}
	if p.Description != nil {
		t.Errorf("description should be unset, got %q", *p.Description)
	}
	if !strings.Contains(stdout, "Created rule allow-web in web-nsg.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestRuleCreateNormalizesEnums(t *testing.T) {
	f := useFakes(t)

	_, err := execNsg(t, "rule", "create", "-g", "my-rg", "--nsg-name", "web-nsg",
		"-n", "deny-ssh", "--priority", "200",
		"--protocol", "tcp", "--direction", "outbound", "--access", "deny",
		"--destination-port-range", "22")
	if err != nil {
		t.Fatalf("rule create failed: %v", err)
	}

	p := f.rules.saved.Properties
	if *p.Protocol != armnetwork.SecurityRuleProtocolTCP {
		t.Errorf("protocol = %q", *p.Protocol)
	}
	if *p.Direction != armnetwork.SecurityRuleDirectionOutbound {
		t.Errorf("direction = %q", *p.Direction)
	}
	if *p.Access != armnetwork.SecurityRuleAccessDeny {
		t.Errorf("access = %q", *p.Access)
	}
}

func TestRuleCreateRejectsUnknownProtocol(t *testing.T) {
	useFakes(t)

	_, err := execNsg(t, "rule", "create", "-g", "my-rg", "--nsg-name", "web-nsg",
		"-n", "bad", "--priority", "100", "--protocol", "gopher")
	if err == nil {
		t.Fatal("expected an error for an unknown protocol")
	}
	if !strings.Contains(err.Error(), `invalid --protocol "gopher"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRuleCreateRequiresPriority(t *testing.T) {
	useFakes(t)

	_, err := execNsg(t, "rule", "create", "-g", "my-rg", "--nsg-name", "web-nsg", "-n", "no-prio")
	if err == nil {
		t.Fatal("expected an error without --priority")
	}
	if !strings.Contains(err.Error(), "priority") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRuleUpdateKeepsUnchangedFields(t *testing.T) {
	f := useFakes(t)
	f.rules.rules["allow-web"] = armnetwork.SecurityRule{
		Name: to.Ptr("allow-web"),
		Properties: &armnetwork.SecurityRulePropertiesFormat{
			Priority:             to.Ptr(int32(100)),
			Protocol:             to.Ptr(armnetwork.SecurityRuleProtocolTCP),
			Direction:            to.Ptr(armnetwork.SecurityRuleDirectionInbound),
			Access:               to.Ptr(armnetwork.SecurityRuleAccessAllow),
			DestinationPortRange: to.Ptr("80"),
		},
	}

	_, err := execNsg(t, "rule", "update", "-g", "my-rg", "--nsg-name", "web-nsg",
		"-n", "allow-web", "--access", "Deny")
	if err != nil {
		t.Fatalf("rule update failed: %v", err)
	}

	p := f.rules.saved.Properties
	if *p.Access != armnetwork.SecurityRuleAccessDeny {
		t.Errorf("access = %q", *p.Access)
	}
	if armutil.Value(p.Priority) != 100 {
		t.Errorf("priority changed: %d", armutil.Value(p.Priority))
	}
	if *p.Protocol != armnetwork.SecurityRuleProtocolTCP {
		t.Errorf("protocol changed: %q", *p.Protocol)
	}
	if armutil.Value(p.DestinationPortRange) != "80" {
		t.Errorf("destination port changed: %q", armutil.Value(p.DestinationPortRange))
	}
}

func TestRuleListTable(t *testing.T) {
	f := useFakes(t)
	f.rules.rules["allow-https"] = armnetwork.SecurityRule{
		Name: to.Ptr("allow-https"),
		Properties: &armnetwork.SecurityRulePropertiesFormat{
			Priority:                 to.Ptr(int32(110)),
			Protocol:                 to.Ptr(armnetwork.SecurityRuleProtocolTCP),
			Direction:                to.Ptr(armnetwork.SecurityRuleDirectionInbound),
			Access:                   to.Ptr(armnetwork.SecurityRuleAccessAllow),
			SourceAddressPrefix:      to.Ptr("*"),
			SourcePortRange:          to.Ptr("*"),
			DestinationAddressPrefix: to.Ptr("10.0.1.0/24"),
			DestinationPortRange:     to.Ptr("443"),
		},
	}

	stdout, err := execNsg(t, "rule", "list", "-g", "my-rg", "--nsg-name", "web-nsg")
	if err != nil {
		t.Fatalf("rule list failed: %v", err)
	}
	for _, want := range []string{"allow-https", "110", "Inbound", "Allow", "Tcp", "10.0.1.0/24:443"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRuleDelete(t *testing.T) {
	f := useFakes(t)

	stdout, err := execNsg(t, "rule", "delete", "-g", "my-rg", "--nsg-name", "web-nsg", "-n", "allow-web")
	if err != nil {
		t.Fatalf("rule delete failed: %v", err)
	}
	if f.rules.deleted != "allow-web" {
		t.Errorf("deleted = %q", f.rules.deleted)
	}
	if !strings.Contains(stdout, "Deleted rule allow-web from web-nsg.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}
