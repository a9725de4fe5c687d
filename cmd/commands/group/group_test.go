package group

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/store"
)

type fakeGroups struct {
	groups       map[string]armresources.ResourceGroup
	created      *armresources.ResourceGroup
	createdName  string
	deleted      string
	startDeleted string
	listFilter   string
	getErr       error
	deleteErr    error
}

func (f *fakeGroups) Get(_ context.Context, name string) (armresources.ResourceGroup, error) {
	if f.getErr != nil {
		return armresources.ResourceGroup{}, f.getErr
	}
	g, ok := f.groups[name]
	if !ok {
		return armresources.ResourceGroup{}, fmt.Errorf("group %q not found", name)
	}
	return g, nil
}

func (f *fakeGroups) CreateOrUpdate(_ context.Context, name string, group armresources.ResourceGroup) (armresources.ResourceGroup, error) {
	f.createdName = name
	f.created = &group
	group.ID = to.Ptr("/subscriptions/sub-1/resourceGroups/" + name)
	group.Name = to.Ptr(name)
	return group, nil
}

func (f *fakeGroups) CheckExistence(_ context.Context, name string) (bool, error) {
	_, ok := f.groups[name]
	return ok, nil
}

func (f *fakeGroups) DeleteAndWait(_ context.Context, name string) error {
	f.deleted = name
	return f.deleteErr
}

func (f *fakeGroups) StartDelete(_ context.Context, name string) error {
	f.startDeleted = name
	return f.deleteErr
}

func (f *fakeGroups) List(_ context.Context, filter string) ([]*armresources.ResourceGroup, error) {
	f.listFilter = filter
	var out []*armresources.ResourceGroup
	for name := range f.groups {
		g := f.groups[name]
		out = append(out, &g)
	}
	return out, nil
}

func useFake(t *testing.T, fake *fakeGroups) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		return &azure.Clients{ResourceGroups: fake}, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
}

func execGroup(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCreate(t *testing.T) {
	fake := &fakeGroups{}
	useFake(t, fake)

	stdout, _, err := execGroup(t, "create", "-n", "my-rg", "-l", "westus2", "--tags", "dept=ops")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if fake.createdName != "my-rg" {
		t.Errorf("created name = %q", fake.createdName)
	}
	if got := *fake.created.Location; got != "westus2" {
		t.Errorf("location = %q", got)
	}
	if got := fake.created.Tags["dept"]; got == nil || *got != "ops" {
		t.Errorf("tags = %v", fake.created.Tags)
	}
	if !strings.Contains(stdout, "Created resource group my-rg") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestCreateLocationFromConfig(t *testing.T) {
	fake := &fakeGroups{}
	useFake(t, fake)
	if err := (&config.Config{Location: "eastus"}).Save(); err != nil {
		t.Fatal(err)
	}

	_, _, err := execGroup(t, "create", "-n", "my-rg")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := *fake.created.Location; got != "eastus" {
		t.Errorf("location = %q, want config fallback", got)
	}
}

func TestCreateMissingLocation(t *testing.T) {
	useFake(t, &fakeGroups{})

	_, _, err := execGroup(t, "create", "-n", "my-rg")
	if err == nil || !strings.Contains(err.Error(), "no location specified") {
		t.Fatalf("expected location error, got %v", err)
	}
}

func TestListTable(t *testing.T) {
	fake := &fakeGroups{groups: map[string]armresources.ResourceGroup{
		"rg-a": {
			Name:       to.Ptr("rg-a"),
			Location:   to.Ptr("westus2"),
			Properties: &armresources.ResourceGroupProperties{ProvisioningState: to.Ptr("Succeeded")},
		},
	}}
	useFake(t, fake)

	stdout, _, err := execGroup(t, "list", "--filter", "tagName eq 'dept'")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if fake.listFilter != "tagName eq 'dept'" {
		t.Errorf("filter = %q", fake.listFilter)
	}
	for _, want := range []string{"NAME", "rg-a", "westus2", "Succeeded"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestShowNotFound(t *testing.T) {
	useFake(t, &fakeGroups{})

	_, _, err := execGroup(t, "show", "-n", "missing")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	fake := &fakeGroups{groups: map[string]armresources.ResourceGroup{"rg-a": {}}}
	useFake(t, fake)

	stdout, _, err := execGroup(t, "exists", "-n", "rg-a")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "true" {
		t.Errorf("exists output = %q", stdout)
	}

	stdout, _, err = execGroup(t, "exists", "-n", "rg-b")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "false" {
		t.Errorf("exists output = %q", stdout)
	}
}

func TestDeleteWaits(t *testing.T) {
	fake := &fakeGroups{}
	useFake(t, fake)

	stdout, _, err := execGroup(t, "delete", "-n", "my-rg", "--yes")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if fake.deleted != "my-rg" {
		t.Errorf("DeleteAndWait called with %q", fake.deleted)
	}
	if fake.startDeleted != "" {
		t.Errorf("StartDelete should not be called, got %q", fake.startDeleted)
	}
	if !strings.Contains(stdout, "Deleted resource group my-rg.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestDeleteNoWaitRecordsOperation(t *testing.T) {
	fake := &fakeGroups{}
	useFake(t, fake)
	store.SetPath(filepath.Join(t.TempDir(), "operations.db"))
	t.Cleanup(store.ResetPath)

	stdout, stderr, err := execGroup(t, "delete", "-n", "my-rg", "--yes", "--no-wait")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if fake.startDeleted != "my-rg" {
		t.Errorf("StartDelete called with %q", fake.startDeleted)
	}
	if fake.deleted != "" {
		t.Errorf("DeleteAndWait should not be called, got %q", fake.deleted)
	}
	if !strings.Contains(stdout, "Started delete for my-rg") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
	if !strings.Contains(stderr, "aznet operation resume") {
		t.Errorf("expected resume hint on stderr:\n%s", stderr)
	}

	st, err := store.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	pending, err := st.ListPending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending operations = %d, want 1", len(pending))
	}
	rec := pending[0]
	if rec.ResourceID != "/subscriptions/sub-1/resourceGroups/my-rg" {
		t.Errorf("recorded resource ID = %q", rec.ResourceID)
	}
	if rec.Action != store.ActionDelete || rec.Service != "resources" {
		t.Errorf("recorded action/service = %q/%q", rec.Action, rec.Service)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	fake := &fakeGroups{}
	useFake(t, fake)

	// Tests run without a terminal, so the prompt cannot be shown.
	_, _, err := execGroup(t, "delete", "-n", "my-rg")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
	if fake.deleted != "" || fake.startDeleted != "" {
		t.Error("delete proceeded without confirmation")
	}
}
