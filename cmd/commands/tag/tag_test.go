package tag

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
)

type fakeTags struct {
	tags         []*armresources.TagDetails
	created      string
	deleted      string
	addedValue   [2]string
	removedValue [2]string
	err          error
}

func (f *fakeTags) List(_ context.Context) ([]*armresources.TagDetails, error) {
	return f.tags, f.err
}

func (f *fakeTags) CreateOrUpdate(_ context.Context, tagName string) (armresources.TagDetails, error) {
	f.created = tagName
	if f.err != nil {
		return armresources.TagDetails{}, f.err
	}
	return armresources.TagDetails{TagName: to.Ptr(tagName)}, nil
}

func (f *fakeTags) Delete(_ context.Context, tagName string) error {
	f.deleted = tagName
	return f.err
}

func (f *fakeTags) CreateOrUpdateValue(_ context.Context, tagName, tagValue string) (armresources.TagValue, error) {
	f.addedValue = [2]string{tagName, tagValue}
	if f.err != nil {
		return armresources.TagValue{}, f.err
	}
	return armresources.TagValue{TagValue: to.Ptr(tagValue)}, nil
}

func (f *fakeTags) DeleteValue(_ context.Context, tagName, tagValue string) error {
	f.removedValue = [2]string{tagName, tagValue}
	return f.err
}

func useFake(t *testing.T, fake *fakeTags) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		return &azure.Clients{Tags: fake}, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
}

func execTag(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func TestListTable(t *testing.T) {
	fake := &fakeTags{tags: []*armresources.TagDetails{
		{
			TagName: to.Ptr("dept"),
			Count:   &armresources.TagCount{Value: to.Ptr(int32(12))},
			Values: []*armresources.TagValue{
				{TagValue: to.Ptr("ops")},
				{TagValue: to.Ptr("dev")},
			},
		},
	}}
	useFake(t, fake)

	stdout, err := execTag(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"dept", "12", "ops, dev"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCreate(t *testing.T) {
	fake := &fakeTags{}
	useFake(t, fake)

	stdout, err := execTag(t, "create", "-n", "dept")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if fake.created != "dept" {
		t.Errorf("created = %q", fake.created)
	}
	if !strings.Contains(stdout, "Created tag dept.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestDeleteError(t *testing.T) {
	fake := &fakeTags{err: fmt.Errorf("tag is in use")}
	useFake(t, fake)

	_, err := execTag(t, "delete", "-n", "dept")
	if err == nil || !strings.Contains(err.Error(), "tag is in use") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestAddValue(t *testing.T) {
	fake := &fakeTags{}
	useFake(t, fake)

	stdout, err := execTag(t, "add-value", "-n", "dept", "--value", "ops")
	if err != nil {
		t.Fatalf("add-value failed: %v", err)
	}
	if fake.addedValue != [2]string{"dept", "ops"} {
		t.Errorf("added = %v", fake.addedValue)
	}
	if !strings.Contains(stdout, "Added value ops to tag dept.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestRemoveValue(t *testing.T) {
	fake := &fakeTags{}
	useFake(t, fake)

	stdout, err := execTag(t, "remove-value", "-n", "dept", "--value", "ops")
	if err != nil {
		t.Fatalf("remove-value failed: %v", err)
	}
	if fake.removedValue != [2]string{"dept", "ops"} {
		t.Errorf("removed = %v", fake.removedValue)
	}
	if !strings.Contains(stdout, "Removed value ops from tag dept.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestMissingRequiredFlag(t *testing.T) {
	useFake(t, &fakeTags{})

	_, err := execTag(t, "add-value", "-n", "dept")
	if err == nil || !strings.Contains(err.Error(), "required flag") {
		t.Fatalf("expected required flag error, got %v", err)
	}
}
