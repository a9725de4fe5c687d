package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/store"
)

func useTempConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	if cfg != nil {
		if err := cfg.Save(); err != nil {
			t.Fatalf("save config: %v", err)
		}
	}
}

func TestClientsFactorySeam(t *testing.T) {
	want := &azure.Clients{}
	SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		return want, &azure.Session{SubscriptionID: "sub"}, nil
	})
	defer ResetClientsFactory()

	got, session, err := Clients(&cobra.Command{})
	if err != nil {
		t.Fatalf("Clients returned error: %v", err)
	}
	if got != want {
		t.Error("Clients did not use the registered factory")
	}
	if session.SubscriptionID != "sub" {
		t.Errorf("session subscription = %q", session.SubscriptionID)
	}
}

func TestOutputFormatFlagWins(t *testing.T) {
	useTempConfig(t, &config.Config{Output: "json"})

	cmd := &cobra.Command{}
	cmd.Flags().StringP("output", "o", "table", "")
	if err := cmd.Flags().Set("output", "table"); err != nil {
		t.Fatal(err)
	}

	if got := OutputFormat(cmd); got != "table" {
		t.Errorf("OutputFormat = %q, want the explicit flag value", got)
	}
}

func TestOutputFormatConfigFallback(t *testing.T) {
	useTempConfig(t, &config.Config{Output: "json"})

	cmd := &cobra.Command{}
	cmd.Flags().StringP("output", "o", "table", "")

	if got := OutputFormat(cmd); got != "json" {
		t.Errorf("OutputFormat = %q, want the configured default", got)
	}
}

func TestOutputFormatDefault(t *testing.T) {
	useTempConfig(t, nil)

	if got := OutputFormat(&cobra.Command{}); got != "table" {
		t.Errorf("OutputFormat = %q, want table", got)
	}
}

func TestResourceGroupFlagWins(t *testing.T) {
	useTempConfig(t, &config.Config{ResourceGroup: "cfg-rg"})

	cmd := &cobra.Command{}
	cmd.Flags().StringP("resource-group", "g", "", "")
	if err := cmd.Flags().Set("resource-group", "flag-rg"); err != nil {
		t.Fatal(err)
	}

	got, err := ResourceGroup(cmd)
	if err != nil {
		t.Fatalf("ResourceGroup returned error: %v", err)
	}
	if got != "flag-rg" {
		t.Errorf("ResourceGroup = %q", got)
	}
}

func TestResourceGroupConfigFallback(t *testing.T) {
	useTempConfig(t, &config.Config{ResourceGroup: "cfg-rg"})

	cmd := &cobra.Command{}
	cmd.Flags().StringP("resource-group", "g", "", "")

	got, err := ResourceGroup(cmd)
	if err != nil {
		t.Fatalf("ResourceGroup returned error: %v", err)
	}
	if got != "cfg-rg" {
		t.Errorf("ResourceGroup = %q", got)
	}
}

func TestResourceGroupMissing(t *testing.T) {
	useTempConfig(t, nil)

	_, err := ResourceGroup(&cobra.Command{})
	if err == nil {
		t.Fatal("expected error with no resource group anywhere")
	}
	if !strings.Contains(err.Error(), "no resource group specified") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags([]string{"env=prod", "team=net", "flag="})

	want := map[string]string{"env": "prod", "team": "net", "flag": ""}
	flat := map[string]string{}
	for k, v := range got {
		flat[k] = *v
	}
	if diff := cmp.Diff(want, flat); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTagsClear(t *testing.T) {
	if got := ParseTags([]string{""}); len(got) != 0 {
		t.Errorf("ParseTags([\"\"]) = %v, want empty map", got)
	}
}

func TestConfirmYesFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("yes", false, "")
	if err := cmd.Flags().Set("yes", "true"); err != nil {
		t.Fatal(err)
	}

	ok, err := Confirm(cmd, "Delete?")
	if err != nil || !ok {
		t.Errorf("Confirm with --yes = (%t, %v), want (true, nil)", ok, err)
	}
}

func TestConfirmRequiresTerminal(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("yes", false, "")

	ok, err := Confirm(cmd, "Delete?")
	if ok {
		t.Error("Confirm = true without --yes on a non-terminal")
	}
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStartedOperationRecords(t *testing.T) {
	store.SetPath(filepath.Join(t.TempDir(), "operations.db"))
	defer store.ResetPath()

	cmd := &cobra.Command{Use: "update"}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	StartedOperation(cmd, "network", store.ActionCreateOrUpdate,
		"/subscriptions/s/resourceGroups/rg/providers/Microsoft.Network/virtualNetworkGateways/gw1", "gw1")

	if !strings.Contains(out.String(), "Started create-or-update for gw1 (operation ") {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "operation resume") {
		t.Errorf("stderr = %q", errOut.String())
	}

	s, err := store.Open()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	pending, err := s.ListPending()
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].ResourceName != "gw1" || pending[0].Service != "network" {
		t.Errorf("record = %+v", pending[0])
	}
}
