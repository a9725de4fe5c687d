package config

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/aznet/internal/config"
)

func TestGet_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "resource-group")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_SetValue(t *testing.T) {
	setupTestConfig(t)

	cfg := &config.Config{Subscription: "0b1f6471-1bf0-4dda-aec3-cb9272f09590"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "subscription")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "0b1f6471-1bf0-4dda-aec3-cb9272f09590") {
		t.Errorf("expected subscription ID, got: %s", stdout)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestGet_ListsAllKeys(t *testing.T) {
	setupTestConfig(t)

	cfg := &config.Config{ResourceGroup: "rg-1", Location: "westus2"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, name := range config.KeyNames() {
		if !strings.Contains(stdout, name+":") {
			t.Errorf("expected %q in listing, got: %s", name, stdout)
		}
	}
	if !strings.Contains(stdout, "rg-1") || !strings.Contains(stdout, "westus2") {
		t.Errorf("expected set values in listing, got: %s", stdout)
	}
	if !strings.Contains(stdout, "(not set)") {
		t.Errorf("expected unset placeholder in listing, got: %s", stdout)
	}
}
