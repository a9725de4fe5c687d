package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/aznet/internal/config"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_ResourceGroup(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "resource-group", "MyGroup")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"MyGroup"`) {
		t.Errorf("expected confirmation with group name, got: %s", stdout)
	}

	// Verify it was persisted with case preserved.
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.ResourceGroup != "MyGroup" {
		t.Errorf("expected ResourceGroup %q, got %q", "MyGroup", cfg.ResourceGroup)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestSet_CloudNormalizedAndValidated(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "cloud", "Government")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"government"`) {
		t.Errorf("expected normalized cloud name, got: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Cloud != "government" {
		t.Errorf("expected Cloud %q, got %q", "government", cfg.Cloud)
	}
}

func TestSet_CloudUnknown(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "cloud", "mars")

	if !strings.Contains(stderr, "unknown cloud") {
		t.Errorf("expected 'unknown cloud' error, got: %s", stderr)
	}
}

func TestSet_OutputValidated(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "output", "yaml")

	if !strings.Contains(stderr, "unknown output format") {
		t.Errorf("expected 'unknown output format' error, got: %s", stderr)
	}

	stdout, stderr := execConfig(t, "set", "output", "json")
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"json"`) {
		t.Errorf("expected confirmation, got: %s", stdout)
	}
}

func TestSet_KeyNameCaseInsensitive(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "Resource-Group", "rg-1")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "resource-group") {
		t.Errorf("expected canonical key name in confirmation, got: %s", stdout)
	}
}
