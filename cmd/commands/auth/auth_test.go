package auth

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/services/auth"
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

func useMockStore(t *testing.T) *auth.MockStore {
	t.Helper()
	mock := auth.NewMockStore()
	prev := secretStore
	secretStore = func() auth.Store { return mock }
	t.Cleanup(func() { secretStore = prev })
	return mock
}

type verifyCall struct {
	tenant   string
	clientID string
	secret   string
	cloud    string
}

func useMockVerify(t *testing.T, err error) *verifyCall {
	t.Helper()
	call := &verifyCall{}
	prev := verifyCredential
	verifyCredential = func(_ context.Context, tenant, clientID, secret, cloudName string) error {
		call.tenant = tenant
		call.clientID = clientID
		call.secret = secret
		call.cloud = cloudName
		return err
	}
	t.Cleanup(func() { verifyCredential = prev })
	return call
}

func execAuth(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestLoginStoresSecretAndConfig(t *testing.T) {
	useTempConfig(t, &config.Config{Cloud: "government"})
	mock := useMockStore(t)
	call := useMockVerify(t, nil)

	stdout, stderr, err := execAuth(t, "login",
		"--tenant", "tenant-1", "--client-id", "app-1", "--secret", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if call.tenant != "tenant-1" || call.clientID != "app-1" || call.secret != "hunter2" {
		t.Errorf("verify called with %+v", *call)
	}
	if call.cloud != "government" {
		t.Errorf("verify cloud = %q, want the configured cloud", call.cloud)
	}

	secret, err := mock.GetSecret("app-1")
	if err != nil || secret != "hunter2" {
		t.Errorf("stored secret = %q, %v", secret, err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TenantID != "tenant-1" || cfg.ClientID != "app-1" {
		t.Errorf("config after login = %+v", cfg)
	}

	if !strings.Contains(stdout, "Signed in as app-1") {
		t.Errorf("expected success message on stdout, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Verifying credentials") {
		t.Errorf("expected progress message on stderr, got:\n%s", stderr)
	}
}

func TestLoginVerificationFailureSavesNothing(t *testing.T) {
	useTempConfig(t, nil)
	mock := useMockStore(t)
	useMockVerify(t, fmt.Errorf("sign-in failed: AADSTS7000215"))

	_, _, err := execAuth(t, "login",
		"--tenant", "tenant-1", "--client-id", "app-1", "--secret", "wrong")
	if err == nil || !strings.Contains(err.Error(), "sign-in failed") {
		t.Fatalf("expected verification error, got %v", err)
	}

	if _, err := mock.GetSecret("app-1"); err == nil {
		t.Error("secret was stored despite failed verification")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ClientID != "" {
		t.Errorf("client ID saved despite failed verification: %q", cfg.ClientID)
	}
}

func TestLoginRequiresTenant(t *testing.T) {
	useTempConfig(t, nil)
	useMockStore(t)
	useMockVerify(t, nil)

	_, _, err := execAuth(t, "login", "--client-id", "app-1", "--secret", "s")
	if err == nil || !strings.Contains(err.Error(), "no tenant specified") {
		t.Fatalf("expected tenant error, got %v", err)
	}
}

func TestLoginFallsBackToConfiguredTenant(t *testing.T) {
	useTempConfig(t, &config.Config{TenantID: "tenant-cfg", ClientID: "app-cfg"})
	useMockStore(t)
	call := useMockVerify(t, nil)

	_, _, err := execAuth(t, "login", "--secret", "s")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if call.tenant != "tenant-cfg" || call.clientID != "app-cfg" {
		t.Errorf("verify called with %+v, want config fallback values", *call)
	}
}

func TestStatusDefaultChain(t *testing.T) {
	useTempConfig(t, nil)
	useMockStore(t)

	stdout, _, err := execAuth(t, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(stdout, "default chain") {
		t.Errorf("expected default chain report, got:\n%s", stdout)
	}
}

func TestStatusServicePrincipal(t *testing.T) {
	useTempConfig(t, &config.Config{TenantID: "tenant-1", ClientID: "app-1"})
	mock := useMockStore(t)
	if err := mock.SetSecret("app-1", "hunter2"); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execAuth(t, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	for _, want := range []string{"service principal", "tenant-1", "app-1", "stored in keychain"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("status output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "hunter2") {
		t.Errorf("status output leaked the secret:\n%s", stdout)
	}
}

func TestStatusMissingSecret(t *testing.T) {
	useTempConfig(t, &config.Config{TenantID: "tenant-1", ClientID: "app-1"})
	useMockStore(t)

	stdout, _, err := execAuth(t, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(stdout, "missing") {
		t.Errorf("expected missing-secret report, got:\n%s", stdout)
	}
}

func TestLogoutClearsCredential(t *testing.T) {
	useTempConfig(t, &config.Config{TenantID: "tenant-1", ClientID: "app-1", Subscription: "sub-1"})
	mock := useMockStore(t)
	if err := mock.SetSecret("app-1", "hunter2"); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execAuth(t, "logout")
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(stdout, "Signed out app-1") {
		t.Errorf("expected sign-out message, got:\n%s", stdout)
	}

	if _, err := mock.GetSecret("app-1"); err == nil {
		t.Error("secret still present after logout")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TenantID != "" || cfg.ClientID != "" {
		t.Errorf("config still holds credential after logout: %+v", cfg)
	}
	if cfg.Subscription != "sub-1" {
		t.Errorf("logout clobbered unrelated config: %+v", cfg)
	}
}

func TestLogoutWithoutServicePrincipal(t *testing.T) {
	useTempConfig(t, nil)
	useMockStore(t)

	stdout, _, err := execAuth(t, "logout")
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(stdout, "No service principal is configured") {
		t.Errorf("expected no-op message, got:\n%s", stdout)
	}
}
