package config

import (
	"fmt"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "resource-group").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "subscription",
		Description: "Subscription ID used when --subscription is not specified",
		Get:         func(cfg *Config) string { return cfg.Subscription },
		Set:         func(cfg *Config, v string) { cfg.Subscription = v },
	},
	{
		Name:        "resource-group",
		Description: "Resource group used when --resource-group is not specified",
		Get:         func(cfg *Config) string { return cfg.ResourceGroup },
		Set:         func(cfg *Config, v string) { cfg.ResourceGroup = v },
	},
	{
		Name:        "location",
		Description: "Default location for resources created without --location",
		Get:         func(cfg *Config) string { return cfg.Location },
		Set:         func(cfg *Config, v string) { cfg.Location = v },
	},
	{
		Name:        "cloud",
		Description: "Cloud environment: public, government, or china",
		Get:         func(cfg *Config) string { return cfg.Cloud },
		Set:         func(cfg *Config, v string) { cfg.Cloud = v },
	},
	{
		Name:        "tenant",
		Description: "Tenant ID for service principal sign-in",
		Get:         func(cfg *Config) string { return cfg.TenantID },
		Set:         func(cfg *Config, v string) { cfg.TenantID = v },
	},
	{
		Name:        "client-id",
		Description: "Client ID for service principal sign-in",
		Get:         func(cfg *Config) string { return cfg.ClientID },
		Set:         func(cfg *Config, v string) { cfg.ClientID = v },
	},
	{
		Name:        "output",
		Description: "Default output format: table or json",
		Get:         func(cfg *Config) string { return cfg.Output },
		Set:         func(cfg *Config, v string) { cfg.Output = v },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
