package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/config"
)

// ResourceGroup resolves the target resource group: the --resource-group
// flag wins, then the configured default.
func ResourceGroup(cmd *cobra.Command) (string, error) {
	if g := FlagString(cmd, "resource-group"); g != "" {
		return g, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.ResourceGroup != "" {
		return cfg.ResourceGroup, nil
	}
	return "", errors.New("no resource group specified: use --resource-group or 'aznet config set resource-group <name>'")
}

// Location resolves the target location: the --location flag wins, then
// the configured default.
func Location(cmd *cobra.Command) (string, error) {
	if l := FlagString(cmd, "location"); l != "" {
		return l, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Location != "" {
		return cfg.Location, nil
	}
	return "", errors.New("no location specified: use --location or 'aznet config set location <name>'")
}

// ParseTags converts key=value pairs into ARM tags. Empty entries are
// dropped, so a lone "" clears the tags on resources using replace
// semantics.
func ParseTags(pairs []string) map[string]*string {
	tags := map[string]*string{}
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		tags[k] = to.Ptr(v)
	}
	return tags
}
