package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  aznet config set resource-group my-rg\n" +
			"  aznet config set output json",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

// validators maps key names to optional pre-save validation functions.
// Keys not present in this map accept any value.
var validators = map[string]func(value string) error{
	"cloud":  validateCloud,
	"output": validateOutput,
}

// normalized lists keys whose values are case-insensitive names rather
// than user-chosen resource names.
var normalized = map[string]struct{}{
	"cloud":  {},
	"output": {},
}

func runSet(cmd *cobra.Command, args []string) error {
	key := util.NormalizeKey(args[0])
	value := strings.TrimSpace(args[1])

	spec := config.Lookup(key)
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	if _, ok := normalized[spec.Name]; ok {
		value = util.NormalizeKey(value)
	}

	if validate, ok := validators[spec.Name]; ok {
		if err := validate(value); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
	return nil
}

func validateCloud(value string) error {
	switch value {
	case "", "public", "azurecloud", "government", "usgovernment", "azureusgovernment", "china", "azurechinacloud":
		return nil
	default:
		return fmt.Errorf("unknown cloud %q (expected public, government, or china)", value)
	}
}

func validateOutput(value string) error {
	switch value {
	case "", "table", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", value)
	}
}
