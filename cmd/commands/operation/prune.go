package operation

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
)

func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete finished operation records older than a duration",
		Long: `Delete finished operation records older than a duration.

Pending operations are never pruned.

Examples:
  aznet operation prune --age 7d
  aznet operation prune --age 48h`,
		RunE:         runPrune,
		SilenceUsage: true,
	}

	cmd.Flags().String("age", "", "Remove finished records older than this duration (e.g. 7d, 48h)")

	return cmd
}

func runPrune(cmd *cobra.Command, args []string) error {
	ageRaw, _ := cmd.Flags().GetString("age")
	ageRaw = strings.TrimSpace(ageRaw)
	if ageRaw == "" {
		return fmt.Errorf("--age is required")
	}

	age, err := cli.ParseAge(ageRaw)
	if err != nil {
		return err
	}

	st, err := store.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.DeleteOlderThan(age)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d operation record(s).\n", removed)
	return nil
}
