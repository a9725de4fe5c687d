package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/store"
)

// StartedOperation records an operation launched with --no-wait and
// tells the user how to follow it. A recording failure is reported but
// does not fail the command; the service is already working.
func StartedOperation(cmd *cobra.Command, service, action, resourceID, resourceName string) {
	rec := &store.OperationRecord{
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Service:      service,
		Command:      cmd.CommandPath(),
		Action:       action,
		Status:       store.StatusRunning,
	}

	s, err := store.Open()
	if err == nil {
		defer s.Close()
		err = s.Save(rec)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record the operation: %v\n", err)
		fmt.Fprintf(cmd.OutOrStdout(), "Started %s for %s\n", action, resourceName)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Started %s for %s (operation %d)\n", action, resourceName, rec.ID)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run 'aznet operation resume %d' to wait for completion.\n", rec.ID)
}
