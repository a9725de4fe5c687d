package operation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
)

// pollInterval is how often a resumed operation re-reads the resource.
// A package var so tests can shrink it.
var pollInterval = 10 * time.Second

func ResumeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume [operation-id]",
		Short: "Wait for recorded operations to finish",
		Long: `Wait for recorded operations to finish.

The accepted request is already running server-side, so resuming simply
polls the resource's provisioning state until it settles. Pass an
operation ID, or --all to wait for every pending operation at once.

Examples:
  aznet operation resume 3
  aznet operation resume --all`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runResume,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("all", false, "Resume every pending operation")

	return cmd
}

func runResume(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if all == (len(args) == 1) {
		return fmt.Errorf("pass exactly one operation ID or --all")
	}

	st, err := store.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	if !all {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid operation ID %q", args[0])
		}
		rec, err := st.Get(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("operation %d not found", id)
		}
		if rec.Status != store.StatusRunning {
			fmt.Fprintf(cmd.OutOrStdout(), "Operation %d already finished with status %s.\n", rec.ID, rec.Status)
			return nil
		}
		return wait(cmd.Context(), cmd, clients, st, rec)
	}

	pending, err := st.ListPending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pending operations.")
		return nil
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	for i := range pending {
		rec := pending[i]
		g.Go(func() error {
			return wait(ctx, cmd, clients, st, &rec)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "All %d operations finished.\n", len(pending))
	return nil
}

// wait polls the resource behind rec until the operation settles, keeping
// the record's status current. Transport errors leave the record running so
// a later resume can try again; a definitive terminal state updates it.
func wait(ctx context.Context, cmd *cobra.Command, clients *azure.Clients, st store.OperationStore, rec *store.OperationRecord) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Waiting for %s of %s (operation %d)...\n", rec.Action, rec.ResourceName, rec.ID)

	for {
		state, err := clients.ProvisioningState(ctx, rec.ResourceID)
		switch {
		case err != nil && rec.Action == store.ActionDelete && azure.IsNotFound(err):
			rec.Status = store.StatusSuccess
			rec.LastState = "Deleted"
			saveRecord(cmd, st, rec)
			fmt.Fprintf(cmd.OutOrStdout(), "Operation %d finished: %s deleted.\n", rec.ID, rec.ResourceName)
			return nil
		case err != nil:
			return fmt.Errorf("operation %d: failed to read %s: %w", rec.ID, rec.ResourceName, err)
		}

		if state != rec.LastState {
			rec.LastState = state
			saveRecord(cmd, st, rec)
			fmt.Fprintf(cmd.ErrOrStderr(), "Operation %d: %s is %s\n", rec.ID, rec.ResourceName, state)
		}

		if done, err := settle(cmd, st, rec, state); done {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// settle interprets a provisioning state for the record's action. It
// reports whether the operation is over and, if it failed, the error.
func settle(cmd *cobra.Command, st store.OperationStore, rec *store.OperationRecord, state string) (bool, error) {
	if !azure.IsTerminalState(state) {
		return false, nil
	}

	if rec.Action == store.ActionDelete {
		// The resource still exists; Succeeded here is the pre-delete
		// state, not the delete finishing. Only a failed or canceled
		// delete is terminal.
		if state == azure.StateSucceeded {
			return false, nil
		}
		err := fmt.Errorf("operation %d: delete of %s ended in state %s", rec.ID, rec.ResourceName, state)
		rec.Status = store.StatusError
		rec.ErrorMessage = err.Error()
		saveRecord(cmd, st, rec)
		return true, err
	}

	if state == azure.StateSucceeded {
		rec.Status = store.StatusSuccess
		saveRecord(cmd, st, rec)
		fmt.Fprintf(cmd.OutOrStdout(), "Operation %d finished: %s succeeded.\n", rec.ID, rec.ResourceName)
		return true, nil
	}

	err := fmt.Errorf("operation %d: %s of %s ended in state %s", rec.ID, rec.Action, rec.ResourceName, state)
	rec.Status = store.StatusError
	rec.ErrorMessage = err.Error()
	saveRecord(cmd, st, rec)
	return true, err
}

func saveRecord(cmd *cobra.Command, st store.OperationStore, rec *store.OperationRecord) {
	if err := st.Save(rec); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to update operation %d: %v\n", rec.ID, err)
	}
}
