package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a resource group",
		Long: `Delete a resource group and everything in it.

Deletion is a long-running operation. Pass --no-wait to return as soon
as the request is accepted; 'aznet operation resume' can pick up the
wait later.

Examples:
  aznet group delete -n my-rg
  aznet group delete -n my-rg --yes --no-wait`,
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("name", "n", "", "Name of the resource group")
	cmd.Flags().BoolP("yes", "y", false, "Do not prompt for confirmation")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	ok, err := cli.Confirm(cmd, fmt.Sprintf("Delete resource group %q and all its resources?", name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
		return nil
	}

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	groupID := armutil.ResourceGroupID(session.SubscriptionID, name)
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "resources",
		ResourceType: "resourceGroup",
		ResourceID:   groupID,
		ResourceName: name,
	}))

	if noWait, _ := cmd.Flags().GetBool("no-wait"); noWait {
		if err := clients.ResourceGroups.StartDelete(cmd.Context(), name); err != nil {
			return fmt.Errorf("failed to delete resource group %q: %w", name, err)
		}
		cli.StartedOperation(cmd, "resources", store.ActionDelete, groupID, name)
		return nil
	}

	err = cli.Spin(cmd, fmt.Sprintf("Deleting resource group %s...", name), func() error {
		return clients.ResourceGroups.DeleteAndWait(cmd.Context(), name)
	})
	if err != nil {
		return fmt.Errorf("failed to delete resource group %q: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted resource group %s.\n", name)
	return nil
}
