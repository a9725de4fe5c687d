package tag

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage subscription tag names and values",
		Long: `Manage the tag names and predefined tag values of the subscription.

These commands maintain the subscription's tag vocabulary; tagging an
individual resource happens through that resource's --tags flag.`,
	}

	cmd.AddCommand(listCommand())
	cmd.AddCommand(createCommand())
	cmd.AddCommand(deleteCommand())
	cmd.AddCommand(addValueCommand())
	cmd.AddCommand(removeValueCommand())

	return cmd
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tag names with their values and counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			tags, err := clients.Tags.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, tags)
			}

			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tCOUNT\tVALUES")
			fmt.Fprintln(w, "----\t-----\t------")
			for _, t := range tags {
				var count int32
				if t.Count != nil {
					count = armutil.Value(t.Count.Value)
				}
				values := make([]*string, 0, len(t.Values))
				for _, v := range t.Values {
					values = append(values, v.TagValue)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n",
					armutil.Value(t.TagName), count, armutil.JoinStrings(values, ", "))
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}
}

func createCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag name in the subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			created, err := clients.Tags.CreateOrUpdate(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("failed to create tag %q: %w", name, err)
			}

			auditTag(cmd, name)
			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %s.\n", name)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("name", "n", "", "Tag name")
	cmd.MarkFlagRequired("name")
	return cmd
}

func deleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a tag name from the subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			if err := clients.Tags.Delete(cmd.Context(), name); err != nil {
				return fmt.Errorf("failed to delete tag %q: %w", name, err)
			}

			auditTag(cmd, name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %s.\n", name)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("name", "n", "", "Tag name")
	cmd.MarkFlagRequired("name")
	return cmd
}

func addValueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-value",
		Short: "Add a predefined value to a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			value, _ := cmd.Flags().GetString("value")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			created, err := clients.Tags.CreateOrUpdateValue(cmd.Context(), name, value)
			if err != nil {
				return fmt.Errorf("failed to add value %q to tag %q: %w", value, name, err)
			}

			auditTag(cmd, name)
			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added value %s to tag %s.\n", value, name)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("name", "n", "", "Tag name")
	cmd.Flags().String("value", "", "Tag value")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("value")
	return cmd
}

func removeValueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-value",
		Short: "Remove a predefined value from a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			value, _ := cmd.Flags().GetString("value")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			if err := clients.Tags.DeleteValue(cmd.Context(), name, value); err != nil {
				return fmt.Errorf("failed to remove value %q from tag %q: %w", value, name, err)
			}

			auditTag(cmd, name)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed value %s from tag %s.\n", value, name)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("name", "n", "", "Tag name")
	cmd.Flags().String("value", "", "Tag value")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("value")
	return cmd
}

func auditTag(cmd *cobra.Command, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "resources",
		ResourceType: "tag",
		ResourceName: name,
	}))
}
