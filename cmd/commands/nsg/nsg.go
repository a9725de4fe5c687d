package nsg

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nsg",
		Short: "Manage network security groups and their rules",
	}

	cmd.AddCommand(ListCommand())

	rule := &cobra.Command{
		Use:   "rule",
		Short: "Manage security rules",
	}
	rule.AddCommand(RuleCreateCommand())
	rule.AddCommand(RuleUpdateCommand())
	rule.AddCommand(RuleListCommand())
	rule.AddCommand(RuleShowCommand())
	rule.AddCommand(RuleDeleteCommand())
	cmd.AddCommand(rule)

	return cmd
}

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List network security groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			var nsgs []*armnetwork.SecurityGroup
			if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
				nsgs, err = clients.SecurityGroups.List(cmd.Context(), rg)
			} else {
				nsgs, err = clients.SecurityGroups.ListAll(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("failed to list security groups: %w", err)
			}

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, nsgs)
			}

			if len(nsgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No security groups found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tRULES")
			fmt.Fprintln(w, "----\t--------------\t--------\t-----")
			for _, g := range nsgs {
				rules := 0
				if g.Properties != nil {
					rules = len(g.Properties.SecurityRules)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					armutil.Value(g.Name),
					armutil.ResourceGroupOf(armutil.Value(g.ID)),
					armutil.Value(g.Location),
					rules,
				)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Limit to a resource group")

	return cmd
}

func auditRule(cmd *cobra.Command, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: "securityRule",
		ResourceID:   id,
		ResourceName: name,
	}))
}
