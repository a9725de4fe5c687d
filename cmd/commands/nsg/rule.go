package nsg

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("nsg-name", "", "Name of the network security group")
	cmd.Flags().StringP("name", "n", "", "Name of the rule")
	cmd.MarkFlagRequired("nsg-name")
	cmd.MarkFlagRequired("name")
}

func RuleCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a security rule",
		Long: `Create a security rule.

Unspecified fields default to a permissive inbound rule: any protocol,
any source, any destination address on port 80, access Allow.

Example:
  aznet nsg rule create -g my-rg --nsg-name web-nsg -n allow-https --priority 110 --destination-port-range 443 --protocol Tcp`,
		RunE:         runRuleCreate,
		SilenceUsage: true,
	}

	addRuleFlags(cmd)
	cmd.Flags().Int32("priority", 0, "Rule priority between 100 and 4096 (lower runs first)")
	cmd.Flags().String("protocol", "*", "Protocol: Tcp, Udp, Icmp or *")
	cmd.Flags().String("direction", "Inbound", "Direction: Inbound or Outbound")
	cmd.Flags().String("access", "Allow", "Access: Allow or Deny")
	cmd.Flags().String("source-address-prefix", "*", "Source address prefix, CIDR or tag")
	cmd.Flags().String("source-port-range", "*", "Source port or range")
	cmd.Flags().String("destination-address-prefix", "*", "Destination address prefix, CIDR or tag")
	cmd.Flags().String("destination-port-range", "80", "Destination port or range")
	cmd.Flags().String("description", "", "Free-form rule description")
	cmd.MarkFlagRequired("priority")

	return cmd
}

func runRuleCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	nsgName, _ := cmd.Flags().GetString("nsg-name")
	name, _ := cmd.Flags().GetString("name")
	priority, _ := cmd.Flags().GetInt32("priority")

	protocol, err := flagEnum(cmd, "protocol", armnetwork.PossibleSecurityRuleProtocolValues())
	if err != nil {
		return err
	}
	direction, err := flagEnum(cmd, "direction", armnetwork.PossibleSecurityRuleDirectionValues())
	if err != nil {
		return err
	}
	access, err := flagEnum(cmd, "access", armnetwork.PossibleSecurityRuleAccessValues())
	if err != nil {
		return err
	}

	srcAddr, _ := cmd.Flags().GetString("source-address-prefix")
	srcPort, _ := cmd.Flags().GetString("source-port-range")
	dstAddr, _ := cmd.Flags().GetString("destination-address-prefix")
	dstPort, _ := cmd.Flags().GetString("destination-port-range")

	rule := armnetwork.SecurityRule{
		Name: to.Ptr(name),
		Properties: &armnetwork.SecurityRulePropertiesFormat{
			Priority:                 to.Ptr(priority),
			Protocol:                 to.Ptr(protocol),
			Direction:                to.Ptr(direction),
			Access:                   to.Ptr(access),
			SourceAddressPrefix:      to.Ptr(srcAddr),
			SourcePortRange:          to.Ptr(srcPort),
			DestinationAddressPrefix: to.Ptr(dstAddr),
			DestinationPortRange:     to.Ptr(dstPort),
		},
	}
	if desc, _ := cmd.Flags().GetString("description"); desc != "" {
		rule.Properties.Description = to.Ptr(desc)
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	var created armnetwork.SecurityRule
	err = cli.Spin(cmd, fmt.Sprintf("Creating rule %s...", name), func() error {
		var err error
		created, err = clients.SecurityRules.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, nsgName, name, rule)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create rule %q: %w", name, err)
	}

	auditRule(cmd, armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created rule %s in %s.\n", name, nsgName)
	return nil
}

func RuleUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a security rule",
		Long: `Update a security rule in place. Only the provided flags change.

Example:
  aznet nsg rule update -g my-rg --nsg-name web-nsg -n allow-https --access Deny`,
		RunE:         runRuleUpdate,
		SilenceUsage: true,
	}

	addRuleFlags(cmd)
	cmd.Flags().Int32("priority", 0, "Rule priority between 100 and 4096 (lower runs first)")
	cmd.Flags().String("protocol", "", "Protocol: Tcp, Udp, Icmp or *")
	cmd.Flags().String("direction", "", "Direction: Inbound or Outbound")
	cmd.Flags().String("access", "", "Access: Allow or Deny")
	cmd.Flags().String("source-address-prefix", "", "Source address prefix, CIDR or tag")
	cmd.Flags().String("source-port-range", "", "Source port or range")
	cmd.Flags().String("destination-address-prefix", "", "Destination address prefix, CIDR or tag")
	cmd.Flags().String("destination-port-range", "", "Destination port or range")
	cmd.Flags().String("description", "", "Free-form rule description")

	return cmd
}

func runRuleUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	nsgName, _ := cmd.Flags().GetString("nsg-name")
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	rule, err := clients.SecurityRules.Get(cmd.Context(), resourceGroup, nsgName, name)
	if err != nil {
		return fmt.Errorf("failed to get rule %q: %w", name, err)
	}
	if rule.Properties == nil {
		rule.Properties = &armnetwork.SecurityRulePropertiesFormat{}
	}

	if cmd.Flags().Changed("priority") {
		priority, _ := cmd.Flags().GetInt32("priority")
		rule.Properties.Priority = to.Ptr(priority)
	}
	if cmd.Flags().Changed("protocol") {
		protocol, err := flagEnum(cmd, "protocol", armnetwork.PossibleSecurityRuleProtocolValues())
		if err != nil {
			return err
		}
		rule.Properties.Protocol = to.Ptr(protocol)
	}
	if cmd.Flags().Changed("direction") {
		direction, err := flagEnum(cmd, "direction", armnetwork.PossibleSecurityRuleDirectionValues())
		if err != nil {
			return err
		}
		rule.Properties.Direction = to.Ptr(direction)
	}
	if cmd.Flags().Changed("access") {
		access, err := flagEnum(cmd, "access", armnetwork.PossibleSecurityRuleAccessValues())
		if err != nil {
			return err
		}
		rule.Properties.Access = to.Ptr(access)
	}
	setIfChanged(cmd, "source-address-prefix", &rule.Properties.SourceAddressPrefix)
	setIfChanged(cmd, "source-port-range", &rule.Properties.SourcePortRange)
	setIfChanged(cmd, "destination-address-prefix", &rule.Properties.DestinationAddressPrefix)
	setIfChanged(cmd, "destination-port-range", &rule.Properties.DestinationPortRange)
	setIfChanged(cmd, "description", &rule.Properties.Description)

	var updated armnetwork.SecurityRule
	err = cli.Spin(cmd, fmt.Sprintf("Updating rule %s...", name), func() error {
		var err error
		updated, err = clients.SecurityRules.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, nsgName, name, rule)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update rule %q: %w", name, err)
	}

	auditRule(cmd, armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated rule %s.\n", name)
	return nil
}

func RuleListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List security rules in a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			nsgName, _ := cmd.Flags().GetString("nsg-name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			rules, err := clients.SecurityRules.List(cmd.Context(), resourceGroup, nsgName)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			if cli.OutputFormat(cmd) == "json" {
				return cli.PrintJSON(cmd, rules)
			}

			if len(rules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rules found.")
				return nil
			}

			w := cli.NewTable(cmd)
			fmt.Fprintln(w, "NAME\tPRIORITY\tDIRECTION\tACCESS\tPROTOCOL\tSOURCE\tDESTINATION")
			fmt.Fprintln(w, "----\t--------\t---------\t------\t--------\t------\t-----------")
			for _, r := range rules {
				p := r.Properties
				if p == nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s:%s\t%s:%s\n",
					armutil.Value(r.Name),
					armutil.Value(p.Priority),
					enumString(p.Direction),
					enumString(p.Access),
					enumString(p.Protocol),
					armutil.Value(p.SourceAddressPrefix), armutil.Value(p.SourcePortRange),
					armutil.Value(p.DestinationAddressPrefix), armutil.Value(p.DestinationPortRange),
				)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("nsg-name", "", "Name of the network security group")
	cmd.MarkFlagRequired("nsg-name")

	return cmd
}

func RuleShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a security rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			nsgName, _ := cmd.Flags().GetString("nsg-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			rule, err := clients.SecurityRules.Get(cmd.Context(), resourceGroup, nsgName, name)
			if err != nil {
				return fmt.Errorf("failed to get rule %q: %w", name, err)
			}

			return cli.PrintJSON(cmd, rule)
		},
		SilenceUsage: true,
	}

	addRuleFlags(cmd)

	return cmd
}

func RuleDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a security rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			nsgName, _ := cmd.Flags().GetString("nsg-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			err = cli.Spin(cmd, fmt.Sprintf("Deleting rule %s...", name), func() error {
				return clients.SecurityRules.DeleteAndWait(cmd.Context(), resourceGroup, nsgName, name)
			})
			if err != nil {
				return fmt.Errorf("failed to delete rule %q: %w", name, err)
			}

			auditRule(cmd, "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted rule %s from %s.\n", name, nsgName)
			return nil
		},
		SilenceUsage: true,
	}

	addRuleFlags(cmd)

	return cmd
}

// flagEnum reads a string flag and maps it onto the ARM enum values.
func flagEnum[T ~string](cmd *cobra.Command, flag string, values []T) (T, error) {
	raw, _ := cmd.Flags().GetString(flag)
	return armutil.ParseEnum(raw, "--"+flag, values)
}

func enumString[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func setIfChanged(cmd *cobra.Command, flag string, dst **string) {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		*dst = to.Ptr(v)
	}
}
