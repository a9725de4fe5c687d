package dns

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/tui"
	"nathanbeddoewebdev/aznet/internal/zonefile"
)

func RecordSetCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty record set",
		Long: `Create a record set with no records. Use 'aznet dns record add-*' to
populate it.

Example:
  aznet dns record-set create -g my-rg -z example.com -n www --type A --ttl 300`,
		RunE:         runRecordSetCreate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("zone-name", "z", "", "Name of the zone")
	cmd.Flags().StringP("name", "n", "", "Name of the record set relative to the zone")
	cmd.Flags().String("type", "", "Record type (A, AAAA, CNAME, MX, NS, PTR, SOA, SRV, TXT)")
	cmd.Flags().Int64("ttl", 3600, "Time to live in seconds")
	cmd.Flags().StringSlice("metadata", nil, "Metadata as key=value pairs")
	cmd.Flags().String("if-match", "", "Only apply when the record set's etag matches")
	cmd.Flags().Bool("if-none-match", false, "Fail if the record set already exists")
	cmd.MarkFlagRequired("zone-name")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")

	return cmd
}

func runRecordSetCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	zoneName, _ := cmd.Flags().GetString("zone-name")
	name, _ := cmd.Flags().GetString("name")

	typeRaw, _ := cmd.Flags().GetString("type")
	recordType, err := zonefile.ParseRecordType(typeRaw)
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	ttl, _ := cmd.Flags().GetInt64("ttl")
	set := armdns.RecordSet{Properties: &armdns.RecordSetProperties{TTL: to.Ptr(ttl)}}
	if cmd.Flags().Changed("metadata") {
		pairs, _ := cmd.Flags().GetStringSlice("metadata")
		set.Properties.Metadata = cli.ParseTags(pairs)
	}

	ifMatch, _ := cmd.Flags().GetString("if-match")
	ifNoneMatch := ""
	if v, _ := cmd.Flags().GetBool("if-none-match"); v {
		ifNoneMatch = "*"
	}

	created, err := clients.RecordSets.CreateOrUpdate(cmd.Context(), resourceGroup, zoneName, name, recordType, set, ifMatch, ifNoneMatch)
	if err != nil {
		return fmt.Errorf("failed to create record set %q: %w", name, err)
	}

	auditDNS(cmd, "dnsRecordSet", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created record set %s in zone %s.\n", name, zoneName)
	return nil
}

func RecordSetListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List record sets in a zone",
		Long: `List record sets, optionally filtered to one record type. On a
terminal this opens an interactive browser; otherwise a table is
printed.

Examples:
  aznet dns record-set list -g my-rg -z example.com
  aznet dns record-set list -g my-rg -z example.com --type A`,
		RunE:         runRecordSetList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("zone-name", "z", "", "Name of the zone")
	cmd.Flags().String("type", "", "Only list record sets of this type")
	cmd.MarkFlagRequired("zone-name")

	return cmd
}

func runRecordSetList(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	zoneName, _ := cmd.Flags().GetString("zone-name")

	typed := cmd.Flags().Changed("type")
	var recordType armdns.RecordType
	if typed {
		typeRaw, _ := cmd.Flags().GetString("type")
		recordType, err = zonefile.ParseRecordType(typeRaw)
		if err != nil {
			return err
		}
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	load := func() ([]*armdns.RecordSet, error) {
		if typed {
			return clients.RecordSets.ListByType(cmd.Context(), resourceGroup, zoneName, recordType)
		}
		return clients.RecordSets.ListByZone(cmd.Context(), resourceGroup, zoneName)
	}

	if cli.OutputFormat(cmd) != "json" && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.BrowseRecordSets(zoneName, load); err != nil {
			return fmt.Errorf("failed to run record set browser: %w", err)
		}
		return nil
	}

	sets, err := load()
	if err != nil {
		return fmt.Errorf("failed to list record sets: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, sets)
	}

	if len(sets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No record sets found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tTYPE\tTTL\tRECORDS")
	fmt.Fprintln(w, "----\t----\t---\t-------")
	for _, set := range sets {
		if set == nil {
			continue
		}
		ttl := "-"
		if set.Properties != nil && set.Properties.TTL != nil {
			ttl = fmt.Sprintf("%d", *set.Properties.TTL)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			armutil.Value(set.Name),
			zonefile.ShortType(set.Type),
			ttl,
			zonefile.RecordCount(set),
		)
	}
	return w.Flush()
}

func RecordSetUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a record set's metadata",
		Long: `Update the metadata of a record set. The save carries the record
set's etag so a concurrent change fails the update.

Example:
  aznet dns record-set update -g my-rg -z example.com -n www --type A --metadata owner=web`,
		RunE:         runRecordSetUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("zone-name", "z", "", "Name of the zone")
	cmd.Flags().StringP("name", "n", "", "Name of the record set relative to the zone")
	cmd.Flags().String("type", "", "Record type (A, AAAA, CNAME, MX, NS, PTR, SOA, SRV, TXT)")
	cmd.Flags().StringSlice("metadata", nil, "Metadata as key=value pairs")
	cmd.MarkFlagRequired("zone-name")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("type")

	return cmd
}

func runRecordSetUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	zoneName, _ := cmd.Flags().GetString("zone-name")
	name, _ := cmd.Flags().GetString("name")

	typeRaw, _ := cmd.Flags().GetString("type")
	recordType, err := zonefile.ParseRecordType(typeRaw)
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	set, err := clients.RecordSets.Get(cmd.Context(), resourceGroup, zoneName, name, recordType)
	if err != nil {
		return fmt.Errorf("failed to get record set %q: %w", name, err)
	}
	if set.Properties == nil {
		set.Properties = &armdns.RecordSetProperties{}
	}

	if cmd.Flags().Changed("metadata") {
		pairs, _ := cmd.Flags().GetStringSlice("metadata")
		set.Properties.Metadata = cli.ParseTags(pairs)
	}

	updated, err := clients.RecordSets.CreateOrUpdate(cmd.Context(), resourceGroup, zoneName, name, recordType, set, armutil.Value(set.Etag), "")
	if err != nil {
		return fmt.Errorf("failed to update record set %q: %w", name, err)
	}

	auditDNS(cmd, "dnsRecordSet", armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated record set %s.\n", name)
	return nil
}
