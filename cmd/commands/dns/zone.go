package dns

import (
	"fmt"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
	"nathanbeddoewebdev/aznet/internal/zonefile"
)

func ZoneCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a DNS zone",
		Long: `Create a DNS zone. Creation never overwrites an existing zone; the
request fails if the zone already exists.

Example:
  aznet dns zone create -g my-rg -n example.com`,
		RunE:         runZoneCreate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the zone")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs (\"\" clears)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runZoneCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	zone := armdns.Zone{Location: to.Ptr("global")}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		zone.Tags = cli.ParseTags(pairs)
	}

	var created armdns.Zone
	err = cli.Spin(cmd, fmt.Sprintf("Creating zone %s...", name), func() error {
		var err error
		created, err = clients.Zones.CreateOrUpdate(cmd.Context(), resourceGroup, name, zone, "", "*")
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create zone %q: %w", name, err)
	}

	auditDNS(cmd, "dnsZone", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created zone %s.\n", name)
	if created.Properties != nil && len(created.Properties.NameServers) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Name servers: %s\n", armutil.JoinStrings(created.Properties.NameServers, ", "))
	}
	return nil
}

func ZoneListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List DNS zones",
		Long: `List DNS zones in a resource group, or across the whole subscription
when no resource group is given.`,
		RunE:         runZoneList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")

	return cmd
}

func runZoneList(cmd *cobra.Command, args []string) error {
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	var zones []*armdns.Zone
	if cmd.Flags().Changed("resource-group") {
		resourceGroup, err := cli.ResourceGroup(cmd)
		if err != nil {
			return err
		}
		zones, err = clients.Zones.ListByResourceGroup(cmd.Context(), resourceGroup)
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}
	} else {
		zones, err = clients.Zones.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, zones)
	}

	if len(zones) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No DNS zones found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tRECORD SETS\tNAME SERVERS")
	fmt.Fprintln(w, "----\t--------------\t-----------\t------------")
	for _, zone := range zones {
		if zone == nil {
			continue
		}
		recordSets := "-"
		nameServers := "-"
		if zone.Properties != nil {
			if zone.Properties.NumberOfRecordSets != nil {
				recordSets = fmt.Sprintf("%d", *zone.Properties.NumberOfRecordSets)
			}
			if len(zone.Properties.NameServers) > 0 {
				nameServers = fmt.Sprintf("%d", len(zone.Properties.NameServers))
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			armutil.Value(zone.Name),
			armutil.ResourceGroupOf(armutil.Value(zone.ID)),
			recordSets,
			nameServers,
		)
	}
	return w.Flush()
}

func ZoneDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a DNS zone",
		Long: `Delete a DNS zone and every record set in it.

Deletion is a long-running operation. Pass --no-wait to return as soon
as the request is accepted; 'aznet operation resume' can pick up the
wait later.

Examples:
  aznet dns zone delete -g my-rg -n example.com
  aznet dns zone delete -g my-rg -n example.com --yes --no-wait`,
		RunE:         runZoneDelete,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the zone")
	cmd.Flags().BoolP("yes", "y", false, "Do not prompt for confirmation")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runZoneDelete(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	ok, err := cli.Confirm(cmd, fmt.Sprintf("Delete DNS zone %q and all its record sets?", name))
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

	zoneID := armutil.ResourceID(session.SubscriptionID, resourceGroup, armutil.NetworkNamespace, "dnszones", name)
	auditDNS(cmd, "dnsZone", zoneID, name)

	if noWait, _ := cmd.Flags().GetBool("no-wait"); noWait {
		if err := clients.Zones.StartDelete(cmd.Context(), resourceGroup, name); err != nil {
			return fmt.Errorf("failed to delete zone %q: %w", name, err)
		}
		cli.StartedOperation(cmd, "dns", store.ActionDelete, zoneID, name)
		return nil
	}

	err = cli.Spin(cmd, fmt.Sprintf("Deleting zone %s...", name), func() error {
		return clients.Zones.DeleteAndWait(cmd.Context(), resourceGroup, name)
	})
	if err != nil {
		return fmt.Errorf("failed to delete zone %q: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted zone %s.\n", name)
	return nil
}

func ZoneExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a DNS zone as a zone file",
		Long: `Export all record sets of a zone in RFC 1035 zone file format, to
stdout or to a file.

Examples:
  aznet dns zone export -g my-rg -n example.com
  aznet dns zone export -g my-rg -n example.com --file example.com.zone`,
		RunE:         runZoneExport,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the zone")
	cmd.Flags().StringP("file", "f", "", "Write the zone file to this path instead of stdout")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runZoneExport(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	sets, err := clients.RecordSets.ListByZone(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to list record sets: %w", err)
	}

	text := zonefile.Write(name, sets)

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write zone file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported zone %s to %s.\n", name, path)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func ZoneImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a zone file into a DNS zone",
		Long: `Parse an RFC 1035 zone file and upload its record sets, creating the
zone if it does not exist. The apex SOA keeps the service-managed host
and the apex NS set keeps the service-assigned name servers with the
imported TTL applied.

Example:
  aznet dns zone import -g my-rg -n example.com --file example.com.zone`,
		RunE:         runZoneImport,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the zone")
	cmd.Flags().StringP("file", "f", "", "Path of the zone file to import")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runZoneImport(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	path, _ := cmd.Flags().GetString("file")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read zone file %q: %w", path, err)
	}

	entries, warnings, err := zonefile.Parse(string(data), name)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	total := 0
	for _, entry := range entries {
		total += entry.RecordCount()
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "== BEGINNING ZONE IMPORT: %s ==\n\n", name)

	if _, err := clients.Zones.CreateOrUpdate(cmd.Context(), resourceGroup, name, armdns.Zone{Location: to.Ptr("global")}, "", ""); err != nil {
		return fmt.Errorf("failed to create zone %q: %w", name, err)
	}

	imported := 0
	for _, entry := range entries {
		set := entry.Set
		count := entry.RecordCount()

		switch {
		case entry.Name == "@" && entry.Type == armdns.RecordTypeSOA:
			root, err := clients.RecordSets.Get(cmd.Context(), resourceGroup, name, "@", armdns.RecordTypeSOA)
			if err != nil {
				return fmt.Errorf("failed to get SOA record for zone %q: %w", name, err)
			}
			if root.Properties != nil && root.Properties.SoaRecord != nil && set.Properties.SoaRecord != nil {
				set.Properties.SoaRecord.Host = root.Properties.SoaRecord.Host
			}
		case entry.Name == "@" && entry.Type == armdns.RecordTypeNS:
			root, err := clients.RecordSets.Get(cmd.Context(), resourceGroup, name, "@", armdns.RecordTypeNS)
			if err != nil {
				return fmt.Errorf("failed to get NS record for zone %q: %w", name, err)
			}
			importedTTL := set.Properties.TTL
			set = root
			if set.Properties == nil {
				set.Properties = &armdns.RecordSetProperties{}
			}
			set.Properties.TTL = importedTTL
		}

		if _, err := clients.RecordSets.CreateOrUpdate(cmd.Context(), resourceGroup, name, entry.Name, entry.Type, set, "", ""); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to import record set %q: %v\n", entry.Name, err)
			continue
		}
		imported += count
		fmt.Fprintf(cmd.ErrOrStderr(), "(%d/%d) Imported %d records of type '%s' and name '%s'\n",
			imported, total, count, strings.ToLower(string(entry.Type)), entry.Name)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\n== %d/%d RECORDS IMPORTED SUCCESSFULLY: '%s' ==\n", imported, total, name)

	zoneID := armutil.ResourceID(session.SubscriptionID, resourceGroup, armutil.NetworkNamespace, "dnszones", name)
	auditDNS(cmd, "dnsZone", zoneID, name)
	return nil
}
