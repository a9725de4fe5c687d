package dns

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

// NewCommand returns the top-level "dns" Cobra command with all subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Manage Azure DNS zones and record sets",
	}

	zone := &cobra.Command{
		Use:   "zone",
		Short: "Manage DNS zones",
	}
	zone.AddCommand(ZoneCreateCommand())
	zone.AddCommand(ZoneListCommand())
	zone.AddCommand(ZoneDeleteCommand())
	zone.AddCommand(ZoneExportCommand())
	zone.AddCommand(ZoneImportCommand())
	cmd.AddCommand(zone)

	recordSet := &cobra.Command{
		Use:   "record-set",
		Short: "Manage DNS record sets",
	}
	recordSet.AddCommand(RecordSetCreateCommand())
	recordSet.AddCommand(RecordSetListCommand())
	recordSet.AddCommand(RecordSetUpdateCommand())
	cmd.AddCommand(recordSet)

	record := &cobra.Command{
		Use:   "record",
		Short: "Manage records within a record set",
	}
	for _, sub := range recordAddCommands() {
		record.AddCommand(sub)
	}
	for _, sub := range recordRemoveCommands() {
		record.AddCommand(sub)
	}
	record.AddCommand(UpdateSoaCommand())
	cmd.AddCommand(record)

	return cmd
}

func auditDNS(cmd *cobra.Command, resourceType, resourceID, resourceName string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "dns",
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ResourceName: resourceName,
	}))
}
