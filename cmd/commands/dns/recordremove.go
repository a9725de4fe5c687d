package dns

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/zonefile"
)

func recordRemoveCommands() []*cobra.Command {
	return []*cobra.Command{
		RemoveARecordCommand(),
		RemoveAaaaRecordCommand(),
		RemoveCnameRecordCommand(),
		RemoveMxRecordCommand(),
		RemoveNsRecordCommand(),
		RemovePtrRecordCommand(),
		RemoveSrvRecordCommand(),
		RemoveTxtRecordCommand(),
	}
}

func addRemoveFlags(cmd *cobra.Command) {
	addRecordSetFlags(cmd)
	cmd.Flags().Bool("keep-empty-record-set", false, "Keep the record set when its last record is removed")
}

// removeRecords drops the records prune matches from the record set and
// saves it, deleting the whole set when it ends up empty. prune reports
// whether anything matched and how many records remain.
func removeRecords(cmd *cobra.Command, recordType armdns.RecordType, repr string, prune func(*armdns.RecordSetProperties) (bool, int)) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	set, err := clients.RecordSets.Get(cmd.Context(), ref.resourceGroup, ref.zone, ref.name, recordType)
	if err != nil {
		return fmt.Errorf("failed to get record set %q: %w", ref.name, err)
	}
	if set.Properties == nil {
		set.Properties = &armdns.RecordSetProperties{}
	}

	matched, remaining := prune(set.Properties)
	if !matched {
		fmt.Fprintf(cmd.ErrOrStderr(), "Record %q not found.\n", repr)
		return nil
	}

	shortType := zonefile.ShortType(set.Type)
	if shortType == "" {
		shortType = string(recordType)
	}

	if keepEmpty, _ := cmd.Flags().GetBool("keep-empty-record-set"); remaining == 0 && !keepEmpty {
		fmt.Fprintf(cmd.ErrOrStderr(), "Removing empty %s record set: %s\n", strings.ToLower(string(recordType)), ref.name)
		if err := clients.RecordSets.Delete(cmd.Context(), ref.resourceGroup, ref.zone, ref.name, recordType); err != nil {
			return fmt.Errorf("failed to delete record set %q: %w", ref.name, err)
		}
		auditDNS(cmd, "dnsRecordSet", armutil.Value(set.ID), ref.name)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s record from %s.\n", shortType, ref.name)
		return nil
	}

	return saveRecordSet(cmd, clients, ref, recordType, set,
		fmt.Sprintf("Removed %s record from %s.", shortType, ref.name))
}

func RemoveARecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-a",
		Short: "Remove an A record",
		Long: `Remove the matching A records from a record set. The record set is
deleted when its last record goes, unless --keep-empty-record-set.`,
		RunE:         runRemoveARecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().String("ipv4-address", "", "IPv4 address")
	cmd.MarkFlagRequired("ipv4-address")
	return cmd
}

func runRemoveARecord(cmd *cobra.Command, args []string) error {
	address, _ := cmd.Flags().GetString("ipv4-address")
	return removeRecords(cmd, armdns.RecordTypeA, address, func(p *armdns.RecordSetProperties) (bool, int) {
		var kept []*armdns.ARecord
		for _, r := range p.ARecords {
			if armutil.Value(r.IPv4Address) == address {
				continue
			}
			kept = append(kept, r)
		}
		matched := len(kept) != len(p.ARecords)
		p.ARecords = kept
		return matched, len(kept)
	})
}

func RemoveAaaaRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove-aaaa",
		Short:        "Remove an AAAA record",
		RunE:         runRemoveAaaaRecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().String("ipv6-address", "", "IPv6 address")
	cmd.MarkFlagRequired("ipv6-address")
	return cmd
}

func runRemoveAaaaRecord(cmd *cobra.Command, args []string) error {
	address, _ := cmd.Flags().GetString("ipv6-address")
	return removeRecords(cmd, armdns.RecordTypeAAAA, address, func(p *armdns.RecordSetProperties) (bool, int) {
		var kept []*armdns.AaaaRecord
		for _, r := range p.AaaaRecords {
			if armutil.Value(r.IPv6Address) == address {
				continue
			}
			kept = append(kept, r)
		}
		matched := len(kept) != len(p.AaaaRecords)
		p.AaaaRecords = kept
		return matched, len(kept)
	})
}

func RemoveCnameRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove-cname",
		Short:        "Remove the CNAME record",
		RunE:         runRemoveCnameRecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().String("cname", "", "Canonical name the alias points at")
	cmd.MarkFlagRequired("cname")
	return cmd
}

func runRemoveCnameRecord(cmd *cobra.Command, args []string) error {
	cname, _ := cmd.Flags().GetString("cname")
	return removeRecords(cmd, armdns.RecordTypeCNAME, cname, func(p *armdns.RecordSetProperties) (bool, int) {
		if p.CnameRecord == nil || armutil.Value(p.CnameRecord.Cname) != cname {
			return false, 0
		}
		p.CnameRecord = nil
		return true, 0
	})
}

func RemoveMxRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove-mx",
		Short:        "Remove an MX record",
		RunE:         runRemoveMxRecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().Int32("preference", 0, "Preference of the mail exchange")
	cmd.Flags().String("exchange", "", "Host name of the mail exchange")
	cmd.MarkFlagRequired("preference")
	cmd.MarkFlagRequired("exchange")
	return cmd
}

func runRemoveMxRecord(cmd *cobra.Command, args []string) error {
	preference, _ := cmd.Flags().GetInt32("preference")
	exchange, _ := cmd.Flags().GetString("exchange")
	repr := fmt.Sprintf("%d %s", preference, exchange)
	return removeRecords(cmd, armdns.RecordTypeMX, repr, func(p *armdns.RecordSetProperties) (bool, int) {
		var kept []*armdns.MxRecord
		for _, r := range p.MxRecords {
			if armutil.Value(r.Preference) == preference && armutil.Value(r.Exchange) == exchange {
				continue
			}
			kept = append(kept, r)
		}
		matched := len(kept) != len(p.MxRecords)
		p.MxRecords = kept
		return matched, len(kept)
	})
}

func RemoveNsRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove-ns",
		Short:        "Remove an NS record",
		RunE:         runRemoveNsRecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().String("dname", "", "Name server domain name")
	cmd.MarkFlagRequired("dname")
	return cmd
}

func runRemoveNsRecord(cmd *cobra.Command, args []string) error {
	dname, _ := cmd.Flags().GetString("dname")
	return removeRecords(cmd, armdns.RecordTypeNS, dname, func(p *armdns.RecordSetProperties) (bool, int) {
		var kept []*armdns.NsRecord
		for _, r := range p.NsRecords {
			if armutil.Value(r.Nsdname) == dname {
				continue
			}
			kept = append(kept, r)
		}
		matched := len(kept) != len(p.NsRecords)
		p.NsRecords = kept
		return matched, len(kept)
	})
}

func RemovePtrRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove-ptr",
		Short:        "Remove a PTR record",
		RunE:         runRemovePtrRecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().String("dname", "", "Target domain name")
	cmd.MarkFlagRequired("dname")
	return cmd
}

func runRemovePtrRecord(cmd *cobra.Command, args []string) error {
	dname, _ := cmd.Flags().GetString("dname")
	return removeRecords(cmd, armdns.RecordTypePTR, dname, func(p *armdns.RecordSetProperties) (bool, int) {
		var kept []*armdns.PtrRecord
		for _, r := range p.PtrRecords {
			if armutil.Value(r.Ptrdname) == dname {
				continue
			}
			kept = append(kept, r)
		}
		matched := len(kept) != len(p.PtrRecords)
		p.PtrRecords = kept
		return matched, len(kept)
	})
}

func RemoveSrvRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove-srv",
		Short:        "Remove an SRV record",
		RunE:         runRemoveSrvRecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().Int32("priority", 0, "Priority of the target host")
	cmd.Flags().Int32("weight", 0, "Relative weight for records with the same priority")
	cmd.Flags().Int32("port", 0, "Port of the service")
	cmd.Flags().String("target", "", "Host name of the target")
	cmd.MarkFlagRequired("priority")
	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("port")
	cmd.MarkFlagRequired("target")
	return cmd
}

func runRemoveSrvRecord(cmd *cobra.Command, args []string) error {
	priority, _ := cmd.Flags().GetInt32("priority")
	weight, _ := cmd.Flags().GetInt32("weight")
	port, _ := cmd.Flags().GetInt32("port")
	target, _ := cmd.Flags().GetString("target")
	repr := fmt.Sprintf("%d %d %d %s", priority, weight, port, target)
	return removeRecords(cmd, armdns.RecordTypeSRV, repr, func(p *armdns.RecordSetProperties) (bool, int) {
		var kept []*armdns.SrvRecord
		for _, r := range p.SrvRecords {
			if armutil.Value(r.Priority) == priority && armutil.Value(r.Weight) == weight &&
				armutil.Value(r.Port) == port && armutil.Value(r.Target) == target {
				continue
			}
			kept = append(kept, r)
		}
		matched := len(kept) != len(p.SrvRecords)
		p.SrvRecords = kept
		return matched, len(kept)
	})
}

func RemoveTxtRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-txt",
		Short: "Remove a TXT record",
		Long: `Remove the TXT records whose strings match the given value. The
strings compare as an unordered multiset.`,
		RunE:         runRemoveTxtRecord,
		SilenceUsage: true,
	}
	addRemoveFlags(cmd)
	cmd.Flags().StringSlice("value", nil, "Text value, may repeat")
	cmd.MarkFlagRequired("value")
	return cmd
}

func runRemoveTxtRecord(cmd *cobra.Command, args []string) error {
	values, _ := cmd.Flags().GetStringSlice("value")
	repr := strings.Join(values, " ")
	return removeRecords(cmd, armdns.RecordTypeTXT, repr, func(p *armdns.RecordSetProperties) (bool, int) {
		var kept []*armdns.TxtRecord
		for _, r := range p.TxtRecords {
			if stringMultisetsEqual(r.Value, values) {
				continue
			}
			kept = append(kept, r)
		}
		matched := len(kept) != len(p.TxtRecords)
		p.TxtRecords = kept
		return matched, len(kept)
	})
}

func stringMultisetsEqual(stored []*string, filter []string) bool {
	if len(stored) != len(filter) {
		return false
	}
	counts := make(map[string]int, len(stored))
	for _, v := range stored {
		counts[armutil.Value(v)]++
	}
	for _, v := range filter {
		counts[v]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}
