package dns

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func recordAddCommands() []*cobra.Command {
	return []*cobra.Command{
		AddARecordCommand(),
		AddAaaaRecordCommand(),
		AddCnameRecordCommand(),
		AddMxRecordCommand(),
		AddNsRecordCommand(),
		AddPtrRecordCommand(),
		AddSrvRecordCommand(),
		AddTxtRecordCommand(),
	}
}

// recordSetRef identifies a record set within a zone.
type recordSetRef struct {
	resourceGroup string
	zone          string
	name          string
}

func addRecordSetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("zone-name", "z", "", "Name of the zone")
	cmd.Flags().StringP("name", "n", "", "Name of the record set relative to the zone")
	cmd.MarkFlagRequired("zone-name")
	cmd.MarkFlagRequired("name")
}

func recordSetRefFrom(cmd *cobra.Command) (recordSetRef, error) {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return recordSetRef{}, err
	}
	zone, _ := cmd.Flags().GetString("zone-name")
	name, _ := cmd.Flags().GetString("name")
	return recordSetRef{resourceGroup: resourceGroup, zone: zone, name: name}, nil
}

// getOrCreateRecordSet fetches the record set, falling back to a fresh one
// with the default TTL when the service does not have it yet.
func getOrCreateRecordSet(cmd *cobra.Command, clients *azure.Clients, ref recordSetRef, recordType armdns.RecordType) armdns.RecordSet {
	set, err := clients.RecordSets.Get(cmd.Context(), ref.resourceGroup, ref.zone, ref.name, recordType)
	if err != nil {
		return armdns.RecordSet{Properties: &armdns.RecordSetProperties{TTL: to.Ptr(int64(3600))}}
	}
	if set.Properties == nil {
		set.Properties = &armdns.RecordSetProperties{TTL: to.Ptr(int64(3600))}
	}
	return set
}

func saveRecordSet(cmd *cobra.Command, clients *azure.Clients, ref recordSetRef, recordType armdns.RecordType, set armdns.RecordSet, message string) error {
	saved, err := clients.RecordSets.CreateOrUpdate(cmd.Context(), ref.resourceGroup, ref.zone, ref.name, recordType, set, "", "")
	if err != nil {
		return fmt.Errorf("failed to save record set %q: %w", ref.name, err)
	}

	auditDNS(cmd, "dnsRecordSet", armutil.Value(saved.ID), ref.name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, saved)
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func AddARecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-a",
		Short: "Add an A record",
		Long: `Add an A record to a record set, creating the record set if needed.

Example:
  aznet dns record add-a -g my-rg -z example.com -n www --ipv4-address 10.0.0.4`,
		RunE:         runAddARecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
	cmd.Flags().String("ipv4-address", "", "IPv4 address")
	cmd.MarkFlagRequired("ipv4-address")
	return cmd
}

func runAddARecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	address, _ := cmd.Flags().GetString("ipv4-address")

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypeA)
	set.Properties.ARecords = append(set.Properties.ARecords, &armdns.ARecord{IPv4Address: to.Ptr(address)})

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeA, set,
		fmt.Sprintf("Added A record %s to %s.", address, ref.name))
}

func AddAaaaRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "add-aaaa",
		Short:        "Add an AAAA record",
		RunE:         runAddAaaaRecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
	cmd.Flags().String("ipv6-address", "", "IPv6 address")
	cmd.MarkFlagRequired("ipv6-address")
	return cmd
}

func runAddAaaaRecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	address, _ := cmd.Flags().GetString("ipv6-address")

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypeAAAA)
	set.Properties.AaaaRecords = append(set.Properties.AaaaRecords, &armdns.AaaaRecord{IPv6Address: to.Ptr(address)})

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeAAAA, set,
		fmt.Sprintf("Added AAAA record %s to %s.", address, ref.name))
}

func AddCnameRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-cname",
		Short: "Add a CNAME record",
		Long: `Set the CNAME record of a record set. A CNAME record set holds a
single record, so an existing alias is replaced.`,
		RunE:         runAddCnameRecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
	cmd.Flags().String("cname", "", "Canonical name the alias points at")
	cmd.MarkFlagRequired("cname")
	return cmd
}

func runAddCnameRecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	cname, _ := cmd.Flags().GetString("cname")

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypeCNAME)
	set.Properties.CnameRecord = &armdns.CnameRecord{Cname: to.Ptr(cname)}

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeCNAME, set,
		fmt.Sprintf("Added CNAME record %s to %s.", cname, ref.name))
}

func AddMxRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "add-mx",
		Short:        "Add an MX record",
		RunE:         runAddMxRecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
	cmd.Flags().Int32("preference", 0, "Preference of the mail exchange")
	cmd.Flags().String("exchange", "", "Host name of the mail exchange")
	cmd.MarkFlagRequired("preference")
	cmd.MarkFlagRequired("exchange")
	return cmd
}

func runAddMxRecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	preference, _ := cmd.Flags().GetInt32("preference")
	exchange, _ := cmd.Flags().GetString("exchange")

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypeMX)
	set.Properties.MxRecords = append(set.Properties.MxRecords, &armdns.MxRecord{
		Preference: to.Ptr(preference),
		Exchange:   to.Ptr(exchange),
	})

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeMX, set,
		fmt.Sprintf("Added MX record %d %s to %s.", preference, exchange, ref.name))
}

func AddNsRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "add-ns",
		Short:        "Add an NS record",
		RunE:         runAddNsRecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
	cmd.Flags().String("dname", "", "Name server domain name")
	cmd.MarkFlagRequired("dname")
	return cmd
}

func runAddNsRecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	dname, _ := cmd.Flags().GetString("dname")

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypeNS)
	set.Properties.NsRecords = append(set.Properties.NsRecords, &armdns.NsRecord{Nsdname: to.Ptr(dname)})

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeNS, set,
		fmt.Sprintf("Added NS record %s to %s.", dname, ref.name))
}

func AddPtrRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "add-ptr",
		Short:        "Add a PTR record",
		RunE:         runAddPtrRecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
	cmd.Flags().String("dname", "", "Target domain name")
	cmd.MarkFlagRequired("dname")
	return cmd
}

func runAddPtrRecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	dname, _ := cmd.Flags().GetString("dname")

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypePTR)
	set.Properties.PtrRecords = append(set.Properties.PtrRecords, &armdns.PtrRecord{Ptrdname: to.Ptr(dname)})

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypePTR, set,
		fmt.Sprintf("Added PTR record %s to %s.", dname, ref.name))
}

func AddSrvRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "add-srv",
		Short:        "Add an SRV record",
		RunE:         runAddSrvRecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
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

func runAddSrvRecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	priority, _ := cmd.Flags().GetInt32("priority")
	weight, _ := cmd.Flags().GetInt32("weight")
	port, _ := cmd.Flags().GetInt32("port")
	target, _ := cmd.Flags().GetString("target")

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypeSRV)
	set.Properties.SrvRecords = append(set.Properties.SrvRecords, &armdns.SrvRecord{
		Priority: to.Ptr(priority),
		Weight:   to.Ptr(weight),
		Port:     to.Ptr(port),
		Target:   to.Ptr(target),
	})

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeSRV, set,
		fmt.Sprintf("Added SRV record %s to %s.", target, ref.name))
}

func AddTxtRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-txt",
		Short: "Add a TXT record",
		Long: `Add a TXT record to a record set. Multi-part values are joined and
re-split into the 255-character strings DNS TXT records hold.`,
		RunE:         runAddTxtRecord,
		SilenceUsage: true,
	}
	addRecordSetFlags(cmd)
	cmd.Flags().StringSlice("value", nil, "Text value, may repeat")
	cmd.MarkFlagRequired("value")
	return cmd
}

func runAddTxtRecord(cmd *cobra.Command, args []string) error {
	ref, err := recordSetRefFrom(cmd)
	if err != nil {
		return err
	}
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}
	values, _ := cmd.Flags().GetStringSlice("value")

	record := &armdns.TxtRecord{}
	for _, chunk := range txtChunks(values) {
		record.Value = append(record.Value, to.Ptr(chunk))
	}

	set := getOrCreateRecordSet(cmd, clients, ref, armdns.RecordTypeTXT)
	set.Properties.TxtRecords = append(set.Properties.TxtRecords, record)

	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeTXT, set,
		fmt.Sprintf("Added TXT record to %s.", ref.name))
}

// txtChunks joins the value parts, drops escape backslashes, and splits
// the result into 255-character strings.
func txtChunks(values []string) []string {
	long := strings.ReplaceAll(strings.Join(values, ""), "\\", "")
	var chunks []string
	for len(long) > 255 {
		chunks = append(chunks, long[:255])
		long = long[255:]
	}
	return append(chunks, long)
}

func UpdateSoaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-soa",
		Short: "Update the zone's SOA record",
		Long: `Update fields of the zone apex SOA record. Only the provided flags
change.

Example:
  aznet dns record update-soa -g my-rg -z example.com --email hostmaster.example.com --retry-time 600`,
		RunE:         runUpdateSoa,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("zone-name", "z", "", "Name of the zone")
	cmd.Flags().String("host", "", "Host name of the primary name server")
	cmd.Flags().String("email", "", "Responsible party email, in RNAME format")
	cmd.Flags().Int64("serial-number", 0, "Serial number")
	cmd.Flags().Int64("refresh-time", 0, "Refresh value in seconds")
	cmd.Flags().Int64("retry-time", 0, "Retry time in seconds")
	cmd.Flags().Int64("expire-time", 0, "Expire time in seconds")
	cmd.Flags().Int64("minimum-ttl", 0, "Minimum TTL in seconds")
	cmd.MarkFlagRequired("zone-name")

	return cmd
}

func runUpdateSoa(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	zoneName, _ := cmd.Flags().GetString("zone-name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	set, err := clients.RecordSets.Get(cmd.Context(), resourceGroup, zoneName, "@", armdns.RecordTypeSOA)
	if err != nil {
		return fmt.Errorf("failed to get SOA record for zone %q: %w", zoneName, err)
	}
	if set.Properties == nil || set.Properties.SoaRecord == nil {
		return fmt.Errorf("zone %q has no SOA record", zoneName)
	}
	soa := set.Properties.SoaRecord

	if cmd.Flags().Changed("host") {
		v, _ := cmd.Flags().GetString("host")
		soa.Host = to.Ptr(v)
	}
	if cmd.Flags().Changed("email") {
		v, _ := cmd.Flags().GetString("email")
		soa.Email = to.Ptr(v)
	}
	if cmd.Flags().Changed("serial-number") {
		v, _ := cmd.Flags().GetInt64("serial-number")
		soa.SerialNumber = to.Ptr(v)
	}
	if cmd.Flags().Changed("refresh-time") {
		v, _ := cmd.Flags().GetInt64("refresh-time")
		soa.RefreshTime = to.Ptr(v)
	}
	if cmd.Flags().Changed("retry-time") {
		v, _ := cmd.Flags().GetInt64("retry-time")
		soa.RetryTime = to.Ptr(v)
	}
	if cmd.Flags().Changed("expire-time") {
		v, _ := cmd.Flags().GetInt64("expire-time")
		soa.ExpireTime = to.Ptr(v)
	}
	if cmd.Flags().Changed("minimum-ttl") {
		v, _ := cmd.Flags().GetInt64("minimum-ttl")
		soa.MinimumTTL = to.Ptr(v)
	}

	ref := recordSetRef{resourceGroup: resourceGroup, zone: zoneName, name: "@"}
	return saveRecordSet(cmd, clients, ref, armdns.RecordTypeSOA, set,
		fmt.Sprintf("Updated SOA record for zone %s.", zoneName))
}
