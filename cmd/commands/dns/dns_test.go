package dns

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/store"
)

type fakeZones struct {
	zones       map[string]armdns.Zone
	saved       *armdns.Zone
	ifNoneMatch string
	deleted     string
	started     string
}

func (f *fakeZones) Get(_ context.Context, _, name string) (armdns.Zone, error) {
	z, ok := f.zones[name]
	if !ok {
		return armdns.Zone{}, fmt.Errorf("zone %q not found", name)
	}
	return z, nil
}

func (f *fakeZones) CreateOrUpdate(_ context.Context, resourceGroup, name string, zone armdns.Zone, ifMatch, ifNoneMatch string) (armdns.Zone, error) {
	f.ifNoneMatch = ifNoneMatch
	if _, exists := f.zones[name]; exists && ifNoneMatch == "*" {
		return armdns.Zone{}, fmt.Errorf("zone %q already exists", name)
	}
	zone.ID = to.Ptr("/subscriptions/sub-1/resourceGroups/" + resourceGroup + "/providers/Microsoft.Network/dnszones/" + name)
	zone.Name = to.Ptr(name)
	if zone.Properties == nil {
		zone.Properties = &armdns.ZoneProperties{
			NameServers: []*string{to.Ptr("ns1-01.azure-dns.com."), to.Ptr("ns2-01.azure-dns.net.")},
		}
	}
	if f.zones == nil {
		f.zones = map[string]armdns.Zone{}
	}
	f.zones[name] = zone
	f.saved = &zone
	return zone, nil
}

func (f *fakeZones) DeleteAndWait(_ context.Context, _, name string) error {
	f.deleted = name
	return nil
}

func (f *fakeZones) StartDelete(_ context.Context, _, name string) error {
	f.started = name
	return nil
}

func (f *fakeZones) List(_ context.Context) ([]*armdns.Zone, error) {
	var out []*armdns.Zone
	for name := range f.zones {
		z := f.zones[name]
		out = append(out, &z)
	}
	return out, nil
}

func (f *fakeZones) ListByResourceGroup(ctx context.Context, _ string) ([]*armdns.Zone, error) {
	return f.List(ctx)
}

func rsKey(name string, recordType armdns.RecordType) string {
	return name + "|" + string(recordType)
}

type fakeRecordSets struct {
	sets        map[string]armdns.RecordSet
	zoneSets    []*armdns.RecordSet
	saved       *armdns.RecordSet
	savedName   string
	savedType   armdns.RecordType
	ifMatch     string
	ifNoneMatch string
	deleted     string
	listedType  armdns.RecordType
}

func (f *fakeRecordSets) Get(_ context.Context, _, _, name string, recordType armdns.RecordType) (armdns.RecordSet, error) {
	s, ok := f.sets[rsKey(name, recordType)]
	if !ok {
		return armdns.RecordSet{}, fmt.Errorf("record set %q not found", name)
	}
	return s, nil
}

func (f *fakeRecordSets) CreateOrUpdate(_ context.Context, resourceGroup, zone, name string, recordType armdns.RecordType, set armdns.RecordSet, ifMatch, ifNoneMatch string) (armdns.RecordSet, error) {
	f.ifMatch = ifMatch
	f.ifNoneMatch = ifNoneMatch
	set.ID = to.Ptr("/subscriptions/sub-1/resourceGroups/" + resourceGroup +
		"/providers/Microsoft.Network/dnszones/" + zone + "/" + string(recordType) + "/" + name)
	set.Name = to.Ptr(name)
	set.Type = to.Ptr("Microsoft.Network/dnszones/" + string(recordType))
	if f.sets == nil {
		f.sets = map[string]armdns.RecordSet{}
	}
	f.sets[rsKey(name, recordType)] = set
	f.saved = &set
	f.savedName = name
	f.savedType = recordType
	return set, nil
}

func (f *fakeRecordSets) Delete(_ context.Context, _, _, name string, recordType armdns.RecordType) error {
	f.deleted = rsKey(name, recordType)
	delete(f.sets, rsKey(name, recordType))
	return nil
}

func (f *fakeRecordSets) ListByZone(_ context.Context, _, _ string) ([]*armdns.RecordSet, error) {
	return f.zoneSets, nil
}

func (f *fakeRecordSets) ListByType(_ context.Context, _, _ string, recordType armdns.RecordType) ([]*armdns.RecordSet, error) {
	f.listedType = recordType
	var out []*armdns.RecordSet
	for _, set := range f.zoneSets {
		if strings.EqualFold(strings.TrimPrefix(armutilValue(set.Type), "Microsoft.Network/dnszones/"), string(recordType)) {
			out = append(out, set)
		}
	}
	return out, nil
}

func armutilValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

type fakes struct {
	zones      *fakeZones
	recordSets *fakeRecordSets
}

func useFakes(t *testing.T) *fakes {
	t.Helper()
	f := &fakes{
		zones:      &fakeZones{},
		recordSets: &fakeRecordSets{},
	}
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	cli.SetClientsFactory(func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
		return &azure.Clients{
			Zones:      f.zones,
			RecordSets: f.recordSets,
		}, &azure.Session{SubscriptionID: "sub-1"}, nil
	})
	t.Cleanup(cli.ResetClientsFactory)
	return f
}

func execDNS(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestZoneCreateNeverOverwrites(t *testing.T) {
	f := useFakes(t)

	stdout, _, err := execDNS(t, "zone", "create", "-g", "my-rg", "-n", "example.com")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if f.zones.ifNoneMatch != "*" {
		t.Errorf("ifNoneMatch = %q, want *", f.zones.ifNoneMatch)
	}
	if !strings.Contains(stdout, "Created zone example.com.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
	if !strings.Contains(stdout, "ns1-01.azure-dns.com.") {
		t.Errorf("expected name servers in stdout:\n%s", stdout)
	}

	_, _, err = execDNS(t, "zone", "create", "-g", "my-rg", "-n", "example.com")
	if err == nil || !strings.Contains(err.Error(), `failed to create zone "example.com"`) {
		t.Fatalf("expected create of existing zone to fail, got %v", err)
	}
}

func TestZoneListShowsCounts(t *testing.T) {
	f := useFakes(t)
	f.zones.zones = map[string]armdns.Zone{
		"example.com": {
			ID:   to.Ptr("/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Network/dnszones/example.com"),
			Name: to.Ptr("example.com"),
			Properties: &armdns.ZoneProperties{
				NumberOfRecordSets: to.Ptr(int64(12)),
				NameServers:        []*string{to.Ptr("ns1-01.azure-dns.com."), to.Ptr("ns2-01.azure-dns.net.")},
			},
		},
		"example.org": {
			ID:   to.Ptr("/subscriptions/sub-1/resourceGroups/other-rg/providers/Microsoft.Network/dnszones/example.org"),
			Name: to.Ptr("example.org"),
		},
	}

	stdout, _, err := execDNS(t, "zone", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"NAME", "example.com", "my-rg", "12", "example.org", "other-rg"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestZoneDelete(t *testing.T) {
	f := useFakes(t)

	stdout, _, err := execDNS(t, "zone", "delete", "-g", "my-rg", "-n", "example.com", "--yes")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if f.zones.deleted != "example.com" {
		t.Errorf("DeleteAndWait called with %q", f.zones.deleted)
	}
	if !strings.Contains(stdout, "Deleted zone example.com.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestZoneDeleteNoWaitRecordsOperation(t *testing.T) {
	f := useFakes(t)
	store.SetPath(filepath.Join(t.TempDir(), "operations.db"))
	t.Cleanup(store.ResetPath)

	stdout, stderr, err := execDNS(t, "zone", "delete", "-g", "my-rg", "-n", "example.com", "--yes", "--no-wait")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if f.zones.started != "example.com" {
		t.Errorf("StartDelete called with %q", f.zones.started)
	}
	if f.zones.deleted != "" {
		t.Errorf("DeleteAndWait should not be called, got %q", f.zones.deleted)
	}
	if !strings.Contains(stdout, "Started delete for example.com") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
	if !strings.Contains(stderr, "aznet operation resume") {
		t.Errorf("expected resume hint on stderr:\n%s", stderr)
	}
}

func TestZoneExportToFile(t *testing.T) {
	f := useFakes(t)
	f.recordSets.zoneSets = []*armdns.RecordSet{
		{
			Name: to.Ptr("@"),
			Type: to.Ptr("Microsoft.Network/dnszones/SOA"),
			Properties: &armdns.RecordSetProperties{
				TTL: to.Ptr(int64(3600)),
				SoaRecord: &armdns.SoaRecord{
					Host:         to.Ptr("ns1-01.azure-dns.com."),
					Email:        to.Ptr("hostmaster.example.com."),
					SerialNumber: to.Ptr(int64(1)),
					RefreshTime:  to.Ptr(int64(3600)),
					RetryTime:    to.Ptr(int64(300)),
					ExpireTime:   to.Ptr(int64(2419200)),
					MinimumTTL:   to.Ptr(int64(300)),
				},
			},
		},
		{
			Name: to.Ptr("www"),
			Type: to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{
				TTL:      to.Ptr(int64(300)),
				ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "example.com.zone")
	stdout, _, err := execDNS(t, "zone", "export", "-g", "my-rg", "-n", "example.com", "--file", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout, "Exported zone example.com to "+path) {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "$ORIGIN example.com.") {
		t.Errorf("exported file missing origin:\n%s", text)
	}
	if !strings.Contains(text, "10.0.0.4") {
		t.Errorf("exported file missing A record:\n%s", text)
	}
}

func TestZoneImportMergesApexAndReportsProgress(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("@", armdns.RecordTypeSOA): {
			Name: to.Ptr("@"),
			Type: to.Ptr("Microsoft.Network/dnszones/SOA"),
			Properties: &armdns.RecordSetProperties{
				TTL: to.Ptr(int64(3600)),
				SoaRecord: &armdns.SoaRecord{
					Host:  to.Ptr("ns1-01.azure-dns.com."),
					Email: to.Ptr("azuredns-hostmaster.microsoft.com"),
				},
			},
		},
		rsKey("@", armdns.RecordTypeNS): {
			Name: to.Ptr("@"),
			Type: to.Ptr("Microsoft.Network/dnszones/NS"),
			Properties: &armdns.RecordSetProperties{
				TTL: to.Ptr(int64(172800)),
				NsRecords: []*armdns.NsRecord{
					{Nsdname: to.Ptr("ns1-01.azure-dns.com.")},
					{Nsdname: to.Ptr("ns2-01.azure-dns.net.")},
					{Nsdname: to.Ptr("ns3-01.azure-dns.org.")},
					{Nsdname: to.Ptr("ns4-01.azure-dns.info.")},
				},
			},
		},
	}

	zoneText := strings.Join([]string{
		"$ORIGIN example.com.",
		"@ 3600 IN SOA ns1.example.com. hostmaster.example.com. 1 7200 900 1209600 86400",
		"@ 600 IN NS ns-custom.example.com.",
		"www 300 IN A 10.0.0.4",
		"www 300 IN A 10.0.0.5",
	}, "\n") + "\n"
	path := filepath.Join(t.TempDir(), "example.com.zone")
	if err := os.WriteFile(path, []byte(zoneText), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execDNS(t, "zone", "import", "-g", "my-rg", "-n", "example.com", "--file", path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	for _, want := range []string{
		"== BEGINNING ZONE IMPORT: example.com ==",
		"(1/4) Imported 1 records of type 'soa' and name '@'",
		"(2/4) Imported 1 records of type 'ns' and name '@'",
		"(4/4) Imported 2 records of type 'a' and name 'www'",
		"== 4/4 RECORDS IMPORTED SUCCESSFULLY: 'example.com' ==",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}

	soa := f.recordSets.sets[rsKey("@", armdns.RecordTypeSOA)]
	if got := armutilValue(soa.Properties.SoaRecord.Host); got != "ns1-01.azure-dns.com." {
		t.Errorf("SOA host = %q, want service-managed host kept", got)
	}
	if got := armutilValue(soa.Properties.SoaRecord.Email); got != "hostmaster.example.com." {
		t.Errorf("SOA email = %q, want imported email", got)
	}

	ns := f.recordSets.sets[rsKey("@", armdns.RecordTypeNS)]
	if len(ns.Properties.NsRecords) != 4 {
		t.Fatalf("apex NS records = %d, want the 4 service-assigned name servers", len(ns.Properties.NsRecords))
	}
	if got := armutilValue(ns.Properties.NsRecords[0].Nsdname); got != "ns1-01.azure-dns.com." {
		t.Errorf("apex NS value = %q, want service-assigned name server", got)
	}
	if got := *ns.Properties.TTL; got != 600 {
		t.Errorf("apex NS TTL = %d, want imported 600", got)
	}

	www := f.recordSets.sets[rsKey("www", armdns.RecordTypeA)]
	if len(www.Properties.ARecords) != 2 {
		t.Errorf("www A records = %d, want 2", len(www.Properties.ARecords))
	}
	if got := *www.Properties.TTL; got != 300 {
		t.Errorf("www TTL = %d, want 300", got)
	}
}

func TestZoneImportWarnsOnUnsupportedRecords(t *testing.T) {
	useFakes(t)

	zoneText := strings.Join([]string{
		"$ORIGIN example.com.",
		"www 300 IN A 10.0.0.4",
		"sig 300 IN NAPTR 100 10 \"u\" \"sip\" \"\" .",
	}, "\n") + "\n"
	path := filepath.Join(t.TempDir(), "example.com.zone")
	if err := os.WriteFile(path, []byte(zoneText), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execDNS(t, "zone", "import", "-g", "my-rg", "-n", "example.com", "--file", path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(stderr, "Warning: unsupported record type NAPTR") {
		t.Errorf("expected unsupported type warning on stderr:\n%s", stderr)
	}
	if !strings.Contains(stderr, "(1/1) Imported 1 records of type 'a' and name 'www'") {
		t.Errorf("expected A record imported:\n%s", stderr)
	}
}

func TestRecordSetCreateDefaults(t *testing.T) {
	f := useFakes(t)

	stdout, _, err := execDNS(t, "record-set", "create", "-g", "my-rg", "-z", "example.com", "-n", "www", "--type", "a", "--metadata", "owner=web")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if f.recordSets.savedType != armdns.RecordTypeA {
		t.Errorf("saved type = %q, want A", f.recordSets.savedType)
	}
	if got := *f.recordSets.saved.Properties.TTL; got != 3600 {
		t.Errorf("TTL = %d, want default 3600", got)
	}
	if got := armutilValue(f.recordSets.saved.Properties.Metadata["owner"]); got != "web" {
		t.Errorf("metadata owner = %q, want web", got)
	}
	if f.recordSets.ifNoneMatch != "" {
		t.Errorf("ifNoneMatch = %q, want empty", f.recordSets.ifNoneMatch)
	}
	if !strings.Contains(stdout, "Created record set www in zone example.com.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestRecordSetCreateIfNoneMatch(t *testing.T) {
	f := useFakes(t)

	_, _, err := execDNS(t, "record-set", "create", "-g", "my-rg", "-z", "example.com", "-n", "www", "--type", "A", "--if-none-match")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if f.recordSets.ifNoneMatch != "*" {
		t.Errorf("ifNoneMatch = %q, want *", f.recordSets.ifNoneMatch)
	}
}

func TestRecordSetCreateRejectsBadType(t *testing.T) {
	useFakes(t)

	_, _, err := execDNS(t, "record-set", "create", "-g", "my-rg", "-z", "example.com", "-n", "www", "--type", "ALIAS")
	if err == nil || !strings.Contains(err.Error(), `unsupported record type "ALIAS"`) {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestRecordSetListTable(t *testing.T) {
	f := useFakes(t)
	f.recordSets.zoneSets = []*armdns.RecordSet{
		{
			Name: to.Ptr("www"),
			Type: to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{
				TTL:      to.Ptr(int64(300)),
				ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}, {IPv4Address: to.Ptr("10.0.0.5")}},
			},
		},
		{
			Name: to.Ptr("mail"),
			Type: to.Ptr("Microsoft.Network/dnszones/MX"),
			Properties: &armdns.RecordSetProperties{
				TTL:       to.Ptr(int64(3600)),
				MxRecords: []*armdns.MxRecord{{Preference: to.Ptr(int32(10)), Exchange: to.Ptr("mx1.example.com.")}},
			},
		},
	}

	stdout, _, err := execDNS(t, "record-set", "list", "-g", "my-rg", "-z", "example.com")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"NAME", "TYPE", "RECORDS", "www", "A", "300", "2", "mail", "MX", "3600", "1"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRecordSetListFiltersByType(t *testing.T) {
	f := useFakes(t)
	f.recordSets.zoneSets = []*armdns.RecordSet{
		{
			Name:       to.Ptr("www"),
			Type:       to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}}},
		},
		{
			Name:       to.Ptr("mail"),
			Type:       to.Ptr("Microsoft.Network/dnszones/MX"),
			Properties: &armdns.RecordSetProperties{MxRecords: []*armdns.MxRecord{{Preference: to.Ptr(int32(10)), Exchange: to.Ptr("mx1.example.com.")}}},
		},
	}

	stdout, _, err := execDNS(t, "record-set", "list", "-g", "my-rg", "-z", "example.com", "--type", "A")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if f.recordSets.listedType != armdns.RecordTypeA {
		t.Errorf("listed type = %q, want A", f.recordSets.listedType)
	}
	if strings.Contains(stdout, "mail") {
		t.Errorf("MX record set should be filtered out:\n%s", stdout)
	}
}

func TestRecordSetUpdatePassesEtag(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("www", armdns.RecordTypeA): {
			Name: to.Ptr("www"),
			Etag: to.Ptr("etag-1"),
			Type: to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{
				TTL:      to.Ptr(int64(300)),
				ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}},
			},
		},
	}

	stdout, _, err := execDNS(t, "record-set", "update", "-g", "my-rg", "-z", "example.com", "-n", "www", "--type", "A", "--metadata", "env=prod")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if f.recordSets.ifMatch != "etag-1" {
		t.Errorf("ifMatch = %q, want etag-1", f.recordSets.ifMatch)
	}
	if got := armutilValue(f.recordSets.saved.Properties.Metadata["env"]); got != "prod" {
		t.Errorf("metadata env = %q, want prod", got)
	}
	if len(f.recordSets.saved.Properties.ARecords) != 1 {
		t.Errorf("records should be untouched")
	}
	if !strings.Contains(stdout, "Updated record set www.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestAddACreatesRecordSet(t *testing.T) {
	f := useFakes(t)

	stdout, _, err := execDNS(t, "record", "add-a", "-g", "my-rg", "-z", "example.com", "-n", "www", "--ipv4-address", "10.0.0.4")
	if err != nil {
		t.Fatalf("add-a failed: %v", err)
	}
	saved := f.recordSets.saved
	if got := *saved.Properties.TTL; got != 3600 {
		t.Errorf("TTL = %d, want default 3600", got)
	}
	if len(saved.Properties.ARecords) != 1 || armutilValue(saved.Properties.ARecords[0].IPv4Address) != "10.0.0.4" {
		t.Errorf("unexpected A records: %+v", saved.Properties.ARecords)
	}
	if !strings.Contains(stdout, "Added A record 10.0.0.4 to www.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestAddAAppendsAndKeepsTTL(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("www", armdns.RecordTypeA): {
			Name: to.Ptr("www"),
			Type: to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{
				TTL:      to.Ptr(int64(300)),
				ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}},
			},
		},
	}

	_, _, err := execDNS(t, "record", "add-a", "-g", "my-rg", "-z", "example.com", "-n", "www", "--ipv4-address", "10.0.0.5")
	if err != nil {
		t.Fatalf("add-a failed: %v", err)
	}
	saved := f.recordSets.saved
	if got := *saved.Properties.TTL; got != 300 {
		t.Errorf("TTL = %d, want existing 300 kept", got)
	}
	if len(saved.Properties.ARecords) != 2 {
		t.Errorf("A records = %d, want 2", len(saved.Properties.ARecords))
	}
}

func TestAddCnameReplacesAlias(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("alias", armdns.RecordTypeCNAME): {
			Name: to.Ptr("alias"),
			Type: to.Ptr("Microsoft.Network/dnszones/CNAME"),
			Properties: &armdns.RecordSetProperties{
				TTL:         to.Ptr(int64(300)),
				CnameRecord: &armdns.CnameRecord{Cname: to.Ptr("old.example.com")},
			},
		},
	}

	_, _, err := execDNS(t, "record", "add-cname", "-g", "my-rg", "-z", "example.com", "-n", "alias", "--cname", "new.example.com")
	if err != nil {
		t.Fatalf("add-cname failed: %v", err)
	}
	if got := armutilValue(f.recordSets.saved.Properties.CnameRecord.Cname); got != "new.example.com" {
		t.Errorf("cname = %q, want new.example.com", got)
	}
}

func TestAddTxtChunksLongValue(t *testing.T) {
	f := useFakes(t)

	long := strings.Repeat("x", 300)
	_, _, err := execDNS(t, "record", "add-txt", "-g", "my-rg", "-z", "example.com", "-n", "spf", "--value", long, "--value", `tail\part`)
	if err != nil {
		t.Fatalf("add-txt failed: %v", err)
	}
	records := f.recordSets.saved.Properties.TxtRecords
	if len(records) != 1 {
		t.Fatalf("TXT records = %d, want 1", len(records))
	}
	chunks := records[0].Value
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if got := len(armutilValue(chunks[0])); got != 255 {
		t.Errorf("first chunk length = %d, want 255", got)
	}
	rest := armutilValue(chunks[1])
	if strings.Contains(rest, `\`) {
		t.Errorf("backslashes should be dropped: %q", rest)
	}
	if got := len(long) + len("tailpart") - 255; len(rest) != got {
		t.Errorf("second chunk length = %d, want %d", len(rest), got)
	}
}

func TestRemoveRecordMissWarns(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("www", armdns.RecordTypeA): {
			Name: to.Ptr("www"),
			Type: to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{
				TTL:      to.Ptr(int64(300)),
				ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}},
			},
		},
	}

	_, stderr, err := execDNS(t, "record", "remove-a", "-g", "my-rg", "-z", "example.com", "-n", "www", "--ipv4-address", "10.9.9.9")
	if err != nil {
		t.Fatalf("remove-a failed: %v", err)
	}
	if !strings.Contains(stderr, `Record "10.9.9.9" not found.`) {
		t.Errorf("expected not-found warning on stderr:\n%s", stderr)
	}
	if f.recordSets.saved != nil {
		t.Errorf("record set should not be saved on a miss")
	}
	if f.recordSets.deleted != "" {
		t.Errorf("record set should not be deleted on a miss")
	}
}

func TestRemoveLastRecordDeletesSet(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("www", armdns.RecordTypeA): {
			Name: to.Ptr("www"),
			Type: to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{
				TTL:      to.Ptr(int64(300)),
				ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}},
			},
		},
	}

	stdout, stderr, err := execDNS(t, "record", "remove-a", "-g", "my-rg", "-z", "example.com", "-n", "www", "--ipv4-address", "10.0.0.4")
	if err != nil {
		t.Fatalf("remove-a failed: %v", err)
	}
	if f.recordSets.deleted != rsKey("www", armdns.RecordTypeA) {
		t.Errorf("deleted = %q, want www A record set", f.recordSets.deleted)
	}
	if !strings.Contains(stderr, "Removing empty a record set: www") {
		t.Errorf("expected empty set log on stderr:\n%s", stderr)
	}
	if !strings.Contains(stdout, "Removed A record from www.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestRemoveKeepEmptyRecordSetSaves(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("www", armdns.RecordTypeA): {
			Name: to.Ptr("www"),
			Type: to.Ptr("Microsoft.Network/dnszones/A"),
			Properties: &armdns.RecordSetProperties{
				TTL:      to.Ptr(int64(300)),
				ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}},
			},
		},
	}

	_, _, err := execDNS(t, "record", "remove-a", "-g", "my-rg", "-z", "example.com", "-n", "www", "--ipv4-address", "10.0.0.4", "--keep-empty-record-set")
	if err != nil {
		t.Fatalf("remove-a failed: %v", err)
	}
	if f.recordSets.deleted != "" {
		t.Errorf("record set should not be deleted")
	}
	if f.recordSets.saved == nil {
		t.Fatal("record set should be saved")
	}
	if len(f.recordSets.saved.Properties.ARecords) != 0 {
		t.Errorf("A records = %d, want 0", len(f.recordSets.saved.Properties.ARecords))
	}
}

func TestRemoveCnameChecksValue(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("alias", armdns.RecordTypeCNAME): {
			Name: to.Ptr("alias"),
			Type: to.Ptr("Microsoft.Network/dnszones/CNAME"),
			Properties: &armdns.RecordSetProperties{
				TTL:         to.Ptr(int64(300)),
				CnameRecord: &armdns.CnameRecord{Cname: to.Ptr("real.example.com")},
			},
		},
	}

	_, stderr, err := execDNS(t, "record", "remove-cname", "-g", "my-rg", "-z", "example.com", "-n", "alias", "--cname", "other.example.com")
	if err != nil {
		t.Fatalf("remove-cname failed: %v", err)
	}
	if !strings.Contains(stderr, `Record "other.example.com" not found.`) {
		t.Errorf("expected not-found warning on stderr:\n%s", stderr)
	}
	if f.recordSets.deleted != "" || f.recordSets.saved != nil {
		t.Errorf("mismatched cname must not delete or save")
	}

	_, _, err = execDNS(t, "record", "remove-cname", "-g", "my-rg", "-z", "example.com", "-n", "alias", "--cname", "real.example.com")
	if err != nil {
		t.Fatalf("remove-cname failed: %v", err)
	}
	if f.recordSets.deleted != rsKey("alias", armdns.RecordTypeCNAME) {
		t.Errorf("deleted = %q, want alias CNAME record set", f.recordSets.deleted)
	}
}

func TestRemoveTxtMatchesMultiset(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("spf", armdns.RecordTypeTXT): {
			Name: to.Ptr("spf"),
			Type: to.Ptr("Microsoft.Network/dnszones/TXT"),
			Properties: &armdns.RecordSetProperties{
				TTL: to.Ptr(int64(300)),
				TxtRecords: []*armdns.TxtRecord{
					{Value: []*string{to.Ptr("part-b"), to.Ptr("part-a")}},
					{Value: []*string{to.Ptr("other")}},
				},
			},
		},
	}

	_, _, err := execDNS(t, "record", "remove-txt", "-g", "my-rg", "-z", "example.com", "-n", "spf", "--value", "part-a", "--value", "part-b")
	if err != nil {
		t.Fatalf("remove-txt failed: %v", err)
	}
	saved := f.recordSets.saved
	if saved == nil {
		t.Fatal("record set should be saved")
	}
	if len(saved.Properties.TxtRecords) != 1 {
		t.Fatalf("TXT records = %d, want 1", len(saved.Properties.TxtRecords))
	}
	if got := armutilValue(saved.Properties.TxtRecords[0].Value[0]); got != "other" {
		t.Errorf("surviving record = %q, want other", got)
	}
}

func TestUpdateSoaProvidedFieldsOnly(t *testing.T) {
	f := useFakes(t)
	f.recordSets.sets = map[string]armdns.RecordSet{
		rsKey("@", armdns.RecordTypeSOA): {
			Name: to.Ptr("@"),
			Type: to.Ptr("Microsoft.Network/dnszones/SOA"),
			Properties: &armdns.RecordSetProperties{
				TTL: to.Ptr(int64(3600)),
				SoaRecord: &armdns.SoaRecord{
					Host:        to.Ptr("ns1-01.azure-dns.com."),
					Email:       to.Ptr("azuredns-hostmaster.microsoft.com"),
					RetryTime:   to.Ptr(int64(300)),
					RefreshTime: to.Ptr(int64(3600)),
				},
			},
		},
	}

	stdout, _, err := execDNS(t, "record", "update-soa", "-g", "my-rg", "-z", "example.com", "--retry-time", "600")
	if err != nil {
		t.Fatalf("update-soa failed: %v", err)
	}
	soa := f.recordSets.saved.Properties.SoaRecord
	if got := *soa.RetryTime; got != 600 {
		t.Errorf("retry time = %d, want 600", got)
	}
	if got := armutilValue(soa.Email); got != "azuredns-hostmaster.microsoft.com" {
		t.Errorf("email = %q, want untouched", got)
	}
	if got := *soa.RefreshTime; got != 3600 {
		t.Errorf("refresh time = %d, want untouched", got)
	}
	if !strings.Contains(stdout, "Updated SOA record for zone example.com.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}
