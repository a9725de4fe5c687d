package zonefile

import (
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
)

func recordSet(name, shortType string, ttl int64, props *armdns.RecordSetProperties) *armdns.RecordSet {
	props.TTL = to.Ptr(ttl)
	return &armdns.RecordSet{
		Name:       to.Ptr(name),
		Type:       to.Ptr("Microsoft.Network/dnszones/" + shortType),
		Properties: props,
	}
}

func sampleSets() []*armdns.RecordSet {
	return []*armdns.RecordSet{
		recordSet("www", "A", 300, &armdns.RecordSetProperties{
			ARecords: []*armdns.ARecord{
				{IPv4Address: to.Ptr("192.0.2.1")},
				{IPv4Address: to.Ptr("192.0.2.2")},
			},
		}),
		recordSet("@", "NS", 172800, &armdns.RecordSetProperties{
			NsRecords: []*armdns.NsRecord{{Nsdname: to.Ptr("ns1-01.azure-dns.com")}},
		}),
		recordSet("@", "SOA", 3600, &armdns.RecordSetProperties{
			SoaRecord: &armdns.SoaRecord{
				Host:         to.Ptr("ns1-01.azure-dns.com"),
				Email:        to.Ptr("azuredns-hostmaster.microsoft.com"),
				SerialNumber: to.Ptr[int64](1),
				RefreshTime:  to.Ptr[int64](3600),
				RetryTime:    to.Ptr[int64](300),
				ExpireTime:   to.Ptr[int64](2419200),
				MinimumTTL:   to.Ptr[int64](300),
			},
		}),
		recordSet("mail", "MX", 3600, &armdns.RecordSetProperties{
			MxRecords: []*armdns.MxRecord{{Preference: to.Ptr[int32](10), Exchange: to.Ptr("mail.example.com")}},
		}),
		recordSet("txt", "TXT", 3600, &armdns.RecordSetProperties{
			TxtRecords: []*armdns.TxtRecord{{Value: []*string{to.Ptr("hello world")}}},
		}),
	}
}

func TestWriteHeaderAndDirectives(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	defer func() { now = restore }()

	out := Write("example.com", sampleSets())

	for _, want := range []string{
		"; Exported zone file from aznet\n",
		"; Zone: example.com\n",
		"; Date: 2026-03-14T09:30:00Z\n",
		"$ORIGIN example.com.\n",
		"$TTL 3600\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOmitsTTLDirectiveWithoutSOA(t *testing.T) {
	out := Write("example.com", []*armdns.RecordSet{
		recordSet("www", "A", 300, &armdns.RecordSetProperties{
			ARecords: []*armdns.ARecord{{IPv4Address: to.Ptr("192.0.2.1")}},
		}),
	})
	if strings.Contains(out, "$TTL") {
		t.Errorf("output has a $TTL directive without an apex SOA:\n%s", out)
	}
}

func TestWriteOrdering(t *testing.T) {
	out := Write("example.com", sampleSets())

	soa := strings.Index(out, "IN SOA")
	ns := strings.Index(out, "IN NS")
	mx := strings.Index(out, "IN MX")
	a := strings.Index(out, "IN A ")
	if soa == -1 || ns == -1 || mx == -1 || a == -1 {
		t.Fatalf("missing record lines:\n%s", out)
	}
	if !(soa < ns && ns < mx && mx < a) {
		t.Errorf("record order wrong (SOA %d, NS %d, MX %d, A %d):\n%s", soa, ns, mx, a, out)
	}
}

func TestWriteRecordData(t *testing.T) {
	out := Write("example.com", sampleSets())

	for _, want := range []string{
		"ns1-01.azure-dns.com. azuredns-hostmaster.microsoft.com. 1 3600 300 2419200 300",
		"10 mail.example.com.",
		`"hello world"`,
		"192.0.2.1",
		"192.0.2.2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	out := Write("example.com", sampleSets())

	entries, warnings, err := Parse(out, "example.com")
	if err != nil {
		t.Fatalf("Parse of exported file failed: %v\n%s", err, out)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(entries) != 5 {
		t.Errorf("round trip produced %d record sets, want 5", len(entries))
	}
}
