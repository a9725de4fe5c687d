package tui

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/google/go-cmp/cmp"
)

func TestRecordValues_ProjectsEachType(t *testing.T) {
	set := &armdns.RecordSet{
		Properties: &armdns.RecordSetProperties{
			ARecords:    []*armdns.ARecord{{IPv4Address: to.Ptr("10.0.0.4")}},
			AaaaRecords: []*armdns.AaaaRecord{{IPv6Address: to.Ptr("2001:db8::1")}},
			MxRecords:   []*armdns.MxRecord{{Preference: to.Ptr(int32(10)), Exchange: to.Ptr("mx1.example.com.")}},
			SrvRecords: []*armdns.SrvRecord{{
				Priority: to.Ptr(int32(1)),
				Weight:   to.Ptr(int32(5)),
				Port:     to.Ptr(int32(8080)),
				Target:   to.Ptr("app.example.com."),
			}},
			TxtRecords: []*armdns.TxtRecord{{Value: []*string{to.Ptr("v=spf1"), to.Ptr(" -all")}}},
		},
	}

	got := recordValues(set)

	want := []string{
		"10.0.0.4",
		"2001:db8::1",
		"10 mx1.example.com.",
		"1 5 8080 app.example.com.",
		`"v=spf1 -all"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected record values (-want +got):\n%s", diff)
	}
}

func TestRecordValues_SingletonRecords(t *testing.T) {
	set := &armdns.RecordSet{
		Properties: &armdns.RecordSetProperties{
			CnameRecord: &armdns.CnameRecord{Cname: to.Ptr("origin.example.net")},
		},
	}

	got := recordValues(set)

	want := []string{"origin.example.net"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected record values (-want +got):\n%s", diff)
	}

	if values := recordValues(&armdns.RecordSet{}); values != nil {
		t.Errorf("expected no values for an empty set, got %v", values)
	}
}

func TestRecordPreview_CompressesMultipleRecords(t *testing.T) {
	set := &armdns.RecordSet{
		Properties: &armdns.RecordSetProperties{
			ARecords: []*armdns.ARecord{
				{IPv4Address: to.Ptr("10.0.0.4")},
				{IPv4Address: to.Ptr("10.0.0.5")},
				{IPv4Address: to.Ptr("10.0.0.6")},
			},
		},
	}

	if got := recordPreview(set); got != "10.0.0.4 (+2 more)" {
		t.Errorf("preview = %q", got)
	}

	if got := recordPreview(&armdns.RecordSet{}); got != "-" {
		t.Errorf("empty preview = %q, want -", got)
	}
}

func TestApplyFilter_CyclesTypes(t *testing.T) {
	aSet := &armdns.RecordSet{
		Name: to.Ptr("www"),
		Type: to.Ptr("Microsoft.Network/dnszones/A"),
	}
	mxSet := &armdns.RecordSet{
		Name: to.Ptr("mail"),
		Type: to.Ptr("Microsoft.Network/dnszones/MX"),
	}

	m := newRecordSetBrowser("example.com", nil)
	m.sets = []*armdns.RecordSet{aSet, mxSet}
	m.cursor = 1

	m.applyFilter()
	if len(m.filtered) != 2 {
		t.Fatalf("unfiltered = %d sets, want 2", len(m.filtered))
	}

	m.typeFilter = "A"
	m.applyFilter()
	if len(m.filtered) != 1 || m.filtered[0] != aSet {
		t.Fatalf("A filter kept %d sets", len(m.filtered))
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}

	m.typeFilter = "TXT"
	m.applyFilter()
	if len(m.filtered) != 0 {
		t.Errorf("TXT filter kept %d sets, want 0", len(m.filtered))
	}
}
