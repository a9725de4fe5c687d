package zonefile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"

	"nathanbeddoewebdev/aznet/internal/armutil"
)

var now = time.Now

type recordLine struct {
	name  string
	ttl   int64
	rtype string
	rdata string
}

// Write renders record sets as a zone file. The apex SOA comes first,
// then NS sets, then the rest sorted by name and type with "@" ahead of
// named records. Absolute names carry a trailing dot.
func Write(zone string, sets []*armdns.RecordSet) string {
	zone = strings.TrimSuffix(zone, ".")

	ordered := make([]*armdns.RecordSet, 0, len(sets))
	for _, set := range sets {
		if set == nil || set.Properties == nil {
			continue
		}
		ordered = append(ordered, set)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ri, rj := typeRank(ordered[i]), typeRank(ordered[j]); ri != rj {
			return ri < rj
		}
		if ni, nj := sortName(ordered[i]), sortName(ordered[j]); ni != nj {
			return ni < nj
		}
		return ShortType(ordered[i].Type) < ShortType(ordered[j].Type)
	})

	var lines []recordLine
	for _, set := range ordered {
		rtype := ShortType(set.Type)
		name := armutil.Value(set.Name)
		ttl := armutil.Value(set.Properties.TTL)
		for _, rdata := range renderRecords(rtype, set.Properties) {
			lines = append(lines, recordLine{name: name, ttl: ttl, rtype: rtype, rdata: rdata})
		}
	}

	width := 1
	for _, l := range lines {
		if len(l.name) > width {
			width = len(l.name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "; Exported zone file from aznet\n")
	fmt.Fprintf(&b, "; Zone: %s\n", zone)
	fmt.Fprintf(&b, "; Date: %s\n", now().UTC().Format(time.RFC3339))
	b.WriteString("\n")
	fmt.Fprintf(&b, "$ORIGIN %s.\n", zone)
	if soa := apexSOA(ordered); soa != nil {
		fmt.Fprintf(&b, "$TTL %d\n", armutil.Value(soa.Properties.TTL))
	}
	b.WriteString("\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "%-*s %6d IN %-5s %s\n", width, l.name, l.ttl, l.rtype, l.rdata)
	}
	return b.String()
}

func typeRank(set *armdns.RecordSet) int {
	switch ShortType(set.Type) {
	case "SOA":
		return 0
	case "NS":
		return 1
	}
	return 2
}

// sortName keys "@" as the empty string so the apex sorts first.
func sortName(set *armdns.RecordSet) string {
	name := armutil.Value(set.Name)
	if name == "@" {
		return ""
	}
	return name
}

func apexSOA(sets []*armdns.RecordSet) *armdns.RecordSet {
	for _, set := range sets {
		if ShortType(set.Type) == "SOA" && armutil.Value(set.Name) == "@" {
			return set
		}
	}
	return nil
}

func renderRecords(rtype string, p *armdns.RecordSetProperties) []string {
	var out []string
	switch rtype {
	case "A":
		for _, r := range p.ARecords {
			out = append(out, armutil.Value(r.IPv4Address))
		}
	case "AAAA":
		for _, r := range p.AaaaRecords {
			out = append(out, armutil.Value(r.IPv6Address))
		}
	case "CNAME":
		if r := p.CnameRecord; r != nil {
			out = append(out, absolute(armutil.Value(r.Cname)))
		}
	case "MX":
		for _, r := range p.MxRecords {
			out = append(out, fmt.Sprintf("%d %s", armutil.Value(r.Preference), absolute(armutil.Value(r.Exchange))))
		}
	case "NS":
		for _, r := range p.NsRecords {
			out = append(out, absolute(armutil.Value(r.Nsdname)))
		}
	case "PTR":
		for _, r := range p.PtrRecords {
			out = append(out, absolute(armutil.Value(r.Ptrdname)))
		}
	case "SOA":
		if r := p.SoaRecord; r != nil {
			out = append(out, fmt.Sprintf("%s %s %d %d %d %d %d",
				absolute(armutil.Value(r.Host)), absolute(armutil.Value(r.Email)),
				armutil.Value(r.SerialNumber), armutil.Value(r.RefreshTime),
				armutil.Value(r.RetryTime), armutil.Value(r.ExpireTime),
				armutil.Value(r.MinimumTTL)))
		}
	case "SRV":
		for _, r := range p.SrvRecords {
			out = append(out, fmt.Sprintf("%d %d %d %s",
				armutil.Value(r.Priority), armutil.Value(r.Weight),
				armutil.Value(r.Port), absolute(armutil.Value(r.Target))))
		}
	case "TXT":
		for _, r := range p.TxtRecords {
			out = append(out, quoteChunks(r.Value))
		}
	}
	return out
}

func absolute(name string) string {
	if name == "" {
		return name
	}
	return strings.TrimSuffix(name, ".") + "."
}

func quoteChunks(chunks []*string) string {
	quoted := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		quoted = append(quoted, fmt.Sprintf("%q", armutil.Value(chunk)))
	}
	return strings.Join(quoted, " ")
}
