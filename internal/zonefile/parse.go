package zonefile

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/miekg/dns"
)

// Parse reads zone file text and groups its records into record sets
// keyed by (owner name, type). The group TTL is the minimum TTL seen in
// the group. SOA and CNAME sets hold a single record with later entries
// replacing earlier ones. Records outside the zone and record types the
// service does not store are skipped with a warning; warnings are
// returned for the caller to print.
func Parse(text, zone string) ([]*RecordSetEntry, []string, error) {
	origin := dns.CanonicalName(zone)

	var (
		entries  []*RecordSetEntry
		index    = map[string]*RecordSetEntry{}
		warnings []string
	)

	zp := dns.NewZoneParser(strings.NewReader(text), origin, "")
	zp.SetIncludeAllowed(false)

	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		name, inZone := relativeName(dns.CanonicalName(rr.Header().Name), origin)
		if !inZone {
			warnings = append(warnings, fmt.Sprintf("record %q is outside zone %q, skipping",
				strings.TrimSuffix(rr.Header().Name, "."), strings.TrimSuffix(zone, ".")))
			continue
		}

		recordType, supported := recordTypeOf(rr)
		if !supported {
			warnings = append(warnings, fmt.Sprintf("unsupported record type %s for %q, skipping",
				dns.TypeToString[rr.Header().Rrtype], name))
			continue
		}

		key := name + "|" + string(recordType)
		entry := index[key]
		if entry == nil {
			entry = &RecordSetEntry{
				Name: name,
				Type: recordType,
				Set: armdns.RecordSet{
					Properties: &armdns.RecordSetProperties{TTL: to.Ptr(int64(rr.Header().Ttl))},
				},
			}
			index[key] = entry
			entries = append(entries, entry)
		}
		appendRecord(entry.Set.Properties, rr)
		if ttl := int64(rr.Header().Ttl); ttl < *entry.Set.Properties.TTL {
			entry.Set.Properties.TTL = to.Ptr(ttl)
		}
	}
	if err := zp.Err(); err != nil {
		return nil, warnings, fmt.Errorf("parse zone file: %w", err)
	}

	return entries, warnings, nil
}

// relativeName rewrites a fully qualified owner name relative to the
// origin, with "@" standing for the apex.
func relativeName(owner, origin string) (string, bool) {
	if owner == origin {
		return "@", true
	}
	if origin == "." {
		return strings.TrimSuffix(owner, "."), true
	}
	if suffix := "." + origin; strings.HasSuffix(owner, suffix) {
		return strings.TrimSuffix(owner, suffix), true
	}
	return "", false
}

func recordTypeOf(rr dns.RR) (armdns.RecordType, bool) {
	switch rr.(type) {
	case *dns.A:
		return armdns.RecordTypeA, true
	case *dns.AAAA:
		return armdns.RecordTypeAAAA, true
	case *dns.CNAME:
		return armdns.RecordTypeCNAME, true
	case *dns.MX:
		return armdns.RecordTypeMX, true
	case *dns.NS:
		return armdns.RecordTypeNS, true
	case *dns.PTR:
		return armdns.RecordTypePTR, true
	case *dns.SOA:
		return armdns.RecordTypeSOA, true
	case *dns.SRV:
		return armdns.RecordTypeSRV, true
	case *dns.TXT, *dns.SPF:
		return armdns.RecordTypeTXT, true
	}
	return "", false
}

func appendRecord(props *armdns.RecordSetProperties, rr dns.RR) {
	switch r := rr.(type) {
	case *dns.A:
		props.ARecords = append(props.ARecords, &armdns.ARecord{IPv4Address: to.Ptr(r.A.String())})
	case *dns.AAAA:
		props.AaaaRecords = append(props.AaaaRecords, &armdns.AaaaRecord{IPv6Address: to.Ptr(r.AAAA.String())})
	case *dns.CNAME:
		props.CnameRecord = &armdns.CnameRecord{Cname: to.Ptr(r.Target)}
	case *dns.MX:
		props.MxRecords = append(props.MxRecords, &armdns.MxRecord{
			Preference: to.Ptr(int32(r.Preference)),
			Exchange:   to.Ptr(r.Mx),
		})
	case *dns.NS:
		props.NsRecords = append(props.NsRecords, &armdns.NsRecord{Nsdname: to.Ptr(r.Ns)})
	case *dns.PTR:
		props.PtrRecords = append(props.PtrRecords, &armdns.PtrRecord{Ptrdname: to.Ptr(r.Ptr)})
	case *dns.SOA:
		props.SoaRecord = &armdns.SoaRecord{
			Host:         to.Ptr(r.Ns),
			Email:        to.Ptr(r.Mbox),
			SerialNumber: to.Ptr(int64(r.Serial)),
			RefreshTime:  to.Ptr(int64(r.Refresh)),
			RetryTime:    to.Ptr(int64(r.Retry)),
			ExpireTime:   to.Ptr(int64(r.Expire)),
			MinimumTTL:   to.Ptr(int64(r.Minttl)),
		}
	case *dns.SRV:
		props.SrvRecords = append(props.SrvRecords, &armdns.SrvRecord{
			Priority: to.Ptr(int32(r.Priority)),
			Weight:   to.Ptr(int32(r.Weight)),
			Port:     to.Ptr(int32(r.Port)),
			Target:   to.Ptr(r.Target),
		})
	case *dns.TXT:
		props.TxtRecords = append(props.TxtRecords, txtRecord(r.Txt))
	case *dns.SPF:
		props.TxtRecords = append(props.TxtRecords, txtRecord(r.Txt))
	}
}

func txtRecord(chunks []string) *armdns.TxtRecord {
	rec := &armdns.TxtRecord{}
	for _, chunk := range chunks {
		rec.Value = append(rec.Value, to.Ptr(chunk))
	}
	return rec
}
