// Package zonefile converts between RFC 1035 zone files and ARM DNS
// record sets. Parse groups raw records into record sets the way the
// service stores them; Write renders record sets back out with the
// zone apex first.
package zonefile

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"

	"nathanbeddoewebdev/aznet/internal/armutil"
)

// RecordSetEntry is one record set assembled from a zone file.
type RecordSetEntry struct {
	Name string // relative owner name, "@" at the apex
	Type armdns.RecordType
	Set  armdns.RecordSet
}

// RecordCount counts the records held by e.
func (e *RecordSetEntry) RecordCount() int {
	return RecordCount(&e.Set)
}

// ParseRecordType maps a user-supplied record type name to the ARM type.
// SPF is accepted as an alias for TXT.
func ParseRecordType(s string) (armdns.RecordType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return armdns.RecordTypeA, nil
	case "AAAA":
		return armdns.RecordTypeAAAA, nil
	case "CNAME":
		return armdns.RecordTypeCNAME, nil
	case "MX":
		return armdns.RecordTypeMX, nil
	case "NS":
		return armdns.RecordTypeNS, nil
	case "PTR":
		return armdns.RecordTypePTR, nil
	case "SOA":
		return armdns.RecordTypeSOA, nil
	case "SRV":
		return armdns.RecordTypeSRV, nil
	case "TXT", "SPF":
		return armdns.RecordTypeTXT, nil
	}
	return "", fmt.Errorf("unsupported record type %q", s)
}

// ShortType trims the ARM resource type prefix from a record set type,
// leaving just the record type letters.
func ShortType(armType *string) string {
	t := armutil.Value(armType)
	if i := strings.LastIndexByte(t, '/'); i >= 0 {
		return t[i+1:]
	}
	return t
}

// RecordCount counts the records held by a record set across all record
// type slices plus the CNAME and SOA singletons.
func RecordCount(set *armdns.RecordSet) int {
	if set == nil || set.Properties == nil {
		return 0
	}
	p := set.Properties
	n := len(p.ARecords) + len(p.AaaaRecords) + len(p.CaaRecords) +
		len(p.MxRecords) + len(p.NsRecords) + len(p.PtrRecords) +
		len(p.SrvRecords) + len(p.TxtRecords)
	if p.CnameRecord != nil {
		n++
	}
	if p.SoaRecord != nil {
		n++
	}
	return n
}
