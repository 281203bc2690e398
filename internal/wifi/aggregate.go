package wifi

import "sort"

// Aggregate normalizes, validates, orders and deduplicates records.
//
// Records are ordered by canonical BSSID. When several records share a BSSID
// the first one encountered wins, regardless of signal strength.
func Aggregate(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		r.BSSID = NormalizeBSSID(r.BSSID)
		if !IsValidBSSID(r.BSSID) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BSSID < out[j].BSSID
	})

	deduped := out[:0]
	seen := make(map[string]struct{}, len(out))
	for _, r := range out {
		if _, ok := seen[r.BSSID]; ok {
			continue
		}
		seen[r.BSSID] = struct{}{}
		deduped = append(deduped, r)
	}
	if len(deduped) == 0 {
		return nil
	}
	return deduped
}
