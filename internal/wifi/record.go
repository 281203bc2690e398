package wifi

import "strings"

// UnknownSSID marks a record whose source cannot associate a network name with
// the access point address. It is distinct from an empty SSID, which means the
// network does not broadcast a name.
const UnknownSSID = "<unknown network name>"

// Record is a single access point observed by a scan.
type Record struct {
	SSID   string `json:"ssid"`
	BSSID  string `json:"bssid"`
	Signal string `json:"signal"`
}

// IsValidBSSID reports whether candidate is six colon-separated pairs of hex
// digits. It does not normalize case.
func IsValidBSSID(candidate string) bool {
	if len(candidate) != 17 || strings.Count(candidate, ":") != 5 {
		return false
	}
	parts := strings.Split(candidate, ":")
	if len(parts) != 6 {
		return false
	}
	for _, p := range parts {
		if len(p) != 2 {
			return false
		}
		for i := 0; i < len(p); i++ {
			if !isHexDigit(p[i]) {
				return false
			}
		}
	}
	return true
}

// NormalizeBSSID returns the canonical upper-case form of a BSSID.
func NormalizeBSSID(bssid string) string {
	return strings.ToUpper(strings.TrimSpace(bssid))
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
	case c >= 'a' && c <= 'f':
	case c >= 'A' && c <= 'F':
	default:
		return false
	}
	return true
}
