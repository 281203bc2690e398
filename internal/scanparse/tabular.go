package scanparse

import "strings"

// TabularLayout maps whitespace-separated columns to record fields.
//
// Column indexes are zero-based. A negative SignalColumn means the listing has
// no signal column. When SSIDToEnd is set the SSID starts at SSIDColumn and
// absorbs every remaining field, which lets names containing spaces survive as
// long as the SSID is the last column.
type TabularLayout struct {
	BSSIDColumn  int
	SSIDColumn   int
	SignalColumn int
	SSIDToEnd    bool
}

// ParseTabular parses a one-network-per-line listing with a header line.
func ParseTabular(text string, layout TabularLayout) Result {
	var res Result

	for i, line := range splitLines(text) {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if layout.BSSIDColumn < 0 || layout.BSSIDColumn >= len(fields) {
			res.notef("line %d: missing bssid column %d: %q", i+1, layout.BSSIDColumn, abbreviate(line))
			continue
		}

		bssid := fields[layout.BSSIDColumn]

		var ssid string
		if layout.SSIDColumn >= 0 && layout.SSIDColumn < len(fields) {
			if layout.SSIDToEnd {
				ssid = strings.Join(fields[layout.SSIDColumn:], " ")
			} else {
				ssid = fields[layout.SSIDColumn]
			}
		}

		var signal string
		if layout.SignalColumn >= 0 && layout.SignalColumn < len(fields) {
			signal = fields[layout.SignalColumn]
		}

		if !res.accept(ssid, bssid, signal) {
			res.notef("line %d: %q is not a bssid", i+1, abbreviate(bssid))
		}
	}

	return res
}
