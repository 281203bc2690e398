package scanparse

import "strings"

// ParseSection parses listings made of "BSS <mac>(on <iface>)" headers followed
// by indented attribute lines, as printed by iw.
func ParseSection(text string) Result {
	var res Result

	var (
		open      bool
		headerAt  int
		bssid     string
		ssid      string
		signal    string
		haveSSID  bool
		malformed bool
	)

	flush := func() {
		if !open {
			return
		}
		if !malformed && !res.accept(ssid, bssid, signal) {
			res.notef("line %d: %q is not a bssid", headerAt, abbreviate(bssid))
		}
		open, bssid, ssid, signal, haveSSID, malformed = false, "", "", "", false, false
	}

	for i, line := range splitLines(text) {
		// Headers start at column zero; indented "BSS Load:" attributes must not match.
		if strings.HasPrefix(line, "BSS ") {
			flush()
			open = true
			headerAt = i + 1
			fields := strings.Fields(line)
			if len(fields) < 2 {
				malformed = true
				res.notef("line %d: section header without address", i+1)
				continue
			}
			bssid = fields[1]
			if j := strings.Index(bssid, "("); j >= 0 {
				bssid = bssid[:j]
			}
			continue
		}
		if !open {
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case !haveSSID && strings.HasPrefix(trimmed, "SSID:"):
			ssid = strings.TrimPrefix(trimmed, "SSID:")
			haveSSID = true
		case signal == "" && strings.HasPrefix(trimmed, "signal:"):
			signal = strings.TrimSpace(strings.TrimPrefix(trimmed, "signal:"))
		}
	}
	flush()

	return res
}

// ParsePresence reads a /proc/net/wireless style table. It never yields
// candidates; the interfaces it lists are reported as notes.
func ParsePresence(text string) Result {
	var res Result

	for i, line := range splitLines(text) {
		// Two header lines precede the interface rows.
		if i < 2 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := strings.TrimSuffix(fields[0], ":")
		if name == "" || name == fields[0] {
			continue
		}
		res.notef("wireless interface present: %s", name)
	}
	if len(res.Notes) == 0 {
		res.notef("no wireless interfaces listed")
	}

	return res
}
