package scanparse

import (
	"strings"

	"wifi_locator/core-go/internal/wifi"
)

// KeyedLayout describes a free-form listing where values follow marker tokens.
type KeyedLayout struct {
	// AddressMarker introduces an access point address, e.g. "Address:" or "BSSID".
	AddressMarker string
	// SSIDMarker introduces a network name. Empty when the source cannot
	// associate names with addresses; records then carry wifi.UnknownSSID.
	SSIDMarker string
	// SignalMarker introduces a signal reading. Optional.
	SignalMarker string
	// Separator, when set, splits the text after a marker and the value is
	// whatever follows its first occurrence ("BSSID 1   : aa:bb:..").
	Separator string
	// SSIDHeadsGroup is set when a name line precedes, and applies to, every
	// address that follows it until the next name line.
	SSIDHeadsGroup bool
}

type keyedCandidate struct {
	line    int
	bssid   string
	ssid    string
	ssidSet bool
	signal  string
}

// ParseKeyed parses marker-prefixed multi-line blocks.
func ParseKeyed(text string, layout KeyedLayout) Result {
	var res Result
	if layout.AddressMarker == "" {
		res.notef("keyed layout has no address marker")
		return res
	}

	var (
		current   *keyedCandidate
		groupSSID string
		haveGroup bool
	)

	flush := func() {
		if current == nil {
			return
		}
		ssid := current.ssid
		if layout.SSIDMarker == "" {
			ssid = wifi.UnknownSSID
		}
		if !res.accept(ssid, current.bssid, current.signal) {
			res.notef("line %d: %q is not a bssid", current.line, abbreviate(current.bssid))
		}
		current = nil
	}

	for i, line := range splitLines(text) {
		if v, ok := valueAfter(line, layout.AddressMarker, layout.Separator); ok {
			flush()
			current = &keyedCandidate{line: i + 1, bssid: v}
			if layout.SSIDHeadsGroup && haveGroup {
				current.ssid = groupSSID
				current.ssidSet = true
			}
			continue
		}

		if layout.SSIDMarker != "" {
			if v, ok := valueAfter(line, layout.SSIDMarker, layout.Separator); ok {
				if layout.SSIDHeadsGroup {
					flush()
					groupSSID = v
					haveGroup = true
				} else if current != nil && !current.ssidSet {
					current.ssid = v
					current.ssidSet = true
				}
				continue
			}
		}

		if layout.SignalMarker != "" && current != nil && current.signal == "" {
			if v, ok := valueAfter(line, layout.SignalMarker, layout.Separator); ok {
				current.signal = v
			}
		}
	}
	flush()

	return res
}

// valueAfter locates marker in line and returns the trimmed remainder.
func valueAfter(line, marker, sep string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(marker):]
	if sep != "" {
		j := strings.Index(rest, sep)
		if j < 0 {
			return "", false
		}
		rest = rest[j+len(sep):]
	}
	return strings.TrimSpace(rest), true
}
