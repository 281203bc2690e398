// Package scanparse turns the text output of Wi-Fi scanning tools into
// candidate access point records.
//
// Every parser is total: malformed lines are skipped and described in
// Result.Notes, never returned as errors.
package scanparse

import (
	"fmt"
	"strings"

	"wifi_locator/core-go/internal/wifi"
)

// Format identifies the output dialect a parser understands.
type Format string

const (
	FormatTabular  Format = "tabular"
	FormatKeyed    Format = "keyed"
	FormatSection  Format = "section"
	FormatPresence Format = "presence"
)

// Result holds the candidates a parser accepted and notes about lines it skipped.
type Result struct {
	Candidates []wifi.Record
	Notes      []string
}

// Spec binds a format to the fixed layout an adapter expects.
type Spec struct {
	Format  Format
	Tabular TabularLayout
	Keyed   KeyedLayout
}

// Parse dispatches to the parser for s.Format.
func (s Spec) Parse(text string) Result {
	switch s.Format {
	case FormatTabular:
		return ParseTabular(text, s.Tabular)
	case FormatKeyed:
		return ParseKeyed(text, s.Keyed)
	case FormatSection:
		return ParseSection(text)
	case FormatPresence:
		return ParsePresence(text)
	default:
		return Result{Notes: []string{fmt.Sprintf("no parser for format %q", s.Format)}}
	}
}

func (r *Result) notef(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// accept validates and appends a candidate. It returns false when the address
// does not look like a BSSID.
func (r *Result) accept(ssid, bssid, signal string) bool {
	bssid = strings.TrimSpace(bssid)
	if !wifi.IsValidBSSID(bssid) {
		return false
	}
	r.Candidates = append(r.Candidates, wifi.Record{
		SSID:   normalizeSSID(ssid),
		BSSID:  wifi.NormalizeBSSID(bssid),
		Signal: strings.TrimSpace(signal),
	})
	return true
}

// normalizeSSID maps the placeholders tools print for hidden networks to the
// empty string. The unknown-name sentinel passes through untouched.
func normalizeSSID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == wifi.UnknownSSID {
		return s
	}
	s = strings.Trim(s, `"`)
	switch s {
	case "--", "<hidden>":
		return ""
	}
	if strings.Trim(strings.ReplaceAll(s, `\x00`, ""), "\x00") == "" {
		return ""
	}
	return s
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func abbreviate(line string) string {
	const max = 60
	line = strings.TrimSpace(line)
	if len(line) <= max {
		return line
	}
	return line[:max] + "..."
}
