package discovery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"wifi_locator/core-go/internal/probe"
)

const DefaultDiagnosticBytes = 2048

// Report builds the diagnostic payload returned when the chain is exhausted.
func Report(attempts []AttemptReport, goos string, canceled bool) *Diagnostic {
	msg := "No BSSID found - check permissions and wireless tools"
	if canceled {
		msg = "Scan canceled before any adapter produced data"
	}
	if attempts == nil {
		attempts = []AttemptReport{}
	}
	return &Diagnostic{
		Message:  msg,
		Attempts: attempts,
		Hints:    remediationHints(goos),
		Canceled: canceled,
	}
}

func newAttemptReport(a probe.Adapter, att probe.Attempt, notes []string, result string, limit int) AttemptReport {
	if limit <= 0 {
		limit = DefaultDiagnosticBytes
	}
	stdout, cutOut := truncate(att.Stdout, limit)
	stderr, cutErr := truncate(att.Stderr, limit)

	r := AttemptReport{
		Adapter:       a.Name,
		Command:       a.CommandLine(),
		Applicable:    att.Applicable,
		Invoked:       att.Invoked,
		ExitSucceeded: att.ExitSucceeded,
		Result:        result,
		Notes:         notes,
		Stdout:        stdout,
		Stderr:        stderr,
		Truncated:     cutOut || cutErr,
		DurationMS:    att.Duration.Milliseconds(),
	}
	if att.Err != nil {
		r.Error = att.Err.Error()
	}
	return r
}

func truncate(s string, limit int) (string, bool) {
	if len(s) <= limit {
		return s, false
	}
	cut := s[:limit]
	// Drop a partial rune at the cut.
	for i := 0; i < utf8.UTFMax-1 && len(cut) > 0; i++ {
		if r, size := utf8.DecodeLastRuneInString(cut); r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return fmt.Sprintf("%s... [%d bytes truncated]", cut, len(s)-len(cut)), true
}

func remediationHints(goos string) []string {
	var hints []string

	tools := probe.RequiredTools(goos)
	switch len(tools) {
	case 0:
		hints = append(hints, fmt.Sprintf("No scanning tools are known for %s", goos))
	case 1:
		hints = append(hints, "Required tools: "+tools[0])
	default:
		hints = append(hints, fmt.Sprintf("Required tools: %s, or %s", strings.Join(tools[:len(tools)-1], ", "), tools[len(tools)-1]))
	}

	switch goos {
	case "linux":
		hints = append(hints,
			"You may need to run with sudo for some commands (iwlist/iw scans need CAP_NET_ADMIN)",
			"Check that a wireless interface exists under /sys/class/net and is up",
		)
	case "darwin":
		hints = append(hints, "Wi-Fi scanning may require Location Services permission for this app")
	case "windows":
		hints = append(hints, "Ensure the WLAN AutoConfig service is running and location access is enabled")
	}
	return hints
}
