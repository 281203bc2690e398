package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"wifi_locator/core-go/internal/discovery"
	"wifi_locator/core-go/internal/wifi"
)

func renderRecords(w io.Writer, res discovery.Result) {
	fmt.Fprintf(w, "%s %d access point(s) via %s\n\n",
		color.New(color.FgHiGreen).Sprint("✓"), len(res.Records), color.New(color.FgCyan).Sprint(res.Adapter))
	fmt.Fprintf(w, "%-17s  %-8s  %s\n", "BSSID", "SIGNAL", "SSID")
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, r := range res.Records {
		fmt.Fprintf(w, "%-17s  %-8s  %s\n", r.BSSID, r.Signal, ssidLabel(r.SSID))
	}
}

func ssidLabel(ssid string) string {
	switch ssid {
	case "":
		return color.New(color.FgHiBlack).Sprint("(hidden)")
	case wifi.UnknownSSID:
		return color.New(color.FgHiBlack).Sprint(ssid)
	default:
		return ssid
	}
}

func renderDiagnostic(w io.Writer, d *discovery.Diagnostic) {
	if d == nil {
		return
	}
	fmt.Fprintln(w, color.New(color.FgRed).Sprintf("✗ %s", d.Message))

	for _, a := range d.Attempts {
		fmt.Fprintf(w, "\n%s %s\n", attemptMarker(a.Result), color.New(color.Bold).Sprint(a.Adapter))
		if a.Command != "" {
			fmt.Fprintf(w, "  command: %s\n", a.Command)
		}
		fmt.Fprintf(w, "  result:  %s\n", a.Result)
		if a.Error != "" {
			fmt.Fprintf(w, "  error:   %s\n", a.Error)
		}
		for _, n := range a.Notes {
			fmt.Fprintf(w, "  note:    %s\n", n)
		}
		writeBlock(w, "stdout", a.Stdout)
		writeBlock(w, "stderr", a.Stderr)
	}

	if len(d.Hints) > 0 {
		fmt.Fprintln(w)
		for _, h := range d.Hints {
			fmt.Fprintln(w, color.New(color.FgYellow).Sprintf("⚠ %s", h))
		}
	}
}

func attemptMarker(result string) string {
	switch result {
	case "skipped":
		return color.New(color.FgHiBlack).Sprint("-")
	case "empty":
		return color.New(color.FgYellow).Sprint("⚠")
	default:
		return color.New(color.FgRed).Sprint("✗")
	}
}

func writeBlock(w io.Writer, label, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(w, "    | %s\n", line)
	}
}
