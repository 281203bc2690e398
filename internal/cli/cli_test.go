package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wifi_locator/core-go/internal/discovery"
	"wifi_locator/core-go/internal/probe"
)

type fakeRunner struct {
	outputs map[string]string
}

func (f fakeRunner) Run(ctx context.Context, name string, args ...string) probe.Output {
	if out, ok := f.outputs[name]; ok {
		return probe.Output{Stdout: out}
	}
	return probe.Output{Err: probe.ErrToolUnavailable}
}

func (f fakeRunner) ReadFile(ctx context.Context, path string) probe.Output {
	return probe.Output{Err: probe.ErrToolUnavailable}
}

func withService(t *testing.T, goos string, outputs map[string]string) {
	t.Helper()
	color.NoColor = true

	prev := buildService
	buildService = func(cmd *cobra.Command) (*discovery.Service, error) {
		return discovery.New(zerolog.Nop(), discovery.Options{
			GOOS:        goos,
			SysClassNet: t.TempDir(),
			Runner:      fakeRunner{outputs: outputs},
		}, nil), nil
	}
	t.Cleanup(func() { buildService = prev })
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const nmcliOut = "BSSID              SIGNAL  SSID\n" +
	"aa:bb:cc:dd:ee:01  80      Office Net\n" +
	"AA:BB:CC:DD:EE:02  35      --\n"

func TestScanCmd_PrintsRecords(t *testing.T) {
	withService(t, "linux", map[string]string{"nmcli": nmcliOut})

	out, err := execute(ScanCmd(), "--building", "HQ", "--room", "2.01")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, want := range []string{"✓ 2 access point(s) via nmcli", "AA:BB:CC:DD:EE:01", "Office Net", "(hidden)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestScanCmd_ExhaustedPrintsDiagnostic(t *testing.T) {
	withService(t, "linux", nil)

	out, err := execute(ScanCmd())
	if !errors.Is(err, discovery.ErrNoDataAvailable) {
		t.Fatalf("expected ErrNoDataAvailable, got %v", err)
	}
	for _, want := range []string{"✗ No BSSID found", "nmcli", "result:  unavailable", "result:  no_interfaces", "Required tools: nmcli, iwlist, or iw"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestScanCmd_CanceledContextReportsPartialDiagnostic(t *testing.T) {
	withService(t, "linux", map[string]string{"nmcli": nmcliOut})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := ScanCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(ctx)

	if !errors.Is(err, discovery.ErrNoDataAvailable) {
		t.Fatalf("expected ErrNoDataAvailable, got %v", err)
	}
	if !strings.Contains(out.String(), "✗ Scan canceled") {
		t.Fatalf("expected canceled diagnostic in output:\n%s", out.String())
	}
}

func TestScanCmd_JSON(t *testing.T) {
	withService(t, "linux", map[string]string{"nmcli": nmcliOut})

	out, err := execute(ScanCmd(), "--json", "--only", "nmcli")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var res discovery.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.Outcome != discovery.OutcomeSucceeded || len(res.Records) != 2 || res.Records[1].SSID != "" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestScanCmd_RejectsBadFlags(t *testing.T) {
	withService(t, "linux", nil)

	if _, err := execute(ScanCmd(), "--preset", "turbo"); err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Fatalf("expected preset error, got %v", err)
	}
	if _, err := execute(ScanCmd(), "--only", "nmcli,bogus"); err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected adapter error, got %v", err)
	}
}

func TestAdaptersCmd(t *testing.T) {
	withService(t, "darwin", nil)

	out, err := execute(AdaptersCmd())
	if err != nil {
		t.Fatalf("adapters: %v", err)
	}
	if !strings.Contains(out, "Adapters for darwin:") {
		t.Fatalf("missing header:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case probe.AdapterAirport, probe.AdapterSystemProfiler:
			if fields[1] != "active" {
				t.Fatalf("expected %s active, got %q", fields[0], line)
			}
		case probe.AdapterNmcli, probe.AdapterNetsh:
			if fields[1] != "n/a" {
				t.Fatalf("expected %s n/a, got %q", fields[0], line)
			}
		}
	}
}

func TestInterfacesCmd(t *testing.T) {
	withService(t, "linux", map[string]string{"ip": "2: wlan0: <BROADCAST,MULTICAST,UP> mtu 1500\n"})

	out, err := execute(InterfacesCmd())
	if err != nil {
		t.Fatalf("interfaces: %v", err)
	}
	if !strings.Contains(out, "Found via ip_link") || !strings.Contains(out, "wlan0") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	withService(t, "linux", nil)
	out, err = execute(InterfacesCmd(), "--json")
	if err != nil {
		t.Fatalf("interfaces: %v", err)
	}
	if !strings.Contains(out, `"tier":"none"`) || !strings.Contains(out, `"interfaces":[]`) {
		t.Fatalf("unexpected json: %s", out)
	}
}
