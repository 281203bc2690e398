package probe

import (
	"path"
	"sort"

	"wifi_locator/core-go/internal/scanparse"
)

const (
	AdapterNmcli          = "nmcli"
	AdapterIwlist         = "iwlist"
	AdapterIw             = "iw"
	AdapterProcWireless   = "proc-wireless"
	AdapterAirport        = "airport"
	AdapterAirportShell   = "airport-shell"
	AdapterSystemProfiler = "system-profiler"
	AdapterNetsh          = "netsh"
	AdapterNetshShell     = "netsh-shell"
)

const (
	DefaultProcWirelessPath = "/proc/net/wireless"

	airportPath = "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport"
)

// CatalogOptions overrides host paths used by the catalog.
type CatalogOptions struct {
	ProcWirelessPath string
}

// Catalog returns every known adapter, grouped by platform, in priority order.
// Each call builds fresh values.
func Catalog(opts CatalogOptions) []Adapter {
	procPath := opts.ProcWirelessPath
	if procPath == "" {
		procPath = DefaultProcWirelessPath
	}

	return []Adapter{
		{
			Name:      AdapterNmcli,
			Platforms: []string{"linux"},
			Command:   "nmcli",
			Args:      []string{"-f", "BSSID,SIGNAL,SSID", "device", "wifi", "list"},
			Parser: scanparse.Spec{
				Format:  scanparse.FormatTabular,
				Tabular: scanparse.TabularLayout{BSSIDColumn: 0, SignalColumn: 1, SSIDColumn: 2, SSIDToEnd: true},
			},
		},
		{
			Name:      AdapterIwlist,
			Platforms: []string{"linux"},
			Command:   "iwlist",
			Args:      []string{InterfacePlaceholder, "scan"},
			Scoped:    true,
			Parser: scanparse.Spec{
				Format: scanparse.FormatKeyed,
				Keyed: scanparse.KeyedLayout{
					AddressMarker: "Address:",
					SSIDMarker:    "ESSID:",
					SignalMarker:  "Signal level=",
				},
			},
		},
		{
			Name:      AdapterIw,
			Platforms: []string{"linux"},
			Command:   "iw",
			Args:      []string{"dev", InterfacePlaceholder, "scan"},
			Scoped:    true,
			Parser:    scanparse.Spec{Format: scanparse.FormatSection},
		},
		{
			Name:      AdapterProcWireless,
			Platforms: []string{"linux"},
			ReadPath:  procPath,
			Parser:    scanparse.Spec{Format: scanparse.FormatPresence},
		},
		{
			Name:      AdapterAirport,
			Platforms: []string{"darwin"},
			Command:   airportPath,
			Args:      []string{"-s"},
			Parser: scanparse.Spec{
				Format:  scanparse.FormatTabular,
				Tabular: scanparse.TabularLayout{SSIDColumn: 0, BSSIDColumn: 1, SignalColumn: 2},
			},
		},
		{
			// Hardened-runtime builds may not exec the private framework binary directly.
			Name:      AdapterAirportShell,
			Platforms: []string{"darwin"},
			Command:   "/bin/sh",
			Args:      []string{"-c", airportPath + " -s"},
			Parser: scanparse.Spec{
				Format:  scanparse.FormatTabular,
				Tabular: scanparse.TabularLayout{SSIDColumn: 0, BSSIDColumn: 1, SignalColumn: 2},
			},
		},
		{
			Name:      AdapterSystemProfiler,
			Platforms: []string{"darwin"},
			Command:   "system_profiler",
			Args:      []string{"SPAirPortDataType"},
			Parser: scanparse.Spec{
				Format: scanparse.FormatKeyed,
				Keyed: scanparse.KeyedLayout{
					AddressMarker: "BSSID:",
					SignalMarker:  "Signal / Noise:",
				},
			},
		},
		{
			Name:      AdapterNetsh,
			Platforms: []string{"windows"},
			Command:   "netsh",
			Args:      []string{"wlan", "show", "networks", "mode=bssid"},
			Parser:    netshSpec,
		},
		{
			Name:      AdapterNetshShell,
			Platforms: []string{"windows"},
			Command:   "cmd",
			Args:      []string{"/C", "netsh wlan show networks mode=bssid"},
			Parser:    netshSpec,
		},
	}
}

var netshSpec = scanparse.Spec{
	Format: scanparse.FormatKeyed,
	Keyed: scanparse.KeyedLayout{
		AddressMarker:  "BSSID",
		SSIDMarker:     "SSID",
		SignalMarker:   "Signal",
		Separator:      ":",
		SSIDHeadsGroup: true,
	},
}

// Names lists every adapter name in the catalog, sorted.
func Names() []string {
	adapters := Catalog(CatalogOptions{})
	out := make([]string, 0, len(adapters))
	for _, a := range adapters {
		out = append(out, a.Name)
	}
	sort.Strings(out)
	return out
}

// RequiredTools lists the executables the catalog relies on for goos.
func RequiredTools(goos string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, a := range Catalog(CatalogOptions{}) {
		if !a.Applicable(goos) || a.ReadPath != "" || a.Command == "/bin/sh" || a.Command == "cmd" {
			continue
		}
		tool := path.Base(a.Command)
		if _, ok := seen[tool]; ok {
			continue
		}
		seen[tool] = struct{}{}
		out = append(out, tool)
	}
	return out
}
