package ifaces

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"wifi_locator/core-go/internal/probe"
)

const DefaultSysClassNet = "/sys/class/net"

// Interface is a network interface believed to be wireless-capable.
type Interface struct {
	Name string `json:"name"`
}

// Tier names the enumeration strategy that produced a result.
type Tier string

const (
	TierSysfs      Tier = "sysfs"
	TierKnownNames Tier = "known_names"
	TierIPLink     Tier = "ip_link"
	TierNone       Tier = "none"
)

// knownNames are conventional wireless interface names tested when the sysfs
// listing itself is unavailable.
var knownNames = []string{
	"wlan0", "wlan1", "wlp2s0", "wlp3s0", "wlp4s0", "wlp1s0",
	"wlo1", "wlx", "wifi0", "ath0", "ra0",
}

var wirelessPrefixes = []string{"wl", "wifi"}

// Enumerator discovers wireless interfaces on the host.
type Enumerator struct {
	SysClassNet string
	Runner      probe.Runner
}

// List returns wireless interfaces using the first strategy that finds any:
// sysfs entries exposing a wireless marker, then conventional names tested for
// the same marker, then `ip link show` names with wireless prefixes.
func (e Enumerator) List(ctx context.Context) ([]Interface, Tier) {
	root := e.SysClassNet
	if strings.TrimSpace(root) == "" {
		root = DefaultSysClassNet
	}

	if out := fromSysfs(root); len(out) > 0 {
		return out, TierSysfs
	}
	if out := fromKnownNames(root); len(out) > 0 {
		return out, TierKnownNames
	}
	if e.Runner != nil {
		res := e.Runner.Run(ctx, "ip", "link", "show")
		if res.Err == nil {
			if out := ParseIPLink(res.Stdout); len(out) > 0 {
				return out, TierIPLink
			}
		}
	}
	return nil, TierNone
}

// Names flattens interfaces to their names.
func Names(in []Interface) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.Name)
	}
	return out
}

func fromSysfs(root string) []Interface {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var out []Interface
	for _, entry := range entries {
		if hasWirelessMarker(root, entry.Name()) {
			out = append(out, Interface{Name: entry.Name()})
		}
	}
	return out
}

func fromKnownNames(root string) []Interface {
	var out []Interface
	for _, name := range knownNames {
		if hasWirelessMarker(root, name) {
			out = append(out, Interface{Name: name})
		}
	}
	return out
}

func hasWirelessMarker(root, name string) bool {
	for _, marker := range []string{"wireless", "phy80211"} {
		if _, err := os.Stat(filepath.Join(root, name, marker)); err == nil {
			return true
		}
	}
	return false
}

// ParseIPLink extracts wireless-looking interface names from `ip link show`.
func ParseIPLink(text string) []Interface {
	var out []Interface
	seen := map[string]struct{}{}
	for _, line := range strings.Split(text, "\n") {
		// Interface lines look like "3: wlp2s0: <BROADCAST,...> mtu 1500".
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimSuffix(fields[1], ":")
		if i := strings.Index(name, "@"); i >= 0 {
			name = name[:i]
		}
		if !hasWirelessPrefix(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, Interface{Name: name})
	}
	return out
}

func hasWirelessPrefix(name string) bool {
	for _, p := range wirelessPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
