package discovery

import (
	"sort"
	"strings"

	"wifi_locator/core-go/internal/probe"
)

// canonicalizeAdapterNames trims, lowercases, dedupes and sorts adapter names.
// Names not in the catalog are returned separately.
func canonicalizeAdapterNames(value any) (known []string, unknown []string) {
	var raw []string

	switch v := value.(type) {
	case []string:
		raw = v
	case []any:
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil, nil
	}

	catalog := map[string]struct{}{}
	for _, n := range probe.Names() {
		catalog[n] = struct{}{}
	}

	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		s := strings.ToLower(strings.TrimSpace(entry))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := catalog[s]; !ok {
			unknown = append(unknown, s)
			continue
		}
		known = append(known, s)
	}
	sort.Strings(known)
	sort.Strings(unknown)
	return known, unknown
}

// ValidateAdapterNames returns the names that are not in the catalog.
func ValidateAdapterNames(names []string) []string {
	_, unknown := canonicalizeAdapterNames(names)
	return unknown
}

// selectAdapters filters the catalog, keeping priority order.
func selectAdapters(catalog []probe.Adapter, disabled, only []string) []probe.Adapter {
	skip := make(map[string]struct{}, len(disabled))
	for _, n := range disabled {
		skip[n] = struct{}{}
	}
	keep := make(map[string]struct{}, len(only))
	for _, n := range only {
		keep[n] = struct{}{}
	}

	out := make([]probe.Adapter, 0, len(catalog))
	for _, a := range catalog {
		if _, ok := skip[a.Name]; ok {
			continue
		}
		if len(keep) > 0 {
			if _, ok := keep[a.Name]; !ok {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
