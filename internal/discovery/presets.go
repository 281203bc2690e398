package discovery

import (
	"strings"
	"time"
)

const (
	ScanPresetFast   = "fast"
	ScanPresetNormal = "normal"
	ScanPresetDeep   = "deep"
)

func canonicalizeScanPreset(value any) string {
	switch v := value.(type) {
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		switch s {
		case ScanPresetFast, ScanPresetNormal, ScanPresetDeep:
			return s
		default:
			return ScanPresetNormal
		}
	default:
		return ScanPresetNormal
	}
}

// IsKnownPreset reports whether value names a preset (empty counts as normal).
func IsKnownPreset(value string) bool {
	s := strings.ToLower(strings.TrimSpace(value))
	return s == "" || canonicalizeScanPreset(s) == s
}

type scanBudget struct {
	adapterTimeout time.Duration
	maxRuntime     time.Duration
}

func minDuration(a, b time.Duration) time.Duration {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func maxDuration(a, b time.Duration) time.Duration {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a > b {
		return a
	}
	return b
}

// applyScanPreset returns the budget adjusted for preset. The input is not
// modified so concurrent scans with different presets never interfere.
func applyScanPreset(b scanBudget, preset string) scanBudget {
	switch preset {
	case ScanPresetFast:
		b.adapterTimeout = minDuration(b.adapterTimeout, 2*time.Second)
		b.maxRuntime = minDuration(b.maxRuntime, 10*time.Second)
	case ScanPresetDeep:
		b.adapterTimeout = maxDuration(b.adapterTimeout, 15*time.Second)
		b.maxRuntime = maxDuration(b.maxRuntime, 45*time.Second)
	default:
		// normal: preserve configured values
	}
	return b
}
