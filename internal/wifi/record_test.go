package wifi

import (
	"regexp"
	"testing"
)

var bssidPattern = regexp.MustCompile(`^[0-9A-Fa-f]{2}(:[0-9A-Fa-f]{2}){5}$`)

func TestIsValidBSSID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"AA:BB:CC:DD:EE:FF", true},
		{"aa:bb:cc:dd:ee:ff", true},
		{"00:1a:2B:3c:4D:5e", true},
		{"", false},
		{"AA:BB:CC:DD:EE", false},
		{"AA:BB:CC:DD:EE:FF:00", false},
		{"AA-BB-CC-DD-EE-FF", false},
		{"AAA:B:CC:DD:EE:FF", false},
		{"GG:BB:CC:DD:EE:FF", false},
		{"AA:BB:CC:DD:EE:F ", false},
		{" AA:BB:CC:DD:EE:F", false},
		{"AA::BB:CC:DD:EEFF", false},
		{"not-a-mac", false},
		{"aa:bb:cc:dd:ee:ff(on", false},
		{"ＡA:BB:CC:DD:EE:F", false},
	}

	for _, tc := range cases {
		if got := IsValidBSSID(tc.in); got != tc.want {
			t.Fatalf("IsValidBSSID(%q): expected %v, got %v", tc.in, tc.want, got)
		}
		if got := bssidPattern.MatchString(tc.in); got != tc.want {
			t.Fatalf("pattern disagrees on %q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestIsValidBSSID_MatchesPatternExhaustivelyOnShortAlphabet(t *testing.T) {
	// Every 17-byte string built from a small alphabet around the format boundaries.
	alphabet := []byte{'0', 'f', 'G', ':', '-'}
	buf := []byte("00:00:00:00:00:00")
	for pos := 0; pos < len(buf); pos++ {
		for _, c := range alphabet {
			candidate := append([]byte(nil), buf...)
			candidate[pos] = c
			s := string(candidate)
			if IsValidBSSID(s) != bssidPattern.MatchString(s) {
				t.Fatalf("validator and pattern disagree on %q", s)
			}
		}
	}
}

func TestNormalizeBSSID(t *testing.T) {
	if got := NormalizeBSSID(" aa:bb:cc:dd:ee:ff "); got != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("expected upper-cased trimmed bssid, got %q", got)
	}
}
