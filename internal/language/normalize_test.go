package language

import "testing"

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"  en-US ", "en-us"},
		{"zh_CN", "zh-cn"},
		{"zh__tw", "zh-tw"},
		{"", ""},
		{"   ", ""},
		{"en US", ""},
		{"en!", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTag(tc.raw); got != tc.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"en-US", "en"},
		{"zh_TW", "zh"},
		{"fr", "fr"},
		{"", ""},
		{"!!", ""},
	}
	for _, tc := range cases {
		if got := NormalizeCode(tc.raw); got != tc.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSamePrimary(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"zh-TW", "zh", true},
		{"en-US", "en-GB", true},
		{"en", "fr", false},
		{"", "en", false},
		{"", "", false},
	}
	for _, tc := range cases {
		if got := SamePrimary(tc.a, tc.b); got != tc.want {
			t.Errorf("SamePrimary(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
