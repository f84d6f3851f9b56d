package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"98765 43210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"+14155550123", "+14155550123"},
		{"043210", "043210"},
	}

	for _, tc := range testCases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
