package model

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
		ok   bool
	}{
		{"QB", QB, true},
		{"rb", RB, true},
		{" wr ", WR, true},
		{"TE", TE, true},
		{"K", K, true},
		{"PK", K, true},
		{"DST", DST, true},
		{"D/ST", DST, true},
		{"DEF", DST, true},
		{"d", DST, true},
		{"FLEX", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParsePosition(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePosition(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
