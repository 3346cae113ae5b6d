package salesbook

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "iso date", in: "2026-08-29", want: "2026-08-29"},
		{name: "single digit month and day", in: "2026-8-9", want: "2026-08-09"},
		{name: "garbage", in: "yesterday", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got.String() != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_normalization(t *testing.T) {
	// Out-of-range components normalize the way time.Date does.
	got := NewDate(2026, time.January, 32)
	if got.String() != "2026-02-01" {
		t.Errorf("NewDate(2026, 1, 32) = %s, want 2026-02-01", got)
	}
}

func TestDate_IsZero(t *testing.T) {
	var zero Date
	if !zero.IsZero() {
		t.Error("zero value must report IsZero")
	}
	if Today().IsZero() {
		t.Error("Today() must not report IsZero")
	}
}

func TestDate_ordering(t *testing.T) {
	a := MustParseDate("2026-08-01")
	b := MustParseDate("2026-08-02")
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Errorf("ordering of %s and %s is wrong", a, b)
	}
}
