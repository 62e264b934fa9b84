package db

import (
	"math"
	"testing"
)

func TestHugeintString(t *testing.T) {
	tests := []struct {
		h    Hugeint
		want string
	}{
		{Hugeint{Lower: 0, Upper: 0}, "0"},
		{Hugeint{Lower: 42, Upper: 0}, "42"},
		{Hugeint{Lower: math.MaxInt64, Upper: 0}, "9223372036854775807"},
		// -1 is all ones in two's complement
		{Hugeint{Lower: math.MaxUint64, Upper: -1}, "-1"},
		{Hugeint{Lower: uint64(math.MaxUint64) - 41, Upper: -1}, "-42"},
		// does not fit: high word is not the sign-extension of the low word
		{Hugeint{Lower: 0, Upper: 1}, "1*2^64 + 0"},
		{Hugeint{Lower: 7, Upper: -2}, "-2*2^64 + 7"},
	}

	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("Hugeint%+v.String() = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestUHugeintString(t *testing.T) {
	tests := []struct {
		h    UHugeint
		want string
	}{
		{UHugeint{Lower: 0, Upper: 0}, "0"},
		{UHugeint{Lower: math.MaxUint64, Upper: 0}, "18446744073709551615"},
		{UHugeint{Lower: 3, Upper: 2}, "2*2^64 + 3"},
	}

	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("UHugeint%+v.String() = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestDateString(t *testing.T) {
	tests := []struct {
		d    Date
		want string
	}{
		{0, "1970-01-01"},
		{1, "1970-01-02"},
		{-1, "1969-12-31"},
		{19723, "2024-01-01"},
	}

	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Date(%d).String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTimeString(t *testing.T) {
	tests := []struct {
		tm   Time
		want string
	}{
		{0, "00:00:00"},
		{1_000_000, "00:00:01"},
		{90_000_000, "00:01:30"},
		{Time(13*3600+24*60+5) * 1_000_000, "13:24:05"},
		{1_500_000, "00:00:01.5"},
		{1_000_001, "00:00:01.000001"},
	}

	for _, tt := range tests {
		if got := tt.tm.String(); got != tt.want {
			t.Errorf("Time(%d).String() = %q, want %q", tt.tm, got, tt.want)
		}
	}
}

func TestIntervalString(t *testing.T) {
	tests := []struct {
		iv   Interval
		want string
	}{
		{Interval{}, "00:00:00"},
		{Interval{Months: 1}, "1 month"},
		{Interval{Months: 2, Days: 3}, "2 months 3 days"},
		{Interval{Days: 1, Micros: 1_000_000}, "1 day 00:00:01"},
	}

	for _, tt := range tests {
		if got := tt.iv.String(); got != tt.want {
			t.Errorf("Interval%+v.String() = %q, want %q", tt.iv, got, tt.want)
		}
	}
}

func TestUnsupportedString(t *testing.T) {
	u := Unsupported{TypeName: "STRUCT"}
	if got := u.String(); got != "[STRUCT]" {
		t.Errorf("Unsupported.String() = %q, want [STRUCT]", got)
	}
}
