package review

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNextAverage(t *testing.T) {
	cases := []struct {
		avg    string
		count  int
		rating int
		want   string
	}{
		{"4.0", 3, 5, "4.3"},
		{"0", 0, 4, "4"},
		{"4.5", 1, 1, "2.8"},
		{"3.3", 10, 3, "3.3"},
	}
	for _, tc := range cases {
		got := NextAverage(decimal.RequireFromString(tc.avg), tc.count, tc.rating)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("NextAverage(%s, %d, %d) = %s, want %s", tc.avg, tc.count, tc.rating, got, tc.want)
		}
	}
}

func TestReweightAverage(t *testing.T) {
	got := ReweightAverage(decimal.RequireFromString("4.3"), 4, 5, 1)
	// (17.2 - 5 + 1) / 4 = 3.3
	if !got.Equal(decimal.RequireFromString("3.3")) {
		t.Fatalf("got %s", got)
	}
	if !ReweightAverage(decimal.RequireFromString("4.0"), 0, 5, 1).Equal(decimal.RequireFromString("4.0")) {
		t.Fatalf("empty aggregate should be unchanged")
	}
}

func TestValidateRating(t *testing.T) {
	for _, r := range []int{0, 6, -1} {
		if ValidateRating(r) == nil {
			t.Fatalf("rating %d accepted", r)
		}
	}
	for r := MinRating; r <= MaxRating; r++ {
		if err := ValidateRating(r); err != nil {
			t.Fatalf("rating %d rejected: %v", r, err)
		}
	}
}
