package money

import "testing"

func TestFormatCents(t *testing.T) {
	tests := map[int64]string{
		0:      "$0.00",
		5:      "$0.05",
		199:    "$1.99",
		10000:  "$100.00",
		123456: "$1234.56",
	}
	for cents, want := range tests {
		if got := FormatCents(cents); got != want {
			t.Errorf("FormatCents(%d) = %q, want %q", cents, got, want)
		}
	}
}

func TestAverageCents(t *testing.T) {
	tests := []struct {
		total, count, want int64
	}{
		{0, 0, 0},
		{3000, 2, 1500},
		{1000, 3, 333},
		{2000, 3, 667},
	}
	for _, tt := range tests {
		if got := AverageCents(tt.total, tt.count); got != tt.want {
			t.Errorf("AverageCents(%d, %d) = %d, want %d", tt.total, tt.count, got, tt.want)
		}
	}
}
