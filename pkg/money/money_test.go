package money

import "testing"

func TestRoundWhole(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{101.99999999999999, 102},
		{102.0, 102},
		{102.5, 103},
		{-102.5, -103},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundWhole(tt.in); got != tt.want {
			t.Errorf("RoundWhole(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRoundShare(t *testing.T) {
	if got := RoundShare(1.0 / 3.0); got != 0.3333 {
		t.Errorf("RoundShare(1/3) = %v, want 0.3333", got)
	}
}
