package money

import (
	"math"
	"testing"
)

func TestValidateAccepts(t *testing.T) {
	for _, amount := range []float64{0.01, 1, 100.5, 999999.99} {
		if err := Validate(amount); err != nil {
			t.Errorf("Validate(%v) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []float64{0, -0.01, -100, math.NaN(), math.Inf(1), math.Inf(-1), MaxAmount * 2}
	for _, amount := range cases {
		if err := Validate(amount); err == nil {
			t.Errorf("Validate(%v) error = nil, want error", amount)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{12.345, 12.35},
		{12.344, 12.34},
		{100, 100},
		{0.005, 0.01},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
