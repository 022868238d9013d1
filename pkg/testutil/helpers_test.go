package testutil

import (
	"math"
	"testing"
)

type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.failed = true
}

func TestAssertClose(t *testing.T) {
	tests := []struct {
		name      string
		got       float64
		want      float64
		tolerance float64
		expectErr bool
	}{
		{name: "equal", got: 1.5, want: 1.5, tolerance: 0, expectErr: false},
		{name: "inside tolerance", got: 100.004, want: 100, tolerance: 0.01, expectErr: false},
		{name: "outside tolerance", got: 100.02, want: 100, tolerance: 0.01, expectErr: true},
		{name: "NaN never passes", got: math.NaN(), want: 0, tolerance: math.Inf(1), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{TB: t}
			AssertClose(r, tt.name, tt.got, tt.want, tt.tolerance)
			if r.failed != tt.expectErr {
				t.Errorf("AssertClose(%v, %v, %v) failed = %v, want %v", tt.got, tt.want, tt.tolerance, r.failed, tt.expectErr)
			}
		})
	}
}

func TestAssertRelative(t *testing.T) {
	tests := []struct {
		name      string
		got       float64
		want      float64
		expectErr bool
	}{
		{name: "large values agree", got: 1_000_000.0004, want: 1_000_000, expectErr: false},
		{name: "large values disagree", got: 1_000_010, want: 1_000_000, expectErr: true},
		{name: "small values use absolute floor", got: 1e-9, want: 0, expectErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{TB: t}
			AssertRelative(r, tt.name, tt.got, tt.want, 1e-6)
			if r.failed != tt.expectErr {
				t.Errorf("AssertRelative(%v, %v) failed = %v, want %v", tt.got, tt.want, r.failed, tt.expectErr)
			}
		})
	}
}

func TestAssertFinite(t *testing.T) {
	r := &recorder{TB: t}
	AssertFinite(r, "values", 1, 2, 3)
	if r.failed {
		t.Error("AssertFinite failed on finite values")
	}

	r = &recorder{TB: t}
	AssertFinite(r, "values", 1, math.Inf(-1))
	if !r.failed {
		t.Error("AssertFinite passed on an infinite value")
	}
}

func TestSum(t *testing.T) {
	type row struct{ amount float64 }
	rows := []row{{1.25}, {2.5}, {3.75}}

	if got := Sum(rows, func(r row) float64 { return r.amount }); got != 7.5 {
		t.Errorf("Sum = %v, want 7.5", got)
	}
	if got := Sum([]row(nil), func(r row) float64 { return r.amount }); got != 0 {
		t.Errorf("Sum of nil = %v, want 0", got)
	}
}
