// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// AssertClose fails the test when got differs from want by more than tolerance.
func AssertClose(t testing.TB, name string, got, want, tolerance float64) {
	t.Helper()
	if !mathutil.WithinTolerance(got, want, tolerance) {
		t.Errorf("%s = %.6f, want %.6f (±%g)", name, got, want, tolerance)
	}
}

// AssertRelative fails the test when got and want disagree by more than the
// relative tolerance of the larger magnitude. Magnitudes below one compare
// absolutely.
func AssertRelative(t testing.TB, name string, got, want, tolerance float64) {
	t.Helper()
	if !mathutil.WithinRelative(got, want, tolerance) && !mathutil.WithinTolerance(got, want, tolerance) {
		t.Errorf("%s = %.6f, want %.6f (relative ±%g)", name, got, want, tolerance)
	}
}

// AssertFinite fails the test when any value is NaN or infinite.
func AssertFinite(t testing.TB, name string, values ...float64) {
	t.Helper()
	for i, v := range values {
		if !mathutil.IsFinite(v) {
			t.Errorf("%s[%d] = %v, want a finite value", name, i, v)
		}
	}
}

// Sum adds up the values selected from each element of items.
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}
