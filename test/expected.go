// Package test provides the assertion helpers and bounded-writer types
// used throughout this module's own test files.
package test

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

// Equate fails the test unless got and want are equal, as determined by
// reflect.DeepEqual.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v (%T), wanted %v (%T)", got, got, want, want)
	}
}

// asSuccess interprets v as a success/failure signal: nil is success, a
// bool is success iff true, an error is success iff nil. Any other type
// is reported as a test usage error.
func asSuccess(t *testing.T, v interface{}) bool {
	t.Helper()
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case bool:
		return x
	case error:
		return x == nil
	default:
		t.Fatalf("don't know how to interpret %v (%T) as success or failure", v, v)
		return false
	}
}

// ExpectSuccess fails the test unless v indicates success.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !asSuccess(t, v) {
		t.Errorf("expected success but got %v", v)
	}
}

// ExpectFailure fails the test unless v indicates failure.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if asSuccess(t, v) {
		t.Errorf("expected failure but got %v", v)
	}
}

// ExpectEquality fails the test unless a and b are equal.
func ExpectEquality(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected %v (%T) to equal %v (%T)", a, a, b, b)
	}
}

// ExpectInequality fails the test unless a and b are unequal.
func ExpectInequality(t *testing.T, a, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("expected %v (%T) to not equal %v (%T)", a, a, b, b)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("cannot compare %v (%T) approximately", v, v)
	}
}

// ExpectApproximate fails the test unless a and b differ by no more than
// tolerance.
func ExpectApproximate(t *testing.T, a, b interface{}, tolerance float64) {
	t.Helper()
	fa, err := toFloat64(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := toFloat64(b)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(fa-fb) > tolerance {
		t.Errorf("expected %v to be within %v of %v", a, tolerance, b)
	}
}
