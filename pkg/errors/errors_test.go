package errors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "primer: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "primer: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		axis int
		want string
	}{
		{0, "primer: Predict: dimension mismatch on axis 0 (rows). Expected 10, got 9"},
		{1, "primer: Predict: dimension mismatch on axis 1 (features). Expected 10, got 9"},
	}

	for _, tt := range tests {
		err := NewDimensionError("Predict", 10, 9, tt.axis)
		if err.Error() != tt.want {
			t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
		}

		var dimErr *DimensionError
		if !As(err, &dimErr) {
			t.Error("Error should be castable to *DimensionError")
		}
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	want := "primer: LinearRegression: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewConversionError(t *testing.T) {
	_, cause := strconv.ParseFloat("Number of literals:", 64)
	err := NewConversionError("Number of literals:", "float", cause)

	want := `primer: could not convert string to float: "Number of literals:"`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var convErr *ConversionError
	if !As(err, &convErr) {
		t.Fatal("Error should be castable to *ConversionError")
	}
	if !Is(err, strconv.ErrSyntax) {
		t.Error("Expected the strconv syntax error to stay in the chain")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("bins", "must be positive", 0)

	want := "primer: validation failed for parameter 'bins': must be positive (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestMulticollinearityWarning(t *testing.T) {
	w := NewMulticollinearityWarning(12345, 1000)
	if !strings.Contains(w.Error(), "1.23e+04") {
		t.Errorf("Error() = %q, expected formatted condition number", w.Error())
	}

	var got error
	SetZerologWarnFunc(func(warning error) { got = warning })
	defer SetZerologWarnFunc(nil)

	Warn(w)
	if got != w {
		t.Errorf("Warn routed %v, want %v", got, w)
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Fit", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Fit: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}

func TestCheckMatrix(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 2,
		3, math.NaN(),
		5, 6,
	})

	err := CheckMatrix("parse", m, 3, 2)
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("Expected NumericalInstabilityError, got %v", err)
	}
	if numErr.Iteration != 1 {
		t.Errorf("Iteration = %d, want 1", numErr.Iteration)
	}

	if err := CheckMatrix("parse", mat.NewDense(1, 1, []float64{1}), 1, 1); err != nil {
		t.Errorf("Expected no error for finite matrix, got %v", err)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("fit", []float64{1, 2, 3}, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckNumericalStability("fit", []float64{1, math.Inf(1)}, 0); err == nil {
		t.Error("expected error for Inf value")
	}
}
