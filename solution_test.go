package ilp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestIsIntegral(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{"exact integer", 3.0, true},
		{"just below tolerance", 2.999999995, true},
		{"just above tolerance", 3.000000005, true},
		{"clearly fractional below", 2.9999, false},
		{"clearly fractional above", 3.00001, false},
		{"zero", 0.0, true},
		{"negative integer", -5.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isIntegral(tt.value))
		})
	}
}

func TestSolution_IsIntegral(t *testing.T) {
	integral := Solution{Vars: mat.NewVecDense(3, []float64{1, 2, 3})}
	assert.True(t, integral.IsIntegral())

	fractional := Solution{Vars: mat.NewVecDense(3, []float64{1, 2.5, 3})}
	assert.False(t, fractional.IsIntegral())

	empty := Solution{}
	assert.False(t, empty.IsIntegral())
}

func TestSolution_Truncate(t *testing.T) {
	s := Solution{Value: 10, Vars: mat.NewVecDense(4, []float64{1, 2, 3, 4})}
	got := s.Truncate(2)

	assert.Equal(t, 10.0, got.Value)
	assert.Equal(t, 2, got.Vars.Len())
	assert.Equal(t, 1.0, got.Vars.AtVec(0))
	assert.Equal(t, 2.0, got.Vars.AtVec(1))
}

func TestClean_SnapsNearIntegers(t *testing.T) {
	assert.Equal(t, 3.0, clean(2.999999995))
	assert.Equal(t, 3.0, clean(3.000000005))
	assert.Equal(t, 2.9999, clean(2.9999))
}

func TestSolution_String_DoesNotPanic(t *testing.T) {
	s := Solution{Value: 5, Vars: mat.NewVecDense(2, []float64{1, 2})}
	assert.NotPanics(t, func() { _ = s.String() })
}
