package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertSize(t *testing.T) {
	tests := []struct {
		name         string
		size         float64
		unit         string
		wantAcres    float64
		wantHectares float64
	}{
		{"10 acres", 10, UnitAcres, 10, 4.05},
		{"1 acre", 1, UnitAcres, 1, 0.4},
		{"2 hectares", 2, UnitHectares, 4.94, 2},
		{"0.404686 hectares", 0.404686, UnitHectares, 1, 0.404686},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acres, hectares := ConvertSize(tt.size, tt.unit)
			assert.Equal(t, tt.wantAcres, acres)
			assert.Equal(t, tt.wantHectares, hectares)
		})
	}
}

func TestConvertSize_RoundTrip(t *testing.T) {
	// acres -> hectares -> acres stays within the 2-decimal rounding
	// tolerance of the original value.
	_, hectares := ConvertSize(10, UnitAcres)
	acres, _ := ConvertSize(hectares, UnitHectares)
	assert.LessOrEqual(t, math.Abs(acres-10), 0.05)
}
