package benefit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimumAmountFor(t *testing.T) {
	assert.InDelta(t, 184119, MinimumAmountFor(WorkingTypeFullTime), 1e-9)
	assert.InDelta(t, 132850, MinimumAmountFor(WorkingTypePartTime), 1e-9)
	assert.InDelta(t, 80341, MinimumAmountFor(WorkingTypeOutOfLabor), 1e-9)
	assert.InDelta(t, 184119, MinimumAmountFor(WorkingTypeEducation), 1e-9)
	assert.Zero(t, MinimumAmountFor(WorkingType("Retired")))
}

func TestRateForBracketBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"zero", 0, 35.04},
		{"inside lower bracket", 200000, 35.04},
		{"lower boundary inclusive", 336916, 35.04},
		{"just above lower boundary", 336917, 37.19},
		{"inside middle bracket", 500000, 37.19},
		{"middle boundary inclusive", 945873, 37.19},
		{"just above middle boundary", 945874, 46.24},
		{"far above", 2000000, 46.24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RateFor(tt.amount), 1e-9)
		})
	}
}
