package sitemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label    string
		priority float64
		cadence  types.ChangeFrequency
	}{
		{"job_listing", 0.85, types.ChangeDaily},
		{"jobs_uk", 0.85, types.ChangeDaily},
		{"service", 0.8, types.ChangeWeekly},
		{"hire_guide", 0.8, types.ChangeWeekly},
		{"location", 0.8, types.ChangeWeekly},
		{"guide", 0.75, types.ChangeMonthly},
		{"career_guide", 0.75, types.ChangeMonthly},
		{"salary", 0.75, types.ChangeMonthly},
		{"comparison", 0.65, types.ChangeMonthly},
		{"tool", 0.65, types.ChangeMonthly},
		{"  Service ", 0.8, types.ChangeWeekly},
		{"zzz-unrecognized", 0.6, types.ChangeMonthly},
		{"", 0.6, types.ChangeMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := Classify(tt.label)
			assert.InDelta(t, tt.priority, got.Priority, 1e-9)
			assert.Equal(t, tt.cadence, got.ChangeFrequency)
		})
	}
}

func TestClassify_TableIsWellFormed(t *testing.T) {
	for label, band := range pageTypeBands {
		assert.True(t, band.ChangeFrequency.Valid(), label)
		assert.Equal(t, band.Priority, types.ClampPriority(band.Priority), label)
	}
}
