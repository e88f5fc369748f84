package sitemap

import (
	"strings"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// DefaultBand applies to any page type the classifier does not recognize
var DefaultBand = types.Band{Priority: 0.6, ChangeFrequency: types.ChangeMonthly}

var pageTypeBands = map[string]types.Band{
	"job_listing": {Priority: 0.85, ChangeFrequency: types.ChangeDaily},
	"jobs_uk":     {Priority: 0.85, ChangeFrequency: types.ChangeDaily},

	"service":    {Priority: 0.8, ChangeFrequency: types.ChangeWeekly},
	"hire_guide": {Priority: 0.8, ChangeFrequency: types.ChangeWeekly},
	"location":   {Priority: 0.8, ChangeFrequency: types.ChangeWeekly},

	"guide":        {Priority: 0.75, ChangeFrequency: types.ChangeMonthly},
	"career_guide": {Priority: 0.75, ChangeFrequency: types.ChangeMonthly},
	"salary":       {Priority: 0.75, ChangeFrequency: types.ChangeMonthly},

	"comparison": {Priority: 0.65, ChangeFrequency: types.ChangeMonthly},
	"specialist": {Priority: 0.65, ChangeFrequency: types.ChangeMonthly},
	"industry":   {Priority: 0.65, ChangeFrequency: types.ChangeMonthly},
	"policy":     {Priority: 0.65, ChangeFrequency: types.ChangeMonthly},
	"tool":       {Priority: 0.65, ChangeFrequency: types.ChangeMonthly},
}

// Classify maps a content page type to its band. Every input has an answer.
func Classify(pageType string) types.Band {
	if band, ok := pageTypeBands[strings.ToLower(strings.TrimSpace(pageType))]; ok {
		return band
	}
	return DefaultBand
}
