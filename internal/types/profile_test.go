//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *UserProfile)
		wantErr bool
		field   string
	}{
		{name: "defaults are valid", mutate: func(_ *UserProfile) {}},
		{name: "upper bounds are valid", mutate: func(p *UserProfile) {
			p.Age, p.WeightKg, p.HeightCm, p.SleepHours = 120, 500, 300, 24
		}},
		{name: "lower bounds are valid", mutate: func(p *UserProfile) {
			p.Age, p.WeightKg, p.HeightCm, p.SleepHours = 1, 1, 50, 1
		}},
		{name: "age zero", mutate: func(p *UserProfile) { p.Age = 0 }, wantErr: true, field: "Age"},
		{name: "age too high", mutate: func(p *UserProfile) { p.Age = 121 }, wantErr: true, field: "Age"},
		{name: "weight too high", mutate: func(p *UserProfile) { p.WeightKg = 501 }, wantErr: true, field: "WeightKg"},
		{name: "height too low", mutate: func(p *UserProfile) { p.HeightCm = 49 }, wantErr: true, field: "HeightCm"},
		{name: "sleep too high", mutate: func(p *UserProfile) { p.SleepHours = 25 }, wantErr: true, field: "SleepHours"},
		{name: "unknown gender", mutate: func(p *UserProfile) { p.Gender = "robot" }, wantErr: true, field: "Gender"},
		{name: "unknown activity", mutate: func(p *UserProfile) { p.ActivityLevel = "extreme" }, wantErr: true, field: "ActivityLevel"},
		{name: "missing goal", mutate: func(p *UserProfile) { p.Goal = "" }, wantErr: true, field: "Goal"},
		{name: "unknown portion", mutate: func(p *UserProfile) { p.PortionSize = "huge" }, wantErr: true, field: "PortionSize"},
		{name: "empty preferences are fine", mutate: func(p *UserProfile) { p.Preferences = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)

			err := p.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestUserProfile_JSONFieldNames(t *testing.T) {
	input := `{
		"age": 42,
		"weight": 80.5,
		"height": 181,
		"sleepHours": 6.5,
		"gender": "female",
		"activityLevel": "very_active",
		"goal": "gain_muscle",
		"portionSize": "large",
		"preferences": "vegetarian"
	}`

	var p UserProfile
	require.NoError(t, json.Unmarshal([]byte(input), &p))

	assert.Equal(t, 42, p.Age)
	assert.InDelta(t, 80.5, p.WeightKg, 0.001)
	assert.InDelta(t, 6.5, p.SleepHours, 0.001)
	assert.Equal(t, GenderFemale, p.Gender)
	assert.Equal(t, ActivityVeryActive, p.ActivityLevel)
	assert.Equal(t, GoalGainMuscle, p.Goal)
	assert.Equal(t, PortionLarge, p.PortionSize)
	assert.Equal(t, "vegetarian", p.Preferences)
	assert.NoError(t, p.Validate())
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    Locale
		wantErr bool
	}{
		{in: "", want: LocaleEnglish},
		{in: "en", want: LocaleEnglish},
		{in: "ES", want: LocaleSpanish},
		{in: "es-MX", want: LocaleSpanish},
		{in: "en_GB", want: LocaleEnglish},
		{in: "fr", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocale(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
