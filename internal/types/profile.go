// Package types provides type definitions for structured data used throughout the nutriplan system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Gender is the biological sex reported on the profile form.
type Gender string

// Gender values accepted by the generator.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel describes how physically active the user is during a normal week.
type ActivityLevel string

// ActivityLevel values accepted by the generator.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal is the outcome the plan should optimize for.
type Goal string

// Goal values accepted by the generator.
const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalMaintainWeight Goal = "maintain_weight"
	GoalGainMuscle     Goal = "gain_muscle"
)

// PortionSize is the preferred serving size.
type PortionSize string

// PortionSize values accepted by the generator.
const (
	PortionSmall  PortionSize = "small"
	PortionMedium PortionSize = "medium"
	PortionLarge  PortionSize = "large"
)

// UserProfile is the input of one generation attempt. It is never mutated once submitted.
type UserProfile struct {
	Age           int           `json:"age" yaml:"age" validate:"min=1,max=120"`
	WeightKg      float64       `json:"weight" yaml:"weight" validate:"min=1,max=500"`
	HeightCm      float64       `json:"height" yaml:"height" validate:"min=50,max=300"`
	SleepHours    float64       `json:"sleepHours" yaml:"sleepHours" validate:"min=1,max=24"`
	Gender        Gender        `json:"gender" yaml:"gender" validate:"oneof=male female other"`
	ActivityLevel ActivityLevel `json:"activityLevel" yaml:"activityLevel" validate:"oneof=sedentary light moderate active very_active"`
	Goal          Goal          `json:"goal" yaml:"goal" validate:"oneof=lose_weight maintain_weight gain_muscle"`
	PortionSize   PortionSize   `json:"portionSize" yaml:"portionSize" validate:"oneof=small medium large"`
	Preferences   string        `json:"preferences,omitempty" yaml:"preferences,omitempty" validate:"max=2000"`
}

// DefaultProfile returns the values the profile form starts with.
func DefaultProfile() UserProfile {
	return UserProfile{
		Age:           30,
		WeightKg:      70,
		HeightCm:      175,
		SleepHours:    8,
		Gender:        GenderMale,
		ActivityLevel: ActivityModerate,
		Goal:          GoalMaintainWeight,
		PortionSize:   PortionMedium,
	}
}

// Validate validates the UserProfile using the validator.
func (p *UserProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
