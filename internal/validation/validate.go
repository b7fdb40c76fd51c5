package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jonathan/nutriplan/internal/llm"
	"github.com/jonathan/nutriplan/internal/schemas"
	"github.com/jonathan/nutriplan/internal/types"
)

// Validator turns the raw text of a finished stream into a plan.
type Validator interface {
	Validate(raw string) (*types.PlanResponse, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(raw string) (*types.PlanResponse, error)

// Validate implements Validator.
func (f ValidatorFunc) Validate(raw string) (*types.PlanResponse, error) {
	return f(raw)
}

// Shallow is the validator used on the streaming path.
var Shallow Validator = ValidatorFunc(ValidatePlan)

// ValidatePlan checks the top-level shape of a generated plan: it must parse, carry a
// non-empty sleep recommendation and a weekly plan sequence of exactly seven entries.
// Individual meal and macro fields are not inspected beyond what decoding requires.
func ValidatePlan(raw string) (*types.PlanResponse, error) {
	text := llm.CleanJSONBlock(raw)
	if text == "" {
		return nil, malformed(ReasonUnparseable, nil, "response is empty")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return nil, malformed(ReasonUnparseable, err, "response is not a JSON object")
	}

	weekly, ok := top["weeklyPlan"]
	if !ok || isNull(weekly) {
		return nil, malformed(ReasonMissingWeeklyPlan, nil, "weeklyPlan field is missing")
	}

	sleep, ok := top["sleepRecommendation"]
	if !ok || isNull(sleep) {
		return nil, malformed(ReasonMissingSleep, nil, "sleepRecommendation field is missing")
	}
	var recommendation string
	if err := json.Unmarshal(sleep, &recommendation); err != nil {
		return nil, malformed(ReasonMissingSleep, err, "sleepRecommendation is not a string")
	}
	if strings.TrimSpace(recommendation) == "" {
		return nil, malformed(ReasonMissingSleep, nil, "sleepRecommendation is empty")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(weekly, &entries); err != nil {
		return nil, malformed(ReasonNotSequence, err, "weeklyPlan is not a sequence")
	}
	if len(entries) != types.DaysPerWeek {
		return nil, malformed(ReasonWrongDayCount, nil, "weeklyPlan has %d days, expected %d", len(entries), types.DaysPerWeek)
	}

	plan := make(types.WeeklyPlan, len(entries))
	for i, entry := range entries {
		if err := json.Unmarshal(entry, &plan[i]); err != nil {
			return nil, malformed(ReasonInvalidEntry, err, "weeklyPlan[%d] cannot be decoded", i)
		}
	}

	return &types.PlanResponse{
		WeeklyPlan:          plan,
		SleepRecommendation: recommendation,
	}, nil
}

// ValidatePlanStrict runs ValidatePlan, then validates the full document against the
// plan response schema and checks that day i carries weekday label i.
func ValidatePlanStrict(raw string, weekdays [types.DaysPerWeek]string) (*types.PlanResponse, error) {
	plan, err := ValidatePlan(raw)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidatePlanResponse(llm.CleanJSONBlock(raw)); err != nil {
		return nil, malformed(ReasonSchema, err, "plan does not match the response schema")
	}

	for i, day := range plan.WeeklyPlan {
		if !strings.EqualFold(strings.TrimSpace(day.Day), weekdays[i]) {
			return nil, malformed(ReasonDayLabel, nil, "weeklyPlan[%d] is %q, expected %q", i, day.Day, weekdays[i])
		}
	}

	return plan, nil
}

// Strict returns a Validator that applies ValidatePlanStrict with the given weekday labels.
func Strict(weekdays [types.DaysPerWeek]string) Validator {
	return ValidatorFunc(func(raw string) (*types.PlanResponse, error) {
		return ValidatePlanStrict(raw, weekdays)
	})
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
