//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDay(label string, calories float64) DailyPlan {
	return DailyPlan{
		Day:       label,
		Breakfast: Meal{Description: "Oats", Preparation: "Cook with milk"},
		Lunch:     Meal{Description: "Chicken salad", Preparation: "Grill the chicken"},
		Dinner:    Meal{Description: "Salmon", Preparation: "Bake 15 minutes"},
		Snacks:    Meal{Description: "Yogurt", Preparation: "Serve cold"},
		FoodGlossary: []FoodGlossaryEntry{
			{Food: "Oats", Amount: "50g", Protein: 6.5, Carbohydrates: 33, Fats: 3.5, Calories: 190},
			{Food: "Salmon", Amount: "150g", Protein: 30, Carbohydrates: 0, Fats: 18, Calories: 280},
		},
		DailyTotals: DailyTotals{Protein: 36.5, Carbohydrates: 33, Fats: 21.5, Calories: calories},
	}
}

func TestPlanResponse_JSONRoundTripUsesSchemaFieldNames(t *testing.T) {
	resp := PlanResponse{
		WeeklyPlan:          WeeklyPlan{sampleDay("Monday", 1800)},
		SleepRecommendation: "Aim for 8 hours.",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "weeklyPlan")
	assert.Contains(t, raw, "sleepRecommendation")

	day := raw["weeklyPlan"].([]any)[0].(map[string]any)
	for _, key := range []string{"day", "breakfast", "lunch", "dinner", "snacks", "foodGlossary", "dailyTotals"} {
		assert.Contains(t, day, key)
	}
}

func TestWeeklyPlan_Complete(t *testing.T) {
	var plan WeeklyPlan
	assert.False(t, plan.Complete())

	for i := 0; i < DaysPerWeek; i++ {
		plan = append(plan, sampleDay("d", 2000))
	}
	assert.True(t, plan.Complete())

	plan = append(plan, sampleDay("extra", 2000))
	assert.False(t, plan.Complete())
}

func TestWeeklyPlan_AverageCalories(t *testing.T) {
	assert.Zero(t, WeeklyPlan{}.AverageCalories())

	plan := WeeklyPlan{sampleDay("a", 1800), sampleDay("b", 2200)}
	assert.InDelta(t, 2000, plan.AverageCalories(), 0.001)
}

func TestDailyPlan_GlossaryTotals(t *testing.T) {
	totals := sampleDay("Monday", 0).GlossaryTotals()
	assert.InDelta(t, 36.5, totals.Protein, 0.001)
	assert.InDelta(t, 33, totals.Carbohydrates, 0.001)
	assert.InDelta(t, 21.5, totals.Fats, 0.001)
	assert.InDelta(t, 470, totals.Calories, 0.001)
}

func TestDailyPlan_MealsOrder(t *testing.T) {
	meals := sampleDay("Monday", 0).Meals()
	require.Len(t, meals, 4)
	assert.Equal(t, "Oats", meals[0].Description)
	assert.Equal(t, "Yogurt", meals[3].Description)
}

func TestSavedPlan_Conversion(t *testing.T) {
	resp := &PlanResponse{
		WeeklyPlan:          WeeklyPlan{sampleDay("Monday", 1900)},
		SleepRecommendation: "Sleep more.",
	}

	saved := NewSavedPlan(resp)
	assert.Equal(t, "Sleep more.", saved.Recommendation)
	assert.Len(t, saved.Plan, 1)

	data, err := json.Marshal(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plan"`)
	assert.Contains(t, string(data), `"recommendation"`)

	assert.Equal(t, resp, saved.Response())
}
