// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/types"
)

// Plan builds a plan with the given number of days, labelled with English weekday names.
// Day counts beyond seven reuse Sunday's label.
func Plan(days int) *types.PlanResponse {
	catalog := messages.For(types.LocaleEnglish)
	plan := make(types.WeeklyPlan, 0, days)
	for i := 1; i <= days; i++ {
		label := catalog.Weekday(min(i, types.DaysPerWeek))
		day := types.DailyPlan{
			Day:       label,
			Breakfast: types.Meal{Description: fmt.Sprintf("Oatmeal with berries (%s)", label), Preparation: "Simmer oats in milk for 5 minutes."},
			Lunch:     types.Meal{Description: "Grilled chicken salad", Preparation: "Grill the chicken and toss with greens."},
			Dinner:    types.Meal{Description: "Baked salmon with quinoa", Preparation: "Bake at 200C for 15 minutes."},
			Snacks:    types.Meal{Description: "Greek yogurt and almonds", Preparation: "Serve cold."},
			FoodGlossary: []types.FoodGlossaryEntry{
				{Food: "Oats", Amount: "60g", Protein: 8, Carbohydrates: 40, Fats: 4, Calories: 230},
				{Food: "Chicken breast", Amount: "150g", Protein: 46, Carbohydrates: 0, Fats: 5, Calories: 250},
				{Food: "Salmon", Amount: "150g", Protein: 31, Carbohydrates: 0, Fats: 19, Calories: 310},
			},
		}
		day.DailyTotals = day.GlossaryTotals()
		plan = append(plan, day)
	}
	return &types.PlanResponse{
		WeeklyPlan:          plan,
		SleepRecommendation: "Aim for 7 to 9 hours of sleep to support recovery.",
	}
}

// PlanJSON is Plan serialized the way the model streams it.
func PlanJSON(days int) string {
	data, err := json.Marshal(Plan(days))
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Chunks splits text into pieces of at most size bytes, preserving order.
func Chunks(text string, size int) []string {
	var out []string
	for len(text) > size {
		out = append(out, text[:size])
		text = text[size:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}
