package llm

import "github.com/google/generative-ai-go/genai"

// PlanResponseSchema is the structured-output schema sent with every generation request.
// It mirrors schemas/plan_response.schema.json.
func PlanResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"weeklyPlan": {
				Type:        genai.TypeArray,
				Description: "The detailed meal plan for the 7 days of the week.",
				Items:       dailyPlanSchema(),
			},
			"sleepRecommendation": {
				Type:        genai.TypeString,
				Description: "A concise, personalized recommendation about how many hours to sleep, based on the user's goal and profile.",
			},
		},
		Required: []string{"weeklyPlan", "sleepRecommendation"},
	}
}

func dailyPlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day":       {Type: genai.TypeString, Description: `The day of the week (e.g. "Monday").`},
			"breakfast": mealSchema(),
			"lunch":     mealSchema(),
			"dinner":    mealSchema(),
			"snacks":    mealSchema(),
			"foodGlossary": {
				Type:        genai.TypeArray,
				Description: "Main foods of the day with their nutritional breakdown.",
				Items:       glossaryEntrySchema(),
			},
			"dailyTotals": macrosSchema("Summary of the nutritional totals for the day."),
		},
		Required: []string{"day", "breakfast", "lunch", "dinner", "snacks", "foodGlossary", "dailyTotals"},
	}
}

func mealSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {Type: genai.TypeString, Description: "Description of the dish."},
			"preparation": {Type: genai.TypeString, Description: "Simple preparation suggestions."},
		},
		Required: []string{"description", "preparation"},
	}
}

func glossaryEntrySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"food":          {Type: genai.TypeString, Description: "Name of the food or ingredient."},
			"amount":        {Type: genai.TypeString, Description: `Quantity or portion (e.g. "100g", "1 cup").`},
			"protein":       {Type: genai.TypeNumber, Description: "Grams of protein."},
			"carbohydrates": {Type: genai.TypeNumber, Description: "Grams of carbohydrates."},
			"fats":          {Type: genai.TypeNumber, Description: "Grams of fat."},
			"calories":      {Type: genai.TypeNumber, Description: "Total kilocalories."},
		},
		Required: []string{"food", "amount", "protein", "carbohydrates", "fats", "calories"},
	}
}

func macrosSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: description,
		Properties: map[string]*genai.Schema{
			"protein":       {Type: genai.TypeNumber, Description: "Total grams of protein for the day."},
			"carbohydrates": {Type: genai.TypeNumber, Description: "Total grams of carbohydrates for the day."},
			"fats":          {Type: genai.TypeNumber, Description: "Total grams of fat for the day."},
			"calories":      {Type: genai.TypeNumber, Description: "Total kilocalories for the day."},
		},
		Required: []string{"protein", "carbohydrates", "fats", "calories"},
	}
}
