//nolint:revive // types is a standard Go package name pattern
package types

// DaysPerWeek is the number of entries every weekly plan carries.
const DaysPerWeek = 7

// Meal is one suggested dish with simple preparation notes.
type Meal struct {
	Description string `json:"description"`
	Preparation string `json:"preparation"`
}

// FoodGlossaryEntry is the nutritional breakdown of one food used during a day.
type FoodGlossaryEntry struct {
	Food          string  `json:"food"`
	Amount        string  `json:"amount"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Calories      float64 `json:"calories"`
}

// DailyTotals aggregates the macros of a single day.
type DailyTotals struct {
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Calories      float64 `json:"calories"`
}

// DailyPlan is the plan for one weekday.
type DailyPlan struct {
	Day          string              `json:"day"`
	Breakfast    Meal                `json:"breakfast"`
	Lunch        Meal                `json:"lunch"`
	Dinner       Meal                `json:"dinner"`
	Snacks       Meal                `json:"snacks"`
	FoodGlossary []FoodGlossaryEntry `json:"foodGlossary"`
	DailyTotals  DailyTotals         `json:"dailyTotals"`
}

// Meals returns the four meals of the day in serving order.
func (d DailyPlan) Meals() []Meal {
	return []Meal{d.Breakfast, d.Lunch, d.Dinner, d.Snacks}
}

// GlossaryTotals sums the glossary entries. Useful to compare against DailyTotals.
func (d DailyPlan) GlossaryTotals() DailyTotals {
	var t DailyTotals
	for _, e := range d.FoodGlossary {
		t.Protein += e.Protein
		t.Carbohydrates += e.Carbohydrates
		t.Fats += e.Fats
		t.Calories += e.Calories
	}
	return t
}

// WeeklyPlan holds the ordered daily plans, Monday first.
type WeeklyPlan []DailyPlan

// Complete reports whether the plan has exactly one entry per weekday.
func (w WeeklyPlan) Complete() bool {
	return len(w) == DaysPerWeek
}

// AverageCalories returns the mean daily calories, or 0 for an empty plan.
func (w WeeklyPlan) AverageCalories() float64 {
	if len(w) == 0 {
		return 0
	}
	var sum float64
	for _, d := range w {
		sum += d.DailyTotals.Calories
	}
	return sum / float64(len(w))
}

// PlanResponse is the validated result of a generation attempt.
// It is replaced wholesale by the next successful generation, never edited in place.
type PlanResponse struct {
	WeeklyPlan          WeeklyPlan `json:"weeklyPlan"`
	SleepRecommendation string     `json:"sleepRecommendation"`
}

// SavedPlan is the persisted form of a PlanResponse.
type SavedPlan struct {
	Plan           WeeklyPlan `json:"plan"`
	Recommendation string     `json:"recommendation"`
}

// NewSavedPlan converts a response into its persisted record.
func NewSavedPlan(resp *PlanResponse) SavedPlan {
	return SavedPlan{
		Plan:           resp.WeeklyPlan,
		Recommendation: resp.SleepRecommendation,
	}
}

// Response converts a saved record back into a PlanResponse.
func (s SavedPlan) Response() *PlanResponse {
	return &PlanResponse{
		WeeklyPlan:          s.Plan,
		SleepRecommendation: s.Recommendation,
	}
}
