package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/nutriplan/internal/types"
)

// DefaultTotalsTolerance is the relative difference allowed between a day's totals
// and the sum of its glossary entries.
const DefaultTotalsTolerance = 0.15

var mealFields = [...]string{"breakfast", "lunch", "dinner", "snacks"}

// CheckConsistency inspects the content of an already accepted plan and reports
// findings. None of them reject the plan; they are shown to the user as hints.
func CheckConsistency(plan *types.PlanResponse, tolerance float64) *types.Violations {
	result := &types.Violations{Violations: []types.Violation{}}
	if plan == nil {
		return result
	}

	for _, day := range plan.WeeklyPlan {
		for i, meal := range day.Meals() {
			name := mealFields[i]
			if strings.TrimSpace(meal.Description) == "" {
				result.Violations = append(result.Violations, types.Violation{
					Type:     "empty_meal",
					Severity: types.SeverityError,
					Details:  "meal has no description",
					Day:      day.Day,
					Field:    name,
				})
			}
		}

		if len(day.FoodGlossary) == 0 {
			result.Violations = append(result.Violations, types.Violation{
				Type:     "empty_glossary",
				Severity: types.SeverityWarning,
				Details:  "no foods listed for the day",
				Day:      day.Day,
				Field:    "foodGlossary",
			})
			continue
		}

		sum := day.GlossaryTotals()
		checks := []struct {
			field    string
			reported float64
			computed float64
		}{
			{"protein", day.DailyTotals.Protein, sum.Protein},
			{"carbohydrates", day.DailyTotals.Carbohydrates, sum.Carbohydrates},
			{"fats", day.DailyTotals.Fats, sum.Fats},
			{"calories", day.DailyTotals.Calories, sum.Calories},
		}
		for _, c := range checks {
			if diverges(c.reported, c.computed, tolerance) {
				result.Violations = append(result.Violations, types.Violation{
					Type:     "totals_mismatch",
					Severity: types.SeverityWarning,
					Details:  fmt.Sprintf("daily total %.1f differs from glossary sum %.1f", c.reported, c.computed),
					Day:      day.Day,
					Field:    "dailyTotals." + c.field,
				})
			}
		}
	}

	return result
}

func diverges(reported, computed, tolerance float64) bool {
	base := math.Max(math.Abs(reported), math.Abs(computed))
	if base == 0 {
		return false
	}
	return math.Abs(reported-computed)/base > tolerance
}
