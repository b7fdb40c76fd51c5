// Package observability provides logging setup and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/nutriplan/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintProfile outputs the profile a generation is about to run with.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Age:       %d\n", profile.Age))
	sb.WriteString(fmt.Sprintf("Weight:    %g kg\n", profile.WeightKg))
	sb.WriteString(fmt.Sprintf("Height:    %g cm\n", profile.HeightCm))
	sb.WriteString(fmt.Sprintf("Sleep:     %g h\n", profile.SleepHours))
	sb.WriteString(fmt.Sprintf("Gender:    %s\n", profile.Gender))
	sb.WriteString(fmt.Sprintf("Activity:  %s\n", profile.ActivityLevel))
	sb.WriteString(fmt.Sprintf("Goal:      %s\n", profile.Goal))
	sb.WriteString(fmt.Sprintf("Portions:  %s", profile.PortionSize))
	if profile.Preferences != "" {
		sb.WriteString(fmt.Sprintf("\nNotes:     %s", profile.Preferences))
	}

	p.printBox("USER PROFILE", sb.String())
}

// PrintPlan outputs one line per day with its calories and macros, then the sleep recommendation.
func (p *Printer) PrintPlan(plan *types.PlanResponse) {
	if plan == nil || len(plan.WeeklyPlan) == 0 {
		return
	}

	var sb strings.Builder
	for _, day := range plan.WeeklyPlan {
		t := day.DailyTotals
		sb.WriteString(fmt.Sprintf("%-10s %5.0f kcal  P %3.0fg  C %3.0fg  F %3.0fg\n",
			day.Day, t.Calories, t.Protein, t.Carbohydrates, t.Fats))
	}
	sb.WriteString(fmt.Sprintf("\nAverage: %.0f kcal/day\n", plan.WeeklyPlan.AverageCalories()))

	if plan.SleepRecommendation != "" {
		sb.WriteString("\nSleep:\n")
		for _, line := range wrap(plan.SleepRecommendation, boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}

	p.printBox("WEEKLY PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDay outputs the meals of a single day.
func (p *Printer) PrintDay(day types.DailyPlan) {
	var sb strings.Builder
	meals := []struct {
		label string
		meal  types.Meal
	}{
		{"Breakfast", day.Breakfast},
		{"Lunch", day.Lunch},
		{"Dinner", day.Dinner},
		{"Snacks", day.Snacks},
	}
	for _, m := range meals {
		sb.WriteString(fmt.Sprintf("%s: %s\n", m.label, m.meal.Description))
	}

	if len(day.FoodGlossary) > 0 {
		sb.WriteString("\nGlossary:\n")
		count := min(len(day.FoodGlossary), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := day.FoodGlossary[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s) %.0f kcal\n", e.Food, e.Amount, e.Calories))
		}
		if len(day.FoodGlossary) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(day.FoodGlossary)-maxItemsToShow))
		}
	}

	p.printBox(strings.ToUpper(day.Day), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs any consistency issues found in a plan.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ISSUES FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		sb.WriteString(fmt.Sprintf("⚠ %s", v.Type))
		if v.Day != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", v.Day))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, 45)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PLAN ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
