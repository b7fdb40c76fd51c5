package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/prompts"
	"github.com/jonathan/nutriplan/internal/types"
	"github.com/jonathan/nutriplan/internal/validation"
)

const promptFile = "nutrition.json"

// SystemInstruction returns the instruction that keeps the model to the structured payload.
func SystemInstruction(locale types.Locale) (string, error) {
	return prompts.GetLocalized(promptFile, locale, "system")
}

// BuildPrompt renders the user instruction for a profile in the given locale.
func BuildPrompt(profile types.UserProfile, locale types.Locale) (string, error) {
	template, err := prompts.GetLocalized(promptFile, locale, "user")
	if err != nil {
		return "", err
	}

	labels := map[string]string{
		"Gender":        "gender." + string(profile.Gender),
		"ActivityLevel": "activity." + string(profile.ActivityLevel),
		"Goal":          "goal." + string(profile.Goal),
		"PortionSize":   "portion." + string(profile.PortionSize),
	}
	data := map[string]string{
		"Age":        strconv.Itoa(profile.Age),
		"Weight":     formatNumber(profile.WeightKg),
		"Height":     formatNumber(profile.HeightCm),
		"SleepHours": formatNumber(profile.SleepHours),
	}
	for placeholder, key := range labels {
		label, err := prompts.GetLocalized(promptFile, locale, key)
		if err != nil {
			return "", fmt.Errorf("no label for %s: %w", placeholder, err)
		}
		data[placeholder] = label
	}

	preferences := strings.TrimSpace(profile.Preferences)
	if preferences == "" {
		preferences, err = prompts.GetLocalized(promptFile, locale, "none")
		if err != nil {
			return "", err
		}
	} else {
		preferences = validation.QuoteUserText(validation.StripInjectionAttempts(preferences), "preferences")
	}
	data["Preferences"] = preferences

	weekdays := messages.For(locale).Weekdays
	data["Weekdays"] = strings.Join(weekdays[:], ", ")

	return prompts.Render(template, data)
}

// formatNumber drops the fractional part of whole numbers.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
