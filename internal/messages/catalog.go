// Package messages holds the user-facing text of nutriplan for every supported locale.
package messages

import (
	"fmt"
	"time"

	"github.com/jonathan/nutriplan/internal/types"
)

// Catalog is the set of localized strings used by progress reporting, error reporting and exports.
type Catalog struct {
	Locale types.Locale

	// Weekdays are the canonical day labels, Monday first.
	Weekdays [types.DaysPerWeek]string

	Starting   string
	Generating string // format with the weekday name
	Validating string

	GenerationFailed string
	ExportFailed     string
	SaveFailed       string
	Saved            string

	DocumentTitle string
	FileName      string
	GeneratedOn   string // format with the date
	PageOf        string // format with page index and page count
	DateLayout    string

	Breakfast           string
	Lunch               string
	Dinner              string
	Snacks              string
	Preparation         string
	FoodGlossary        string
	Food                string
	Amount              string
	Protein             string
	Carbohydrates       string
	Fats                string
	Calories            string
	DailyTotals         string
	SleepRecommendation string
	PlanHeading         string
}

var english = Catalog{
	Locale:   types.LocaleEnglish,
	Weekdays: [types.DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},

	Starting:   "Starting to generate your plan...",
	Generating: "Generating the plan for %s...",
	Validating: "Finalizing and validating the plan...",

	GenerationFailed: "There was an error generating the nutrition plan. Please try again later.",
	ExportFailed:     "There was a problem generating the PDF. Please try again.",
	SaveFailed:       "The plan could not be saved. Local storage might be full.",
	Saved:            "Nutrition plan saved successfully!",

	DocumentTitle: "NutriGenius: Weekly Nutrition Plan",
	FileName:      "nutrition-plan.pdf",
	GeneratedOn:   "Generated on: %s",
	PageOf:        "Page %d of %d",
	DateLayout:    "01/02/2006",

	Breakfast:           "Breakfast",
	Lunch:               "Lunch",
	Dinner:              "Dinner",
	Snacks:              "Snacks",
	Preparation:         "Preparation",
	FoodGlossary:        "Nutrition Glossary",
	Food:                "Food",
	Amount:              "Amount",
	Protein:             "Protein (g)",
	Carbohydrates:       "Carbs (g)",
	Fats:                "Fats (g)",
	Calories:            "Calories",
	DailyTotals:         "Daily Totals",
	SleepRecommendation: "Personalized Sleep Recommendation",
	PlanHeading:         "Your Weekly Nutrition Plan",
}

var spanish = Catalog{
	Locale:   types.LocaleSpanish,
	Weekdays: [types.DaysPerWeek]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"},

	Starting:   "Iniciando la generación de tu plan...",
	Generating: "Generando el plan para %s...",
	Validating: "Finalizando y validando el plan...",

	GenerationFailed: "Hubo un error al generar el plan de nutrición. Por favor, inténtelo de nuevo más tarde.",
	ExportFailed:     "Hubo un problema al generar el PDF. Por favor, inténtalo de nuevo.",
	SaveFailed:       "No se pudo guardar el plan. El almacenamiento local podría estar lleno.",
	Saved:            "¡Plan de nutrición guardado con éxito!",

	DocumentTitle: "NutriGenius: Plan Nutricional Semanal",
	FileName:      "plan-nutricional.pdf",
	GeneratedOn:   "Generado el: %s",
	PageOf:        "Página %d de %d",
	DateLayout:    "2/1/2006",

	Breakfast:           "Desayuno",
	Lunch:               "Almuerzo",
	Dinner:              "Cena",
	Snacks:              "Snacks",
	Preparation:         "Preparación",
	FoodGlossary:        "Glosario Nutricional",
	Food:                "Alimento",
	Amount:              "Cantidad",
	Protein:             "Proteína (g)",
	Carbohydrates:       "Carbohidratos (g)",
	Fats:                "Grasas (g)",
	Calories:            "Calorías",
	DailyTotals:         "Totales Diarios",
	SleepRecommendation: "Recomendación de Sueño Personalizada",
	PlanHeading:         "Tu Plan de Nutrición Semanal",
}

// For returns the catalog of a locale, falling back to English for unknown locales.
func For(locale types.Locale) Catalog {
	if locale == types.LocaleSpanish {
		return spanish
	}
	return english
}

// Weekday returns the label of the 1-based weekday ordinal, or "" when the ordinal is out of range.
func (c Catalog) Weekday(ordinal int) string {
	if ordinal < 1 || ordinal > len(c.Weekdays) {
		return ""
	}
	return c.Weekdays[ordinal-1]
}

// DayMessage is the progress message shown while the given weekday is being produced.
func (c Catalog) DayMessage(ordinal int) string {
	day := c.Weekday(ordinal)
	if day == "" {
		return ""
	}
	return fmt.Sprintf(c.Generating, day)
}

// PageLabel renders the footer page counter.
func (c Catalog) PageLabel(page, total int) string {
	return fmt.Sprintf(c.PageOf, page, total)
}

// DateLabel renders the footer generation date.
func (c Catalog) DateLabel(t time.Time) string {
	return fmt.Sprintf(c.GeneratedOn, t.Format(c.DateLayout))
}
