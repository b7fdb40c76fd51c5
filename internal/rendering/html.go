package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"sync"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/types"
)

// PlanGridSelector selects the element that is rasterized for export.
const PlanGridSelector = "#plan-grid"

// DefaultGridWidth is the CSS width of the plan grid in layout pixels.
const DefaultGridWidth = 1024

//go:embed templates/plan.html.tmpl
var templateFS embed.FS

var (
	planTemplate     *template.Template
	planTemplateErr  error
	planTemplateOnce sync.Once
)

type mealView struct {
	Title            string
	Meal             types.Meal
	PreparationLabel string
}

type pageView struct {
	Catalog messages.Catalog
	Plan    *types.PlanResponse
	Width   int
}

func parseTemplate() (*template.Template, error) {
	planTemplateOnce.Do(func() {
		funcs := template.FuncMap{
			"meal": func(title string, meal types.Meal, prep string) mealView {
				return mealView{Title: title, Meal: meal, PreparationLabel: prep}
			},
			"number": func(v float64) string {
				return strconv.FormatFloat(v, 'f', -1, 64)
			},
		}
		planTemplate, planTemplateErr = template.New("plan.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/plan.html.tmpl")
	})
	if planTemplateErr != nil {
		return nil, &TemplateError{Message: "failed to parse plan template", Cause: planTemplateErr}
	}
	return planTemplate, nil
}

// RenderHTML renders a standalone HTML page for plan. The day cards are inside the
// element matched by PlanGridSelector.
func RenderHTML(plan *types.PlanResponse, catalog messages.Catalog, width int) (string, error) {
	if plan == nil {
		return "", &TemplateError{Message: "no plan to render"}
	}
	if width <= 0 {
		width = DefaultGridWidth
	}

	tmpl, err := parseTemplate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageView{Catalog: catalog, Plan: plan, Width: width}); err != nil {
		return "", &TemplateError{Message: "failed to execute plan template", Cause: err}
	}
	return buf.String(), nil
}
