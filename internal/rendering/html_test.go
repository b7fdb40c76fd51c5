package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/testutil"
	"github.com/jonathan/nutriplan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_DayCards(t *testing.T) {
	plan := testutil.Plan(7)
	page, err := RenderHTML(plan, messages.For(types.LocaleEnglish), 0)
	require.NoError(t, err)

	doc := parseHTML(t, page)
	grid := doc.Find(PlanGridSelector)
	require.Equal(t, 1, grid.Length())

	days := grid.Find("section.day")
	require.Equal(t, 7, days.Length())
	days.Each(func(i int, s *goquery.Selection) {
		assert.Equal(t, plan.WeeklyPlan[i].Day, strings.TrimSpace(s.Find("h3").Text()))
		assert.Equal(t, 4, s.Find(".meal").Length())
		assert.Equal(t, 3, s.Find(".glossary tbody tr").Length())
	})

	first := days.First()
	assert.Contains(t, first.Find(".meal p").First().Text(), "Oatmeal with berries")
	assert.Equal(t, "790 kcal", first.Find(".totals .calories strong").Text())

	assert.Equal(t, "Your Weekly Nutrition Plan", doc.Find("h2").Text())
	assert.Contains(t, doc.Find(".sleep p").Text(), plan.SleepRecommendation)
	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
}

func TestRenderHTML_SpanishLabels(t *testing.T) {
	page, err := RenderHTML(testutil.Plan(7), messages.For(types.LocaleSpanish), 800)
	require.NoError(t, err)

	doc := parseHTML(t, page)
	assert.Equal(t, "Desayuno", doc.Find(".meal h4").First().Text())
	assert.Equal(t, "Recomendación de Sueño Personalizada", doc.Find(".sleep h3").Text())
	assert.Contains(t, page, "width: 800px")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	plan := testutil.Plan(7)
	plan.WeeklyPlan[0].Breakfast.Description = `<script>alert("x")</script>`

	page, err := RenderHTML(plan, messages.For(types.LocaleEnglish), 0)
	require.NoError(t, err)

	doc := parseHTML(t, page)
	assert.Equal(t, 0, doc.Find(PlanGridSelector+" script").Length())
	assert.Contains(t, doc.Find(".meal p").First().Text(), `<script>`)
}

func TestRenderHTML_NoSleepRecommendation(t *testing.T) {
	plan := testutil.Plan(7)
	plan.SleepRecommendation = ""

	page, err := RenderHTML(plan, messages.For(types.LocaleEnglish), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, parseHTML(t, page).Find(".sleep").Length())
}

func TestRenderHTML_NilPlan(t *testing.T) {
	_, err := RenderHTML(nil, messages.For(types.LocaleEnglish), 0)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}
