package insights

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/serplens/serpintel/internal/classify"
	"github.com/serplens/serpintel/internal/normalize"
	"github.com/serplens/serpintel/internal/scoring"
)

func testFallbackInsights() Insights {
	return FallbackAdInsights(
		[]scoring.AdvertiserCount{{Advertiser: "Alfa AB", Count: 3}},
		[]scoring.CTACount{{Term: "demo", Count: 4}},
		[]scoring.LandingTypeCount{{Type: classify.LandingPricing, Count: 2}},
	)
}

func TestDecodeObject_RepairsMalformedJSON(t *testing.T) {
	t.Parallel()

	// Single quotes and unquoted keys are typical LLM slop.
	fields := decodeObject("{abTestIdea: 'Testa X mot Y'}")
	require.NotNil(t, fields)
	require.Contains(t, fields, "abTestIdea")

	require.Nil(t, decodeObject(""))
	require.Nil(t, decodeObject("inte json alls ((("))
	require.Nil(t, decodeObject(`["en", "lista"]`))
}

func TestMergeAdInsights_FieldLevelFallback(t *testing.T) {
	t.Parallel()

	fallback := testFallbackInsights()

	// marketSummary is well-formed, everything else is missing or broken.
	fields := decodeObject(`{
		"marketSummary": ["Alfa AB dominerar.", "Demo är vanligaste CTA."],
		"copyClusters": "fel typ",
		"differentiationSuggestions": [],
		"abTestIdea": "   "
	}`)
	require.NotNil(t, fields)

	merged := mergeAdInsights(fields, fallback)
	require.Equal(t, SourceAI, merged.Source)
	require.Equal(t, []string{"Alfa AB dominerar.", "Demo är vanligaste CTA."}, merged.MarketSummary)
	require.Equal(t, fallback.CopyClusters, merged.CopyClusters)
	require.Equal(t, fallback.DifferentiationSuggestions, merged.DifferentiationSuggestions)
	require.Equal(t, fallback.ABTestIdea, merged.ABTestIdea)
}

func TestMergeAdInsights_NeverEmptiesPopulatedField(t *testing.T) {
	t.Parallel()

	fallback := testFallbackInsights()
	require.NotEmpty(t, fallback.CopyClusters)
	require.NotEmpty(t, fallback.MarketSummary)

	merged := mergeAdInsights(decodeObject(`{"copyClusters": [], "marketSummary": ["", "  "]}`), fallback)
	require.NotEmpty(t, merged.CopyClusters)
	require.NotEmpty(t, merged.MarketSummary)
}

func TestMergeAdInsights_CapsAndFilters(t *testing.T) {
	t.Parallel()

	merged := mergeAdInsights(decodeObject(`{
		"copyClusters": [
			{"name": "A", "summary": "s", "examples": ["1", "2", "3", "4"]},
			{"name": "", "summary": "namnlös kluster ignoreras"},
			{"name": "B"}, {"name": "C"}, {"name": "D"}, {"name": "E"}, {"name": "F"}
		],
		"marketSummary": ["1", "2", "3", "4", "5", "6", "7"]
	}`), testFallbackInsights())

	require.Len(t, merged.CopyClusters, maxCopyClusters)
	require.Len(t, merged.CopyClusters[0].Examples, maxExamples)
	require.Len(t, merged.MarketSummary, maxSummaryLines)
}

func TestMergeContentPlan_BriefFieldsIndependent(t *testing.T) {
	t.Parallel()

	fallback := FallbackContentPlan("crm mjukvara", []normalize.Question{
		{Question: "Vad är CRM?"},
		{Question: "Vad kostar CRM?"},
	})

	fields := decodeObject(`{
		"contentGaps": ["Jämförelsetabell saknas", "Priser saknas"],
		"contentBrief": {
			"h1": "  CRM-mjukvara: komplett guide  ",
			"h2": 42,
			"faq": [],
			"cta": "Boka en genomgång"
		}
	}`)
	merged := mergeContentPlan(fields, fallback)

	require.Equal(t, SourceAI, merged.Source)
	require.Equal(t, []string{"Jämförelsetabell saknas", "Priser saknas"}, merged.ContentGaps)
	require.Equal(t, "CRM-mjukvara: komplett guide", merged.Brief.H1)
	require.Equal(t, fallback.Brief.H2, merged.Brief.H2)
	require.Equal(t, fallback.Brief.FAQ, merged.Brief.FAQ)
	require.Equal(t, "Boka en genomgång", merged.Brief.CTA)
}

func TestMergeContentPlan_BrokenBriefKeepsFallbackBrief(t *testing.T) {
	t.Parallel()

	fallback := FallbackContentPlan("crm", nil)
	merged := mergeContentPlan(decodeObject(`{"contentBrief": "inte ett objekt"}`), fallback)
	require.Equal(t, fallback.Brief, merged.Brief)
	require.Equal(t, fallback.ContentGaps, merged.ContentGaps)
}

func TestFallbackContentPlan_FAQFromQuestions(t *testing.T) {
	t.Parallel()

	questions := make([]normalize.Question, 8)
	for i := range questions {
		questions[i] = normalize.Question{Question: "Fråga?"}
	}
	plan := FallbackContentPlan("crm", questions)
	require.Equal(t, SourceRuleBased, plan.Source)
	require.Len(t, plan.Brief.FAQ, maxBriefFAQ)
	require.Equal(t, "crm", plan.Brief.H1)
	require.Len(t, plan.ContentGaps, 3)
	require.NotEmpty(t, plan.Brief.CTA)
}

func TestFallbackAdInsights_EmptyInputStillPopulated(t *testing.T) {
	t.Parallel()

	got := FallbackAdInsights(nil, nil, nil)
	require.Equal(t, SourceRuleBased, got.Source)
	require.Empty(t, got.CopyClusters)
	require.Empty(t, got.MarketSummary)
	require.NotEmpty(t, got.DifferentiationSuggestions)
	require.NotEmpty(t, got.ABTestIdea)
}
