// Package insights produces the narrative layer of a report: rule-based
// fallbacks that always exist, plus an optional AI overlay that is merged
// field by field and can never replace a populated field with nothing.
package insights

import (
	"fmt"

	"github.com/serplens/serpintel/internal/normalize"
	"github.com/serplens/serpintel/internal/scoring"
)

// Insight sources.
const (
	SourceRuleBased = "rule_based"
	SourceAI        = "ai"
)

// Field cardinality caps, shared by fallback construction and AI merge.
const (
	maxContentGaps  = 4
	maxBriefH2      = 7
	maxBriefFAQ     = 6
	maxCopyClusters = 5
	maxSummaryLines = 6
	maxSuggestions  = 3
	maxExamples     = 3
)

// CopyCluster groups ads that push the same message.
type CopyCluster struct {
	Name     string   `json:"name"`
	Summary  string   `json:"summary"`
	Examples []string `json:"examples"`
}

// Insights is the ad-intelligence narrative.
type Insights struct {
	Source                     string        `json:"source"`
	CopyClusters               []CopyCluster `json:"copyClusters"`
	MarketSummary              []string      `json:"marketSummary"`
	DifferentiationSuggestions []string      `json:"differentiationSuggestions"`
	ABTestIdea                 string        `json:"abTestIdea"`
}

// ContentBrief outlines a piece of content targeting the keyword.
type ContentBrief struct {
	H1  string   `json:"h1"`
	H2  []string `json:"h2"`
	FAQ []string `json:"faq"`
	CTA string   `json:"cta"`
}

// ContentPlan is the SEO-content narrative.
type ContentPlan struct {
	Source      string       `json:"source"`
	ContentGaps []string     `json:"contentGaps"`
	Brief       ContentBrief `json:"contentBrief"`
}

// FallbackContentPlan builds the deterministic content plan used when the
// AI overlay is unavailable or malformed.
func FallbackContentPlan(keyword string, questions []normalize.Question) ContentPlan {
	faq := make([]string, 0, maxBriefFAQ)
	for _, q := range questions {
		if q.Question == "" {
			continue
		}
		faq = append(faq, q.Question)
		if len(faq) == maxBriefFAQ {
			break
		}
	}

	return ContentPlan{
		Source: SourceRuleBased,
		ContentGaps: []string{
			"Tydligare jämförelse mellan alternativ i toppresultaten",
			"Mer konkret struktur med steg och beslutskriterier",
			"Bättre täckning av vanliga frågor från PAA",
		},
		Brief: ContentBrief{
			H1: keyword,
			H2: []string{
				"Vad betyder " + keyword + " i praktiken?",
				"Hur väljer du rätt alternativ?",
				"Vanliga misstag och hur du undviker dem",
				"Jämförelse av de vanligaste alternativen",
			},
			FAQ: faq,
			CTA: "Läs vidare till nästa steg i din beslutsprocess.",
		},
	}
}

// FallbackAdInsights builds the deterministic ad narrative from the
// aggregated counts. Lists are non-empty whenever the input ad set was.
func FallbackAdInsights(
	advertisers []scoring.AdvertiserCount,
	ctas []scoring.CTACount,
	landingTypes []scoring.LandingTypeCount,
) Insights {
	var clusters []CopyCluster
	var summary []string

	if len(ctas) > 0 {
		top := ctas[0]
		clusters = append(clusters, CopyCluster{
			Name:     "CTA-fokuserat budskap",
			Examples: []string{top.Term},
			Summary:  fmt.Sprintf("Många annonser trycker på %s i rubrik/beskrivning.", top.Term),
		})
	}
	if len(landingTypes) > 0 {
		top := landingTypes[0]
		clusters = append(clusters, CopyCluster{
			Name:     "Landningsmönster",
			Examples: []string{string(top.Type)},
			Summary:  fmt.Sprintf("Vanligaste landningssida är %s.", top.Type),
		})
	}

	if len(advertisers) > 0 {
		top := advertisers[0]
		summary = append(summary, fmt.Sprintf("%s är mest aktiv med %d annonser.", top.Advertiser, top.Count))
	}
	if len(ctas) > 0 {
		summary = append(summary, fmt.Sprintf("Vanligaste CTA-term är %q.", ctas[0].Term))
	}
	if len(landingTypes) > 0 {
		summary = append(summary, fmt.Sprintf("Flest annonser leder till landningssidor av typen %s.", landingTypes[0].Type))
	}

	return Insights{
		Source:        SourceRuleBased,
		CopyClusters:  capClusters(clusters, maxCopyClusters),
		MarketSummary: capStrings(summary, maxSummaryLines),
		DifferentiationSuggestions: []string{
			"Testa en tydligare value proposition än marknadens standardbudskap.",
			"Differentiera med konkret bevis (kundcase/siffra) i rubrik eller beskrivning.",
			"Använd en landningssida med skarpare nästa steg än konkurrenterna.",
		},
		ABTestIdea: `A/B-testa CTA: "Boka demo" mot "Prova gratis" och jämför CTR + konvertering.`,
	}
}

func capStrings(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func capClusters(values []CopyCluster, n int) []CopyCluster {
	if len(values) > n {
		return values[:n]
	}
	return values
}
