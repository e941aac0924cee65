// Package scoring derives bounded opportunity scores from classified SERP
// signals. Every function is deterministic and side-effect free: a fixed
// baseline, fixed additive adjustments, and an ordered reason trail that
// records each adjustment that fired.
package scoring

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/serplens/serpintel/internal/classify"
	"github.com/serplens/serpintel/internal/normalize"
)

const baseline = 50

// Outcome is a clamped score plus the reasons that produced it, in trigger
// order. The reasons are the audit trail, not decoration.
type Outcome struct {
	OpportunityScore int      `json:"opportunityScore"`
	Reasons          []string `json:"reasons"`
}

// SerpSignals aggregates the counts the SEO-opportunity score is built from.
type SerpSignals struct {
	BlogGuideCount        int  `json:"blogGuideCount"`
	BrandOrEcommerceCount int  `json:"brandOrEcommerceCount"`
	PAACount              int  `json:"paaCount"`
	HasFeaturedSnippet    bool `json:"hasFeaturedSnippet"`
	AdsCount              int  `json:"adsCount"`
}

// Summarize classifies the top organic results into the aggregate counts
// used by SEOOpportunity.
func Summarize(results []normalize.Organic, paaCount int, hasSnippet bool, adsCount int) SerpSignals {
	s := SerpSignals{
		PAACount:           paaCount,
		HasFeaturedSnippet: hasSnippet,
		AdsCount:           adsCount,
	}
	for _, r := range results {
		if classify.IsBlogGuideTitle(r.Title) {
			s.BlogGuideCount++
		}
		if classify.IsBrandOrEcommerce(r.Title, r.Link, r.Domain) {
			s.BrandOrEcommerceCount++
		}
	}
	return s
}

// SEOOpportunity scores how favorable a keyword looks for content
// investment. Baseline 50; each fixed-threshold adjustment appends a reason
// carrying the triggering count and the signed delta.
func SEOOpportunity(in SerpSignals) Outcome {
	score := baseline
	var reasons []string

	if !in.HasFeaturedSnippet {
		score += 10
		reasons = append(reasons, "Ingen featured snippet (+10)")
	}
	if in.PAACount >= 4 {
		score += 10
		reasons = append(reasons, fmt.Sprintf("%d PAA-frågor (+10)", in.PAACount))
	}
	if in.BlogGuideCount >= 3 {
		score += 10
		reasons = append(reasons, fmt.Sprintf("%d blog/guide-resultat (+10)", in.BlogGuideCount))
	}
	if in.BrandOrEcommerceCount >= 4 {
		score -= 15
		reasons = append(reasons, fmt.Sprintf("%d varumärken/e-commerce i topp 10 (-15)", in.BrandOrEcommerceCount))
	}
	if in.AdsCount >= 3 {
		score -= 10
		reasons = append(reasons, fmt.Sprintf("%d annonser (-10)", in.AdsCount))
	}

	return Outcome{OpportunityScore: clamp(score), Reasons: reasons}
}

// AdSignals aggregates the counts the ad-competition score is built from.
type AdSignals struct {
	AdCount            int `json:"adCount"`
	UniqueAdvertisers  int `json:"uniqueAdvertisers"`
	TopAdvertiserCount int `json:"topAdvertiserCount"`
	CTAHits            int `json:"ctaHits"`
}

// AdCompetition scores how contested a keyword's paid inventory is, in the
// same baseline-and-bounded-adjustments shape as SEOOpportunity.
func AdCompetition(in AdSignals) Outcome {
	score := baseline
	var reasons []string

	if in.AdCount == 0 {
		score += 15
		reasons = append(reasons, "Inga annonser i SERP (+15)")
	}
	if in.AdCount >= 8 {
		score -= 15
		reasons = append(reasons, fmt.Sprintf("%d annonser i SERP (-15)", in.AdCount))
	}
	if in.UniqueAdvertisers >= 5 {
		score -= 10
		reasons = append(reasons, fmt.Sprintf("%d unika annonsörer (-10)", in.UniqueAdvertisers))
	}
	if in.AdCount > 0 && in.TopAdvertiserCount*2 >= in.AdCount {
		score += 10
		reasons = append(reasons, fmt.Sprintf("En annonsör står för %d av %d annonser (+10)", in.TopAdvertiserCount, in.AdCount))
	}
	if in.CTAHits >= 5 {
		score -= 5
		reasons = append(reasons, fmt.Sprintf("%d CTA-träffar i annonstext (-5)", in.CTAHits))
	}

	return Outcome{OpportunityScore: clamp(score), Reasons: reasons}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// AdvertiserCount is one advertiser's share of the ad set.
type AdvertiserCount struct {
	Advertiser string `json:"advertiser"`
	Count      int    `json:"count"`
}

// CTACount is one CTA term's whole-word frequency across ad copy.
type CTACount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// LandingTypeCount is one landing type's share of the ad set.
type LandingTypeCount struct {
	Type  classify.LandingType `json:"type"`
	Count int                  `json:"count"`
}

// ctaTerms are the fixed CTA vocabulary counted across ad copy.
var ctaTerms = []string{"demo", "gratis", "rabatt", "offert", "boka", "prova"}

// SummarizeAdvertisers counts ads per advertiser, most active first.
// Ties break alphabetically so identical inputs always produce identical
// output.
func SummarizeAdvertisers(ads []normalize.Ad) []AdvertiserCount {
	counts := map[string]int{}
	for _, ad := range ads {
		counts[ad.Advertiser]++
	}
	out := make([]AdvertiserCount, 0, len(counts))
	for advertiser, count := range counts {
		out = append(out, AdvertiserCount{Advertiser: advertiser, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Advertiser < out[j].Advertiser
	})
	return out
}

// UniqueAdvertisers counts distinct advertisers in the ad set.
func UniqueAdvertisers(ads []normalize.Ad) int {
	seen := map[string]struct{}{}
	for _, ad := range ads {
		seen[ad.Advertiser] = struct{}{}
	}
	return len(seen)
}

// SummarizeCTATerms counts whole-word CTA-term occurrences across all ad
// headlines and descriptions. Terms that never occur are omitted.
func SummarizeCTATerms(ads []normalize.Ad) []CTACount {
	var parts []string
	for _, ad := range ads {
		if ad.Headline != "" {
			parts = append(parts, ad.Headline)
		}
		parts = append(parts, ad.Headlines...)
		if ad.Description != "" {
			parts = append(parts, ad.Description)
		}
	}
	corpus := strings.ToLower(strings.Join(parts, " \n"))

	out := make([]CTACount, 0, len(ctaTerms))
	for _, term := range ctaTerms {
		if n := countWholeWord(corpus, term); n > 0 {
			out = append(out, CTACount{Term: term, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// SummarizeLandingTypes counts ads per landing type, most common first.
func SummarizeLandingTypes(ads []normalize.Ad) []LandingTypeCount {
	counts := map[classify.LandingType]int{}
	for _, ad := range ads {
		counts[ad.LandingType]++
	}
	out := make([]LandingTypeCount, 0, len(counts))
	for landingType, count := range counts {
		out = append(out, LandingTypeCount{Type: landingType, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// countWholeWord counts word-boundary matches of term in text. Boundary
// matching keeps "demo" from also counting "demos" inflections' substrings
// like "demokrati".
func countWholeWord(text, term string) int {
	if text == "" || term == "" {
		return 0
	}
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// TotalCTAHits sums all CTA-term counts, for AdSignals.
func TotalCTAHits(counts []CTACount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
