// Package intel orchestrates the two report pipelines: it fetches raw
// payloads, runs normalization and scoring, and layers the optional AI
// narrative on top of the rule-based fallback.
package intel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/serplens/serpintel/internal/insights"
	"github.com/serplens/serpintel/internal/market"
	"github.com/serplens/serpintel/internal/metrics"
	"github.com/serplens/serpintel/internal/normalize"
	"github.com/serplens/serpintel/internal/planner"
	"github.com/serplens/serpintel/internal/scoring"
	"github.com/serplens/serpintel/internal/serpapi"
)

// ErrEmptyKeyword rejects requests whose keyword is blank after trimming.
var ErrEmptyKeyword = errors.New("keyword must not be empty")

// Result counts requested per flow, and report-level caps.
const (
	seoResultCount = 10
	adResultCount  = 20

	maxTopResults = 10
	maxQuestions  = 10
)

// Overlay flow labels used in metrics.
const (
	flowContent = "content"
	flowAds     = "ads"
)

// SearchClient fetches one raw provider payload per call.
type SearchClient interface {
	Search(ctx context.Context, keyword string, m market.Code, num int) (*serpapi.Payload, error)
}

// Service runs the report pipelines. The generator may be disabled; every
// report then carries its rule-based fallback narrative.
type Service struct {
	serp SearchClient
	gen  *insights.Generator
	log  *zap.Logger
}

// NewService wires a service from its collaborators.
func NewService(serp SearchClient, gen *insights.Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{serp: serp, gen: gen, log: log}
}

// SEOOpportunity builds the content-opportunity report for one keyword in
// one market. Provider errors surface; overlay failures never do.
func (s *Service) SEOOpportunity(ctx context.Context, keyword string, m market.Code) (*SEOReport, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	payload, err := s.serp.Search(ctx, keyword, m, seoResultCount)
	if err != nil {
		metrics.ObserveUpstreamFetch(string(m), "error")
		return nil, fmt.Errorf("fetch serp for %q: %w", keyword, err)
	}
	metrics.ObserveUpstreamFetch(string(m), "ok")

	top := capOrganics(normalize.Organics(payload), maxTopResults)
	questions := capQuestions(normalize.Questions(payload), maxQuestions)
	snippet := normalize.Snippet(payload)
	adsCount := countAds(payload)

	signals := scoring.Summarize(top, len(questions), snippet.Exists, adsCount)
	outcome := scoring.SEOOpportunity(signals)

	titles := make([]string, 0, len(top))
	for _, r := range top {
		titles = append(titles, r.Title)
	}
	format := scoring.DetectFormat(titles)

	plan := s.gen.ContentAnalysis(ctx, insights.ContentRequest{
		Keyword:         keyword,
		Market:          string(m),
		TopResults:      top,
		PeopleAlsoAsk:   questions,
		FeaturedSnippet: snippet,
		AdsCount:        adsCount,
	}, insights.FallbackContentPlan(keyword, questions))
	metrics.ObserveOverlay(flowContent, plan.Source)

	s.log.Info("seo report built",
		zap.String("keyword", keyword),
		zap.String("market", string(m)),
		zap.Int("score", outcome.OpportunityScore),
		zap.String("insights_source", plan.Source),
	)

	return &SEOReport{
		Keyword:            keyword,
		Market:             m,
		OpportunityScore:   outcome.OpportunityScore,
		ScoreReasons:       outcome.Reasons,
		FeaturedSnippet:    snippet,
		PeopleAlsoAskCount: len(questions),
		PeopleAlsoAsk:      questions,
		AdsCount:           adsCount,
		TopResults:         top,
		ContentGaps:        plan.ContentGaps,
		ContentBrief:       plan.Brief,
		SerpSummary: SerpSummary{
			BlogGuideCount:        signals.BlogGuideCount,
			BrandOrEcommerceCount: signals.BrandOrEcommerceCount,
		},
		SerpFormat:     format,
		Recommendation: scoring.Recommendation(outcome.OpportunityScore, format),
	}, nil
}

// AdIntel builds the ad-intelligence report for one keyword in one market.
// Plans run strictly in order and the first non-empty extraction wins; an
// exhausted plan list is a valid empty report, not an error.
func (s *Service) AdIntel(ctx context.Context, keyword string, m market.Code) (*AdReport, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	plans := planner.Build(keyword, m)

	// The requested keyword/market stand even when no plan yields ads, so
	// the empty terminal state still reports a valid market.
	var (
		ads        []normalize.Ad
		attempted  = make([]string, 0, len(plans))
		queryUsed  = keyword
		marketUsed = m
		adsSource  = normalize.AdSourceNone
	)
	for _, p := range plans {
		attempted = append(attempted, fmt.Sprintf("%s: %s", p.Market, p.Keyword))

		payload, err := s.serp.Search(ctx, p.Keyword, p.Market, adResultCount)
		if err != nil {
			metrics.ObserveUpstreamFetch(string(p.Market), "error")
			metrics.ObservePlanAttempts(len(attempted))
			return nil, fmt.Errorf("fetch serp for %q: %w", p.Keyword, err)
		}
		metrics.ObserveUpstreamFetch(string(p.Market), "ok")

		raw, source := normalize.ExtractAds(payload)
		if len(raw) == 0 {
			continue
		}
		ads = normalize.Ads(raw)
		queryUsed = p.Keyword
		marketUsed = p.Market
		adsSource = source
		break
	}
	metrics.ObservePlanAttempts(len(attempted))

	advertisers := scoring.SummarizeAdvertisers(ads)
	ctas := scoring.SummarizeCTATerms(ads)
	landingTypes := scoring.SummarizeLandingTypes(ads)

	topAdvertiserCount := 0
	if len(advertisers) > 0 {
		topAdvertiserCount = advertisers[0].Count
	}
	competition := scoring.AdCompetition(scoring.AdSignals{
		AdCount:            len(ads),
		UniqueAdvertisers:  scoring.UniqueAdvertisers(ads),
		TopAdvertiserCount: topAdvertiserCount,
		CTAHits:            scoring.TotalCTAHits(ctas),
	})

	ins := s.gen.AdIntelligence(ctx, insights.AdRequest{
		Keyword: keyword,
		Market:  string(m),
		Ads:     adSummaries(ads),
	}, insights.FallbackAdInsights(advertisers, ctas, landingTypes))
	metrics.ObserveOverlay(flowAds, ins.Source)

	s.log.Info("ad report built",
		zap.String("keyword", keyword),
		zap.String("market", string(m)),
		zap.String("ads_source", adsSource),
		zap.Int("ad_count", len(ads)),
		zap.Int("attempts", len(attempted)),
		zap.String("insights_source", ins.Source),
	)

	return &AdReport{
		Keyword:                 keyword,
		Market:                  m,
		QueryUsed:               queryUsed,
		MarketUsed:              marketUsed,
		AdsSource:               adsSource,
		AttemptedQueries:        attempted,
		Totals:                  AdTotals{AdCount: len(ads), UniqueAdvertisers: scoring.UniqueAdvertisers(ads)},
		Advertisers:             advertisers,
		CTACounts:               ctas,
		LandingTypeDistribution: landingTypes,
		Ads:                     ads,
		RecurringMessages:       scoring.RecurringMessages(ads),
		Competition:             competition,
		Insights:                ins,
	}, nil
}

// countAds counts paid placements for SEO scoring. Only the dedicated ad
// field counts here; the other ad fields and the shopping substitute stand
// in for ads on the ad-intel side only, not when judging how contested the
// SERP itself is.
func countAds(p *serpapi.Payload) int {
	return len(p.AdsResults)
}

func adSummaries(ads []normalize.Ad) []insights.AdSummary {
	out := make([]insights.AdSummary, 0, len(ads))
	for _, ad := range ads {
		out = append(out, insights.AdSummary{
			Advertiser:  ad.Advertiser,
			Domain:      ad.Domain,
			Headline:    ad.Headline,
			Headlines:   ad.Headlines,
			Description: ad.Description,
			LandingType: string(ad.LandingType),
		})
	}
	return out
}

func capOrganics(in []normalize.Organic, n int) []normalize.Organic {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func capQuestions(in []normalize.Question, n int) []normalize.Question {
	if len(in) > n {
		return in[:n]
	}
	return in
}
