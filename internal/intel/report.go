package intel

import (
	"github.com/serplens/serpintel/internal/insights"
	"github.com/serplens/serpintel/internal/market"
	"github.com/serplens/serpintel/internal/normalize"
	"github.com/serplens/serpintel/internal/scoring"
)

// SerpSummary is the classified-count breakdown exposed alongside the score.
type SerpSummary struct {
	BlogGuideCount        int `json:"blogGuideCount"`
	BrandOrEcommerceCount int `json:"brandOrEcommerceCount"`
}

// SEOReport is the content-opportunity result for a keyword/market pair.
type SEOReport struct {
	Keyword            string                    `json:"keyword"`
	Market             market.Code               `json:"market"`
	OpportunityScore   int                       `json:"opportunityScore"`
	ScoreReasons       []string                  `json:"scoreReasons"`
	FeaturedSnippet    normalize.FeaturedSnippet `json:"featuredSnippet"`
	PeopleAlsoAskCount int                       `json:"peopleAlsoAskCount"`
	PeopleAlsoAsk      []normalize.Question      `json:"peopleAlsoAsk"`
	AdsCount           int                       `json:"adsCount"`
	TopResults         []normalize.Organic       `json:"topResults"`
	ContentGaps        []string                  `json:"contentGaps"`
	ContentBrief       insights.ContentBrief     `json:"contentBrief"`
	SerpSummary        SerpSummary               `json:"serpSummary"`
	SerpFormat         scoring.Format            `json:"serpFormat"`
	Recommendation     string                    `json:"recommendation"`
}

// AdTotals are the headline counts of an ad-intelligence result.
type AdTotals struct {
	AdCount           int `json:"adCount"`
	UniqueAdvertisers int `json:"uniqueAdvertisers"`
}

// AdReport is the ad-intelligence result for a keyword/market pair.
type AdReport struct {
	Keyword                 string                     `json:"keyword"`
	Market                  market.Code                `json:"market"`
	QueryUsed               string                     `json:"queryUsed"`
	MarketUsed              market.Code                `json:"marketUsed"`
	AdsSource               string                     `json:"adsSource"`
	AttemptedQueries        []string                   `json:"attemptedQueries"`
	Totals                  AdTotals                   `json:"totals"`
	Advertisers             []scoring.AdvertiserCount  `json:"advertisers"`
	CTACounts               []scoring.CTACount         `json:"ctaCounts"`
	LandingTypeDistribution []scoring.LandingTypeCount `json:"landingTypeDistribution"`
	Ads                     []normalize.Ad             `json:"ads"`
	RecurringMessages       []string                   `json:"recurringMessages"`
	Competition             scoring.Outcome            `json:"competition"`
	Insights                insights.Insights          `json:"insights"`
}
