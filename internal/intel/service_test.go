package intel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/serplens/serpintel/internal/market"
	"github.com/serplens/serpintel/internal/metrics"
	"github.com/serplens/serpintel/internal/normalize"
	"github.com/serplens/serpintel/internal/serpapi"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

// fakeSearch returns canned payloads keyed by "MARKET|keyword" and records
// every call. Unknown keys get an empty payload, like a sparse SERP.
type fakeSearch struct {
	payloads map[string]*serpapi.Payload
	err      error
	calls    []string
	nums     []int
}

func (f *fakeSearch) Search(_ context.Context, keyword string, m market.Code, num int) (*serpapi.Payload, error) {
	key := fmt.Sprintf("%s|%s", m, keyword)
	f.calls = append(f.calls, key)
	f.nums = append(f.nums, num)
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.payloads[key]; ok {
		return p, nil
	}
	return &serpapi.Payload{}, nil
}

func newService(serp SearchClient) *Service {
	return NewService(serp, nil, zap.NewNop())
}

func crmPayload() *serpapi.Payload {
	organics := make([]serpapi.RawOrganic, 5)
	for i := range organics {
		organics[i] = serpapi.RawOrganic{
			Title: fmt.Sprintf("CRM-system för småföretag %d", i+1),
			Link:  fmt.Sprintf("https://exempel%d.se/crm", i+1),
		}
	}
	questions := make([]serpapi.RawQuestion, 5)
	for i := range questions {
		questions[i] = serpapi.RawQuestion{Question: fmt.Sprintf("Fråga %d?", i+1)}
	}
	return &serpapi.Payload{OrganicResults: organics, RelatedQuestions: questions}
}

func TestSEOOpportunity_EmptyKeywordRejected(t *testing.T) {
	t.Parallel()

	serp := &fakeSearch{}
	_, err := newService(serp).SEOOpportunity(context.Background(), "   ", market.SE)
	require.ErrorIs(t, err, ErrEmptyKeyword)
	require.Empty(t, serp.calls)
}

func TestSEOOpportunity_ScenarioFavorableKeyword(t *testing.T) {
	t.Parallel()

	serp := &fakeSearch{payloads: map[string]*serpapi.Payload{
		"SE|crm mjukvara": crmPayload(),
	}}
	report, err := newService(serp).SEOOpportunity(context.Background(), "crm mjukvara", market.SE)
	require.NoError(t, err)

	require.Equal(t, []string{"SE|crm mjukvara"}, serp.calls)
	require.Equal(t, []int{10}, serp.nums)

	require.Equal(t, 70, report.OpportunityScore)
	require.Equal(t, []string{
		"Ingen featured snippet (+10)",
		"5 PAA-frågor (+10)",
	}, report.ScoreReasons)

	require.False(t, report.FeaturedSnippet.Exists)
	require.Nil(t, report.FeaturedSnippet.Type)
	require.Equal(t, 5, report.PeopleAlsoAskCount)
	require.Len(t, report.PeopleAlsoAsk, 5)
	require.Zero(t, report.AdsCount)
	require.Len(t, report.TopResults, 5)
	require.Equal(t, 0, report.SerpSummary.BrandOrEcommerceCount)

	// Without a generator the narrative is the rule-based fallback.
	require.Equal(t, "crm mjukvara", report.ContentBrief.H1)
	require.NotEmpty(t, report.ContentGaps)
	require.Len(t, report.ContentBrief.FAQ, 5)
	require.NotEmpty(t, report.Recommendation)
}

func TestSEOOpportunity_CapsTopResultsAndQuestions(t *testing.T) {
	t.Parallel()

	payload := &serpapi.Payload{}
	for i := 0; i < 14; i++ {
		payload.OrganicResults = append(payload.OrganicResults, serpapi.RawOrganic{
			Title: fmt.Sprintf("Resultat %d", i+1),
			Link:  fmt.Sprintf("https://exempel.se/%d", i+1),
		})
		payload.RelatedQuestions = append(payload.RelatedQuestions, serpapi.RawQuestion{
			Question: fmt.Sprintf("Fråga %d?", i+1),
		})
	}

	serp := &fakeSearch{payloads: map[string]*serpapi.Payload{"US|crm": payload}}
	report, err := newService(serp).SEOOpportunity(context.Background(), "crm", market.US)
	require.NoError(t, err)
	require.Len(t, report.TopResults, 10)
	require.Len(t, report.PeopleAlsoAsk, 10)
	require.Equal(t, 10, report.PeopleAlsoAskCount)
}

func TestSEOOpportunity_OnlyDedicatedAdFieldCounts(t *testing.T) {
	t.Parallel()

	// Neither secondary ad fields nor shopping inventory feed the SEO
	// adsCount; only ads_results says how paid-contested the SERP is.
	payload := crmPayload()
	payload.TopAds = []serpapi.RawAd{
		{Source: "Alfa AB", Title: "Boka demo", Link: "https://alfa.se/demo"},
		{Source: "Beta AB", Title: "Prova gratis", Link: "https://beta.se/signup"},
		{Source: "Gamma AB", Title: "Se priser", Link: "https://gamma.se/priser"},
	}
	payload.ShoppingResults = []serpapi.RawShopping{
		{Title: "CRM-paket", Price: "499 kr", Source: "Butik AB"},
	}
	serp := &fakeSearch{payloads: map[string]*serpapi.Payload{"SE|crm mjukvara": payload}}
	report, err := newService(serp).SEOOpportunity(context.Background(), "crm mjukvara", market.SE)
	require.NoError(t, err)
	require.Zero(t, report.AdsCount)
	require.Equal(t, 70, report.OpportunityScore)
	require.NotContains(t, report.ScoreReasons, "3 annonser (-10)")

	payload.AdsResults = payload.TopAds
	report, err = newService(serp).SEOOpportunity(context.Background(), "crm mjukvara", market.SE)
	require.NoError(t, err)
	require.Equal(t, 3, report.AdsCount)
	require.Contains(t, report.ScoreReasons, "3 annonser (-10)")
}

func TestSEOOpportunity_ProviderErrorSurfaces(t *testing.T) {
	t.Parallel()

	serp := &fakeSearch{err: serpapi.ErrProvider}
	_, err := newService(serp).SEOOpportunity(context.Background(), "crm", market.SE)
	require.ErrorIs(t, err, serpapi.ErrProvider)
}

func TestAdIntel_EmptyKeywordRejected(t *testing.T) {
	t.Parallel()

	serp := &fakeSearch{}
	_, err := newService(serp).AdIntel(context.Background(), "", market.SE)
	require.ErrorIs(t, err, ErrEmptyKeyword)
	require.Empty(t, serp.calls)
}

func TestAdIntel_ShortCircuitsOnFirstNonEmptyExtraction(t *testing.T) {
	t.Parallel()

	withAds := &serpapi.Payload{TopAds: []serpapi.RawAd{
		{Source: "Alfa AB", Title: "Bokföring med demo", Link: "https://alfa.se/demo"},
		{Source: "Beta AB", Title: "Prova gratis idag", Link: "https://beta.se/pricing"},
		{Source: "Alfa AB", Title: "Boka demo", Link: "https://alfa.se/boka-demo"},
	}}
	serp := &fakeSearch{payloads: map[string]*serpapi.Payload{
		"SE|bokföring pris": withAds,
	}}

	report, err := newService(serp).AdIntel(context.Background(), "bokföring", market.SE)
	require.NoError(t, err)

	// First plan was empty, second won; nothing after it was fetched.
	require.Equal(t, []string{"SE|bokföring", "SE|bokföring pris"}, serp.calls)
	require.Equal(t, []int{20, 20}, serp.nums)

	require.Equal(t, "bokföring", report.Keyword)
	require.Equal(t, "bokföring pris", report.QueryUsed)
	require.Equal(t, market.SE, report.MarketUsed)
	require.Equal(t, "top_ads", report.AdsSource)
	require.Equal(t, []string{"SE: bokföring", "SE: bokföring pris"}, report.AttemptedQueries)

	require.Equal(t, 3, report.Totals.AdCount)
	require.Equal(t, 2, report.Totals.UniqueAdvertisers)
	require.Len(t, report.Ads, 3)
	require.Equal(t, "Alfa AB", report.Advertisers[0].Advertiser)
	require.Equal(t, 2, report.Advertisers[0].Count)
	require.NotEmpty(t, report.CTACounts)
	require.NotEmpty(t, report.LandingTypeDistribution)
	require.Contains(t, report.RecurringMessages, "Gratis demo")
	require.Equal(t, "rule_based", report.Insights.Source)
}

func TestAdIntel_ExhaustedPlansIsValidEmptyReport(t *testing.T) {
	t.Parallel()

	serp := &fakeSearch{}
	report, err := newService(serp).AdIntel(context.Background(), "bokföring", market.SE)
	require.NoError(t, err)

	// Every plan ran, none produced ads.
	require.Len(t, serp.calls, 10)
	require.Len(t, report.AttemptedQueries, 10)
	require.Equal(t, "SE: bokföring", report.AttemptedQueries[0])

	require.Equal(t, normalize.AdSourceNone, report.AdsSource)
	// The requested query and market survive into the empty terminal state.
	require.Equal(t, "bokföring", report.QueryUsed)
	require.Equal(t, market.SE, report.MarketUsed)
	require.Zero(t, report.Totals.AdCount)
	require.Empty(t, report.Ads)
	require.Empty(t, report.RecurringMessages)
	require.Contains(t, report.Competition.Reasons, "Inga annonser i SERP (+15)")
	require.NotEmpty(t, report.Insights.ABTestIdea)
}

func TestAdIntel_ShoppingFallbackTagged(t *testing.T) {
	t.Parallel()

	payload := &serpapi.Payload{ShoppingResults: []serpapi.RawShopping{
		{Title: "Bokföringsprogram", Price: "199 kr", Source: "Butik AB", Link: "https://butik.se/produkt"},
	}}
	serp := &fakeSearch{payloads: map[string]*serpapi.Payload{"SE|bokföring": payload}}

	report, err := newService(serp).AdIntel(context.Background(), "bokföring", market.SE)
	require.NoError(t, err)
	require.Equal(t, normalize.AdSourceShopping, report.AdsSource)
	require.Equal(t, 1, report.Totals.AdCount)
	require.Equal(t, "Butik AB", report.Ads[0].Advertiser)
	require.Equal(t, "Pris: 199 kr", report.Ads[0].Description)
}

func TestAdIntel_ProviderErrorSurfaces(t *testing.T) {
	t.Parallel()

	serp := &fakeSearch{err: errors.New("quota exceeded")}
	_, err := newService(serp).AdIntel(context.Background(), "bokföring", market.SE)
	require.Error(t, err)
	require.Len(t, serp.calls, 1)
}

func TestAdIntel_DeterministicWithoutGenerator(t *testing.T) {
	t.Parallel()

	payload := &serpapi.Payload{AdsResults: []serpapi.RawAd{
		{Source: "Alfa AB", Title: "Boka demo", Link: "https://alfa.se/demo"},
		{Source: "Beta AB", Title: "Gratis test", Link: "https://beta.se/signup"},
	}}
	build := func() *AdReport {
		serp := &fakeSearch{payloads: map[string]*serpapi.Payload{"SE|bokföring": payload}}
		report, err := newService(serp).AdIntel(context.Background(), "bokföring", market.SE)
		require.NoError(t, err)
		return report
	}
	require.Equal(t, build(), build())
}
