// Package normalize converts raw provider payloads into the fixed internal
// shape the rest of the pipeline assumes. Every field access tolerates
// absence: missing arrays become empty slices, missing strings empty
// strings, and a missing ad position falls back to its 1-based index.
package normalize

import (
	"net/url"
	"strings"

	"github.com/serplens/serpintel/internal/classify"
	"github.com/serplens/serpintel/internal/serpapi"
)

// Caps applied while extracting ad inventory.
const (
	maxAds         = 20
	maxShoppingAds = 12
)

// Organic is a normalized organic listing.
type Organic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Domain  string `json:"domain"`
	Snippet string `json:"snippet"`
}

// Ad is a normalized paid placement. LandingType is always set.
type Ad struct {
	Advertiser  string               `json:"advertiser"`
	Domain      string               `json:"domain"`
	Headline    string               `json:"headline"`
	Headlines   []string             `json:"headlines"`
	Description string               `json:"description"`
	URL         string               `json:"url"`
	Position    int                  `json:"position"`
	LandingType classify.LandingType `json:"landingType"`
}

// Question is a normalized "people also ask" entry.
type Question struct {
	Question string `json:"question"`
	Snippet  string `json:"snippet"`
}

// FeaturedSnippet describes the answer box. Type is nil when no box exists.
type FeaturedSnippet struct {
	Exists bool    `json:"exists"`
	Type   *string `json:"type"`
}

// AdSource labels which payload field ultimately supplied ad inventory.
const (
	AdSourceNone     = "none"
	AdSourceShopping = "shopping_results_fallback"
)

// Organics normalizes the organic listings.
func Organics(p *serpapi.Payload) []Organic {
	out := make([]Organic, 0, len(p.OrganicResults))
	for _, item := range p.OrganicResults {
		out = append(out, Organic{
			Title:   item.Title,
			Link:    item.Link,
			Domain:  Domain(item.Link),
			Snippet: item.Snippet,
		})
	}
	return out
}

// Questions normalizes the "people also ask" entries.
func Questions(p *serpapi.Payload) []Question {
	out := make([]Question, 0, len(p.RelatedQuestions))
	for _, item := range p.RelatedQuestions {
		out = append(out, Question{Question: item.Question, Snippet: item.Snippet})
	}
	return out
}

// Snippet normalizes the answer box. Presence implies existence; a present
// box without a type reports "unknown".
func Snippet(p *serpapi.Payload) FeaturedSnippet {
	box := p.AnswerBox
	if box == nil {
		return FeaturedSnippet{Exists: false, Type: nil}
	}
	t := box.Type
	if t == "" {
		t = box.AnswerType
	}
	if t == "" {
		t = "unknown"
	}
	return FeaturedSnippet{Exists: true, Type: &t}
}

// Ads normalizes raw ad placements and assigns each a landing type.
func Ads(raw []serpapi.RawAd) []Ad {
	out := make([]Ad, 0, len(raw))
	for i, ad := range raw {
		headlines := make([]string, 0, 1+len(ad.Headlines))
		if ad.Title != "" {
			headlines = append(headlines, ad.Title)
		}
		for _, h := range ad.Headlines {
			if h != "" {
				headlines = append(headlines, h)
			}
		}

		link := ad.Link
		if link == "" {
			link = ad.URL
		}
		domain := Domain(link)

		advertiser := firstNonEmpty(ad.Source, ad.DisplayedLink, ad.Domain, domain, "Okänd annonsör")
		if domain == "" {
			domain = advertiser
		}

		headline := ""
		if len(headlines) > 0 {
			headline = headlines[0]
		}

		position := i + 1
		if n, err := ad.Position.Int64(); err == nil && n > 0 {
			position = int(n)
		}

		out = append(out, Ad{
			Advertiser:  advertiser,
			Domain:      domain,
			Headline:    headline,
			Headlines:   headlines,
			Description: ad.Description,
			URL:         link,
			Position:    position,
			LandingType: classify.ClassifyLanding(link),
		})
	}
	return out
}

// ExtractAds resolves ad inventory from the payload by trying fields in
// priority order; the first non-empty field wins. When no ad field carries
// anything, shopping results substitute with synthesized ad-like records.
func ExtractAds(p *serpapi.Payload) ([]serpapi.RawAd, string) {
	candidates := []struct {
		source string
		values []serpapi.RawAd
	}{
		{"ads_results", p.AdsResults},
		{"top_ads", p.TopAds},
		{"bottom_ads", p.BottomAds},
		{"inline_ads", p.InlineAds},
		{"ads", p.Ads},
	}
	for _, c := range candidates {
		if len(c.values) > 0 {
			return capAds(c.values, maxAds), c.source
		}
	}

	shopping := make([]serpapi.RawShopping, 0, len(p.ShoppingResults)+len(p.InlineShoppingResults))
	shopping = append(shopping, p.ShoppingResults...)
	shopping = append(shopping, p.InlineShoppingResults...)
	if len(shopping) > maxShoppingAds {
		shopping = shopping[:maxShoppingAds]
	}

	if len(shopping) == 0 {
		return nil, AdSourceNone
	}

	ads := make([]serpapi.RawAd, 0, len(shopping))
	for _, item := range shopping {
		seller := firstNonEmpty(item.Source, item.Merchant, "Unknown advertiser")
		description := ""
		if item.Price != "" {
			description = "Pris: " + item.Price
		}
		ads = append(ads, serpapi.RawAd{
			Source:        seller,
			Title:         item.Title,
			Description:   description,
			Link:          item.Link,
			DisplayedLink: firstNonEmpty(item.Source, item.Merchant),
		})
	}
	return ads, AdSourceShopping
}

// Domain extracts the host from a link with the www prefix stripped.
// Unparseable links yield an empty domain rather than an error.
func Domain(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func capAds(ads []serpapi.RawAd, n int) []serpapi.RawAd {
	if len(ads) > n {
		return ads[:n]
	}
	return ads
}
