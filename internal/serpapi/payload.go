package serpapi

import "encoding/json"

// Payload is the raw search-provider response. Every field is optional;
// downstream code must never assume any of them is present.
type Payload struct {
	Error string `json:"error,omitempty"`

	OrganicResults []RawOrganic `json:"organic_results,omitempty"`

	AdsResults []RawAd `json:"ads_results,omitempty"`
	TopAds     []RawAd `json:"top_ads,omitempty"`
	BottomAds  []RawAd `json:"bottom_ads,omitempty"`
	InlineAds  []RawAd `json:"inline_ads,omitempty"`
	Ads        []RawAd `json:"ads,omitempty"`

	ShoppingResults       []RawShopping `json:"shopping_results,omitempty"`
	InlineShoppingResults []RawShopping `json:"inline_shopping_results,omitempty"`

	RelatedQuestions []RawQuestion `json:"related_questions,omitempty"`
	AnswerBox        *AnswerBox    `json:"answer_box,omitempty"`
}

// RawOrganic is one organic listing as the provider reports it.
type RawOrganic struct {
	Title   string `json:"title,omitempty"`
	Link    string `json:"link,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// RawAd is one paid placement. Position is a json.Number so that a missing
// or string-typed value degrades instead of failing the whole decode.
type RawAd struct {
	Source        string      `json:"source,omitempty"`
	Title         string      `json:"title,omitempty"`
	Headlines     []string    `json:"headlines,omitempty"`
	Description   string      `json:"description,omitempty"`
	Link          string      `json:"link,omitempty"`
	URL           string      `json:"url,omitempty"`
	DisplayedLink string      `json:"displayed_link,omitempty"`
	Domain        string      `json:"domain,omitempty"`
	Position      json.Number `json:"position,omitempty"`
}

// RawShopping is one shopping placement, used as an ad substitute when no
// real ad inventory exists.
type RawShopping struct {
	Source   string `json:"source,omitempty"`
	Merchant string `json:"merchant,omitempty"`
	Title    string `json:"title,omitempty"`
	Price    string `json:"price,omitempty"`
	Link     string `json:"link,omitempty"`
}

// RawQuestion is one "people also ask" entry.
type RawQuestion struct {
	Question string `json:"question,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// AnswerBox is the featured-snippet block. Its mere presence means a
// snippet exists; the type fields are frequently absent.
type AnswerBox struct {
	Type       string `json:"type,omitempty"`
	AnswerType string `json:"answer_type,omitempty"`
}
