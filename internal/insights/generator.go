package insights

import (
	"context"
	"encoding/json"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/serplens/serpintel/internal/normalize"
)

// GeneratorConfig controls the overlay call.
type GeneratorConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Generator issues best-effort overlay calls to the text provider. A nil
// or credential-less Generator is valid and simply never calls out: every
// method then returns its fallback argument untouched.
type Generator struct {
	client *openai.Client
	cfg    GeneratorConfig
	log    *zap.Logger
}

// NewGenerator builds a Generator. Without an API key the overlay is
// disabled entirely; no network call is ever attempted.
func NewGenerator(cfg GeneratorConfig, log *zap.Logger) *Generator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &Generator{cfg: cfg, log: log}
	if cfg.APIKey != "" {
		// One attempt per request; the rule-based fallback covers failures.
		opts := []option.RequestOption{
			option.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		client := openai.NewClient(opts...)
		g.client = &client
	}
	return g
}

// Enabled reports whether overlay calls will be attempted.
func (g *Generator) Enabled() bool {
	return g != nil && g.client != nil
}

// ContentRequest is the input handed to the content-analysis overlay.
type ContentRequest struct {
	Keyword         string                    `json:"keyword"`
	Market          string                    `json:"market"`
	TopResults      []normalize.Organic       `json:"topResults"`
	PeopleAlsoAsk   []normalize.Question      `json:"peopleAlsoAsk"`
	FeaturedSnippet normalize.FeaturedSnippet `json:"featuredSnippet"`
	AdsCount        int                       `json:"adsCount"`
}

// AdSummary is the trimmed ad shape handed to the ad-insights overlay.
type AdSummary struct {
	Advertiser  string   `json:"advertiser"`
	Domain      string   `json:"domain"`
	Headline    string   `json:"headline"`
	Headlines   []string `json:"headlines"`
	Description string   `json:"description"`
	LandingType string   `json:"landingType"`
}

// AdRequest is the input handed to the ad-insights overlay.
type AdRequest struct {
	Keyword string      `json:"keyword"`
	Market  string      `json:"market"`
	Ads     []AdSummary `json:"ads"`
}

const contentPrompt = `Du är en SEO-strateg.
Du får ENDAST använda datan i input. Ingen extern kunskap.
Returnera ENDAST giltig JSON med exakt detta schema:
{
  "contentGaps": ["..."],
  "contentBrief": {
    "h1": "...",
    "h2": ["..."],
    "faq": ["..."],
    "cta": "..."
  }
}
Krav:
- contentGaps: 2 till 4 punkter
- h2: 4 till 7 rubriker
- faq: max 6 frågor (prioritera PAA)
- cta: neutral
- språk: svenska

Input:
`

const adPrompt = `Du är specialist på paid search-analys.
Använd ENDAST inputdatan. Ingen extern kunskap och inga påhitt.
Returnera ENDAST giltig JSON med detta schema:
{
  "copyClusters": [
    { "name": "...", "summary": "...", "examples": ["..."] }
  ],
  "marketSummary": ["..."],
  "differentiationSuggestions": ["..."],
  "abTestIdea": "..."
}
Regler:
- 3 till 5 copyClusters
- marketSummary: 3 till 6 bullets
- differentiationSuggestions: 2 till 3 bullets
- abTestIdea: 1 konkret idé
- svenska, enkelt språk

Input:
`

// ContentAnalysis overlays an AI content plan onto the fallback. It cannot
// fail: credential missing, transport errors, unparseable bodies, and
// malformed fields all degrade to the fallback, field by field.
func (g *Generator) ContentAnalysis(ctx context.Context, req ContentRequest, fallback ContentPlan) ContentPlan {
	fields := g.completeObject(ctx, contentPrompt, req)
	if fields == nil {
		return fallback
	}
	return mergeContentPlan(fields, fallback)
}

// AdIntelligence overlays AI ad insights onto the fallback. The result is
// tagged SourceAI only when the response was structurally usable at all.
func (g *Generator) AdIntelligence(ctx context.Context, req AdRequest, fallback Insights) Insights {
	fields := g.completeObject(ctx, adPrompt, req)
	if fields == nil {
		return fallback
	}
	return mergeAdInsights(fields, fallback)
}

// completeObject runs one overlay call and decodes the response object.
// Single attempt per request: the fallback exists precisely so retries are
// unnecessary.
func (g *Generator) completeObject(ctx context.Context, prompt string, input any) map[string]json.RawMessage {
	if !g.Enabled() {
		return nil
	}

	payload, err := json.Marshal(input)
	if err != nil {
		g.log.Warn("marshal overlay input", zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       g.cfg.Model,
		Temperature: openai.Float(g.cfg.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("Returnera endast JSON."),
			openai.UserMessage(prompt + string(payload)),
		},
	})
	if err != nil {
		g.log.Warn("overlay call failed", zap.Error(err))
		return nil
	}
	if len(resp.Choices) == 0 {
		return nil
	}

	fields := decodeObject(resp.Choices[0].Message.Content)
	if fields == nil {
		g.log.Warn("overlay response not a JSON object")
	}
	return fields
}
