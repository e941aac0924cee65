package insights

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// decodeObject parses an AI response body into a field map. Malformed JSON
// gets one repair pass before giving up. A nil map means the response was
// not structurally usable and the caller must fall back wholesale.
func decodeObject(content string) map[string]json.RawMessage {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err == nil {
		return fields
	}

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(repaired), &fields); err != nil {
		return nil
	}
	return fields
}

// mergeContentPlan overlays usable AI fields onto the fallback plan.
// Each field is validated independently: a missing, mistyped, or empty
// field borrows the fallback value while its siblings are still used.
func mergeContentPlan(fields map[string]json.RawMessage, fallback ContentPlan) ContentPlan {
	merged := fallback
	merged.Source = SourceAI

	if gaps, ok := stringList(fields["contentGaps"], maxContentGaps); ok {
		merged.ContentGaps = gaps
	}

	var brief map[string]json.RawMessage
	if raw, present := fields["contentBrief"]; present {
		if err := json.Unmarshal(raw, &brief); err != nil {
			brief = nil
		}
	}
	if brief != nil {
		if h1, ok := nonBlankString(brief["h1"]); ok {
			merged.Brief.H1 = h1
		}
		if h2, ok := stringList(brief["h2"], maxBriefH2); ok {
			merged.Brief.H2 = h2
		}
		if faq, ok := stringList(brief["faq"], maxBriefFAQ); ok {
			merged.Brief.FAQ = faq
		}
		if cta, ok := nonBlankString(brief["cta"]); ok {
			merged.Brief.CTA = cta
		}
	}

	return merged
}

// mergeAdInsights overlays usable AI fields onto the fallback insights and
// tags the result as AI-sourced. Individual malformed fields silently
// borrow from the fallback.
func mergeAdInsights(fields map[string]json.RawMessage, fallback Insights) Insights {
	merged := fallback
	merged.Source = SourceAI

	if clusters, ok := clusterList(fields["copyClusters"]); ok {
		merged.CopyClusters = clusters
	}
	if summary, ok := stringList(fields["marketSummary"], maxSummaryLines); ok {
		merged.MarketSummary = summary
	}
	if suggestions, ok := stringList(fields["differentiationSuggestions"], maxSuggestions); ok {
		merged.DifferentiationSuggestions = suggestions
	}
	if idea, ok := nonBlankString(fields["abTestIdea"]); ok {
		merged.ABTestIdea = idea
	}

	return merged
}

func nonBlankString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// stringList decodes a JSON array of strings, drops blanks, and caps the
// length. An absent, mistyped, or effectively empty list reports !ok.
func stringList(raw json.RawMessage, limit int) ([]string, bool) {
	if raw == nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func clusterList(raw json.RawMessage) ([]CopyCluster, bool) {
	if raw == nil {
		return nil, false
	}
	var candidates []struct {
		Name     string   `json:"name"`
		Summary  string   `json:"summary"`
		Examples []string `json:"examples"`
	}
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false
	}

	out := make([]CopyCluster, 0, len(candidates))
	for _, c := range candidates {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		examples := make([]string, 0, maxExamples)
		for _, e := range c.Examples {
			if strings.TrimSpace(e) == "" {
				continue
			}
			examples = append(examples, e)
			if len(examples) == maxExamples {
				break
			}
		}
		out = append(out, CopyCluster{
			Name:     name,
			Summary:  strings.TrimSpace(c.Summary),
			Examples: examples,
		})
		if len(out) == maxCopyClusters {
			break
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
