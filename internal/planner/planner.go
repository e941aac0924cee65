// Package planner builds the ordered query plans used to probe for paid-ad
// inventory. Direct ad placements are sparse, so each request fans out into
// keyword variants across the requested market plus a US fallback.
package planner

import (
	"strings"

	"github.com/serplens/serpintel/internal/market"
)

// MaxPlans caps how many queries a single request may spend upstream.
const MaxPlans = 10

// Plan is one (keyword variant, market) query. Plans are value objects:
// generated once per request and never mutated.
type Plan struct {
	Keyword string
	Market  market.Code
}

// Build produces the ordered, deduplicated plan sequence for a keyword.
// Per market the bare keyword comes first, then commercial-intent variants.
// A suffix already contained in the keyword is skipped rather than doubled.
// An empty or whitespace-only keyword yields no plans.
func Build(keyword string, m market.Code) []Plan {
	base := strings.TrimSpace(keyword)
	if base == "" {
		return nil
	}

	markets := []market.Code{m, market.US}
	if m == market.US {
		markets = []market.Code{market.US}
	}

	seen := make(map[string]struct{}, MaxPlans)
	var plans []Plan
	add := func(p Plan) {
		key := string(p.Market) + "|" + strings.ToLower(p.Keyword)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		plans = append(plans, p)
	}

	for _, mc := range markets {
		add(Plan{Keyword: base, Market: mc})
		for _, suffix := range market.IntentSuffixes(mc) {
			query := base
			if !strings.Contains(strings.ToLower(base), strings.ToLower(suffix)) {
				query = base + " " + suffix
			}
			add(Plan{Keyword: query, Market: mc})
		}
	}

	if len(plans) > MaxPlans {
		plans = plans[:MaxPlans]
	}
	return plans
}
