package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/serplens/serpintel/internal/market"
)

func TestBuild_EmptyKeywordYieldsNoPlans(t *testing.T) {
	t.Parallel()

	require.Empty(t, Build("", market.SE))
	require.Empty(t, Build("   ", market.US))
	require.Empty(t, Build("\t\n", market.DK))
}

func TestBuild_BaseKeywordComesFirstPerMarket(t *testing.T) {
	t.Parallel()

	plans := Build("bokföring", market.SE)
	require.NotEmpty(t, plans)
	require.Equal(t, Plan{Keyword: "bokföring", Market: market.SE}, plans[0])

	firstUS := -1
	for i, p := range plans {
		if p.Market == market.US {
			firstUS = i
			break
		}
	}
	require.Greater(t, firstUS, 0, "US fallback plans must follow all SE plans")
	for _, p := range plans[:firstUS] {
		require.Equal(t, market.SE, p.Market)
	}
	require.Equal(t, "bokföring", plans[firstUS].Keyword)
}

func TestBuild_NoDuplicatePlans(t *testing.T) {
	t.Parallel()

	for _, keyword := range []string{"crm mjukvara", "crm pris", "PRIS", "demo"} {
		plans := Build(keyword, market.SE)
		seen := map[string]struct{}{}
		for _, p := range plans {
			key := string(p.Market) + "|" + strings.ToLower(p.Keyword)
			_, dup := seen[key]
			require.False(t, dup, "duplicate plan %q for keyword %q", key, keyword)
			seen[key] = struct{}{}
		}
	}
}

func TestBuild_CapsAtMaxPlans(t *testing.T) {
	t.Parallel()

	require.LessOrEqual(t, len(Build("crm mjukvara", market.SE)), MaxPlans)
	require.LessOrEqual(t, len(Build("crm mjukvara", market.NO)), MaxPlans)
}

func TestBuild_USMarketSkipsRedundantFallback(t *testing.T) {
	t.Parallel()

	plans := Build("crm software", market.US)
	for _, p := range plans {
		require.Equal(t, market.US, p.Market)
	}
	require.Equal(t, "crm software", plans[0].Keyword)
}

func TestBuild_ContainedSuffixNotAppended(t *testing.T) {
	t.Parallel()

	// "pris" is already part of the keyword, so the pris variant collapses
	// into the base plan instead of producing "bästa pris pris".
	plans := Build("bästa pris", market.SE)
	for _, p := range plans {
		require.NotContains(t, strings.ToLower(p.Keyword), "pris pris")
	}
}
