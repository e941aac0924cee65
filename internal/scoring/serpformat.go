package scoring

import "regexp"

// Format summarizes which content shapes dominate the organic titles.
type Format struct {
	YearCount           int    `json:"yearCount"`
	KeywordPatternCount int    `json:"keywordPatternCount"`
	ListSignals         int    `json:"listSignals"`
	GuideSignals        int    `json:"guideSignals"`
	RecommendedFormat   string `json:"recommendedFormat"`
}

var (
	yearPattern  = regexp.MustCompile(`\b20(2[0-9]|3[0-9])\b`)
	listPattern  = regexp.MustCompile(`(?i)\b(bästa|top|test)\b`)
	guidePattern = regexp.MustCompile(`(?i)\bguide\b`)
)

// DetectFormat counts year and list/guide signals across organic titles and
// recommends the dominant shape, or "mixed" when neither wins.
func DetectFormat(titles []string) Format {
	var f Format
	for _, title := range titles {
		if yearPattern.MatchString(title) {
			f.YearCount++
		}
		list := listPattern.MatchString(title)
		guide := guidePattern.MatchString(title)
		if list || guide {
			f.KeywordPatternCount++
		}
		if list {
			f.ListSignals++
		}
		if guide {
			f.GuideSignals++
		}
	}

	f.RecommendedFormat = "mixed"
	if f.ListSignals > f.GuideSignals && f.ListSignals > 0 {
		f.RecommendedFormat = "list"
	} else if f.GuideSignals > f.ListSignals && f.GuideSignals > 0 {
		f.RecommendedFormat = "guide"
	}
	return f
}

// Recommendation turns a score and format detection into a short
// actionable summary string.
func Recommendation(score int, f Format) string {
	yearTip := "Årtal verkar inte dominera SERP, prioritera tydlig vinkel och konkret nytta."
	if f.YearCount > 0 {
		yearTip = "Använd uppdaterat årtal i titel/H1 eftersom årtal redan dominerar SERP."
	}

	switch {
	case score >= 65 && f.RecommendedFormat == "list":
		return "Bra möjlighet om du gör en topplista med uppdaterat årtal. " + yearTip
	case score >= 65 && f.RecommendedFormat == "guide":
		return "Bra möjlighet om du gör en guide med tydliga steg och jämförelse. " + yearTip
	case score >= 50:
		return "Måttlig möjlighet. Välj format utifrån SERP-signaler och skapa starkare vinkel än nuvarande resultat. " + yearTip
	default:
		return "Låg möjlighet just nu. Testa mer nischat sökord eller differentiera med unik datavinkel/case. " + yearTip
	}
}
