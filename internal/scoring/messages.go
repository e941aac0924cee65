package scoring

import (
	"strings"

	"github.com/serplens/serpintel/internal/normalize"
)

// messageBuckets maps a recurring-message label to the terms that signal it.
type messageBucket struct {
	label string
	terms []string
}

// Ordered so repeated calls over the same ads return identical slices.
var messageBuckets = []messageBucket{
	{"Rabatt", []string{"rabatt", "%", "spara", "kampanj", "deal"}},
	{"Gratis demo", []string{"gratis demo", "demo", "book demo"}},
	{"Gratis test", []string{"gratis test", "free trial", "prova gratis"}},
	{"Snabb setup", []string{"snabb", "kom igång", "på minuter", "direkt"}},
	{"Ingen bindningstid", []string{"ingen bindning", "utan bindning", "cancel anytime"}},
}

// RecurringMessages returns the message labels present anywhere in the ad
// copy. Pure function over its input: no accumulator survives the call.
func RecurringMessages(ads []normalize.Ad) []string {
	if len(ads) == 0 {
		return nil
	}

	var parts []string
	for _, ad := range ads {
		parts = append(parts, ad.Headline, ad.Description)
		parts = append(parts, ad.Headlines...)
	}
	corpus := strings.ToLower(strings.Join(parts, " \n"))

	var hits []string
	for _, bucket := range messageBuckets {
		for _, term := range bucket.terms {
			if strings.Contains(corpus, term) {
				hits = append(hits, bucket.label)
				break
			}
		}
	}
	return hits
}
