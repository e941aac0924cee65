// Package classify assigns semantic categories to organic results and ad
// landing pages using fixed lexical heuristics. Everything here is a pure
// function over lowercased input; there is no state and no I/O.
package classify

import (
	"regexp"
	"strings"
)

// OrganicType is the coarse category of an organic listing.
type OrganicType string

// Organic categories, in match-precedence order.
const (
	OrganicForum         OrganicType = "forum"
	OrganicBlogAffiliate OrganicType = "blog_affiliate"
	OrganicBrand         OrganicType = "brand"
	OrganicEcommerce     OrganicType = "ecommerce"
	OrganicOther         OrganicType = "other"
)

// LandingType is the coarse purpose of an ad's destination page.
type LandingType string

// Landing-page categories, in match-precedence order.
const (
	LandingPricing LandingType = "Pricing"
	LandingDemo    LandingType = "Demo/Leadgen"
	LandingSignup  LandingType = "Signup"
	LandingProduct LandingType = "Produkt"
	LandingGeneric LandingType = "Generell"
)

// knownBrandDomains is the single brand authority shared by ClassifyOrganic
// and IsBrandOrEcommerce so the two heuristics cannot drift apart.
var knownBrandDomains = []string{
	"amazon.",
	"ikea.",
	"apple.",
	"samsung.",
	"elgiganten.",
	"mediamarkt.",
	"hm.",
	"adidas.",
	"nike.",
	"zalando.",
	"netonnet.",
	"xxl.",
	"apotea.",
}

var blogAffiliateTitle = regexp.MustCompile(`(?i)\b(bästa|test|guide|recension)\b`)

var productPathSegment = regexp.MustCompile(`/p/`)

// ClassifyOrganic categorizes one organic listing. First match wins:
// forum markers, then blog/affiliate title patterns, then known brand
// domains, then e-commerce markers, then other.
func ClassifyOrganic(title, link, domain string) OrganicType {
	domain = strings.ToLower(domain)
	link = strings.ToLower(link)

	if strings.Contains(domain, "reddit.com") || strings.Contains(domain, "forum") {
		return OrganicForum
	}
	if IsBlogGuideTitle(title) {
		return OrganicBlogAffiliate
	}
	if matchesBrand(domain) {
		return OrganicBrand
	}
	if matchesEcommerce(link, strings.ToLower(title)) {
		return OrganicEcommerce
	}
	return OrganicOther
}

// IsBlogGuideTitle reports whether a title reads like editorial blog or
// guide content. Scoring counts this match on its own, regardless of which
// category the five-way classifier ultimately assigns the listing.
func IsBlogGuideTitle(title string) bool {
	return blogAffiliateTitle.MatchString(title)
}

// IsBrandOrEcommerce reports whether a listing belongs to an established
// brand or an e-commerce destination. Used by the scoring engine; shares
// the brand and e-commerce tables with ClassifyOrganic.
func IsBrandOrEcommerce(title, link, domain string) bool {
	return matchesBrand(strings.ToLower(domain)) ||
		matchesEcommerce(strings.ToLower(link), strings.ToLower(title))
}

// ClassifyLanding categorizes an ad's destination URL. First match wins:
// pricing, demo/leadgen, signup, product, then generic.
func ClassifyLanding(rawURL string) LandingType {
	v := strings.ToLower(rawURL)
	switch {
	case strings.Contains(v, "pricing") || strings.Contains(v, "pris") || strings.Contains(v, "priser"):
		return LandingPricing
	case strings.Contains(v, "demo") || strings.Contains(v, "boka") || strings.Contains(v, "meeting"):
		return LandingDemo
	case strings.Contains(v, "signup") || strings.Contains(v, "register"):
		return LandingSignup
	case strings.Contains(v, "product") || strings.Contains(v, "produkt") || productPathSegment.MatchString(v):
		return LandingProduct
	default:
		return LandingGeneric
	}
}

func matchesBrand(domain string) bool {
	for _, brand := range knownBrandDomains {
		if strings.Contains(domain, brand) {
			return true
		}
	}
	return false
}

func matchesEcommerce(link, title string) bool {
	return strings.Contains(link, "/shop") ||
		strings.Contains(link, "/product") ||
		strings.Contains(link, "/products") ||
		strings.Contains(title, "köp") ||
		strings.Contains(title, "pris")
}
