package sections

// Defaults holds the hard-coded starting document for every page section.
// A section that was never saved renders these unchanged; loading an absent
// document is not an error.
var Defaults = map[string]map[string]any{
	"home": {
		"heroTitle":    "Welcome to Mommy First",
		"heroSubtitle": "Everything for you and your little one",
		"heroImage":    "",
		"ctaLabel":     "Shop now",
		"ctaLink":      "/shop",
	},
	"about": {
		"title":    "About us",
		"body":     "",
		"imageUrl": "",
	},
	"bundles": {
		"title":   "Bundles",
		"intro":   "",
		"bundles": []any{},
	},
	"carehub": {
		"title":    "Care Hub",
		"intro":    "",
		"articles": []any{},
	},
	"contact": {
		"email":   "",
		"phone":   "",
		"address": "",
		"mapUrl":  "",
	},
	"donation": {
		"title":      "Donations",
		"body":       "",
		"bankName":   "",
		"accountNo":  "",
		"qrImageUrl": "",
	},
	"enquiry": {
		"title":          "Enquiries",
		"intro":          "",
		"recipientEmail": "",
	},
	"affiliate": {
		"title": "Affiliate marketing",
		"body":  "",
		"terms": []any{},
	},
	"navigation": {
		"links": []any{},
		"logo":  "",
	},
	"events": {
		"title":       "Events",
		"intro":       "",
		"bannerImage": "",
	},
	"media": {
		"title":   "Media",
		"gallery": []any{},
	},
	"shop": {
		"title":       "Shop",
		"banner":      "",
		"categories":  []any{},
		"promoText":   "",
		"promoActive": false,
	},
}

// DefaultsFor returns a copy of the registered defaults, or nil for an
// unknown section id.
func DefaultsFor(id string) map[string]any {
	d, ok := Defaults[id]
	if !ok {
		return nil
	}
	return cloneDoc(d)
}
