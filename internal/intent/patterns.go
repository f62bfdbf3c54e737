package intent

import (
	"strings"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

// Pattern is the immutable matching vocabulary for one category.
type Pattern struct {
	Keywords []string
	Phrases  []string
	Weight   float64
}

// categoryPatterns is process-wide immutable state; it is only read
// after package initialization.
var categoryPatterns = map[model.Category]Pattern{
	model.CategoryHotels: {
		Keywords: []string{"hotel", "accommodation", "stay", "room", "lodge", "resort", "booking", "guest", "homestay", "lodging"},
		Phrases: []string{
			"where to stay", "place to stay", "book a room", "find hotels", "accommodation in",
			"luxury stay", "budget hotel", "mountain resort", "spa resort", "business hotel",
		},
		Weight: 1.0,
	},
	model.CategoryRestaurants: {
		Keywords: []string{"restaurant", "food", "eat", "dining", "meal", "breakfast", "lunch", "dinner", "cafe", "eatery"},
		Phrases: []string{
			"where to eat", "food places", "best restaurants", "dining options", "good food",
			"local food", "fine dining", "casual dining", "street food", "food court",
		},
		Weight: 1.0,
	},
	model.CategoryMonasteries: {
		Keywords: []string{"monastery", "temple", "buddhist", "spiritual", "religious", "meditation", "gompa", "sacred"},
		Phrases: []string{
			"religious places", "spiritual sites", "buddhist temples", "meditation centers",
			"monastery tour", "spiritual retreat", "prayer halls", "sacred places",
		},
		Weight: 1.0,
	},
	model.CategoryAttractions: {
		Keywords: []string{"attraction", "tourist", "visit", "sightseeing", "places", "scenic", "viewpoint", "landmark"},
		Phrases: []string{
			"places to visit", "tourist attractions", "things to see", "sightseeing spots",
			"must visit", "famous places", "scenic spots", "points of interest",
		},
		Weight: 1.0,
	},
	model.CategoryLocalCuisine: {
		Keywords: []string{"traditional", "local", "authentic", "sikkimese", "momos", "thali", "gundruk", "sinki"},
		Phrases: []string{
			"traditional food", "local cuisine", "authentic dishes", "sikkimese food",
			"local specialties", "traditional recipes", "ethnic food", "cultural food",
		},
		Weight: 1.0,
	},
	model.CategoryNightlife: {
		Keywords: []string{"nightlife", "bar", "club", "pub", "evening", "night", "cocktail", "party"},
		Phrases: []string{
			"nightlife options", "bars and clubs", "evening entertainment", "night spots",
			"late night", "party places", "cocktail bars", "live music",
		},
		Weight: 1.0,
	},
	model.CategoryEssentials: {
		Keywords: []string{"atm", "bank", "hospital", "pharmacy", "medical", "emergency", "petrol", "grocery"},
		Phrases: []string{
			"essential services", "medical facilities", "banking services", "emergency services",
			"pharmacy near", "hospital nearby", "fuel station", "grocery store",
		},
		Weight: 1.0,
	},
	model.CategoryHiddenGems: {
		Keywords: []string{"hidden", "secret", "offbeat", "unexplored", "lesser", "unknown", "undiscovered"},
		Phrases: []string{
			"hidden places", "secret spots", "off the beaten path", "unexplored areas",
			"lesser known", "hidden gems", "local secrets", "undiscovered places",
		},
		Weight: 1.0,
	},
	model.CategoryOutdoors: {
		Keywords: []string{"trek", "hiking", "adventure", "outdoor", "camping", "nature", "wildlife", "safari"},
		Phrases: []string{
			"outdoor activities", "adventure sports", "nature activities", "hiking trails",
			"trekking routes", "camping sites", "wildlife viewing", "nature walks",
		},
		Weight: 1.0,
	},
	model.CategoryFamilyFriendly: {
		Keywords: []string{"family", "kids", "children", "child", "playground", "park", "fun", "safe"},
		Phrases: []string{
			"family places", "kid friendly", "family activities", "children activities",
			"family fun", "safe for kids", "family entertainment", "playground areas",
		},
		Weight: 1.0,
	},
}

// categoryVocab pools each category's keywords with its phrase tokens
// for the per-token proximity pass. Built once at startup.
var categoryVocab = buildVocab()

func buildVocab() map[model.Category][]string {
	vocab := make(map[model.Category][]string, len(categoryPatterns))
	for cat, p := range categoryPatterns {
		words := make([]string, 0, len(p.Keywords))
		words = append(words, p.Keywords...)
		words = append(words, strings.Fields(strings.Join(p.Phrases, " "))...)
		vocab[cat] = words
	}
	return vocab
}

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "awesome",
	"best", "top", "beautiful", "lovely", "perfect", "incredible", "outstanding",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "worst", "poor", "disappointing",
	"disgusting", "unpleasant", "annoying", "frustrating", "overpriced",
}

// subcategoryGroup names a group and the keywords that trigger it.
// Groups match independently, so a query can land in several at once.
type subcategoryGroup struct {
	Name     string
	Keywords []string
}

var subcategoryGroups = map[model.Category][]subcategoryGroup{
	model.CategoryHotels: {
		{"luxury", []string{"luxury", "premium", "deluxe", "high-end", "upscale", "5 star", "expensive"}},
		{"budget", []string{"budget", "cheap", "affordable", "economical", "low-cost", "backpacker"}},
		{"family", []string{"family", "kids", "children", "child-friendly"}},
		{"business", []string{"business", "conference", "meeting", "corporate"}},
		{"romantic", []string{"romantic", "honeymoon", "couple", "intimate"}},
		{"eco", []string{"eco", "sustainable", "green", "environment-friendly"}},
	},
	model.CategoryRestaurants: {
		{"fine_dining", []string{"fine", "upscale", "elegant", "premium", "luxury", "expensive"}},
		{"casual", []string{"casual", "family", "relaxed", "informal"}},
		{"street_food", []string{"street", "local", "authentic", "traditional", "cheap"}},
		{"vegetarian", []string{"vegetarian", "vegan", "plant-based", "veggie"}},
		{"international", []string{"chinese", "italian", "continental", "multicuisine", "foreign"}},
	},
	model.CategoryAttractions: {
		{"nature", []string{"nature", "natural", "scenic", "lake", "waterfall", "mountain", "valley"}},
		{"cultural", []string{"cultural", "heritage", "traditional", "historical", "ancient"}},
		{"adventure", []string{"adventure", "thrill", "extreme", "exciting", "adrenaline"}},
		{"photography", []string{"photo", "photography", "instagram", "scenic", "beautiful"}},
	},
}
