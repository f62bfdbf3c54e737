package model

// Category is the coarse semantic bucket a travel query resolves to.
type Category string

const (
	CategoryAttractions    Category = "attractions"
	CategoryEssentials     Category = "essentials"
	CategoryFamilyFriendly Category = "family_friendly"
	CategoryHiddenGems     Category = "hidden_gems"
	CategoryHotels         Category = "hotels"
	CategoryLocalCuisine   Category = "local_cuisine"
	CategoryMonasteries    Category = "monasteries"
	CategoryNightlife      Category = "nightlife"
	CategoryOutdoors       Category = "outdoors"
	CategoryRestaurants    Category = "restaurants"
)

// DefaultCategory is returned when no category scores above the
// confidence floor.
const DefaultCategory = CategoryAttractions

// Categories lists every known category in alphabetical order. The
// classifier scores categories in this order, so equal scores resolve
// to the alphabetically-first category.
var Categories = []Category{
	CategoryAttractions,
	CategoryEssentials,
	CategoryFamilyFriendly,
	CategoryHiddenGems,
	CategoryHotels,
	CategoryLocalCuisine,
	CategoryMonasteries,
	CategoryNightlife,
	CategoryOutdoors,
	CategoryRestaurants,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Entity kinds recognized by the classifier.
const (
	EntityLocation = "location"
	EntityNumber   = "number"
)

// Entity is a span of the query recognized as a known thing.
type Entity struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Sentiment votes.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Sentiment is a word-list sentiment estimate for the query.
type Sentiment struct {
	Score       float64 `json:"score"`
	Comparative float64 `json:"comparative"`
	Vote        string  `json:"vote"`
}

// Intent is the structured interpretation of a free-text query.
// Instances are created per request and never shared or mutated after
// the classifier returns them.
type Intent struct {
	Category      Category  `json:"category"`
	Confidence    float64   `json:"confidence"`
	Entities      []Entity  `json:"entities"`
	Sentiment     Sentiment `json:"sentiment"`
	Subcategories []string  `json:"subcategories"`
	Location      string    `json:"location,omitempty"`
}
