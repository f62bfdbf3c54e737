package provider

import "github.com/hardikguptaofficialgit/toura-sub000/internal/model"

// Mapping holds each provider's native type vocabulary for one semantic
// category. It is pure data; adapters decide what to do with their
// slice of it.
type Mapping struct {
	// Keyword is the human search term used by text-search providers.
	Keyword string
	// GoogleType is the Google Places nearby-search type.
	GoogleType string
	// OpenTripMapKinds is the comma-separated OpenTripMap kinds filter.
	OpenTripMapKinds string
	// MapboxTypes are the Mapbox geocoding feature types.
	MapboxTypes []string
	// CuratedCategories are the category values stored in the curated
	// dataset.
	CuratedCategories []string
}

// categoryMappings is process-wide immutable state initialized once at
// package load.
var categoryMappings = map[model.Category]Mapping{
	model.CategoryHotels: {
		Keyword:           "hotels",
		GoogleType:        "lodging",
		OpenTripMapKinds:  "accomodations",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"hotels"},
	},
	model.CategoryRestaurants: {
		Keyword:           "restaurants",
		GoogleType:        "restaurant",
		OpenTripMapKinds:  "foods",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"restaurants"},
	},
	model.CategoryAttractions: {
		Keyword:           "tourist attractions",
		GoogleType:        "tourist_attraction",
		OpenTripMapKinds:  "natural,cultural,historic,architecture,amusements",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"attractions"},
	},
	model.CategoryMonasteries: {
		Keyword:           "monasteries",
		GoogleType:        "place_of_worship",
		OpenTripMapKinds:  "religion,historic",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"monasteries"},
	},
	model.CategoryLocalCuisine: {
		Keyword:           "local food",
		GoogleType:        "restaurant",
		OpenTripMapKinds:  "foods",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"local_cuisine", "restaurants"},
	},
	model.CategoryNightlife: {
		Keyword:           "nightlife",
		GoogleType:        "night_club",
		OpenTripMapKinds:  "entertainment",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"nightlife"},
	},
	model.CategoryEssentials: {
		Keyword:           "essential services",
		GoogleType:        "establishment",
		OpenTripMapKinds:  "shops,banks",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"essentials"},
	},
	model.CategoryHiddenGems: {
		Keyword:           "hidden gems",
		GoogleType:        "tourist_attraction",
		OpenTripMapKinds:  "natural,cultural,historic",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"hidden_gems", "attractions"},
	},
	model.CategoryOutdoors: {
		Keyword:           "outdoor activities",
		GoogleType:        "park",
		OpenTripMapKinds:  "natural,sport",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"outdoors"},
	},
	model.CategoryFamilyFriendly: {
		Keyword:           "family friendly places",
		GoogleType:        "amusement_park",
		OpenTripMapKinds:  "amusements",
		MapboxTypes:       []string{"poi"},
		CuratedCategories: []string{"family_friendly", "attractions"},
	},
}

// MappingFor returns the provider vocabulary for a category, falling
// back to the attractions mapping for anything unknown.
func MappingFor(cat model.Category) Mapping {
	if m, ok := categoryMappings[cat]; ok {
		return m
	}
	return categoryMappings[model.CategoryAttractions]
}

// placeholderImages backs the one synthesized optional field: a place
// with no provider image gets a category-keyed stock photo.
var placeholderImages = map[model.Category]string{
	model.CategoryHotels:      "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400",
	model.CategoryRestaurants: "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=400",
	model.CategoryAttractions: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400",
	model.CategoryMonasteries: "https://images.unsplash.com/photo-1544735716-392fe2489ffa?w=400",
}

// PlaceholderImage returns the category placeholder, defaulting to the
// attractions image.
func PlaceholderImage(cat model.Category) string {
	if img, ok := placeholderImages[cat]; ok {
		return img
	}
	return placeholderImages[model.CategoryAttractions]
}
