package service

import (
	"sort"
	"strings"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/geo"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

// applyFilters keeps the places that satisfy every set filter. Unset
// filters pass everything; a place with no price level passes the
// price-level filter, while a missing rating counts as zero against
// minRating.
func applyFilters(places []model.Place, filters *model.SearchFilters, center model.Coordinates) []model.Place {
	out := make([]model.Place, 0, len(places))
	for _, place := range places {
		if filters.MinRating > 0 && place.RatingOrZero() < filters.MinRating {
			continue
		}
		if len(filters.PriceLevel) > 0 && place.PriceLevel != nil && !containsInt(filters.PriceLevel, *place.PriceLevel) {
			continue
		}
		if filters.OpenNow && (place.IsOpen == nil || !*place.IsOpen) {
			continue
		}
		if len(filters.Subcategory) > 0 && !matchesSubcategory(place, filters.Subcategory) {
			continue
		}
		if filters.MaxDistance > 0 && geo.Haversine(center, place.Coordinates) > filters.MaxDistance {
			continue
		}
		out = append(out, place)
	}
	return out
}

// matchesSubcategory checks the wanted subcategories against the
// place's subcategory and its tags, case-insensitively.
func matchesSubcategory(place model.Place, wanted []string) bool {
	for _, w := range wanted {
		lw := strings.ToLower(w)
		if strings.ToLower(place.Subcategory) == lw {
			return true
		}
		for _, tag := range place.Tags {
			if strings.ToLower(tag) == lw {
				return true
			}
		}
	}
	return false
}

// sortPlaces orders places in place. Relevance keeps arrival order,
// which after the ordered join means provider priority.
func sortPlaces(places []model.Place, sortBy string, center model.Coordinates) {
	switch sortBy {
	case model.SortByRating:
		sort.SliceStable(places, func(i, j int) bool {
			return places[i].RatingOrZero() > places[j].RatingOrZero()
		})
	case model.SortByPrice:
		sort.SliceStable(places, func(i, j int) bool {
			return places[i].PriceLevelOrZero() < places[j].PriceLevelOrZero()
		})
	case model.SortByDistance:
		sort.SliceStable(places, func(i, j int) bool {
			return geo.Haversine(center, places[i].Coordinates) < geo.Haversine(center, places[j].Coordinates)
		})
	}
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
