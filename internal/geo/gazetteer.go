package geo

import (
	"strings"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

// GazetteerNames is the fixed list of place names the classifier
// recognizes as location entities, in scan order.
var GazetteerNames = []string{
	"gangtok", "pelling", "yuksom", "lachen", "lachung", "namchi", "ravangla",
	"sikkim", "north sikkim", "south sikkim", "east sikkim", "west sikkim",
	"rumtek", "tsomgo", "nathula", "gurudongmar", "yumthang",
}

// centers anchors each gazetteer name to a search center. Regions get
// approximate centroids; towns get their actual coordinates.
var centers = map[string]model.Coordinates{
	"gangtok":      {Lat: 27.3314, Lng: 88.6138},
	"pelling":      {Lat: 27.2797, Lng: 88.3919},
	"yuksom":       {Lat: 27.3664, Lng: 88.2296},
	"lachen":       {Lat: 27.7285, Lng: 88.5571},
	"lachung":      {Lat: 27.6891, Lng: 88.7432},
	"namchi":       {Lat: 27.1643, Lng: 88.3636},
	"ravangla":     {Lat: 27.3066, Lng: 88.3639},
	"sikkim":       {Lat: 27.3389, Lng: 88.6065},
	"north sikkim": {Lat: 27.7516, Lng: 88.5877},
	"south sikkim": {Lat: 27.1840, Lng: 88.3983},
	"east sikkim":  {Lat: 27.3325, Lng: 88.6862},
	"west sikkim":  {Lat: 27.2937, Lng: 88.2446},
	"rumtek":       {Lat: 27.2886, Lng: 88.6615},
	"tsomgo":       {Lat: 27.3756, Lng: 88.7627},
	"nathula":      {Lat: 27.3908, Lng: 88.8475},
	"gurudongmar":  {Lat: 28.0301, Lng: 88.5122},
	"yumthang":     {Lat: 27.8166, Lng: 88.6945},
}

// DefaultCenter is the fallback search center when neither the caller
// nor the query pins a location.
var DefaultCenter = model.Coordinates{Lat: 27.3389, Lng: 88.6065}

// CenterFor resolves a place name from the query (case-insensitive,
// lenient on partial matches like "north" for "north sikkim") to a
// search center.
func CenterFor(name string) (model.Coordinates, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return model.Coordinates{}, false
	}
	if c, ok := centers[lower]; ok {
		return c, true
	}
	for _, known := range GazetteerNames {
		if strings.Contains(lower, known) || strings.Contains(known, lower) {
			return centers[known], true
		}
	}
	return model.Coordinates{}, false
}
