package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

// GooglePlacesConfig configures the Google Places adapter.
type GooglePlacesConfig struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
}

// GooglePlaces wraps the Google Places nearby-search API.
type GooglePlaces struct {
	cfg     GooglePlacesConfig
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

// NewGooglePlaces creates the Google Places adapter.
func NewGooglePlaces(cfg GooglePlacesConfig, log *logrus.Logger) *GooglePlaces {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://maps.googleapis.com/maps/api/place"
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 10
	}
	return &GooglePlaces{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		log:     log,
	}
}

// Name implements Adapter.
func (p *GooglePlaces) Name() string { return "google" }

// gpSearchResponse is the nearby-search envelope.
type gpSearchResponse struct {
	Results      []gpResult `json:"results"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// gpResult is a single nearby-search hit.
type gpResult struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	BusinessStatus   string          `json:"business_status,omitempty"`
	FormattedAddress string          `json:"formatted_address,omitempty"`
	Vicinity         string          `json:"vicinity,omitempty"`
	Geometry         *gpGeometry     `json:"geometry,omitempty"`
	OpeningHours     *gpOpeningHours `json:"opening_hours,omitempty"`
	Photos           []gpPhoto       `json:"photos,omitempty"`
	PriceLevel       int             `json:"price_level,omitempty"`
	Rating           float64         `json:"rating,omitempty"`
	Types            []string        `json:"types,omitempty"`
	UserRatingsTotal int             `json:"user_ratings_total,omitempty"`
}

type gpGeometry struct {
	Location gpLatLng `json:"location"`
}

type gpLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type gpOpeningHours struct {
	OpenNow bool `json:"open_now"`
}

type gpPhoto struct {
	PhotoReference string `json:"photo_reference"`
	Height         int    `json:"height"`
	Width          int    `json:"width"`
}

// Search implements Adapter.
func (p *GooglePlaces) Search(ctx context.Context, category model.Category, center model.Coordinates, radiusM, limit int) ([]model.Place, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	params.Set("radius", strconv.Itoa(radiusM))
	params.Set("type", MappingFor(category).GoogleType)
	params.Set("keyword", MappingFor(category).Keyword)
	params.Set("key", p.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/nearbysearch/json?%s", p.cfg.BaseURL, params.Encode()), nil)
	if err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Provider: p.Name(), Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var body gpSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, &FetchError{Provider: p.Name(), Err: fmt.Errorf("api status %s: %s", body.Status, body.ErrorMessage)}
	}

	places := make([]model.Place, 0, len(body.Results))
	for _, raw := range body.Results {
		place, ok := p.normalize(raw, category)
		if !ok {
			p.log.WithFields(logrus.Fields{
				"provider": p.Name(),
				"place_id": raw.PlaceID,
			}).Debug("dropping malformed place result")
			continue
		}
		places = append(places, place)
		if limit > 0 && len(places) >= limit {
			break
		}
	}
	return places, nil
}

// normalize converts one Places result to the canonical shape. Results
// without a name or coordinates are dropped.
func (p *GooglePlaces) normalize(raw gpResult, category model.Category) (model.Place, bool) {
	if raw.Name == "" || raw.Geometry == nil {
		return model.Place{}, false
	}

	place := model.Place{
		ID:             "google_" + raw.PlaceID,
		Name:           raw.Name,
		Category:       categoryFromTypes(raw.Types, category),
		Price:          priceRange(raw.PriceLevel),
		Image:          PlaceholderImage(category),
		Address:        raw.FormattedAddress,
		Description:    fmt.Sprintf("Popular %s in Sikkim", strings.TrimSuffix(string(category), "s")),
		Coordinates:    model.Coordinates{Lat: raw.Geometry.Location.Lat, Lng: raw.Geometry.Location.Lng},
		Tags:           typeTags(raw.Types),
		Features:       p.features(raw),
		BusinessStatus: raw.BusinessStatus,
	}
	if place.Address == "" {
		place.Address = raw.Vicinity
	}
	if place.Address == "" {
		place.Address = "Sikkim, India"
	}

	if raw.Rating > 0 {
		rating := raw.Rating
		place.Rating = &rating
	}
	if raw.UserRatingsTotal > 0 {
		reviews := raw.UserRatingsTotal
		place.ReviewCount = &reviews
	}
	if raw.PriceLevel > 0 {
		level := raw.PriceLevel
		place.PriceLevel = &level
	}
	if raw.OpeningHours != nil {
		open := raw.OpeningHours.OpenNow
		place.IsOpen = &open
	}
	if len(raw.Photos) > 0 && raw.Photos[0].PhotoReference != "" {
		place.Image = fmt.Sprintf("%s/photo?maxwidth=400&photo_reference=%s&key=%s",
			p.cfg.BaseURL, raw.Photos[0].PhotoReference, p.cfg.APIKey)
	}
	return place, true
}

func (p *GooglePlaces) features(raw gpResult) []string {
	features := []string{"Popular"}
	if raw.OpeningHours != nil && raw.OpeningHours.OpenNow {
		features = append(features, "Open Now")
	}
	if len(raw.Photos) > 0 {
		features = append(features, "Photos Available")
	}
	return features
}

var googleTypeLabels = map[string]string{
	"lodging":            "Hotel",
	"restaurant":         "Restaurant",
	"tourist_attraction": "Attraction",
	"place_of_worship":   "Monastery",
}

func categoryFromTypes(types []string, fallback model.Category) string {
	for _, t := range types {
		if label, ok := googleTypeLabels[t]; ok {
			return label
		}
	}
	return titleCategory(fallback)
}

func typeTags(types []string) []string {
	if len(types) > 3 {
		types = types[:3]
	}
	tags := make([]string, 0, len(types))
	tags = append(tags, types...)
	return tags
}

func priceRange(priceLevel int) string {
	ranges := []string{"$", "$$", "$$$", "$$$$", "$$$$$"}
	if priceLevel < 1 || priceLevel > len(ranges) {
		return ""
	}
	return ranges[priceLevel-1]
}
