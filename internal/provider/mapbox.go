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

// mapboxDefaultRating is attached to every Mapbox hit; the geocoding
// API carries no rating data.
const mapboxDefaultRating = 4.0

// mapboxMaxLimit is the largest limit geocoding v5 accepts; anything
// above it gets the whole request rejected with a 400.
const mapboxMaxLimit = 10

// MapboxConfig configures the Mapbox geocoding adapter.
type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
}

// Mapbox wraps the Mapbox forward-geocoding API as a POI source.
type Mapbox struct {
	cfg     MapboxConfig
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

// NewMapbox creates the Mapbox adapter.
func NewMapbox(cfg MapboxConfig, log *logrus.Logger) *Mapbox {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mapbox.com"
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 10
	}
	return &Mapbox{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		log:     log,
	}
}

// Name implements Adapter.
func (p *Mapbox) Name() string { return "mapbox" }

type mbSearchResponse struct {
	Type     string      `json:"type"`
	Features []mbFeature `json:"features"`
}

type mbFeature struct {
	ID         string        `json:"id"`
	Text       string        `json:"text"`
	PlaceName  string        `json:"place_name"`
	Center     []float64     `json:"center"`
	Context    []mbContext   `json:"context,omitempty"`
	Properties *mbProperties `json:"properties,omitempty"`
}

type mbContext struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type mbProperties struct {
	Category string `json:"category,omitempty"`
	Landmark bool   `json:"landmark,omitempty"`
	Address  string `json:"address,omitempty"`
	Tel      string `json:"tel,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Search implements Adapter. Mapbox geocoding has no radius parameter;
// proximity biases results toward the center instead.
func (p *Mapbox) Search(ctx context.Context, category model.Category, center model.Coordinates, radiusM, limit int) ([]model.Place, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}

	if limit <= 0 || limit > mapboxMaxLimit {
		limit = mapboxMaxLimit
	}

	mapping := MappingFor(category)
	params := url.Values{}
	params.Set("access_token", p.cfg.AccessToken)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("types", strings.Join(mapping.MapboxTypes, ","))
	params.Set("proximity", fmt.Sprintf("%f,%f", center.Lng, center.Lat))
	params.Set("country", "IN")
	params.Set("language", "en")

	query := url.PathEscape(mapping.Keyword + " Sikkim")
	u := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s", p.cfg.BaseURL, query, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
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

	var body mbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}

	places := make([]model.Place, 0, len(body.Features))
	for _, raw := range body.Features {
		place, ok := p.normalize(raw, category)
		if !ok {
			p.log.WithFields(logrus.Fields{
				"provider": p.Name(),
				"id":       raw.ID,
			}).Debug("dropping malformed feature")
			continue
		}
		places = append(places, place)
	}
	return places, nil
}

// normalize converts one geocoding feature to the canonical shape.
// Features without a name or a [lng, lat] center are dropped.
func (p *Mapbox) normalize(raw mbFeature, category model.Category) (model.Place, bool) {
	if raw.Text == "" || len(raw.Center) < 2 {
		return model.Place{}, false
	}

	rating := mapboxDefaultRating
	place := model.Place{
		ID:          "mapbox_" + raw.ID,
		Name:        raw.Text,
		Category:    categoryFromContext(raw.Context, category),
		Rating:      &rating,
		Image:       PlaceholderImage(category),
		Address:     raw.PlaceName,
		Description: fmt.Sprintf("Discover this %s in Sikkim", strings.TrimSuffix(string(category), "s")),
		Coordinates: model.Coordinates{Lat: raw.Center[1], Lng: raw.Center[0]},
		Tags:        contextTags(raw.Context),
		Features:    mapboxFeatures(raw, category),
	}
	if place.Address == "" {
		place.Address = "Sikkim, India"
	}
	if raw.Properties != nil && (raw.Properties.Tel != "" || raw.Properties.Website != "") {
		place.Contact = &model.Contact{
			Phone:   raw.Properties.Tel,
			Website: raw.Properties.Website,
		}
	}
	return place, true
}

func categoryFromContext(context []mbContext, fallback model.Category) string {
	for _, ctx := range context {
		if strings.Contains(ctx.ID, "poi") {
			return "Point of Interest"
		}
		if strings.Contains(ctx.ID, "place") {
			return "Place"
		}
	}
	return titleCategory(fallback)
}

func contextTags(context []mbContext) []string {
	tags := []string{}
	for _, ctx := range context {
		if ctx.Text == "" {
			continue
		}
		seen := false
		for _, t := range tags {
			if t == ctx.Text {
				seen = true
				break
			}
		}
		if !seen {
			tags = append(tags, ctx.Text)
		}
		if len(tags) == 5 {
			break
		}
	}
	return tags
}

func mapboxFeatures(raw mbFeature, category model.Category) []string {
	features := []string{}
	if raw.Properties != nil {
		if raw.Properties.Category != "" {
			features = append(features, raw.Properties.Category)
		}
		if raw.Properties.Landmark {
			features = append(features, "Landmark")
		}
	}
	switch category {
	case model.CategoryHotels:
		features = append(features, "Accommodation")
	case model.CategoryRestaurants:
		features = append(features, "Dining")
	case model.CategoryAttractions:
		features = append(features, "Tourist Attraction")
	}
	return features
}
