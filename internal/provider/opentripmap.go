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
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

// OpenTripMapConfig configures the OpenTripMap adapter.
type OpenTripMapConfig struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
}

// OpenTripMap wraps the OpenTripMap places API. Radius search returns
// thin records, so every hit costs a second detail request.
type OpenTripMap struct {
	cfg     OpenTripMapConfig
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

// NewOpenTripMap creates the OpenTripMap adapter.
func NewOpenTripMap(cfg OpenTripMapConfig, log *logrus.Logger) *OpenTripMap {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.opentripmap.com/0.1/en/places"
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 10
	}
	return &OpenTripMap{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		log:     log,
	}
}

// Name implements Adapter.
func (p *OpenTripMap) Name() string { return "opentripmap" }

// otmPlace is a thin radius-search hit.
type otmPlace struct {
	XID   string   `json:"xid"`
	Name  string   `json:"name"`
	Dist  float64  `json:"dist"`
	Rate  float64  `json:"rate"`
	Kinds string   `json:"kinds"`
	Point otmPoint `json:"point"`
}

type otmPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// otmDetails is the per-xid detail record.
type otmDetails struct {
	XID     string      `json:"xid"`
	Name    string      `json:"name"`
	Address otmAddress  `json:"address"`
	Kinds   string      `json:"kinds"`
	Image   string      `json:"image"`
	Preview *otmPreview `json:"preview"`
	Wiki    *otmExtract `json:"wikipedia_extracts"`
}

type otmAddress struct {
	Road     string `json:"road"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

type otmPreview struct {
	Source string `json:"source"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type otmExtract struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Search implements Adapter.
func (p *OpenTripMap) Search(ctx context.Context, category model.Category, center model.Coordinates, radiusM, limit int) ([]model.Place, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}

	params := url.Values{}
	params.Set("apikey", p.cfg.APIKey)
	params.Set("radius", strconv.Itoa(radiusM))
	params.Set("lon", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	params.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("format", "json")
	if kinds := MappingFor(category).OpenTripMapKinds; kinds != "" {
		params.Set("kinds", kinds)
	}

	var raws []otmPlace
	if err := p.getJSON(ctx, fmt.Sprintf("%s/radius?%s", p.cfg.BaseURL, params.Encode()), &raws); err != nil {
		return nil, err
	}

	places := make([]model.Place, 0, len(raws))
	for _, raw := range raws {
		details, err := p.placeDetails(ctx, raw.XID)
		if err != nil {
			// One bad record does not spoil the batch.
			p.log.WithFields(logrus.Fields{
				"provider": p.Name(),
				"xid":      raw.XID,
				"error":    err.Error(),
			}).Debug("dropping place, detail fetch failed")
			continue
		}
		place, ok := p.normalize(raw, details, category)
		if !ok {
			continue
		}
		places = append(places, place)
	}
	return places, nil
}

func (p *OpenTripMap) placeDetails(ctx context.Context, xid string) (*otmDetails, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	var details otmDetails
	u := fmt.Sprintf("%s/xid/%s?apikey=%s", p.cfg.BaseURL, url.PathEscape(xid), url.QueryEscape(p.cfg.APIKey))
	if err := p.getJSON(ctx, u, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (p *OpenTripMap) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Provider: p.Name(), Err: err}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return &FetchError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Provider: p.Name(), Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Provider: p.Name(), Err: err}
	}
	return nil
}

// normalize converts one OpenTripMap record to the canonical shape.
// Records without a usable name are dropped.
func (p *OpenTripMap) normalize(raw otmPlace, details *otmDetails, category model.Category) (model.Place, bool) {
	name := details.Name
	if name == "" {
		name = raw.Name
	}
	if name == "" {
		return model.Place{}, false
	}

	// OpenTripMap rates 0-7ish; halve to land on a 5-star scale.
	rating := raw.Rate / 2

	image := PlaceholderImage(category)
	if details.Preview != nil && details.Preview.Source != "" {
		image = details.Preview.Source
	} else if details.Image != "" {
		image = details.Image
	}

	description := fmt.Sprintf("Interesting %s in Sikkim", strings.TrimSuffix(string(category), "s"))
	if details.Wiki != nil && details.Wiki.Text != "" {
		description = truncate(details.Wiki.Text, 200) + "..."
	}

	return model.Place{
		ID:          "otm_" + raw.XID,
		Name:        name,
		Category:    categoryFromKinds(raw.Kinds, category),
		Rating:      &rating,
		Image:       image,
		Address:     formatOTMAddress(details.Address),
		Description: description,
		Coordinates: model.Coordinates{Lat: raw.Point.Lat, Lng: raw.Point.Lon},
		Tags:        kindTags(raw.Kinds),
		Features:    featuresFromKinds(raw.Kinds),
	}, true
}

func categoryFromKinds(kinds string, fallback model.Category) string {
	switch {
	case strings.Contains(kinds, "religion"):
		return "Monastery"
	case strings.Contains(kinds, "accomodations"):
		return "Hotel"
	case strings.Contains(kinds, "foods"):
		return "Restaurant"
	case strings.Contains(kinds, "natural"):
		return "Natural Attraction"
	case strings.Contains(kinds, "cultural"):
		return "Cultural Site"
	case strings.Contains(kinds, "historic"):
		return "Historic Site"
	}
	return titleCategory(fallback)
}

func kindTags(kinds string) []string {
	parts := strings.Split(kinds, ",")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func featuresFromKinds(kinds string) []string {
	features := []string{}
	if strings.Contains(kinds, "historic") {
		features = append(features, "Historic")
	}
	if strings.Contains(kinds, "cultural") {
		features = append(features, "Cultural")
	}
	if strings.Contains(kinds, "natural") {
		features = append(features, "Natural")
	}
	return features
}

func formatOTMAddress(addr otmAddress) string {
	parts := []string{}
	if addr.Road != "" {
		parts = append(parts, addr.Road)
	}
	if addr.City != "" {
		parts = append(parts, addr.City)
	} else if addr.State != "" {
		parts = append(parts, addr.State)
	}
	parts = append(parts, "Sikkim")
	return strings.Join(parts, ", ")
}

// titleCategory turns a category value into a singular display label,
// e.g. "hotels" -> "Hotel".
func titleCategory(cat model.Category) string {
	s := strings.TrimSuffix(string(cat), "s")
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
