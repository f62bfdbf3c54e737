package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/geo"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/intent"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/provider"
)

// AggregatorConfig bounds the fan-out.
type AggregatorConfig struct {
	DefaultRadiusM int
	FetchLimit     int
	MaxLimit       int
	AdapterTimeout time.Duration
	FallbackCenter model.Coordinates
}

// Aggregator orchestrates a search: classify, resolve category and
// center, fan out to every adapter concurrently, then dedup, filter,
// sort and assemble. It never fails for data-availability reasons; when
// every provider is down the result is simply empty.
type Aggregator struct {
	classifier *intent.Classifier
	adapters   []provider.Adapter
	cfg        AggregatorConfig
	validate   *validator.Validate
	log        *logrus.Logger
}

// NewAggregator creates an aggregator over the given adapters. Adapter
// order matters: dedup keeps the first occurrence in this order, so
// higher-trust providers go first.
func NewAggregator(classifier *intent.Classifier, adapters []provider.Adapter, cfg AggregatorConfig, log *logrus.Logger) *Aggregator {
	if cfg.DefaultRadiusM <= 0 {
		cfg.DefaultRadiusM = 50000
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 20
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.AdapterTimeout <= 0 {
		cfg.AdapterTimeout = 10 * time.Second
	}
	if cfg.FallbackCenter == (model.Coordinates{}) {
		cfg.FallbackCenter = geo.DefaultCenter
	}
	return &Aggregator{
		classifier: classifier,
		adapters:   adapters,
		cfg:        cfg,
		validate:   validator.New(),
		log:        log,
	}
}

// Search runs the full pipeline. The only error it returns is a filter
// contract violation; provider trouble degrades to fewer (or zero)
// places.
func (a *Aggregator) Search(ctx context.Context, query string, filters *model.SearchFilters, location *model.Coordinates) (*model.SearchResult, error) {
	start := time.Now()

	if filters == nil {
		filters = &model.SearchFilters{}
	}
	if err := a.validate.Struct(filters); err != nil {
		return nil, fmt.Errorf("invalid search filters: %w", err)
	}

	it := a.classifier.Classify(query)

	category := it.Category
	if len(filters.Category) > 0 {
		forced := model.Category(filters.Category[0])
		if !forced.Valid() {
			return nil, fmt.Errorf("invalid search filters: unknown category %q", filters.Category[0])
		}
		category = forced
	}
	center := a.resolveCenter(location, it.Location)

	places := a.collect(ctx, category, center, a.cfg.DefaultRadiusM, a.fetchLimit(filters))
	filtered := applyFilters(places, filters, center)
	sortPlaces(filtered, filters.SortBy, center)

	total := len(filtered)
	hasMore := false
	if filters.Limit > 0 {
		hasMore = total >= filters.Limit
		if total > filters.Limit {
			filtered = filtered[:filters.Limit]
		}
	}

	a.log.WithFields(logrus.Fields{
		"query":    query,
		"category": category,
		"total":    total,
		"took_ms":  time.Since(start).Milliseconds(),
	}).Info("search completed")

	return &model.SearchResult{
		Places:     filtered,
		TotalCount: total,
		HasMore:    hasMore,
		SearchMeta: model.SearchMeta{
			Query:            query,
			ResolvedCategory: category,
			ResolvedLocation: it.Location,
			Filters:          *filters,
			Intent:           it,
		},
	}, nil
}

// Nearby returns deduplicated places around a point without running the
// classifier. Used for recommendations next to an already-chosen place.
func (a *Aggregator) Nearby(ctx context.Context, center model.Coordinates, category model.Category, radiusM int) []model.Place {
	if !category.Valid() {
		category = model.DefaultCategory
	}
	if radiusM <= 0 {
		radiusM = a.cfg.DefaultRadiusM
	}
	places := a.collect(ctx, category, center, radiusM, a.cfg.FetchLimit)
	sortPlaces(places, model.SortByRating, center)
	return places
}

// collect fans out to every adapter concurrently and joins the batches
// in declared adapter order, then dedups. Joining in declared order
// keeps dedup deterministic no matter which provider answers first.
func (a *Aggregator) collect(ctx context.Context, category model.Category, center model.Coordinates, radiusM, limit int) []model.Place {
	batches := make([][]model.Place, len(a.adapters))

	var wg sync.WaitGroup
	for i, adapter := range a.adapters {
		wg.Add(1)
		go func(i int, adapter provider.Adapter) {
			defer wg.Done()

			actx, cancel := context.WithTimeout(ctx, a.cfg.AdapterTimeout)
			defer cancel()

			places, err := adapter.Search(actx, category, center, radiusM, limit)
			if err != nil {
				a.log.WithFields(logrus.Fields{
					"provider": adapter.Name(),
					"category": category,
					"error":    err.Error(),
				}).Warn("provider search failed, continuing without it")
				return
			}
			batches[i] = places
		}(i, adapter)
	}
	wg.Wait()

	return dedupe(batches)
}

// dedupe flattens batches in order, keeping the first occurrence of
// each (lowercased name, exact coordinates) pair.
func dedupe(batches [][]model.Place) []model.Place {
	type key struct {
		name string
		lat  float64
		lng  float64
	}
	seen := make(map[key]struct{})
	out := []model.Place{}
	for _, batch := range batches {
		for _, place := range batch {
			k := key{
				name: strings.ToLower(place.Name),
				lat:  place.Coordinates.Lat,
				lng:  place.Coordinates.Lng,
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, place)
		}
	}
	return out
}

// resolveCenter picks the search center: caller location, then the
// gazetteer coordinates of the query's location, then the fallback.
func (a *Aggregator) resolveCenter(location *model.Coordinates, queryLocation string) model.Coordinates {
	if location != nil {
		return *location
	}
	if center, ok := geo.CenterFor(queryLocation); ok {
		return center
	}
	return a.cfg.FallbackCenter
}

// fetchLimit decides how many records to request per adapter: enough to
// survive filtering, capped so one request cannot ask for everything.
func (a *Aggregator) fetchLimit(filters *model.SearchFilters) int {
	limit := a.cfg.FetchLimit
	if filters.Limit > limit {
		limit = filters.Limit
	}
	if limit > a.cfg.MaxLimit {
		limit = a.cfg.MaxLimit
	}
	return limit
}
