package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/geo"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/intent"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/provider"
)

// stubAdapter is a canned provider for aggregator tests.
type stubAdapter struct {
	name   string
	places []model.Place
	err    error
	delay  time.Duration

	mu           sync.Mutex
	lastCategory model.Category
	lastCenter   model.Coordinates
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Search(ctx context.Context, category model.Category, center model.Coordinates, radiusM, limit int) ([]model.Place, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	s.lastCategory = category
	s.lastCenter = center
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.places, nil
}

func (s *stubAdapter) seen() (model.Category, model.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCategory, s.lastCenter
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAggregator(t *testing.T, adapters ...provider.Adapter) *Aggregator {
	t.Helper()
	return NewAggregator(intent.NewClassifier("Sikkim"), adapters, AggregatorConfig{
		AdapterTimeout: 2 * time.Second,
	}, testLogger())
}

func ratedPlace(id, name string, lat, lng, rating float64) model.Place {
	return model.Place{
		ID:          id,
		Name:        name,
		Category:    "Hotel",
		Rating:      &rating,
		Coordinates: model.Coordinates{Lat: lat, Lng: lng},
	}
}

func TestSearchAggregatesAndDedups(t *testing.T) {
	first := &stubAdapter{name: "first", places: []model.Place{
		ratedPlace("a1", "Hotel Tashi", 27.33, 88.61, 4.5),
		ratedPlace("a2", "Mountain View Lodge", 27.34, 88.62, 4.0),
	}}
	second := &stubAdapter{name: "second", places: []model.Place{
		// Same name and coordinates as a1, differing only in case.
		ratedPlace("b1", "hotel tashi", 27.33, 88.61, 3.0),
		ratedPlace("b2", "Orchid Retreat", 27.35, 88.60, 4.2),
	}}
	agg := newTestAggregator(t, first, second)

	result, err := agg.Search(context.Background(), "hotels in gangtok", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	ids := make([]string, 0, len(result.Places))
	for _, p := range result.Places {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a1", "a2", "b2"}, ids)
}

func TestSearchDedupKeepsDeclaredOrderUnderConcurrency(t *testing.T) {
	// The slow adapter is declared first; its copy must still win even
	// though the fast one finishes long before it.
	slow := &stubAdapter{name: "slow", delay: 100 * time.Millisecond, places: []model.Place{
		ratedPlace("slow_1", "Rumtek Monastery", 27.2886, 88.6615, 4.8),
	}}
	fast := &stubAdapter{name: "fast", places: []model.Place{
		ratedPlace("fast_1", "rumtek monastery", 27.2886, 88.6615, 4.1),
	}}
	agg := newTestAggregator(t, slow, fast)

	result, err := agg.Search(context.Background(), "monasteries", nil, nil)

	require.NoError(t, err)
	require.Len(t, result.Places, 1)
	assert.Equal(t, "slow_1", result.Places[0].ID)
}

func TestSearchAllProvidersDown(t *testing.T) {
	broken := &stubAdapter{name: "broken", err: errors.New("connection refused")}
	alsoBroken := &stubAdapter{name: "also-broken", err: errors.New("timeout")}
	agg := newTestAggregator(t, broken, alsoBroken)

	result, err := agg.Search(context.Background(), "places to visit", nil, nil)

	require.NoError(t, err)
	assert.NotNil(t, result.Places)
	assert.Empty(t, result.Places)
	assert.Zero(t, result.TotalCount)
	assert.False(t, result.HasMore)
	assert.Equal(t, "places to visit", result.SearchMeta.Query)
	assert.Equal(t, model.CategoryAttractions, result.SearchMeta.ResolvedCategory)
}

func TestSearchPartialFailure(t *testing.T) {
	broken := &stubAdapter{name: "broken", err: errors.New("boom")}
	healthy := &stubAdapter{name: "healthy", places: []model.Place{
		ratedPlace("h1", "Tsomgo Lake", 27.3756, 88.7627, 4.7),
	}}
	agg := newTestAggregator(t, broken, healthy)

	result, err := agg.Search(context.Background(), "scenic spots", nil, nil)

	require.NoError(t, err)
	require.Len(t, result.Places, 1)
	assert.Equal(t, "h1", result.Places[0].ID)
}

func TestSearchSlowAdapterTimesOut(t *testing.T) {
	stuck := &stubAdapter{name: "stuck", delay: 5 * time.Second, places: []model.Place{
		ratedPlace("never", "Never Arrives", 27.0, 88.0, 5.0),
	}}
	healthy := &stubAdapter{name: "healthy", places: []model.Place{
		ratedPlace("h1", "Nathula Pass", 27.3908, 88.8475, 4.6),
	}}
	agg := NewAggregator(intent.NewClassifier("Sikkim"), []provider.Adapter{stuck, healthy}, AggregatorConfig{
		AdapterTimeout: 50 * time.Millisecond,
	}, testLogger())

	result, err := agg.Search(context.Background(), "viewpoints", nil, nil)

	require.NoError(t, err)
	require.Len(t, result.Places, 1)
	assert.Equal(t, "h1", result.Places[0].ID)
}

func TestSearchMinRatingAndLimit(t *testing.T) {
	adapter := &stubAdapter{name: "stub", places: []model.Place{
		ratedPlace("p1", "One", 27.30, 88.60, 4.8),
		ratedPlace("p2", "Two", 27.31, 88.61, 4.5),
		ratedPlace("p3", "Three", 27.32, 88.62, 4.2),
		ratedPlace("p4", "Four", 27.33, 88.63, 3.9),
		{ID: "p5", Name: "Unrated", Coordinates: model.Coordinates{Lat: 27.34, Lng: 88.64}},
	}}
	agg := newTestAggregator(t, adapter)

	result, err := agg.Search(context.Background(), "best hotels", &model.SearchFilters{
		MinRating: 4.0,
		Limit:     2,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.True(t, result.HasMore)
	require.Len(t, result.Places, 2)
	assert.Equal(t, "p1", result.Places[0].ID)
	assert.Equal(t, "p2", result.Places[1].ID)
}

func TestSearchCategoryOverrideAndCenterResolution(t *testing.T) {
	adapter := &stubAdapter{name: "stub"}
	agg := newTestAggregator(t, adapter)

	result, err := agg.Search(context.Background(), "hotels in pelling", &model.SearchFilters{
		Category: []string{"nightlife"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, model.CategoryNightlife, result.SearchMeta.ResolvedCategory)

	category, center := adapter.seen()
	assert.Equal(t, model.CategoryNightlife, category)
	pelling, _ := geo.CenterFor("pelling")
	assert.Equal(t, pelling, center)
}

func TestSearchCallerLocationWins(t *testing.T) {
	adapter := &stubAdapter{name: "stub"}
	agg := newTestAggregator(t, adapter)
	caller := model.Coordinates{Lat: 27.1643, Lng: 88.3636}

	_, err := agg.Search(context.Background(), "hotels in gangtok", nil, &caller)

	require.NoError(t, err)
	_, center := adapter.seen()
	assert.Equal(t, caller, center)
}

func TestSearchInvalidFilters(t *testing.T) {
	agg := newTestAggregator(t, &stubAdapter{name: "stub"})

	_, err := agg.Search(context.Background(), "hotels", &model.SearchFilters{MinRating: 9}, nil)
	assert.Error(t, err)

	_, err = agg.Search(context.Background(), "hotels", &model.SearchFilters{SortBy: "popularity"}, nil)
	assert.Error(t, err)

	_, err = agg.Search(context.Background(), "hotels", &model.SearchFilters{Category: []string{"casinos"}}, nil)
	assert.Error(t, err)
}

func TestSearchSortModes(t *testing.T) {
	level2, level1 := 2, 1
	near := ratedPlace("near", "Near", 27.3389, 88.6065, 3.5)
	far := ratedPlace("far", "Far", 28.0301, 88.5122, 4.9)
	near.PriceLevel = &level2
	far.PriceLevel = &level1

	makeAgg := func() *Aggregator {
		return newTestAggregator(t, &stubAdapter{name: "stub", places: []model.Place{near, far}})
	}

	byRating, err := makeAgg().Search(context.Background(), "places", &model.SearchFilters{SortBy: model.SortByRating}, nil)
	require.NoError(t, err)
	assert.Equal(t, "far", byRating.Places[0].ID)

	byPrice, err := makeAgg().Search(context.Background(), "places", &model.SearchFilters{SortBy: model.SortByPrice}, nil)
	require.NoError(t, err)
	assert.Equal(t, "far", byPrice.Places[0].ID)

	center := model.Coordinates{Lat: 27.3389, Lng: 88.6065}
	byDistance, err := makeAgg().Search(context.Background(), "places", &model.SearchFilters{SortBy: model.SortByDistance}, &center)
	require.NoError(t, err)
	assert.Equal(t, "near", byDistance.Places[0].ID)

	byRelevance, err := makeAgg().Search(context.Background(), "places", &model.SearchFilters{SortBy: model.SortByRelevance}, nil)
	require.NoError(t, err)
	assert.Equal(t, "near", byRelevance.Places[0].ID)
}

func TestNearby(t *testing.T) {
	adapter := &stubAdapter{name: "stub", places: []model.Place{
		ratedPlace("low", "Low", 27.30, 88.60, 3.0),
		ratedPlace("high", "High", 27.31, 88.61, 4.9),
	}}
	agg := newTestAggregator(t, adapter)

	places := agg.Nearby(context.Background(), model.Coordinates{Lat: 27.3, Lng: 88.6}, "not-a-category", 0)

	require.Len(t, places, 2)
	assert.Equal(t, "high", places[0].ID)

	category, _ := adapter.seen()
	assert.Equal(t, model.DefaultCategory, category)
}

func TestApplyFilters(t *testing.T) {
	open, closed := true, false
	level3 := 3
	center := model.Coordinates{Lat: 27.3389, Lng: 88.6065}

	openPlace := ratedPlace("open", "Open Cafe", 27.34, 88.61, 4.0)
	openPlace.IsOpen = &open
	closedPlace := ratedPlace("closed", "Closed Cafe", 27.34, 88.62, 4.5)
	closedPlace.IsOpen = &closed
	unknownPlace := ratedPlace("unknown", "Unknown Cafe", 27.34, 88.63, 4.2)

	t.Run("openNow requires a known open state", func(t *testing.T) {
		got := applyFilters([]model.Place{openPlace, closedPlace, unknownPlace},
			&model.SearchFilters{OpenNow: true}, center)
		require.Len(t, got, 1)
		assert.Equal(t, "open", got[0].ID)
	})

	t.Run("missing price level passes the price filter", func(t *testing.T) {
		priced := ratedPlace("priced", "Priced", 27.34, 88.61, 4.0)
		priced.PriceLevel = &level3
		unpriced := ratedPlace("unpriced", "Unpriced", 27.34, 88.62, 4.0)

		got := applyFilters([]model.Place{priced, unpriced},
			&model.SearchFilters{PriceLevel: []int{1, 2}}, center)
		require.Len(t, got, 1)
		assert.Equal(t, "unpriced", got[0].ID)
	})

	t.Run("subcategory matches tags case-insensitively", func(t *testing.T) {
		tagged := ratedPlace("tagged", "Tagged", 27.34, 88.61, 4.0)
		tagged.Tags = []string{"Luxury", "Spa"}
		plain := ratedPlace("plain", "Plain", 27.34, 88.62, 4.0)

		got := applyFilters([]model.Place{tagged, plain},
			&model.SearchFilters{Subcategory: []string{"luxury"}}, center)
		require.Len(t, got, 1)
		assert.Equal(t, "tagged", got[0].ID)
	})

	t.Run("maxDistance drops far places", func(t *testing.T) {
		near := ratedPlace("near", "Near", 27.3389, 88.6065, 4.0)
		far := ratedPlace("far", "Far", 28.0301, 88.5122, 4.0)

		got := applyFilters([]model.Place{near, far},
			&model.SearchFilters{MaxDistance: 10000}, center)
		require.Len(t, got, 1)
		assert.Equal(t, "near", got[0].ID)
	})
}

func TestSearchDedupFilterAndLimitTogether(t *testing.T) {
	first := &stubAdapter{name: "first", places: []model.Place{
		ratedPlace("a1", "Hotel One", 27.30, 88.60, 4.8),
		ratedPlace("a2", "Hotel Two", 27.31, 88.61, 3.5),
		ratedPlace("a3", "Hotel Three", 27.32, 88.62, 4.2),
	}}
	second := &stubAdapter{name: "second", places: []model.Place{
		// Duplicate of a1 with a different rating; the first copy wins
		// before the rating filter runs.
		ratedPlace("b1", "hotel one", 27.30, 88.60, 4.9),
		ratedPlace("b2", "Hotel Four", 27.33, 88.63, 4.6),
		{ID: "b3", Name: "Unrated Lodge", Coordinates: model.Coordinates{Lat: 27.34, Lng: 88.64}},
	}}
	agg := newTestAggregator(t, first, second)

	result, err := agg.Search(context.Background(), "hotels in gangtok", &model.SearchFilters{
		MinRating: 4.0,
		Limit:     2,
	}, nil)

	require.NoError(t, err)
	// Dedup leaves a1,a2,a3,b2,b3; minRating keeps a1,a3,b2; limit
	// truncates to two while totalCount reports the filtered set.
	assert.Equal(t, 3, result.TotalCount)
	assert.True(t, result.HasMore)
	require.Len(t, result.Places, 2)
	assert.Equal(t, "a1", result.Places[0].ID)
	assert.Equal(t, "a3", result.Places[1].ID)
	for _, p := range result.Places {
		assert.NotEqual(t, "b1", p.ID)
	}
}
