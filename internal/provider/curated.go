package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/geo"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

// CuratedConfig configures the curated-dataset provider.
type CuratedConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// Curated serves the hand-maintained Sikkim POI dataset from Postgres.
// It participates in the fan-out like any remote provider; placed first
// in the adapter order, its entries win dedup ties against remote data.
type Curated struct {
	db  *sqlx.DB
	log *logrus.Logger
}

// NewCurated connects to the curated dataset.
func NewCurated(cfg CuratedConfig, log *logrus.Logger) (*Curated, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to curated dataset: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping curated dataset: %w", err)
	}
	return &Curated{db: db, log: log}, nil
}

// Close releases the database connection pool.
func (p *Curated) Close() error {
	return p.db.Close()
}

// Name implements Adapter.
func (p *Curated) Name() string { return "toura" }

// curatedRow mirrors the curated_places table.
type curatedRow struct {
	Slug        string         `db:"slug"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	Subcategory string         `db:"subcategory"`
	Rating      *float64       `db:"rating"`
	ReviewCount *int           `db:"review_count"`
	Address     string         `db:"address"`
	Description string         `db:"description"`
	Lat         float64        `db:"lat"`
	Lng         float64        `db:"lng"`
	Images      pq.StringArray `db:"images"`
	Tags        pq.StringArray `db:"tags"`
	Features    pq.StringArray `db:"features"`
	Timings     *string        `db:"timings"`
	Phone       *string        `db:"phone"`
	Website     *string        `db:"website"`
	IsOpen      *bool          `db:"is_open"`
}

// Search implements Adapter. Category filtering happens in SQL; the
// radius cut happens here because the dataset is small and carries no
// geo index.
func (p *Curated) Search(ctx context.Context, category model.Category, center model.Coordinates, radiusM, limit int) ([]model.Place, error) {
	query := `
		SELECT slug, name, category, subcategory, rating, review_count,
		       address, description, lat, lng, images, tags, features,
		       timings, phone, website, is_open
		FROM curated_places
		WHERE category = ANY($1)
		ORDER BY rating DESC NULLS LAST, slug
		LIMIT $2
	`
	var rows []curatedRow
	err := p.db.SelectContext(ctx, &rows, query, pq.Array(MappingFor(category).CuratedCategories), limit)
	if err != nil {
		return nil, &FetchError{Provider: p.Name(), Err: err}
	}

	places := make([]model.Place, 0, len(rows))
	for _, row := range rows {
		place, ok := p.normalize(row, category)
		if !ok {
			continue
		}
		if radiusM > 0 && geo.Haversine(center, place.Coordinates) > float64(radiusM) {
			continue
		}
		places = append(places, place)
	}
	return places, nil
}

// normalize converts one curated row to the canonical shape.
func (p *Curated) normalize(row curatedRow, category model.Category) (model.Place, bool) {
	if row.Name == "" {
		return model.Place{}, false
	}

	place := model.Place{
		ID:          "toura_" + row.Slug,
		Name:        row.Name,
		Category:    row.Category,
		Subcategory: row.Subcategory,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		Image:       PlaceholderImage(category),
		Images:      row.Images,
		Address:     row.Address,
		Description: row.Description,
		Coordinates: model.Coordinates{Lat: row.Lat, Lng: row.Lng},
		Tags:        row.Tags,
		Features:    row.Features,
		IsOpen:      row.IsOpen,
	}
	if len(row.Images) > 0 {
		place.Image = row.Images[0]
	}
	if row.Timings != nil && *row.Timings != "" {
		place.OpeningHours = []string{*row.Timings}
	}
	if row.Phone != nil || row.Website != nil {
		contact := &model.Contact{}
		if row.Phone != nil {
			contact.Phone = *row.Phone
		}
		if row.Website != nil {
			contact.Website = *row.Website
		}
		place.Contact = contact
	}
	if place.Tags == nil {
		place.Tags = []string{}
	}
	if place.Features == nil {
		place.Features = []string{}
	}
	return place, true
}
