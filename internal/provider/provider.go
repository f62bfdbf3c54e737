package provider

import (
	"context"
	"fmt"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

// Adapter is the uniform interface over one external geo-data source.
// Implementations fetch provider-native records and normalize them into
// canonical Places; a record that cannot be normalized is dropped, not
// propagated. Transport failures surface as *FetchError so the
// aggregator can skip the provider and keep going.
type Adapter interface {
	// Name is the stable provider tag, also used to prefix Place IDs.
	Name() string

	// Search returns normalized places for a semantic category around
	// center. The returned order is the provider's native relevance
	// order and must be stable for identical inputs.
	Search(ctx context.Context, category model.Category, center model.Coordinates, radiusM, limit int) ([]model.Place, error)
}

// FetchError wraps a provider transport or API failure. It is
// recoverable by contract: the failing provider contributes nothing and
// the search continues.
type FetchError struct {
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("provider %s: fetch failed: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
