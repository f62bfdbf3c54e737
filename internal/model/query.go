package model

// SearchRequest is the public search contract.
type SearchRequest struct {
	Query    string         `json:"query" binding:"required"`
	Filters  *SearchFilters `json:"filters,omitempty"`
	Location *Coordinates   `json:"location,omitempty"`
}

// Sort orders accepted by SearchFilters.SortBy.
const (
	SortByRelevance = "relevance"
	SortByRating    = "rating"
	SortByDistance  = "distance"
	SortByPrice     = "price"
)

// SearchFilters narrows and orders the aggregated result set. A
// malformed filter set is the only error the search boundary raises.
type SearchFilters struct {
	Category    []string `json:"category,omitempty"`
	Subcategory []string `json:"subcategory,omitempty"`
	PriceLevel  []int    `json:"priceLevel,omitempty" validate:"omitempty,dive,min=1,max=5"`
	MinRating   float64  `json:"minRating,omitempty" validate:"min=0,max=5"`
	MaxDistance float64  `json:"maxDistance,omitempty" validate:"min=0"`
	OpenNow     bool     `json:"openNow,omitempty"`
	SortBy      string   `json:"sortBy,omitempty" validate:"omitempty,oneof=relevance rating distance price"`
	Limit       int      `json:"limit,omitempty" validate:"min=0"`
}

// SearchMeta echoes how the query was interpreted, for caller-side
// observability.
type SearchMeta struct {
	Query            string        `json:"query"`
	ResolvedCategory Category      `json:"resolvedCategory"`
	ResolvedLocation string        `json:"resolvedLocation"`
	Filters          SearchFilters `json:"filters"`
	Intent           Intent        `json:"intent"`
}

// SearchResult is the aggregated, deduplicated, filtered result set.
// TotalCount counts matches before truncation to Filters.Limit.
type SearchResult struct {
	Places     []Place    `json:"places"`
	TotalCount int        `json:"totalCount"`
	HasMore    bool       `json:"hasMore"`
	SearchMeta SearchMeta `json:"searchMeta"`
}
