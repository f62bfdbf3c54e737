package model

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Contact holds optional ways to reach a place.
type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Place is the canonical point-of-interest shape every provider
// normalizes into. ID is globally unique because each adapter prefixes
// it with its provider tag. Optional fields stay nil/empty rather than
// being synthesized; Image is the one exception and falls back to a
// category placeholder.
type Place struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Subcategory    string      `json:"subcategory,omitempty"`
	Rating         *float64    `json:"rating,omitempty"`
	ReviewCount    *int        `json:"reviewCount,omitempty"`
	Price          string      `json:"price,omitempty"`
	PriceLevel     *int        `json:"priceLevel,omitempty"`
	Image          string      `json:"image,omitempty"`
	Images         []string    `json:"images,omitempty"`
	Address        string      `json:"address"`
	Description    string      `json:"description,omitempty"`
	Coordinates    Coordinates `json:"coordinates"`
	Tags           []string    `json:"tags"`
	Features       []string    `json:"features"`
	OpeningHours   []string    `json:"openingHours,omitempty"`
	Contact        *Contact    `json:"contact,omitempty"`
	IsOpen         *bool       `json:"isOpen,omitempty"`
	BusinessStatus string      `json:"businessStatus,omitempty"`
}

// RatingOrZero treats a missing rating as zero, which is how the
// minRating filter and rating sort interpret it.
func (p *Place) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// PriceLevelOrZero treats a missing price level as zero for sorting.
func (p *Place) PriceLevelOrZero() int {
	if p.PriceLevel == nil {
		return 0
	}
	return *p.PriceLevel
}
