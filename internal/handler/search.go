package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/service"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	aggregator   *service.Aggregator
	defaultLimit int
	maxLimit     int
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(aggregator *service.Aggregator, defaultLimit, maxLimit int) *SearchHandler {
	return &SearchHandler{
		aggregator:   aggregator,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Filters == nil {
		req.Filters = &model.SearchFilters{Limit: h.defaultLimit}
	} else {
		if req.Filters.Limit <= 0 {
			req.Filters.Limit = h.defaultLimit
		}
		if req.Filters.Limit > h.maxLimit {
			req.Filters.Limit = h.maxLimit
		}
	}

	result, err := h.aggregator.Search(c.Request.Context(), req.Query, req.Filters, req.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Nearby handles GET /api/v1/places/nearby
func (h *SearchHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lng"})
		return
	}

	category := model.Category(c.DefaultQuery("category", string(model.DefaultCategory)))

	radiusM := 0
	if raw := c.Query("radius"); raw != "" {
		radiusM, err = strconv.Atoi(raw)
		if err != nil || radiusM < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
			return
		}
	}

	places := h.aggregator.Nearby(c.Request.Context(), model.Coordinates{Lat: lat, Lng: lng}, category, radiusM)

	c.JSON(http.StatusOK, gin.H{
		"places":     places,
		"totalCount": len(places),
	})
}
