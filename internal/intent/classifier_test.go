package intent

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

func TestClassifyHotelQuery(t *testing.T) {
	c := NewClassifier("Sikkim")

	it := c.Classify("best hotel in Gangtok")

	assert.Equal(t, model.CategoryHotels, it.Category)
	assert.InDelta(t, 2.5/3.0, it.Confidence, 0.0001)
	assert.Equal(t, "Gangtok", it.Location)
	assert.Equal(t, model.SentimentPositive, it.Sentiment.Vote)

	require.NotEmpty(t, it.Entities)
	assert.Equal(t, model.EntityLocation, it.Entities[0].Kind)
	assert.Equal(t, "gangtok", it.Entities[0].Text)
	assert.Equal(t, 14, it.Entities[0].Start)
	assert.Equal(t, 21, it.Entities[0].End)
}

func TestClassifyMonasteryQuery(t *testing.T) {
	c := NewClassifier("Sikkim")

	it := c.Classify("visit buddhist monastery")

	assert.Equal(t, model.CategoryMonasteries, it.Category)
	assert.Equal(t, 1.0, it.Confidence)
}

func TestClassifyEmptyQuery(t *testing.T) {
	c := NewClassifier("Sikkim")

	it := c.Classify("")

	assert.Equal(t, model.DefaultCategory, it.Category)
	assert.Zero(t, it.Confidence)
	assert.Empty(t, it.Entities)
	assert.Empty(t, it.Subcategories)
	assert.Equal(t, model.SentimentNeutral, it.Sentiment.Vote)
	assert.Zero(t, it.Sentiment.Score)
	assert.Equal(t, "Sikkim", it.Location)
}

func TestClassifyGibberishFallsBackToDefault(t *testing.T) {
	c := NewClassifier("Sikkim")

	it := c.Classify("xyzzy plugh qwrt")

	assert.Equal(t, model.DefaultCategory, it.Category)
	assert.LessOrEqual(t, it.Confidence, 0.3)
}

func TestClassifyNumberEntities(t *testing.T) {
	c := NewClassifier("Sikkim")

	it := c.Classify("top 5 hotels under 2000")

	var numbers []string
	for _, e := range it.Entities {
		if e.Kind == model.EntityNumber {
			numbers = append(numbers, e.Text)
		}
	}
	assert.Equal(t, []string{"5", "2000"}, numbers)
}

func TestClassifySubcategories(t *testing.T) {
	c := NewClassifier("Sikkim")

	it := c.Classify("luxury hotel with spa")

	assert.Equal(t, model.CategoryHotels, it.Category)
	assert.Equal(t, []string{"luxury"}, it.Subcategories)
}

func TestClassifyNegativeSentiment(t *testing.T) {
	c := NewClassifier("Sikkim")

	it := c.Classify("terrible awful worst experience")

	assert.Equal(t, model.SentimentNegative, it.Sentiment.Vote)
	assert.InDelta(t, -0.75, it.Sentiment.Score, 0.0001)
}

func TestExtractLocation(t *testing.T) {
	c := NewClassifier("Sikkim")

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"preposition capture", "monasteries near rumtek", "rumtek"},
		{"direct gazetteer scan", "explore yumthang valley", "yumthang"},
		{"unknown capture falls back to scan", "food in delhi like sikkim", "sikkim"},
		{"no location at all", "best travel tips", "Sikkim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.query).Location)
		})
	}
}

func TestClassifyIsDeterministicAndBounded(t *testing.T) {
	c := NewClassifier("Sikkim")
	faker := gofakeit.New(42)

	for i := 0; i < 250; i++ {
		query := faker.Sentence(8)

		first := c.Classify(query)
		second := c.Classify(query)

		require.Equal(t, first, second, "query %q", query)
		assert.True(t, first.Category.Valid(), "query %q", query)
		assert.GreaterOrEqual(t, first.Confidence, 0.0)
		assert.LessOrEqual(t, first.Confidence, 1.0)
		assert.GreaterOrEqual(t, first.Sentiment.Score, -1.0)
		assert.LessOrEqual(t, first.Sentiment.Score, 1.0)
		assert.NotEmpty(t, first.Location)
	}
}
