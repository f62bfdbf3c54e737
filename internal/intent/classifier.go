package intent

import (
	"regexp"
	"strings"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/geo"
	"github.com/hardikguptaofficialgit/toura-sub000/internal/model"
)

const (
	keywordScore = 1.0
	phraseBoost  = 1.5
	tokenScore   = 0.5

	// confidenceFloor forces the default category; the numeric
	// confidence keeps the pre-fallback winner's score.
	confidenceFloor = 0.3
)

var (
	numberRe   = regexp.MustCompile(`\b\d+(\.\d+)?\b`)
	locationRe = regexp.MustCompile(`(?i)(?:in|at|near|around|from)\s+([a-zA-Z][a-zA-Z ]*?)(?:\s|$|,|\?|!)`)
)

// Classifier turns free text into a structured Intent using fixed rule
// tables. It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	defaultRegion string
}

// NewClassifier creates a classifier. defaultRegion is returned as the
// location when the query names no known place.
func NewClassifier(defaultRegion string) *Classifier {
	return &Classifier{defaultRegion: defaultRegion}
}

// Classify parses a free-text query. It is a total function: any input,
// including the empty string, yields a well-formed Intent, and the same
// input always yields the same output.
func (c *Classifier) Classify(query string) model.Intent {
	lower := strings.ToLower(query)
	tokens := strings.Fields(lower)

	best := model.DefaultCategory
	bestScore := -1.0
	for _, cat := range model.Categories {
		if score := scoreCategory(lower, tokens, cat); score > bestScore {
			best, bestScore = cat, score
		}
	}

	confidence := clamp(bestScore/3, 0, 1)
	category := best
	if confidence <= confidenceFloor {
		category = model.DefaultCategory
	}

	return model.Intent{
		Category:      category,
		Confidence:    confidence,
		Entities:      extractEntities(query),
		Sentiment:     analyzeSentiment(tokens),
		Subcategories: extractSubcategories(lower, best),
		Location:      c.extractLocation(query),
	}
}

// scoreCategory applies the three scoring passes: whole-query keyword
// substrings, whole-query phrase substrings, and per-token bidirectional
// containment against the pooled category vocabulary.
func scoreCategory(lower string, tokens []string, cat model.Category) float64 {
	pattern := categoryPatterns[cat]
	score := 0.0

	for _, kw := range pattern.Keywords {
		if strings.Contains(lower, kw) {
			score += pattern.Weight * keywordScore
		}
	}
	for _, phrase := range pattern.Phrases {
		if strings.Contains(lower, phrase) {
			score += pattern.Weight * phraseBoost
		}
	}
	for _, token := range tokens {
		for _, word := range categoryVocab[cat] {
			if strings.Contains(word, token) || strings.Contains(token, word) {
				score += tokenScore
				break
			}
		}
	}
	return score
}

// extractEntities records gazetteer place names and numeric tokens with
// their character offsets.
func extractEntities(query string) []model.Entity {
	entities := []model.Entity{}
	lower := strings.ToLower(query)

	for _, name := range geo.GazetteerNames {
		if idx := strings.Index(lower, name); idx != -1 {
			entities = append(entities, model.Entity{
				Kind:  model.EntityLocation,
				Text:  name,
				Start: idx,
				End:   idx + len(name),
			})
		}
	}

	for _, m := range numberRe.FindAllStringIndex(query, -1) {
		entities = append(entities, model.Entity{
			Kind:  model.EntityNumber,
			Text:  query[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
		})
	}
	return entities
}

// analyzeSentiment counts positive and negative word hits with
// bidirectional containment and normalizes by the token count.
func analyzeSentiment(tokens []string) model.Sentiment {
	if len(tokens) == 0 {
		return model.Sentiment{Vote: model.SentimentNeutral}
	}

	positives, negatives := 0, 0
	for _, token := range tokens {
		if containsAny(token, positiveWords) {
			positives++
		}
		if containsAny(token, negativeWords) {
			negatives++
		}
	}

	score := float64(positives-negatives) / float64(len(tokens))
	vote := model.SentimentNeutral
	switch {
	case score > 0.1:
		vote = model.SentimentPositive
	case score < -0.1:
		vote = model.SentimentNegative
	}

	return model.Sentiment{
		Score:       clamp(score, -1, 1),
		Comparative: score,
		Vote:        vote,
	}
}

func containsAny(token string, words []string) bool {
	for _, w := range words {
		if strings.Contains(token, w) || strings.Contains(w, token) {
			return true
		}
	}
	return false
}

// extractSubcategories returns every matching group for the winning
// category; groups are non-exclusive and the result may be empty.
func extractSubcategories(lower string, cat model.Category) []string {
	subcategories := []string{}
	for _, group := range subcategoryGroups[cat] {
		for _, kw := range group.Keywords {
			if strings.Contains(lower, kw) {
				subcategories = append(subcategories, group.Name)
				break
			}
		}
	}
	return subcategories
}

// extractLocation tries a preposition capture validated against the
// gazetteer, then a direct gazetteer scan, then the default region.
func (c *Classifier) extractLocation(query string) string {
	if m := locationRe.FindStringSubmatch(query); len(m) > 1 {
		candidate := strings.TrimSpace(m[1])
		lower := strings.ToLower(candidate)
		for _, name := range geo.GazetteerNames {
			if strings.Contains(lower, name) || strings.Contains(name, lower) {
				return candidate
			}
		}
	}

	lower := strings.ToLower(query)
	for _, name := range geo.GazetteerNames {
		if strings.Contains(lower, name) {
			return name
		}
	}
	return c.defaultRegion
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
