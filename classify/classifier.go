package classify

import (
	"fmt"
	"math"
	"strings"

	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/rs/zerolog/log"
)

// DefaultThreshold is the keyword-density threshold (matches per minute) above
// which a video is considered to belong to a category.
const DefaultThreshold = 0.5

// CountCategoryKeywords counts the non-overlapping occurrences of every
// keyword of the named category in text. Unknown categories count zero.
func CountCategoryKeywords(text, category string) int {
	c, ok := findCategory(category)
	if !ok {
		return 0
	}
	count := 0
	for _, kw := range c.Keywords {
		count += strings.Count(text, kw)
	}
	return count
}

// ContainsCategoryKeyword reports whether text contains at least one keyword
// of the named category.
func ContainsCategoryKeyword(text, category string) bool {
	c, ok := findCategory(category)
	if !ok {
		return false
	}
	for _, kw := range c.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// AnalyzeCategory computes the keyword-density score of one record for one
// category. An unknown category name is a caller contract violation and is
// returned as an error rather than recovered.
func AnalyzeCategory(rec *model.ClassifiedRecord, category string, threshold float64) (model.CategoryScore, error) {
	if _, ok := findCategory(category); !ok {
		return model.CategoryScore{}, fmt.Errorf("invalid category %q, valid categories: %v", category, CategoryNames())
	}

	score := model.CategoryScore{
		WordCount: CountCategoryKeywords(rec.Transcript, category),
	}

	// Zero-duration videos never match: a density over zero minutes is
	// undefined, so the score stays at zero instead of going non-finite.
	if rec.DurationMin > 0 {
		score.PerMin = round3(float64(score.WordCount) / rec.DurationMin)
		score.Matched = score.PerMin >= threshold
	}

	if rec.Metadata != nil {
		score.InTitle = ContainsCategoryKeyword(rec.Metadata.Title, category)
	}

	return score, nil
}

// Classify scores every record against every category and assigns each record
// its primary category. Records are enriched in place: duration minutes are
// computed once per record and shared across categories.
func Classify(records []*model.ClassifiedRecord, threshold float64) error {
	for _, rec := range records {
		rec.DurationMin = 0
		if rec.Metadata != nil {
			rec.DurationMin = float64(rec.Metadata.DurationSeconds) / 60
		}

		rec.Scores = make(map[string]model.CategoryScore, len(Categories))
		for _, c := range Categories {
			score, err := AnalyzeCategory(rec, c.Name, threshold)
			if err != nil {
				return err
			}
			rec.Scores[c.Name] = score
		}

		rec.PrimaryCategory = primaryCategory(rec.Scores)
	}

	log.Info().
		Int("record_count", len(records)).
		Float64("threshold", threshold).
		Msg("Classification completed")

	return nil
}

// primaryCategory picks the category with the highest density. Ties go to the
// category defined earliest in the fixed ordering; a zero maximum yields the
// "none" sentinel.
func primaryCategory(scores map[string]model.CategoryScore) string {
	best := model.PrimaryNone
	bestPerMin := 0.0
	for _, c := range Categories {
		s := scores[c.Name]
		if s.PerMin > bestPerMin {
			best = c.Name
			bestPerMin = s.PerMin
		}
	}
	return best
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
