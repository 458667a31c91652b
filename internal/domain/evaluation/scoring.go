package evaluation

import "math"

// CategoryScore averages the scores of the competencies in one category,
// or 0 when the category has none.
func CategoryScore(competencies []Competency, category string) float64 {
	var sum float64
	var count int
	for _, competency := range competencies {
		if competency.Category == category {
			sum += competency.Score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round2(sum / float64(count))
}

// FinalScore averages every competency regardless of category, or 0 for an
// empty list. With mixed categories this is deliberately not the average of
// the category scores.
func FinalScore(competencies []Competency) float64 {
	if len(competencies) == 0 {
		return 0
	}
	var sum float64
	for _, competency := range competencies {
		sum += competency.Score
	}
	return round2(sum / float64(len(competencies)))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
