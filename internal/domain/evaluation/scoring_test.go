package evaluation

import "testing"

func TestCategoryScore(t *testing.T) {
	competencies := []Competency{
		{Name: "Go", Category: CategoryTechnical, Score: 4},
		{Name: "SQL", Category: CategoryTechnical, Score: 3},
		{Name: "Comunicação", Category: CategoryBehavioral, Score: 5},
	}

	if got := CategoryScore(competencies, CategoryTechnical); got != 3.5 {
		t.Fatalf("technical score = %v, want 3.5", got)
	}
	if got := CategoryScore(competencies, CategoryBehavioral); got != 5 {
		t.Fatalf("behavioral score = %v, want 5", got)
	}
	if got := CategoryScore(competencies, CategoryDeliveries); got != 0 {
		t.Fatalf("empty category score = %v, want 0", got)
	}
}

func TestFinalScoreEmptyList(t *testing.T) {
	if got := FinalScore(nil); got != 0 {
		t.Fatalf("final score of empty list = %v, want 0", got)
	}
}

func TestFinalScoreIdenticalScores(t *testing.T) {
	for _, score := range []float64{0, 2.5, 3.7, 5} {
		competencies := []Competency{
			{Name: "A", Category: CategoryTechnical, Score: score},
			{Name: "B", Category: CategoryBehavioral, Score: score},
			{Name: "C", Category: CategoryDeliveries, Score: score},
		}
		if got := FinalScore(competencies); got != score {
			t.Fatalf("final score of uniform %v competencies = %v", score, got)
		}
	}
}

// The final score weighs every competency equally, so with an uneven spread
// of competencies per category it differs from averaging the three category
// scores.
func TestFinalScoreIsNotCategoryAverage(t *testing.T) {
	competencies := []Competency{
		{Name: "Go", Category: CategoryTechnical, Score: 5},
		{Name: "SQL", Category: CategoryTechnical, Score: 5},
		{Name: "Postura", Category: CategoryBehavioral, Score: 2},
	}

	if got := FinalScore(competencies); got != 4 {
		t.Fatalf("final score = %v, want 4", got)
	}
	categoryAverage := (CategoryScore(competencies, CategoryTechnical) + CategoryScore(competencies, CategoryBehavioral)) / 2
	if categoryAverage == 4 {
		t.Fatalf("expected category average %v to differ from final score", categoryAverage)
	}
}
