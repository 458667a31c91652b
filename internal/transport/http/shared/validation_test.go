package shared

import "testing"

func TestValidatorCollectsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "", "name is required")
	v.Enum("type", "diagonal", []string{"horizontal", "vertical", "merit"}, "type must be horizontal, vertical or merit")
	v.Range("score", 7, 0, 5, "score must be between 0 and 5")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	// issues come back sorted by field
	if issues[0].Field != "name" || issues[1].Field != "score" || issues[2].Field != "type" {
		t.Fatalf("unexpected issue order: %+v", issues)
	}
}

func TestValidatorAcceptsValidInput(t *testing.T) {
	v := NewValidator()
	v.Required("name", "Ana", "name is required")
	v.Enum("type", "merit", []string{"horizontal", "vertical", "merit"}, "type must be valid")
	v.Range("score", 4.5, 0, 5, "score must be between 0 and 5")

	if v.HasIssues() {
		t.Fatalf("expected no issues, got %+v", v.Issues())
	}
}
