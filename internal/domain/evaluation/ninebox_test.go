package evaluation

import "testing"

func TestClassifyNineBoxCorners(t *testing.T) {
	tests := []struct {
		performance float64
		potential   float64
		want        string
	}{
		{5, 5, "Estrela"},
		{4.5, 3.5, "Estrela"},
		{1, 1, "Questionável"},
		{2, 2, "Questionável"},
		{2, 5, "Enigma"},
		{5, 2, "Especialista"},
		{2.5, 2.5, "Mantenedor"},
		{3, 3, "Mantenedor"},
		{3, 3.5, "Crescimento"},
		{3.5, 3, "Alta Performance"},
		{2, 2.5, "Dilema"},
		{2.5, 2, "Eficaz"},
	}
	for _, tt := range tests {
		if got := ClassifyNineBox(tt.performance, tt.potential); got != tt.want {
			t.Fatalf("ClassifyNineBox(%v, %v) = %q, want %q", tt.performance, tt.potential, got, tt.want)
		}
	}
}

// Every score pair in [0, 5] lands in a named box.
func TestClassifyNineBoxTotal(t *testing.T) {
	for performance := 0.0; performance <= 5.0; performance += 0.25 {
		for potential := 0.0; potential <= 5.0; potential += 0.25 {
			got := ClassifyNineBox(performance, potential)
			if got == "" || got == NineBoxUnclassified {
				t.Fatalf("ClassifyNineBox(%v, %v) = %q", performance, potential, got)
			}
		}
	}
}
