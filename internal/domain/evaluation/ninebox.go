package evaluation

// NineBoxUnclassified is the defensive fallback for a band combination
// missing from the grid. The three bands are exhaustive, so it should never
// be returned in practice.
const NineBoxUnclassified = "Não classificado"

const (
	bandLow    = "low"
	bandMedium = "medium"
	bandHigh   = "high"
)

// nineBoxGrid maps "performance:potential" band pairs to the talent labels
// used during consensus.
var nineBoxGrid = map[string]string{
	"low:low":       "Questionável",
	"low:medium":    "Dilema",
	"low:high":      "Enigma",
	"medium:low":    "Eficaz",
	"medium:medium": "Mantenedor",
	"medium:high":   "Crescimento",
	"high:low":      "Especialista",
	"high:medium":   "Alta Performance",
	"high:high":     "Estrela",
}

// ClassifyNineBox buckets both axes (≤2 low, ≤3 medium, >3 high) and looks
// the pair up in the fixed 3×3 grid.
func ClassifyNineBox(performance, potential float64) string {
	key := scoreBand(performance) + ":" + scoreBand(potential)
	if label, ok := nineBoxGrid[key]; ok {
		return label
	}
	return NineBoxUnclassified
}

func scoreBand(score float64) string {
	switch {
	case score <= 2:
		return bandLow
	case score <= 3:
		return bandMedium
	default:
		return bandHigh
	}
}
