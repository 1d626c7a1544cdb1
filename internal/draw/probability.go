package draw

import "github.com/shopspring/decimal"

// Probability converts available scarce spots and the target's adjusted rank
// into an integer percentage in [0,100]. The model is a linear heuristic,
// an estimate rather than a combinatorial probability: no spots means no
// chance, a rank within the available supply means certainty, and anything
// between scales proportionally.
func Probability(available, rank int) int {
	if available <= 0 {
		return 0
	}
	if rank <= 0 {
		return 100
	}
	if available >= rank {
		return 100
	}

	percent := decimal.NewFromInt(int64(available) * 100).
		Div(decimal.NewFromInt(int64(rank))).
		Round(0)

	p := int(percent.IntPart())
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
