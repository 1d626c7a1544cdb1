package draw

import (
	"fmt"
	"io"

	"github.com/yourusername/draw-odds/internal/models"
)

// Reporter renders a human-readable run summary for the one-shot CLI.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report prints the estimation summary.
func (r *Reporter) Report(result *models.EstimationResult, ds *Dataset, policy Policy) {
	fmt.Fprintln(r.out, "\n=== Draw Position Estimate ===")
	fmt.Fprintf(r.out, "Target: %s (%s)\n", result.TargetDisplayName(), result.TargetID)
	fmt.Fprintf(r.out, "Draw time: %s\n", result.DrawTime)
	fmt.Fprintf(r.out, "Position in %s draw: %d of %d\n", policy.Group, result.RawRank, result.PoolSize)

	if result.HasFirstDraw() {
		fmt.Fprintln(r.out, "\nYou have the first draw time. Nobody draws before you.")
	}

	fmt.Fprintf(r.out, "\nPeople initially drawing before you: %d\n", result.InitialAhead)
	fmt.Fprintf(r.out, "  Removed, likely taking a %s spot (capacity %d): %d\n",
		policy.ScarceUnit, result.SubPoolCapacity, result.RemovedSubPool)
	fmt.Fprintf(r.out, "  Removed, likely drawing early in another pool (top %d each): %d\n",
		result.CrossPoolTopN, result.RemovedCrossPool)
	fmt.Fprintf(r.out, "Total removed: %d\n", result.TotalRemoved)
	fmt.Fprintf(r.out, "People estimated to actually draw before you: %d\n", result.FilteredAhead)

	fmt.Fprintf(r.out, "\nAvailable %s rooms in %s: %d\n",
		policy.ScarceRoomType, policy.Group, result.AvailableSpots)
	fmt.Fprintf(r.out, "Estimated chance of a %s at adjusted rank %d: %d%%\n",
		policy.ScarceRoomType, result.AdjustedRank(), result.Probability)
	fmt.Fprintln(r.out, "\nThis is a linear heuristic estimate, not a guarantee.")

	if len(ds.PoolNames) > 0 {
		fmt.Fprintf(r.out, "\nPools considered for early claimants:\n")
		for _, name := range ds.PoolNames {
			fmt.Fprintf(r.out, "  - %s\n", name)
		}
	}

	degraded := degradedSources(ds)
	if len(degraded) > 0 {
		fmt.Fprintf(r.out, "\nSources that failed to load (estimate is less accurate):\n")
		for _, name := range degraded {
			fmt.Fprintf(r.out, "  - %s\n", name)
		}
	}
}

func degradedSources(ds *Dataset) []string {
	var names []string
	for _, stat := range ds.Stats {
		if stat.Degraded {
			names = append(names, stat.Source)
		}
	}
	return names
}
