// Holds the results of a queueing computation and formats them for display.

package sim

import (
	"fmt"
	"io"
	"strings"
)

// QueueingResult holds the M/M/4 metrics for one QueueingInput plus the
// roundabout travel time. Values are produced fresh per computation.
type QueueingResult struct {
	Input             QueueingInput
	Utilization       float64 // ρ = λ/(cμ)
	IdleProbability   float64 // P0, probability the system is empty
	WaitInQueue       float64 // Wq
	QueueLength       float64 // Lq = λ·Wq
	TimeInSystem      float64 // W = Wq + 1/μ
	SystemLength      float64 // L = λ·W
	TravelFraction    float64 // share of a lap between entry and exit
	TotalTimeInSystem float64 // W + TravelFraction
}

// Summary returns the text shown next to the roundabout: utilization,
// queue wait and length, total time (W plus travel) and system length.
func (r QueueingResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Utilization (ρ)      : %.4f\n", r.Utilization)
	fmt.Fprintf(&b, "Queue wait (Wq)      : %.4f\n", r.WaitInQueue)
	fmt.Fprintf(&b, "Queue length (Lq)    : %.4f\n", r.QueueLength)
	fmt.Fprintf(&b, "Total time (W)       : %.4f\n", r.TotalTimeInSystem)
	fmt.Fprintf(&b, "System length (L)    : %.4f\n", r.SystemLength)
	return b.String()
}

// Print writes the full set of metrics, including the intermediate values
// hidden by Summary.
func (r QueueingResult) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Queueing Metrics (M/M/4) ===")
	fmt.Fprintf(w, "Arrival rate (λ)     : %.4f\n", r.Input.ArrivalRate)
	fmt.Fprintf(w, "Service rate (μ)     : %.4f\n", r.Input.ServiceRate)
	fmt.Fprintf(w, "Entry → Exit         : %d → %d\n", r.Input.EntryID, r.Input.ExitID)
	fmt.Fprintf(w, "Idle probability (P0): %.4f\n", r.IdleProbability)
	fmt.Fprintf(w, "Time in system (W)   : %.4f\n", r.TimeInSystem)
	fmt.Fprintf(w, "Travel fraction      : %.4f\n", r.TravelFraction)
	fmt.Fprint(w, r.Summary())
}
