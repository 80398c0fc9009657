package sim

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// SensitivityMultipliers scale the arrival rate in a sensitivity sweep.
// They are increasing, so the table comes out in increasing λ order.
var SensitivityMultipliers = [...]float64{0.6, 0.8, 1.0, 1.2}

// SensitivityRow holds the metrics for one scaled arrival rate.
type SensitivityRow struct {
	ArrivalRate  float64 // λᵢ
	TimeInSystem float64 // W
	WaitInQueue  float64 // Wq
	SystemLength float64 // L
	QueueLength  float64 // Lq
}

// SensitivityTable is ordered by increasing arrival rate.
type SensitivityTable []SensitivityRow

// ComputeSensitivity recomputes W, Wq, L and Lq for λ scaled by each of
// SensitivityMultipliers. Scaled rates that would overload the four
// servers are left out of the table. Non-positive rates give an empty
// table.
func ComputeSensitivity(lambda, mu float64) SensitivityTable {
	if err := validateRates(lambda, mu); err != nil {
		logrus.Debugf("sensitivity sweep skipped: %v", err)
		return SensitivityTable{}
	}

	capacity := ServerCount * mu
	rates := make([]float64, 0, len(SensitivityMultipliers))
	for _, m := range SensitivityMultipliers {
		if l := lambda * m; l < capacity {
			rates = append(rates, l)
		}
	}

	table := make(SensitivityTable, 0, len(rates))
	for _, l := range rates {
		rho := l / capacity
		if rho >= 1 {
			logrus.Debugf("sensitivity: dropping λ=%v (ρ=%.4f)", l, rho)
			continue
		}
		st := erlangC(l, mu, rho)
		table = append(table, SensitivityRow{
			ArrivalRate:  l,
			TimeInSystem: st.w,
			WaitInQueue:  st.wq,
			SystemLength: st.l,
			QueueLength:  st.lq,
		})
	}
	return table
}

// SeriesNames lists the chart series in display order.
var SeriesNames = [...]string{"W", "Wq", "L", "Lq"}

// Series splits the table into x values (λ) and one y slice per metric,
// ordered as SeriesNames.
func (t SensitivityTable) Series() (x []float64, ys [len(SeriesNames)][]float64) {
	x = make([]float64, len(t))
	for i := range ys {
		ys[i] = make([]float64, len(t))
	}
	for i, row := range t {
		x[i] = row.ArrivalRate
		ys[0][i] = row.TimeInSystem
		ys[1][i] = row.WaitInQueue
		ys[2][i] = row.SystemLength
		ys[3][i] = row.QueueLength
	}
	return x, ys
}

// Print writes the table with one row per arrival rate.
func (t SensitivityTable) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Sensitivity Analysis ===")
	if len(t) == 0 {
		fmt.Fprintln(w, "(no stable arrival rates)")
		return
	}
	fmt.Fprintf(w, "%10s %10s %10s %10s %10s\n", "λ", "W", "Wq", "L", "Lq")
	for _, r := range t {
		fmt.Fprintf(w, "%10.4f %10.4f %10.4f %10.4f %10.4f\n",
			r.ArrivalRate, r.TimeInSystem, r.WaitInQueue, r.SystemLength, r.QueueLength)
	}
}
