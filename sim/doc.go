// Package sim evaluates a four-entry roundabout as an M/M/4 queue.
//
// # Reading Guide
//
//   - queueing.go: QueueingInput, the Erlang-C formulas and ComputeMetrics
//   - roundabout.go: entry/exit compass angles and the travel fraction
//   - sensitivity.go: the arrival-rate sweep behind the sensitivity chart
//   - metrics.go: QueueingResult and its text summary
//   - errors.go: InvalidInputError, the only error kind
//
// Everything here is a pure function of its arguments. Animation lives in
// sim/trajectory (positions) and ui (timing); chart rendering in sim/chart.
package sim
