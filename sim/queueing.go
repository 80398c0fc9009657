package sim

import (
	"math"
	"strconv"
	"strings"
)

// ServerCount is the number of parallel servers (roundabout lanes) in the
// M/M/C model. The model is fixed at four.
const ServerCount = 4

// factorials[n] = n! for n in 0..ServerCount.
var factorials = [ServerCount + 1]float64{1, 1, 2, 6, 24}

// QueueingInput holds the parameters of a single computation.
type QueueingInput struct {
	ArrivalRate float64 // λ, cars per unit time (> 0)
	ServiceRate float64 // μ, cars per unit time per server (> 0)
	EntryID     int     // 1..4
	ExitID      int     // 1..4
}

// Validate checks rates and selectors. Overload is checked separately
// because it depends on both rates together.
func (in QueueingInput) Validate() error {
	if err := validateRates(in.ArrivalRate, in.ServiceRate); err != nil {
		return err
	}
	return ValidateSelectors(in.EntryID, in.ExitID)
}

func validateRates(lambda, mu float64) error {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return invalidInput(ReasonNonPositiveRate, "arrival rate must be a positive number, got %v", lambda)
	}
	if !(mu > 0) || math.IsInf(mu, 0) {
		return invalidInput(ReasonNonPositiveRate, "service rate must be a positive number, got %v", mu)
	}
	return nil
}

// ParseInput converts raw text fields into a QueueingInput. It only checks
// that the text is numeric; ranges are checked by ComputeMetrics.
func ParseInput(lambda, mu, entry, exit string) (QueueingInput, error) {
	var in QueueingInput
	var err error
	if in.ArrivalRate, err = parseFloat("arrival rate", lambda); err != nil {
		return QueueingInput{}, err
	}
	if in.ServiceRate, err = parseFloat("service rate", mu); err != nil {
		return QueueingInput{}, err
	}
	if in.EntryID, err = parseInt("entry", entry); err != nil {
		return QueueingInput{}, err
	}
	if in.ExitID, err = parseInt("exit", exit); err != nil {
		return QueueingInput{}, err
	}
	return in, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, invalidInput(ReasonNonNumeric, "%s %q is not a number", field, s)
	}
	return v, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalidInput(ReasonNonNumeric, "%s %q is not an integer", field, s)
	}
	return v, nil
}

// queueStats are the Erlang-C quantities shared by ComputeMetrics and
// ComputeSensitivity.
type queueStats struct {
	rho, p0, wq, lq, w, l float64
}

// erlangC evaluates the M/M/c formulas for c = ServerCount. The caller
// guarantees λ, μ > 0 and ρ < 1.
func erlangC(lambda, mu, rho float64) queueStats {
	c := float64(ServerCount)
	a := c * rho // offered load in Erlangs

	sumTerms := 0.0
	for n := 0; n < ServerCount; n++ {
		sumTerms += math.Pow(a, float64(n)) / factorials[n]
	}
	ac := math.Pow(a, c)
	p0 := 1 / (sumTerms + ac/(factorials[ServerCount]*(1-rho)))

	wq := p0 * ac * rho / (factorials[ServerCount] * (1 - rho) * (1 - rho) * mu)
	w := wq + 1/mu
	return queueStats{
		rho: rho,
		p0:  p0,
		wq:  wq,
		lq:  lambda * wq,
		w:   w,
		l:   lambda * w,
	}
}

// ComputeMetrics evaluates the M/M/4 model for in and adds the time a car
// spends travelling around the roundabout from its entry to its exit.
// It returns an *InvalidInputError and no partial result on failure.
func ComputeMetrics(in QueueingInput) (QueueingResult, error) {
	if err := in.Validate(); err != nil {
		return QueueingResult{}, err
	}
	rho := in.ArrivalRate / (ServerCount * in.ServiceRate)
	if rho >= 1 {
		return QueueingResult{}, invalidInput(ReasonOverloaded,
			"system is overloaded: ρ = %.4f ≥ 1 (λ = %v, %d·μ = %v)",
			rho, in.ArrivalRate, ServerCount, ServerCount*in.ServiceRate)
	}
	travel, err := TravelFraction(in.EntryID, in.ExitID)
	if err != nil {
		return QueueingResult{}, err
	}

	st := erlangC(in.ArrivalRate, in.ServiceRate, rho)
	return QueueingResult{
		Input:             in,
		Utilization:       st.rho,
		IdleProbability:   st.p0,
		WaitInQueue:       st.wq,
		QueueLength:       st.lq,
		TimeInSystem:      st.w,
		SystemLength:      st.l,
		TravelFraction:    travel,
		TotalTimeInSystem: st.w + travel,
	}, nil
}
