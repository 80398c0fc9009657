package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roundabout-sim/roundabout-sim/sim"
)

// Scenario is a saved set of simulator inputs. Nil fields mean "not set in
// YAML" and leave the flag default in place.
type Scenario struct {
	ArrivalRate *float64 `yaml:"arrival_rate"`
	ServiceRate *float64 `yaml:"service_rate"`
	Entry       *int     `yaml:"entry"`
	Exit        *int     `yaml:"exit"`
	Cars        *int     `yaml:"cars"`
}

// LoadScenario reads a scenario file with strict field checking so that a
// misspelled key is an error rather than a silently ignored value.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks field ranges that can be judged without the other
// fields. Overload is left to sim.ComputeMetrics.
func (sc *Scenario) Validate() error {
	if sc.Entry != nil {
		if _, ok := sim.EntryAngle(*sc.Entry); !ok {
			return fmt.Errorf("scenario entry %d is not in 1..%d", *sc.Entry, sim.NumAccesses)
		}
	}
	if sc.Exit != nil {
		if _, ok := sim.ExitAngle(*sc.Exit); !ok {
			return fmt.Errorf("scenario exit %d is not in 1..%d", *sc.Exit, sim.NumAccesses)
		}
	}
	if sc.ArrivalRate != nil && *sc.ArrivalRate <= 0 {
		return fmt.Errorf("scenario arrival_rate must be positive, got %v", *sc.ArrivalRate)
	}
	if sc.ServiceRate != nil && *sc.ServiceRate <= 0 {
		return fmt.Errorf("scenario service_rate must be positive, got %v", *sc.ServiceRate)
	}
	if sc.Cars != nil && *sc.Cars < 1 {
		return fmt.Errorf("scenario cars must be at least 1, got %d", *sc.Cars)
	}
	return nil
}

// flagChanged reports whether the user set a flag explicitly.
type flagChanged func(name string) bool

// applyTo copies scenario values into the run parameters unless the
// matching flag was set on the command line.
func (sc *Scenario) applyTo(p *runParams, changed flagChanged) {
	if sc.ArrivalRate != nil && !changed("lambda") {
		p.input.ArrivalRate = *sc.ArrivalRate
	}
	if sc.ServiceRate != nil && !changed("mu") {
		p.input.ServiceRate = *sc.ServiceRate
	}
	if sc.Entry != nil && !changed("entry") {
		p.input.EntryID = *sc.Entry
	}
	if sc.Exit != nil && !changed("exit") {
		p.input.ExitID = *sc.Exit
	}
	if sc.Cars != nil && !changed("cars") {
		p.cars = *sc.Cars
	}
}
