// Package trajectory turns an entry/exit pair into the sequence of positions
// a car occupies while crossing the roundabout: one degree per step around
// the ring, then a straight approach to the exit.
//
// The iterator carries no timing. Renderers decide how fast to consume it.
package trajectory

import (
	"fmt"
	"iter"
	"math"

	"github.com/roundabout-sim/roundabout-sim/sim"
)

// Phase identifies which leg of the crossing a position belongs to.
type Phase int

const (
	PhaseEntering Phase = iota // on the ring at the entry angle
	PhaseCircling              // moving around the ring
	PhaseExiting               // leaving the ring toward the exit point
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseCircling:
		return "circling"
	case PhaseExiting:
		return "exiting"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Geometry sizes the roundabout in canvas units.
type Geometry struct {
	Radius           float64 // ring radius
	ExitRadius       float64 // distance of exit points from the center
	ExitTolerance    float64 // exit approach stops once this close
	ApproachFraction float64 // share of the remaining distance covered per exit step
}

// DefaultGeometry matches a 100-unit ring with exits 30 units beyond it.
func DefaultGeometry() Geometry {
	return Geometry{Radius: 100, ExitRadius: 130, ExitTolerance: 2, ApproachFraction: 0.1}
}

// Validate checks that the exit approach terminates.
func (g Geometry) Validate() error {
	if !(g.Radius > 0) {
		return fmt.Errorf("ring radius must be positive, got %v", g.Radius)
	}
	if !(g.ExitRadius > g.Radius) {
		return fmt.Errorf("exit radius %v must exceed ring radius %v", g.ExitRadius, g.Radius)
	}
	if !(g.ExitTolerance > 0) {
		return fmt.Errorf("exit tolerance must be positive, got %v", g.ExitTolerance)
	}
	if !(g.ApproachFraction > 0 && g.ApproachFraction <= 1) {
		return fmt.Errorf("approach fraction must be in (0,1], got %v", g.ApproachFraction)
	}
	return nil
}

// Position is a point in polar form around the roundabout center.
type Position struct {
	Step   int     // 0-based index in the trajectory
	Angle  float64 // degrees, in [0,360)
	Radius float64
	Phase  Phase
}

// X is the horizontal offset from the center.
func (p Position) X() float64 {
	return p.Radius * math.Cos(p.Angle*math.Pi/180)
}

// Y is the vertical offset from the center, growing downward.
func (p Position) Y() float64 {
	return p.Radius * math.Sin(p.Angle*math.Pi/180)
}

// Trajectory is the precomputed route of one car. It is immutable and may
// be iterated any number of times.
type Trajectory struct {
	Entry, Exit    int
	geometry       Geometry
	effectiveStart float64
	distance       int // whole degrees around the ring
	exitSteps      int
}

// New builds the trajectory for a car entering at entry and leaving at exit.
// Unknown selectors return a *sim.InvalidInputError.
func New(entry, exit int, g Geometry) (*Trajectory, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}
	start, err := sim.EffectiveStart(entry, exit)
	if err != nil {
		return nil, err
	}
	d, err := sim.AngularDistance(entry, exit)
	if err != nil {
		return nil, err
	}
	t := &Trajectory{
		Entry:          entry,
		Exit:           exit,
		geometry:       g,
		effectiveStart: start,
		distance:       int(math.Round(d)),
	}
	for range t.exitApproach() {
		t.exitSteps++
	}
	return t, nil
}

// Degrees is the number of one-degree steps spent circling.
func (t *Trajectory) Degrees() int { return t.distance }

// Len is the total number of positions yielded by All.
func (t *Trajectory) Len() int { return 1 + t.distance + t.exitSteps }

// ExitPoint is where the car leaves the scene.
func (t *Trajectory) ExitPoint() Position {
	target, _ := sim.ExitAngle(t.Exit)
	return Position{Step: t.Len(), Angle: target, Radius: t.geometry.ExitRadius, Phase: PhaseExiting}
}

// exitApproach yields successive radii on the way out. Each step covers
// ApproachFraction of what remains; the step taken from within tolerance
// is the last one.
func (t *Trajectory) exitApproach() iter.Seq[float64] {
	g := t.geometry
	return func(yield func(float64) bool) {
		remaining := g.ExitRadius - g.Radius
		for {
			before := remaining
			remaining -= remaining * g.ApproachFraction
			if !yield(g.ExitRadius - remaining) {
				return
			}
			if before <= g.ExitTolerance {
				return
			}
		}
	}
}

// All yields every position from the entry point to the end of the exit
// approach.
func (t *Trajectory) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		g := t.geometry
		entryAngle := math.Mod(t.effectiveStart, 360)
		if !yield(Position{Step: 0, Angle: entryAngle, Radius: g.Radius, Phase: PhaseEntering}) {
			return
		}
		step := 1
		for deg := 1; deg <= t.distance; deg++ {
			angle := math.Mod(t.effectiveStart-float64(deg), 360)
			if angle < 0 {
				angle += 360
			}
			if !yield(Position{Step: step, Angle: angle, Radius: g.Radius, Phase: PhaseCircling}) {
				return
			}
			step++
		}
		target, _ := sim.ExitAngle(t.Exit)
		for r := range t.exitApproach() {
			if !yield(Position{Step: step, Angle: target, Radius: r, Phase: PhaseExiting}) {
				return
			}
			step++
		}
	}
}
