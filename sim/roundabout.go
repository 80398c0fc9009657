package sim

// Compass angles in degrees, measured on a canvas whose y axis points down
// (270 is north, 90 is south).
var (
	entryAngles = map[int]float64{
		1: 270, // north
		2: 90,  // south
		3: 180, // west
		4: 0,   // east
	}
	exitAngles = map[int]float64{
		1: 90,  // south
		2: 270, // north
		3: 0,   // east
		4: 180, // west
	}
)

// NumAccesses is the number of entries (and exits) on the roundabout.
const NumAccesses = 4

// EntryAngle returns the compass angle of an entry, or false if id is not 1..4.
func EntryAngle(id int) (float64, bool) {
	a, ok := entryAngles[id]
	return a, ok
}

// ExitAngle returns the compass angle of an exit, or false if id is not 1..4.
func ExitAngle(id int) (float64, bool) {
	a, ok := exitAngles[id]
	return a, ok
}

// ValidateSelectors checks that both ids name a roundabout access.
func ValidateSelectors(entry, exit int) error {
	if _, ok := entryAngles[entry]; !ok {
		return invalidInput(ReasonInvalidSelector, "entry %d is not in 1..%d", entry, NumAccesses)
	}
	if _, ok := exitAngles[exit]; !ok {
		return invalidInput(ReasonInvalidSelector, "exit %d is not in 1..%d", exit, NumAccesses)
	}
	return nil
}

// EffectiveStart returns the entry angle unwrapped so that it is never
// below the exit angle. Cars travel by decreasing angle.
func EffectiveStart(entry, exit int) (float64, error) {
	if err := ValidateSelectors(entry, exit); err != nil {
		return 0, err
	}
	start, target := entryAngles[entry], exitAngles[exit]
	if start >= target {
		return start, nil
	}
	return start + 360, nil
}

// AngularDistance returns the degrees a car covers between entry and exit.
// Coinciding angles count as a full lap, never zero.
func AngularDistance(entry, exit int) (float64, error) {
	start, err := EffectiveStart(entry, exit)
	if err != nil {
		return 0, err
	}
	d := start - exitAngles[exit]
	if d == 0 {
		d = 360
	}
	return d, nil
}

// TravelFraction returns the share of a full lap between entry and exit.
func TravelFraction(entry, exit int) (float64, error) {
	d, err := AngularDistance(entry, exit)
	if err != nil {
		return 0, err
	}
	return d / 360.0, nil
}
