// Package rules holds the pure business predicates shared by the transform
// pipeline and the validator. Each side decides what a failed predicate means.
package rules

// EventPass and EventShot are the event types with conditional required fields.
const (
	EventPass = "pass"
	EventShot = "shot"
)

// MinCoordinate and MaxCoordinate bound pitch coordinates.
const (
	MinCoordinate = 0.0
	MaxCoordinate = 100.0
)

// ShotsOnTargetWithinShots reports shots_on_target <= shots.
func ShotsOnTargetWithinShots(shotsOnTarget, shots int) bool {
	return shotsOnTarget <= shots
}

// PassesCompletedWithinAttempted reports passes_completed <= passes_attempted.
func PassesCompletedWithinAttempted(completed, attempted int) bool {
	return completed <= attempted
}

// XGNonNegative reports xg >= 0.
func XGNonNegative(xg float64) bool {
	return xg >= 0
}

// XGWithinShots reports xg <= shots.
func XGWithinShots(xg float64, shots int) bool {
	return xg <= float64(shots)
}

// SecondInMinute reports 0 <= second <= 59.
func SecondInMinute(second int) bool {
	return second >= 0 && second <= 59
}

// OnPitch reports whether a coordinate lies inside the pitch.
func OnPitch(c float64) bool {
	return c >= MinCoordinate && c <= MaxCoordinate
}

// RequiresDestination reports whether an event of this type needs end
// coordinates, a pass type and a recipient.
func RequiresDestination(eventType string) bool {
	return eventType == EventPass
}

// RequiresBodyPart reports whether an event of this type needs a body part.
func RequiresBodyPart(eventType string) bool {
	return eventType == EventPass || eventType == EventShot
}
