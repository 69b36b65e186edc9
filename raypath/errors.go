package raypath

import "fmt"

// RayTraceDivergence reports that the back-propagator could not find a
// valid next cell or vertex: a maximum-step
// bound was hit, or the exit-edge/accepting-cell search came up empty.
// Recoverable: the caller keeps the travel time and substitutes the
// single-point path [Rx].
type RayTraceDivergence struct {
	Reason string
}

func (e *RayTraceDivergence) Error() string {
	return fmt.Sprintf("raypath: diverged (%s)", e.Reason)
}
