package sweep

import "fmt"

// NonConvergence reports that a Fast Sweeping raytrace call reached
// NIterMax before the global update norm fell below Epsilon. Travel times
// are still valid to use as-is: the caller decides whether
// the accuracy achieved is sufficient.
type NonConvergence struct {
	Iterations int
	ErrNorm    float64
	Epsilon    float64
}

func (e *NonConvergence) Error() string {
	return fmt.Sprintf("sweep: did not converge after %d iterations (error=%g, epsilon=%g)", e.Iterations, e.ErrNorm, e.Epsilon)
}
