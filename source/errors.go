package source

import "errors"

// ErrNoSourceNodes is returned when a configured source radius contains no
// mesh nodes for a single-source raytrace call. It is
// fatal for that call.
var ErrNoSourceNodes = errors.New("source: no nodes found within source radius")
