package config

import "fmt"

// InvalidParameter reports a Parameters field outside its allowed range.
type InvalidParameter struct {
	Field  string
	Reason string
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}
