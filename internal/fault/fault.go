// Package fault defines the two disjoint error categories raised by the
// inference engine.
//
// A configuration fault means a graph can never be built from the given
// records; an evaluation fault means one particular compute call received bad
// input and the graph stays usable. Callers tell them apart with errors.Is:
//
//	if errors.Is(err, fault.ErrConfiguration) { ... }
package fault

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrEvaluation    = errors.New("evaluation error")
)

// NoIndex marks a ConfigError that is not tied to one configuration entry.
const NoIndex = -1

// ConfigError is a construction-time failure. Index is the offending node
// (or layer) position in the configuration, or NoIndex.
type ConfigError struct {
	Index int
	Msg   string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Index == NoIndex {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Msg)
	}
	return fmt.Sprintf("%s: %s (at %d)", ErrConfiguration, e.Msg, e.Index)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// EvalError is a call-time failure that aborts a single evaluation.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrEvaluation, e.Msg)
}

func (e *EvalError) Unwrap() error { return ErrEvaluation }

// Configf builds a ConfigError for the configuration entry at index.
func Configf(index int, format string, args ...any) error {
	return &ConfigError{Index: index, Msg: fmt.Sprintf(format, args...)}
}

// Evalf builds an EvalError.
func Evalf(format string, args ...any) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// IndexOf reports the configuration position carried by err, if any.
func IndexOf(err error) (int, bool) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Index != NoIndex {
		return cfgErr.Index, true
	}
	return NoIndex, false
}
