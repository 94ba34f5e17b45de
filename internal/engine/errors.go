package engine

import (
	"errors"
	"fmt"
)

var (
	ErrIndependentTarget  = errors.New("independent stats cannot be connection targets")
	ErrIncompatibleTarget = errors.New("connection kind is incompatible with target")
	ErrMissingInput       = errors.New("named_input connections require an input name")
	ErrUnexpectedInput    = errors.New("only named_input connections take an input name")
	ErrSelfConnection     = errors.New("a stat cannot be connected to itself")
	ErrUnknownKind        = errors.New("unknown connection kind")
	ErrWrongVariant       = errors.New("stat is not of the required variant")
	ErrForeignStat        = errors.New("stat is not owned by this registry")

	ErrCycle          = errors.New("cascade re-entered a stat on its own path")
	ErrCascadeTooDeep = errors.New("cascade exceeded maximum depth")
)

// ConfigError describes a rejected, non-fatal configuration request. The
// operation that produced it was skipped and the graph is unchanged.
type ConfigError struct {
	Op     string
	Source string
	Target string
	Err    error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Source != "" && e.Target != "":
		return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Source, e.Target, e.Err)
	case e.Target != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is a non-fatal configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
