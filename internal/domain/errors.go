package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned for configurations rejected before simulation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDomainOverflow is returned when a terminal value falls outside the bin domain.
	ErrDomainOverflow = errors.New("terminal value outside bin domain")
	// ErrRuinUnresolved is returned when the adaptive controller exhausts its attempts.
	ErrRuinUnresolved = errors.New("ruin not resolved")
)

// ConfigError names the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// DomainOverflowError reports a terminal value the histogram cannot hold.
type DomainOverflowError struct {
	Value float64
	Lower int64
	Upper int64
}

func (e *DomainOverflowError) Error() string {
	return fmt.Sprintf("terminal value %.2f outside bin domain [%d, %d)", e.Value, e.Lower, e.Upper)
}

func (e *DomainOverflowError) Unwrap() error { return ErrDomainOverflow }

// RuinError is returned once the controller gives up raising the contribution.
type RuinError struct {
	Attempts         int
	LastContribution float64
	Percentile0      float64
}

func (e *RuinError) Error() string {
	return fmt.Sprintf("ruin not resolved after %d attempts: contribution %.2f still yields minimum terminal value %.2f",
		e.Attempts, e.LastContribution, e.Percentile0)
}

func (e *RuinError) Unwrap() error { return ErrRuinUnresolved }
