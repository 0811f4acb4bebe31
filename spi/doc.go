// Package spi declares the external-collaborator interfaces the engine
// consumes but does not implement: traversability/cascadability decisions,
// container-element value extraction, constraint-validator logic, message
// interpolation, clock access for time-relative constraints, and executable
// parameter naming.
//
// These mirror the teacher's "uniform collaborator interface, concrete
// implementation supplied by the host" shape (instance/eval.Scope, the
// schema package's ForBean-style interfaces): the engine package holds a
// reference to each interface and never imports a concrete implementation
// of its own. A small set of default value extractors for Go's built-in
// container shapes (slice, array, map) is provided in this package for
// convenience; everything else is left to the host application.
package spi
