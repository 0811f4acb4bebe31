// Package beanval implements a declarative, Bean Validation 2.0-compatible
// validation engine for Go: constraints are declared on struct fields (and,
// via the builder package's mapping source, out-of-band in JSONC) and
// evaluated by a cascading traversal engine that walks a bean graph,
// container elements, and executable parameters/return values, collecting
// structured violations.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - location: Source positions, spans, and canonical paths (mapping-source diagnostics)
//	  - diag: Structured diagnostics with stable error codes
//	  - immutable: Read-only wrappers for safe data sharing
//	  - cache: Bounded LRU and once-init primitives
//	  - path: The structured validation-path node/builder model
//	  - rtype: reflect.Type boxing and specificity resolution
//
//	Declaration tier:
//	  - constraint: Constraint descriptors, kind/group/payload vocabulary, composition
//	  - descriptor: The immutable bean/property/executable metadata graph
//	  - group: Group-sequence computation and Default redirection
//	  - spi: Host collaborator interfaces (resolvers, extractors, validators, messages)
//	  - validator: Constraint-validator registration and specificity resolution
//	  - violation: Violation collection and the fluent violation builder
//	  - builder: Descriptor construction from struct tags and/or JSONC mappings
//	  - config: Engine-wide tunables (composition cache size, etc.)
//
//	Execution tier:
//	  - engine: The cascading traversal/evaluation core (Job)
//
// # Entry Points
//
// Building descriptors and running a validation job:
//
//	import (
//	    "github.com/ductile-labs/beanval/builder"
//	    "github.com/ductile-labs/beanval/engine"
//	    "github.com/ductile-labs/beanval/validator"
//	)
//
//	registry := validator.NewRegistry()
//	// registry.Register(...) for each constraint kind the host supports.
//
//	pipeline := builder.NewPipeline(nil) // or a *builder.MappingSource for JSONC-declared constraints
//	job := engine.NewJob(pipeline, registry)
//
//	violations, err := job.Validate(ctx, someBean)
//	if err != nil {
//	    // collaborator or descriptor-build failure
//	}
//	// violations is empty when someBean is valid
//
// A [engine.Job] is single-use and single-goroutine: call exactly one of
// Validate, ValidateParameters, or ValidateReturnValue per Job.
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/ductile-labs/beanval/diag]: Structured diagnostics
//   - [github.com/ductile-labs/beanval/location]: Source location tracking
//   - [github.com/ductile-labs/beanval/immutable]: Read-only data wrappers
//   - [github.com/ductile-labs/beanval/cache]: Bounded LRU and once-init primitives
//   - [github.com/ductile-labs/beanval/path]: Structured validation paths
//   - [github.com/ductile-labs/beanval/rtype]: reflect.Type specificity resolution
//   - [github.com/ductile-labs/beanval/constraint]: Constraint descriptors and composition
//   - [github.com/ductile-labs/beanval/descriptor]: Bean/property/executable metadata
//   - [github.com/ductile-labs/beanval/group]: Group sequence computation
//   - [github.com/ductile-labs/beanval/spi]: Host collaborator interfaces
//   - [github.com/ductile-labs/beanval/validator]: Constraint validator registry
//   - [github.com/ductile-labs/beanval/violation]: Violation collection
//   - [github.com/ductile-labs/beanval/builder]: Descriptor construction (tags, JSONC)
//   - [github.com/ductile-labs/beanval/config]: Engine-wide tunables
//   - [github.com/ductile-labs/beanval/engine]: The validation job and traversal engine
package beanval
