// Package config loads the module's external configuration surface from
// spec.md §6: presently just the annotation-composition cache's bound.
// Documents are JSONC ([github.com/tidwall/jsonc]), matching the
// teacher's adapter/json preprocessing idiom (strip comments, then
// decode with the standard library).
package config
