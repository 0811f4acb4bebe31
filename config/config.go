package config

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/ductile-labs/beanval/diag"
)

// DefaultConstraintCacheSize is used when a document omits
// constraints.cache.size entirely.
const DefaultConstraintCacheSize = 256

// Config is the module's external configuration surface, per spec.md §6.
type Config struct {
	// ConstraintCacheSize bounds the annotation-composition LRU
	// (constraint.Composer), per spec.md §4.1/§6.
	ConstraintCacheSize int
}

// document is the on-disk JSONC shape, matching spec.md §6's
// "constraints.cache.size" key verbatim.
type document struct {
	Constraints struct {
		Cache struct {
			Size *int `json:"size"`
		} `json:"cache"`
	} `json:"constraints"`
}

// Error reports a configuration load failure, tagged with the diag.Code
// that best classifies it (presently only [diag.E_INVALID_CACHE_SIZE]).
// Per spec.md §6, a malformed constraints.cache.size is a startup
// failure, not a collectible diagnostic.
type Error struct {
	Code   diag.Code
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Code, e.Detail)
}

// Load parses a JSONC configuration document into a Config, applying
// [DefaultConstraintCacheSize] when constraints.cache.size is omitted.
// Returns an [Error] wrapping [diag.E_INVALID_CACHE_SIZE] if the size is
// present but not a positive integer.
func Load(doc []byte) (Config, error) {
	var d document
	if err := json.Unmarshal(jsonc.ToJSON(doc), &d); err != nil {
		return Config{}, fmt.Errorf("config: parsing document: %w", err)
	}

	cfg := Config{ConstraintCacheSize: DefaultConstraintCacheSize}
	if d.Constraints.Cache.Size != nil {
		size := *d.Constraints.Cache.Size
		if size <= 0 {
			return Config{}, &Error{
				Code:   diag.E_INVALID_CACHE_SIZE,
				Detail: fmt.Sprintf("constraints.cache.size must be a positive integer, got %d", size),
			}
		}
		cfg.ConstraintCacheSize = size
	}
	return cfg, nil
}
