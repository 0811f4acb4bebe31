package diag

// Detail provides key-value context for diagnostic issues.
//
// Details are used to add structured information to issues that can be
// programmatically inspected by tools. Use the standard detail key constants
// to ensure consistent key naming across the codebase.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys for consistent diagnostic metadata.
//
// Use these constants to avoid stringly-typed drift and enable programmatic
// inspection of diagnostic details. Custom detail keys are permitted for
// domain-specific diagnostics; use lower_snake_case for custom keys.
const (
	// DetailKeyExpected is the expected value or type.
	DetailKeyExpected = "expected"

	// DetailKeyGot is the actual value or type received.
	DetailKeyGot = "got"

	// DetailKeyTypeName is the bean or parameter type name involved in the
	// diagnostic ([reflect.Type.String]).
	DetailKeyTypeName = "type"

	// DetailKeyPropertyName is the property, method, or constructor name
	// involved.
	DetailKeyPropertyName = "property"

	// DetailKeyContext is contextual information (e.g., a constraint kind
	// name, a group name).
	DetailKeyContext = "context"
)

// ExpectedGot creates a pair of details for type mismatch diagnostics.
//
// This is the standard pattern for reporting "expected X, got Y" errors.
func ExpectedGot(expected, got string) []Detail {
	return []Detail{
		{Key: DetailKeyExpected, Value: expected},
		{Key: DetailKeyGot, Value: got},
	}
}

// TypeProp creates detail entries for type+property diagnostics.
//
// Use for diagnostics involving a specific property, method, or constructor
// on a bean type, such as the duplicate-declaration conflicts [builder.Pipeline]
// collects.
func TypeProp(typeName, propName string) []Detail {
	return []Detail{
		{Key: DetailKeyTypeName, Value: typeName},
		{Key: DetailKeyPropertyName, Value: propName},
	}
}
