package path

import (
	"fmt"
	"reflect"
	"strconv"
)

// Node is a single segment of a [Path]. It is a closed tagged union;
// the only implementations are the concrete types in this package.
type Node interface {
	// String returns the canonical textual form of this node, e.g. ".name",
	// "[0]", "[key]", or "<cross-parameter>".
	String() string

	node()
}

// PropertyNode identifies a bean property by name.
type PropertyNode struct {
	Name string
}

func (PropertyNode) node() {}

func (n PropertyNode) String() string { return "." + n.Name }

// IndexNode identifies an element of an indexed container (a slice or array)
// by its position.
type IndexNode struct {
	Index int
}

func (IndexNode) node() {}

func (n IndexNode) String() string { return "[" + strconv.Itoa(n.Index) + "]" }

// KeyNode identifies an element of a keyed container (a map) by its key.
type KeyNode struct {
	Key any
}

func (KeyNode) node() {}

func (n KeyNode) String() string { return fmt.Sprintf("[%v]", n.Key) }

// ParameterNode identifies a single parameter of an executable by name and
// zero-based position.
type ParameterNode struct {
	Name  string
	Index int
}

func (ParameterNode) node() {}

func (n ParameterNode) String() string {
	if n.Name == "" {
		return fmt.Sprintf("<parameter%d>", n.Index)
	}
	return n.Name
}

// ReturnValueNode marks the synthetic element representing an executable's
// return value.
type ReturnValueNode struct{}

func (ReturnValueNode) node() {}

func (ReturnValueNode) String() string { return "<return value>" }

// CrossParameterNode marks the synthetic element representing the parameter
// array passed to a cross-parameter constraint.
type CrossParameterNode struct{}

func (CrossParameterNode) node() {}

func (CrossParameterNode) String() string { return "<cross-parameter>" }

// ContainerElementNode identifies an element inside a container for which
// no index or key is available (e.g. the wrapped value of an Optional), or
// decorates an Index/Key node with the declaring container's static shape
// for container-element descriptor lookup.
type ContainerElementNode struct {
	// Name is the declaring property or parameter name the container hangs
	// off of; empty when the container itself is the root value.
	Name string

	// ContainerType is the static type of the container (e.g. []string,
	// map[string]int). Nil when unknown.
	ContainerType reflect.Type

	// TypeArgIndex is the index of the type argument this element
	// corresponds to (0 for single-argument containers like slices and
	// Optional, 0 or 1 for maps: key vs. value).
	TypeArgIndex int
}

func (ContainerElementNode) node() {}

func (n ContainerElementNode) String() string {
	if n.ContainerType != nil {
		return fmt.Sprintf("<%s element>", n.ContainerType.String())
	}
	return "<container element>"
}

// BeanNode marks the bean instance itself, used for class-level constraint
// violations that are not attributable to any single property.
type BeanNode struct{}

func (BeanNode) node() {}

func (BeanNode) String() string { return "" }
