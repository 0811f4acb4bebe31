package path

import "strings"

// Path is an immutable, ordered sequence of [Node] values identifying the
// element within a validated object graph that a constraint was evaluated
// against or a violation was reported for.
//
// The zero value is the root path (the bean itself, no property traversed
// yet). Use [Root] for clarity at call sites.
type Path struct {
	nodes []Node
}

// Root returns the empty path, representing the root bean or value under
// validation.
func Root() Path {
	return Path{}
}

// Len returns the number of nodes in the path.
func (p Path) Len() int {
	return len(p.nodes)
}

// IsRoot reports whether p has no nodes.
func (p Path) IsRoot() bool {
	return len(p.nodes) == 0
}

// Nodes returns a defensive copy of the path's nodes in traversal order.
func (p Path) Nodes() []Node {
	out := make([]Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Last returns the final node of the path and true, or the zero Node and
// false if the path is root.
func (p Path) Last() (Node, bool) {
	if len(p.nodes) == 0 {
		return nil, false
	}
	return p.nodes[len(p.nodes)-1], true
}

// Parent returns the path with its last node removed. Calling Parent on the
// root path returns the root path.
func (p Path) Parent() Path {
	if len(p.nodes) == 0 {
		return p
	}
	return Path{nodes: p.nodes[:len(p.nodes)-1]}
}

// Property appends a property node.
func (p Path) Property(name string) Path {
	return p.append(PropertyNode{Name: name})
}

// Index appends an indexed-container-element node.
func (p Path) Index(i int) Path {
	return p.append(IndexNode{Index: i})
}

// Key appends a keyed-container-element node.
func (p Path) Key(key any) Path {
	return p.append(KeyNode{Key: key})
}

// Parameter appends a parameter node.
func (p Path) Parameter(name string, index int) Path {
	return p.append(ParameterNode{Name: name, Index: index})
}

// ReturnValue appends the synthetic return-value node.
func (p Path) ReturnValue() Path {
	return p.append(ReturnValueNode{})
}

// CrossParameter appends the synthetic cross-parameter node.
func (p Path) CrossParameter() Path {
	return p.append(CrossParameterNode{})
}

// ContainerElement appends a container-element node.
func (p Path) ContainerElement(node ContainerElementNode) Path {
	return p.append(node)
}

// Bean appends the synthetic bean node, used to mark a class-level
// constraint violation.
func (p Path) Bean() Path {
	return p.append(BeanNode{})
}

// append returns a new Path with node appended. The prefix is always copied
// into a fresh backing array, so two Paths built from a common prefix never
// observe each other's later appends.
func (p Path) append(n Node) Path {
	nodes := make([]Node, len(p.nodes), len(p.nodes)+1)
	copy(nodes, p.nodes)
	nodes = append(nodes, n)
	return Path{nodes: nodes}
}

// String renders the canonical textual form of the path, e.g.
// "address.city[0]" or "m.arg0".
func (p Path) String() string {
	var sb strings.Builder
	for i, n := range p.nodes {
		switch v := n.(type) {
		case PropertyNode:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(v.Name)
		case IndexNode, KeyNode, ContainerElementNode:
			sb.WriteString(n.String())
		default:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(n.String())
		}
	}
	return sb.String()
}
