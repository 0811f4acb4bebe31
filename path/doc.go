// Package path provides the structured property-path model used to locate
// the element a constraint violation was produced against.
//
// # Node Kinds
//
// A [Path] is an ordered sequence of [Node] values. Node is a closed tagged
// union (an interface with an unexported marker method) realized by eight
// concrete kinds, mirroring the Bean Validation property-path node taxonomy:
//
//   - [PropertyNode] — a bean property, e.g. ".address"
//   - [IndexNode] — an indexed container element, e.g. "[0]"
//   - [KeyNode] — a keyed container element, e.g. "[key]"
//   - [ParameterNode] — a method/constructor parameter, e.g. "m.arg0"
//   - [ReturnValueNode] — a method/constructor return value
//   - [CrossParameterNode] — the synthetic node for cross-parameter constraints
//   - [ContainerElementNode] — a bare container-element node for unkeyed,
//     unindexed containers (e.g. Optional)
//   - [BeanNode] — the bean itself, used when a class-level constraint fails
//
// # Immutability and Sharing
//
// [Path] is immutable; every append-style method ([Path.Property],
// [Path.Index], [Path.Key], ...) returns a new Path value holding its own
// copy of the prefix. This matches spec.md §3: "Path is deep-copied whenever
// shared outward; internal manipulation during builder use is in-place" —
// each append copies the prefix into a fresh backing array, so Paths built
// from a shared prefix never observe each other's appends, while
// [Path.Nodes] returns a defensive copy for any caller that intends to hold
// onto or mutate the raw slice.
package path
