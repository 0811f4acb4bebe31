package violation

import "github.com/ductile-labs/beanval/path"

// Violation is one reported constraint failure, per spec.md §4.6: a
// message template (interpolated externally by the job, not here), the
// path to the offending element, and the leaf value that was validated,
// if any.
type Violation struct {
	Template  string
	Path      path.Path
	LeafValue any
}

// Context is the per-validator-invocation violation collector passed to a
// [spi.ConstraintValidator]'s IsValid call. It tracks whether the default
// violation has been suppressed and accumulates any additional violations
// built via [Context.BuildConstraintViolationWithTemplate].
type Context struct {
	basePath        path.Path
	leafValue       any
	defaultTemplate string
	defaultDisabled bool
	additional      []Violation
}

// NewContext creates a Context rooted at basePath, carrying leafValue and
// the constraint's own default message template.
func NewContext(basePath path.Path, leafValue any, defaultTemplate string) *Context {
	return &Context{basePath: basePath, leafValue: leafValue, defaultTemplate: defaultTemplate}
}

// DisableDefaultConstraintViolation suppresses the default violation this
// constraint would otherwise report, per spec.md §4.6.
func (c *Context) DisableDefaultConstraintViolation() {
	c.defaultDisabled = true
}

// BuildConstraintViolationWithTemplate starts a fluent [Builder] seeded
// with messageTemplate and rooted at this context's base path.
func (c *Context) BuildConstraintViolationWithTemplate(messageTemplate string) *Builder {
	return &Builder{ctx: c, template: messageTemplate, path: c.basePath}
}

// Violations returns the violations this context produced: the default
// violation first (unless disabled), followed by every additional
// violation in the order [Context.BuildConstraintViolationWithTemplate]
// calls completed, per SPEC_FULL.md §9's pinned ordering.
func (c *Context) Violations() []Violation {
	out := make([]Violation, 0, len(c.additional)+1)
	if !c.defaultDisabled {
		out = append(out, Violation{Template: c.defaultTemplate, Path: c.basePath, LeafValue: c.leafValue})
	}
	out = append(out, c.additional...)
	return out
}

// Builder extends a [Context]'s base path one node at a time before
// terminating with [Builder.AddConstraintViolation].
type Builder struct {
	ctx      *Context
	template string
	path     path.Path

	pendingContainerName string
	hasPending           bool
}

// flushPending finalizes a pending AddContainerElementNode call into a
// bare container-element path node when no AtIndex/AtKey followed it.
func (b *Builder) flushPending() {
	if !b.hasPending {
		return
	}
	b.path = b.path.ContainerElement(path.ContainerElementNode{Name: b.pendingContainerName})
	b.hasPending = false
	b.pendingContainerName = ""
}

// AddPropertyNode extends the path with a property node.
func (b *Builder) AddPropertyNode(name string) *Builder {
	b.flushPending()
	b.path = b.path.Property(name)
	return b
}

// AddBeanNode extends the path with the synthetic bean node, marking a
// class-level violation.
func (b *Builder) AddBeanNode() *Builder {
	b.flushPending()
	b.path = b.path.Bean()
	return b
}

// AddContainerElementNode begins a container-element step named name.
// Chain [Builder.AtIndex] or [Builder.AtKey] to specify the element's
// position; otherwise the node is finalized as a bare container-element
// node once another chain call or AddConstraintViolation commits it.
func (b *Builder) AddContainerElementNode(name string) *Builder {
	b.flushPending()
	b.hasPending = true
	b.pendingContainerName = name
	return b
}

// AtIndex finalizes a pending container-element step as an indexed
// element. A no-op if no AddContainerElementNode call is pending.
func (b *Builder) AtIndex(i int) *Builder {
	if b.hasPending {
		b.path = b.path.Index(i)
		b.hasPending = false
		b.pendingContainerName = ""
	}
	return b
}

// AtKey finalizes a pending container-element step as a keyed element. A
// no-op if no AddContainerElementNode call is pending.
func (b *Builder) AtKey(key any) *Builder {
	if b.hasPending {
		b.path = b.path.Key(key)
		b.hasPending = false
		b.pendingContainerName = ""
	}
	return b
}

// AddConstraintViolation finalizes the path and appends the violation to
// the owning context's result set.
func (b *Builder) AddConstraintViolation() {
	b.flushPending()
	b.ctx.additional = append(b.ctx.additional, Violation{
		Template:  b.template,
		Path:      b.path,
		LeafValue: b.ctx.leafValue,
	})
}
