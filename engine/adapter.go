package engine

import (
	"github.com/ductile-labs/beanval/spi"
	"github.com/ductile-labs/beanval/violation"
)

// violationContextAdapter and violationBuilderAdapter bridge
// *violation.Context/*violation.Builder to spi.ValidationContext/
// spi.ViolationBuilder.
//
// violation.Builder's fluent methods return *violation.Builder, a
// concrete type; spi.ViolationBuilder's methods return the
// spi.ViolationBuilder interface. Go's structural typing does not let a
// method returning *violation.Builder satisfy an interface method
// declared to return spi.ViolationBuilder, even though the underlying
// value would work fine — so every chained call here re-wraps the
// concrete return value in the interface-shaped adapter.
type violationContextAdapter struct {
	ctx *violation.Context
}

func (a violationContextAdapter) DisableDefaultConstraintViolation() {
	a.ctx.DisableDefaultConstraintViolation()
}

func (a violationContextAdapter) BuildConstraintViolationWithTemplate(messageTemplate string) spi.ViolationBuilder {
	return violationBuilderAdapter{b: a.ctx.BuildConstraintViolationWithTemplate(messageTemplate)}
}

type violationBuilderAdapter struct {
	b *violation.Builder
}

func (a violationBuilderAdapter) AddPropertyNode(name string) spi.ViolationBuilder {
	return violationBuilderAdapter{b: a.b.AddPropertyNode(name)}
}

func (a violationBuilderAdapter) AddBeanNode() spi.ViolationBuilder {
	return violationBuilderAdapter{b: a.b.AddBeanNode()}
}

func (a violationBuilderAdapter) AddContainerElementNode(name string) spi.ViolationBuilder {
	return violationBuilderAdapter{b: a.b.AddContainerElementNode(name)}
}

func (a violationBuilderAdapter) AtIndex(i int) spi.ViolationBuilder {
	return violationBuilderAdapter{b: a.b.AtIndex(i)}
}

func (a violationBuilderAdapter) AtKey(key any) spi.ViolationBuilder {
	return violationBuilderAdapter{b: a.b.AtKey(key)}
}

func (a violationBuilderAdapter) AddConstraintViolation() {
	a.b.AddConstraintViolation()
}
