package thymeleaf

import (
	"context"

	"github.com/itsatony/go-thymeleaf/internal"
)

// Element is a DOM element handed to attribute processors. It exposes
// attribute access, child traversal and the mutations processors need
// (text replacement, class manipulation, removal).
type Element = internal.Element

// AttributeProcessor is a named unit of behavior bound to one attribute of a
// dialect. When an element carries the attribute, Process is called with the
// resolved attribute name and its raw value.
//
// Implementations must be stateless across invocations; one processor
// instance serves every element of every concurrent processing call.
type AttributeProcessor interface {
	// Name returns the attribute name without prefix (e.g., "text").
	Name() string

	// Prefix returns the dialect prefix the processor was built for.
	// An empty prefix adopts the prefix of the dialect it is registered with.
	Prefix() string

	// Process mutates element. Returning an error aborts the whole
	// processing call.
	Process(ctx context.Context, element *Element, attributeName, attributeValue string, data *Context) error
}

// ProcessFunc is the signature of AttributeProcessor.Process.
type ProcessFunc func(ctx context.Context, element *Element, attributeName, attributeValue string, data *Context) error

// funcProcessor adapts a ProcessFunc to AttributeProcessor
type funcProcessor struct {
	name   string
	prefix string
	fn     ProcessFunc
}

// NewProcessorFunc creates an AttributeProcessor from a function.
func NewProcessorFunc(name, prefix string, fn ProcessFunc) AttributeProcessor {
	return &funcProcessor{name: name, prefix: prefix, fn: fn}
}

func (p *funcProcessor) Name() string   { return p.name }
func (p *funcProcessor) Prefix() string { return p.prefix }

func (p *funcProcessor) Process(ctx context.Context, element *Element, attributeName, attributeValue string, data *Context) error {
	if p.fn == nil {
		return nil
	}
	return p.fn(ctx, element, attributeName, attributeValue, data)
}
