package thymeleaf

import (
	"context"

	"github.com/itsatony/go-thymeleaf/internal"
	"github.com/microcosm-cc/bluemonday"
)

// StandardProcessors returns the processors of the standard dialect, in
// registration order, built for prefix. Unescaped text is sanitized with
// sanitizer; nil selects bluemonday.UGCPolicy().
func StandardProcessors(prefix string, sanitizer *bluemonday.Policy) []AttributeProcessor {
	if sanitizer == nil {
		sanitizer = bluemonday.UGCPolicy()
	}
	return []AttributeProcessor{
		NewIfProcessor(prefix),
		NewUnlessProcessor(prefix),
		NewTextProcessor(prefix),
		NewUTextProcessor(prefix, sanitizer),
		NewClassAppendProcessor(prefix),
		NewRemoveProcessor(prefix),
	}
}

// baseProcessor carries the identity shared by all standard processors
type baseProcessor struct {
	name   string
	prefix string
}

func (p baseProcessor) Name() string   { return p.name }
func (p baseProcessor) Prefix() string { return p.prefix }

// ConditionalProcessor implements th:if and th:unless. The element is removed
// from the document when the condition does not hold.
type ConditionalProcessor struct {
	baseProcessor
	negate bool
}

// NewIfProcessor creates the th:if processor: keep the element when the value is truthy.
func NewIfProcessor(prefix string) *ConditionalProcessor {
	return &ConditionalProcessor{baseProcessor: baseProcessor{name: ProcessorNameIf, prefix: prefix}}
}

// NewUnlessProcessor creates the th:unless processor: keep the element when the value is falsy.
func NewUnlessProcessor(prefix string) *ConditionalProcessor {
	return &ConditionalProcessor{baseProcessor: baseProcessor{name: ProcessorNameUnless, prefix: prefix}, negate: true}
}

// Process evaluates the condition
func (p *ConditionalProcessor) Process(_ context.Context, element *Element, attributeName, attributeValue string, data *Context) error {
	element.RemoveAttribute(attributeName)

	holds, err := data.EvaluateBool(attributeValue)
	if err != nil {
		return err
	}
	if holds == p.negate {
		element.Remove()
	}
	return nil
}

// TextProcessor implements th:text: the element content is replaced by the
// value as escaped text.
type TextProcessor struct {
	baseProcessor
}

// NewTextProcessor creates the th:text processor
func NewTextProcessor(prefix string) *TextProcessor {
	return &TextProcessor{baseProcessor{name: ProcessorNameText, prefix: prefix}}
}

// Process replaces the element content
func (p *TextProcessor) Process(_ context.Context, element *Element, attributeName, attributeValue string, data *Context) error {
	element.RemoveAttribute(attributeName)

	text, err := data.EvaluateString(attributeValue)
	if err != nil {
		return err
	}
	element.SetText(text)
	return nil
}

// UTextProcessor implements th:utext: the element content is replaced by the
// value parsed as markup, after sanitization.
type UTextProcessor struct {
	baseProcessor
	sanitizer *bluemonday.Policy
}

// NewUTextProcessor creates the th:utext processor
func NewUTextProcessor(prefix string, sanitizer *bluemonday.Policy) *UTextProcessor {
	if sanitizer == nil {
		sanitizer = bluemonday.UGCPolicy()
	}
	return &UTextProcessor{
		baseProcessor: baseProcessor{name: ProcessorNameUText, prefix: prefix},
		sanitizer:     sanitizer,
	}
}

// Process replaces the element content with sanitized markup
func (p *UTextProcessor) Process(_ context.Context, element *Element, attributeName, attributeValue string, data *Context) error {
	element.RemoveAttribute(attributeName)

	markup, err := data.EvaluateString(attributeValue)
	if err != nil {
		return err
	}
	nodes, err := internal.ParseFragment(p.sanitizer.Sanitize(markup), element)
	if err != nil {
		return NewDocumentError(ErrMsgDocumentParseFailed, err)
	}
	element.ReplaceChildren(nodes...)
	return nil
}

// ClassAppendProcessor implements th:classappend: the value is added to the
// element's class list, skipping classes already present.
type ClassAppendProcessor struct {
	baseProcessor
}

// NewClassAppendProcessor creates the th:classappend processor
func NewClassAppendProcessor(prefix string) *ClassAppendProcessor {
	return &ClassAppendProcessor{baseProcessor{name: ProcessorNameClassAppend, prefix: prefix}}
}

// Process appends classes
func (p *ClassAppendProcessor) Process(_ context.Context, element *Element, attributeName, attributeValue string, data *Context) error {
	element.RemoveAttribute(attributeName)

	classes, err := data.EvaluateString(attributeValue)
	if err != nil {
		return err
	}
	element.AddClass(classes)
	return nil
}

// RemoveProcessor implements th:remove with the values all, body, tag and none.
type RemoveProcessor struct {
	baseProcessor
}

// NewRemoveProcessor creates the th:remove processor
func NewRemoveProcessor(prefix string) *RemoveProcessor {
	return &RemoveProcessor{baseProcessor{name: ProcessorNameRemove, prefix: prefix}}
}

// Process removes the element, its content or its tag
func (p *RemoveProcessor) Process(_ context.Context, element *Element, attributeName, attributeValue string, data *Context) error {
	element.RemoveAttribute(attributeName)

	mode, err := data.EvaluateString(attributeValue)
	if err != nil {
		return err
	}
	switch mode {
	case RemoveAll:
		element.Remove()
	case RemoveBody:
		element.RemoveChildren()
	case RemoveTag:
		element.Unwrap()
	case RemoveNone:
	default:
		return NewInvalidRemoveError(mode)
	}
	return nil
}
