package thymeleaf

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/itsatony/go-thymeleaf/internal"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Engine processes HTML templates with the attribute processors of one
// dialect. An Engine is read-only after New and safe for concurrent use.
type Engine struct {
	dialect      *Dialect
	processors   []AttributeProcessor
	cleanup      CleanupFunc
	resolver     TemplateResolver
	parserConfig internal.ParserConfig
	metrics      *engineMetrics
	logger       *zap.Logger
}

// Result is the outcome of an asynchronous processing call.
type Result struct {
	Output string
	Err    error
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dialect := config.dialect
	if dialect == nil {
		dialect = NewStandardDialect(
			WithSanitizer(config.sanitizer),
			WithDialectLogger(logger),
		)
	}

	cleanup := config.cleanup
	if cleanup == nil {
		cleanup = func(root *Element, d *Dialect) { d.Cleanup(root) }
	}

	processors := dialect.freeze()
	logger.Debug(LogMsgEngineCreated,
		zap.String(LogFieldDialect, dialect.Name()),
		zap.String(LogFieldPrefix, dialect.Prefix()),
		zap.Strings(LogFieldProcessors, dialect.Names()),
	)

	return &Engine{
		dialect:      dialect,
		processors:   processors,
		cleanup:      cleanup,
		resolver:     config.resolver,
		parserConfig: internal.ParserConfig{MaxDepth: config.maxExpressionDepth},
		metrics:      newEngineMetrics(config.registerer),
		logger:       logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Dialect returns the engine's dialect
func (e *Engine) Dialect() *Dialect {
	return e.dialect
}

// Process parses templateText as an HTML document, runs the dialect's
// processors over every element depth-first, applies the cleanup step and
// returns the serialized document. Any failure fails the whole call and no
// partial output is returned.
func (e *Engine) Process(ctx context.Context, templateText string, data map[string]any) (output string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	defer func() {
		e.metrics.observeProcess(start, err)
		if err != nil {
			e.logger.Debug(LogMsgProcessFailed, zap.Error(err))
		}
	}()

	e.logger.Debug(LogMsgProcessStart, zap.Int(LogFieldSize, len(templateText)))

	doc, err := internal.ParseDocument(strings.NewReader(templateText))
	if err != nil {
		return "", NewDocumentError(ErrMsgDocumentParseFailed, err)
	}
	root := internal.DocumentElement(doc)
	if root == nil {
		return "", NewDocumentError(ErrMsgNoDocumentElement, nil)
	}

	scope := NewContext(data).withParsing(e.parserConfig, e.logger)
	if err := e.processNode(ctx, root, scope, make(map[*html.Node]struct{})); err != nil {
		return "", err
	}
	e.cleanup(root, e.dialect)

	var sb strings.Builder
	if err := internal.RenderDocument(&sb, doc); err != nil {
		return "", NewDocumentError(ErrMsgDocumentRenderFailed, err)
	}

	e.logger.Debug(LogMsgProcessEnd,
		zap.Int(LogFieldSize, sb.Len()),
		zap.Duration(LogFieldDuration, time.Since(start)),
	)
	return sb.String(), nil
}

// ProcessFile reads the template at path and processes it.
// A read failure fails the call before any processing.
func (e *Engine) ProcessFile(ctx context.Context, path string, data map[string]any) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", NewIOError(path, err)
	}
	return e.Process(ctx, string(source), data)
}

// ProcessTemplate resolves the named template through the configured
// resolver and processes it.
func (e *Engine) ProcessTemplate(ctx context.Context, name string, data map[string]any) (string, error) {
	if e.resolver == nil {
		return "", NewConfigError(ErrMsgNoResolver, nil)
	}
	source, err := e.resolver.Resolve(ctx, name)
	if err != nil {
		return "", err
	}
	e.logger.Debug(LogMsgTemplateResolved, zap.String(LogFieldTemplate, name))
	return e.Process(ctx, source, data)
}

// ProcessAsync runs Process on a new goroutine. The returned channel
// receives exactly one Result and is then closed.
func (e *Engine) ProcessAsync(ctx context.Context, templateText string, data map[string]any) <-chan Result {
	return async(func() (string, error) {
		return e.Process(ctx, templateText, data)
	})
}

// ProcessFileAsync runs ProcessFile on a new goroutine. The returned channel
// receives exactly one Result and is then closed.
func (e *Engine) ProcessFileAsync(ctx context.Context, path string, data map[string]any) <-chan Result {
	return async(func() (string, error) {
		return e.ProcessFile(ctx, path, data)
	})
}

func async(fn func() (string, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Result{Err: NewPanicError(r)}
			}
		}()
		output, err := fn()
		ch <- Result{Output: output, Err: err}
	}()
	return ch
}

// invoke calls p.Process, reporting a panic as an error so that one
// misbehaving processor fails only its own call.
func invoke(ctx context.Context, p AttributeProcessor, element *Element, name, value string, data *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	return p.Process(ctx, element, name, value, data)
}

// processNode runs every applicable processor on element in registration
// order, then walks its children. An element detached by a processor is not
// processed further.
func (e *Engine) processNode(ctx context.Context, element *Element, data *Context, visited map[*html.Node]struct{}) error {
	if _, seen := visited[element.Node()]; seen {
		return nil
	}
	visited[element.Node()] = struct{}{}

	for _, p := range e.processors {
		name, value, ok := e.dialect.ResolveAttribute(element, p)
		if !ok {
			continue
		}

		e.logger.Debug(LogMsgProcessorInvoked,
			zap.String(LogFieldProcessor, p.Name()),
			zap.String(LogFieldAttribute, name),
			zap.String(LogFieldElement, element.TagName()),
		)
		e.metrics.observeProcessor(p.Name())

		// the shadowed data- form must not survive into the output
		if _, shadowed := e.dialect.AttributeNames(p.Name()); name != shadowed {
			element.RemoveAttribute(shadowed)
		}

		if err := invoke(ctx, p, element, name, value, data); err != nil {
			return NewProcessorError(p.Name(), name, element.TagName(), err)
		}
		if !element.Attached() {
			e.logger.Debug(LogMsgElementDetached,
				zap.String(LogFieldProcessor, p.Name()),
				zap.String(LogFieldElement, element.TagName()),
			)
			return nil
		}
	}

	return e.processChildren(ctx, element, data, visited)
}

// processChildren walks the current children of parent left to right. The
// child list is re-read after each child so that removals, unwrapped tags and
// inserted markup are observed.
func (e *Engine) processChildren(ctx context.Context, parent *Element, data *Context, visited map[*html.Node]struct{}) error {
	var prev *Element
	child := parent.FirstElementChild()
	for child != nil {
		if err := e.processNode(ctx, child, data, visited); err != nil {
			return err
		}

		switch {
		case child.IsChildOf(parent):
			prev = child
			child = child.NextElementSibling()
		case prev != nil && prev.IsChildOf(parent):
			child = prev.NextElementSibling()
		default:
			prev = nil
			child = parent.FirstElementChild()
		}

		for child != nil {
			if _, seen := visited[child.Node()]; !seen {
				break
			}
			prev = child
			child = child.NextElementSibling()
		}
	}
	return nil
}
