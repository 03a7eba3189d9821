package thymeleaf

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// CleanupFunc runs once on the root element after every processor has run
// and before the document is serialized.
type CleanupFunc func(root *Element, dialect *Dialect)

// DialectOption configures a Dialect.
type DialectOption func(*dialectConfig)

type dialectConfig struct {
	cleanup   CleanupFunc
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// WithDialectCleanup replaces the cleanup step run on the root element.
// Default: remove the xmlns:<prefix> namespace declaration.
func WithDialectCleanup(fn CleanupFunc) DialectOption {
	return func(c *dialectConfig) {
		c.cleanup = fn
	}
}

// WithSanitizer sets the policy applied to unescaped text inserted by the
// standard utext processor.
// Default: bluemonday.UGCPolicy()
func WithSanitizer(policy *bluemonday.Policy) DialectOption {
	return func(c *dialectConfig) {
		c.sanitizer = policy
	}
}

// WithDialectLogger sets the logger used while registering processors.
// Default: nil (no logging)
func WithDialectLogger(logger *zap.Logger) DialectOption {
	return func(c *dialectConfig) {
		c.logger = logger
	}
}

// Dialect is a named set of attribute processors sharing one attribute
// prefix. Processors run in registration order. A dialect can be modified
// until it is handed to an engine; from then on it is read-only and may be
// shared by any number of engines.
type Dialect struct {
	name       string
	prefix     string
	processors []AttributeProcessor
	names      map[string]struct{}
	cleanup    CleanupFunc
	frozen     bool
	mu         sync.RWMutex
	logger     *zap.Logger
}

// NewDialect creates an empty dialect with the given name and prefix.
func NewDialect(name, prefix string, opts ...DialectOption) (*Dialect, error) {
	if prefix == "" {
		return nil, NewRegistryError(ErrMsgEmptyPrefix, name)
	}
	config := &dialectConfig{cleanup: RemoveNamespaceAttribute}
	for _, opt := range opts {
		opt(config)
	}
	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cleanup := config.cleanup
	if cleanup == nil {
		cleanup = func(*Element, *Dialect) {}
	}

	logger.Debug(LogMsgDialectCreated,
		zap.String(LogFieldDialect, name),
		zap.String(LogFieldPrefix, prefix),
	)
	return &Dialect{
		name:    name,
		prefix:  prefix,
		names:   make(map[string]struct{}),
		cleanup: cleanup,
		logger:  logger,
	}, nil
}

// NewStandardDialect creates the standard "th" dialect with the standard
// processors registered in order: if, unless, text, utext, classappend, remove.
func NewStandardDialect(opts ...DialectOption) *Dialect {
	d, err := NewStandardDialectWithPrefix(StandardDialectPrefix, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// NewStandardDialectWithPrefix creates the standard dialect under another
// attribute prefix, e.g. "data-x-text" for prefix "x".
func NewStandardDialectWithPrefix(prefix string, opts ...DialectOption) (*Dialect, error) {
	config := &dialectConfig{}
	for _, opt := range opts {
		opt(config)
	}

	d, err := NewDialect(StandardDialectName, prefix, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range StandardProcessors(prefix, config.sanitizer) {
		if err := d.Register(p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Register appends a processor. Names are unique within a dialect: a second
// processor with the same name is rejected and the first one is kept.
func (d *Dialect) Register(p AttributeProcessor) error {
	if p == nil {
		return NewRegistryError(ErrMsgNilProcessor, "")
	}

	name := p.Name()
	if name == "" {
		return NewRegistryError(ErrMsgEmptyProcessorName, "")
	}
	if prefix := p.Prefix(); prefix != "" && prefix != d.prefix {
		return NewPrefixMismatchError(name, prefix)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen {
		return NewRegistryError(ErrMsgDialectFrozen, name)
	}
	if _, exists := d.names[name]; exists {
		d.logger.Warn(LogMsgProcessorCollision,
			zap.String(LogFieldDialect, d.name),
			zap.String(LogFieldProcessor, name),
		)
		return NewRegistryError(ErrMsgProcessorExists, name)
	}

	d.names[name] = struct{}{}
	d.processors = append(d.processors, p)
	d.logger.Debug(LogMsgProcessorRegistered,
		zap.String(LogFieldDialect, d.name),
		zap.String(LogFieldProcessor, name),
	)
	return nil
}

// MustRegister adds a processor and panics if registration fails.
func (d *Dialect) MustRegister(p AttributeProcessor) {
	if err := d.Register(p); err != nil {
		panic(err)
	}
}

// Name returns the dialect name
func (d *Dialect) Name() string {
	return d.name
}

// Prefix returns the attribute prefix
func (d *Dialect) Prefix() string {
	return d.prefix
}

// Processors returns the registered processors in registration order.
func (d *Dialect) Processors() []AttributeProcessor {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]AttributeProcessor, len(d.processors))
	copy(out, d.processors)
	return out
}

// Names returns the registered processor names in registration order.
func (d *Dialect) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.processors))
	for _, p := range d.processors {
		names = append(names, p.Name())
	}
	return names
}

// Count returns the number of registered processors.
func (d *Dialect) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.processors)
}

// freeze makes the dialect read-only and returns its processors.
func (d *Dialect) freeze() []AttributeProcessor {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.frozen = true
	out := make([]AttributeProcessor, len(d.processors))
	copy(out, d.processors)
	return out
}

// AttributeNames returns the namespaced ("th:text") and data ("data-th-text")
// attribute names for a processor name.
func (d *Dialect) AttributeNames(processorName string) (namespaced, data string) {
	namespaced = d.prefix + NamespaceSeparator + processorName
	data = DataAttrPrefix + DataAttrSeparator + d.prefix + DataAttrSeparator + processorName
	return namespaced, data
}

// ResolveAttribute finds the attribute that activates p on element. The
// namespaced form wins; the data- form is only consulted when the namespaced
// one is absent. ok is false when neither is present.
func (d *Dialect) ResolveAttribute(element *Element, p AttributeProcessor) (name, value string, ok bool) {
	namespaced, data := d.AttributeNames(p.Name())
	if value, ok := element.GetAttribute(namespaced); ok {
		return namespaced, value, true
	}
	if value, ok := element.GetAttribute(data); ok {
		return data, value, true
	}
	return "", "", false
}

// NamespaceAttribute returns the namespace declaration attribute, e.g. "xmlns:th".
func (d *Dialect) NamespaceAttribute() string {
	return NamespaceAttrPrefix + NamespaceSeparator + d.prefix
}

// Cleanup runs the dialect's cleanup step on the root element.
func (d *Dialect) Cleanup(root *Element) {
	if root == nil {
		return
	}
	d.cleanup(root, d)
}

// RemoveNamespaceAttribute is the default cleanup step. It strips the
// dialect's namespace declaration from the root element.
func RemoveNamespaceAttribute(root *Element, dialect *Dialect) {
	root.RemoveAttribute(dialect.NamespaceAttribute())
}
