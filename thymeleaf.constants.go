package thymeleaf

import "time"

// Dialect defaults
const (
	StandardDialectName   = "Standard"
	StandardDialectPrefix = "th"
	NamespaceAttrPrefix   = "xmlns"
	DataAttrPrefix        = "data"
	NamespaceSeparator    = ":"
	DataAttrSeparator     = "-"
)

// Standard processor names, in standard registration order
const (
	ProcessorNameIf          = "if"
	ProcessorNameUnless      = "unless"
	ProcessorNameText        = "text"
	ProcessorNameUText       = "utext"
	ProcessorNameClassAppend = "classappend"
	ProcessorNameRemove      = "remove"
)

// th:remove values
const (
	RemoveAll  = "all"
	RemoveBody = "body"
	RemoveTag  = "tag"
	RemoveNone = "none"
)

// Path resolution
const (
	PathSeparator = "."
)

// Engine defaults
const (
	DefaultMaxExpressionDepth = 64
	DefaultTemplateSuffix     = ".html"
	DefaultCacheTTL           = 5 * time.Minute
	DefaultWatchDebounce      = 100 * time.Millisecond
)

// Storage constants
const (
	SQLDriverPostgres        = "postgres"
	SQLDriverSQLite          = "sqlite"
	SQLDefaultTablePrefix    = "thymeleaf_"
	SQLTemplatesTable        = "templates"
	SQLDefaultQueryTimeout   = 30 * time.Second
	FilesystemDirPermissions = 0o755
)

// Metric names
const (
	MetricsNamespace             = "thymeleaf"
	MetricProcessTotal           = "process_total"
	MetricProcessDuration        = "process_duration_seconds"
	MetricProcessorInvocations   = "processor_invocations_total"
	MetricLabelResult            = "result"
	MetricLabelProcessor         = "processor"
	MetricResultSuccess          = "success"
	MetricResultError            = "error"
	MetricHelpProcessTotal       = "Total number of template processing calls"
	MetricHelpProcessDuration    = "Duration of template processing calls in seconds"
	MetricHelpProcessInvocations = "Total number of attribute processor invocations"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyExpression = "expression"
	MetaKeyProcessor  = "processor"
	MetaKeyAttribute  = "attribute"
	MetaKeyElement    = "element"
	MetaKeyPath       = "path"
	MetaKeyName       = "name"
	MetaKeyPrefix     = "prefix"
	MetaKeyTemplate   = "template"
	MetaKeyDriver     = "driver"
)

// Log message constants
const (
	LogMsgEngineCreated       = "engine created"
	LogMsgProcessStart        = "starting template processing"
	LogMsgProcessEnd          = "template processing complete"
	LogMsgProcessFailed       = "template processing failed"
	LogMsgProcessorInvoked    = "attribute processor invoked"
	LogMsgElementDetached     = "element detached by processor"
	LogMsgDialectCreated      = "dialect created"
	LogMsgProcessorRegistered = "attribute processor registered"
	LogMsgProcessorCollision  = "attribute processor already registered"
	LogMsgTemplateResolved    = "template resolved"
	LogMsgCacheInvalidated    = "template cache invalidated"
	LogMsgWatcherStarted      = "template watcher started"
	LogMsgWatcherEvent        = "template file changed"
	LogMsgWatcherError        = "template watcher error"
	LogMsgWatcherStopped      = "template watcher stopped"
	LogMsgSQLFailed           = "sql statement failed"
)

// Operation names for log fields
const (
	LogOpMigrate = "migrate"
	LogOpSave    = "save"
	LogOpDelete  = "delete"
)

// Log field constants
const (
	LogFieldDialect    = "dialect"
	LogFieldPrefix     = "prefix"
	LogFieldProcessor  = "processor"
	LogFieldAttribute  = "attribute"
	LogFieldElement    = "element"
	LogFieldSize       = "size"
	LogFieldDuration   = "duration"
	LogFieldTemplate   = "template"
	LogFieldPath       = "path"
	LogFieldOperation  = "operation"
	LogFieldProcessors = "processors"
)
