package main

// Command names
const (
	CmdNameRender  = "render"
	CmdNameVersion = "version"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagName     = "name"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagOutput   = "output"
	FlagConfig   = "config"
	FlagVerbose  = "verbose"
	FlagFormat   = "format"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagNameShort     = "n"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagConfigShort   = "c"
	FlagVerboseShort  = "v"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Config keys read through viper, matching the engine YAML config
const (
	ConfigKeyPrefix             = "prefix"
	ConfigKeyTemplateRoot       = "template_root"
	ConfigKeyTemplateSuffix     = "template_suffix"
	ConfigKeyCacheTTL           = "cache_ttl"
	ConfigKeyMaxExpressionDepth = "max_expression_depth"
)

// Environment binding
const (
	EnvPrefix     = "THYMELEAF"
	ConfigType    = "yaml"
	EnvKeyOldChar = "-"
	EnvKeyNewChar = "_"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess     = 0
	ExitCodeError       = 1
	ExitCodeUsageError  = 2
	ExitCodeConfigError = 3
	ExitCodeInputError  = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Data file extensions decoded as YAML; everything else is JSON
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// Error messages - ALL must be constants
const (
	ErrMsgMissingTemplate   = "template source required: use --template or --name"
	ErrMsgConflictingSource = "--template and --name cannot be combined"
	ErrMsgInvalidData       = "invalid context data"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgConfigFailed      = "invalid configuration"
	ErrMsgEngineFailed      = "engine could not be created"
	ErrMsgRenderFailed      = "template processing failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
)

// CLI metadata
const (
	CLIName        = "thymeleaf"
	CLIDescription = "Server-side HTML attribute templating CLI"
	CLILong        = `thymeleaf processes HTML templates whose behaviour is declared in
dialect attributes (th:text, th:if, data-th-remove, ...).

Flags may also be set through THYMELEAF_* environment variables
(THYMELEAF_DATA_FILE, THYMELEAF_TEMPLATE_ROOT, ...) and a YAML config file.`

	RenderShort   = "Render a template with context data"
	RenderExample = `  thymeleaf render -t page.html -d '{"name": "Alice"}'
  thymeleaf render -t page.html -f data.yaml -o out.html
  cat page.html | thymeleaf render -t - -d '{"name": "Bob"}'
  thymeleaf render -c thymeleaf.yaml -n home -f data.json`

	VersionShort = "Show version information"
)

// Flag usage strings
const (
	UsageTemplate = `template file (use "-" for stdin)`
	UsageName     = "template name resolved from the config template_root"
	UsageData     = "JSON context data"
	UsageDataFile = "JSON or YAML context data file"
	UsageOutput   = "output file (default: stdout)"
	UsageConfig   = "YAML engine config file"
	UsageVerbose  = "log engine activity to stderr"
	UsageFormat   = "output format: text, json"
)

// Version output format templates
const (
	VersionTextTemplate = "go-thymeleaf version %s\nCommit: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionDevel        = "(devel)"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtError   = "%s\n"
	FmtNewline = "\n"
)
