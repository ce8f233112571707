package logger

// Level and format names accepted in Config.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults used before configuration is loaded.
const (
	DefaultServiceName = "inventory-restore"
	DefaultVersion     = "dev"

	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
)

// Attribute keys. Actor and task come from the context.
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyActor       = "actor"
	AttrKeyTask        = "task"
)
