package contracts

// Registry keys shared across modules. Domain actions are registered under
// keys declared in their own packages.
const (
	ConfigModuleName     = "config"
	SettingsModuleName   = "settings"
	LoggerModuleName     = "logger"
	EventBusModuleName   = "eventBus"
	CliModuleName        = "cli"
	DatabaseModuleName   = "database"
	MetricsModuleName    = "metrics"
	NavigatorModuleName  = "navigator"
	SessionStoreName     = "sessionStore"
	SessionModuleName    = "session"
	HTTPClientModuleName = "httpClient"
)
