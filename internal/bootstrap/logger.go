package bootstrap

import (
	"io"
	"log/slog"

	"github.com/osse101/CaseDrop_Go/internal/config"
	"github.com/osse101/CaseDrop_Go/internal/logger"
)

// SetupLogger installs the process-wide logger described by cfg and logs
// the startup banner along with any configuration warnings.
func SetupLogger(cfg *config.Config, w io.Writer) {
	// Source locations only in dev
	addSource := cfg.Environment == logger.EnvironmentDev
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)
	logger.InitLoggerWithWriter(logCfg, w)

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.Storage)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"case_lock_timeout", cfg.CaseLockTimeout,
		"case_reference_tz", cfg.CaseReferenceTZ)

	for _, warning := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", warning)
	}
}
