// Package logging configures the zap logger shared by the commands.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance. It is a no-op logger until Setup runs.
var Logger = zap.NewNop()

// Setup builds the global logger. Debug selects zap's development config;
// extraOutputs are appended to the default stderr output (for example a log file).
func Setup(debug bool, appName, appVersion string, extraOutputs ...string) error {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}
	for _, out := range extraOutputs {
		if out != "" {
			cfg.OutputPaths = append(cfg.OutputPaths, out)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}
