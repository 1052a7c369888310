// Package logging builds the console logger used for --verbose output.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console logger writing entries at level and above to
// writer.
func NewLogger(writer io.Writer, level zapcore.LevelEnabler) *zap.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.ConsoleSeparator = " "
	config.StacktraceKey = "error"

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.AddSync(writer),
		level,
	))
}

// LevelFor maps the --verbose flag to a level. Without it only warnings and
// errors get through, so normal runs print nothing but their result line.
func LevelFor(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}

	return zapcore.WarnLevel
}

// Component helper for creating zap.Field.
func Component(name string) zapcore.Field {
	return zap.String("component", name)
}
