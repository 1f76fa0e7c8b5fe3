package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/talss89/envtmpl/pkg/paths"
)

// SetupLogger configures the global logger based on verbosity level
// It sets up dual output to both console and the default log file
func SetupLogger(verbosity int) {
	SetupLoggerWithFile(verbosity, "")
}

// SetupLoggerWithFile is SetupLogger with an explicit log file. An empty
// logFile selects the XDG state location.
func SetupLoggerWithFile(verbosity int, logFile string) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	// Console output goes to stderr so rendered content on stdout stays clean
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	var writers []io.Writer
	writers = append(writers, consoleWriter)

	if logFile == "" {
		logFile = getLogFilePath()
	}
	logFileHandle, err := setupLogFile(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// WithFields returns a logger with additional fields
func WithFields(fields map[string]interface{}) zerolog.Logger {
	return log.With().Fields(fields).Logger()
}

func getLogFilePath() string {
	return paths.New().LogFilePath()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
