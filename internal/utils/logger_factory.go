package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
)

// LogLevel identifies a supported logging verbosity.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat identifies a supported log encoding.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// LoggerOutputs bundles the diagnostic logger with the console event logger.
type LoggerOutputs struct {
	DiagnosticLogger *zap.Logger
	ConsoleLogger    *zap.Logger
}

// LoggerFactory builds zap loggers for the supported levels and formats.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory instance.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLoggerOutputs builds logger outputs for the requested level and format.
// Structured output emits JSON diagnostics and silences the console logger;
// console output emits human-readable diagnostics plus bare console events.
func (factory *LoggerFactory) CreateLoggerOutputs(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (LoggerOutputs, error) {
	zapLevel, levelError := resolveZapLevel(requestedLogLevel)
	if levelError != nil {
		return LoggerOutputs{}, levelError
	}

	lockedStderr := zapcore.Lock(os.Stderr)

	switch requestedLogFormat {
	case LogFormatStructured:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		diagnosticCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfiguration), lockedStderr, zapLevel)
		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.NewNop(),
		}, nil
	case LogFormatConsole:
		diagnosticEncoderConfiguration := zap.NewDevelopmentEncoderConfig()
		diagnosticEncoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		diagnosticCore := zapcore.NewCore(zapcore.NewConsoleEncoder(diagnosticEncoderConfiguration), lockedStderr, zapLevel)

		consoleEncoderConfiguration := zapcore.EncoderConfig{
			MessageKey:  "message",
			LineEnding:  zapcore.DefaultLineEnding,
			EncodeLevel: zapcore.CapitalLevelEncoder,
		}
		consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfiguration), lockedStderr, zapLevel)

		return LoggerOutputs{
			DiagnosticLogger: zap.New(diagnosticCore),
			ConsoleLogger:    zap.New(consoleCore),
		}, nil
	default:
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, string(requestedLogFormat))
	}
}

func resolveZapLevel(requestedLogLevel LogLevel) (zapcore.Level, error) {
	switch requestedLogLevel {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo, LogLevel(""):
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, string(requestedLogLevel))
	}
}
