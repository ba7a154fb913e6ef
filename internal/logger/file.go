// internal/logger/file.go
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig controls the rotating log file used while the TUI owns the terminal.
type FileConfig struct {
	LogFile    string
	Level      string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
}

// DefaultFileConfig returns the rotation defaults
func DefaultFileConfig() FileConfig {
	return FileConfig{
		LogFile:    "tokenview.log",
		Level:      "info",
		MaxSize:    10,
		MaxAge:     7,
		MaxBackups: 3,
		Compress:   true,
	}
}

// NewFileLogger logs JSON to a rotating file and, when buffer is set, mirrors
// every entry into it for on-screen display. Nothing is written to stdout.
func NewFileLogger(cfg FileConfig, buffer *LogBuffer) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultFileConfig().LogFile
	}
	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level),
	}
	if buffer != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(bufferEncoderConfig()), zapcore.AddSync(buffer), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
