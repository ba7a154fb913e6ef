package logger

import (
	"bytes"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap/zapcore"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LogEntry represents a single log entry in the buffer
type LogEntry struct {
	Timestamp time.Time              `json:"ts"`
	Level     string                 `json:"level"`
	Logger    string                 `json:"logger,omitempty"`
	Message   string                 `json:"msg"`
	Fields    map[string]interface{} `json:"-"`
}

// LogBuffer keeps the most recent log entries in memory. It is a
// zapcore.WriteSyncer fed by a JSON encoder, one entry per Write.
type LogBuffer struct {
	mu           sync.Mutex
	ringBuffer   []LogEntry
	maxSize      int
	currentIndex int
	wrapped      bool

	totalEntries uint64
}

// NewLogBuffer creates a buffer holding up to maxSize entries
func NewLogBuffer(maxSize int) *LogBuffer {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LogBuffer{
		ringBuffer: make([]LogEntry, maxSize),
		maxSize:    maxSize,
	}
}

func bufferEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "ts",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

// Write decodes one encoded JSON entry. Lines that are not JSON are kept as
// plain info messages.
func (lb *LogBuffer) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	var entry LogEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		entry = LogEntry{Timestamp: time.Now(), Level: "info", Message: string(line)}
	} else {
		var fields map[string]interface{}
		if json.Unmarshal(line, &fields) == nil {
			for _, k := range []string{"ts", "level", "logger", "msg"} {
				delete(fields, k)
			}
			if len(fields) > 0 {
				entry.Fields = fields
			}
		}
	}

	lb.Add(entry)
	return len(p), nil
}

// Sync is a no-op, entries are stored on Write.
func (lb *LogBuffer) Sync() error {
	return nil
}

// Add stores entry, overwriting the oldest one when full.
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.ringBuffer[lb.currentIndex] = entry
	lb.currentIndex = (lb.currentIndex + 1) % lb.maxSize
	if lb.currentIndex == 0 {
		lb.wrapped = true
	}
	lb.totalEntries++
}

// GetRecentLogs returns up to limit entries, oldest first. limit <= 0 returns all.
func (lb *LogBuffer) GetRecentLogs(limit int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	count := lb.currentIndex
	start := 0
	if lb.wrapped {
		count = lb.maxSize
		start = lb.currentIndex
	}
	if limit > 0 && limit < count {
		start += count - limit
		count = limit
	}

	logs := make([]LogEntry, 0, count)
	for i := 0; i < count; i++ {
		logs = append(logs, lb.ringBuffer[(start+i)%lb.maxSize])
	}
	return logs
}

// LastAtLeast returns the newest entry at or above level.
func (lb *LogBuffer) LastAtLeast(level zapcore.Level) (LogEntry, bool) {
	logs := lb.GetRecentLogs(0)
	for i := len(logs) - 1; i >= 0; i-- {
		l, err := zapcore.ParseLevel(strings.ToLower(logs[i].Level))
		if err == nil && l >= level {
			return logs[i], true
		}
	}
	return LogEntry{}, false
}

// Total returns how many entries were ever added
func (lb *LogBuffer) Total() uint64 {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.totalEntries
}
