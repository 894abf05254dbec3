// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("expected the default logger for an empty context")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("logger not carried by the context")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.DebugLevel))
	p.done("layout", "nodes", 3)
	if !bytes.Contains(buf.Bytes(), []byte("elapsed")) {
		t.Errorf("missing elapsed time: %s", &buf)
	}
}
