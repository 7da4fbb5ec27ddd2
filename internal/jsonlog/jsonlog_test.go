package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type logEntry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func TestJSONLogger(t *testing.T) {
	t.Run("info entry", func(t *testing.T) {
		var logBuffer bytes.Buffer
		l := New(&logBuffer, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000"})
		var entry logEntry
		err := json.Unmarshal(logBuffer.Bytes(), &entry)
		if err != nil {
			t.Fatal(err)
		}
		if entry.Level != "INFO" {
			t.Errorf("expected level INFO; got %s", entry.Level)
		}
		if entry.Message != "starting server" {
			t.Errorf("expected message %q; got %q", "starting server", entry.Message)
		}
		if entry.Properties["addr"] != ":4000" {
			t.Errorf("expected addr property %q; got %q", ":4000", entry.Properties["addr"])
		}
		if entry.Trace != "" {
			t.Error("expected no stack trace on an INFO entry")
		}
	})

	t.Run("error entry includes trace", func(t *testing.T) {
		var logBuffer bytes.Buffer
		l := New(&logBuffer, LevelInfo)
		l.PrintError(errors.New("connection refused"), nil)
		var entry logEntry
		err := json.Unmarshal(logBuffer.Bytes(), &entry)
		if err != nil {
			t.Fatal(err)
		}
		if entry.Level != "ERROR" {
			t.Errorf("expected level ERROR; got %s", entry.Level)
		}
		if entry.Trace == "" {
			t.Error("expected a stack trace on an ERROR entry")
		}
	})

	t.Run("below minimum level is suppressed", func(t *testing.T) {
		var logBuffer bytes.Buffer
		l := New(&logBuffer, LevelError)
		l.PrintInfo("should not appear", nil)
		if logBuffer.Len() != 0 {
			t.Errorf("expected no output; got %q", logBuffer.String())
		}
	})

	t.Run("writer interface logs at error level", func(t *testing.T) {
		var logBuffer bytes.Buffer
		l := New(&logBuffer, LevelInfo)
		_, err := l.Write([]byte("http: proxy error"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(logBuffer.String(), `"level":"ERROR"`) {
			t.Errorf("expected an ERROR entry; got %q", logBuffer.String())
		}
	})
}
