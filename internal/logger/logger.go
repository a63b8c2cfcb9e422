// Package logger builds the editor's logrus logger: appended to a file on disk and
// mirrored into memory for the in-window terminal.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogFilePath is the editor log file, relative to the working directory.
const LogFilePath = "logs/editor.txt"

// MaxLines bounds the in-memory history.
const MaxLines = 500

// Logger is a logrus logger that also keeps its recent output in memory.
type Logger struct {
	*logrus.Logger
	mem  *memoryHook
	file *os.File
}

// New returns a logger appending to path (created with its directory) and to any extra writers.
// An empty path logs to the extra writers only.
func New(path string, extra ...io.Writer) (*Logger, error) {
	l := &Logger{Logger: logrus.New(), mem: newMemoryHook(MaxLines)}
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	writers := append([]io.Writer{}, extra...)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
		writers = append(writers, f)
	}
	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}
	l.AddHook(l.mem)
	return l, nil
}

// Log records a line typed into the terminal.
func (l *Logger) Log(line string) {
	l.WithField("source", "terminal").Info(line)
}

// Lines returns a copy of the remembered lines, oldest first.
func (l *Logger) Lines() []string {
	return l.mem.lines()
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// memoryHook keeps the last max formatted entries.
type memoryHook struct {
	mu    sync.Mutex
	max   int
	buf   []string
	plain *logrus.TextFormatter
}

func newMemoryHook(max int) *memoryHook {
	return &memoryHook{
		max: max,
		plain: &logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			TimestampFormat:  "15:04:05",
			QuoteEmptyFields: true,
		},
	}
}

func (h *memoryHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *memoryHook) Fire(e *logrus.Entry) error {
	data, err := h.plain.Format(e)
	if err != nil {
		return err
	}
	line := strings.TrimRight(string(data), "\n")
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf = append(h.buf, line)
	if over := len(h.buf) - h.max; over > 0 {
		h.buf = append(h.buf[:0], h.buf[over:]...)
	}
	return nil
}

func (h *memoryHook) lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.buf))
	copy(out, h.buf)
	return out
}
