package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "editor.txt")
	var echo bytes.Buffer
	l, err := New(path, &echo)
	if err != nil {
		t.Fatal(err)
	}
	l.WithField("model", "chair.glb").Info("item added")
	l.Log("cmd list")
	l.Debug("hidden at info level")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`msg="item added"`, "model=chair.glb", `msg="cmd list"`, "source=terminal"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
		if !strings.Contains(echo.String(), want) {
			t.Errorf("extra writer missing %q", want)
		}
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug line written at info level")
	}

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("memory lines = %q", lines)
	}
	if !strings.Contains(lines[0], "item added") || !strings.Contains(lines[1], "cmd list") {
		t.Errorf("memory lines = %q", lines)
	}
}

func TestLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.txt")
	for i := 0; i < 2; i++ {
		l, err := New(path)
		if err != nil {
			t.Fatal(err)
		}
		l.Infof("run %d", i)
		l.Close()
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "run 0") || !strings.Contains(string(data), "run 1") {
		t.Errorf("file was truncated between runs:\n%s", data)
	}
}

func TestMemoryIsBounded(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < MaxLines+10; i++ {
		l.Info(fmt.Sprintf("line %d", i))
	}
	lines := l.Lines()
	if len(lines) != MaxLines {
		t.Fatalf("kept %d lines, want %d", len(lines), MaxLines)
	}
	if !strings.Contains(lines[0], "line 10") {
		t.Errorf("oldest kept = %q, want line 10", lines[0])
	}
	if err := l.Close(); err != nil {
		t.Errorf("close without file: %v", err)
	}
}
