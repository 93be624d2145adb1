// Package logx is the in-process log buffer behind the viewer's log
// popup. A full-screen TUI owns the terminal, so nothing may write to
// stderr while it runs; entries go to a bounded ring instead and the ui
// surfaces them on demand. Stderr echo can be forced for script use via
// REPORTVIEW_LOG_STDERR=1.
package logx

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

const ringSize = 500

var (
	mu       sync.Mutex
	level    = Info
	ring     [ringSize]string
	next     int // write position
	count    int // filled entries, caps at ringSize
	toStderr bool
)

func SetLevel(l Level) { mu.Lock(); level = l; mu.Unlock() }

// SetLevelFromEnv applies REPORTVIEW_LOG_LEVEL and REPORTVIEW_LOG_STDERR.
// Unset or unrecognized values leave the defaults (info, buffer only).
func SetLevelFromEnv() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("REPORTVIEW_LOG_LEVEL"))) {
	case "debug":
		SetLevel(Debug)
	case "info":
		SetLevel(Info)
	case "warn", "warning":
		SetLevel(Warn)
	case "error":
		SetLevel(Error)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("REPORTVIEW_LOG_STDERR"))); v != "" {
		mu.Lock()
		toStderr = v != "0" && v != "false" && v != "no"
		mu.Unlock()
	}
}

func Debugf(format string, a ...any) { logf(Debug, "DEBUG", format, a...) }
func Infof(format string, a ...any)  { logf(Info, "INFO", format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, "WARN", format, a...) }
func Errorf(format string, a ...any) { logf(Error, "ERROR", format, a...) }

func logf(l Level, tag, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	line := fmt.Sprintf("%s %-5s %s", ts, tag, fmt.Sprintf(format, a...))
	ring[next] = line
	next = (next + 1) % ringSize
	if count < ringSize {
		count++
	}
	if toStderr {
		fmt.Fprintln(os.Stderr, line)
	}
}

// Dump returns the buffered entries, oldest first.
func Dump() string {
	mu.Lock()
	defer mu.Unlock()
	if count == 0 {
		return ""
	}
	var b strings.Builder
	start := 0
	if count == ringSize {
		start = next
	}
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ring[(start+i)%ringSize])
	}
	return b.String()
}
