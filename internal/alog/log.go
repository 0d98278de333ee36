// Package alog is a small central logger for the core's own diagnostic
// output (the cpu package logs SLEEP and BREAK events) — distinct from the
// Tracer, which emits per-instruction execution records to a caller-chosen
// sink. Only one log exists per process; there is no per-CPU instance.
package alog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Entry is one logged line. Consecutive identical (tag, detail) pairs
// collapse into a single Entry with a repeat count, the way a long-running
// fetch-decode-execute loop would otherwise flood the log with the same
// complaint every instruction.
type Entry struct {
	tag      string
	detail   string
	repeated int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(e.tag)
	s.WriteString(": ")
	s.WriteString(e.detail)
	if e.repeated > 0 {
		fmt.Fprintf(&s, " (repeat x%d)", e.repeated+1)
	}
	return s.String()
}

const maxEntries = 256

var central = &logger{}

type logger struct {
	mu      sync.Mutex
	entries []Entry
	echo    io.Writer
}

func (l *logger) log(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tag = strings.ReplaceAll(tag, "\n", " ")
	detail = strings.ReplaceAll(detail, "\n", " ")

	if n := len(l.entries); n > 0 && l.entries[n-1].tag == tag && l.entries[n-1].detail == detail {
		l.entries[n-1].repeated++
	} else {
		l.entries = append(l.entries, Entry{tag: tag, detail: detail})
	}

	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, l.entries[len(l.entries)-1].String()+"\n")
	}
}

// Log appends one entry tagged tag.
func Log(tag, detail string) { central.log(tag, detail) }

// Logf appends one formatted entry tagged tag.
func Logf(tag, format string, args ...interface{}) {
	central.log(tag, fmt.Sprintf(format, args...))
}

// SetEcho mirrors every future entry to w as it is logged. Passing nil
// stops echoing.
func SetEcho(w io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.echo = w
}

// Write dumps every retained entry to w, oldest first.
func Write(w io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	for _, e := range central.entries {
		io.WriteString(w, e.String()+"\n")
	}
}

// Clear discards every retained entry.
func Clear() {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.entries = central.entries[:0]
}

// Stderr is a convenience default sink for SetEcho.
var Stderr io.Writer = os.Stderr
