package logging

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// DefaultBufferSize matches the device log viewer's page history.
const DefaultBufferSize = 200

// Entry is one buffered log line.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Logger  string    `json:"logger,omitempty"`
	Message string    `json:"message"`
	Fields  string    `json:"fields,omitempty"`
}

// String formats the entry as "[LEVEL] message k=v".
func (e Entry) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(e.Level)
	sb.WriteString("] ")
	if e.Logger != "" {
		sb.WriteString(e.Logger)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Fields != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Fields)
	}
	return sb.String()
}

// Ring is a zapcore.Core that keeps the most recent entries in memory.
type Ring struct {
	buf    *ringBuffer
	level  zapcore.LevelEnabler
	fields []zapcore.Field
}

type ringBuffer struct {
	mu      sync.Mutex
	entries []Entry
	head    int
	count   int
	total   uint64
}

// NewRing creates a ring holding at most size entries.
func NewRing(size int, level zapcore.LevelEnabler) *Ring {
	if size < 1 {
		size = 1
	}
	return &Ring{
		buf:   &ringBuffer{entries: make([]Entry, size)},
		level: level,
	}
}

// Enabled implements zapcore.LevelEnabler.
func (r *Ring) Enabled(l zapcore.Level) bool {
	return r.level.Enabled(l)
}

// With implements zapcore.Core. Children share the same buffer.
func (r *Ring) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(r.fields)+len(fields))
	merged = append(merged, r.fields...)
	merged = append(merged, fields...)
	return &Ring{buf: r.buf, level: r.level, fields: merged}
}

// Check implements zapcore.Core.
func (r *Ring) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if r.Enabled(ent.Level) {
		return ce.AddCore(ent, r)
	}
	return ce
}

// Write implements zapcore.Core.
func (r *Ring) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := fields
	if len(r.fields) > 0 {
		all = make([]zapcore.Field, 0, len(r.fields)+len(fields))
		all = append(all, r.fields...)
		all = append(all, fields...)
	}
	r.buf.push(Entry{
		Time:    ent.Time,
		Level:   ent.Level.CapitalString(),
		Logger:  ent.LoggerName,
		Message: ent.Message,
		Fields:  renderFields(all),
	})
	return nil
}

// Sync implements zapcore.Core.
func (r *Ring) Sync() error {
	return nil
}

// Recent returns up to n of the newest entries, oldest first.
// n <= 0 returns everything buffered.
func (r *Ring) Recent(n int) []Entry {
	b := r.buf
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || n > b.count {
		n = b.count
	}
	out := make([]Entry, n)
	start := b.head - n
	if start < 0 {
		start += len(b.entries)
	}
	for i := 0; i < n; i++ {
		out[i] = b.entries[(start+i)%len(b.entries)]
	}
	return out
}

// Len returns the number of buffered entries.
func (r *Ring) Len() int {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	return r.buf.count
}

// Total returns the number of entries ever written, including evicted ones.
func (r *Ring) Total() uint64 {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	return r.buf.total
}

// Clear drops every buffered entry.
func (r *Ring) Clear() {
	b := r.buf
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.entries)
	b.head = 0
	b.count = 0
}

func (b *ringBuffer) push(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[b.head] = e
	b.head = (b.head + 1) % len(b.entries)
	if b.count < len(b.entries) {
		b.count++
	}
	b.total++
}

func renderFields(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, enc.Fields[k]))
	}
	return strings.Join(parts, " ")
}
