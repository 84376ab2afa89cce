package logging

import (
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strings"
	"sync"
)

// DefaultLogger writes one line per record through the standard log package:
//
//	2024/01/02 15:04:05 [INFO] msg: err key=value ...
//
// Fields are printed in sorted key order so output is stable.
type DefaultLogger struct {
	out    *log.Logger
	mu     *sync.Mutex
	level  *Level
	fields Fields
}

// NewDefaultLogger creates a logger writing to w at InfoLevel.
func NewDefaultLogger(w io.Writer) *DefaultLogger {
	level := InfoLevel
	return &DefaultLogger{
		out:    log.New(w, "", log.LstdFlags),
		mu:     &sync.Mutex{},
		level:  &level,
		fields: make(Fields),
	}
}

func (d *DefaultLogger) formatMessage(level Level, err error, msg string, fields ...Fields) string {
	allFields := make(Fields, len(d.fields))
	maps.Copy(allFields, d.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}
	for _, k := range slices.Sorted(maps.Keys(allFields)) {
		fmt.Fprintf(&b, " %s=%v", k, allFields[k])
	}

	return b.String()
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	d.mu.Lock()
	threshold := *d.level
	d.mu.Unlock()
	if level < threshold {
		return
	}
	d.out.Println(d.formatMessage(level, err, msg, fields...))
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

// WithFields returns a child logger sharing the output and level of d.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields, len(d.fields)+len(fields))
	maps.Copy(newFields, d.fields)
	maps.Copy(newFields, fields)

	return &DefaultLogger{
		out:    d.out,
		mu:     d.mu,
		level:  d.level,
		fields: newFields,
	}
}

// SetLevel sets the minimum level for d and every logger derived from it.
func (d *DefaultLogger) SetLevel(level Level) {
	d.mu.Lock()
	*d.level = level
	d.mu.Unlock()
}
