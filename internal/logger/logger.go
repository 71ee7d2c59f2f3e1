// Package logger provides leveled logging for biasctl.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show each request sent to the backend.
// Otherwise only warnings and errors are printed.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const sectionField = "section"

var std = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&lineFormatter{})
	return l
}

// lineFormatter renders entries as "[LEVEL] message" lines.
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if name, ok := entry.Data[sectionField]; ok {
		fmt.Fprintf(&b, "\n=== %v ===\n", name)
		return b.Bytes(), nil
	}
	fmt.Fprintf(&b, "[%s] %s", levelTag(entry.Level), entry.Message)
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelTag(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(l.String())
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	if v {
		std.SetLevel(logrus.DebugLevel)
		return
	}
	std.SetLevel(logrus.WarnLevel)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return std.IsLevelEnabled(logrus.DebugLevel)
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	std.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	if IsVerbose() {
		std.WithField(sectionField, name).Info("")
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	std.Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	std.Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	std.Errorf(format, args...)
}

// WithFields returns an entry carrying structured fields, printed after the message.
func WithFields(fields map[string]any) *logrus.Entry {
	return std.WithFields(logrus.Fields(fields))
}
