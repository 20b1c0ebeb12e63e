/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Console formatter for lstar-probe logs. Prints timestamp, level, a short
tag for learner events and the structured fields in key order, with optional ANSI
colours.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter renders one entry per line
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format implements logrus.Formatter
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		f.write(&output, 36, entry.Time.Format("2006-01-02 15:04:05.000")) // Cyan
	}

	level := strings.ToUpper(entry.Level.String())
	f.write(&output, f.getLevelColor(entry.Level), level)

	if tag := eventTag(entry.Message); tag != "" {
		f.write(&output, 35, "["+tag+"]") // Magenta
	}

	if f.Caller && entry.HasCaller() {
		f.write(&output, 33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)) // Yellow
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

func (f *CustomFormatter) write(b *strings.Builder, color int, s string) {
	if f.Colors {
		fmt.Fprintf(b, "\033[%dm%s\033[0m ", color, s)
		return
	}
	b.WriteString(s)
	b.WriteString(" ")
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	case logrus.FatalLevel, logrus.PanicLevel:
		return 35 // Magenta
	default:
		return 37 // White
	}
}

// eventTag maps learner event messages to a short tag
func eventTag(message string) string {
	switch {
	case strings.HasPrefix(message, "Equivalence check"):
		return "STEP"
	case strings.HasPrefix(message, "Learning run"):
		return "RUN"
	case strings.Contains(message, "overflow"), strings.Contains(message, "Overflow"):
		return "OVERFLOW"
	case strings.HasPrefix(message, "Summary"):
		return "SUMMARY"
	case strings.HasPrefix(message, "Session"):
		return "SESSION"
	default:
		return ""
	}
}

func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := formatValue(key, fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, value)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, value))
		}
	}
	return strings.Join(parts, " ")
}

func formatValue(key string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		return fmt.Sprintf("%.6f", v)
	case string:
		// ids print as their first uuid group
		if strings.HasSuffix(key, "_id") && len(v) > 8 {
			return v[:8]
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
