/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tracer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/matteobertozzi/meetpoint/insights/humans"
)

const (
	colorReset   = "\x1b[0m"
	colorYellow  = "\x1b[33m"
	colorRed     = "\x1b[31m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
)

var stringBuilderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

var levelRank = map[string]int{
	LevelTrace: 0,
	LevelDebug: 1,
	LevelInfo:  2,
	LevelWarn:  3,
	LevelError: 4,
}

type consoleLogger struct {
	out      *log.Logger
	minLevel int
	colors   bool
}

// NewConsoleLogger logs every level through the standard log package, with colors.
func NewConsoleLogger() *consoleLogger {
	return &consoleLogger{out: log.Default(), colors: true}
}

// NewWriterLogger writes uncolored lines at or above minLevel to w.
func NewWriterLogger(w io.Writer, minLevel string) *consoleLogger {
	return &consoleLogger{
		out:      log.New(w, "", 0),
		minLevel: levelRank[minLevel],
	}
}

func (l *consoleLogger) EmitLogEvent(ctx context.Context, level string, errorMessage string, format string, args []any) {
	if levelRank[level] < l.minLevel {
		return
	}

	sb := stringBuilderPool.Get().(*strings.Builder)
	defer func() {
		sb.Reset()
		stringBuilderPool.Put(sb)
	}()

	traceId := GetTraceId(ctx)
	now := time.Now().Format(time.RFC3339)
	file, fileLine, funcName := getCallerFuncFileLine(4)

	var message string
	if l.colors {
		message = consoleHumanLogFormat(format, args)
	} else {
		message = PlainHumanLogFormat(format, args)
	}

	sb.WriteString(l.levelColorText(level, now))
	sb.WriteString(" [")
	sb.WriteString(l.levelColorText(level, traceId))
	sb.WriteString("] ")
	sb.WriteString(file)
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(fileLine))
	sb.WriteByte(' ')
	sb.WriteString(funcName)
	sb.WriteString("() ")
	sb.WriteString(l.levelColorText(level, level))
	sb.WriteByte(' ')
	sb.WriteString(message)
	if errorMessage != "" {
		sb.WriteString(": ")
		sb.WriteString(errorMessage)
	}

	l.out.Print(sb.String())
}

func (l *consoleLogger) EmitMetricsEvent(ctx context.Context, event *MetricsEvent) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "\n=== METRICS EVENT ===\n")
	fmt.Fprintf(w, "Timestamp: %s\n", event.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "TraceId:   %s\n", event.TraceId)
	writeSortedFields(w, event.Tags, "tag")
	writeSortedFields(w, event.Measurements, "measurement")
	fmt.Fprintf(w, "====================\n\n")
}

func writeSortedFields(w io.Writer, fields map[string]any, kind string) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%s\t(%s)\n", key, HumanFormatFieldValue(key, fields[key]), kind)
	}
}

func (l *consoleLogger) levelColorText(level string, text string) string {
	if !l.colors {
		return text
	}
	switch level {
	case LevelWarn:
		return colorYellow + text + colorReset
	case LevelError:
		return colorRed + text + colorReset
	}
	return text
}

// HumanMeasurementValue renders value according to the unit suffix of name
// (e.g. "median.distance.km", "solver.elapsed.us", "plan.encoded.bytes").
func HumanMeasurementValue(name string, value float64) string {
	suffixIndex := strings.LastIndex(name, ".")
	if suffixIndex > 0 {
		switch name[suffixIndex+1:] {
		case "ns":
			return humans.TimeNanos(value)
		case "us":
			return humans.TimeMicros(value)
		case "ms":
			return humans.TimeMillis(value)
		case "sec":
			return humans.TimeSeconds(value)
		case "bytes":
			return humans.Bytes(uint64(value))
		case "count":
			return humans.Count(value)
		case "km":
			return humans.DistanceKm(value)
		case "m":
			return humans.DistanceMeters(value)
		case "deg":
			return humans.Degrees(value)
		}
	}

	if math.Trunc(value) == value {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func HumanFormatFieldValue(name string, value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return HumanMeasurementValue(name, float64(v))
	case int64:
		return HumanMeasurementValue(name, float64(v))
	case uint64:
		return HumanMeasurementValue(name, float64(v))
	case float64:
		return HumanMeasurementValue(name, v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return HumanMeasurementValue(name, float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return HumanMeasurementValue(name, float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return HumanMeasurementValue(name, rv.Float())
	case reflect.Ptr:
		if rv.IsNil() {
			return "null"
		}
		return HumanFormatFieldValue(name, rv.Elem().Interface())
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

func consoleHumanLogFormat(message string, args []any) string {
	return HumanLogFormat(message, args, func(token string, formatted *string) string {
		if formatted != nil {
			return colorMagenta + token + colorReset + ":" + colorCyan + *formatted + colorReset
		}
		return colorMagenta + token + colorReset
	})
}
