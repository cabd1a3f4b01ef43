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
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

const (
	LevelTrace = "TRACE"
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

type Logger interface {
	EmitLogEvent(ctx context.Context, level string, errorMessage string, format string, args []any)
}

type MetricsLogger interface {
	EmitMetricsEvent(ctx context.Context, event *MetricsEvent)
}

type MetricsEvent struct {
	TraceId      string
	Timestamp    time.Time
	Tags         map[string]any
	Measurements map[string]any
}

type loggerHolder struct{ Logger }
type metricsLoggerHolder struct{ MetricsLogger }

var _logger atomic.Pointer[loggerHolder]
var _metricsLogger atomic.Pointer[metricsLoggerHolder]

func init() {
	console := NewConsoleLogger()
	SetGlobalLogger(console)
	SetGlobalMetricsLogger(console)
}

func SetGlobalLogger(logger Logger) {
	_logger.Store(&loggerHolder{logger})
}

func SetGlobalMetricsLogger(logger MetricsLogger) {
	_metricsLogger.Store(&metricsLoggerHolder{logger})
}

func emit(ctx context.Context, level string, errorMessage string, message string, args []any) {
	_logger.Load().EmitLogEvent(ctx, level, errorMessage, message, args)
}

func LogTrace(ctx context.Context, message string, args ...any) {
	emit(ctx, LevelTrace, "", message, args)
}

func LogDebug(ctx context.Context, message string, args ...any) {
	emit(ctx, LevelDebug, "", message, args)
}

func LogInfo(ctx context.Context, message string, args ...any) {
	emit(ctx, LevelInfo, "", message, args)
}

func LogWarn(ctx context.Context, message string, args ...any) {
	emit(ctx, LevelWarn, "", message, args)
}

func LogError(ctx context.Context, err error, message string, args ...any) {
	errorMessage := ""
	if err != nil {
		errorMessage = err.Error()
	}
	emit(ctx, LevelError, errorMessage, message, args)
}

func EmitMetricsEvent(ctx context.Context, tags map[string]any, measurements map[string]any) {
	traceId := GetTraceId(ctx)
	if traceId == "" {
		traceId = GenerateTraceId()
	}

	event := &MetricsEvent{
		TraceId:      traceId,
		Timestamp:    time.Now(),
		Tags:         tags,
		Measurements: measurements,
	}

	_metricsLogger.Load().EmitMetricsEvent(ctx, event)
}

// PlainHumanLogFormat replaces every {key} placeholder with "key:value", without colors.
func PlainHumanLogFormat(message string, args []any) string {
	return HumanLogFormat(message, args, func(token string, formatted *string) string {
		if formatted != nil {
			return fmt.Sprintf("%s:%s", token, *formatted)
		}
		return token
	})
}

var logFormatRegex = regexp.MustCompile(`\{([^}]+)\}`)

// HumanLogFormat consumes args in order, one per {key} placeholder.
// The key suffix drives the value rendering, see HumanMeasurementValue.
func HumanLogFormat(message string, args []any, humanParam func(string, *string) string) string {
	index := 0
	return logFormatRegex.ReplaceAllStringFunc(message, func(match string) string {
		token := match[1 : len(match)-1]
		if index < len(args) {
			formatted := HumanFormatFieldValue(token, args[index])
			index++
			return humanParam(token, &formatted)
		}
		return humanParam(match, nil)
	})
}

func getCallerFuncFileLine(skip int) (string, int, string) {
	pc, file, fileLine, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", 0, ""
	}

	funcName := ""
	if details := runtime.FuncForPC(pc); details != nil {
		funcName = simplifyFuncName(details.Name())
	}
	return simplifyModulePath(file), fileLine, funcName
}

func simplifyFuncName(funcName string) string {
	lastSlash := strings.LastIndex(funcName, "/")
	if lastSlash < 0 {
		return funcName
	}
	return funcName[lastSlash+1:]
}

// simplifyModulePath keeps the last three path components.
func simplifyModulePath(path string) string {
	sepCount := 0
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == filepath.Separator {
			sepCount++
			if sepCount == 3 {
				return path[i+1:]
			}
		}
	}
	return path
}
