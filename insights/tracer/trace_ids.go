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
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

type traceIdCtxKey struct{}

// WithTraceId returns a child context carrying traceId, or a fresh one when traceId is empty.
func WithTraceId(ctx context.Context, traceId string) context.Context {
	if traceId == "" {
		traceId = GenerateTraceId()
	}
	return context.WithValue(ctx, traceIdCtxKey{}, traceId)
}

func GetTraceId(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceId, _ := ctx.Value(traceIdCtxKey{}).(string)
	return traceId
}

// GenerateTraceId returns 16 random bytes, hex encoded, whose first 6 bytes are the unix millis.
// Ids generated later sort after earlier ones.
func GenerateTraceId() string {
	var buf [16]byte
	rand.Read(buf[6:])

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixMilli()))
	copy(buf[:6], ts[2:])
	return hex.EncodeToString(buf[:])
}

func ParseTraceId(traceId string) ([]byte, error) {
	return hex.DecodeString(traceId)
}
