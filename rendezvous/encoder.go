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

package rendezvous

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/matteobertozzi/meetpoint/insights/metrics"
	"github.com/matteobertozzi/yajbe-data-format/golang/yajbe"
	"gopkg.in/yaml.v2"
)

type encoder interface {
	Encode(v any) error
}

var planEncodedSize = metrics.RegisterMetric[*metrics.MaxAndAvgTimeRangeGauge](metrics.Metric{
	Unit:      "BYTES",
	Name:      "rendezvous.plan.encoded.size",
	Collector: metrics.NewMaxAndAvgTimeRangeGauge(3*time.Hour, 1*time.Minute),
})

type geoJsonEncoder struct {
	writer io.Writer
}

func (e *geoJsonEncoder) Encode(v any) error {
	plan, ok := v.(*Plan)
	if !ok {
		return fmt.Errorf("geojson encoding supports only plans, got %T", v)
	}
	data, err := plan.FeatureCollection().MarshalJSON()
	if err != nil {
		return err
	}
	_, err = e.writer.Write(data)
	return err
}

// yajbeEncoder marshals the whole value before writing, the yajbe stream writer
// does not produce decodable output for nested structs.
type yajbeEncoder struct {
	writer io.Writer
}

func (e *yajbeEncoder) Encode(v any) error {
	return yajbe.MarshalToWriter(e.writer, v)
}

func newEncoder(writer io.Writer, contentType string) (encoder, error) {
	switch contentType {
	case "", "application/json":
		return json.NewEncoder(writer), nil
	case "application/geo+json":
		return &geoJsonEncoder{writer: writer}, nil
	case "application/cbor":
		return cbor.NewEncoder(writer), nil
	case "application/yajbe":
		return &yajbeEncoder{writer: writer}, nil
	case "text/yaml", "application/yaml":
		return yaml.NewEncoder(writer), nil
	}
	return nil, fmt.Errorf("unsupported plan content type %q", contentType)
}

// EncodePlan serializes the plan as contentType, compressed with contentEncoding ("", "gzip" or "zstd").
func EncodePlan(plan *Plan, contentType string, contentEncoding string) ([]byte, error) {
	var buf bytes.Buffer
	var writer io.Writer = &buf
	var compressed io.WriteCloser

	switch contentEncoding {
	case "":
	case "gzip":
		compressed = gzip.NewWriter(&buf)
	case "zstd":
		zstdw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("unable to create zstd writer: %w", err)
		}
		compressed = zstdw
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", contentEncoding)
	}
	if compressed != nil {
		writer = compressed
	}

	enc, err := newEncoder(writer, contentType)
	if err != nil {
		closeQuietly(compressed)
		return nil, err
	}
	if err := enc.Encode(plan); err != nil {
		closeQuietly(compressed)
		return nil, fmt.Errorf("unable to encode plan as %s: %w", contentType, err)
	}
	if closer, ok := enc.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			closeQuietly(compressed)
			return nil, fmt.Errorf("unable to flush %s encoder: %w", contentType, err)
		}
	}
	if compressed != nil {
		if err := compressed.Close(); err != nil {
			return nil, fmt.Errorf("unable to close %s writer: %w", contentEncoding, err)
		}
	}

	planEncodedSize.Sample(time.Now(), int64(buf.Len()))
	return buf.Bytes(), nil
}

// closeQuietly releases the compression writer on error paths, the output is discarded anyway.
func closeQuietly(w io.WriteCloser) {
	if w != nil {
		w.Close()
	}
}
