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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cborv2 "github.com/fxamacker/cbor/v2"
	"github.com/matteobertozzi/meetpoint/geo"
	"github.com/matteobertozzi/yajbe-data-format/golang/yajbe"
)

const yamlConfig = `
solver:
  maxIterations: 50
participants:
  - name: alice
    location: {lat: 35.6762, lng: 139.6503}
  - name: bob
    location: {lat: 34.6937, lng: 135.5023}
`

func TestDecodeYamlConfig(t *testing.T) {
	config, err := DecodeConfig(strings.NewReader(yamlConfig), "text/yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Solver.MaxIterations != 50 || config.Solver.Epsilon != geo.DefaultEpsilon {
		t.Errorf("unexpected solver config %+v", config.Solver)
	}
	if len(config.Participants) != 2 || config.Participants[1].Name != "bob" || config.Participants[1].Location.Lng != 135.5023 {
		t.Errorf("unexpected participants %+v", config.Participants)
	}
}

func TestDecodeJsonConfig(t *testing.T) {
	data := `{"solver": {"maxIterations": 0, "epsilon": 0.001}, "participants": [{"name": "a", "location": {"lat": 1, "lng": 2}}]}`
	config, err := DecodeConfig(strings.NewReader(data), "application/json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Solver.MaxIterations != 0 || config.Solver.Epsilon != 0.001 {
		t.Errorf("explicit zero iterations must be kept, got %+v", config.Solver)
	}
	if config.Participants[0].Location != (geo.Coord{Lat: 1, Lng: 2}) {
		t.Errorf("unexpected participants %+v", config.Participants)
	}
}

func TestDecodeCborConfig(t *testing.T) {
	data, err := cborv2.Marshal(map[string]any{
		"solver": map[string]any{"epsilon": 0.5},
		"participants": []any{
			map[string]any{"name": "carol", "location": map[string]any{"lat": -33.8688, "lng": 151.2093}},
		},
	})
	if err != nil {
		t.Fatalf("unable to marshal cbor: %v", err)
	}

	config, err := DecodeConfig(strings.NewReader(string(data)), "application/cbor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Solver.Epsilon != 0.5 || config.Solver.MaxIterations != geo.DefaultMaxIterations {
		t.Errorf("unexpected solver config %+v", config.Solver)
	}
	if len(config.Participants) != 1 || config.Participants[0].Name != "carol" {
		t.Errorf("unexpected participants %+v", config.Participants)
	}
}

func TestDecodeYajbeConfig(t *testing.T) {
	data, err := yajbe.Marshal(map[string]any{
		"solver": map[string]any{"maxIterations": 7},
		"participants": []any{
			map[string]any{"name": "dave", "location": map[string]any{"lat": 51.5072, "lng": -0.1276}},
		},
	})
	if err != nil {
		t.Fatalf("unable to marshal yajbe: %v", err)
	}

	config, err := DecodeConfig(strings.NewReader(string(data)), "application/yajbe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Solver.MaxIterations != 7 || config.Solver.Epsilon != geo.DefaultEpsilon {
		t.Errorf("unexpected solver config %+v", config.Solver)
	}
	if len(config.Participants) != 1 || config.Participants[0].Name != "dave" || config.Participants[0].Location.Lat != 51.5072 {
		t.Errorf("unexpected participants %+v", config.Participants)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader("{}"), "text/csv")
	if err == nil {
		t.Errorf("expected unsupported content type error")
	}

	_, err = DecodeConfig(strings.NewReader(`{"solver": {"maxIterations": -1}}`), "application/json")
	if !errors.Is(err, geo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative iterations, got %v", err)
	}

	_, err = DecodeConfig(strings.NewReader(`{"solver": {"epsilon": 0}}`), "application/json")
	if !errors.Is(err, geo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for zero epsilon, got %v", err)
	}

	_, err = DecodeConfig(strings.NewReader(`{"solver": `), "application/json")
	if err == nil {
		t.Errorf("expected error for truncated json")
	}

	config, err := DecodeConfig(strings.NewReader(""), "text/yaml")
	if err != nil || len(config.Participants) != 0 || config.Solver != geo.DefaultWeiszfeldConfig() {
		t.Errorf("empty config should decode to defaults, got %+v %v", config, err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "friends.yml")
	if err := os.WriteFile(path, []byte(yamlConfig), 0o644); err != nil {
		t.Fatalf("unable to write config: %v", err)
	}

	config, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(config.Participants) != 2 {
		t.Errorf("unexpected participants %+v", config.Participants)
	}

	if _, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
}

func TestContentTypeFromPath(t *testing.T) {
	for path, expected := range map[string]string{
		"a.yaml":    "text/yaml",
		"a.YML":     "text/yaml",
		"a.cbor":    "application/cbor",
		"a.yajbe":   "application/yajbe",
		"a.geojson": "application/geo+json",
		"a.json":    "application/json",
		"a":         "application/json",
	} {
		if got := ContentTypeFromPath(path); got != expected {
			t.Errorf("ContentTypeFromPath(%q) = %q, expected %q", path, got, expected)
		}
	}
}
