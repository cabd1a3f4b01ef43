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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor"
	"github.com/matteobertozzi/meetpoint/geo"
	"github.com/matteobertozzi/yajbe-data-format/golang/yajbe"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Solver       geo.WeiszfeldConfig `json:"solver" yaml:"solver" cbor:"solver"`
	Participants []Participant       `json:"participants" yaml:"participants" cbor:"participants"`
}

// solver fields are pointers so a missing key and an explicit zero can be told apart
type solverFile struct {
	MaxIterations *int     `json:"maxIterations" yaml:"maxIterations" cbor:"maxIterations"`
	Epsilon       *float64 `json:"epsilon" yaml:"epsilon" cbor:"epsilon"`
}

type configFile struct {
	Solver       *solverFile   `json:"solver" yaml:"solver" cbor:"solver"`
	Participants []Participant `json:"participants" yaml:"participants" cbor:"participants"`
}

func (f *configFile) toConfig() (*Config, error) {
	config := &Config{
		Solver:       geo.DefaultWeiszfeldConfig(),
		Participants: f.Participants,
	}
	if f.Solver != nil {
		if f.Solver.MaxIterations != nil {
			config.Solver.MaxIterations = *f.Solver.MaxIterations
		}
		if f.Solver.Epsilon != nil {
			config.Solver.Epsilon = *f.Solver.Epsilon
		}
	}

	if err := config.Solver.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ContentTypeFromPath maps a file extension to the content type understood by DecodeConfig and EncodePlan.
func ContentTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "text/yaml"
	case ".cbor":
		return "application/cbor"
	case ".yajbe":
		return "application/yajbe"
	case ".geojson":
		return "application/geo+json"
	}
	return "application/json"
}

func DecodeConfig(reader io.Reader, contentType string) (*Config, error) {
	var raw configFile
	var err error
	switch contentType {
	case "application/cbor":
		err = cbor.NewDecoder(reader).Decode(&raw)
	case "application/yajbe":
		err = yajbe.NewDecoder(reader).Decode(&raw)
	case "text/yaml", "application/yaml":
		err = yaml.NewDecoder(reader).Decode(&raw)
	case "", "application/json":
		err = json.NewDecoder(reader).Decode(&raw)
	default:
		return nil, fmt.Errorf("unsupported config content type %q", contentType)
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to decode %s config: %w", contentType, err)
	}
	return raw.toConfig()
}

func LoadConfigFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", path, err)
	}
	defer file.Close()

	config, err := DecodeConfig(file, ContentTypeFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("unable to load config %s: %w", path, err)
	}
	return config, nil
}
