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

package geo

import (
	"fmt"
	"math"
)

const (
	DefaultMaxIterations = 1000
	DefaultEpsilon       = 1e-7
)

// WeiszfeldConfig bounds the geometric median iteration.
// Epsilon is a distance in km, used both as the coincidence guard and as the convergence threshold.
type WeiszfeldConfig struct {
	MaxIterations int     `json:"maxIterations" yaml:"maxIterations" cbor:"maxIterations"`
	Epsilon       float64 `json:"epsilon" yaml:"epsilon" cbor:"epsilon"`
}

func DefaultWeiszfeldConfig() WeiszfeldConfig {
	return WeiszfeldConfig{
		MaxIterations: DefaultMaxIterations,
		Epsilon:       DefaultEpsilon,
	}
}

// Validate is the strict check used when a config comes from user input.
// The solver itself never rejects a config, see normalized.
func (c WeiszfeldConfig) Validate() error {
	if c.MaxIterations < 0 {
		return &InvalidArgumentError{Op: "weiszfeld config", Reason: fmt.Sprintf("negative maxIterations %d", c.MaxIterations)}
	}
	if !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 1) {
		return &InvalidArgumentError{Op: "weiszfeld config", Reason: fmt.Sprintf("epsilon must be a positive finite value, got %v", c.Epsilon)}
	}
	return nil
}

// normalized replaces an unusable epsilon with DefaultEpsilon and clamps
// a negative iteration budget to zero.
func (c WeiszfeldConfig) normalized() WeiszfeldConfig {
	if !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 1) {
		c.Epsilon = DefaultEpsilon
	}
	if c.MaxIterations < 0 {
		c.MaxIterations = 0
	}
	return c
}

type Termination int

const (
	// Trivial: fewer than 3 points, the centroid is returned without iterating.
	Trivial Termination = iota
	// Converged: the last step moved the estimate less than epsilon.
	Converged
	// Coincident: the estimate landed within epsilon of an input point, which is returned.
	Coincident
	// Exhausted: maxIterations ran out, the last estimate is returned.
	Exhausted
)

func (t Termination) String() string {
	switch t {
	case Trivial:
		return "TRIVIAL"
	case Converged:
		return "CONVERGED"
	case Coincident:
		return "COINCIDENT"
	case Exhausted:
		return "EXHAUSTED"
	}
	return fmt.Sprintf("Termination(%d)", int(t))
}

func (t Termination) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type MedianResult struct {
	Median      Coord
	Iterations  int
	Termination Termination
}

// GeometricMedian approximates the point minimizing the total haversine distance to coords.
// A nil config uses DefaultWeiszfeldConfig; a zero or invalid Epsilon falls back to DefaultEpsilon
// and a negative MaxIterations runs no iteration. Running out of iterations is not an error.
func GeometricMedian(coords []Coord, config *WeiszfeldConfig) (Coord, error) {
	result, err := SolveGeometricMedian(coords, config)
	if err != nil {
		return Coord{}, err
	}
	return result.Median, nil
}

// SolveGeometricMedian runs the Weiszfeld iteration seeded by the Centroid.
// As soon as the estimate is within epsilon of an input point, that point is the answer;
// the remaining points are not reweighted.
func SolveGeometricMedian(coords []Coord, config *WeiszfeldConfig) (MedianResult, error) {
	if len(coords) == 0 {
		return MedianResult{}, newEmptyPointsError("geometric median")
	}

	cfg := DefaultWeiszfeldConfig()
	if config != nil {
		cfg = config.normalized()
	}

	estimate, err := Centroid(coords)
	if err != nil {
		return MedianResult{}, err
	}

	// the midpoint of two points is already a minimizer
	if len(coords) < 3 {
		return MedianResult{Median: estimate, Termination: Trivial}, nil
	}

	for i := 0; i < cfg.MaxIterations; i++ {
		var sumWeight, sumLat, sumLng float64
		for _, coord := range coords {
			d := HaversineDistanceInKm(estimate, coord)
			if d < cfg.Epsilon {
				return MedianResult{Median: coord, Iterations: i + 1, Termination: Coincident}, nil
			}
			weight := 1 / d
			sumWeight += weight
			sumLat += weight * coord.Lat
			sumLng += weight * coord.Lng
		}

		next := Coord{Lat: sumLat / sumWeight, Lng: sumLng / sumWeight}
		if HaversineDistanceInKm(estimate, next) < cfg.Epsilon {
			return MedianResult{Median: next, Iterations: i + 1, Termination: Converged}, nil
		}
		estimate = next
	}

	return MedianResult{Median: estimate, Iterations: cfg.MaxIterations, Termination: Exhausted}, nil
}
