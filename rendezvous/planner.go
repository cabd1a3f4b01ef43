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
	"context"
	"fmt"
	"time"

	"github.com/matteobertozzi/meetpoint/geo"
	"github.com/matteobertozzi/meetpoint/insights/metrics"
	"github.com/matteobertozzi/meetpoint/insights/tracer"
)

var planCount = metrics.RegisterMetric[*metrics.TimeRangeCounter](metrics.Metric{
	Unit:      "COUNT",
	Name:      "rendezvous.plans",
	Collector: metrics.NewTimeRangeCounter(3*time.Hour, 1*time.Minute),
})

var medianIterations = metrics.RegisterMetric[*metrics.MaxAndAvgTimeRangeGauge](metrics.Metric{
	Unit:      "COUNT",
	Name:      "rendezvous.median.iterations",
	Collector: metrics.NewMaxAndAvgTimeRangeGauge(3*time.Hour, 1*time.Minute),
})

var medianExhausted = metrics.RegisterMetric[*metrics.TimeRangeCounter](metrics.Metric{
	Unit:      "COUNT",
	Name:      "rendezvous.median.exhausted",
	Collector: metrics.NewTimeRangeCounter(3*time.Hour, 1*time.Minute),
})

type Participant struct {
	Name     string    `json:"name" yaml:"name" cbor:"name"`
	Location geo.Coord `json:"location" yaml:"location" cbor:"location"`
}

// Leg is the distance from one participant to each aggregate point.
type Leg struct {
	Name         string    `json:"name" yaml:"name" cbor:"name"`
	Location     geo.Coord `json:"location" yaml:"location" cbor:"location"`
	ToCentroidKm float64   `json:"toCentroidKm" yaml:"toCentroidKm" cbor:"toCentroidKm"`
	ToMedianKm   float64   `json:"toMedianKm" yaml:"toMedianKm" cbor:"toMedianKm"`
}

type Plan struct {
	TraceId           string          `json:"traceId" yaml:"traceId" cbor:"traceId"`
	Centroid          geo.Coord       `json:"centroid" yaml:"centroid" cbor:"centroid"`
	SphericalCenter   geo.Coord       `json:"sphericalCenter" yaml:"sphericalCenter" cbor:"sphericalCenter"`
	Median            geo.Coord       `json:"median" yaml:"median" cbor:"median"`
	MedianIterations  int             `json:"medianIterations" yaml:"medianIterations" cbor:"medianIterations"`
	MedianTermination geo.Termination `json:"medianTermination" yaml:"medianTermination" cbor:"medianTermination"`
	Hull              geo.HullPolygon `json:"hull" yaml:"hull" cbor:"hull"`
	Legs              []Leg           `json:"legs" yaml:"legs" cbor:"legs"`
	TotalToCentroidKm float64         `json:"totalToCentroidKm" yaml:"totalToCentroidKm" cbor:"totalToCentroidKm"`
	TotalToMedianKm   float64         `json:"totalToMedianKm" yaml:"totalToMedianKm" cbor:"totalToMedianKm"`
	MaxToMedianKm     float64         `json:"maxToMedianKm" yaml:"maxToMedianKm" cbor:"maxToMedianKm"`
}

// Coords returns the participant locations in input order.
func (p *Plan) Coords() []geo.Coord {
	coords := make([]geo.Coord, len(p.Legs))
	for i, leg := range p.Legs {
		coords[i] = leg.Location
	}
	return coords
}

type Planner struct {
	solver geo.WeiszfeldConfig
}

func NewPlanner(solver geo.WeiszfeldConfig) *Planner {
	return &Planner{solver: solver}
}

func NewDefaultPlanner() *Planner {
	return NewPlanner(geo.DefaultWeiszfeldConfig())
}

func validateParticipants(participants []Participant) error {
	if len(participants) == 0 {
		return &geo.InvalidArgumentError{Op: "plan", Reason: "no participants"}
	}
	for i, p := range participants {
		if !p.Location.IsValid() {
			return &geo.InvalidArgumentError{
				Op:     "plan",
				Reason: fmt.Sprintf("participant %d %q has invalid coordinates %v", i, p.Name, p.Location),
			}
		}
	}
	return nil
}

// Plan computes the aggregate meeting points for the participants and each participant's distance to them.
// Coordinates are range checked here, the geo routines accept anything.
func (pl *Planner) Plan(ctx context.Context, participants []Participant) (*Plan, error) {
	if err := validateParticipants(participants); err != nil {
		tracer.LogWarn(ctx, "rejected {participants.count} participants: {reason}", len(participants), err)
		return nil, err
	}

	startTime := time.Now()
	coords := make([]geo.Coord, len(participants))
	for i, p := range participants {
		coords[i] = p.Location
	}

	centroid, err := geo.Centroid(coords)
	if err != nil {
		return nil, fmt.Errorf("unable to compute centroid: %w", err)
	}

	sphericalCenter, err := geo.SphericalCenter(coords)
	if err != nil {
		return nil, fmt.Errorf("unable to compute spherical center: %w", err)
	}

	median, err := geo.SolveGeometricMedian(coords, &pl.solver)
	if err != nil {
		return nil, fmt.Errorf("unable to compute geometric median: %w", err)
	}

	plan := &Plan{
		TraceId:           tracer.GetTraceId(ctx),
		Centroid:          centroid,
		SphericalCenter:   sphericalCenter,
		Median:            median.Median,
		MedianIterations:  median.Iterations,
		MedianTermination: median.Termination,
		Hull:              geo.ConvexHull(coords),
		Legs:              make([]Leg, len(participants)),
	}

	for i, p := range participants {
		leg := Leg{
			Name:         p.Name,
			Location:     p.Location,
			ToCentroidKm: geo.HaversineDistanceInKm(p.Location, centroid),
			ToMedianKm:   geo.HaversineDistanceInKm(p.Location, median.Median),
		}
		plan.Legs[i] = leg
		plan.TotalToCentroidKm += leg.ToCentroidKm
		plan.TotalToMedianKm += leg.ToMedianKm
		plan.MaxToMedianKm = max(plan.MaxToMedianKm, leg.ToMedianKm)
	}

	now := time.Now()
	planCount.Inc(now)
	medianIterations.Sample(now, int64(median.Iterations))
	if median.Termination == geo.Exhausted && median.Iterations > 0 {
		medianExhausted.Inc(now)
		tracer.LogWarn(ctx, "geometric median did not converge in {iterations}, using last estimate {median}",
			median.Iterations, median.Median)
	}

	tracer.LogDebug(ctx, "planned {participants.count} participants: median {median} ({termination} after {iterations}), total {total.distance.km} max {max.distance.km} in {elapsed.us}",
		len(participants), median.Median, median.Termination, median.Iterations,
		plan.TotalToMedianKm, plan.MaxToMedianKm, float64(time.Since(startTime).Microseconds()))
	return plan, nil
}
