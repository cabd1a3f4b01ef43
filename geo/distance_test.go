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
	"math"
	"testing"

	"github.com/golang/geo/s2"
)

var (
	tokyo     = Coord{Lat: 35.6762, Lng: 139.6503}
	osaka     = Coord{Lat: 34.6937, Lng: 135.5023}
	northPole = Coord{Lat: 90, Lng: 0}
	southPole = Coord{Lat: -90, Lng: 0}
)

func TestHaversineDistanceSamePoint(t *testing.T) {
	for _, p := range []Coord{{}, tokyo, osaka, northPole, southPole, {Lat: -33.8688, Lng: 151.2093}} {
		if d := HaversineDistanceInKm(p, p); d != 0 {
			t.Errorf("distance(%v, %v) = %v, expected 0", p, p, d)
		}
	}
}

func TestHaversineDistanceRanges(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Coord
		min, max float64
	}{
		{"tokyo-osaka", tokyo, osaka, 380, 420},
		{"pole-to-pole", northPole, southPole, 19900, 20100},
		{"antimeridian", Coord{Lat: 0, Lng: 179}, Coord{Lat: 0, Lng: -179}, 200, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := HaversineDistanceInKm(tt.a, tt.b)
			if d <= tt.min || d >= tt.max {
				t.Errorf("distance = %.3fkm, expected in (%v, %v)", d, tt.min, tt.max)
			}
		})
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	coords := []Coord{tokyo, osaka, northPole, southPole, {Lat: 0, Lng: 179}, {Lat: 0, Lng: -179}, {Lat: -41.2865, Lng: 174.7762}}
	for _, a := range coords {
		for _, b := range coords {
			ab := HaversineDistanceInKm(a, b)
			ba := HaversineDistanceInKm(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance(%v, %v) = %v but distance(%v, %v) = %v", a, b, ab, b, a, ba)
			}
			if ab < 0 {
				t.Errorf("distance(%v, %v) = %v is negative", a, b, ab)
			}
		}
	}
}

func TestHaversineDistanceMatchesS2(t *testing.T) {
	pairs := [][2]Coord{
		{tokyo, osaka},
		{{Lat: 51.5074, Lng: -0.1278}, {Lat: 40.7128, Lng: -74.0060}},
		{{Lat: -33.8688, Lng: 151.2093}, {Lat: 37.7749, Lng: -122.4194}},
		{{Lat: 0, Lng: 179}, {Lat: 0, Lng: -179}},
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		expected := s2.LatLngFromDegrees(a.Lat, a.Lng).Distance(s2.LatLngFromDegrees(b.Lat, b.Lng)).Radians() * EarthRadiusKm
		got := HaversineDistanceInKm(a, b)
		if math.Abs(got-expected) > 1e-6 {
			t.Errorf("distance(%v, %v) = %v, s2 says %v", a, b, got, expected)
		}
	}
}

func TestHaversineDistanceInMeters(t *testing.T) {
	km := HaversineDistanceInKm(tokyo, osaka)
	m := HaversineDistanceInMeters(tokyo, osaka)
	if math.Abs(m-km*1000) > 1e-6 {
		t.Errorf("meters = %v, expected %v", m, km*1000)
	}
}

func TestCoordsRadiusAndTotal(t *testing.T) {
	center := Coord{Lat: 0, Lng: 0}
	coords := []Coord{{Lat: 0, Lng: 1}, {Lat: 0, Lng: -2}, {Lat: 3, Lng: 0}}

	radius := CoordsRadiusInKm(center, coords)
	expected := HaversineDistanceInKm(center, Coord{Lat: 3, Lng: 0})
	if radius != expected {
		t.Errorf("radius = %v, expected %v", radius, expected)
	}
	if CoordsRadiusInMeters(center, coords) != radius*1000 {
		t.Errorf("radius in meters does not match km")
	}

	total := TotalDistanceInKm(center, coords)
	var sum float64
	for _, c := range coords {
		sum += HaversineDistanceInKm(center, c)
	}
	if math.Abs(total-sum) > 1e-9 {
		t.Errorf("total = %v, expected %v", total, sum)
	}

	if CoordsRadiusInKm(center, nil) != 0 || TotalDistanceInKm(center, nil) != 0 {
		t.Errorf("expected 0 for empty coords")
	}
}

func TestCoordIsValid(t *testing.T) {
	tests := []struct {
		coord Coord
		valid bool
	}{
		{Coord{0, 0}, true},
		{Coord{90, 180}, true},
		{Coord{-90, -180}, true},
		{Coord{90.0001, 0}, false},
		{Coord{0, -180.5}, false},
		{Coord{math.NaN(), 0}, false},
	}
	for _, tt := range tests {
		if got := tt.coord.IsValid(); got != tt.valid {
			t.Errorf("%v.IsValid() = %v, expected %v", tt.coord, got, tt.valid)
		}
	}
}

func BenchmarkHaversineDistance(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		HaversineDistanceInKm(tokyo, osaka)
	}
}
