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
)

// HaversineDistanceInKm returns the great-circle distance between a and b.
// It works on angular differences, so pairs across the antimeridian are handled.
func HaversineDistanceInKm(a, b Coord) float64 {
	rlat1 := deg2rad(a.Lat)
	rlat2 := deg2rad(b.Lat)
	diffLat := deg2rad(b.Lat - a.Lat)
	diffLng := deg2rad(b.Lng - a.Lng)

	sinDiffLat := math.Sin(diffLat / 2)
	sinDiffLng := math.Sin(diffLng / 2)

	h := sinDiffLat*sinDiffLat + math.Cos(rlat1)*math.Cos(rlat2)*sinDiffLng*sinDiffLng
	// rounding can push h just above 1 for antipodal pairs
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func HaversineDistanceInMeters(a, b Coord) float64 {
	return HaversineDistanceInKm(a, b) * 1000
}

// CoordsRadiusInKm returns the distance from center to the farthest coord.
func CoordsRadiusInKm(center Coord, coords []Coord) float64 {
	var maxDistance float64
	for _, coord := range coords {
		distance := HaversineDistanceInKm(center, coord)
		if distance > maxDistance {
			maxDistance = distance
		}
	}
	return maxDistance
}

func CoordsRadiusInMeters(center Coord, coords []Coord) float64 {
	return CoordsRadiusInKm(center, coords) * 1000
}

// TotalDistanceInKm is the sum of distances from center to every coord,
// the quantity minimized by GeometricMedian.
func TotalDistanceInKm(center Coord, coords []Coord) float64 {
	var total float64
	for _, coord := range coords {
		total += HaversineDistanceInKm(center, coord)
	}
	return total
}
