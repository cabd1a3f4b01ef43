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

// Centroid returns the arithmetic mean of the latitudes and of the longitudes, in degree space.
// Sets that straddle the antimeridian or a pole average poorly here; see SphericalCenter.
func Centroid(coords []Coord) (Coord, error) {
	if len(coords) == 0 {
		return Coord{}, newEmptyPointsError("centroid")
	}

	var sumLat, sumLng float64
	for _, coord := range coords {
		sumLat += coord.Lat
		sumLng += coord.Lng
	}

	n := float64(len(coords))
	return Coord{Lat: sumLat / n, Lng: sumLng / n}, nil
}

// SphericalCenter averages the coords in ECEF space and projects the mean back onto the sphere.
func SphericalCenter(coords []Coord) (Coord, error) {
	if len(coords) == 0 {
		return Coord{}, newEmptyPointsError("spherical center")
	}
	if len(coords) == 1 {
		return coords[0], nil
	}

	var sum ECEFPoint
	for _, coord := range coords {
		p := ToECEF(coord)
		sum.X += p.X
		sum.Y += p.Y
		sum.Z += p.Z
	}

	n := float64(len(coords))
	avgX := sum.X / n
	avgY := sum.Y / n
	avgZ := sum.Z / n

	// the mean lies inside the sphere, use atan2 on the horizontal component instead of asin(z/R)
	hyp := math.Sqrt(avgX*avgX + avgY*avgY)
	return Coord{
		Lat: rad2deg(math.Atan2(avgZ, hyp)),
		Lng: rad2deg(math.Atan2(avgY, avgX)),
	}, nil
}
