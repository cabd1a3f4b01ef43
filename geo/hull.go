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
	"slices"
)

// HullPolygon is a convex boundary in counter-clockwise order over the (lng, lat) plane.
// The closing vertex is not repeated.
type HullPolygon []Coord

// cross is the z component of (b - o) x (a - o) with lng as x and lat as y.
// Positive means o -> a -> b turns counter-clockwise.
func cross(o, a, b Coord) float64 {
	return (a.Lng-o.Lng)*(b.Lat-o.Lat) - (a.Lat-o.Lat)*(b.Lng-o.Lng)
}

func compareLngLat(a, b Coord) int {
	if a.Lng < b.Lng {
		return -1
	}
	if a.Lng > b.Lng {
		return 1
	}
	if a.Lat < b.Lat {
		return -1
	}
	if a.Lat > b.Lat {
		return 1
	}
	return 0
}

func countDistinct(coords []Coord, limit int) int {
	var seen []Coord
	for _, c := range coords {
		if !slices.Contains(seen, c) {
			seen = append(seen, c)
			if len(seen) >= limit {
				break
			}
		}
	}
	return len(seen)
}

// ConvexHull computes the hull with the monotone chain variant of Graham scan.
// Collinear points are dropped from the boundary. With fewer than 3 distinct points
// a copy of the input is returned as is. The input slice is never reordered.
func ConvexHull(coords []Coord) HullPolygon {
	if countDistinct(coords, 3) < 3 {
		return HullPolygon(slices.Clone(coords))
	}

	sorted := slices.Clone(coords)
	slices.SortStableFunc(sorted, compareLngLat)

	lower := make([]Coord, 0, len(sorted))
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]Coord, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// each chain ends where the other starts
	hull := make(HullPolygon, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

// Contains reports whether c lies inside or on the boundary of the hull.
// Degenerate hulls contain only their own vertices and the segment between them.
func (h HullPolygon) Contains(c Coord) bool {
	switch len(h) {
	case 0:
		return false
	case 1:
		return h[0] == c
	case 2:
		return onSegment(h[0], h[1], c)
	}

	for i := range h {
		if cross(h[i], h[(i+1)%len(h)], c) < 0 {
			return false
		}
	}
	return true
}

func onSegment(a, b, c Coord) bool {
	if cross(a, b, c) != 0 {
		return false
	}
	return min(a.Lng, b.Lng) <= c.Lng && c.Lng <= max(a.Lng, b.Lng) &&
		min(a.Lat, b.Lat) <= c.Lat && c.Lat <= max(a.Lat, b.Lat)
}
