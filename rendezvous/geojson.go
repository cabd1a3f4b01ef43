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
	"slices"

	"github.com/matteobertozzi/meetpoint/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	RoleParticipant     = "participant"
	RoleCentroid        = "centroid"
	RoleSphericalCenter = "spherical-center"
	RoleMedian          = "median"
	RoleHull            = "hull"
)

func toOrbPoint(c geo.Coord) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

func distinctCoords(coords []geo.Coord) geo.HullPolygon {
	distinct := make(geo.HullPolygon, 0, len(coords))
	for _, c := range coords {
		if !slices.Contains(distinct, c) {
			distinct = append(distinct, c)
		}
	}
	return distinct
}

// hullGeometry closes the ring for a real polygon and degrades to a line or a point otherwise.
func hullGeometry(hull geo.HullPolygon) orb.Geometry {
	switch len(hull) {
	case 0:
		return nil
	case 1:
		return toOrbPoint(hull[0])
	case 2:
		return orb.LineString{toOrbPoint(hull[0]), toOrbPoint(hull[1])}
	}

	ring := make(orb.Ring, 0, len(hull)+1)
	for _, c := range hull {
		ring = append(ring, toOrbPoint(c))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// FeatureCollection renders the plan for a map layer.
// Every feature carries a "role" property, participants also carry their name and leg distances.
func (p *Plan) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, leg := range p.Legs {
		f := geojson.NewFeature(toOrbPoint(leg.Location))
		f.Properties["role"] = RoleParticipant
		f.Properties["name"] = leg.Name
		f.Properties["toCentroidKm"] = leg.ToCentroidKm
		f.Properties["toMedianKm"] = leg.ToMedianKm
		fc.Append(f)
	}

	centroid := geojson.NewFeature(toOrbPoint(p.Centroid))
	centroid.Properties["role"] = RoleCentroid
	centroid.Properties["totalKm"] = p.TotalToCentroidKm
	fc.Append(centroid)

	spherical := geojson.NewFeature(toOrbPoint(p.SphericalCenter))
	spherical.Properties["role"] = RoleSphericalCenter
	fc.Append(spherical)

	median := geojson.NewFeature(toOrbPoint(p.Median))
	median.Properties["role"] = RoleMedian
	median.Properties["totalKm"] = p.TotalToMedianKm
	median.Properties["maxKm"] = p.MaxToMedianKm
	median.Properties["iterations"] = p.MedianIterations
	median.Properties["termination"] = p.MedianTermination.String()
	fc.Append(median)

	// with fewer than 3 distinct participants the hull is the raw input, possibly with repeats
	hull := distinctCoords(p.Hull)
	if geometry := hullGeometry(hull); geometry != nil {
		f := geojson.NewFeature(geometry)
		f.Properties["role"] = RoleHull
		f.Properties["vertices"] = len(hull)
		fc.Append(f)
	}

	return fc
}
