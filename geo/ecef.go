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

	"github.com/golang/geo/r3"
)

// ECEFPoint is an Earth-Centered Earth-Fixed position in km on a sphere of radius EarthRadiusKm.
type ECEFPoint struct {
	X float64 `json:"x" yaml:"x" cbor:"x"`
	Y float64 `json:"y" yaml:"y" cbor:"y"`
	Z float64 `json:"z" yaml:"z" cbor:"z"`
}

func (p ECEFPoint) Vector() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Norm is the distance from the Earth's center, EarthRadiusKm for points built by ToECEF.
func (p ECEFPoint) Norm() float64 {
	return p.Vector().Norm()
}

func ToECEF(coord Coord) ECEFPoint {
	lat := deg2rad(coord.Lat)
	lng := deg2rad(coord.Lng)
	cosLat := math.Cos(lat)
	return ECEFPoint{
		X: EarthRadiusKm * cosLat * math.Cos(lng),
		Y: EarthRadiusKm * cosLat * math.Sin(lng),
		Z: EarthRadiusKm * math.Sin(lat),
	}
}

// FromECEF projects p back to latitude/longitude.
// p is assumed to lie on the sphere; z/R is clamped so rounding never leaves asin's domain.
func FromECEF(p ECEFPoint) Coord {
	sinLat := p.Z / EarthRadiusKm
	if sinLat > 1 {
		sinLat = 1
	} else if sinLat < -1 {
		sinLat = -1
	}
	return Coord{
		Lat: rad2deg(math.Asin(sinLat)),
		Lng: rad2deg(math.Atan2(p.Y, p.X)),
	}
}
