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
	"errors"
	"fmt"

	"github.com/golang/geo/s1"
)

// EarthRadiusKm is the radius of the idealized spherical Earth used by every routine in this package.
const EarthRadiusKm = 6371.0

// Coord is a latitude/longitude pair in degrees.
// Range validity is the caller's responsibility, see IsValid.
type Coord struct {
	Lat float64 `json:"lat" yaml:"lat" cbor:"lat"`
	Lng float64 `json:"lng" yaml:"lng" cbor:"lng"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lng)
}

// IsValid reports whether lat is in [-90, 90] and lng in [-180, 180].
func (c Coord) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// ErrInvalidArgument is matched by every error returned for a rejected precondition.
var ErrInvalidArgument = errors.New("invalid argument")

type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrInvalidArgument, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func newEmptyPointsError(op string) error {
	return &InvalidArgumentError{Op: op, Reason: "empty point set"}
}

func deg2rad(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

func rad2deg(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}
