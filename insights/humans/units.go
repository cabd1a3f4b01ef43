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

package humans

import (
	"fmt"
)

func Count(count float64) string {
	if count >= 1000000000 {
		return fmt.Sprintf("%.2fB", count/1000000000)
	}
	if count >= 1000000 {
		return fmt.Sprintf("%.2fM", count/1000000)
	}
	if count >= 1000 {
		return fmt.Sprintf("%.2fk", count/1000)
	}
	return fmt.Sprintf("%.0f", count)
}

var byteUnits = []struct {
	size float64
	unit string
}{
	{1 << 40, "TiB"},
	{1 << 30, "GiB"},
	{1 << 20, "MiB"},
	{1 << 10, "KiB"},
}

func Bytes(bytes uint64) string {
	for _, u := range byteUnits {
		if float64(bytes) >= u.size {
			return fmt.Sprintf("%.2f%s", float64(bytes)/u.size, u.unit)
		}
	}
	if bytes > 1 {
		return fmt.Sprintf("%dbytes", bytes)
	}
	return fmt.Sprintf("%dbyte", bytes)
}

// DistanceKm switches to meters below 1km and drops decimals above 1000km.
func DistanceKm(km float64) string {
	if km < 0 {
		return "unknown"
	}
	if km < 1 {
		return DistanceMeters(km * 1000)
	}
	if km >= 1000 {
		return fmt.Sprintf("%.0fkm", km)
	}
	return fmt.Sprintf("%.2fkm", km)
}

func DistanceMeters(meters float64) string {
	if meters < 0 {
		return "unknown"
	}
	if meters >= 1000 {
		return DistanceKm(meters / 1000)
	}
	if meters < 1 {
		return fmt.Sprintf("%.0fmm", meters*1000)
	}
	return fmt.Sprintf("%.1fm", meters)
}

func Degrees(deg float64) string {
	return fmt.Sprintf("%.6f°", deg)
}
