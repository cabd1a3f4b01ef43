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

package metrics

import (
	"sync"
	"time"
)

const maxTimeRangeSlots = 10000

func alignToInterval(t time.Time, interval time.Duration) time.Time {
	return t.Truncate(interval)
}

// timeRing is a sliding window of fixed-width slots, the newest slot is the last one.
// Callers hold the owner's lock.
type timeRing struct {
	window       time.Duration
	interval     time.Duration
	lastInterval int64
	size         int
}

func newTimeRing(window, interval time.Duration) timeRing {
	if window <= 0 {
		window = time.Hour
	}
	if interval <= 0 {
		interval = time.Minute
	}

	size := max(int(window/interval), 1)
	if size > maxTimeRangeSlots {
		size = maxTimeRangeSlots
		interval = window / time.Duration(size)
	}

	return timeRing{
		window:       window,
		interval:     interval,
		lastInterval: alignToInterval(time.Now(), interval).UnixMilli(),
		size:         size,
	}
}

// advance moves the window to now and returns how many slots must be shifted out.
func (r *timeRing) advance(now time.Time) int {
	nowMs := alignToInterval(now, r.interval).UnixMilli()
	if nowMs <= r.lastInterval {
		return 0
	}

	passed := (nowMs - r.lastInterval) / r.interval.Milliseconds()
	r.lastInterval = nowMs
	return int(min(passed, int64(r.size)))
}

func (r *timeRing) index(timestamp time.Time) (int, bool) {
	timestampMs := alignToInterval(timestamp, r.interval).UnixMilli()
	intervalMs := r.interval.Milliseconds()

	oldestAllowed := r.lastInterval - int64(r.size-1)*intervalMs
	if timestampMs < oldestAllowed || timestampMs > r.lastInterval {
		return 0, false
	}
	return r.size - 1 - int((r.lastInterval-timestampMs)/intervalMs), true
}

func shiftSlots(slots []int64, n int) {
	if n >= len(slots) {
		clear(slots)
		return
	}
	copy(slots, slots[n:])
	clear(slots[len(slots)-n:])
}

// TimeRangeCounter counts events over a sliding window.
type TimeRangeCounter struct {
	mu       sync.Mutex
	ring     timeRing
	counters []int64
}

func NewTimeRangeCounter(window, interval time.Duration) *TimeRangeCounter {
	ring := newTimeRing(window, interval)
	return &TimeRangeCounter{ring: ring, counters: make([]int64, ring.size)}
}

func (c *TimeRangeCounter) Inc(timestamp time.Time) {
	c.Add(timestamp, 1)
}

func (c *TimeRangeCounter) Add(timestamp time.Time, amount int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	shiftSlots(c.counters, c.ring.advance(time.Now()))
	if index, ok := c.ring.index(timestamp); ok {
		c.counters[index] += amount
	}
}

func (c *TimeRangeCounter) Sum() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	shiftSlots(c.counters, c.ring.advance(time.Now()))
	var sum int64
	for _, count := range c.counters {
		sum += count
	}
	return sum
}

type TimeRangeCounterData struct {
	Window       int64   `json:"window" yaml:"window"`
	LastInterval int64   `json:"lastInterval" yaml:"lastInterval"`
	Counters     []int64 `json:"counters" yaml:"counters"`
}

func (c *TimeRangeCounter) Type() string {
	return "TIME_RANGE_COUNTER"
}

func (c *TimeRangeCounter) Snapshot() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	shiftSlots(c.counters, c.ring.advance(time.Now()))
	return TimeRangeCounterData{
		Window:       c.ring.window.Milliseconds(),
		LastInterval: c.ring.lastInterval,
		Counters:     append([]int64(nil), c.counters...),
	}
}

// MaxAndAvgTimeRangeGauge tracks max, sum and count of samples over a sliding window.
type MaxAndAvgTimeRangeGauge struct {
	mu    sync.Mutex
	ring  timeRing
	max   []int64
	sum   []int64
	count []int64
}

func NewMaxAndAvgTimeRangeGauge(window, interval time.Duration) *MaxAndAvgTimeRangeGauge {
	ring := newTimeRing(window, interval)
	return &MaxAndAvgTimeRangeGauge{
		ring:  ring,
		max:   make([]int64, ring.size),
		sum:   make([]int64, ring.size),
		count: make([]int64, ring.size),
	}
}

func (g *MaxAndAvgTimeRangeGauge) update(now time.Time) {
	n := g.ring.advance(now)
	shiftSlots(g.max, n)
	shiftSlots(g.sum, n)
	shiftSlots(g.count, n)
}

func (g *MaxAndAvgTimeRangeGauge) Sample(timestamp time.Time, value int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.update(time.Now())
	index, ok := g.ring.index(timestamp)
	if !ok {
		return
	}

	if g.count[index] == 0 || value > g.max[index] {
		g.max[index] = value
	}
	g.sum[index] += value
	g.count[index]++
}

func (g *MaxAndAvgTimeRangeGauge) GetMax() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.update(time.Now())
	var result int64
	for i, count := range g.count {
		if count > 0 && g.max[i] > result {
			result = g.max[i]
		}
	}
	return result
}

func (g *MaxAndAvgTimeRangeGauge) GetAvg() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.update(time.Now())
	var totalSum, totalCount int64
	for i, count := range g.count {
		totalSum += g.sum[i]
		totalCount += count
	}
	if totalCount == 0 {
		return 0
	}
	return float64(totalSum) / float64(totalCount)
}

func (g *MaxAndAvgTimeRangeGauge) GetTotalCount() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.update(time.Now())
	var total int64
	for _, count := range g.count {
		total += count
	}
	return total
}

type MaxAndAvgTimeRangeGaugeData struct {
	Window       int64   `json:"window" yaml:"window"`
	LastInterval int64   `json:"lastInterval" yaml:"lastInterval"`
	Max          []int64 `json:"max" yaml:"max"`
	Sum          []int64 `json:"sum" yaml:"sum"`
	Count        []int64 `json:"count" yaml:"count"`
}

func (g *MaxAndAvgTimeRangeGauge) Type() string {
	return "MAX_AVG_TIME_RANGE_GAUGE"
}

func (g *MaxAndAvgTimeRangeGauge) Snapshot() any {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.update(time.Now())
	return MaxAndAvgTimeRangeGaugeData{
		Window:       g.ring.window.Milliseconds(),
		LastInterval: g.ring.lastInterval,
		Max:          append([]int64(nil), g.max...),
		Sum:          append([]int64(nil), g.sum...),
		Count:        append([]int64(nil), g.count...),
	}
}
