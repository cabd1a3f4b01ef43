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
	"testing"
	"time"
)

func TestMaxAndAvgTimeRangeGauge(t *testing.T) {
	gauge := NewMaxAndAvgTimeRangeGauge(time.Hour, time.Minute)
	now := time.Now()
	gauge.Sample(now, 10)
	gauge.Sample(now, 30)
	gauge.Sample(now.Add(-2*time.Hour), 1000)

	if got := gauge.GetMax(); got != 30 {
		t.Errorf("max = %d, expected 30", got)
	}
	if got := gauge.GetAvg(); got != 20 {
		t.Errorf("avg = %v, expected 20", got)
	}
	if got := gauge.GetTotalCount(); got != 2 {
		t.Errorf("count = %d, expected 2", got)
	}

	data := gauge.Snapshot().(MaxAndAvgTimeRangeGaugeData)
	if len(data.Max) != 60 || data.Window != time.Hour.Milliseconds() {
		t.Errorf("unexpected snapshot shape: %d slots, window %d", len(data.Max), data.Window)
	}
}

func TestTimeRangeCounter(t *testing.T) {
	counter := NewTimeRangeCounter(10*time.Minute, time.Minute)
	now := time.Now()
	counter.Inc(now)
	counter.Add(now, 4)
	counter.Inc(now.Add(time.Hour))

	if got := counter.Sum(); got != 5 {
		t.Errorf("sum = %d, expected 5", got)
	}
	if counter.Type() != "TIME_RANGE_COUNTER" {
		t.Errorf("unexpected type %s", counter.Type())
	}
}

func TestShiftSlots(t *testing.T) {
	slots := []int64{1, 2, 3, 4}
	shiftSlots(slots, 1)
	if slots[0] != 2 || slots[2] != 4 || slots[3] != 0 {
		t.Errorf("unexpected shift result %v", slots)
	}
	shiftSlots(slots, 10)
	for _, v := range slots {
		if v != 0 {
			t.Fatalf("expected cleared slots, got %v", slots)
		}
	}
}

func TestRegistry(t *testing.T) {
	defer UnregisterMetric("test.counter")

	counter := RegisterMetric[*TimeRangeCounter](Metric{
		Unit:      "COUNT",
		Name:      "test.counter",
		Collector: NewTimeRangeCounter(time.Hour, time.Minute),
	})
	counter.Inc(time.Now())

	metric, ok := GetMetric("test.counter")
	if !ok || metric.Collector != counter {
		t.Fatalf("metric not registered")
	}

	found := false
	for _, data := range CollectMetricsData() {
		if data.Name == "test.counter" {
			found = true
			if data.Type != "TIME_RANGE_COUNTER" || data.Unit != "COUNT" {
				t.Errorf("unexpected metric data %+v", data)
			}
		}
	}
	if !found {
		t.Errorf("registered metric missing from collected data")
	}
}

func TestRegisterMetricPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for metric without a name")
		}
	}()
	RegisterMetric[*TimeRangeCounter](Metric{Collector: NewTimeRangeCounter(time.Hour, time.Minute)})
}
