// Copyright 2025 The BrewOS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bridge

import (
	"context"

	"github.com/brewos/MachineCore/model"
	"github.com/brewos/MachineCore/pkg/metrics"
)

const (
	subSystem = "bridge"
)

var (
	// Total number of hardware calls per operation
	callsTotal = metrics.MustRegisterCounterVec(subSystem,
		"calls_total",
		"Total number of hardware calls per operation",
		"op")
	// Total number of failed hardware calls per operation
	callErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"call_errors_total",
		"Total number of failed hardware calls per operation",
		"op")
)

// WithMetrics wraps the given bridge so that every call is counted.
// Event and journal access is forwarded when the wrapped bridge
// supports it.
func WithMetrics(api API) API {
	return &metricsBridge{next: api}
}

type metricsBridge struct {
	next API
}

func (m *metricsBridge) observe(op string, err error) error {
	callsTotal.WithLabelValues(op).Inc()
	if err != nil {
		callErrorsTotal.WithLabelValues(op).Inc()
	}
	return err
}

func (m *metricsBridge) SetFunction(pin model.PhysicalPin, f PinFunction) error {
	return m.observe(string(OpSetFunction), m.next.SetFunction(pin, f))
}

func (m *metricsBridge) Init(pin model.PhysicalPin) error {
	return m.observe(string(OpInit), m.next.Init(pin))
}

func (m *metricsBridge) SetDirection(pin model.PhysicalPin, dir PinDirection) error {
	return m.observe(string(OpSetDirection), m.next.SetDirection(pin, dir))
}

func (m *metricsBridge) Write(pin model.PhysicalPin, level bool) error {
	return m.observe(string(OpWrite), m.next.Write(pin, level))
}

func (m *metricsBridge) Read(pin model.PhysicalPin) (bool, error) {
	level, err := m.next.Read(pin)
	return level, m.observe("read", err)
}

func (m *metricsBridge) EnablePullUp(pin model.PhysicalPin) error {
	return m.observe(string(OpEnablePullUp), m.next.EnablePullUp(pin))
}

func (m *metricsBridge) EnablePullDown(pin model.PhysicalPin) error {
	return m.observe(string(OpEnablePullDown), m.next.EnablePullDown(pin))
}

func (m *metricsBridge) InitADCConverter() error {
	return m.observe(string(OpInitConverter), m.next.InitADCConverter())
}

func (m *metricsBridge) AttachADCChannel(pin model.PhysicalPin) error {
	return m.observe(string(OpAttachChannel), m.next.AttachADCChannel(pin))
}

func (m *metricsBridge) Close() error {
	return m.next.Close()
}

func (m *metricsBridge) RegisterPinEventReceiver(cb func(PinEvent)) context.CancelFunc {
	if src, ok := m.next.(EventSource); ok {
		return src.RegisterPinEventReceiver(cb)
	}
	return func() {}
}

func (m *metricsBridge) Journal() []PinEvent {
	if rec, ok := m.next.(Recorder); ok {
		return rec.Journal()
	}
	return nil
}

func (m *metricsBridge) DrivePin(pin model.PhysicalPin, level bool) {
	if rec, ok := m.next.(Recorder); ok {
		rec.DrivePin(pin, level)
	}
}

func (m *metricsBridge) ReleasePin(pin model.PhysicalPin) {
	if rec, ok := m.next.(Recorder); ok {
		rec.ReleasePin(pin)
	}
}

func (m *metricsBridge) PinSnapshot(pin model.PhysicalPin) (PinSnapshot, bool) {
	if rec, ok := m.next.(Recorder); ok {
		return rec.PinSnapshot(pin)
	}
	return PinSnapshot{}, false
}
