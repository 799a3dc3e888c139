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
)

// PinOp identifies one kind of pin mutation.
type PinOp string

const (
	OpSetFunction    PinOp = "set-function"
	OpInit           PinOp = "init"
	OpSetDirection   PinOp = "set-direction"
	OpWrite          PinOp = "write"
	OpEnablePullUp   PinOp = "enable-pull-up"
	OpEnablePullDown PinOp = "enable-pull-down"
	OpInitConverter  PinOp = "init-converter"
	OpAttachChannel  PinOp = "attach-channel"
)

// PinEvent describes a single observed pin mutation.
// Converter wide events carry the unassigned pin marker.
type PinEvent struct {
	Pin       model.PhysicalPin `json:"pin"`
	Op        PinOp             `json:"op"`
	Function  PinFunction       `json:"function,omitempty"`
	Direction PinDirection      `json:"direction,omitempty"`
	Level     bool              `json:"level,omitempty"`
}

// EventSource is implemented by bridges that can report pin mutations
// as they happen.
type EventSource interface {
	// RegisterPinEventReceiver calls the given callback for every pin
	// mutation until the returned cancel function is called.
	RegisterPinEventReceiver(cb func(PinEvent)) context.CancelFunc
}

// PinSnapshot holds the current state of a single simulated pin.
type PinSnapshot struct {
	Function    PinFunction  `json:"function"`
	Initialized bool         `json:"initialized"`
	Direction   PinDirection `json:"direction"`
	Level       bool         `json:"level"`
	PullUp      bool         `json:"pull-up"`
	PullDown    bool         `json:"pull-down"`
	ADCAttached bool         `json:"adc-attached"`
}

// Recorder is implemented by bridges that journal their mutations and
// allow external stimulation. The virtual bridge implements it.
type Recorder interface {
	// Journal returns a copy of all observed mutations in order.
	Journal() []PinEvent
	// DrivePin simulates an external device driving the given pin.
	DrivePin(pin model.PhysicalPin, level bool)
	// ReleasePin removes the external drive from the given pin.
	ReleasePin(pin model.PhysicalPin)
	// PinSnapshot returns the current state of the given pin.
	// Returns false if the pin was never touched.
	PinSnapshot(pin model.PhysicalPin) (PinSnapshot, bool)
}
