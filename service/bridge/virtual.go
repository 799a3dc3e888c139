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
	"sync"

	"github.com/mattn/go-pubsub"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/brewos/MachineCore/model"
)

// Analog capable pins of the controller.
const adcFirstPin = model.PhysicalPin(26)

type pinState struct {
	function    PinFunction
	initialized bool
	direction   PinDirection
	level       bool
	pullUp      bool
	pullDown    bool
	adcAttached bool
	// Level forced by a simulated external device, nil when floating.
	driven *bool
}

type virtualBridge struct {
	mutex       sync.Mutex
	log         zerolog.Logger
	pins        map[model.PhysicalPin]*pinState
	journal     []PinEvent
	converterUp bool
	events      *pubsub.PubSub
}

// NewVirtualBridge implements the bridge for a simulated machine.
// All pin state is kept in memory and every mutation is journaled,
// so tests and the UI can observe exactly what bring-up did.
func NewVirtualBridge(log zerolog.Logger) (API, error) {
	return &virtualBridge{
		log:    log.With().Str("component", "virtual-bridge").Logger(),
		pins:   make(map[model.PhysicalPin]*pinState),
		events: pubsub.New(),
	}, nil
}

// pin returns the state of the given pin, creating it when first touched.
// The caller must hold the mutex.
func (b *virtualBridge) pin(p model.PhysicalPin) *pinState {
	st, found := b.pins[p]
	if !found {
		st = &pinState{}
		b.pins[p] = st
	}
	return st
}

// record appends the event to the journal and publishes it.
// The caller must hold the mutex.
func (b *virtualBridge) record(evt PinEvent) {
	b.journal = append(b.journal, evt)
	b.events.Pub(evt)
}

func checkPin(p model.PhysicalPin) error {
	if !p.IsValid() {
		return errors.Wrapf(model.InvalidPinError, "pin %s is outside 0..%d", p, model.MaxPhysicalPin)
	}
	return nil
}

// SetFunction routes the given pin to a peripheral function.
func (b *virtualBridge) SetFunction(pin model.PhysicalPin, f PinFunction) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.pin(pin).function = f
	b.record(PinEvent{Pin: pin, Op: OpSetFunction, Function: f})
	b.log.Debug().Int8("pin", int8(pin)).Str("function", f.String()).Msg("set function")
	return nil
}

// Init prepares the given pin for software controlled I/O.
func (b *virtualBridge) Init(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st := b.pin(pin)
	st.initialized = true
	st.function = FunctionSIO
	b.record(PinEvent{Pin: pin, Op: OpInit})
	return nil
}

// SetDirection configures an initialized pin as input or output.
func (b *virtualBridge) SetDirection(pin model.PhysicalPin, dir PinDirection) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st := b.pin(pin)
	if !st.initialized {
		return errors.Errorf("pin %s is not initialized", pin)
	}
	st.direction = dir
	b.record(PinEvent{Pin: pin, Op: OpSetDirection, Direction: dir})
	return nil
}

// Write drives an initialized output pin to the given level.
func (b *virtualBridge) Write(pin model.PhysicalPin, level bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st := b.pin(pin)
	if !st.initialized || st.direction != PinDirectionOutput {
		return errors.Errorf("pin %s is not an initialized output", pin)
	}
	st.level = level
	b.record(PinEvent{Pin: pin, Op: OpWrite, Level: level})
	return nil
}

// Read returns the current level of an initialized pin.
// Inputs read their externally driven level when present, otherwise the
// level implied by their bias. A floating input reads low.
func (b *virtualBridge) Read(pin model.PhysicalPin) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st, found := b.pins[pin]
	if !found || !st.initialized {
		return false, errors.Errorf("pin %s is not initialized", pin)
	}
	if st.direction == PinDirectionOutput {
		return st.level, nil
	}
	if st.driven != nil {
		return *st.driven, nil
	}
	return st.pullUp, nil
}

// EnablePullUp activates the internal pull up resistor of the pin.
func (b *virtualBridge) EnablePullUp(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st := b.pin(pin)
	st.pullUp = true
	st.pullDown = false
	b.record(PinEvent{Pin: pin, Op: OpEnablePullUp})
	return nil
}

// EnablePullDown activates the internal pull down resistor of the pin.
func (b *virtualBridge) EnablePullDown(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st := b.pin(pin)
	st.pullUp = false
	st.pullDown = true
	b.record(PinEvent{Pin: pin, Op: OpEnablePullDown})
	return nil
}

// InitADCConverter powers up the analog converter.
func (b *virtualBridge) InitADCConverter() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.converterUp = true
	b.record(PinEvent{Pin: model.PinUnassigned, Op: OpInitConverter})
	return nil
}

// AttachADCChannel hands the given pin over to the analog converter.
func (b *virtualBridge) AttachADCChannel(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if !b.converterUp {
		return errors.Errorf("analog converter is not initialized")
	}
	if pin < adcFirstPin {
		return errors.Errorf("pin %s is not analog capable", pin)
	}
	st := b.pin(pin)
	st.adcAttached = true
	b.record(PinEvent{Pin: pin, Op: OpAttachChannel})
	return nil
}

func (b *virtualBridge) Close() error {
	return nil
}

// RegisterPinEventReceiver calls the given callback for every pin
// mutation until the returned cancel function is called.
func (b *virtualBridge) RegisterPinEventReceiver(cb func(PinEvent)) context.CancelFunc {
	wcb := func(evt PinEvent) {
		cb(evt)
	}
	b.events.Sub(wcb)
	return func() {
		b.events.Leave(wcb)
	}
}

// Journal returns a copy of all observed mutations in order.
func (b *virtualBridge) Journal() []PinEvent {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	result := make([]PinEvent, len(b.journal))
	copy(result, b.journal)
	return result
}

// DrivePin simulates an external device driving the given pin.
func (b *virtualBridge) DrivePin(pin model.PhysicalPin, level bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st := b.pin(pin)
	st.driven = &level
}

// ReleasePin removes the external drive from the given pin.
func (b *virtualBridge) ReleasePin(pin model.PhysicalPin) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.pin(pin).driven = nil
}

// PinSnapshot returns the current state of the given pin.
// Returns false if the pin was never touched.
func (b *virtualBridge) PinSnapshot(pin model.PhysicalPin) (PinSnapshot, bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	st, found := b.pins[pin]
	if !found {
		return PinSnapshot{}, false
	}
	return PinSnapshot{
		Function:    st.function,
		Initialized: st.initialized,
		Direction:   st.direction,
		Level:       st.level,
		PullUp:      st.pullUp,
		PullDown:    st.pullDown,
		ADCAttached: st.adcAttached,
	}, true
}
