//go:build linux

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
	"sync"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/warthog618/go-gpiocdev"

	"github.com/brewos/MachineCore/model"
)

const (
	rpiChipName = "gpiochip0"
	rpiConsumer = "brewos"
)

type rpiBridge struct {
	mutex sync.Mutex
	log   zerolog.Logger
	chip  *gpiocdev.Chip
	lines map[model.PhysicalPin]*gpiocdev.Line
	// Pins routed to a peripheral function. The device tree owns their
	// mux and bias, so line requests on them are not forwarded.
	funcPins map[model.PhysicalPin]PinFunction
}

// NewRPIBridge implements the bridge on top of the Linux GPIO
// character device.
func NewRPIBridge(log zerolog.Logger) (API, error) {
	chip, err := gpiocdev.NewChip(rpiChipName, gpiocdev.WithConsumer(rpiConsumer))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", rpiChipName)
	}
	return &rpiBridge{
		log:      log.With().Str("component", "rpi-bridge").Logger(),
		chip:     chip,
		lines:    make(map[model.PhysicalPin]*gpiocdev.Line),
		funcPins: make(map[model.PhysicalPin]PinFunction),
	}, nil
}

// SetFunction records the peripheral claim for the pin.
// Pin muxing is owned by the device tree on this platform.
func (b *rpiBridge) SetFunction(pin model.PhysicalPin, f PinFunction) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.funcPins[pin] = f
	b.log.Debug().Int8("pin", int8(pin)).Str("function", f.String()).Msg("function claim recorded, muxing owned by device tree")
	return nil
}

// Init requests the line for the given pin without changing its state.
func (b *rpiBridge) Init(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if _, found := b.lines[pin]; found {
		return nil
	}
	line, err := b.chip.RequestLine(int(pin), gpiocdev.AsIs)
	if err != nil {
		return errors.Wrapf(err, "failed to request line %s", pin)
	}
	b.lines[pin] = line
	return nil
}

// line returns the requested line for the given pin.
// The caller must hold the mutex.
func (b *rpiBridge) line(pin model.PhysicalPin) (*gpiocdev.Line, error) {
	line, found := b.lines[pin]
	if !found {
		return nil, errors.Errorf("line %s has not been requested", pin)
	}
	return line, nil
}

// SetDirection reconfigures the line as input or output.
func (b *rpiBridge) SetDirection(pin model.PhysicalPin, dir PinDirection) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	line, err := b.line(pin)
	if err != nil {
		return err
	}
	if dir == PinDirectionOutput {
		err = line.Reconfigure(gpiocdev.AsOutput(0))
	} else {
		err = line.Reconfigure(gpiocdev.AsInput)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to reconfigure line %s", pin)
	}
	return nil
}

// Write drives the line to the given level.
func (b *rpiBridge) Write(pin model.PhysicalPin, level bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	line, err := b.line(pin)
	if err != nil {
		return err
	}
	value := 0
	if level {
		value = 1
	}
	if err := line.SetValue(value); err != nil {
		return errors.Wrapf(err, "failed to write line %s", pin)
	}
	return nil
}

// Read returns the current level of the line.
func (b *rpiBridge) Read(pin model.PhysicalPin) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	line, err := b.line(pin)
	if err != nil {
		return false, err
	}
	value, err := line.Value()
	if err != nil {
		return false, errors.Wrapf(err, "failed to read line %s", pin)
	}
	return value != 0, nil
}

// EnablePullUp activates the pull up bias of the pin.
// Pins claimed by a peripheral function keep the bias set by the
// device tree.
func (b *rpiBridge) EnablePullUp(pin model.PhysicalPin) error {
	return b.setBias(pin, gpiocdev.WithPullUp)
}

// EnablePullDown activates the pull down bias of the pin.
func (b *rpiBridge) EnablePullDown(pin model.PhysicalPin) error {
	return b.setBias(pin, gpiocdev.WithPullDown)
}

func (b *rpiBridge) setBias(pin model.PhysicalPin, bias gpiocdev.LineBias) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if f, found := b.funcPins[pin]; found {
		b.log.Debug().Int8("pin", int8(pin)).Str("function", f.String()).Msg("bias left to device tree")
		return nil
	}
	line, err := b.line(pin)
	if err != nil {
		return err
	}
	if err := line.Reconfigure(gpiocdev.AsInput, bias); err != nil {
		return errors.Wrapf(err, "failed to set bias on line %s", pin)
	}
	return nil
}

// InitADCConverter is a no-op; this platform has no built-in converter
// and analog channels are served by an external chip.
func (b *rpiBridge) InitADCConverter() error {
	b.log.Debug().Msg("no built-in analog converter on this platform")
	return nil
}

// AttachADCChannel is a no-op, see InitADCConverter.
func (b *rpiBridge) AttachADCChannel(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.log.Debug().Int8("pin", int8(pin)).Msg("analog channel served by external converter")
	return nil
}

// Close releases all requested lines and the chip.
func (b *rpiBridge) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	var ae aerr.AggregateError
	for pin, line := range b.lines {
		if err := line.Close(); err != nil {
			ae.Add(errors.Wrapf(err, "failed to close line %s", pin))
		}
	}
	b.lines = make(map[model.PhysicalPin]*gpiocdev.Line)
	if err := b.chip.Close(); err != nil {
		ae.Add(errors.Wrap(err, "failed to close chip"))
	}
	return ae.AsError()
}
