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
	"github.com/brewos/MachineCore/model"
)

// PinFunction selects the peripheral a pin is routed to.
type PinFunction uint8

const (
	// FunctionSIO is plain software controlled I/O.
	FunctionSIO PinFunction = iota
	FunctionUART
	FunctionSPI
	FunctionI2C
	FunctionPWM
)

func (f PinFunction) String() string {
	switch f {
	case FunctionSIO:
		return "sio"
	case FunctionUART:
		return "uart"
	case FunctionSPI:
		return "spi"
	case FunctionI2C:
		return "i2c"
	case FunctionPWM:
		return "pwm"
	default:
		return "unknown"
	}
}

// PinDirection of a software controlled pin.
type PinDirection uint8

const (
	PinDirectionInput PinDirection = iota
	PinDirectionOutput
)

func (d PinDirection) String() string {
	if d == PinDirectionOutput {
		return "output"
	}
	return "input"
}

// API of the bridge between the bring-up layer and the controller hardware.
// Every pin mutation of the machine core goes through this interface, so a
// simulated implementation can stand in for real hardware.
type API interface {
	// SetFunction routes the given pin to a peripheral function.
	SetFunction(pin model.PhysicalPin, f PinFunction) error
	// Init prepares the given pin for software controlled I/O.
	Init(pin model.PhysicalPin) error
	// SetDirection configures an initialized pin as input or output.
	SetDirection(pin model.PhysicalPin, dir PinDirection) error
	// Write drives an initialized output pin to the given level.
	Write(pin model.PhysicalPin, level bool) error
	// Read returns the current level of an initialized pin.
	Read(pin model.PhysicalPin) (bool, error)
	// EnablePullUp activates the internal pull up resistor of the pin.
	EnablePullUp(pin model.PhysicalPin) error
	// EnablePullDown activates the internal pull down resistor of the pin.
	EnablePullDown(pin model.PhysicalPin) error

	// Access to the analog converter

	// InitADCConverter powers up the analog converter.
	InitADCConverter() error
	// AttachADCChannel hands the given pin over to the analog converter.
	AttachADCChannel(pin model.PhysicalPin) error

	Close() error
}
