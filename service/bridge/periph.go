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
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/brewos/MachineCore/model"
)

type periphBridge struct {
	mutex sync.Mutex
	log   zerolog.Logger
	pins  map[model.PhysicalPin]gpio.PinIO
}

// NewPeriphBridge implements the bridge on top of the periph.io host
// drivers, covering every platform periph has a driver for.
func NewPeriphBridge(log zerolog.Logger) (API, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init failed")
	}
	return &periphBridge{
		log:  log.With().Str("component", "periph-bridge").Logger(),
		pins: make(map[model.PhysicalPin]gpio.PinIO),
	}, nil
}

// pinIO returns the periph pin for the given pin number, resolving it
// on first use. The caller must hold the mutex.
func (b *periphBridge) pinIO(pin model.PhysicalPin) (gpio.PinIO, error) {
	if p, found := b.pins[pin]; found {
		return p, nil
	}
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, errors.Errorf("pin GPIO%d is not known on this host", pin)
	}
	b.pins[pin] = p
	return p, nil
}

// SetFunction records the peripheral claim for the pin.
// periph does not expose portable pin muxing, the platform owns it.
func (b *periphBridge) SetFunction(pin model.PhysicalPin, f PinFunction) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.log.Debug().Int8("pin", int8(pin)).Str("function", f.String()).Msg("function claim recorded, muxing owned by platform")
	return nil
}

// Init resolves the pin so later calls can use it.
func (b *periphBridge) Init(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	_, err := b.pinIO(pin)
	return err
}

// SetDirection configures the pin as input or output.
func (b *periphBridge) SetDirection(pin model.PhysicalPin, dir PinDirection) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	p, err := b.pinIO(pin)
	if err != nil {
		return err
	}
	if dir == PinDirectionOutput {
		err = p.Out(gpio.Low)
	} else {
		err = p.In(gpio.PullNoChange, gpio.NoEdge)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to configure pin %s", pin)
	}
	return nil
}

// Write drives the pin to the given level.
func (b *periphBridge) Write(pin model.PhysicalPin, level bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	p, err := b.pinIO(pin)
	if err != nil {
		return err
	}
	if err := p.Out(gpio.Level(level)); err != nil {
		return errors.Wrapf(err, "failed to write pin %s", pin)
	}
	return nil
}

// Read returns the current level of the pin.
func (b *periphBridge) Read(pin model.PhysicalPin) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	p, err := b.pinIO(pin)
	if err != nil {
		return false, err
	}
	return p.Read() == gpio.High, nil
}

// EnablePullUp configures the pin as input with pull up bias.
func (b *periphBridge) EnablePullUp(pin model.PhysicalPin) error {
	return b.setBias(pin, gpio.PullUp)
}

// EnablePullDown configures the pin as input with pull down bias.
func (b *periphBridge) EnablePullDown(pin model.PhysicalPin) error {
	return b.setBias(pin, gpio.PullDown)
}

func (b *periphBridge) setBias(pin model.PhysicalPin, pull gpio.Pull) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	p, err := b.pinIO(pin)
	if err != nil {
		return err
	}
	if err := p.In(pull, gpio.NoEdge); err != nil {
		return errors.Wrapf(err, "failed to set bias on pin %s", pin)
	}
	return nil
}

// InitADCConverter is a no-op; analog channels are served by an
// external converter on periph hosts.
func (b *periphBridge) InitADCConverter() error {
	b.log.Debug().Msg("no built-in analog converter on this host")
	return nil
}

// AttachADCChannel is a no-op, see InitADCConverter.
func (b *periphBridge) AttachADCChannel(pin model.PhysicalPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	b.log.Debug().Int8("pin", int8(pin)).Msg("analog channel served by external converter")
	return nil
}

func (b *periphBridge) Close() error {
	return nil
}
