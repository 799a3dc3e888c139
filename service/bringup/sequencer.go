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

// Package bringup validates the board pin table and initializes all
// machine peripherals in a fixed order.
package bringup

import (
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/brewos/MachineCore/model"
	"github.com/brewos/MachineCore/service/boards"
	"github.com/brewos/MachineCore/service/bridge"
)

var maskAny = errors.WithStack

// Service contains the API exposed by the bring-up sequencer.
type Service interface {
	// InitializeAll validates the board pin table and then initializes
	// every peripheral group in a fixed order.
	// An error is returned only when the configuration is absent or
	// invalid; in that case no hardware has been touched.
	// Hardware faults after a clean validation are logged and counted
	// but do not abort the remaining groups.
	InitializeAll() error
}

// Dependencies of the sequencer.
type Dependencies struct {
	Log    zerolog.Logger
	Boards *boards.Registry
	Bridge bridge.API
}

// NewService instantiates a new bring-up sequencer.
func NewService(deps Dependencies) (Service, error) {
	deps.Log = deps.Log.With().Str("component", "bringup").Logger()
	return &service{
		Dependencies: deps,
	}, nil
}

type service struct {
	Dependencies
}

// InitializeAll validates the board pin table and then initializes
// every peripheral group in a fixed order.
func (s *service) InitializeAll() error {
	initializeAttemptsTotal.Inc()

	cfg, found := s.Boards.Resolve()
	if !found {
		initializeRefusedTotal.Inc()
		return errors.Wrapf(model.ConfigurationAbsentError, "no board descriptor for selection '%s'", s.Boards.Selection())
	}
	if err := cfg.Validate(); err != nil {
		initializeRefusedTotal.Inc()
		return maskAny(err)
	}

	log := s.Log.With().Str("board", cfg.Name).Logger()
	log.Info().Str("version", cfg.Version.String()).Msg("starting peripheral bring-up")

	var ae aerr.AggregateError
	s.initUARTLink(cfg.Pins, &ae)
	s.initAnalogInputs(cfg.Pins, &ae)
	s.initSPIBus(cfg.Pins, &ae)
	s.initI2CBus(cfg.Pins, &ae)
	s.initDigitalInputs(cfg.Pins, &ae)
	s.initDigitalOutputs(cfg.Pins, &ae)
	s.initPWMOutputs(cfg.Pins, &ae)

	rolesAssignedGauge.Set(float64(lo.CountBy(cfg.Pins.Roles(), func(ra model.RoleAssignment) bool {
		return ra.Pin.IsAssigned()
	})))

	if err := ae.AsError(); err != nil {
		// The table is valid, hardware faults do not refuse the boot.
		log.Error().Err(err).Msg("bring-up completed with hardware faults")
	} else {
		log.Info().Msg("bring-up complete")
	}
	return nil
}

// fault logs and counts a failed hardware call.
func (s *service) fault(label string, err error, ae *aerr.AggregateError) {
	hardwareFaultsTotal.WithLabelValues(label).Inc()
	s.Log.Warn().Err(err).Str("role", label).Msg("hardware call failed")
	ae.Add(errors.Wrapf(err, "role '%s'", label))
}

// setFunction routes an assigned pin to a peripheral function.
func (s *service) setFunction(pin model.PhysicalPin, role model.PinRole, f bridge.PinFunction, ae *aerr.AggregateError) {
	if !pin.IsAssigned() {
		return
	}
	if err := s.Bridge.SetFunction(pin, f); err != nil {
		s.fault(string(role), err, ae)
	}
}

// initOutput prepares an assigned pin as a plain output driven to the
// given safe level.
func (s *service) initOutput(pin model.PhysicalPin, role model.PinRole, level bool, ae *aerr.AggregateError) {
	if !pin.IsAssigned() {
		return
	}
	if err := s.Bridge.Init(pin); err != nil {
		s.fault(string(role), err, ae)
		return
	}
	if err := s.Bridge.SetDirection(pin, bridge.PinDirectionOutput); err != nil {
		s.fault(string(role), err, ae)
		return
	}
	if err := s.Bridge.Write(pin, level); err != nil {
		s.fault(string(role), err, ae)
	}
}

// initUARTLink routes the display link pins to the UART peripheral.
// The meter UART pins belong to the power meter driver and are not
// touched here.
func (s *service) initUARTLink(pins model.PinMapping, ae *aerr.AggregateError) {
	s.setFunction(pins.UARTLinkTX, model.RoleUARTLinkTX, bridge.FunctionUART, ae)
	s.setFunction(pins.UARTLinkRX, model.RoleUARTLinkRX, bridge.FunctionUART, ae)
	s.Log.Debug().Msg("uart link configured")
}

// initAnalogInputs powers the converter once and attaches every
// assigned channel. With no channels assigned nothing is touched.
func (s *service) initAnalogInputs(pins model.PinMapping, ae *aerr.AggregateError) {
	channels := []model.RoleAssignment{
		{Role: model.RoleADCBrewNTC, Pin: pins.ADCBrewNTC},
		{Role: model.RoleADCSteamNTC, Pin: pins.ADCSteamNTC},
		{Role: model.RoleADCPressure, Pin: pins.ADCPressure},
		{Role: model.RoleADCFlow, Pin: pins.ADCFlow},
		{Role: model.RoleADCInletTemp, Pin: pins.ADCInletTemp},
	}
	assigned := lo.Filter(channels, func(ra model.RoleAssignment, _ int) bool {
		return ra.Pin.IsAssigned()
	})
	if len(assigned) == 0 {
		return
	}
	if err := s.Bridge.InitADCConverter(); err != nil {
		s.fault("analog-converter", err, ae)
		return
	}
	for _, ra := range assigned {
		if err := s.Bridge.AttachADCChannel(ra.Pin); err != nil {
			s.fault(string(ra.Role), err, ae)
		}
	}
	s.Log.Debug().Int("channels", len(assigned)).Msg("analog inputs configured")
}

// initSPIBus routes the bus pins to the SPI peripheral and parks the
// thermocouple chip select deasserted. The device is active low, so
// the select line idles high.
func (s *service) initSPIBus(pins model.PinMapping, ae *aerr.AggregateError) {
	s.setFunction(pins.SPISCK, model.RoleSPISCK, bridge.FunctionSPI, ae)
	s.setFunction(pins.SPIMOSI, model.RoleSPIMOSI, bridge.FunctionSPI, ae)
	s.setFunction(pins.SPIMISO, model.RoleSPIMISO, bridge.FunctionSPI, ae)
	s.initOutput(pins.SPIThermocoupleCS, model.RoleSPIThermocoupleCS, true, ae)
	s.Log.Debug().Msg("spi bus configured")
}

// initI2CBus routes both lines to the I2C peripheral with the internal
// pull ups enabled. Not every board revision fits external bus pull ups.
func (s *service) initI2CBus(pins model.PinMapping, ae *aerr.AggregateError) {
	lines := []model.RoleAssignment{
		{Role: model.RoleI2CSDA, Pin: pins.I2CSDA},
		{Role: model.RoleI2CSCL, Pin: pins.I2CSCL},
	}
	for _, ra := range lines {
		if !ra.Pin.IsAssigned() {
			continue
		}
		if err := s.Bridge.SetFunction(ra.Pin, bridge.FunctionI2C); err != nil {
			s.fault(string(ra.Role), err, ae)
			continue
		}
		if err := s.Bridge.EnablePullUp(ra.Pin); err != nil {
			s.fault(string(ra.Role), err, ae)
		}
	}
	s.Log.Debug().Msg("i2c bus configured")
}

// Bias policy of a digital input, fixed by the hardware design.
type inputBias uint8

const (
	biasNone inputBias = iota
	biasPullUp
	biasPullDown
)

type inputPin struct {
	role model.PinRole
	pin  model.PhysicalPin
	bias inputBias
}

func digitalInputs(pins model.PinMapping) []inputPin {
	return []inputPin{
		// Float switches and levers close to ground.
		{model.RoleInputReservoir, pins.InputReservoir, biasPullUp},
		{model.RoleInputTankLevel, pins.InputTankLevel, biasPullUp},
		// Driven by the level probe comparator, a bias would fight it.
		{model.RoleInputSteamLevel, pins.InputSteamLevel, biasNone},
		{model.RoleInputBrewSwitch, pins.InputBrewSwitch, biasPullUp},
		{model.RoleInputSteamSwitch, pins.InputSteamSwitch, biasPullUp},
		// Low selects tank supply, high selects plumbed supply.
		{model.RoleInputWaterMode, pins.InputWaterMode, biasPullDown},
		{model.RoleInputFlowPulse, pins.InputFlowPulse, biasPullUp},
		{model.RoleInputEmergencyStop, pins.InputEmergencyStop, biasPullUp},
		// The companion controller drives this high on target weight.
		{model.RoleInputWeightStop, pins.InputWeightStop, biasPullDown},
		// Reserved, left floating.
		{model.RoleInputSpare, pins.InputSpare, biasNone},
	}
}

// initDigitalInputs prepares every assigned input with its bias policy.
func (s *service) initDigitalInputs(pins model.PinMapping, ae *aerr.AggregateError) {
	for _, in := range digitalInputs(pins) {
		if !in.pin.IsAssigned() {
			continue
		}
		if err := s.Bridge.Init(in.pin); err != nil {
			s.fault(string(in.role), err, ae)
			continue
		}
		if err := s.Bridge.SetDirection(in.pin, bridge.PinDirectionInput); err != nil {
			s.fault(string(in.role), err, ae)
			continue
		}
		var err error
		switch in.bias {
		case biasPullUp:
			err = s.Bridge.EnablePullUp(in.pin)
		case biasPullDown:
			err = s.Bridge.EnablePullDown(in.pin)
		case biasNone:
			// Left floating on purpose.
		}
		if err != nil {
			s.fault(string(in.role), err, ae)
		}
	}
	s.Log.Debug().Msg("digital inputs configured")
}

type outputPin struct {
	role model.PinRole
	pin  model.PhysicalPin
	// Level that keeps the load released.
	safeLevel bool
}

func digitalOutputs(pins model.PinMapping) []outputPin {
	return []outputPin{
		{model.RoleRelayPump, pins.RelayPump, false},
		{model.RoleRelayBrewSolenoid, pins.RelayBrewSolenoid, false},
		{model.RoleRelayWaterLED, pins.RelayWaterLED, false},
		{model.RoleRelayFillSolenoid, pins.RelayFillSolenoid, false},
		{model.RoleRelaySpare, pins.RelaySpare, false},
		{model.RoleLEDStatus, pins.LEDStatus, false},
		{model.RoleBuzzer, pins.Buzzer, false},
	}
}

// initDigitalOutputs drives every assigned output to its safe level.
// All relays and indicators are active high, so everything starts
// released.
func (s *service) initDigitalOutputs(pins model.PinMapping, ae *aerr.AggregateError) {
	for _, out := range digitalOutputs(pins) {
		s.initOutput(out.pin, out.role, out.safeLevel, ae)
	}
	s.Log.Debug().Msg("digital outputs configured")
}

// initPWMOutputs routes the SSR pins to the PWM peripheral.
// Slice and duty setup belongs to the control layer.
func (s *service) initPWMOutputs(pins model.PinMapping, ae *aerr.AggregateError) {
	s.setFunction(pins.SSRBrew, model.RoleSSRBrew, bridge.FunctionPWM, ae)
	s.setFunction(pins.SSRSteam, model.RoleSSRSteam, bridge.FunctionPWM, ae)
	s.Log.Debug().Msg("pwm outputs configured")
}
