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

// Package boards carries the sealed set of supported controller board
// descriptors. Boards are selected at build time and resolved once.
package boards

import (
	"github.com/brewos/MachineCore/model"
)

// ecmV1 is the dual boiler controller board for the ECM Synchronika.
func ecmV1() model.BoardConfig {
	pins := model.UnassignedPinMapping()

	pins.UARTLinkTX = 0
	pins.UARTLinkRX = 1
	pins.UARTMeterTX = 6
	pins.UARTMeterRX = 7

	pins.I2CSDA = 8
	pins.I2CSCL = 9

	pins.SPIMISO = 16
	pins.SPIThermocoupleCS = 17
	pins.SPISCK = 18

	pins.ADCBrewNTC = 26
	pins.ADCSteamNTC = 27
	pins.ADCPressure = 28

	pins.InputReservoir = 2
	pins.InputTankLevel = 3
	pins.InputSteamLevel = 4
	pins.InputBrewSwitch = 5
	pins.InputWeightStop = 21
	pins.InputSpare = 22
	pins.InputWaterMode = 23

	pins.RelayWaterLED = 10
	pins.RelayPump = 11
	pins.RelayBrewSolenoid = 12
	pins.RelaySpare = 20

	pins.SSRBrew = 13
	pins.SSRSteam = 14

	pins.LEDStatus = 15
	pins.Buzzer = 19

	return model.BoardConfig{
		Type:        model.BoardTypeECMV1,
		Version:     model.BoardVersion{Major: 1, Minor: 0, Patch: 0},
		Name:        "ECM Synchronika V1",
		Description: "Dual boiler controller board for the ECM Synchronika",
		Pins:        pins,
	}
}

// silviaV1 is the single boiler controller board for the Rancilio Silvia.
// It has no steam boiler instrumentation and no thermocouple interface.
func silviaV1() model.BoardConfig {
	pins := model.UnassignedPinMapping()

	pins.UARTLinkTX = 0
	pins.UARTLinkRX = 1

	pins.I2CSDA = 8
	pins.I2CSCL = 9

	pins.ADCBrewNTC = 26

	pins.InputReservoir = 2
	pins.InputSteamSwitch = 4
	pins.InputBrewSwitch = 5

	pins.RelayPump = 11
	pins.RelayBrewSolenoid = 12

	pins.SSRBrew = 13

	pins.LEDStatus = 15

	return model.BoardConfig{
		Type:        model.BoardTypeSilviaV1,
		Version:     model.BoardVersion{Major: 1, Minor: 0, Patch: 0},
		Name:        "Rancilio Silvia V1",
		Description: "Single boiler controller board for the Rancilio Silvia",
		Pins:        pins,
	}
}

// Descriptors returns the built in board descriptor set.
func Descriptors() []model.BoardConfig {
	return []model.BoardConfig{
		ecmV1(),
		silviaV1(),
	}
}
