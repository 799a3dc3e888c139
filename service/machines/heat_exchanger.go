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

package machines

import (
	"github.com/brewos/MachineCore/model"
)

// heatExchanger describes E61 style machines where brew water passes
// through an exchanger in the steam boiler, e.g. the Bezzera BZ10.
func heatExchanger() model.MachineConfig {
	return model.MachineConfig{
		Features: model.MachineFeatures{
			Type:        model.MachineTypeHeatExchanger,
			Name:        "Heat Exchanger",
			Description: "Steam boiler with passive heat exchanger for brew",

			NumBoilers:     1,
			HasBrewBoiler:  false,
			HasSteamBoiler: true,

			IsHeatExchanger:       true,
			SteamProvidesBrewHeat: true,

			HasBrewNTC:  false,
			HasSteamNTC: true,

			HasSteamLevelProbe: true,
			HasAutoFill:        true,

			NumSSRs: 1,
		},
		Electrical: model.ElectricalSpec{
			// Brew heat is passive, only the steam boiler has an element.
			BrewHeaterPower:  0,
			SteamHeaterPower: 1400,
		},
		Mode: model.NewHeatExchangerMode(model.HeatExchangerConfig{
			ControlMode: model.HXControlTemperature,
			// Lower than pure steam operation because of the exchanger.
			SteamSetpoint:           125.0,
			PressureSetpoint:        1.0,
			PressureHysteresis:      0.1,
			PressurestatHasFeedback: false,
		}),
	}
}
