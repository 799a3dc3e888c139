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
	"time"

	"github.com/brewos/MachineCore/model"
)

// singleBoiler describes machines with one boiler that switches between
// brew and steam setpoints, e.g. the Rancilio Silvia.
func singleBoiler() model.MachineConfig {
	return model.MachineConfig{
		Features: model.MachineFeatures{
			Type:        model.MachineTypeSingleBoiler,
			Name:        "Single Boiler",
			Description: "One boiler, switches between brew/steam mode",

			NumBoilers: 1,
			// The same boiler serves both, there is no separate steam side.
			HasBrewBoiler:  true,
			HasSteamBoiler: false,

			HasBrewNTC:  true,
			HasSteamNTC: false,

			NeedsModeSwitching: true,

			NumSSRs: 1,
		},
		Electrical: model.ElectricalSpec{
			BrewHeaterPower:  1200,
			SteamHeaterPower: 0,
		},
		Mode: model.NewSingleBoilerMode(model.SingleBoilerConfig{
			BrewSetpoint:  93.0,
			SteamSetpoint: 140.0,
			// Thermal stabilization time between modes.
			ModeSwitchDelay:  5 * time.Second,
			AutoReturnToBrew: true,
			SteamTimeout:     120 * time.Second,
		}),
	}
}
