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

// dualBoiler describes machines with independent brew and steam boilers,
// e.g. the ECM Synchronika or Profitec Pro 700.
func dualBoiler() model.MachineConfig {
	return model.MachineConfig{
		Features: model.MachineFeatures{
			Type:        model.MachineTypeDualBoiler,
			Name:        "Dual Boiler",
			Description: "Two independent boilers (brew + steam)",

			NumBoilers:     2,
			HasBrewBoiler:  true,
			HasSteamBoiler: true,

			HasBrewNTC:  true,
			HasSteamNTC: true,

			HasSteamLevelProbe: true,

			NumSSRs:             2,
			HasSeparateSteamSSR: true,
		},
		Electrical: model.ElectricalSpec{
			BrewHeaterPower:  1500,
			SteamHeaterPower: 1000,
		},
		// Both boilers run at fixed setpoints, no mode arm needed.
	}
}
