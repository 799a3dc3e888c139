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

// Package machines carries the sealed set of supported machine variant
// records and absent safe access to the build selected variant.
package machines

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/brewos/MachineCore/model"
)

// UnknownMachineName is reported while no variant record is resolved.
const UnknownMachineName = "Unknown"

// Records returns the built in machine variant record set.
func Records() []model.MachineConfig {
	return []model.MachineConfig{
		dualBoiler(),
		singleBoiler(),
		heatExchanger(),
	}
}

// Registry resolves the machine variant record for the build selected
// type. Resolution happens once, later calls observe the same record.
// All getters are safe to call when nothing resolves, they fall back
// to inert defaults instead of failing.
type Registry struct {
	log       zerolog.Logger
	selection model.MachineType
	records   []model.MachineConfig

	resolveOnce sync.Once
	resolved    model.MachineConfig
	found       bool
}

// NewRegistry prepares a registry for the given build selection,
// resolving against the built in record set.
func NewRegistry(selection model.MachineType, log zerolog.Logger) *Registry {
	return NewRegistryWithRecords(selection, Records(), log)
}

// NewRegistryWithRecords prepares a registry resolving against the
// given record set. The set is copied here and sealed afterwards.
func NewRegistryWithRecords(selection model.MachineType, records []model.MachineConfig, log zerolog.Logger) *Registry {
	return &Registry{
		log:       log.With().Str("component", "machine-registry").Logger(),
		selection: selection,
		records:   append([]model.MachineConfig{}, records...),
	}
}

// Selection returns the machine type the registry was built with.
func (r *Registry) Selection() model.MachineType {
	return r.selection
}

// Resolve returns the variant record for the selected machine type.
// Returns false if the selection does not name a known variant.
func (r *Registry) Resolve() (model.MachineConfig, bool) {
	r.resolveOnce.Do(func() {
		r.resolved, r.found = lo.Find(r.records, func(cfg model.MachineConfig) bool {
			return cfg.Features.Type == r.selection
		})
		if r.found {
			r.log.Debug().
				Str("machine", r.resolved.Features.Name).
				Msg("machine variant resolved")
		} else {
			r.log.Warn().
				Str("selection", string(r.selection)).
				Msg("no machine variant for selection")
		}
	})
	return r.resolved, r.found
}

// Type returns the resolved machine type, unknown when absent.
func (r *Registry) Type() model.MachineType {
	if cfg, found := r.Resolve(); found {
		return cfg.Features.Type
	}
	return model.MachineTypeUnknown
}

// Name returns the display name of the resolved variant,
// or a placeholder when absent.
func (r *Registry) Name() string {
	if cfg, found := r.Resolve(); found {
		return cfg.Features.Name
	}
	return UnknownMachineName
}

// Features returns the feature record of the resolved variant.
// When absent all flags read false.
func (r *Registry) Features() model.MachineFeatures {
	cfg, found := r.Resolve()
	if !found {
		return model.MachineFeatures{Type: model.MachineTypeUnknown, Name: UnknownMachineName}
	}
	return cfg.Features
}

// HasBrewBoiler returns true if the variant has a dedicated brew boiler.
func (r *Registry) HasBrewBoiler() bool {
	cfg, _ := r.Resolve()
	return cfg.Features.HasBrewBoiler
}

// HasSteamBoiler returns true if the variant has a steam boiler.
func (r *Registry) HasSteamBoiler() bool {
	cfg, _ := r.Resolve()
	return cfg.Features.HasSteamBoiler
}

// IsHeatExchanger returns true if brew water is heated by an exchanger.
func (r *Registry) IsHeatExchanger() bool {
	cfg, _ := r.Resolve()
	return cfg.Features.IsHeatExchanger
}

// NeedsModeSwitching returns true if one boiler switches between
// brew and steam setpoints.
func (r *Registry) NeedsModeSwitching() bool {
	cfg, _ := r.Resolve()
	return cfg.Features.NeedsModeSwitching
}

// HasBrewNTC returns true if the variant carries a brew boiler sensor.
func (r *Registry) HasBrewNTC() bool {
	cfg, _ := r.Resolve()
	return cfg.Features.HasBrewNTC
}

// HasSteamNTC returns true if the variant carries a steam boiler sensor.
func (r *Registry) HasSteamNTC() bool {
	cfg, _ := r.Resolve()
	return cfg.Features.HasSteamNTC
}

// SingleBoilerConfig returns the single boiler mode arm.
// Returns false unless the resolved variant is a single boiler machine.
func (r *Registry) SingleBoilerConfig() (model.SingleBoilerConfig, bool) {
	cfg, found := r.Resolve()
	if !found {
		return model.SingleBoilerConfig{}, false
	}
	return cfg.Mode.SingleBoiler()
}

// HeatExchangerConfig returns the heat exchanger mode arm.
// Returns false unless the resolved variant is a heat exchanger machine.
func (r *Registry) HeatExchangerConfig() (model.HeatExchangerConfig, bool) {
	cfg, found := r.Resolve()
	if !found {
		return model.HeatExchangerConfig{}, false
	}
	return cfg.Mode.HeatExchanger()
}

// Electrical returns the heater element spec of the resolved variant.
// Returns false when absent.
func (r *Registry) Electrical() (model.ElectricalSpec, bool) {
	cfg, found := r.Resolve()
	if !found {
		return model.ElectricalSpec{}, false
	}
	return cfg.Electrical, true
}
