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
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brewos/MachineCore/model"
)

func TestHeatExchangerFeatures(t *testing.T) {
	r := NewRegistry(model.MachineTypeHeatExchanger, zerolog.Nop())

	if r.HasBrewBoiler() {
		t.Error("heat exchanger machines have no dedicated brew boiler")
	}
	if !r.HasSteamBoiler() {
		t.Error("heat exchanger machines have a steam boiler")
	}
	if !r.IsHeatExchanger() {
		t.Error("expected the heat exchanger flag")
	}
	if r.NeedsModeSwitching() {
		t.Error("steam and brew are available at the same time")
	}
	if r.HasBrewNTC() {
		t.Error("there is no brew boiler to measure")
	}
	if !r.HasSteamNTC() {
		t.Error("the steam boiler temperature is measured")
	}

	// The single boiler view must be absent on this variant.
	if _, ok := r.SingleBoilerConfig(); ok {
		t.Error("single boiler arm must be absent on a heat exchanger")
	}
	hx, ok := r.HeatExchangerConfig()
	if !ok {
		t.Fatal("heat exchanger arm should be present")
	}
	if hx.ControlMode != model.HXControlTemperature {
		t.Errorf("expected temperature control, got %s", hx.ControlMode)
	}
	if hx.SteamSetpoint != 125.0 {
		t.Errorf("expected steam setpoint 125.0, got %v", hx.SteamSetpoint)
	}
}

func TestSingleBoilerModeValues(t *testing.T) {
	r := NewRegistry(model.MachineTypeSingleBoiler, zerolog.Nop())

	cfg, ok := r.SingleBoilerConfig()
	if !ok {
		t.Fatal("single boiler arm should be present")
	}
	if cfg.BrewSetpoint != 93.0 || cfg.SteamSetpoint != 140.0 {
		t.Errorf("unexpected setpoints %v/%v", cfg.BrewSetpoint, cfg.SteamSetpoint)
	}
	if cfg.ModeSwitchDelay != 5*time.Second {
		t.Errorf("expected 5s mode switch delay, got %v", cfg.ModeSwitchDelay)
	}
	if !cfg.AutoReturnToBrew {
		t.Error("expected auto return to brew")
	}
	if cfg.SteamTimeout != 120*time.Second {
		t.Errorf("expected 120s steam timeout, got %v", cfg.SteamTimeout)
	}
	if _, ok := r.HeatExchangerConfig(); ok {
		t.Error("heat exchanger arm must be absent on a single boiler")
	}
}

func TestDualBoilerElectrical(t *testing.T) {
	r := NewRegistry(model.MachineTypeDualBoiler, zerolog.Nop())

	spec, ok := r.Electrical()
	if !ok {
		t.Fatal("expected an electrical spec")
	}
	if spec.BrewHeaterPower != 1500 || spec.SteamHeaterPower != 1000 {
		t.Errorf("unexpected heater powers %+v", spec)
	}
	// A dual boiler holds its setpoints, there is no mode arm.
	if _, ok := r.SingleBoilerConfig(); ok {
		t.Error("single boiler arm must be absent on a dual boiler")
	}
	if _, ok := r.HeatExchangerConfig(); ok {
		t.Error("heat exchanger arm must be absent on a dual boiler")
	}
}

func TestUnknownMachineDefaults(t *testing.T) {
	r := NewRegistry(model.MachineTypeUnknown, zerolog.Nop())

	if _, found := r.Resolve(); found {
		t.Error("unknown selection should not resolve")
	}
	if r.Type() != model.MachineTypeUnknown {
		t.Errorf("expected unknown type, got %s", r.Type())
	}
	if r.Name() != UnknownMachineName {
		t.Errorf("expected placeholder name, got '%s'", r.Name())
	}
	if r.HasBrewBoiler() || r.HasSteamBoiler() || r.IsHeatExchanger() ||
		r.NeedsModeSwitching() || r.HasBrewNTC() || r.HasSteamNTC() {
		t.Error("all feature getters must read false when nothing resolves")
	}
	if _, ok := r.SingleBoilerConfig(); ok {
		t.Error("no mode arm may be visible when nothing resolves")
	}
	if _, ok := r.HeatExchangerConfig(); ok {
		t.Error("no mode arm may be visible when nothing resolves")
	}
	if _, ok := r.Electrical(); ok {
		t.Error("no electrical spec may be visible when nothing resolves")
	}
}

func TestThermoblockIsReservedButUnimplemented(t *testing.T) {
	r := NewRegistry(model.MachineTypeThermoblock, zerolog.Nop())
	if _, found := r.Resolve(); found {
		t.Error("the thermoblock tag has no variant record yet")
	}
}

func TestResolveIsStable(t *testing.T) {
	r := NewRegistry(model.MachineTypeDualBoiler, zerolog.Nop())
	first, _ := r.Resolve()
	for i := 0; i < 3; i++ {
		again, _ := r.Resolve()
		if again.Features != first.Features || again.Electrical != first.Electrical {
			t.Errorf("resolve %d returned a different record", i)
		}
	}
}
