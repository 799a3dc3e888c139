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

package boards

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/brewos/MachineCore/model"
)

func TestResolveKnownBoard(t *testing.T) {
	r := NewRegistry(model.BoardTypeECMV1, zerolog.Nop())
	cfg, found := r.Resolve()
	if !found {
		t.Fatal("expected the ecm-v1 descriptor to resolve")
	}
	if cfg.Name != "ECM Synchronika V1" {
		t.Errorf("unexpected board name '%s'", cfg.Name)
	}
	if cfg.Pins.ADCBrewNTC != 26 || cfg.Pins.ADCSteamNTC != 27 {
		t.Errorf("unexpected NTC pins %s/%s", cfg.Pins.ADCBrewNTC, cfg.Pins.ADCSteamNTC)
	}
	if cfg.Pins.ADCFlow.IsAssigned() {
		t.Error("flow sensor is not wired on this board")
	}
}

func TestResolveIsStable(t *testing.T) {
	r := NewRegistry(model.BoardTypeECMV1, zerolog.Nop())
	first, found := r.Resolve()
	if !found {
		t.Fatal("expected the descriptor to resolve")
	}
	for i := 0; i < 3; i++ {
		again, found := r.Resolve()
		if !found {
			t.Fatal("later resolves must also succeed")
		}
		if again != first {
			t.Errorf("resolve %d returned a different descriptor", i)
		}
	}
}

func TestResolveUnknownBoard(t *testing.T) {
	r := NewRegistry(model.BoardTypeUnknown, zerolog.Nop())
	if _, found := r.Resolve(); found {
		t.Error("unknown selection should not resolve")
	}
	if name := r.Name(); name != UnknownBoardName {
		t.Errorf("expected placeholder name, got '%s'", name)
	}
	if v := r.Version(); v != (model.BoardVersion{}) {
		t.Errorf("expected zero version, got %s", v)
	}
	if _, ok := r.PinFor(model.RoleRelayPump); ok {
		t.Error("absent board should have no pin assignments")
	}
	err := r.Validate()
	if err == nil {
		t.Fatal("expected a validation error for an absent board")
	}
	if !model.IsConfigurationAbsent(err) {
		t.Errorf("expected a configuration absent cause, got %v", err)
	}
}

func TestShippedBoardsValidate(t *testing.T) {
	for _, bt := range []model.BoardType{model.BoardTypeECMV1, model.BoardTypeSilviaV1} {
		r := NewRegistry(bt, zerolog.Nop())
		if err := r.Validate(); err != nil {
			t.Errorf("board %s should validate, got %v", bt, err)
		}
	}
}

func TestPinForRole(t *testing.T) {
	r := NewRegistry(model.BoardTypeECMV1, zerolog.Nop())
	pin, ok := r.PinFor(model.RoleRelayPump)
	if !ok || pin != 11 {
		t.Errorf("expected pump relay on pin 11, got (%v, %v)", pin, ok)
	}
	if _, ok := r.PinFor(model.RoleInputFlowPulse); ok {
		t.Error("flow pulse input is not wired on this board")
	}
}

func TestSilviaBoardShape(t *testing.T) {
	r := NewRegistry(model.BoardTypeSilviaV1, zerolog.Nop())
	cfg, found := r.Resolve()
	if !found {
		t.Fatal("expected the silvia-v1 descriptor to resolve")
	}
	// Single boiler board has no thermocouple interface at all.
	if cfg.Pins.SPIMISO.IsAssigned() || cfg.Pins.SPISCK.IsAssigned() || cfg.Pins.SPIThermocoupleCS.IsAssigned() {
		t.Error("silvia board should have no SPI pins assigned")
	}
	if !cfg.Pins.InputSteamSwitch.IsAssigned() {
		t.Error("silvia board needs its steam switch for mode switching")
	}
}
