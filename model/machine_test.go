package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestModeConfigZeroValue(t *testing.T) {
	var m ModeConfig
	if m.Type() != MachineTypeUnknown {
		t.Errorf("zero mode should be tagged unknown, got %s", m.Type())
	}
	if _, ok := m.SingleBoiler(); ok {
		t.Error("zero mode should have no single boiler arm")
	}
	if _, ok := m.HeatExchanger(); ok {
		t.Error("zero mode should have no heat exchanger arm")
	}
}

func TestModeConfigArmGating(t *testing.T) {
	hx := NewHeatExchangerMode(HeatExchangerConfig{
		ControlMode:   HXControlTemperature,
		SteamSetpoint: 125.0,
	})
	if hx.Type() != MachineTypeHeatExchanger {
		t.Errorf("expected heat exchanger tag, got %s", hx.Type())
	}
	if _, ok := hx.SingleBoiler(); ok {
		t.Error("heat exchanger mode must not expose a single boiler arm")
	}
	cfg, ok := hx.HeatExchanger()
	if !ok {
		t.Fatal("heat exchanger arm should be present")
	}
	if cfg.SteamSetpoint != 125.0 {
		t.Errorf("expected steam setpoint 125.0, got %v", cfg.SteamSetpoint)
	}

	sb := NewSingleBoilerMode(SingleBoilerConfig{
		BrewSetpoint:    93.0,
		SteamSetpoint:   140.0,
		ModeSwitchDelay: 5 * time.Second,
	})
	if _, ok := sb.HeatExchanger(); ok {
		t.Error("single boiler mode must not expose a heat exchanger arm")
	}
	if cfg, ok := sb.SingleBoiler(); !ok || cfg.BrewSetpoint != 93.0 {
		t.Errorf("expected (93.0, true), got (%v, %v)", cfg.BrewSetpoint, ok)
	}
}

func TestModeConfigJSONCarriesActiveArmOnly(t *testing.T) {
	raw, err := json.Marshal(NewHeatExchangerMode(HeatExchangerConfig{ControlMode: HXControlPressure}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	doc := string(raw)
	if !strings.Contains(doc, "heat-exchanger") {
		t.Errorf("expected heat exchanger arm in JSON, got %s", doc)
	}
	if strings.Contains(doc, "single-boiler") {
		t.Errorf("inactive arm must not appear in JSON, got %s", doc)
	}
}

func TestParseMachineType(t *testing.T) {
	if mt, err := ParseMachineType("dual-boiler"); err != nil || mt != MachineTypeDualBoiler {
		t.Errorf("expected dual-boiler, got (%v, %v)", mt, err)
	}
	if mt, err := ParseMachineType(""); err != nil || mt != MachineTypeUnknown {
		t.Errorf("empty selection should parse to unknown, got (%v, %v)", mt, err)
	}
	if _, err := ParseMachineType("espresso-9000"); err == nil {
		t.Error("expected an error for a bogus machine type")
	}
}
