package model

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// MachineType identifies the heating topology of a machine variant.
type MachineType string

const (
	MachineTypeUnknown       MachineType = "unknown"
	MachineTypeDualBoiler    MachineType = "dual-boiler"
	MachineTypeSingleBoiler  MachineType = "single-boiler"
	MachineTypeHeatExchanger MachineType = "heat-exchanger"
	// MachineTypeThermoblock is reserved for future variants.
	MachineTypeThermoblock MachineType = "thermoblock"
)

// ParseMachineType parses the given string into a known machine type.
func ParseMachineType(s string) (MachineType, error) {
	switch MachineType(s) {
	case MachineTypeDualBoiler:
		return MachineTypeDualBoiler, nil
	case MachineTypeSingleBoiler:
		return MachineTypeSingleBoiler, nil
	case MachineTypeHeatExchanger:
		return MachineTypeHeatExchanger, nil
	case MachineTypeThermoblock:
		return MachineTypeThermoblock, nil
	case MachineTypeUnknown, "":
		return MachineTypeUnknown, nil
	default:
		return MachineTypeUnknown, errors.Wrapf(ValidationError, "unknown machine type '%s'", s)
	}
}

// MachineFeatures describes what a machine variant is equipped with.
type MachineFeatures struct {
	Type MachineType `json:"type"`
	// Human readable name, shown on the display and in logs.
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	NumBoilers     uint8 `json:"num-boilers"`
	HasBrewBoiler  bool  `json:"has-brew-boiler"`
	HasSteamBoiler bool  `json:"has-steam-boiler"`
	// Brew water passes through an exchanger in the steam boiler.
	IsHeatExchanger       bool `json:"is-heat-exchanger"`
	SteamProvidesBrewHeat bool `json:"steam-provides-brew-heat"`
	// One boiler serves brew and steam by switching setpoints.
	NeedsModeSwitching bool `json:"needs-mode-switching"`

	HasBrewNTC         bool `json:"has-brew-ntc"`
	HasSteamNTC        bool `json:"has-steam-ntc"`
	HasSteamLevelProbe bool `json:"has-steam-level-probe"`
	HasAutoFill        bool `json:"has-auto-fill"`

	NumSSRs             uint8 `json:"num-ssrs"`
	HasSeparateSteamSSR bool  `json:"has-separate-steam-ssr"`
}

// SingleBoilerConfig holds mode switching behavior for machines with a
// single boiler serving both brew and steam.
type SingleBoilerConfig struct {
	// Setpoint while brewing (degrees celsius)
	BrewSetpoint float32 `json:"brew-setpoint"`
	// Setpoint while steaming (degrees celsius)
	SteamSetpoint float32 `json:"steam-setpoint"`
	// Settle time when switching between modes.
	ModeSwitchDelay time.Duration `json:"mode-switch-delay"`
	// Fall back to brew mode automatically after steaming.
	AutoReturnToBrew bool `json:"auto-return-to-brew"`
	// Leave steam mode after this much time without activity.
	SteamTimeout time.Duration `json:"steam-timeout"`
}

// HXControlMode selects how a heat exchanger machine is regulated.
type HXControlMode string

const (
	HXControlTemperature  HXControlMode = "temperature"
	HXControlPressure     HXControlMode = "pressure"
	HXControlPressurestat HXControlMode = "pressurestat"
)

// HeatExchangerConfig holds regulation behavior for heat exchanger machines.
type HeatExchangerConfig struct {
	ControlMode HXControlMode `json:"control-mode"`
	// Steam boiler setpoint (degrees celsius)
	SteamSetpoint float32 `json:"steam-setpoint"`
	// Steam boiler pressure setpoint and hysteresis (bar)
	PressureSetpoint   float32 `json:"pressure-setpoint"`
	PressureHysteresis float32 `json:"pressure-hysteresis"`
	// True if the mechanical pressurestat reports its state on an input.
	PressurestatHasFeedback bool `json:"pressurestat-has-feedback"`
}

// ModeConfig is a tagged variant holding the mode specific configuration
// of a machine. Only the arm matching the tag is observable.
type ModeConfig struct {
	machineType   MachineType
	singleBoiler  SingleBoilerConfig
	heatExchanger HeatExchangerConfig
}

// NewSingleBoilerMode creates a mode configuration tagged single boiler.
func NewSingleBoilerMode(cfg SingleBoilerConfig) ModeConfig {
	return ModeConfig{machineType: MachineTypeSingleBoiler, singleBoiler: cfg}
}

// NewHeatExchangerMode creates a mode configuration tagged heat exchanger.
func NewHeatExchangerMode(cfg HeatExchangerConfig) ModeConfig {
	return ModeConfig{machineType: MachineTypeHeatExchanger, heatExchanger: cfg}
}

// Type returns the machine type the mode configuration is tagged with.
func (m ModeConfig) Type() MachineType {
	if m.machineType == "" {
		return MachineTypeUnknown
	}
	return m.machineType
}

// SingleBoiler returns the single boiler arm.
// Returns false unless the mode is tagged single boiler.
func (m ModeConfig) SingleBoiler() (SingleBoilerConfig, bool) {
	if m.machineType != MachineTypeSingleBoiler {
		return SingleBoilerConfig{}, false
	}
	return m.singleBoiler, true
}

// HeatExchanger returns the heat exchanger arm.
// Returns false unless the mode is tagged heat exchanger.
func (m ModeConfig) HeatExchanger() (HeatExchangerConfig, bool) {
	if m.machineType != MachineTypeHeatExchanger {
		return HeatExchangerConfig{}, false
	}
	return m.heatExchanger, true
}

// MarshalJSON emits the tag and the active arm only.
func (m ModeConfig) MarshalJSON() ([]byte, error) {
	doc := struct {
		Type          MachineType          `json:"type"`
		SingleBoiler  *SingleBoilerConfig  `json:"single-boiler,omitempty"`
		HeatExchanger *HeatExchangerConfig `json:"heat-exchanger,omitempty"`
	}{
		Type: m.Type(),
	}
	if cfg, ok := m.SingleBoiler(); ok {
		doc.SingleBoiler = &cfg
	}
	if cfg, ok := m.HeatExchanger(); ok {
		doc.HeatExchanger = &cfg
	}
	return json.Marshal(doc)
}

// MachineConfig holds the immutable description of a machine variant.
type MachineConfig struct {
	Features   MachineFeatures `json:"features"`
	Mode       ModeConfig      `json:"mode"`
	Electrical ElectricalSpec  `json:"electrical"`
}
