package model

// ElectricalSpec describes the heater elements of a machine variant.
type ElectricalSpec struct {
	// Brew heater element power (watt), 0 if the variant has none.
	BrewHeaterPower uint16 `json:"brew-heater-power"`
	// Steam heater element power (watt), 0 if the variant has none.
	SteamHeaterPower uint16 `json:"steam-heater-power"`
}

// InstallationSpec describes the electrical installation the machine is
// connected to. This varies per site, not per variant.
type InstallationSpec struct {
	// Nominal mains voltage (volt), e.g. 230 or 120.
	NominalVoltage uint16 `json:"nominal-voltage"`
	// Maximum current the branch circuit may carry (ampere).
	MaxCurrentDraw float32 `json:"max-current-draw"`
}

// DefaultInstallation is used when no installation is configured.
var DefaultInstallation = InstallationSpec{
	NominalVoltage: 230,
	MaxCurrentDraw: 16.0,
}

// ElectricalBudget holds the derived current budget of a machine variant
// on a concrete installation.
type ElectricalBudget struct {
	// Current drawn by each heater at nominal voltage (ampere).
	BrewHeaterCurrent  float32 `json:"brew-heater-current"`
	SteamHeaterCurrent float32 `json:"steam-heater-current"`
	// Combined draw both heaters must stay below, the installation
	// maximum with a 5% safety margin (ampere).
	MaxCombinedCurrent float32 `json:"max-combined-current"`
}

// DeriveBudget combines the heater powers with the given installation.
// Returns false if the installation is incomplete.
func (s ElectricalSpec) DeriveBudget(inst InstallationSpec) (ElectricalBudget, bool) {
	if inst.NominalVoltage == 0 {
		return ElectricalBudget{}, false
	}
	v := float32(inst.NominalVoltage)
	return ElectricalBudget{
		BrewHeaterCurrent:  float32(s.BrewHeaterPower) / v,
		SteamHeaterCurrent: float32(s.SteamHeaterPower) / v,
		MaxCombinedCurrent: inst.MaxCurrentDraw * 0.95,
	}, true
}
