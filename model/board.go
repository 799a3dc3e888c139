package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// BoardType identifies a supported controller board revision.
type BoardType string

const (
	BoardTypeUnknown  BoardType = "unknown"
	BoardTypeECMV1    BoardType = "ecm-v1"
	BoardTypeSilviaV1 BoardType = "silvia-v1"
)

// ParseBoardType parses the given string into a known board type.
func ParseBoardType(s string) (BoardType, error) {
	switch BoardType(s) {
	case BoardTypeECMV1:
		return BoardTypeECMV1, nil
	case BoardTypeSilviaV1:
		return BoardTypeSilviaV1, nil
	case BoardTypeUnknown, "":
		return BoardTypeUnknown, nil
	default:
		return BoardTypeUnknown, errors.Wrapf(ValidationError, "unknown board type '%s'", s)
	}
}

// BoardVersion holds the semantic version of a board revision.
type BoardVersion struct {
	Major uint8 `json:"major"`
	Minor uint8 `json:"minor"`
	Patch uint8 `json:"patch"`
}

func (v BoardVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// PinMapping binds every pin role of a board to a physical pin.
// The zero value of a pin is GPIO0, so unassigned roles must be set to
// PinUnassigned explicitly. Use UnassignedPinMapping as starting point.
type PinMapping struct {
	ADCBrewNTC   PhysicalPin `json:"adc-brew-ntc"`
	ADCSteamNTC  PhysicalPin `json:"adc-steam-ntc"`
	ADCPressure  PhysicalPin `json:"adc-pressure"`
	ADCFlow      PhysicalPin `json:"adc-flow"`
	ADCInletTemp PhysicalPin `json:"adc-inlet-temp"`

	SPIMISO           PhysicalPin `json:"spi-miso"`
	SPIMOSI           PhysicalPin `json:"spi-mosi"`
	SPISCK            PhysicalPin `json:"spi-sck"`
	SPIThermocoupleCS PhysicalPin `json:"spi-thermocouple-cs"`

	I2CSDA PhysicalPin `json:"i2c-sda"`
	I2CSCL PhysicalPin `json:"i2c-scl"`

	UARTLinkTX  PhysicalPin `json:"uart-link-tx"`
	UARTLinkRX  PhysicalPin `json:"uart-link-rx"`
	UARTMeterTX PhysicalPin `json:"uart-meter-tx"`
	UARTMeterRX PhysicalPin `json:"uart-meter-rx"`

	InputReservoir     PhysicalPin `json:"input-reservoir"`
	InputTankLevel     PhysicalPin `json:"input-tank-level"`
	InputSteamLevel    PhysicalPin `json:"input-steam-level"`
	InputBrewSwitch    PhysicalPin `json:"input-brew-switch"`
	InputSteamSwitch   PhysicalPin `json:"input-steam-switch"`
	InputWaterMode     PhysicalPin `json:"input-water-mode"`
	InputFlowPulse     PhysicalPin `json:"input-flow-pulse"`
	InputEmergencyStop PhysicalPin `json:"input-emergency-stop"`
	InputWeightStop    PhysicalPin `json:"input-weight-stop"`
	InputSpare         PhysicalPin `json:"input-spare"`

	RelayPump         PhysicalPin `json:"relay-pump"`
	RelayBrewSolenoid PhysicalPin `json:"relay-brew-solenoid"`
	RelayWaterLED     PhysicalPin `json:"relay-water-led"`
	RelayFillSolenoid PhysicalPin `json:"relay-fill-solenoid"`
	RelaySpare        PhysicalPin `json:"relay-spare"`
	LEDStatus         PhysicalPin `json:"led-status"`
	Buzzer            PhysicalPin `json:"buzzer"`

	SSRBrew  PhysicalPin `json:"ssr-brew"`
	SSRSteam PhysicalPin `json:"ssr-steam"`
}

// UnassignedPinMapping returns a mapping with every role unassigned.
func UnassignedPinMapping() PinMapping {
	return PinMapping{
		ADCBrewNTC:   PinUnassigned,
		ADCSteamNTC:  PinUnassigned,
		ADCPressure:  PinUnassigned,
		ADCFlow:      PinUnassigned,
		ADCInletTemp: PinUnassigned,

		SPIMISO:           PinUnassigned,
		SPIMOSI:           PinUnassigned,
		SPISCK:            PinUnassigned,
		SPIThermocoupleCS: PinUnassigned,

		I2CSDA: PinUnassigned,
		I2CSCL: PinUnassigned,

		UARTLinkTX:  PinUnassigned,
		UARTLinkRX:  PinUnassigned,
		UARTMeterTX: PinUnassigned,
		UARTMeterRX: PinUnassigned,

		InputReservoir:     PinUnassigned,
		InputTankLevel:     PinUnassigned,
		InputSteamLevel:    PinUnassigned,
		InputBrewSwitch:    PinUnassigned,
		InputSteamSwitch:   PinUnassigned,
		InputWaterMode:     PinUnassigned,
		InputFlowPulse:     PinUnassigned,
		InputEmergencyStop: PinUnassigned,
		InputWeightStop:    PinUnassigned,
		InputSpare:         PinUnassigned,

		RelayPump:         PinUnassigned,
		RelayBrewSolenoid: PinUnassigned,
		RelayWaterLED:     PinUnassigned,
		RelayFillSolenoid: PinUnassigned,
		RelaySpare:        PinUnassigned,
		LEDStatus:         PinUnassigned,
		Buzzer:            PinUnassigned,

		SSRBrew:  PinUnassigned,
		SSRSteam: PinUnassigned,
	}
}

// Roles returns every role of the mapping with its assigned pin,
// including unassigned roles.
func (m PinMapping) Roles() []RoleAssignment {
	return []RoleAssignment{
		{RoleADCBrewNTC, m.ADCBrewNTC},
		{RoleADCSteamNTC, m.ADCSteamNTC},
		{RoleADCPressure, m.ADCPressure},
		{RoleADCFlow, m.ADCFlow},
		{RoleADCInletTemp, m.ADCInletTemp},

		{RoleSPIMISO, m.SPIMISO},
		{RoleSPIMOSI, m.SPIMOSI},
		{RoleSPISCK, m.SPISCK},
		{RoleSPIThermocoupleCS, m.SPIThermocoupleCS},

		{RoleI2CSDA, m.I2CSDA},
		{RoleI2CSCL, m.I2CSCL},

		{RoleUARTLinkTX, m.UARTLinkTX},
		{RoleUARTLinkRX, m.UARTLinkRX},
		{RoleUARTMeterTX, m.UARTMeterTX},
		{RoleUARTMeterRX, m.UARTMeterRX},

		{RoleInputReservoir, m.InputReservoir},
		{RoleInputTankLevel, m.InputTankLevel},
		{RoleInputSteamLevel, m.InputSteamLevel},
		{RoleInputBrewSwitch, m.InputBrewSwitch},
		{RoleInputSteamSwitch, m.InputSteamSwitch},
		{RoleInputWaterMode, m.InputWaterMode},
		{RoleInputFlowPulse, m.InputFlowPulse},
		{RoleInputEmergencyStop, m.InputEmergencyStop},
		{RoleInputWeightStop, m.InputWeightStop},
		{RoleInputSpare, m.InputSpare},

		{RoleRelayPump, m.RelayPump},
		{RoleRelayBrewSolenoid, m.RelayBrewSolenoid},
		{RoleRelayWaterLED, m.RelayWaterLED},
		{RoleRelayFillSolenoid, m.RelayFillSolenoid},
		{RoleRelaySpare, m.RelaySpare},
		{RoleLEDStatus, m.LEDStatus},
		{RoleBuzzer, m.Buzzer},

		{RoleSSRBrew, m.SSRBrew},
		{RoleSSRSteam, m.SSRSteam},
	}
}

// PinFor returns the pin assigned to the given role.
// Returns false if the role is unknown or unassigned.
func (m PinMapping) PinFor(role PinRole) (PhysicalPin, bool) {
	for _, ra := range m.Roles() {
		if ra.Role == role {
			return ra.Pin, ra.Pin.IsAssigned()
		}
	}
	return PinUnassigned, false
}

// BoardConfig holds the immutable description of a controller board revision.
type BoardConfig struct {
	Type        BoardType    `json:"type"`
	Version     BoardVersion `json:"version"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Pins        PinMapping   `json:"pins"`
}

// Validate the pin table of the board, returning nil on ok,
// or an error upon validation issues.
// Every assigned pin must be in range and no two roles may share a pin.
// Unassigned roles are skipped.
func (c BoardConfig) Validate() error {
	claimed := make(map[PhysicalPin]PinRole)
	for _, ra := range c.Pins.Roles() {
		if !ra.Pin.IsAssigned() {
			continue
		}
		if !ra.Pin.IsValid() {
			return errors.Wrapf(InvalidPinError, "role '%s' uses pin %d outside 0..%d", ra.Role, ra.Pin, MaxPhysicalPin)
		}
		if other, found := claimed[ra.Pin]; found {
			return errors.Wrapf(PinConflictError, "roles '%s' and '%s' are both mapped to pin %d", other, ra.Role, ra.Pin)
		}
		claimed[ra.Pin] = ra.Role
	}
	return nil
}
