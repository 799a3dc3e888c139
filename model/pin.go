package model

import "strconv"

// PhysicalPin identifies a GPIO pin of the controller by number.
type PhysicalPin int8

const (
	// PinUnassigned marks a pin role that is not wired on a board.
	PinUnassigned PhysicalPin = -1
	// MaxPhysicalPin is the highest usable GPIO number of the controller.
	MaxPhysicalPin PhysicalPin = 28
)

// IsAssigned returns true unless the pin carries the unassigned marker.
func (p PhysicalPin) IsAssigned() bool {
	return p != PinUnassigned
}

// IsValid returns true if the pin is assigned and within the usable range.
func (p PhysicalPin) IsValid() bool {
	return p >= 0 && p <= MaxPhysicalPin
}

func (p PhysicalPin) String() string {
	if !p.IsAssigned() {
		return "unassigned"
	}
	return strconv.Itoa(int(p))
}

// PinRole identifies the function a physical pin plays on a board.
type PinRole string

const (
	// Analog inputs (ADC capable pins)
	RoleADCBrewNTC   PinRole = "adc-brew-ntc"
	RoleADCSteamNTC  PinRole = "adc-steam-ntc"
	RoleADCPressure  PinRole = "adc-pressure"
	RoleADCFlow      PinRole = "adc-flow"
	RoleADCInletTemp PinRole = "adc-inlet-temp"

	// SPI bus for the thermocouple interface
	RoleSPIMISO           PinRole = "spi-miso"
	RoleSPIMOSI           PinRole = "spi-mosi"
	RoleSPISCK            PinRole = "spi-sck"
	RoleSPIThermocoupleCS PinRole = "spi-thermocouple-cs"

	// I2C bus for display and IO expanders
	RoleI2CSDA PinRole = "i2c-sda"
	RoleI2CSCL PinRole = "i2c-scl"

	// UART link to the UI companion and to the power meter
	RoleUARTLinkTX  PinRole = "uart-link-tx"
	RoleUARTLinkRX  PinRole = "uart-link-rx"
	RoleUARTMeterTX PinRole = "uart-meter-tx"
	RoleUARTMeterRX PinRole = "uart-meter-rx"

	// Digital inputs
	RoleInputReservoir     PinRole = "input-reservoir"
	RoleInputTankLevel     PinRole = "input-tank-level"
	RoleInputSteamLevel    PinRole = "input-steam-level"
	RoleInputBrewSwitch    PinRole = "input-brew-switch"
	RoleInputSteamSwitch   PinRole = "input-steam-switch"
	RoleInputWaterMode     PinRole = "input-water-mode"
	RoleInputFlowPulse     PinRole = "input-flow-pulse"
	RoleInputEmergencyStop PinRole = "input-emergency-stop"
	RoleInputWeightStop    PinRole = "input-weight-stop"
	RoleInputSpare         PinRole = "input-spare"

	// Digital outputs
	RoleRelayPump         PinRole = "relay-pump"
	RoleRelayBrewSolenoid PinRole = "relay-brew-solenoid"
	RoleRelayWaterLED     PinRole = "relay-water-led"
	RoleRelayFillSolenoid PinRole = "relay-fill-solenoid"
	RoleRelaySpare        PinRole = "relay-spare"
	RoleLEDStatus         PinRole = "led-status"
	RoleBuzzer            PinRole = "buzzer"

	// PWM outputs driving the heater SSRs
	RoleSSRBrew  PinRole = "ssr-brew"
	RoleSSRSteam PinRole = "ssr-steam"
)

// RoleAssignment binds a pin role to a physical pin.
type RoleAssignment struct {
	Role PinRole     `json:"role"`
	Pin  PhysicalPin `json:"pin"`
}
