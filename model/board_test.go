package model

import (
	"strings"
	"testing"
)

func validBoard() BoardConfig {
	pins := UnassignedPinMapping()
	pins.ADCBrewNTC = 26
	pins.ADCSteamNTC = 27
	pins.UARTLinkTX = 0
	pins.UARTLinkRX = 1
	pins.RelayPump = 11
	pins.SSRBrew = 13
	return BoardConfig{
		Type:    BoardTypeECMV1,
		Version: BoardVersion{Major: 1},
		Name:    "test board",
		Pins:    pins,
	}
}

func TestBoardConfigValidateOK(t *testing.T) {
	b := validBoard()
	if err := b.Validate(); err != nil {
		t.Fatalf("expected valid board, got %v", err)
	}
}

func TestValidateDetectsConflict(t *testing.T) {
	b := validBoard()
	// Both temperature sensors on the same ADC pin.
	b.Pins.ADCBrewNTC = 26
	b.Pins.ADCSteamNTC = 26

	err := b.Validate()
	if err == nil {
		t.Fatal("expected a conflict error")
	}
	if !IsPinConflict(err) {
		t.Errorf("expected a pin conflict cause, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, string(RoleADCBrewNTC)) || !strings.Contains(msg, string(RoleADCSteamNTC)) {
		t.Errorf("conflict error should name both roles, got '%s'", msg)
	}
	if !strings.Contains(msg, "26") {
		t.Errorf("conflict error should name the shared pin, got '%s'", msg)
	}
}

func TestValidateDetectsOutOfRangePin(t *testing.T) {
	b := validBoard()
	b.Pins.Buzzer = MaxPhysicalPin + 1

	err := b.Validate()
	if err == nil {
		t.Fatal("expected an invalid pin error")
	}
	if !IsInvalidPin(err) {
		t.Errorf("expected an invalid pin cause, got %v", err)
	}
	if !strings.Contains(err.Error(), string(RoleBuzzer)) {
		t.Errorf("error should name the offending role, got '%s'", err.Error())
	}
}

func TestValidateIgnoresUnassignedRoles(t *testing.T) {
	// A board with every role unassigned has nothing to collide.
	b := BoardConfig{Type: BoardTypeUnknown, Pins: UnassignedPinMapping()}
	if err := b.Validate(); err != nil {
		t.Fatalf("unassigned roles should not fail validation, got %v", err)
	}
}

func TestPinForLookup(t *testing.T) {
	b := validBoard()
	pin, ok := b.Pins.PinFor(RoleADCBrewNTC)
	if !ok || pin != 26 {
		t.Errorf("expected (26, true), got (%v, %v)", pin, ok)
	}
	if _, ok := b.Pins.PinFor(RoleADCFlow); ok {
		t.Error("unassigned role should report not ok")
	}
	if _, ok := b.Pins.PinFor(PinRole("no-such-role")); ok {
		t.Error("unknown role should report not ok")
	}
}

func TestParseBoardType(t *testing.T) {
	if bt, err := ParseBoardType("ecm-v1"); err != nil || bt != BoardTypeECMV1 {
		t.Errorf("expected ecm-v1, got (%v, %v)", bt, err)
	}
	if bt, err := ParseBoardType(""); err != nil || bt != BoardTypeUnknown {
		t.Errorf("empty selection should parse to unknown, got (%v, %v)", bt, err)
	}
	if _, err := ParseBoardType("bogus"); err == nil {
		t.Error("expected an error for a bogus board type")
	}
}

func TestBoardVersionString(t *testing.T) {
	v := BoardVersion{Major: 1, Minor: 2, Patch: 3}
	if s := v.String(); s != "1.2.3" {
		t.Errorf("expected '1.2.3', got '%s'", s)
	}
}
