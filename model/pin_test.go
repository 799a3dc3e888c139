package model

import "testing"

func TestPhysicalPinIsAssigned(t *testing.T) {
	if PinUnassigned.IsAssigned() {
		t.Error("PinUnassigned should not count as assigned")
	}
	if !PhysicalPin(0).IsAssigned() {
		t.Error("pin 0 is a real pin and should count as assigned")
	}
	if !MaxPhysicalPin.IsAssigned() {
		t.Error("highest pin should count as assigned")
	}
}

func TestPhysicalPinIsValid(t *testing.T) {
	if PinUnassigned.IsValid() {
		t.Error("PinUnassigned should not be valid")
	}
	if !PhysicalPin(0).IsValid() {
		t.Error("pin 0 should be valid")
	}
	if !MaxPhysicalPin.IsValid() {
		t.Error("highest pin should be valid")
	}
	if (MaxPhysicalPin + 1).IsValid() {
		t.Errorf("pin %d should be out of range", MaxPhysicalPin+1)
	}
	if PhysicalPin(-5).IsValid() {
		t.Error("negative pin should be out of range")
	}
}

func TestPhysicalPinString(t *testing.T) {
	if s := PinUnassigned.String(); s != "unassigned" {
		t.Errorf("expected 'unassigned', got '%s'", s)
	}
	if s := PhysicalPin(26).String(); s != "26" {
		t.Errorf("expected '26', got '%s'", s)
	}
}
