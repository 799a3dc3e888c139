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

package bridge

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/brewos/MachineCore/model"
)

func newTestBridge(t *testing.T) API {
	t.Helper()
	b, err := NewVirtualBridge(zerolog.Nop())
	if err != nil {
		t.Fatalf("NewVirtualBridge failed: %v", err)
	}
	return b
}

func TestVirtualRejectsOutOfRangePins(t *testing.T) {
	b := newTestBridge(t)
	if err := b.Init(model.MaxPhysicalPin + 1); err == nil {
		t.Error("expected an error for an out of range pin")
	}
	if err := b.Write(model.PinUnassigned, true); err == nil {
		t.Error("expected an error for the unassigned marker")
	}
}

func TestVirtualWriteRequiresOutput(t *testing.T) {
	b := newTestBridge(t)
	if err := b.Write(5, true); err == nil {
		t.Error("expected an error writing an untouched pin")
	}
	if err := b.Init(5); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := b.Write(5, true); err == nil {
		t.Error("expected an error writing a pin that is not an output")
	}
	if err := b.SetDirection(5, PinDirectionOutput); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}
	if err := b.Write(5, true); err != nil {
		t.Errorf("expected write to succeed, got %v", err)
	}
	level, err := b.Read(5)
	if err != nil || !level {
		t.Errorf("expected to read back high, got (%v, %v)", level, err)
	}
}

func TestVirtualPullDownReadSemantics(t *testing.T) {
	b := newTestBridge(t)
	rec := b.(Recorder)
	const pin = model.PhysicalPin(21)

	if err := b.Init(pin); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := b.SetDirection(pin, PinDirectionInput); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}
	if err := b.EnablePullDown(pin); err != nil {
		t.Fatalf("EnablePullDown failed: %v", err)
	}

	// Undriven input with pull down reads low.
	level, err := b.Read(pin)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if level {
		t.Error("undriven pull down input should read low")
	}

	// Reads high only while externally driven high.
	rec.DrivePin(pin, true)
	if level, _ := b.Read(pin); !level {
		t.Error("driven high input should read high")
	}
	rec.ReleasePin(pin)
	if level, _ := b.Read(pin); level {
		t.Error("released input should fall back to its bias")
	}
}

func TestVirtualPullUpReadSemantics(t *testing.T) {
	b := newTestBridge(t)
	const pin = model.PhysicalPin(2)

	if err := b.Init(pin); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := b.SetDirection(pin, PinDirectionInput); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}
	if err := b.EnablePullUp(pin); err != nil {
		t.Fatalf("EnablePullUp failed: %v", err)
	}
	if level, err := b.Read(pin); err != nil || !level {
		t.Errorf("undriven pull up input should read high, got (%v, %v)", level, err)
	}
	b.(Recorder).DrivePin(pin, false)
	if level, _ := b.Read(pin); level {
		t.Error("a switch pulling the pin low should read low")
	}
}

func TestVirtualConverterGatesChannels(t *testing.T) {
	b := newTestBridge(t)
	if err := b.AttachADCChannel(26); err == nil {
		t.Error("expected an error attaching a channel before converter init")
	}
	if err := b.InitADCConverter(); err != nil {
		t.Fatalf("InitADCConverter failed: %v", err)
	}
	if err := b.AttachADCChannel(26); err != nil {
		t.Errorf("expected channel attach to succeed, got %v", err)
	}
	if err := b.AttachADCChannel(5); err == nil {
		t.Error("expected an error attaching a non analog pin")
	}
}

func TestVirtualJournalOrder(t *testing.T) {
	b := newTestBridge(t)
	rec := b.(Recorder)

	if err := b.SetFunction(0, FunctionUART); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Init(15); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	journal := rec.Journal()
	if len(journal) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(journal))
	}
	if journal[0].Op != OpSetFunction || journal[0].Pin != 0 || journal[0].Function != FunctionUART {
		t.Errorf("unexpected first entry %+v", journal[0])
	}
	if journal[1].Op != OpInit || journal[1].Pin != 15 {
		t.Errorf("unexpected second entry %+v", journal[1])
	}
}

func TestVirtualEventStream(t *testing.T) {
	b := newTestBridge(t)
	src := b.(EventSource)

	received := make(chan PinEvent, 1)
	cancel := src.RegisterPinEventReceiver(func(evt PinEvent) {
		received <- evt
	})
	defer cancel()

	if err := b.Init(7); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	evt := <-received
	if evt.Op != OpInit || evt.Pin != 7 {
		t.Errorf("unexpected event %+v", evt)
	}
}

func TestVirtualPinSnapshot(t *testing.T) {
	b := newTestBridge(t)
	rec := b.(Recorder)

	if _, found := rec.PinSnapshot(11); found {
		t.Error("untouched pin should have no snapshot")
	}
	if err := b.Init(11); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := b.SetDirection(11, PinDirectionOutput); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}
	if err := b.Write(11, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	snap, found := rec.PinSnapshot(11)
	if !found {
		t.Fatal("expected a snapshot")
	}
	if !snap.Initialized || snap.Direction != PinDirectionOutput || snap.Level {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}
