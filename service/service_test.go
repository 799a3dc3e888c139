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

package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brewos/MachineCore/model"
	"github.com/brewos/MachineCore/service/bridge"
)

func newTestService(t *testing.T, boardType model.BoardType, machineType model.MachineType) Service {
	t.Helper()
	api, err := bridge.NewVirtualBridge(zerolog.Nop())
	if err != nil {
		t.Fatalf("NewVirtualBridge failed: %s", err)
	}
	svc, err := NewService(Config{
		ProgramVersion: "test",
		BoardType:      boardType,
		MachineType:    machineType,
		Installation:   model.DefaultInstallation,
	}, Dependencies{
		Log:    zerolog.Nop(),
		Bridge: api,
	})
	if err != nil {
		t.Fatalf("NewService failed: %s", err)
	}
	return svc
}

func TestRunCompletesBringup(t *testing.T) {
	svc := newTestService(t, model.BoardTypeECMV1, model.MachineTypeDualBoiler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx)
	}()

	deadline := time.Now().Add(time.Second * 5)
	for !svc.Status().BringupDone {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("Bring-up did not complete in time")
		}
		time.Sleep(time.Millisecond * 5)
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run failed: %s", err)
	}

	status := svc.Status()
	if status.BoardName != "ECM Synchronika V1" {
		t.Errorf("Unexpected board name: %s", status.BoardName)
	}
	if status.MachineType != model.MachineTypeDualBoiler {
		t.Errorf("Unexpected machine type: %s", status.MachineType)
	}
	if status.Budget == nil {
		t.Fatal("Status misses the electrical budget")
	}
	if got := status.Budget.MaxCombinedCurrent; got < 15.1 || got > 15.3 {
		t.Errorf("Unexpected combined current limit: %f", got)
	}
}

func TestRunRefusesUnknownBoard(t *testing.T) {
	svc := newTestService(t, model.BoardTypeUnknown, model.MachineTypeDualBoiler)

	// Run returns without waiting on the context when the boot is refused.
	err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("Run succeeded without a board descriptor")
	}
	if !model.IsConfigurationAbsent(err) {
		t.Errorf("Expected a configuration absent error, got: %s", err)
	}
	status := svc.Status()
	if status.BringupDone {
		t.Error("Status claims a completed bring-up")
	}
	if status.BringupError == "" {
		t.Error("Status misses the bring-up error")
	}
}

func TestStatusBeforeRun(t *testing.T) {
	svc := newTestService(t, model.BoardTypeSilviaV1, model.MachineTypeSingleBoiler)

	status := svc.Status()
	if status.Uptime != 0 {
		t.Errorf("Unexpected uptime before run: %s", status.Uptime)
	}
	if status.BringupDone {
		t.Error("Status claims a completed bring-up before run")
	}
	if status.BoardName != "Rancilio Silvia V1" {
		t.Errorf("Unexpected board name: %s", status.BoardName)
	}
	if status.MachineName != "Single Boiler" {
		t.Errorf("Unexpected machine name: %s", status.MachineName)
	}
}
