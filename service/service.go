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

// Package service binds the registries, the hardware bridge and the
// bring-up sequencer into one runnable machine core.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/brewos/MachineCore/model"
	"github.com/brewos/MachineCore/service/boards"
	"github.com/brewos/MachineCore/service/bridge"
	"github.com/brewos/MachineCore/service/bringup"
	"github.com/brewos/MachineCore/service/machines"
)

var maskAny = errors.WithStack

// Config holds the build selections of the machine core.
type Config struct {
	// ProgramVersion of the running program
	ProgramVersion string
	// BoardType selects the controller board descriptor
	BoardType model.BoardType
	// MachineType selects the machine variant record
	MachineType model.MachineType
	// Installation describes the mains connection of the site
	Installation model.InstallationSpec
}

// Dependencies holds the external dependencies of the machine core.
type Dependencies struct {
	Log    zerolog.Logger
	Bridge bridge.API
}

// Service contains the API exposed by the machine core.
type Service interface {
	// Run the machine core until the given context is canceled.
	Run(ctx context.Context) error
	// Boards returns the board registry of this core.
	Boards() *boards.Registry
	// Machines returns the machine variant registry of this core.
	Machines() *machines.Registry
	// Bridge returns the hardware bridge of this core.
	Bridge() bridge.API
	// Status returns a point in time snapshot of the core state.
	Status() Status
}

// Status is a point in time snapshot of the core state.
type Status struct {
	ProgramVersion string                  `json:"program-version"`
	Uptime         time.Duration           `json:"uptime"`
	BoardName      string                  `json:"board-name"`
	BoardVersion   string                  `json:"board-version"`
	MachineName    string                  `json:"machine-name"`
	MachineType    model.MachineType       `json:"machine-type"`
	BringupDone    bool                    `json:"bringup-done"`
	BringupError   string                  `json:"bringup-error,omitempty"`
	Budget         *model.ElectricalBudget `json:"electrical-budget,omitempty"`
}

type service struct {
	Config
	Dependencies

	boardRegistry   *boards.Registry
	machineRegistry *machines.Registry
	sequencer       bringup.Service

	mutex        sync.RWMutex
	startedAt    time.Time
	bringupDone  bool
	bringupError error
	budget       model.ElectricalBudget
	budgetFound  bool
}

// NewService instantiates a new machine core from the given
// configuration and dependencies.
func NewService(conf Config, deps Dependencies) (Service, error) {
	deps.Log = deps.Log.With().Str("component", "service").Logger()
	boardRegistry := boards.NewRegistry(conf.BoardType, deps.Log)
	machineRegistry := machines.NewRegistry(conf.MachineType, deps.Log)
	sequencer, err := bringup.NewService(bringup.Dependencies{
		Log:    deps.Log,
		Boards: boardRegistry,
		Bridge: deps.Bridge,
	})
	if err != nil {
		return nil, maskAny(err)
	}
	return &service{
		Config:          conf,
		Dependencies:    deps,
		boardRegistry:   boardRegistry,
		machineRegistry: machineRegistry,
		sequencer:       sequencer,
	}, nil
}

// Boards returns the board registry of this core.
func (s *service) Boards() *boards.Registry {
	return s.boardRegistry
}

// Machines returns the machine variant registry of this core.
func (s *service) Machines() *machines.Registry {
	return s.machineRegistry
}

// Bridge returns the hardware bridge of this core.
func (s *service) Bridge() bridge.API {
	return s.Dependencies.Bridge
}

// Run the machine core until the given context is canceled.
// The boot is refused with an error when the board configuration is
// absent or fails validation.
func (s *service) Run(ctx context.Context) error {
	s.mutex.Lock()
	s.startedAt = time.Now()
	s.mutex.Unlock()

	s.Log.Info().
		Str("version", s.ProgramVersion).
		Str("board", s.boardRegistry.Name()).
		Str("board_version", s.boardRegistry.Version().String()).
		Str("machine", s.machineRegistry.Name()).
		Msg("Starting machine core")
	s.logMachineFeatures()
	s.deriveBudget()

	if err := s.sequencer.InitializeAll(); err != nil {
		s.mutex.Lock()
		s.bringupError = err
		s.mutex.Unlock()
		s.Log.Error().Err(err).Msg("Peripheral bring-up refused")
		return maskAny(err)
	}
	s.mutex.Lock()
	s.bringupDone = true
	s.mutex.Unlock()
	s.Log.Info().Msg("Machine core is up")

	<-ctx.Done()
	s.Log.Info().Msg("Stopping machine core")
	return nil
}

// logMachineFeatures reports the shape of the selected machine.
func (s *service) logMachineFeatures() {
	features := s.machineRegistry.Features()
	s.Log.Info().
		Str("machine_type", string(features.Type)).
		Int("boilers", int(features.NumBoilers)).
		Bool("brew_boiler", features.HasBrewBoiler).
		Bool("steam_boiler", features.HasSteamBoiler).
		Bool("heat_exchanger", features.IsHeatExchanger).
		Bool("mode_switching", features.NeedsModeSwitching).
		Msg("Machine features")
}

// deriveBudget derives the electrical budget for the configured
// installation and machine.
func (s *service) deriveBudget() {
	electrical, found := s.machineRegistry.Electrical()
	if !found {
		s.Log.Debug().Msg("No electrical spec, skipping budget")
		return
	}
	budget, ok := electrical.DeriveBudget(s.Installation)
	if !ok {
		s.Log.Warn().
			Uint16("voltage", s.Installation.NominalVoltage).
			Msg("Cannot derive electrical budget")
		return
	}
	s.mutex.Lock()
	s.budget = budget
	s.budgetFound = true
	s.mutex.Unlock()
	s.Log.Info().
		Float32("brew_current", budget.BrewHeaterCurrent).
		Float32("steam_current", budget.SteamHeaterCurrent).
		Float32("max_combined", budget.MaxCombinedCurrent).
		Msg("Electrical budget derived")
}

// Status returns a point in time snapshot of the core state.
func (s *service) Status() Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	status := Status{
		ProgramVersion: s.ProgramVersion,
		BoardName:      s.boardRegistry.Name(),
		BoardVersion:   s.boardRegistry.Version().String(),
		MachineName:    s.machineRegistry.Name(),
		MachineType:    s.machineRegistry.Type(),
		BringupDone:    s.bringupDone,
	}
	if !s.startedAt.IsZero() {
		status.Uptime = time.Since(s.startedAt)
	}
	if s.bringupError != nil {
		status.BringupError = s.bringupError.Error()
	}
	if s.budgetFound {
		budget := s.budget
		status.Budget = &budget
	}
	return status
}
