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

package boards

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/brewos/MachineCore/model"
)

// UnknownBoardName is reported while no board descriptor is resolved.
const UnknownBoardName = "Unknown Board"

// Registry resolves the board descriptor for the build selected type.
// Resolution happens once, later calls observe the same descriptor.
type Registry struct {
	log         zerolog.Logger
	selection   model.BoardType
	descriptors []model.BoardConfig

	resolveOnce sync.Once
	resolved    model.BoardConfig
	found       bool
}

// NewRegistry prepares a registry for the given build selection,
// resolving against the built in descriptor set.
func NewRegistry(selection model.BoardType, log zerolog.Logger) *Registry {
	return NewRegistryWithDescriptors(selection, Descriptors(), log)
}

// NewRegistryWithDescriptors prepares a registry resolving against the
// given descriptor set. The set is copied here and sealed afterwards.
func NewRegistryWithDescriptors(selection model.BoardType, descriptors []model.BoardConfig, log zerolog.Logger) *Registry {
	return &Registry{
		log:         log.With().Str("component", "board-registry").Logger(),
		selection:   selection,
		descriptors: append([]model.BoardConfig{}, descriptors...),
	}
}

// Selection returns the board type the registry was built with.
func (r *Registry) Selection() model.BoardType {
	return r.selection
}

// Resolve returns the descriptor for the selected board type.
// Returns false if the selection does not name a known board.
func (r *Registry) Resolve() (model.BoardConfig, bool) {
	r.resolveOnce.Do(func() {
		r.resolved, r.found = lo.Find(r.descriptors, func(cfg model.BoardConfig) bool {
			return cfg.Type == r.selection
		})
		if r.found {
			r.log.Debug().
				Str("board", r.resolved.Name).
				Str("version", r.resolved.Version.String()).
				Msg("board descriptor resolved")
		} else {
			r.log.Warn().
				Str("selection", string(r.selection)).
				Msg("no board descriptor for selection")
		}
	})
	return r.resolved, r.found
}

// Name returns the human readable name of the resolved board,
// or a placeholder when absent.
func (r *Registry) Name() string {
	if cfg, found := r.Resolve(); found {
		return cfg.Name
	}
	return UnknownBoardName
}

// Version returns the version of the resolved board, zero when absent.
func (r *Registry) Version() model.BoardVersion {
	cfg, _ := r.Resolve()
	return cfg.Version
}

// PinFor returns the pin assigned to the given role on the resolved board.
// Returns false when the board is absent or the role is unassigned.
func (r *Registry) PinFor(role model.PinRole) (model.PhysicalPin, bool) {
	cfg, found := r.Resolve()
	if !found {
		return model.PinUnassigned, false
	}
	return cfg.Pins.PinFor(role)
}

// Validate resolves the board and validates its pin table.
func (r *Registry) Validate() error {
	cfg, found := r.Resolve()
	if !found {
		return errors.Wrapf(model.ConfigurationAbsentError, "no board descriptor for selection '%s'", r.selection)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return nil
}
