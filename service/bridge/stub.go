//go:build !linux

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
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NewRPIBridge is not available on non Linux platforms.
func NewRPIBridge(log zerolog.Logger) (API, error) {
	return nil, errors.New("the rpi bridge requires linux")
}
