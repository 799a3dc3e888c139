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

package bringup

import (
	"github.com/brewos/MachineCore/pkg/metrics"
)

const (
	subSystem = "bringup"
)

var (
	initializeAttemptsTotal = metrics.MustRegisterCounter(subSystem,
		"initialize_attempts_total",
		"Total number of bring-up attempts")
	initializeRefusedTotal = metrics.MustRegisterCounter(subSystem,
		"initialize_refused_total",
		"Total number of bring-up attempts refused on configuration grounds")
	hardwareFaultsTotal = metrics.MustRegisterCounterVec(subSystem,
		"hardware_faults_total",
		"Total number of failed hardware calls per pin role",
		"role")
	rolesAssignedGauge = metrics.MustRegisterGauge(subSystem,
		"roles_assigned",
		"Number of pin roles assigned on the active board")
)
