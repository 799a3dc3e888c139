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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/brewos/MachineCore/model"
	"github.com/brewos/MachineCore/pkg/environment"
	"github.com/brewos/MachineCore/pkg/logging"
	"github.com/brewos/MachineCore/pkg/ui"
	"github.com/brewos/MachineCore/server"
	"github.com/brewos/MachineCore/service"
	"github.com/brewos/MachineCore/service/bridge"
)

const (
	projectName       = "BrewOS Machine Core"
	defaultServerPort = 8621
)

// Overridden at build time through ldflags.
var (
	projectVersion = "dev"
	projectBuild   = "dev"
	defaultBoard   = "ecm-v1"
	defaultMachine = "dual-boiler"
)

func main() {
	var levelFlag string
	var bridgeType string
	var boardName string
	var machineName string
	var serverHost string
	var serverPort int
	var nominalVoltage uint16
	var maxCurrent float32
	var showUI bool
	var logFile string

	pflag.StringVarP(&levelFlag, "level", "l", "debug", "Set log level")
	pflag.StringVarP(&bridgeType, "bridge", "b", "", "Type of bridge to use (rpi|periph|virtual), empty to auto detect")
	pflag.StringVar(&boardName, "board", defaultBoard, "Type of controller board (ecm-v1|silvia-v1)")
	pflag.StringVar(&machineName, "machine", defaultMachine, "Type of machine (dual-boiler|single-boiler|heat-exchanger)")
	pflag.StringVar(&serverHost, "host", "0.0.0.0", "Host address the HTTP server will listen on")
	pflag.IntVar(&serverPort, "port", defaultServerPort, "Port the HTTP server will listen on")
	pflag.Uint16Var(&nominalVoltage, "nominal-voltage", model.DefaultInstallation.NominalVoltage, "Nominal mains voltage (volt)")
	pflag.Float32Var(&maxCurrent, "max-current", model.DefaultInstallation.MaxCurrentDraw, "Maximum branch circuit current (ampere)")
	pflag.BoolVar(&showUI, "ui", false, "Show the terminal status view")
	pflag.StringVar(&logFile, "log-file", "", "Also write logs to this file")
	pflag.Parse()

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if showUI && logFile == "" {
		// The terminal belongs to the status view.
		out = io.Discard
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			Exitf("Failed to open log file: %v\n", err)
		}
		if showUI {
			out = f
		} else {
			out = zerolog.MultiLevelWriter(out, f)
		}
	}
	logRing := logging.NewRingWriter(256)
	logger := zerolog.New(zerolog.MultiLevelWriter(out, logRing)).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(levelFlag); err != nil {
		Exitf("Unknown log level '%s'\n", levelFlag)
	} else {
		logger = logger.Level(level)
	}

	boardType, err := model.ParseBoardType(boardName)
	if err != nil {
		Exitf("Unknown board type '%s' (ecm-v1|silvia-v1)\n", boardName)
	}
	machineType, err := model.ParseMachineType(machineName)
	if err != nil {
		Exitf("Unknown machine type '%s' (dual-boiler|single-boiler|heat-exchanger)\n", machineName)
	}

	if bridgeType == "" {
		bridgeType = environment.AutoDetectBridgeType(logger)
	}
	var br bridge.API
	switch bridgeType {
	case "rpi":
		br, err = bridge.NewRPIBridge(logger)
		if err != nil {
			Exitf("Failed to initialize Raspberry Pi bridge: %v\n", err)
		}
	case "periph":
		br, err = bridge.NewPeriphBridge(logger)
		if err != nil {
			Exitf("Failed to initialize periph bridge: %v\n", err)
		}
	case "virtual":
		br, err = bridge.NewVirtualBridge(logger)
		if err != nil {
			Exitf("Failed to initialize virtual bridge: %v\n", err)
		}
	default:
		Exitf("Unknown bridge type '%s' (rpi|periph|virtual)\n", bridgeType)
	}
	br = bridge.WithMetrics(br)

	svc, err := service.NewService(service.Config{
		ProgramVersion: projectVersion,
		BoardType:      boardType,
		MachineType:    machineType,
		Installation: model.InstallationSpec{
			NominalVoltage: nominalVoltage,
			MaxCurrentDraw: maxCurrent,
		},
	}, service.Dependencies{
		Log:    logger,
		Bridge: br,
	})
	if err != nil {
		Exitf("Failed to initialize Service: %v\n", err)
	}

	httpServer, err := server.New(server.Config{
		Host:     serverHost,
		HTTPPort: serverPort,
	}, svc, logRing, logger)
	if err != nil {
		Exitf("Failed to initialize Server: %v\n", err)
	}

	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	if !showUI {
		fmt.Printf("Starting %s (version %s build %s)\n", projectName, projectVersion, projectBuild)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(ctx) })
	g.Go(func() error { return httpServer.Run(ctx) })
	if showUI {
		g.Go(func() error {
			// Quitting the status view stops the whole program.
			defer cancel()
			return ui.Run(svc)
		})
	}
	if err := g.Wait(); err != nil {
		Exitf("Service run failed: %#v", err)
	}
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
