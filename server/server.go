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

// Package server exposes the machine core state over HTTP for
// diagnostics and monitoring.
package server

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/brewos/MachineCore/model"
	"github.com/brewos/MachineCore/pkg/logging"
	"github.com/brewos/MachineCore/service"
	"github.com/brewos/MachineCore/service/boards"
	"github.com/brewos/MachineCore/service/bridge"
	"github.com/brewos/MachineCore/service/machines"
)

// Config for the HTTP server.
type Config struct {
	// Host interface to listen on
	Host string
	// Port to listen on for HTTP requests
	HTTPPort int
}

// Core is the part of the machine core the server exposes.
type Core interface {
	Boards() *boards.Registry
	Machines() *machines.Registry
	Bridge() bridge.API
	Status() service.Status
}

// Server runs the HTTP server for the machine core.
type Server struct {
	Config
	log  zerolog.Logger
	core Core
	logs *logging.RingWriter
}

// New configures a new Server. The ring writer may be nil when no log
// capture is wired.
func New(cfg Config, core Core, logs *logging.RingWriter, log zerolog.Logger) (*Server, error) {
	return &Server{
		Config: cfg,
		log:    log.With().Str("component", "server").Logger(),
		core:   core,
		logs:   logs,
	}, nil
}

// Run the server until the given context is canceled.
func (s *Server) Run(ctx context.Context) error {
	log := s.log
	httpAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPPort))
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to listen on address %s", httpAddr)
	}

	httpSrv := http.Server{
		Handler: s.buildRouter(),
	}

	log.Debug().Str("address", httpAddr).Msg("Serving HTTP")
	go func() {
		if err := httpSrv.Serve(httpLis); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to serve HTTP server")
		}
		log.Debug().Str("address", httpAddr).Msg("Done Serving HTTP")
	}()

	// Wait until context closed
	<-ctx.Done()

	log.Info().Msg("Closing server")
	httpSrv.Shutdown(context.Background())

	return nil
}

// buildRouter wires all HTTP routes.
func (s *Server) buildRouter() *echo.Echo {
	httpRouter := echo.New()
	httpRouter.HideBanner = true
	httpRouter.GET("/healthz", s.handleHealth)
	httpRouter.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	httpRouter.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	httpRouter.GET("/api/v1/board", s.handleBoard)
	httpRouter.GET("/api/v1/machine", s.handleMachine)
	httpRouter.GET("/api/v1/status", s.handleStatus)
	httpRouter.GET("/api/v1/logs", s.handleLogs)
	return httpRouter
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK\n")
}

// pinView is the wire shape of a single assigned pin role.
type pinView struct {
	Role string `json:"role"`
	Pin  int    `json:"pin"`
}

// boardView is the wire shape of the resolved board descriptor.
type boardView struct {
	Type        model.BoardType `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Version     string          `json:"version"`
	Pins        []pinView       `json:"pins"`
}

func (s *Server) handleBoard(c echo.Context) error {
	cfg, found := s.core.Boards().Resolve()
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "no board descriptor resolved")
	}
	view := boardView{
		Type:        cfg.Type,
		Name:        cfg.Name,
		Description: cfg.Description,
		Version:     cfg.Version.String(),
		Pins: lo.FilterMap(cfg.Pins.Roles(), func(ra model.RoleAssignment, _ int) (pinView, bool) {
			if !ra.Pin.IsAssigned() {
				return pinView{}, false
			}
			return pinView{Role: string(ra.Role), Pin: int(ra.Pin)}, true
		}),
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) handleMachine(c echo.Context) error {
	cfg, found := s.core.Machines().Resolve()
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "no machine variant resolved")
	}
	return c.JSON(http.StatusOK, cfg)
}

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.core.Status())
}

// handleLogs serves the retained log lines as plain text, one JSON
// document per line.
func (s *Server) handleLogs(c echo.Context) error {
	if s.logs == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no log capture wired")
	}
	return c.String(http.StatusOK, strings.Join(s.logs.Lines(), "\n")+"\n")
}
