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

// Package ui renders a terminal status view of the machine core,
// showing the resolved configuration and the live pin states.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/brewos/MachineCore/service"
	"github.com/brewos/MachineCore/service/boards"
	"github.com/brewos/MachineCore/service/bridge"
)

var maskAny = errors.WithStack

// Core is the part of the machine core the UI observes.
type Core interface {
	Boards() *boards.Registry
	Bridge() bridge.API
	Status() service.Status
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	faultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type Root struct {
	core   Core
	events chan bridge.PinEvent

	width  int
	height int

	table table.Model
}

var _ tea.Model = Root{}

// New builds the root model observing the given core.
func New(core Core) Root {
	columns := []table.Column{
		{Title: "Role", Width: 24},
		{Title: "Pin", Width: 5},
		{Title: "Dir", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Pull", Width: 6},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(18),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	tbl.SetStyles(styles)

	events := make(chan bridge.PinEvent, 64)
	if src, ok := core.Bridge().(bridge.EventSource); ok {
		// Drop events when the UI cannot keep up, the next refresh
		// reads the snapshot anyway.
		src.RegisterPinEventReceiver(func(evt bridge.PinEvent) {
			select {
			case events <- evt:
			default:
			}
		})
	}

	root := Root{
		core:   core,
		events: events,
		table:  tbl,
	}
	root.table.SetRows(root.buildRows())
	return root
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (r Root) Init() tea.Cmd {
	return tea.Batch(doTick(), r.waitForEvent())
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (r Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		r.table.SetRows(r.buildRows())
		cmds = append(cmds, doTick())
	case pinEventMsg:
		r.table.SetRows(r.buildRows())
		cmds = append(cmds, r.waitForEvent())
	case tea.WindowSizeMsg:
		r.height = msg.Height
		r.width = msg.Width
		headerHeight := lipgloss.Height(r.headerView())
		if h := msg.Height - headerHeight - 2; h > 3 {
			r.table.SetHeight(h)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return r, tea.Quit
		}
	}

	var cmd tea.Cmd
	r.table, cmd = r.table.Update(msg)
	cmds = append(cmds, cmd)

	return r, tea.Batch(cmds...)
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (r Root) View() string {
	s := r.headerView()
	s += r.table.View() + "\n"
	s += statusStyle.Render("q - Quit") + "\n"
	return s
}

func (r Root) headerView() string {
	status := r.core.Status()
	title := headerStyle.Render(fmt.Sprintf("BrewOS machine core %s", status.ProgramVersion))
	line := fmt.Sprintf("%s (board %s)  machine: %s",
		status.BoardName, status.BoardVersion, status.MachineName)
	if status.Budget != nil {
		line += fmt.Sprintf("  budget %.1fA", status.Budget.MaxCombinedCurrent)
	}
	if status.Uptime > 0 {
		line += fmt.Sprintf("  up %s", humanize.RelTime(time.Now().Add(-status.Uptime), time.Now(), "", ""))
	}
	s := title + "\n" + statusStyle.Render(line) + "\n"
	if status.BringupError != "" {
		s += faultStyle.Render(fmt.Sprintf("bring-up refused: %s", status.BringupError)) + "\n"
	}
	return s
}

// buildRows projects the assigned pin roles and their current state
// into table rows.
func (r Root) buildRows() []table.Row {
	cfg, found := r.core.Boards().Resolve()
	if !found {
		return nil
	}
	rec, hasRecorder := r.core.Bridge().(bridge.Recorder)

	var rows []table.Row
	for _, ra := range cfg.Pins.Roles() {
		if !ra.Pin.IsAssigned() {
			continue
		}
		dir, level, pull := "-", "-", "-"
		if hasRecorder {
			if snap, touched := rec.PinSnapshot(ra.Pin); touched {
				if snap.Initialized {
					dir = snap.Direction.String()
				} else if snap.Function != bridge.FunctionSIO {
					dir = snap.Function.String()
				}
				level = levelString(snap.Level)
				switch {
				case snap.PullUp:
					pull = "up"
				case snap.PullDown:
					pull = "down"
				}
			}
		}
		rows = append(rows, table.Row{string(ra.Role), ra.Pin.String(), dir, level, pull})
	}
	return rows
}

func levelString(level bool) string {
	if level {
		return "high"
	}
	return "low"
}

// Run the status UI until the user quits.
func Run(core Core) error {
	p := tea.NewProgram(New(core), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return maskAny(err)
	}
	return nil
}

type tickMsg time.Time

func doTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type pinEventMsg bridge.PinEvent

func (r Root) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return pinEventMsg(<-r.events)
	}
}
