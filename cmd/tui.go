// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Calorique

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Calorique/frostbeam/pkg/irlink"
	"github.com/Calorique/frostbeam/pkg/technibel"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive remote control",
	Long: `An interactive terminal remote for the A/C unit.

Move between settings with up/down, adjust with left/right, type a
temperature directly with 't', and press enter to transmit the current state
through the dongle.`,
	RunE: runTui,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

//////////////////////////////////////////////////////////////
// Fields
//////////////////////////////////////////////////////////////

const (
	fieldPower = iota
	fieldMode
	fieldTemp
	fieldUnit
	fieldFan
	fieldSwing
	fieldSleep
	fieldTimer
	fieldCount
)

var fieldNames = [fieldCount]string{
	"Power", "Mode", "Temperature", "Unit", "Fan", "Swing", "Sleep", "Timer",
}

// Adjustment order for cycling flags with left/right
var (
	modeCycle = []uint8{technibel.ModeCool, technibel.ModeHeat, technibel.ModeDry, technibel.ModeFan}
	fanCycle  = []uint8{technibel.FanLow, technibel.FanMedium, technibel.FanHigh}
)

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type sendDoneMsg struct {
	raw uint64
	err error
}

//////////////////////////////////////////////////////////////
// Model
//////////////////////////////////////////////////////////////

type tuiModel struct {
	conn     Connection
	connInfo string

	ac     *technibel.AC
	cursor int

	tempInput  textinput.Model
	editingTmp bool

	sending  bool
	status   string
	statusAt time.Time
	quitting bool
}

var (
	tuiTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	tuiSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tuiLabelStyle    = lipgloss.NewStyle().Width(13)
	tuiValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	tuiStatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tuiErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tuiHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tuiBorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func initialTuiModel(conn Connection, connInfo string) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "20"
	ti.CharLimit = 2
	ti.Width = 4

	return tuiModel{
		conn:      conn,
		connInfo:  connInfo,
		ac:        technibel.New(),
		cursor:    fieldPower,
		tempInput: ti,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

//////////////////////////////////////////////////////////////
// Update
//////////////////////////////////////////////////////////////

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case sendDoneMsg:
		m.sending = false
		m.statusAt = time.Now()
		if msg.err != nil {
			m.status = tuiErrorStyle.Render(fmt.Sprintf("Send failed: %v", msg.err))
		} else {
			m.status = tuiStatusStyle.Render(fmt.Sprintf("Sent 0x%014X", msg.raw))
		}
	}

	if m.editingTmp {
		var cmd tea.Cmd
		m.tempInput, cmd = m.tempInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingTmp {
		switch msg.String() {
		case "enter":
			if deg, err := strconv.Atoi(m.tempInput.Value()); err == nil {
				m.ac.SetTemp(uint8(deg), m.ac.TempUnit())
			}
			m.editingTmp = false
			m.tempInput.Blur()
			return m, nil
		case "esc":
			m.editingTmp = false
			m.tempInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.tempInput, cmd = m.tempInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < fieldCount-1 {
			m.cursor++
		}

	case "left", "h":
		m.adjust(-1)

	case "right", "l", " ":
		m.adjust(1)

	case "t":
		m.cursor = fieldTemp
		m.editingTmp = true
		m.tempInput.SetValue("")
		m.tempInput.Focus()
		return m, textinput.Blink

	case "enter":
		if !m.sending {
			m.sending = true
			m.status = "Sending..."
			return m, m.sendCmd()
		}
	}
	return m, nil
}

// adjust changes the value under the cursor by one step in either direction.
// All the protocol's clamping rules apply, so an "illegal" step is simply
// corrected (dry mode snaps the fan back to low, temps saturate, and so on).
func (m *tuiModel) adjust(dir int) {
	switch m.cursor {
	case fieldPower:
		m.ac.SetPower(!m.ac.Power())
	case fieldMode:
		m.ac.SetMode(cycle(modeCycle, m.ac.Mode(), dir))
	case fieldTemp:
		m.ac.SetTemp(uint8(int(m.ac.Temp())+dir), m.ac.TempUnit())
	case fieldUnit:
		// Re-express the remembered temperature in the other unit's range
		fahrenheit := !m.ac.TempUnit()
		deg := m.ac.Temp()
		if fahrenheit {
			deg = uint8(int(deg)*9/5 + 32)
		} else {
			deg = uint8((int(deg) - 32) * 5 / 9)
		}
		m.ac.SetTemp(deg, fahrenheit)
	case fieldFan:
		m.ac.SetFan(cycle(fanCycle, m.ac.Fan(), dir))
	case fieldSwing:
		m.ac.SetSwing(!m.ac.Swing())
	case fieldSleep:
		m.ac.SetSleep(!m.ac.Sleep())
	case fieldTimer:
		m.ac.SetTimer(stepTimer(m.ac.Timer(), dir))
	}
}

// cycle steps through a value list, wrapping at both ends.
func cycle(values []uint8, current uint8, dir int) uint8 {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(values)) % len(values)
	return values[idx]
}

// stepTimer moves the off timer one hour at a time within 0-24h.
func stepTimer(minutes uint16, dir int) uint16 {
	hours := int(minutes/60) + dir
	if hours < 0 {
		hours = 0
	}
	if hours > technibel.TimerMax {
		hours = technibel.TimerMax
	}
	return uint16(hours * 60)
}

// sendCmd encodes the current state and transmits it off the UI goroutine.
func (m tuiModel) sendCmd() tea.Cmd {
	encoder := technibel.NewEncoder()
	pulses := encoder.Encode(m.ac)
	raw := m.ac.Raw()
	conn := m.conn

	return func() tea.Msg {
		request := irlink.NewTransmitRequest(irlink.Transmission{
			Pulses:    pulses,
			CarrierHz: technibel.CarrierHz,
			DutyCycle: technibel.DutyCycle,
		})
		if _, err := conn.Write(irlink.MustEncodeFrame(request)); err != nil {
			return sendDoneMsg{raw, err}
		}
		if _, err := awaitFrame(conn, irlink.MsgTransmitDone, 5*time.Second); err != nil {
			return sendDoneMsg{raw, err}
		}
		return sendDoneMsg{raw, nil}
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var rows string
	for f := 0; f < fieldCount; f++ {
		label := tuiLabelStyle.Render(fieldNames[f])
		value := m.fieldValue(f)
		line := fmt.Sprintf("%s %s", label, tuiValueStyle.Render(value))
		if f == m.cursor {
			line = tuiSelectedStyle.Render("> " + fmt.Sprintf("%s %s", label, value))
		} else {
			line = "  " + line
		}
		rows += line + "\n"
	}

	status := m.status
	if m.sending {
		status = "Sending..."
	}

	help := tuiHelpStyle.Render("up/down: select - left/right: adjust - t: type temp - enter: send - q: quit")

	body := tuiTitleStyle.Render("Frostbeam Remote") + "\n" +
		tuiHelpStyle.Render(m.connInfo) + "\n\n" +
		rows + "\n" + status + "\n\n" + help

	return tuiBorderStyle.Render(body) + "\n"
}

func (m tuiModel) fieldValue(f int) string {
	switch f {
	case fieldPower:
		return onOffLabel(m.ac.Power())
	case fieldMode:
		return m.ac.ToCommon().Mode.String()
	case fieldTemp:
		if m.editingTmp {
			return m.tempInput.View()
		}
		return fmt.Sprintf("%d", m.ac.Temp())
	case fieldUnit:
		if m.ac.TempUnit() {
			return "Fahrenheit"
		}
		return "Celsius"
	case fieldFan:
		return m.ac.ToCommon().Fan.String()
	case fieldSwing:
		return onOffLabel(m.ac.Swing())
	case fieldSleep:
		return onOffLabel(m.ac.Sleep())
	case fieldTimer:
		if mins := m.ac.Timer(); mins > 0 {
			return fmt.Sprintf("%dh", mins/60)
		}
		return "Off"
	}
	return ""
}

func onOffLabel(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

func runTui(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	program := tea.NewProgram(initialTuiModel(conn, connInfo), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
