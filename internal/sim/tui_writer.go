package sim

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/agent"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// stepMsg carries one completed population step.
type stepMsg struct {
	step  int
	rows  []telemetry.Row
	tide  float64
	alive int
	dead  int
}

// dailyMsg carries a daily aggregate row.
type dailyMsg struct{ telemetry.DailyRow }

// TUIWriter renders the live population as a terminal status board.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(runID string) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(runID), tea.WithAltScreen())
	w.program = p
	go func() {
		_ = p.Start()
		close(w.done)
		// Quitting the TUI ends the run like Ctrl-C on the plain CLI.
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements TelemetryWriter for single rows.
func (w *TUIWriter) Write(row telemetry.Row) error {
	return w.WriteBatch([]telemetry.Row{row})
}

// WriteBatch sends one step's rows to the status board.
func (w *TUIWriter) WriteBatch(rows []telemetry.Row) error {
	if len(rows) == 0 {
		return nil
	}
	msg := stepMsg{step: rows[0].Step, rows: rows, tide: rows[0].TidePhase}
	for _, r := range rows {
		if r.Alive {
			msg.alive++
		} else {
			msg.dead++
		}
	}
	w.program.Send(msg)
	return nil
}

// WriteDaily updates the daily summary line.
func (w *TUIWriter) WriteDaily(row telemetry.DailyRow) error {
	w.program.Send(dailyMsg{DailyRow: row})
	return nil
}

// Close stops the TUI without signalling the process.
func (w *TUIWriter) Close() {
	w.sendSignal.Store(false)
	w.program.Send(tea.Quit())
	<-w.done
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

type tuiModel struct {
	runID  string
	step   int
	tide   float64
	alive  int
	deaths int
	states map[agent.State]int
	daily  telemetry.DailyRow
	table  table.Model
	width  int
}

func newTUIModel(runID string) tuiModel {
	cols := []table.Column{
		{Title: "Seal", Width: 24},
		{Title: "State", Width: 12},
		{Title: "Energy", Width: 10},
		{Title: "Stomach", Width: 8},
		{Title: "Lat", Width: 9},
		{Title: "Lon", Width: 9},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(16))
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderBottom(true)
	t.SetStyles(s)
	return tuiModel{
		runID:  runID,
		states: map[agent.State]int{},
		table:  t,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(msg.Height - 8)
	case stepMsg:
		m.step = msg.step
		m.tide = msg.tide
		m.alive = msg.alive
		m.deaths += msg.dead
		m.states = map[agent.State]int{}
		rows := make([]table.Row, 0, len(msg.rows))
		for _, r := range msg.rows {
			m.states[agent.State(r.State)]++
			rows = append(rows, table.Row{
				shortID(r.SealID),
				r.State,
				fmt.Sprintf("%.0f", r.Energy),
				fmt.Sprintf("%.2f", r.Stomach),
				fmt.Sprintf("%.4f", r.Lat),
				fmt.Sprintf("%.4f", r.Lon),
			})
		}
		m.table.SetRows(rows)
	case dailyMsg:
		m.daily = msg.DailyRow
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("monk seal simulation  run=%s", m.runID))
	status := statusStyle.Render(fmt.Sprintf(
		"step %d  tide %.2f  alive %d  %s",
		m.step, m.tide, m.alive,
		deadStyle.Render(fmt.Sprintf("deaths %d", m.deaths))))
	counts := statusStyle.Render(fmt.Sprintf(
		"FOR %d  RES %d  SLP %d  HAUL %d  TRAN %d",
		m.states[agent.StateForaging], m.states[agent.StateResting],
		m.states[agent.StateSleeping], m.states[agent.StateHaulingOut],
		m.states[agent.StateTransiting]))
	daily := ""
	if m.daily.Population > 0 || m.daily.Deaths > 0 {
		daily = statusStyle.Render(fmt.Sprintf(
			"day %d  pop %d  mean energy %.0f  deaths %d",
			m.daily.Day, m.daily.Population, m.daily.MeanEnergy, m.daily.Deaths))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header, status, counts, daily, borderStyle.Render(m.table.View()))
}

// shortID trims the uuid suffix from "colony-idx-uuid" seal IDs for display.
func shortID(id string) string {
	if len(id) > 24 {
		return id[:24]
	}
	return id
}
