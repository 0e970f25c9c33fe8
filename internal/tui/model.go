// Package tui implements the interactive room browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/collab-booking/internal/client"
	"github.com/example/collab-booking/internal/render"
)

// Backend is the subset of the API client the browser needs.
type Backend interface {
	Sessions(ctx context.Context) ([]client.Session, error)
	DefaultSession(ctx context.Context, now time.Time) (client.Session, error)
	Partition(ctx context.Context, sessionID string) (client.Partition, error)
	Book(ctx context.Context, roomID, sessionID string) (client.Booking, error)
}

type sessionsLoadedMsg struct {
	sessions  []client.Session
	defaultID string
	err       error
}

type partitionLoadedMsg struct {
	sessionID string
	partition client.Partition
	err       error
}

type bookedMsg struct {
	booking client.Booking
	err     error
}

// Model holds the browser state. The selected session drives the partition
// shown below it; every selection change or booking reloads the partition.
type Model struct {
	ctx     context.Context
	backend Backend
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	sessions  []client.Session
	selected  int
	partition client.Partition
	cursor    int

	loading bool
	status  string
	err     error
	width   int
}

func NewModel(ctx context.Context, backend Backend) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
	return Model{
		ctx:     ctx,
		backend: backend,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSessions())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionsLoadedMsg:
		if msg.err != nil {
			m.loading = false
			m.err = msg.err
			return m, nil
		}
		m.sessions = msg.sessions
		m.selected = 0
		for i, session := range m.sessions {
			if session.ID == msg.defaultID {
				m.selected = i
			}
		}
		if len(m.sessions) == 0 {
			m.loading = false
			return m, nil
		}
		return m, m.loadPartition()

	case partitionLoadedMsg:
		if msg.sessionID != m.selectedSessionID() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.partition = msg.partition
		m.cursor = min(m.cursor, max(len(m.partition.Available)-1, 0))
		return m, nil

	case bookedMsg:
		m.status = render.BookingResult(msg.booking, msg.err)
		if msg.err != nil && !errors.Is(msg.err, client.ErrAlreadyBooked) {
			m.err = msg.err
		}
		return m, m.loadPartition()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.PrevSession):
		if m.selected > 0 {
			m.selected--
			m.cursor = 0
			m.status = ""
			m.loading = true
			return m, m.loadPartition()
		}

	case key.Matches(msg, m.keys.NextSession):
		if m.selected < len(m.sessions)-1 {
			m.selected++
			m.cursor = 0
			m.status = ""
			m.loading = true
			return m, m.loadPartition()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.partition.Available)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadPartition()

	case key.Matches(msg, m.keys.Book):
		room, ok := m.selectedRoom()
		if !ok {
			return m, nil
		}
		return m, m.book(room.ID)
	}

	return m, nil
}

func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Collaboration rooms")
	if m.err != nil && len(m.sessions) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", "Error: "+m.err.Error(), "", m.help.View(m.keys))
	}

	parts := []string{title, "", render.SessionSlider(m.sessions, m.selected), ""}
	if m.loading {
		parts = append(parts, fmt.Sprintf("%s Loading rooms...", m.spinner.View()))
	} else if len(m.sessions) > 0 {
		opts := render.PartitionOptions{}
		if room, ok := m.selectedRoom(); ok {
			opts.SelectedRoomID = room.ID
		}
		parts = append(parts, render.Partition(m.partition, opts))
	}
	if m.status != "" {
		parts = append(parts, "", m.status)
	}
	if m.err != nil {
		parts = append(parts, "", "Error: "+m.err.Error())
	}
	parts = append(parts, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) selectedSessionID() string {
	if m.selected < 0 || m.selected >= len(m.sessions) {
		return ""
	}
	return m.sessions[m.selected].ID
}

func (m Model) selectedRoom() (client.Room, bool) {
	if m.partition.Session.ID != m.selectedSessionID() {
		return client.Room{}, false
	}
	if m.cursor < 0 || m.cursor >= len(m.partition.Available) {
		return client.Room{}, false
	}
	return m.partition.Available[m.cursor], true
}

func (m Model) loadSessions() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		sessions, err := backend.Sessions(ctx)
		if err != nil {
			return sessionsLoadedMsg{err: err}
		}
		current, err := backend.DefaultSession(ctx, time.Time{})
		if err != nil && !errors.Is(err, client.ErrNotFound) {
			return sessionsLoadedMsg{err: err}
		}
		return sessionsLoadedMsg{sessions: sessions, defaultID: current.ID}
	}
}

func (m Model) loadPartition() tea.Cmd {
	sessionID := m.selectedSessionID()
	if sessionID == "" {
		return nil
	}
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		partition, err := backend.Partition(ctx, sessionID)
		return partitionLoadedMsg{sessionID: sessionID, partition: partition, err: err}
	}
}

func (m Model) book(roomID string) tea.Cmd {
	sessionID := m.selectedSessionID()
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		booking, err := backend.Book(ctx, roomID, sessionID)
		return bookedMsg{booking: booking, err: err}
	}
}

// Run starts the browser on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, backend Backend) error {
	p := tea.NewProgram(NewModel(ctx, backend), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
