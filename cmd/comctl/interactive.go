package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/combridge"
	"github.com/wippyai/combridge/comtest"
	"github.com/wippyai/combridge/event"
	"github.com/wippyai/combridge/rdp"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// sessionEvent is one notification forwarded from the subscription
// handler into the program loop.
type sessionEvent struct {
	member int32
	args   []combridge.Value
}

type monitorModel struct {
	err          error
	rt           *comtest.Runtime
	server       *rdp.Server
	events       chan sessionEvent
	log          []string
	attendees    []combridge.Raw
	nextAttendee int
	paused       bool
}

func newMonitorModel() (*monitorModel, error) {
	rt := newDemoRuntime()
	events := make(chan sessionEvent, 16)

	server, err := rdp.NewServer(rt, event.HandlerFunc(func(member int32, args []combridge.Value) {
		select {
		case events <- sessionEvent{member: member, args: args}:
		default:
		}
	}))
	if err != nil {
		return nil, err
	}
	if err := server.Open(); err != nil {
		server.Close()
		return nil, err
	}

	return &monitorModel{
		rt:     rt,
		server: server,
		events: events,
	}, nil
}

func (m *monitorModel) Init() tea.Cmd {
	return m.waitForEvent
}

func (m *monitorModel) waitForEvent() tea.Msg {
	return <-m.events
}

func (m *monitorModel) sessionRaw() combridge.Raw {
	return m.server.Raw()
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.server.Close()
			return m, tea.Quit

		case "a":
			attendee := m.rt.NewObject(rdp.CapAttendee)
			m.nextAttendee++
			m.rt.SetProp(attendee, "RemoteName",
				combridge.StringValue(fmt.Sprintf("attendee-%d", m.nextAttendee)))
			m.rt.Fire(m.sessionRaw(), rdp.CapSessionEvents,
				rdp.EventAttendeeConnected, combridge.ObjectValue(attendee))

		case "d":
			if n := len(m.attendees); n > 0 {
				raw := m.attendees[n-1]
				m.attendees = m.attendees[:n-1]
				m.rt.Fire(m.sessionRaw(), rdp.CapSessionEvents,
					rdp.EventAttendeeDisconnected)
				m.rt.Release(raw)
			}

		case "p":
			if err := m.server.Pause(); err != nil {
				m.err = err
				return m, nil
			}
			m.paused = true
			m.rt.Fire(m.sessionRaw(), rdp.CapSessionEvents, rdp.EventGraphicsStreamPaused)

		case "r":
			if err := m.server.Resume(); err != nil {
				m.err = err
				return m, nil
			}
			m.paused = false
		}

	case sessionEvent:
		m.log = append(m.log, m.describe(msg))
		if len(m.log) > 12 {
			m.log = m.log[len(m.log)-12:]
		}
		return m, m.waitForEvent
	}

	return m, nil
}

func (m *monitorModel) describe(e sessionEvent) string {
	switch e.member {
	case rdp.EventAttendeeConnected:
		if len(e.args) > 0 {
			if raw, ok := e.args[0].Object(); ok {
				m.attendees = append(m.attendees, raw)
				nameVal, _ := m.rt.PropValue(raw, "RemoteName")
				name, _ := nameVal.Str()
				return fmt.Sprintf("attendee connected: %s", name)
			}
		}
		return "attendee connected"
	case rdp.EventAttendeeDisconnected:
		return "attendee disconnected"
	case rdp.EventControlLevelChanged:
		return "control level changed"
	case rdp.EventGraphicsStreamPaused:
		return "graphics stream paused"
	case rdp.EventError:
		return "session error"
	}
	return fmt.Sprintf("event %d", e.member)
}

func (m *monitorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Session Monitor"))
	state := "sharing"
	if m.paused {
		state = "paused"
	}
	b.WriteString(" " + state + "\n\n")

	b.WriteString(statStyle.Render(fmt.Sprintf(
		"attendees: %d   live objects: %d   live refs: %d",
		len(m.attendees), m.rt.LiveObjects(), m.rt.LiveRefs())))
	b.WriteString("\n\n")

	if len(m.log) == 0 {
		b.WriteString(helpStyle.Render("no notifications yet"))
		b.WriteString("\n")
	}
	for _, line := range m.log {
		b.WriteString(eventStyle.Render("• " + line))
		b.WriteString("\n")
	}

	if v := m.rt.Violations(); len(v) > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("boundary violations: %d", len(v))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a attendee joins • d attendee leaves • p pause • r resume • q quit"))
	return b.String()
}

func runInteractive() error {
	m, err := newMonitorModel()
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
