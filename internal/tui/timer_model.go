package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/work-hours/tracker/internal/models"
	"github.com/work-hours/tracker/internal/session"
)

// TimerModel is the full-screen tracking view: live clock on the left,
// session details and the closing-note input on the right.
type TimerModel struct {
	width  int
	height int

	store   *session.Store
	gateway session.Gateway
	sess    *models.TrackingSession

	// Timer state
	elapsedTime time.Duration

	// Animation state
	timerAnimation int

	// Note entry
	noteInput   textinput.Model
	noteFocused bool

	// Submission state
	submitting    bool
	submitted     *session.SubmittedSession
	validationErr string
	submitErr     string

	// True when user pressed ESC/Q and we're exiting with the timer running
	exiting bool
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// submitResultMsg carries the outcome of a time-log submission
type submitResultMsg struct {
	submitted *session.SubmittedSession
	err       error
}

// NewTimerModel creates the tracking view for the active session.
func NewTimerModel(store *session.Store, gateway session.Gateway, sess *models.TrackingSession) TimerModel {
	noteInput := textinput.New()
	noteInput.Placeholder = "What did you work on? (required to stop)"
	noteInput.Width = 50
	noteInput.CharLimit = 500
	noteInput.SetValue(sess.Note)
	noteInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	noteInput.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	noteInput.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return TimerModel{
		store:       store,
		gateway:     gateway,
		sess:        sess,
		elapsedTime: sess.Elapsed(time.Now()),
		noteInput:   noteInput,
	}
}

// Init starts the timer and animation tickers.
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return timerTickMsg{}
		}),
		tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
			return animationTickMsg{}
		}),
	)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		// Recompute from the start timestamp and mirror into storage.
		m.elapsedTime = m.sess.Elapsed(time.Now())
		m.store.Tick()

		if !m.exiting && m.submitted == nil {
			return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return timerTickMsg{}
			})
		}
		return m, nil

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4

		if !m.exiting && m.submitted == nil {
			return m, tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
				return animationTickMsg{}
			})
		}
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if errors.Is(msg.err, session.ErrEmptyNote) {
			m.validationErr = "Add a note before stopping"
			return m, nil
		}
		if msg.err != nil {
			// Session stays in storage untouched; keep tracking and let
			// the user retry.
			m.submitErr = msg.err.Error()
			return m, nil
		}
		m.submitted = msg.submitted
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.noteFocused {
			return m.updateNoteInput(msg)
		}

		switch msg.String() {
		case "n", "i":
			m.noteFocused = true
			m.validationErr = ""
			return m, m.noteInput.Focus()
		case "s", "S":
			return m.startSubmit()
		case "ctrl+c", "esc", "q":
			// Exit the view; the session keeps running.
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// updateNoteInput routes keys into the note field while it has focus.
func (m TimerModel) updateNoteInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.noteFocused = false
		m.noteInput.Blur()
		m.store.UpdateNote(m.noteInput.Value())
		return m, nil
	case "ctrl+c":
		m.exiting = true
		m.store.UpdateNote(m.noteInput.Value())
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	m.sess.Note = m.noteInput.Value()
	return m, cmd
}

// startSubmit kicks off the submission. Note validation happens in the
// session store, which answers with ErrEmptyNote before any network call.
func (m TimerModel) startSubmit() (tea.Model, tea.Cmd) {
	if m.submitting {
		// One submission at a time.
		return m, nil
	}

	m.store.UpdateNote(m.noteInput.Value())
	m.validationErr = ""
	m.submitErr = ""
	m.submitting = true

	store, gw := m.store, m.gateway
	return m, func() tea.Msg {
		submitted, err := store.Submit(context.Background(), gw)
		return submitResultMsg{submitted: submitted, err: err}
	}
}

// View renders the tracking view.
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	helpBarHeight := 1
	contentHeight := m.height - helpBarHeight - 1

	// Narrow view: just the timer panel, full width
	if m.width < 90 {
		timerPanel := m.renderTimerPanel(m.width, contentHeight)
		return lipgloss.JoinVertical(
			lipgloss.Left,
			timerPanel,
			helpBar,
		)
	}

	// Wide view: split screen
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	leftPanel := m.renderTimerPanel(leftWidth, contentHeight)
	rightPanel := m.renderSessionPanel(rightWidth, contentHeight)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		"  ",
		rightPanel,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		helpBar,
	)
}

// renderTimerPanel renders the left timer panel
func (m TimerModel) renderTimerPanel(width, height int) string {
	var components []string

	// Animated header
	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.timerAnimation]
	headerText := fmt.Sprintf("%s  TRACKING TIME  %s", animChar, animChar)
	if m.submitting {
		headerText = "⋯  SAVING TIME LOG  ⋯"
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, headerStyle.Render(headerText))

	// Project (and task) being tracked
	projectStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, projectStyle.Render(m.sess.ProjectName))

	if m.sess.TaskID != nil {
		taskStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Align(lipgloss.Center).
			Width(width)
		taskText := m.sess.TaskTitle
		if len(taskText) > width-4 {
			taskText = taskText[:width-7] + "..."
		}
		components = append(components, taskStyle.Render(taskText))
	}

	// Big clock display
	clockDisplay := m.renderBigClock()
	clockLines := strings.Split(clockDisplay, "\n")
	clockContent := ""
	for _, line := range clockLines {
		centeredLine := lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(width).
			Render(line)
		clockContent += centeredLine + "\n"
	}
	components = append(components, strings.TrimRight(clockContent, "\n"))

	// Session start time
	sessionInfo := fmt.Sprintf("Started at %s", m.sess.StartedAt.Local().Format("15:04:05"))
	sessionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, sessionStyle.Render(sessionInfo))

	content := strings.Join(components, "\n\n")

	panelStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return panelStyle.Render(content)
}

// renderBigClock renders ASCII art clock
func (m TimerModel) renderBigClock() string {
	// ASCII art for digits (5x5 characters each)
	digits := map[rune][][]string{
		'0': {
			{" ███ "},
			{"█   █"},
			{"█   █"},
			{"█   █"},
			{" ███ "},
		},
		'1': {
			{"  █  "},
			{" ██  "},
			{"  █  "},
			{"  █  "},
			{"█████"},
		},
		'2': {
			{" ███ "},
			{"█   █"},
			{"   █ "},
			{"  █  "},
			{"█████"},
		},
		'3': {
			{" ███ "},
			{"█   █"},
			{"  ██ "},
			{"█   █"},
			{" ███ "},
		},
		'4': {
			{"█   █"},
			{"█   █"},
			{"█████"},
			{"    █"},
			{"    █"},
		},
		'5': {
			{"█████"},
			{"█    "},
			{"████ "},
			{"    █"},
			{"████ "},
		},
		'6': {
			{" ███ "},
			{"█    "},
			{"████ "},
			{"█   █"},
			{" ███ "},
		},
		'7': {
			{"█████"},
			{"    █"},
			{"   █ "},
			{"  █  "},
			{" █   "},
		},
		'8': {
			{" ███ "},
			{"█   █"},
			{" ███ "},
			{"█   █"},
			{" ███ "},
		},
		'9': {
			{" ███ "},
			{"█   █"},
			{" ████"},
			{"    █"},
			{" ███ "},
		},
		':': {
			{"     "},
			{"  █  "},
			{"     "},
			{"  █  "},
			{"     "},
		},
	}

	timeStr := FormatClock(m.elapsedTime)

	var lines [5]strings.Builder
	for _, char := range timeStr {
		if digitArt, ok := digits[char]; ok {
			for i := 0; i < 5; i++ {
				lines[i].WriteString(digitArt[i][0])
				lines[i].WriteString(" ")
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// renderSessionPanel renders the right panel with session details and the
// closing-note input.
func (m TimerModel) renderSessionPanel(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width - 12).
		Padding(0, 1)
	b.WriteString(titleStyle.Render("Session"))
	b.WriteString("\n\n")

	lineStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width - 8)

	projectLine := fmt.Sprintf("📁 Project: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(m.sess.ProjectName))
	b.WriteString(lineStyle.Render(projectLine))
	b.WriteString("\n")

	taskValue := "project-level"
	taskColor := ColorDisabledText
	if m.sess.TaskID != nil {
		taskValue = fmt.Sprintf("#%d %s", *m.sess.TaskID, m.sess.TaskTitle)
		taskColor = ColorPrimaryText
	}
	taskLine := fmt.Sprintf("☑ Task: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(taskColor)).Render(taskValue))
	b.WriteString(lineStyle.Render(taskLine))
	b.WriteString("\n")

	startedLine := fmt.Sprintf("🕐 Started: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(m.sess.StartedAt.Local().Format("Jan 02, 15:04:05")))
	b.WriteString(lineStyle.Render(startedLine))
	b.WriteString("\n\n")

	// Note input
	noteLabelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Width(width - 8)
	noteLabel := "Note"
	if m.noteFocused {
		noteLabel = "Note (editing)"
	}
	b.WriteString(noteLabelStyle.Render(noteLabel))
	b.WriteString("\n")

	borderColor := ColorBorder
	if m.noteFocused {
		borderColor = ColorAccentBright
	}
	noteBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(width - 12).
		Padding(0, 1)
	b.WriteString(lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8).Render(noteBoxStyle.Render(m.noteInput.View())))
	b.WriteString("\n")

	if m.validationErr != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Align(lipgloss.Center).
			Width(width - 8)
		b.WriteString(errStyle.Render("⚠ " + m.validationErr))
		b.WriteString("\n")
	}
	if m.submitErr != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Align(lipgloss.Center).
			Width(width - 8)
		b.WriteString(errStyle.Render("⚠ Save failed: " + m.submitErr))
		b.WriteString("\n")
		retryStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Align(lipgloss.Center).
			Width(width - 8)
		b.WriteString(retryStyle.Render("Your time is safe. Press s to retry."))
		b.WriteString("\n")
	}

	panelStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return panelStyle.Render(b.String())
}

// renderHelpBar renders the help bar at the bottom
func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "n edit note · s stop & save · esc/q exit (keep running)"
	if m.noteFocused {
		helpText = "enter/esc done editing"
	}

	return helpStyle.Render(helpText)
}
