package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/work-hours/tracker/internal/models"
)

// PickerStep is the current step of the quick-track picker
type PickerStep int

const (
	StepProject PickerStep = iota
	StepTask
)

// PickResult is what the picker returns: a project and an optional task.
type PickResult struct {
	Project models.Project
	Task    *models.Task
}

// PickerModel is the quick-track modal: choose a project, then optionally a
// task, and the caller starts the session.
type PickerModel struct {
	width  int
	height int

	step     PickerStep
	projects []models.Project
	tasks    []models.Task

	filter textinput.Model
	cursor int

	chosenProject *models.Project

	result    *PickResult
	cancelled bool
}

// NewPickerModel creates a picker over the cached catalog.
func NewPickerModel(projects []models.Project, tasks []models.Task) PickerModel {
	filter := textinput.New()
	filter.Placeholder = "Type to filter..."
	filter.Width = 40
	filter.CharLimit = 100
	filter.Focus()
	filter.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	filter.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	filter.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return PickerModel{
		step:     StepProject,
		projects: projects,
		tasks:    tasks,
		filter:   filter,
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.step == StepTask {
				// Back to project selection
				m.step = StepProject
				m.chosenProject = nil
				m.cursor = 0
				m.filter.SetValue("")
				return m, nil
			}
			m.cancelled = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < m.visibleCount()-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			return m.choose()
		}

		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	return m, nil
}

// choose handles selection on the current step.
func (m PickerModel) choose() (tea.Model, tea.Cmd) {
	switch m.step {
	case StepProject:
		projects := m.filteredProjects()
		if len(projects) == 0 || m.cursor >= len(projects) {
			return m, nil
		}
		project := projects[m.cursor]
		m.chosenProject = &project

		if len(m.projectTasks(project.ID)) == 0 {
			// No tasks to offer, start project-level
			m.result = &PickResult{Project: project}
			return m, tea.Quit
		}

		m.step = StepTask
		m.cursor = 0
		m.filter.SetValue("")
		return m, nil

	case StepTask:
		tasks := m.filteredTasks()
		if m.cursor == 0 {
			// "No task" entry
			m.result = &PickResult{Project: *m.chosenProject}
			return m, tea.Quit
		}
		if m.cursor-1 < len(tasks) {
			task := tasks[m.cursor-1]
			m.result = &PickResult{Project: *m.chosenProject, Task: &task}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PickerModel) visibleCount() int {
	if m.step == StepProject {
		return len(m.filteredProjects())
	}
	return len(m.filteredTasks()) + 1 // +1 for "No task"
}

func (m PickerModel) filteredProjects() []models.Project {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.projects
	}
	var out []models.Project
	for _, p := range m.projects {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Client), needle) {
			out = append(out, p)
		}
	}
	return out
}

func (m PickerModel) projectTasks(projectID uint) []models.Task {
	var out []models.Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

func (m PickerModel) filteredTasks() []models.Task {
	tasks := m.projectTasks(m.chosenProject.ID)
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return tasks
	}
	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	headerText := "Start tracking — choose a project"
	if m.step == StepTask {
		headerText = fmt.Sprintf("Start tracking — %s — choose a task", m.chosenProject.Name)
	}
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	b.WriteString(headerStyle.Render(headerText))
	b.WriteString("\n\n")

	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText))
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))

	if m.step == StepProject {
		projects := m.filteredProjects()
		if len(projects) == 0 {
			b.WriteString(mutedStyle.Render("No matching projects. Run 'tracker sync' to refresh the catalog."))
			b.WriteString("\n")
		}
		for i, p := range projects {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("▸ ") + selectedStyle.Render(p.Name))
				if p.Client != "" {
					b.WriteString(mutedStyle.Render("  ·  " + p.Client))
				}
			} else {
				b.WriteString("  " + normalStyle.Render(p.Name))
				if p.Client != "" {
					b.WriteString(mutedStyle.Render("  ·  " + p.Client))
				}
			}
			b.WriteString("\n")
		}
	} else {
		if m.cursor == 0 {
			b.WriteString(selectedStyle.Render("▸ No task (track against the project)"))
		} else {
			b.WriteString("  " + mutedStyle.Render("No task (track against the project)"))
		}
		b.WriteString("\n")
		for i, t := range m.filteredTasks() {
			if i+1 == m.cursor {
				b.WriteString(selectedStyle.Render(fmt.Sprintf("▸ #%d %s", t.ID, t.Title)))
			} else {
				b.WriteString("  " + normalStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	helpText := "↑/↓ navigate · enter select · esc cancel"
	if m.step == StepTask {
		helpText = "↑/↓ navigate · enter start · esc back"
	}
	b.WriteString(helpStyle.Render(helpText))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2)

	panelStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	return panelStyle.Render(boxStyle.Render(b.String()))
}
