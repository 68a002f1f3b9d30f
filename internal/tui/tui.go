package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/work-hours/tracker/internal/models"
	"github.com/work-hours/tracker/internal/session"
)

// RunTimerTUI opens the full-screen tracking view for the active session.
// onSubmitted is called after a successful stop-and-save, before the summary
// is printed, so the caller can mirror the log into local history.
func RunTimerTUI(store *session.Store, gateway session.Gateway, sess *models.TrackingSession, onSubmitted func(session.SubmittedSession)) error {
	model := NewTimerModel(store, gateway, sess)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	timerModel := finalModel.(TimerModel)
	if timerModel.submitted != nil {
		submitted := *timerModel.submitted
		if onSubmitted != nil {
			onSubmitted(submitted)
		}
		fmt.Printf("⏹️  Stopped tracking %s\n", submitted.ProjectName)
		fmt.Printf("📊 Session duration: %s\n", FormatDuration(submitted.Duration()))
	} else if timerModel.exiting {
		fmt.Printf("\n💡 Timer is still running in the background for %s\n", sess.ProjectName)
		fmt.Printf("   Use 'tracker status' to check it or 'tracker stop' to finish.\n")
	}

	return nil
}

// RunPickerTUI opens the quick-track picker and returns the selection, or
// nil if the user cancelled.
func RunPickerTUI(projects []models.Project, tasks []models.Task) (*PickResult, error) {
	model := NewPickerModel(projects, tasks)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	pickerModel := finalModel.(PickerModel)
	if pickerModel.cancelled || pickerModel.result == nil {
		return nil, nil
	}
	return pickerModel.result, nil
}
