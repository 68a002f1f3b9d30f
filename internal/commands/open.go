package commands

import (
	"github.com/spf13/cobra"

	"github.com/work-hours/tracker/internal/bus"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the tracking view",
	Long: `Open the tracker UI. With a running session this goes straight to the
timer view; otherwise the project picker opens first.`,
	Run: withCatalog(runOpen),
}

func runOpen(cmd *cobra.Command, args []string) {
	// The open request goes over the bus like any other surface's would;
	// the handler decides between the active view and the picker.
	eventBus.Subscribe(bus.OpenTracker, func(bus.Event) {
		if active := sessions.Active(); active != nil {
			showTimer(active)
			return
		}
		if sess := startFromPicker(); sess != nil {
			showTimer(sess)
		}
	})

	eventBus.Publish(bus.Event{Topic: bus.OpenTracker})
}
