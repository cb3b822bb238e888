/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephgoksu/RoadWing/internal/schedule"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/spf13/cobra"
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the derived week-by-week timeline",
	Long: `Derive and render the roadmap timeline. Tasks are packed
back-to-back in orderIndex order; the horizon is at least 12 periods.

With --watch the view re-renders whenever the data file changes.`,
	RunE: runTimeline,
}

var timelineWatch bool

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().BoolVarP(&timelineWatch, "watch", "w", false, "re-render when the data file changes")
}

func scheduleConfig() schedule.Config {
	cfg := GetConfig()
	return schedule.Config{
		HoursPerPeriod:       cfg.Schedule.HoursPerPeriod,
		MinHorizonPeriods:    cfg.Schedule.MinHorizonPeriods,
		DefaultEstimateHours: cfg.Schedule.DefaultEstimateHours,
	}
}

func runTimeline(cmd *cobra.Command, args []string) error {
	roadmapID, err := currentRoadmapID()
	if err != nil {
		return err
	}

	loadTasks := func() ([]models.Task, error) {
		s, err := GetStore()
		if err != nil {
			return nil, err
		}
		defer func() { _ = s.Close() }()
		return s.ListTasks(roadmapID)
	}

	if !timelineWatch {
		tasks, err := loadTasks()
		if err != nil {
			return err
		}
		tl := schedule.Derive(tasks, scheduleConfig())
		if isJSON() {
			return printJSON(tl)
		}
		fmt.Println(ui.RenderTimeline(tl, tasks))
		return nil
	}

	return watchTimeline(loadTasks)
}

// watchTimeline re-renders the timeline whenever the data file changes,
// until interrupted.
func watchTimeline(loadTasks func() ([]models.Task, error)) error {
	var tasks []models.Task
	load := func() (schedule.Timeline, error) {
		t, err := loadTasks()
		if err != nil {
			return schedule.Timeline{}, err
		}
		tasks = t
		return schedule.Derive(t, scheduleConfig()), nil
	}

	cache, err := schedule.NewCache(GetDataFilePath(), load)
	if err != nil {
		return err
	}
	defer cache.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	var last string
	render := func() {
		tl, err := cache.Get()
		if err != nil {
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			return
		}
		out := ui.RenderTimeline(tl, tasks)
		if out == last {
			return
		}
		last = out
		fmt.Print("\033[H\033[2J") // clear screen
		fmt.Println(ui.StyleSubtle.Render("Watching for changes. Ctrl+C to exit."))
		fmt.Println(out)
	}

	render()
	for {
		select {
		case <-ticker.C:
			render()
		case <-sigCh:
			return nil
		}
	}
}
