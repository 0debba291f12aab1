package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/hochfrequenz/shift-tracker/internal/recordstore"
	"github.com/hochfrequenz/shift-tracker/internal/report"
	"github.com/hochfrequenz/shift-tracker/internal/tracker"
	"github.com/hochfrequenz/shift-tracker/internal/watch"
	"github.com/hochfrequenz/shift-tracker/internal/week"
	"github.com/hochfrequenz/shift-tracker/tui"
	"github.com/spf13/cobra"
)

func addCommands(rootCmd *cobra.Command, a *app) {
	// start command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start or resume tracking time",
		Args:  cobra.NoArgs,
		RunE:  a.runStart,
	})

	// stop command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stop [COMMENT...]",
		Short: "Stop tracking and finish the current shift",
		RunE:  a.runStop,
	})

	// pause command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause tracking",
		Args:  cobra.NoArgs,
		RunE:  a.runPause,
	})

	// status command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current state",
		Args:  cobra.NoArgs,
		RunE:  a.runStatus,
	})

	// display command
	var displayAbsolute bool
	displayCmd := &cobra.Command{
		Use:   "display [WEEK]",
		Short: "Display the hours of a week",
		Long: `Display the hours of a week.

WEEK counts back from the current week (0, the default, is this week).
With --absolute it counts forward from the week containing January 1.
Negative weeks must follow "--", e.g. "work display -- -1".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDisplay(args, displayAbsolute)
		},
	}
	displayCmd.Flags().BoolVarP(&displayAbsolute, "absolute", "a", false, "count weeks from the start of the year")
	rootCmd.AddCommand(displayCmd)

	// edit command
	var editAbsolute bool
	editCmd := &cobra.Command{
		Use:   "edit [WEEK]",
		Short: "Edit the shifts of a week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(args, editAbsolute)
		},
	}
	editCmd.Flags().BoolVarP(&editAbsolute, "absolute", "a", false, "count weeks from the start of the year")
	rootCmd.AddCommand(editCmd)

	// export command
	var exportAbsolute bool
	var exportFormat string
	exportCmd := &cobra.Command{
		Use:   "export [WEEK]",
		Short: "Export the hours of a week as YAML or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(args, exportAbsolute, exportFormat)
		},
	}
	exportCmd.Flags().BoolVarP(&exportAbsolute, "absolute", "a", false, "count weeks from the start of the year")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", report.FormatYAML, "output format (yaml or json)")
	rootCmd.AddCommand(exportCmd)

	// task commands
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the to-do list",
	}
	taskCmd.AddCommand(
		&cobra.Command{
			Use:   "add TEXT...",
			Short: "Add a task",
			Args:  cobra.MinimumNArgs(1),
			RunE:  a.runTaskAdd,
		},
		&cobra.Command{
			Use:   "rm INDEX",
			Short: "Remove a task",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runTaskRemove,
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List open tasks",
			Args:  cobra.NoArgs,
			RunE:  a.runTaskList,
		},
		&cobra.Command{
			Use:   "finish INDEX",
			Short: "Mark a task as finished in the current shift",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runTaskFinish,
		},
	)
	rootCmd.AddCommand(taskCmd)

	// watch command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Launch the live dashboard",
		Args:  cobra.NoArgs,
		RunE:  a.runWatch,
	})

	addConfigCommands(rootCmd, a)
}

func (a *app) openStore() (recordstore.Store, error) {
	return recordstore.Open(a.cfg.General.Backend, a.cfg.General.DataDir, a.logger)
}

func (a *app) tracker() *tracker.Tracker {
	return tracker.New(tracker.WithClock(a.now), tracker.WithLogger(a.logger))
}

func (a *app) printer() *report.Printer {
	return report.NewPrinter(a.out, a.cfg.Display.Color, report.WithClock(a.now))
}

// withRecord loads the record, runs fn and saves the record afterwards.
// Nothing is saved when fn fails.
func (a *app) withRecord(fn func(rec *domain.Record) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		return err
	}
	if err := fn(rec); err != nil {
		return err
	}
	return store.Save(rec)
}

// warn turns rejected operations into warnings; other errors pass through
func (a *app) warn(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tracker.ErrAlreadyTracking),
		errors.Is(err, tracker.ErrNotTracking),
		errors.Is(err, tracker.ErrTaskIndex),
		errors.Is(err, tracker.ErrEmptyTask):
		report.NewPrinter(a.errOut, a.cfg.Display.Color).Warn(err.Error())
		return nil
	default:
		return err
	}
}

func (a *app) runStart(cmd *cobra.Command, args []string) error {
	return a.withRecord(func(rec *domain.Record) error {
		block, err := a.tracker().Start(rec)
		if err != nil {
			return a.warn(err)
		}
		a.printer().Started(block)
		return nil
	})
}

func (a *app) runStop(cmd *cobra.Command, args []string) error {
	comment := strings.Join(args, " ")
	return a.withRecord(func(rec *domain.Record) error {
		past, err := a.tracker().Stop(rec, comment)
		if err != nil {
			return a.warn(err)
		}
		a.printer().Stopped(past)
		return nil
	})
}

func (a *app) runPause(cmd *cobra.Command, args []string) error {
	return a.withRecord(func(rec *domain.Record) error {
		length, err := a.tracker().Pause(rec)
		if err != nil {
			return a.warn(err)
		}
		a.printer().Paused(length)
		return nil
	})
}

func (a *app) runStatus(cmd *cobra.Command, args []string) error {
	return a.withRecord(func(rec *domain.Record) error {
		a.printer().Status(a.tracker().Status(rec))
		return nil
	})
}

func parseWeek(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid week %q: expected a whole number", args[0])
	}
	return n, nil
}

func (a *app) runDisplay(args []string, absolute bool) error {
	n, err := parseWeek(args)
	if err != nil {
		return err
	}
	return a.withRecord(func(rec *domain.Record) error {
		weekStart := week.Resolve(a.now(), n, absolute)
		a.printer().Week(weekStart, week.Aggregate(rec, weekStart))
		return nil
	})
}

func (a *app) runExport(args []string, absolute bool, format string) error {
	n, err := parseWeek(args)
	if err != nil {
		return err
	}
	return a.withRecord(func(rec *domain.Record) error {
		weekStart := week.Resolve(a.now(), n, absolute)
		return report.Export(a.out, format, weekStart, week.Aggregate(rec, weekStart))
	})
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return i, nil
}

func (a *app) runTaskAdd(cmd *cobra.Command, args []string) error {
	return a.withRecord(func(rec *domain.Record) error {
		if err := a.tracker().AddTask(rec, strings.Join(args, " ")); err != nil {
			return a.warn(err)
		}
		a.printer().Tasks(rec.Tasks)
		return nil
	})
}

func (a *app) runTaskRemove(cmd *cobra.Command, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return a.withRecord(func(rec *domain.Record) error {
		text, err := a.tracker().RemoveTask(rec, i)
		if err != nil {
			return a.warn(err)
		}
		a.printer().Infof("Removed task: %s", text)
		return nil
	})
}

func (a *app) runTaskList(cmd *cobra.Command, args []string) error {
	return a.withRecord(func(rec *domain.Record) error {
		a.printer().Tasks(rec.Tasks)
		return nil
	})
}

func (a *app) runTaskFinish(cmd *cobra.Command, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return a.withRecord(func(rec *domain.Record) error {
		text, err := a.tracker().FinishTask(rec, i)
		if err != nil {
			return a.warn(err)
		}
		a.printer().Infof("Finished task: %s", text)
		return nil
	})
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		return err
	}

	changes := make(chan struct{}, 1)
	rw, err := watch.NewRecordWatcher(store.Path(), func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}, a.logger)
	if err != nil {
		return fmt.Errorf("watching %s: %w", store.Path(), err)
	}
	rw.Start(cmd.Context())
	defer rw.Stop()

	model := tui.NewModel(tui.ModelConfig{
		Record:  rec,
		Tracker: a.tracker(),
		Load:    store.Load,
		Changes: changes,
		Now:     a.now,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
