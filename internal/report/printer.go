// Package report renders shifts, weeks and status for the terminal and
// exports week reports.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/hochfrequenz/shift-tracker/internal/edit"
	"github.com/hochfrequenz/shift-tracker/internal/tracker"
	"github.com/hochfrequenz/shift-tracker/internal/week"
)

// Date layouts used in output
const (
	WeekLayout     = "2 Jan 2006"
	DayLayout      = "Monday - 2006-01-02"
	DateTimeLayout = "Mon, _2 January 2006 15:04:05"
)

// Printer writes human-readable output
type Printer struct {
	w     io.Writer
	s     styles
	clock func() time.Time
}

// PrinterOption configures a Printer
type PrinterOption func(*Printer)

// WithClock sets the time source relative times are measured against
func WithClock(now func() time.Time) PrinterOption {
	return func(p *Printer) {
		if now != nil {
			p.clock = now
		}
	}
}

// NewPrinter creates a Printer for w. Colors are only emitted when color is
// set and w is a terminal.
func NewPrinter(w io.Writer, color bool, opts ...PrinterOption) *Printer {
	p := &Printer{w: w, s: newStyles(newRenderer(w, color)), clock: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Duration renders d as colored HH:MM:SS
func (p *Printer) Duration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		return p.s.warning.Render(domain.FormatDuration(d))
	}
	return fmt.Sprintf("%s:%s:%s",
		p.s.hours.Render(fmt.Sprintf("%02d", total/3600)),
		p.s.minutes.Render(fmt.Sprintf("%02d", (total%3600)/60)),
		p.s.seconds.Render(fmt.Sprintf("%02d", total%60)))
}

// Warn prints a non-fatal problem
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, p.s.warning.Render(msg))
}

// Infof prints a plain line
func (p *Printer) Infof(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Started reports a new time block
func (p *Printer) Started(block domain.TimeBlock) {
	fmt.Fprintf(p.w, "Started timer at %s\n", p.s.heading.Render(block.Start.Local().Format(DateTimeLayout)))
}

// Paused reports the shift length at the pause
func (p *Printer) Paused(length time.Duration) {
	fmt.Fprintf(p.w, "Paused shift at %s\n", p.Duration(length))
}

// Stopped reports a finished shift
func (p *Printer) Stopped(past domain.PastTimeBlock) {
	fmt.Fprintf(p.w, "Finished shift after %s\n", p.Duration(past.Duration()))
	for _, task := range past.FinishedTasks {
		fmt.Fprintf(p.w, "  %s %s\n", p.s.dimmed.Render("done:"), task)
	}
}

// Status prints the tracker state and the running timer
func (p *Printer) Status(st tracker.Status) {
	fmt.Fprintf(p.w, "status: %s\n", p.state(st.State))
	if !st.Active {
		return
	}
	fmt.Fprintf(p.w, "timer: %s\n", p.Duration(st.Elapsed))
	fmt.Fprintf(p.w, "started: %s %s\n",
		st.StartedAt.Local().Format(DateTimeLayout),
		p.s.dimmed.Render("("+humanize.RelTime(st.StartedAt, p.clock(), "ago", "from now")+")"))
}

func (p *Printer) state(s domain.TrackingState) string {
	switch s {
	case domain.StateTracking:
		return p.s.tracking.Render(s.String())
	case domain.StatePaused:
		return p.s.paused.Render(s.String())
	default:
		return p.s.stopped.Render(s.String())
	}
}

// Week prints the per-day breakdown of a week. Every day shows its total,
// including days without shifts.
func (p *Printer) Week(weekStart time.Time, days []week.DayReport) {
	fmt.Fprintf(p.w, "Week starting: %s\n\n", p.s.heading.Render(weekStart.Format(WeekLayout)))

	for _, day := range days {
		fmt.Fprintf(p.w, "%s:\n", p.s.day.Render(day.Date.Format(DayLayout)))
		if len(day.Shifts) == 0 {
			fmt.Fprintf(p.w, "  %s\n", p.s.empty.Render("No shifts"))
		}
		for _, shift := range day.Shifts {
			fmt.Fprintf(p.w, "  %s: %s\n", p.Duration(shift.Duration()), shift.Comment)
		}
		fmt.Fprintf(p.w, "  (total=%s)\n\n", p.Duration(day.Total))
	}

	fmt.Fprintf(p.w, "Week total: %s\n", p.Duration(week.Total(days)))
}

// Listing prints the numbered shifts offered for editing
func (p *Printer) Listing(entries []edit.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.w, p.s.empty.Render("No shifts this week"))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(p.w, "%s: %s\n   duration=%s\n   comment=%s\n\n",
			p.s.index.Render(fmt.Sprint(e.Display)),
			p.s.heading.Render(e.Shift.Date.Local().Format(DateTimeLayout)),
			p.Duration(e.Shift.Duration()),
			p.s.comment.Render(e.Shift.Comment))
	}
}

// Tasks prints the numbered to-do list
func (p *Printer) Tasks(tasks []string) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.w, p.s.dimmed.Render("No open tasks"))
		return
	}
	for i, task := range tasks {
		fmt.Fprintf(p.w, "%s: %s\n", p.s.index.Render(fmt.Sprint(i)), task)
	}
}
