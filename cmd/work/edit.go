package main

import (
	"errors"
	"time"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/hochfrequenz/shift-tracker/internal/edit"
	"github.com/hochfrequenz/shift-tracker/internal/prompt"
	"github.com/hochfrequenz/shift-tracker/internal/report"
	"github.com/hochfrequenz/shift-tracker/internal/week"
	"go.uber.org/zap"
)

func (a *app) runEdit(args []string, absolute bool) error {
	n, err := parseWeek(args)
	if err != nil {
		return err
	}
	return a.withRecord(func(rec *domain.Record) error {
		weekStart := week.Resolve(a.now(), n, absolute)
		err := editWeek(rec, weekStart, prompt.New(a.in, a.out), a.printer(), a.logger)
		if errors.Is(err, prompt.ErrNoInput) {
			// keep whatever was changed before input ran out
			return nil
		}
		return err
	})
}

// editWeek lists the week's shifts, lets the user pick one and applies
// edits to it until they exit or delete it.
func editWeek(rec *domain.Record, weekStart time.Time, q *prompt.Prompter, p *report.Printer, logger *zap.Logger) error {
	entries := edit.ListWeek(rec, weekStart)
	p.Listing(entries)
	if len(entries) == 0 {
		return nil
	}

	choice, err := prompt.Ask(q, "Which would you like to edit or exit(e)?", prompt.IndexOrExit(len(entries), "e"))
	if err != nil || choice < 0 {
		return err
	}
	target := entries[choice]
	p.Infof("Editing %d", choice)

	for {
		action, err := prompt.Ask(q, "Would you like to edit duration(e), comment(c), delete(d), or exit(x)?",
			prompt.Choice("e", "c", "d", "x"))
		if err != nil {
			return err
		}

		switch action {
		case "e":
			d, err := askDuration(q)
			if err != nil {
				return err
			}
			if err := edit.Apply(rec, target.Store, d); err != nil {
				return err
			}
			p.Infof("Duration set to %s", domain.FormatSeconds(d.Total()))
		case "c":
			text, err := prompt.Ask[string](q, "new comment:", prompt.Text)
			if err != nil {
				return err
			}
			if err := edit.Apply(rec, target.Store, edit.SetComment{Text: text}); err != nil {
				return err
			}
		case "d":
			p.Warn("deleting shift..")
			if err := edit.Apply(rec, target.Store, edit.Delete{}); err != nil {
				return err
			}
			logger.Debug("shift deleted", zap.String("id", target.Shift.ID))
			return nil
		case "x":
			return nil
		}
	}
}

func askDuration(q *prompt.Prompter) (edit.SetDuration, error) {
	var d edit.SetDuration
	var err error
	if d.Hours, err = prompt.Ask[int64](q, "new hours:", prompt.NonNegative); err != nil {
		return d, err
	}
	if d.Minutes, err = prompt.Ask[int64](q, "new minutes:", prompt.NonNegative); err != nil {
		return d, err
	}
	if d.Seconds, err = prompt.Ask[int64](q, "new seconds:", prompt.NonNegative); err != nil {
		return d, err
	}
	return d, nil
}
