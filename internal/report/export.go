package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/hochfrequenz/shift-tracker/internal/week"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// WeekExport is the serialized form of one week
type WeekExport struct {
	WeekStart    string      `yaml:"week_start" json:"week_start"`
	Total        string      `yaml:"total" json:"total"`
	TotalSeconds int64       `yaml:"total_seconds" json:"total_seconds"`
	Days         []DayExport `yaml:"days" json:"days"`
}

// DayExport is one day of a WeekExport
type DayExport struct {
	Date         string        `yaml:"date" json:"date"`
	Weekday      string        `yaml:"weekday" json:"weekday"`
	Total        string        `yaml:"total" json:"total"`
	TotalSeconds int64         `yaml:"total_seconds" json:"total_seconds"`
	Shifts       []ShiftExport `yaml:"shifts" json:"shifts"`
}

// ShiftExport is one completed shift of a DayExport
type ShiftExport struct {
	ID            string   `yaml:"id,omitempty" json:"id,omitempty"`
	Start         string   `yaml:"start" json:"start"`
	Duration      string   `yaml:"duration" json:"duration"`
	Seconds       int64    `yaml:"seconds" json:"seconds"`
	Comment       string   `yaml:"comment" json:"comment"`
	FinishedTasks []string `yaml:"finished_tasks,omitempty" json:"finished_tasks,omitempty"`
}

// BuildExport converts aggregated days into their serialized form
func BuildExport(weekStart time.Time, days []week.DayReport) WeekExport {
	loc := weekStart.Location()
	total := week.Total(days)
	out := WeekExport{
		WeekStart:    weekStart.Format("2006-01-02"),
		Total:        domain.FormatDuration(total),
		TotalSeconds: int64(total / time.Second),
		Days:         make([]DayExport, 0, len(days)),
	}

	for _, day := range days {
		d := DayExport{
			Date:         day.Date.Format("2006-01-02"),
			Weekday:      day.WeekdayName(),
			Total:        domain.FormatDuration(day.Total),
			TotalSeconds: int64(day.Total / time.Second),
			Shifts:       make([]ShiftExport, 0, len(day.Shifts)),
		}
		for _, s := range day.Shifts {
			d.Shifts = append(d.Shifts, ShiftExport{
				ID:            s.ID,
				Start:         s.Date.In(loc).Format(time.RFC3339),
				Duration:      domain.FormatSeconds(s.Seconds),
				Seconds:       s.Seconds,
				Comment:       s.Comment,
				FinishedTasks: s.FinishedTasks,
			})
		}
		out.Days = append(out.Days, d)
	}
	return out
}

// Export writes the week in the given format
func Export(w io.Writer, format string, weekStart time.Time, days []week.DayReport) error {
	data := BuildExport(weekStart, days)

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
