package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/hochfrequenz/shift-tracker/internal/tracker"
	"github.com/hochfrequenz/shift-tracker/internal/week"
)

// Model is the live dashboard shown by `work watch`
type Model struct {
	// Data
	record    *domain.Record
	status    tracker.Status
	days      []week.DayReport
	weekStart time.Time

	// Sources
	tracker *tracker.Tracker
	load    func() (*domain.Record, error)
	changes <-chan struct{}
	now     func() time.Time

	// UI state
	width      int
	height     int
	weekOffset int

	// Refresh
	lastRefresh time.Time
	err         error
}

// ModelConfig holds initial data for the dashboard
type ModelConfig struct {
	Record  *domain.Record
	Tracker *tracker.Tracker
	// Load re-reads the record after an external change
	Load func() (*domain.Record, error)
	// Changes receives a value whenever the record file changes on disk
	Changes <-chan struct{}
	Now     func() time.Time
}

// NewModel creates a new dashboard model
func NewModel(cfg ModelConfig) Model {
	if cfg.Record == nil {
		cfg.Record = domain.NewRecord()
	}
	if cfg.Tracker == nil {
		cfg.Tracker = tracker.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	m := Model{
		record:  cfg.Record,
		tracker: cfg.Tracker,
		load:    cfg.Load,
		changes: cfg.Changes,
		now:     cfg.Now,
	}
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForChange(m.changes),
	)
}

// TickMsg triggers a refresh of the running timer
type TickMsg time.Time

// RecordChangedMsg is sent when the record file changed on disk
type RecordChangedMsg struct{}

// RecordLoadedMsg carries a freshly loaded record
type RecordLoadedMsg struct {
	Record *domain.Record
	Err    error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return RecordChangedMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		rec, err := load()
		return RecordLoadedMsg{Record: rec, Err: err}
	}
}

// refresh recomputes everything derived from the record
func (m *Model) refresh() {
	now := m.now()
	m.status = m.tracker.Status(m.record)
	m.weekStart = week.Resolve(now, m.weekOffset, false)
	m.days = week.Aggregate(m.record, m.weekStart)
	m.lastRefresh = now
}
