package recordstore

import (
	"fmt"
	"time"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// wire types map the domain record onto the field-tagged msgpack layout.
// Fields may be added but existing tags must keep their names.
type wireRecord struct {
	Version string      `msgpack:"version"`
	State   uint8       `msgpack:"state"`
	Tasks   []string    `msgpack:"tasks"`
	Times   []wireBlock `msgpack:"times"`
	Past    []wirePast  `msgpack:"past"`
}

type wireBlock struct {
	Start         int64    `msgpack:"start"`
	End           int64    `msgpack:"end"`
	FinishedTasks []string `msgpack:"finished_tasks"`
}

type wirePast struct {
	ID            string   `msgpack:"id,omitempty"`
	Date          int64    `msgpack:"date"`
	Seconds       int64    `msgpack:"seconds"`
	Comment       string   `msgpack:"comment"`
	FinishedTasks []string `msgpack:"finished_tasks"`
}

// Encode serializes a record into the msgpack file format
func Encode(rec *domain.Record) ([]byte, error) {
	data, err := msgpack.Marshal(toWire(rec))
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// Decode parses the msgpack file format. Any failure, including a record
// that breaks the state invariants, is reported as an error.
func Decode(data []byte) (*domain.Record, error) {
	var w wireRecord
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return fromWire(w)
}

func toWire(rec *domain.Record) wireRecord {
	version := rec.Version
	if version == "" {
		version = domain.CurrentVersion
	}
	w := wireRecord{
		Version: version,
		State:   uint8(rec.State),
		Tasks:   nonNil(rec.Tasks),
		Times:   make([]wireBlock, 0, len(rec.Times)),
		Past:    make([]wirePast, 0, len(rec.Past)),
	}
	for _, b := range rec.Times {
		w.Times = append(w.Times, wireBlock{
			Start:         b.Start.Unix(),
			End:           b.End.Unix(),
			FinishedTasks: nonNil(b.FinishedTasks),
		})
	}
	for _, p := range rec.Past {
		w.Past = append(w.Past, wirePast{
			ID:            p.ID,
			Date:          p.Date.Unix(),
			Seconds:       p.Seconds,
			Comment:       p.Comment,
			FinishedTasks: nonNil(p.FinishedTasks),
		})
	}
	return w
}

func fromWire(w wireRecord) (*domain.Record, error) {
	state, err := domain.ParseTrackingState(w.State)
	if err != nil {
		return nil, err
	}

	rec := &domain.Record{
		Version: w.Version,
		State:   state,
		Tasks:   nonNil(w.Tasks),
		Times:   make([]domain.TimeBlock, 0, len(w.Times)),
		Past:    make([]domain.PastTimeBlock, 0, len(w.Past)),
	}
	for _, b := range w.Times {
		rec.Times = append(rec.Times, domain.TimeBlock{
			Start:         unixUTC(b.Start),
			End:           unixUTC(b.End),
			FinishedTasks: nonNil(b.FinishedTasks),
		})
	}
	for _, p := range w.Past {
		rec.Past = append(rec.Past, domain.PastTimeBlock{
			ID:            p.ID,
			Date:          unixUTC(p.Date),
			Seconds:       p.Seconds,
			Comment:       p.Comment,
			FinishedTasks: nonNil(p.FinishedTasks),
		})
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func unixUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
