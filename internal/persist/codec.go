package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
)

// TimestampLayout is the textual form of served timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// document is the on-disk form of a snapshot:
//
//	{
//	  "date": "YYYY-MM-DD",
//	  "waiting": [[severity, sequence, name, department], ...],
//	  "counter": n,
//	  "served": [[name, severity, department, "YYYY-MM-DD HH:MM:SS"], ...]
//	}
type document struct {
	Date    string       `json:"date"`
	Waiting []waitingRow `json:"waiting"`
	Counter int          `json:"counter"`
	Served  []servedRow  `json:"served"`
}

type waitingRow scheduler.WaitingEntry

func (r waitingRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Severity, r.Sequence, r.Name, r.Department})
}

func (r *waitingRow) UnmarshalJSON(b []byte) error {
	return decodeTuple(b, "waiting entry", &r.Severity, &r.Sequence, &r.Name, &r.Department)
}

type servedRow scheduler.ServedRecord

func (r servedRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Name, r.Severity, r.Department, r.ServedAt.Local().Format(TimestampLayout)})
}

func (r *servedRow) UnmarshalJSON(b []byte) error {
	var ts string
	if err := decodeTuple(b, "served record", &r.Name, &r.Severity, &r.Department, &ts); err != nil {
		return err
	}
	t, err := time.ParseInLocation(TimestampLayout, ts, time.Local)
	if err != nil {
		return fmt.Errorf("served record: %w", err)
	}
	r.ServedAt = t
	return nil
}

// decodeTuple decodes a JSON array positionally into dst.
func decodeTuple(b []byte, what string, dst ...any) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("%s: want %d fields, got %d", what, len(dst), len(raw))
	}
	for i := range dst {
		if err := json.Unmarshal(raw[i], dst[i]); err != nil {
			return fmt.Errorf("%s field %d: %w", what, i, err)
		}
	}
	return nil
}

// Encode renders s in the snapshot document format.
func Encode(s scheduler.Snapshot) ([]byte, error) {
	doc := document{
		Date:    s.Date.String(),
		Waiting: make([]waitingRow, len(s.Waiting)),
		Counter: s.Counter,
		Served:  make([]servedRow, len(s.Served)),
	}
	for i, e := range s.Waiting {
		doc.Waiting[i] = waitingRow(e)
	}
	for i, r := range s.Served {
		doc.Served[i] = servedRow(r)
	}
	return json.Marshal(&doc)
}

// Decode parses a snapshot document. Every failure wraps ErrCorrupt.
func Decode(b []byte) (scheduler.Snapshot, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return scheduler.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	d, err := scheduler.ParseDate(doc.Date)
	if err != nil {
		return scheduler.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Counter < 0 {
		return scheduler.Snapshot{}, fmt.Errorf("%w: negative counter %d", ErrCorrupt, doc.Counter)
	}
	s := scheduler.EmptySnapshot(d)
	s.Counter = doc.Counter
	for _, r := range doc.Waiting {
		s.Waiting = append(s.Waiting, scheduler.WaitingEntry(r))
	}
	for _, r := range doc.Served {
		s.Served = append(s.Served, scheduler.ServedRecord(r))
	}
	return s, nil
}
