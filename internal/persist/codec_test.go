package persist

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
)

var testDay = scheduler.Date{Year: 2026, Month: time.March, Day: 14}

func sampleSnapshot() scheduler.Snapshot {
	s := scheduler.EmptySnapshot(testDay)
	s.Counter = 3
	s.Waiting = []scheduler.WaitingEntry{
		{Severity: 2, Sequence: 1, Name: "B", Department: "Emergency"},
		{Severity: 3, Sequence: 2, Name: "C", Department: "Cardiology"},
	}
	s.Served = []scheduler.ServedRecord{{
		Name:       "A",
		Severity:   1,
		Department: "Emergency",
		ServedAt:   time.Date(2026, time.March, 14, 9, 30, 15, 0, time.Local),
	}}
	return s
}

func TestEncodeWireFormat(t *testing.T) {
	data, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"date":"2026-03-14",` +
		`"waiting":[[2,1,"B","Emergency"],[3,2,"C","Cardiology"]],` +
		`"counter":3,` +
		`"served":[["A",1,"Emergency","2026-03-14 09:30:15"]]}`
	if string(data) != want {
		t.Errorf("Encode:\n got %s\nwant %s", data, want)
	}
}

func TestEncodeEmptyListsAsArrays(t *testing.T) {
	data, err := Encode(scheduler.Snapshot{Date: testDay})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), `"waiting":[]`) || !strings.Contains(string(data), `"served":[]`) {
		t.Errorf("empty lists should encode as [], got %s", data)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	in := sampleSnapshot()
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestDecodeRoundTripForeignZone(t *testing.T) {
	in := scheduler.EmptySnapshot(testDay)
	ist := time.FixedZone("IST", 5*3600+1800)
	in.Served = []scheduler.ServedRecord{{
		Name:       "A",
		Severity:   2,
		Department: "Emergency",
		ServedAt:   time.Date(2026, time.March, 14, 10, 0, 0, 0, ist),
	}}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("served at %v after reload, want %v", out.Served[0].ServedAt, in.Served[0].ServedAt)
	}
}

func TestDecodeNullListsBecomeEmpty(t *testing.T) {
	out, err := Decode([]byte(`{"date":"2026-03-14","waiting":null,"counter":0,"served":null}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Waiting == nil || out.Served == nil {
		t.Errorf("expected non-nil empty lists, got %+v", out)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{{{`},
		{"bad date", `{"date":"14/03/2026","waiting":[],"counter":0,"served":[]}`},
		{"short waiting tuple", `{"date":"2026-03-14","waiting":[[1,0,"A"]],"counter":1,"served":[]}`},
		{"wrong field type", `{"date":"2026-03-14","waiting":[["1",0,"A","ER"]],"counter":1,"served":[]}`},
		{"bad timestamp", `{"date":"2026-03-14","waiting":[],"counter":0,"served":[["A",1,"ER","yesterday"]]}`},
		{"negative counter", `{"date":"2026-03-14","waiting":[],"counter":-1,"served":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Decode(%s) error = %v, want ErrCorrupt", tt.in, err)
			}
		})
	}
}
