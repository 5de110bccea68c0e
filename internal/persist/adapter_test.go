package persist

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

const snapPath = "/data/hms/queue.json"

func TestAdapterRestoresToday(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewFileBackend(fsys, snapPath)
	want := sampleSnapshot()
	if err := b.Write(want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, report := NewAdapter(b, nil).Load(testDay)
	if !report.Restored || report.Discarded != nil {
		t.Fatalf("report = %+v, want restored", report)
	}
	if !got.Equal(want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestAdapterMissingFileStartsEmptyAndSaves(t *testing.T) {
	fsys := afero.NewMemMapFs()
	a := NewAdapter(NewFileBackend(fsys, snapPath), nil)

	got, report := a.Load(testDay)
	if report.Restored || !errors.Is(report.Discarded, ErrNotFound) {
		t.Fatalf("report = %+v, want discarded ErrNotFound", report)
	}
	if !report.Saved.OK() {
		t.Fatalf("fresh snapshot not saved: %v", report.Saved)
	}
	if !got.Equal(scheduler.EmptySnapshot(testDay)) {
		t.Errorf("Load = %+v, want empty snapshot", got)
	}
	if ok, _ := afero.Exists(fsys, snapPath); !ok {
		t.Error("snapshot file should exist after Load")
	}
}

func TestAdapterDiscardsStaleSnapshot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewFileBackend(fsys, snapPath)
	if err := b.Write(sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	mock := logger.NewMockLogger()
	tomorrow := scheduler.Date{Year: 2026, Month: time.March, Day: 15}

	got, report := NewAdapter(b, mock).Load(tomorrow)
	if !errors.Is(report.Discarded, ErrStale) {
		t.Fatalf("Discarded = %v, want ErrStale", report.Discarded)
	}
	if !got.Equal(scheduler.EmptySnapshot(tomorrow)) {
		t.Errorf("Load = %+v, want empty snapshot for %s", got, tomorrow)
	}
	stored, err := b.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if stored.Date != tomorrow || len(stored.Waiting) != 0 {
		t.Errorf("stored snapshot = %+v, want empty for %s", stored, tomorrow)
	}
	if len(mock.Warnings()) == 0 {
		t.Error("expected a warning about the discarded snapshot")
	}
}

func TestAdapterCorruptFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, snapPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := NewAdapter(NewFileBackend(fsys, snapPath), nil)

	got, report := a.Load(testDay)
	if !errors.Is(report.Discarded, ErrCorrupt) {
		t.Fatalf("Discarded = %v, want ErrCorrupt", report.Discarded)
	}
	if len(got.Waiting) != 0 || got.Counter != 0 {
		t.Errorf("Load = %+v, want empty", got)
	}
	data, _ := afero.ReadFile(fsys, snapPath)
	if _, err := Decode(data); err != nil {
		t.Errorf("corrupt file should have been replaced: %v", err)
	}
}

func TestAdapterSaveFailureIsReported(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	a := NewAdapter(NewFileBackend(fsys, snapPath), nil)

	_, report := a.Load(testDay)
	if report.Saved.OK() {
		t.Fatal("expected fresh save to fail on a read-only fs")
	}
	if out := a.Save(sampleSnapshot()); out.OK() {
		t.Error("Save on read-only fs reported success")
	}
}

func TestSchedulerOverFileBackend(t *testing.T) {
	fsys := afero.NewMemMapFs()
	now := time.Date(2026, time.March, 14, 9, 30, 15, 0, time.Local)
	clock := func() time.Time { return now }

	s := scheduler.New(scheduler.Options{Persister: NewAdapter(NewFileBackend(fsys, snapPath), nil), Now: clock})
	s.AddPatient("A", 3, "Emergency")
	s.AddPatient("B", 1, "Cardiology")
	s.ServeNext()

	reopened := scheduler.New(scheduler.Options{Persister: NewAdapter(NewFileBackend(fsys, snapPath), nil), Now: clock})
	if !reopened.LoadReport().Restored {
		t.Fatalf("LoadReport = %+v, want restored", reopened.LoadReport())
	}
	if !reopened.Snapshot().Equal(s.Snapshot()) {
		t.Errorf("reopened state %+v, want %+v", reopened.Snapshot(), s.Snapshot())
	}
}

func TestSchedulerClockInForeignZone(t *testing.T) {
	fsys := afero.NewMemMapFs()
	ist := time.FixedZone("IST", 5*3600+1800)
	clock := func() time.Time { return time.Date(2026, time.March, 14, 10, 0, 0, 0, ist) }

	s := scheduler.New(scheduler.Options{Persister: NewAdapter(NewFileBackend(fsys, snapPath), nil), Now: clock})
	s.AddPatient("A", 2, "Emergency")
	s.ServeNext()

	got, report := NewAdapter(NewFileBackend(fsys, snapPath), nil).Load(testDay)
	if !report.Restored {
		t.Fatalf("report = %+v, want restored", report)
	}
	if !got.Equal(s.Snapshot()) {
		t.Errorf("reloaded %+v, want %+v", got, s.Snapshot())
	}
	if loc := s.ListServed()[0].ServedAt.Location(); loc != time.Local {
		t.Errorf("served timestamp location = %v, want Local", loc)
	}
}

func TestSQLiteBackend(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "hms.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer b.Close()

	if _, err := b.Read(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Read on empty db = %v, want ErrNotFound", err)
	}

	first := sampleSnapshot()
	if err := b.Write(first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	first.Counter = 4
	first.Waiting = append(first.Waiting, scheduler.WaitingEntry{Severity: 5, Sequence: 3, Name: "D", Department: "Neurology"})
	if err := b.Write(first); err != nil {
		t.Fatalf("Write again: %v", err)
	}
	got, err := b.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !got.Equal(first) {
		t.Errorf("Read = %+v, want %+v", got, first)
	}

	next := scheduler.EmptySnapshot(scheduler.Date{Year: 2026, Month: time.March, Day: 15})
	if err := b.Write(next); err != nil {
		t.Fatalf("Write next day: %v", err)
	}
	got, err = b.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Date != next.Date {
		t.Errorf("Read date = %s, want latest %s", got.Date, next.Date)
	}

	days, err := b.Days()
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if len(days) != 2 || days[0] != testDay || days[1] != next.Date {
		t.Errorf("Days = %v, want [%s %s]", days, testDay, next.Date)
	}
}

func TestSQLiteAdapterStaleDay(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "hms.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	a := NewAdapter(b, nil)
	defer a.Close()

	if out := a.Save(sampleSnapshot()); !out.OK() {
		t.Fatalf("Save: %v", out)
	}
	tomorrow := scheduler.Date{Year: 2026, Month: time.March, Day: 15}
	got, report := a.Load(tomorrow)
	if !errors.Is(report.Discarded, ErrStale) || !report.Saved.OK() {
		t.Fatalf("report = %+v", report)
	}
	if got.Date != tomorrow || len(got.Waiting) != 0 {
		t.Errorf("Load = %+v, want empty for %s", got, tomorrow)
	}
}

func TestSQLiteAdapterLogsHistory(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "hms.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer b.Close()
	if err := b.Write(sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	l := logger.NewMockLogger()
	next := scheduler.Date{Year: 2026, Month: time.March, Day: 15}
	NewAdapter(b, l).Load(next)

	want := "persist: 1 day(s) on record, 2026-03-14 to 2026-03-14"
	infos := l.Infos()
	if len(infos) != 1 || infos[0] != want {
		t.Errorf("Infos = %q, want [%q]", infos, want)
	}
}
