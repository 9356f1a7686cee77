package eventstore

import (
	"testing"

	"github.com/rentierek/data-driven-autochess/internal/eventlog"
)

func openMemStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory event store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEvents() []eventlog.Event {
	unitID := uint64(1)
	targetID := uint64(2)
	return []eventlog.Event{
		{Sequence: 0, Tick: 0, Kind: eventlog.KindSimulationStart, Data: map[string]any{"seed": float64(42)}},
		{Sequence: 1, Tick: 3, Kind: eventlog.KindUnitAttack, UnitID: &unitID, TargetID: &targetID},
		{Sequence: 2, Tick: 3, Kind: eventlog.KindUnitDamage, UnitID: &targetID, Data: map[string]any{"amount": float64(15)}},
		{Sequence: 3, Tick: 40, Kind: eventlog.KindSimulationEnd, Data: map[string]any{"winner": float64(0)}},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openMemStore(t)

	winner := 0
	ticks := uint32(40)
	outcome := RunOutcome{
		ID: "seed-42", Seed: 42, TickRate: 30,
		GridWidth: 7, GridHeight: 8,
		Winner: &winner, Ticks: &ticks,
	}
	events := sampleEvents()

	if err := s.SaveRun(outcome, events); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.Events("seed-42")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i, e := range got {
		if e.Kind != events[i].Kind || e.Tick != events[i].Tick {
			t.Errorf("event %d: got kind=%s tick=%d, want kind=%s tick=%d", i, e.Kind, e.Tick, events[i].Kind, events[i].Tick)
		}
	}
	if got[1].UnitID == nil || *got[1].UnitID != 1 {
		t.Errorf("event 1 unit id mismatch: %+v", got[1].UnitID)
	}
	if got[2].Data["amount"] != float64(15) {
		t.Errorf("event 2 payload mismatch: %+v", got[2].Data)
	}
}

func TestRunsList(t *testing.T) {
	s := openMemStore(t)

	winner := 1
	ticks := uint32(12)
	for _, id := range []string{"seed-1", "seed-2"} {
		outcome := RunOutcome{ID: id, Seed: 7, TickRate: 30, GridWidth: 7, GridHeight: 8, Winner: &winner, Ticks: &ticks}
		if err := s.SaveRun(outcome, sampleEvents()); err != nil {
			t.Fatalf("SaveRun(%s): %v", id, err)
		}
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestSaveRunRejectsDuplicateID(t *testing.T) {
	s := openMemStore(t)

	winner := 0
	ticks := uint32(1)
	outcome := RunOutcome{ID: "dup", Seed: 1, TickRate: 30, GridWidth: 7, GridHeight: 8, Winner: &winner, Ticks: &ticks}
	if err := s.SaveRun(outcome, nil); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}
	if err := s.SaveRun(outcome, nil); err == nil {
		t.Error("expected second SaveRun with the same id to fail on the primary key")
	}
}
