package eventlog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEmitAssignsSequentialSequence(t *testing.T) {
	l := New()
	l.EmitSimple(0, KindUnitSpawn, 1, false, 0, nil)
	l.EmitSimple(1, KindUnitAttack, 1, true, 2, nil)

	events := l.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Sequence != 0 || events[1].Sequence != 1 {
		t.Fatalf("expected sequential sequence numbers, got %d, %d", events[0].Sequence, events[1].Sequence)
	}
}

func TestEmitNeverDropsEvents(t *testing.T) {
	l := New()
	for i := 0; i < 5000; i++ {
		l.EmitSimple(uint32(i), KindUnitDamage, 1, true, 2, nil)
	}
	if l.Len() != 5000 {
		t.Fatalf("expected all 5000 events retained, got %d", l.Len())
	}
}

func TestFlushAllWritesEveryEvent(t *testing.T) {
	l := New()
	l.EmitSimple(0, KindSimulationStart, 0, false, 0, nil)
	l.EmitSimple(1, KindUnitDeath, 3, false, 0, nil)

	var buf bytes.Buffer
	w := NewAsyncWriter(l, &buf, 20)
	if err := w.FlushAll(); err != nil {
		t.Fatalf("FlushAll error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var decoded Event
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("failed to decode line: %v", err)
	}
	if decoded.Kind != KindSimulationStart {
		t.Fatalf("expected first event kind SIMULATION_START, got %v", decoded.Kind)
	}
}

func TestKindStringMatchesSpecNames(t *testing.T) {
	if KindUnitAttack.String() != "UNIT_ATTACK" {
		t.Fatalf("got %s", KindUnitAttack.String())
	}
	if KindProjectileMiss.String() != "PROJECTILE_MISS" {
		t.Fatalf("got %s", KindProjectileMiss.String())
	}
}
