package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/rentierek/data-driven-autochess/internal/config"
	"github.com/rentierek/data-driven-autochess/internal/engine"
	"github.com/rentierek/data-driven-autochess/internal/eventlog"
)

// BattleStatus is the lifecycle state of a submitted battle run.
type BattleStatus string

const (
	StatusRunning BattleStatus = "running"
	StatusDone    BattleStatus = "done"
	StatusFailed  BattleStatus = "failed"
)

// BattleRun is one submitted battle: its engine, current status, and final
// result once it completes. Submit runs the battle in the background so a
// caller can poll status or tail events while it plays out.
type BattleRun struct {
	ID   string
	Seed uint64

	mu     sync.RWMutex
	status BattleStatus
	eng    *engine.Engine
	result engine.Result
	err    error
}

func (b *BattleRun) snapshot() (BattleStatus, engine.Result, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status, b.result, b.err
}

// Events returns the run's event log so far (safe to call while running).
func (b *BattleRun) Events() []eventlog.Event {
	return b.eng.Log().Events()
}

// CurrentTick reports the tick the engine has reached so far.
func (b *BattleRun) CurrentTick() uint32 {
	return b.eng.CurrentTickNumber()
}

// BattleStore holds every battle submitted to the API, keyed by id.
type BattleStore struct {
	mu      sync.RWMutex
	battles map[string]*BattleRun
}

// NewBattleStore returns an empty store.
func NewBattleStore() *BattleStore {
	return &BattleStore{battles: make(map[string]*BattleRun)}
}

// Submit builds a battle from configuration bytes and runs it to completion
// in the background, returning immediately with a handle to poll.
func (s *BattleStore) Submit(configYAML []byte, seed uint64) (*BattleRun, error) {
	bundle, err := config.Load(configYAML)
	if err != nil {
		return nil, err
	}
	eng, err := config.BuildEngine(bundle, seed)
	if err != nil {
		return nil, err
	}

	run := &BattleRun{ID: newRunID(), Seed: seed, eng: eng, status: StatusRunning}

	s.mu.Lock()
	s.battles[run.ID] = run
	s.mu.Unlock()

	go func() {
		result, err := eng.Run(context.Background())
		run.mu.Lock()
		defer run.mu.Unlock()
		if err != nil {
			run.status, run.err = StatusFailed, err
			return
		}
		run.status, run.result = StatusDone, result
	}()

	return run, nil
}

// Get looks up a previously submitted battle.
func (s *BattleStore) Get(id string) (*BattleRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.battles[id]
	return r, ok
}

// List returns every tracked battle run, most-recently-submitted order is
// not guaranteed since map iteration is unordered.
func (s *BattleStore) List() []*BattleRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*BattleRun, 0, len(s.battles))
	for _, r := range s.battles {
		out = append(out, r)
	}
	return out
}

func newRunID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
