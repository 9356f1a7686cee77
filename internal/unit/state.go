package unit

// State is a unit's lifecycle state.
type State int

const (
	Idle State = iota
	Moving
	Attacking
	Casting
	Stunned
	Dead
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Attacking:
		return "attacking"
	case Casting:
		return "casting"
	case Stunned:
		return "stunned"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// CastPhase is the internal sub-phase of the Casting state.
type CastPhase int

const (
	CastNone CastPhase = iota
	CastStart
	CastEffectPoint
	CastEnd
)

// StateMachine tracks a single unit's current lifecycle state plus the
// bookkeeping the Casting and Stunned states need: cast sub-phase timers,
// and the state to restore once a stun expires.
type StateMachine struct {
	Current State

	// Casting sub-phase tracking.
	CastPhase     CastPhase
	CastTicksLeft int // ticks remaining in the current cast sub-phase

	// Stunned bookkeeping: state to resume once the stun clears.
	PreStunState State

	// AttackWindupTicksLeft counts down an in-progress auto-attack swing.
	AttackWindupTicksLeft int
}

// NewStateMachine returns a state machine starting in Idle.
func NewStateMachine() *StateMachine {
	return &StateMachine{Current: Idle}
}

// CanAct reports whether a unit in this state may select a target, move,
// attack, or cast this tick.
func (m *StateMachine) CanAct() bool {
	switch m.Current {
	case Stunned, Dead, Casting:
		return false
	default:
		return true
	}
}

// EnterStun transitions into Stunned, remembering the state to resume.
// A unit already Stunned or Dead is unaffected.
func (m *StateMachine) EnterStun() {
	if m.Current == Stunned || m.Current == Dead {
		return
	}
	m.PreStunState = m.Current
	m.Current = Stunned
}

// ExitStun resumes the pre-stun state. No-op if not currently stunned.
func (m *StateMachine) ExitStun() {
	if m.Current != Stunned {
		return
	}
	m.Current = m.PreStunState
}

// EnterCasting transitions into Casting at cast_start with the given
// duration in ticks for that sub-phase.
func (m *StateMachine) EnterCasting(castStartTicks int) {
	m.Current = Casting
	m.CastPhase = CastStart
	m.CastTicksLeft = castStartTicks
}

// EnterDead transitions into the terminal Dead state.
func (m *StateMachine) EnterDead() {
	m.Current = Dead
	m.CastPhase = CastNone
}
