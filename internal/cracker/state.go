package cracker

// State is the coordinator's lifecycle state. The only writer is the
// goroutine running Run; readers may poll State at any time.
type State int32

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota
	// StateRunning means workers are up and candidates are being streamed.
	StateRunning
	// StateDraining means production has stopped and stop sentinels are being
	// delivered so every worker exits.
	StateDraining
	// StateFound is terminal: a password was published.
	StateFound
	// StateExhausted is terminal: the candidate sequence ended with no hit.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	default:
		return "invalid"
	}
}

// Terminal reports whether the state is an end state.
func (s State) Terminal() bool {
	return s == StateFound || s == StateExhausted
}

// ValidTransition reports whether the coordinator may move from one state to
// the other. Both terminal states are reachable only through draining, which
// is also the hook an external cancellation reuses.
func ValidTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateRunning
	case StateRunning:
		return to == StateDraining
	case StateDraining:
		return to == StateFound || to == StateExhausted
	default:
		return false
	}
}
