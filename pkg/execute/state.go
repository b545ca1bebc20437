package execute

// State is the stage a single transaction attempt has reached.
type State int

const (
	StateAssembled State = iota
	StateFinalized
	StateSigned
	StateSubmitted
	StatePolling
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAssembled:
		return "assembled"
	case StateFinalized:
		return "finalized"
	case StateSigned:
		return "signed"
	case StateSubmitted:
		return "submitted"
	case StatePolling:
		return "polling"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateFailed
}
