package core

// Phase is the coarse run state of a game session.
type Phase int

const (
	PhaseNotRunning Phase = iota // No session, or the session has ended
	PhaseRunning                 // Ticks are executed
	PhasePaused                  // Session alive, ticks are skipped
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotRunning:
		return "NotRunning"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
