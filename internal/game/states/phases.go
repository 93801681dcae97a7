package states

import "fmt"

// GamePhase represents the current phase of a game session
type GamePhase int

const (
	// PhaseInitializing - session object creation
	PhaseInitializing GamePhase = iota

	// PhaseSetup - players and starting board being configured
	PhaseSetup

	// PhaseRunning - moves are being played
	PhaseRunning

	// PhaseEnded - the board reached a terminal result
	PhaseEnded

	// PhaseAborted - a player quit or the session was cancelled
	PhaseAborted

	// PhaseError - an unrecoverable error stopped the session
	PhaseError
)

var phaseNames = map[GamePhase]string{
	PhaseInitializing: "Initializing",
	PhaseSetup:        "Setup",
	PhaseRunning:      "Running",
	PhaseEnded:        "Ended",
	PhaseAborted:      "Aborted",
	PhaseError:        "Error",
}

var transitions = map[GamePhase][]GamePhase{
	PhaseInitializing: {PhaseSetup, PhaseError},
	PhaseSetup:        {PhaseRunning, PhaseAborted, PhaseError},
	PhaseRunning:      {PhaseEnded, PhaseAborted, PhaseError},
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", p)
}

// IsTerminal returns true if no transition leaves this phase
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseAborted || p == PhaseError
}

// CanReceiveMoves returns true if moves may be applied in this phase
func (p GamePhase) CanReceiveMoves() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	return transitions[p]
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range transitions[p] {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for phase, name := range phaseNames {
		if name == s {
			return phase, nil
		}
	}
	return PhaseInitializing, fmt.Errorf("unknown phase %q", s)
}
