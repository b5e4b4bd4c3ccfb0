package transformation

// Phase is the coarse lifecycle of a session
type Phase string

// Session phases
const (
	PhaseSetup    Phase = "SETUP"
	PhasePlaying  Phase = "PLAYING"
	PhaseComplete Phase = "COMPLETE"
)

// Suspension tracks where a turn is paused waiting on the player or on the
// narrative provider. Only PhasePlaying sessions are ever suspended.
type Suspension string

// Suspension states
const (
	SuspensionIdle                 Suspension = "IDLE"
	SuspensionAwaitingSourceChoice Suspension = "AWAITING_SOURCE_CHOICE"
	SuspensionAwaitingCard         Suspension = "AWAITING_CARD"
	SuspensionCardReady            Suspension = "CARD_READY"
)
