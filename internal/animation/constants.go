package animation

import "time"

// DefaultBudget is the total reveal duration shown on display screens
const DefaultBudget = 10 * time.Second

// Step counts per mode. Fewer steps are used when the budget is too short
// to keep every interval at least one nanosecond apart.
const (
	ShuffleSteps         = 40
	WaterfallSteps       = 48
	MachineSteps         = 36
	TournamentBracketCap = 16
)

// Easing exponent for the timeline. Values above 1 decelerate.
const TimelineExponent = 2.0

// Log messages
const (
	LogMsgTargetMissing   = "Animation target missing, skipping remaining steps"
	LogMsgRenderFailed    = "Animation step render failed"
	LogMsgPlaybackStarted = "Animation playback started"
)

// Error messages
const (
	ErrMsgEmptyCollection   = "collection is empty"
	ErrMsgIndexOutOfRange   = "winner index out of range"
	ErrMsgNonPositiveBudget = "budget must be positive"
)
