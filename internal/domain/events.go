package domain

// Event type constants used for event bus subscriptions, SSE delivery and
// metrics tracking.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeLotteryStateChanged is published after any LotteryState mutation
	EventTypeLotteryStateChanged = "lottery.state_changed"

	// EventTypeLotteryNewWinner is published once per accepted draw with all winners
	EventTypeLotteryNewWinner = "lottery.new_winner"

	// EventTypeLotteryHistoryChanged is published when history records are purged
	EventTypeLotteryHistoryChanged = "lottery.history_changed"

	// EventTypeLotteryError is published when a draw fails after being accepted
	EventTypeLotteryError = "lottery.error"

	// EventTypeWinnerNotified is published after a notification attempt completes
	EventTypeWinnerNotified = "lottery.winner_notified"
)

// Push frame types as seen by display clients
const (
	PushTypeState     = "state"
	PushTypeNewWinner = "newWinner"
	PushTypeError     = "error"
)
