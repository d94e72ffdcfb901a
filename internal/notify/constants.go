package notify

// Embed styling for winner DMs
const (
	WinnerEmbedTitle  = "🎉 You won the wedding lottery!"
	WinnerEmbedColor  = 0xF1C40F
	WinnerEmbedFooter = "Wedding Lottery"

	winnerDescriptionFormat = "Congratulations **%s**! Your photo was drawn. Please come to the front to collect your prize."
	winnerFallbackName      = "guest"
)

// Log messages
const (
	LogMsgNotifySkippedChangeFeed = "Skipping winner notification for replicated draw"
	LogMsgNotifySkippedDisabled   = "Winner notification disabled for this draw"
	LogMsgNotifySkippedNoSender   = "Winner notification skipped, no messaging token configured"
	LogMsgNotifyInvalidPayload    = "Invalid payload for new winner event"
	LogMsgNotifyQueued            = "Winner notification queued"
	LogMsgNotifyQueueFull         = "Winner notification dropped, queue full"
	LogMsgNotifyDelivered         = "Winner notification delivered"
	LogMsgNotifyFailed            = "Winner notification failed"
	LogMsgNotifyPublishFailed     = "Failed to publish notification outcome"
)

// Error contexts
const (
	ErrContextOpenDM     = "failed to open DM channel"
	ErrContextSendEmbed  = "failed to send winner embed"
	ErrContextQueueFull  = "notification queue full"
	ErrContextNewSession = "failed to create discord session"
)
