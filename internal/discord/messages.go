package discord

// Friendly message constants for Discord responses
const (
	MsgDrawInProgress = "⏳ **Draw in progress**\nWait for the current draw to finish, or reset the lottery."
	MsgNoEligible     = "📷 **No eligible guests**\nNobody has shared a public photo yet."
	MsgNotFound       = "❓ **Not found**\nThat record no longer exists."
	MsgInvalidInput   = "⚠️ **Invalid value**"
	MsgUnauthorized   = "🔒 **Unauthorized**\nThe bot's API key was rejected."
	MsgAPIUnavailable = "📡 **Lottery server unreachable**\nTry again in a moment."

	MsgGenericError = "❌ Something went wrong."
	MsgNoHistory    = "No draws yet."
)
