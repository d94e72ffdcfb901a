package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// API client settings
const (
	apiPrefix        = "/api/v1"
	apiClientTimeout = 10 * time.Second
	apiMaxRetries    = 3
	apiRetryDelay    = 500 * time.Millisecond
)

// Command names
const (
	CmdPing           = "ping"
	CmdLotteryDraw    = "lottery-draw"
	CmdLotteryState   = "lottery-state"
	CmdLotteryReset   = "lottery-reset"
	CmdLotteryHistory = "lottery-history"
	CmdLotteryMode    = "lottery-mode"
	CmdLotteryActive  = "lottery-active"
)

// Command option names
const (
	OptLimit   = "limit"
	OptMode    = "mode"
	OptEnabled = "enabled"
)

const (
	defaultHistoryLimit = 5
	maxHistoryLimit     = 25
)

// adminPermissions restricts lottery commands to server managers
var adminPermissions int64 = discordgo.PermissionManageServer

// Embed colors
const (
	ColorWinner  = 0xF1C40F
	ColorInfo    = 0x3498DB
	ColorSuccess = 0x2ECC71
	ColorNeutral = 0x95A5A6
)

// Footer text
const (
	FooterLottery      = "Wedding Lottery"
	FooterLotteryAdmin = "Wedding Lottery Admin"
)
