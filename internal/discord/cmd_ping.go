package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PingCommand reports gateway and lottery API latency along with the draw
// lock, which is the first thing to check when a screen looks stuck
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdPing,
		Description: "Check the bot, the lottery API and the draw lock",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (*discordgo.MessageEmbed, error) {
			return pingEmbed(s.HeartbeatLatency(), client)
		}, ResponseConfig{Title: "🏓 Pong", Color: ColorSuccess})
	}

	return cmd, handler
}

func pingEmbed(gateway time.Duration, client *APIClient) (*discordgo.MessageEmbed, error) {
	start := time.Now()
	state, err := client.GetState()
	if err != nil {
		return nil, err
	}
	api := time.Since(start)

	lock := "free"
	color := ColorSuccess
	if state.IsDrawing {
		lock = fmt.Sprintf("held since %s", state.UpdatedAt.Format(time.Kitchen))
		color = ColorWinner
	} else if !state.IsActive {
		color = ColorNeutral
	}

	embed := createEmbed("🏓 Pong", "", color, FooterLotteryAdmin)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Gateway", Value: gateway.Round(time.Millisecond).String(), Inline: true},
		{Name: "Lottery API", Value: api.Round(time.Millisecond).String(), Inline: true},
		{Name: "State", Value: fmt.Sprintf("v%d, %s", state.Version, activeLabel(state.IsActive)), Inline: true},
		{Name: "Draw lock", Value: lock, Inline: true},
	}
	return embed, nil
}

func activeLabel(active bool) string {
	if active {
		return "screens on"
	}
	return "screens hidden"
}
