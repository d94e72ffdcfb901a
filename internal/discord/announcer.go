package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WeddingBot_Go/internal/sse"
)

// ChannelSender is the subset of *discordgo.Session used to post announcements
type ChannelSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts every new winner pushed by the lottery API to a channel
type Announcer struct {
	sender    ChannelSender
	channelID string
}

// NewAnnouncer creates an announcer for channelID
func NewAnnouncer(sender ChannelSender, channelID string) *Announcer {
	return &Announcer{
		sender:    sender,
		channelID: channelID,
	}
}

// RegisterHandlers registers the stream frame handlers
func (a *Announcer) RegisterHandlers(stream *sse.StreamClient) {
	stream.OnEvent(sse.EventTypeNewWinner, a.handleNewWinner)
}

func (a *Announcer) handleNewWinner(evt sse.Event) error {
	var payload sse.NewWinnerPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode newWinner payload: %w", err)
	}
	if len(payload.Winners) == 0 {
		return nil
	}

	names := make([]string, 0, len(payload.Winners))
	for _, w := range payload.Winners {
		names = append(names, "**"+winnerName(w)+"**")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎉 We have a winner!",
		Description: fmt.Sprintf("Congratulations %s!", strings.Join(names, ", ")),
		Color:       ColorWinner,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Eligible guests", Value: fmt.Sprintf("%d", payload.ParticipantsCount), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterLottery,
		},
		Timestamp: time.Unix(evt.Timestamp, 0).UTC().Format(time.RFC3339),
	}
	if photo := payload.Winners[0].WinnerPhotoURL; photo != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: photo}
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		slog.Error("Failed to send winner announcement", "error", err, "draw_id", payload.DrawID)
		return err
	}
	slog.Info("Winner announcement sent", "draw_id", payload.DrawID, "winners", len(payload.Winners))
	return nil
}
