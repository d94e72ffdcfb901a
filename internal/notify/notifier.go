package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// Request is one winner to notify
type Request struct {
	DrawID            uuid.UUID
	WinnerUserID      string
	WinnerDisplayName string
	WinnerPhotoURL    string
	DrawTime          time.Time
}

// RequestFromRecord builds a request from a history record
func RequestFromRecord(drawID uuid.UUID, rec domain.HistoryRecord) Request {
	return Request{
		DrawID:            drawID,
		WinnerUserID:      rec.WinnerUserID,
		WinnerDisplayName: rec.WinnerDisplayName,
		WinnerPhotoURL:    rec.WinnerPhotoURL,
		DrawTime:          rec.DrawTime,
	}
}

// Notifier delivers a winner message to a messaging platform
type Notifier interface {
	Notify(ctx context.Context, req Request) error
}

// Session is the subset of *discordgo.Session used to send DMs
type Session interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier sends the winner a direct message embed
type DiscordNotifier struct {
	session Session
}

// NewDiscordNotifier wraps an existing session
func NewDiscordNotifier(session Session) *DiscordNotifier {
	return &DiscordNotifier{session: session}
}

// NewDiscordSession creates a REST-only bot session. DMs do not need the gateway.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextNewSession, err)
	}
	return s, nil
}

// Notify opens a DM channel with the winner and posts the embed
func (n *DiscordNotifier) Notify(ctx context.Context, req Request) error {
	ch, err := n.session.UserChannelCreate(req.WinnerUserID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrNotificationDispatchFailure, ErrContextOpenDM, err)
	}

	if _, err := n.session.ChannelMessageSendEmbed(ch.ID, WinnerEmbed(req), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrNotificationDispatchFailure, ErrContextSendEmbed, err)
	}
	return nil
}

// WinnerEmbed renders the DM sent to a winner
func WinnerEmbed(req Request) *discordgo.MessageEmbed {
	name := req.WinnerDisplayName
	if name == "" {
		name = winnerFallbackName
	}

	embed := &discordgo.MessageEmbed{
		Title:       WinnerEmbedTitle,
		Description: fmt.Sprintf(winnerDescriptionFormat, name),
		Color:       WinnerEmbedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: WinnerEmbedFooter,
		},
	}
	if !req.DrawTime.IsZero() {
		embed.Timestamp = req.DrawTime.UTC().Format(time.RFC3339)
	}
	if req.WinnerPhotoURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: req.WinnerPhotoURL}
	}
	return embed
}
