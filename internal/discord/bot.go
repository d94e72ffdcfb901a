package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/WeddingBot_Go/internal/sse"
)

// Bot represents the Discord admin bot
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	Registry *CommandRegistry

	announceChannelID string
	stream            *sse.StreamClient
}

// Config holds the bot configuration
type Config struct {
	Token  string
	AppID  string
	APIURL string
	APIKey string

	// AnnounceChannelID receives a post for every new winner when set
	AnnounceChannelID string
}

// New creates a new Discord bot
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	b := &Bot{
		Session:           s,
		Client:            NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:             cfg.AppID,
		Registry:          NewCommandRegistry(),
		announceChannelID: cfg.AnnounceChannelID,
	}

	if cfg.AnnounceChannelID != "" {
		b.stream = sse.NewStreamClient(cfg.APIURL, cfg.APIKey, []string{sse.EventTypeNewWinner})
		NewAnnouncer(s, cfg.AnnounceChannelID).RegisterHandlers(b.stream)
	}
	return b, nil
}

// Start opens the gateway and, when configured, the winner announcement stream
func (b *Bot) Start(ctx context.Context) error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if b.stream != nil {
		b.stream.Start(ctx)
		slog.Info("Winner announcements enabled", "channel_id", b.announceChannelID)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	if b.stream != nil {
		b.stream.Stop()
	}
	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing Discord session", "error", err)
	}
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer cancel()

	if err := b.Start(ctx); err != nil {
		return err
	}
	defer b.Stop()

	<-ctx.Done()
	return nil
}

// SendAnnouncement posts an embed to the announcement channel
func (b *Bot) SendAnnouncement(embed *discordgo.MessageEmbed) error {
	if b.announceChannelID == "" {
		return fmt.Errorf("announcement channel not configured")
	}
	_, err := b.Session.ChannelMessageSendEmbed(b.announceChannelID, embed)
	return err
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b.Client)
	}
}
