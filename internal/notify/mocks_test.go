package notify

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/worker"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(recipientID, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, req Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// inlineQueue runs jobs synchronously, or rejects them all when full
type inlineQueue struct {
	full bool
	jobs int
}

func (q *inlineQueue) TryEnqueue(job worker.Job) bool {
	if q.full {
		return false
	}
	q.jobs++
	_ = job.Process(context.Background())
	return true
}

// outcomeRecorder captures winner.notified payloads
type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []event.WinnerNotifiedPayloadV1
}

func (r *outcomeRecorder) handle(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.WinnerNotifiedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.outcomes = append(r.outcomes, p)
	r.mu.Unlock()
	return nil
}

func (r *outcomeRecorder) all() []event.WinnerNotifiedPayloadV1 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.WinnerNotifiedPayloadV1(nil), r.outcomes...)
}
