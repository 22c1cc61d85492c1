package usecases

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project_eventbot/internal/entities"
)

type fakeGenerator struct {
	calls int
	reply string
	err   error
}

func (g *fakeGenerator) GenerateReply(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.reply, g.err
}

type fakeMessenger struct {
	sentTo   []string
	sentText []string
	err      error
}

func (m *fakeMessenger) SendText(_ context.Context, to, text string) (entities.DeliveryReceipt, error) {
	if m.err != nil {
		return entities.DeliveryReceipt{}, m.err
	}
	m.sentTo = append(m.sentTo, to)
	m.sentText = append(m.sentText, text)
	return entities.DeliveryReceipt{MessageID: "uuid"}, nil
}

func (m *fakeMessenger) SendTemplate(_ context.Context, _ string, _ entities.TemplateMessage) (entities.DeliveryReceipt, error) {
	return entities.DeliveryReceipt{}, errors.New("not used")
}

func newService(g *fakeGenerator, m *fakeMessenger) *MessageService {
	return NewMessageService(g, m, slog.New(slog.DiscardHandler))
}

func TestProcessMessage_TextGeneratesAndSendsOnce(t *testing.T) {
	gen := &fakeGenerator{reply: "doors open at 7pm"}
	messenger := &fakeMessenger{}
	s := newService(gen, messenger)

	err := s.ProcessMessage(context.Background(), entities.InboundMessage{
		From: "+1555",
		Kind: entities.KindText,
		Text: "when do doors open?",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	require.Len(t, messenger.sentTo, 1)
	assert.Equal(t, "+1555", messenger.sentTo[0])
	assert.Equal(t, "doors open at 7pm", messenger.sentText[0])
}

func TestProcessMessage_NoActionKinds(t *testing.T) {
	tests := []struct {
		name string
		msg  entities.InboundMessage
	}{
		{"status update", entities.InboundMessage{Kind: entities.KindStatus, StatusID: "abc"}},
		{"non-text", entities.InboundMessage{From: "+1555", Kind: entities.KindNonText}},
		{"unrecognized", entities.InboundMessage{From: "+1555", Kind: entities.KindUnrecognized}},
		{"text with empty body", entities.InboundMessage{From: "+1555", Kind: entities.KindText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{reply: "hi"}
			messenger := &fakeMessenger{}
			s := newService(gen, messenger)

			require.NoError(t, s.ProcessMessage(context.Background(), tt.msg))
			assert.Zero(t, gen.calls)
			assert.Empty(t, messenger.sentTo)
		})
	}
}

func TestProcessMessage_GeneratorErrorSkipsSend(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("client is not ready")}
	messenger := &fakeMessenger{}
	s := newService(gen, messenger)

	err := s.ProcessMessage(context.Background(), entities.InboundMessage{
		From: "+1555", Kind: entities.KindText, Text: "hello",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate reply")
	assert.Empty(t, messenger.sentTo)
}

func TestProcessMessage_SendErrorIsWrapped(t *testing.T) {
	gen := &fakeGenerator{reply: "hi"}
	sendErr := errors.New("gateway down")
	messenger := &fakeMessenger{err: sendErr}
	s := newService(gen, messenger)

	err := s.ProcessMessage(context.Background(), entities.InboundMessage{
		From: "+1555", Kind: entities.KindText, Text: "hello",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
	assert.Contains(t, err.Error(), "send reply")
}
