package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"project_eventbot/internal/entities"
	"project_eventbot/internal/interfaces"
)

// MessageService runs the receive → generate → send pipeline. Each inbound
// message is processed independently; there is no shared mutable state, no
// retry, and no deduplication (a provider redelivery produces a second reply).
type MessageService struct {
	generator interfaces.ReplyGenerator
	messenger interfaces.Messenger
	logger    *slog.Logger
}

func NewMessageService(generator interfaces.ReplyGenerator, messenger interfaces.Messenger, logger *slog.Logger) *MessageService {
	return &MessageService{
		generator: generator,
		messenger: messenger,
		logger:    logger,
	}
}

// ProcessMessage acts on one normalized inbound message. Text messages get
// exactly one generation attempt and one send attempt; everything else is
// logged and dropped. Errors are returned for the caller to log — they must
// never affect the webhook acknowledgment.
func (s *MessageService) ProcessMessage(ctx context.Context, msg entities.InboundMessage) error {
	switch msg.Kind {
	case entities.KindText:
		if msg.Text == "" {
			s.logger.Info("text message with empty body, ignoring", "from", msg.From)
			return nil
		}
		return s.replyTo(ctx, msg)

	case entities.KindStatus:
		s.logger.Info("delivery status update", "message_id", msg.StatusID)
		return nil

	case entities.KindNonText:
		s.logger.Info("unsupported message type, ignoring", "from", msg.From)
		return nil

	default:
		s.logger.Info("unrecognized webhook payload, ignoring", "from", msg.From)
		return nil
	}
}

func (s *MessageService) replyTo(ctx context.Context, msg entities.InboundMessage) error {
	reply, err := s.generator.GenerateReply(ctx, msg.Text)
	if err != nil {
		return fmt.Errorf("generate reply for %s: %w", msg.From, err)
	}

	receipt, err := s.messenger.SendText(ctx, msg.From, reply)
	if err != nil {
		return fmt.Errorf("send reply to %s: %w", msg.From, err)
	}

	s.logger.Info("reply delivered", "to", msg.From, "message_id", receipt.MessageID)
	return nil
}
