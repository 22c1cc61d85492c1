package interfaces

import (
	"context"

	"project_eventbot/internal/entities"
)

type ReplyGenerator interface {
	GenerateReply(ctx context.Context, userText string) (string, error)
}

type Messenger interface {
	SendText(ctx context.Context, to, text string) (entities.DeliveryReceipt, error)
	SendTemplate(ctx context.Context, to string, tmpl entities.TemplateMessage) (entities.DeliveryReceipt, error)
}
