package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"project_eventbot/internal/entities"
	"project_eventbot/internal/interfaces"
	"project_eventbot/internal/usecases"
)

type Handler struct {
	messageService *usecases.MessageService
	messenger      interfaces.Messenger
	logger         *slog.Logger
}

func NewHandler(service *usecases.MessageService, messenger interfaces.Messenger, logger *slog.Logger) *Handler {
	return &Handler{
		messageService: service,
		messenger:      messenger,
		logger:         logger,
	}
}

// RouteConfig toggles the optional surfaces around the webhook.
type RouteConfig struct {
	VerifyWebhookSignature bool // off by default; the gateway stub stays disabled
	EnableSendAPI          bool // requires JWT_SECRET
}

func SetupRoutes(r *gin.Engine, service *usecases.MessageService, messenger interfaces.Messenger, middleware *Middleware, cfg RouteConfig, logger *slog.Logger) {
	h := NewHandler(service, messenger, logger)

	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max request size

	r.GET("/health", h.Health)

	webhook := r.Group("/webhook")
	if cfg.VerifyWebhookSignature {
		webhook.Use(middleware.VerifyWebhookSignature())
	}
	webhook.POST("/inbound", h.HandleInbound)

	if cfg.EnableSendAPI {
		api := r.Group("/api")
		api.Use(middleware.AuthRequired())
		api.Use(middleware.RateLimitPerClient(5, 10))
		{
			api.POST("/send/template", h.SendTemplate)
		}
	}
}

// inboundPayload is the gateway's flat webhook envelope.
type inboundPayload struct {
	From        string `json:"from"`
	MessageType string `json:"message_type"`
	Text        string `json:"text"`
	Status      string `json:"status"`
	MessageID   string `json:"messageId"`
}

// HandleInbound receives a gateway callback. A body that fails to parse as
// JSON gets a 400 and nothing else happens; every other path ends in a 200
// acknowledgment regardless of how the pipeline fared — the ack is a
// transport contract with the gateway, not a business result.
func (h *Handler) HandleInbound(c *gin.Context) {
	var payload inboundPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "invalid payload: %v", err)
		return
	}

	msg := classify(payload)
	h.logger.Info("webhook received",
		"from", msg.From,
		"kind", msg.Kind,
		"text", TruncateForLog(msg.Text),
	)

	if err := h.messageService.ProcessMessage(c.Request.Context(), msg); err != nil {
		h.logger.Error("webhook processing failed", "from", msg.From, "error", err)
	}

	c.String(http.StatusOK, "message received")
}

func classify(payload inboundPayload) entities.InboundMessage {
	msg := entities.InboundMessage{From: payload.From}
	switch {
	case payload.Status != "":
		msg.Kind = entities.KindStatus
		msg.StatusID = payload.MessageID
	case payload.MessageType == "text":
		msg.Kind = entities.KindText
		msg.Text = payload.Text
	case payload.MessageType != "":
		msg.Kind = entities.KindNonText
	default:
		msg.Kind = entities.KindUnrecognized
	}
	return msg
}

type sendTemplateRequest struct {
	To             string                       `json:"to"`
	TemplateName   string                       `json:"template_name"`
	LanguageCode   string                       `json:"language_code"`
	BodyParameters []entities.TemplateParameter `json:"body_parameters"`
	MediaURL       string                       `json:"media_url"`
}

// SendTemplate sends a pre-approved template message to a recipient.
// Business-initiated contact happens here, not on the webhook path.
func (h *Handler) SendTemplate(c *gin.Context) {
	var req sendTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !ValidRecipient(req.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient"})
		return
	}
	if !ValidTemplateName(req.TemplateName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template name"})
		return
	}
	if req.LanguageCode == "" {
		req.LanguageCode = "en"
	}

	tmpl := entities.TemplateMessage{
		Name:           req.TemplateName,
		LanguageCode:   req.LanguageCode,
		BodyParameters: req.BodyParameters,
		MediaURL:       req.MediaURL,
	}

	receipt, err := h.messenger.SendTemplate(c.Request.Context(), req.To, tmpl)
	if err != nil {
		h.logger.Error("template send failed", "to", req.To, "template", req.TemplateName, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message_uuid": receipt.MessageID})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
