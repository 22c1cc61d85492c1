package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// FallbackReply is sent whenever the generation backend fails. End users
// never see a raw provider error.
const FallbackReply = "Sorry, I'm having trouble answering right now. Please try again in a moment. 🙏"

// ErrClientNotReady means the Gemini client never finished initializing.
// Callers should treat it as fatal to this service, not to the process.
var ErrClientNotReady = errors.New("gemini client is not ready")

// GeminiService generates replies with the Gemini API. The underlying client
// is built asynchronously at construction; GenerateReply waits for that
// initialization to complete before issuing a call.
type GeminiService struct {
	model       string
	instruction string
	logger      *slog.Logger

	ready   chan struct{} // closed when init finishes, success or not
	client  *genai.Client
	initErr error
}

// NewGeminiService starts client initialization in the background and
// returns immediately. instruction is the precomputed system instruction.
func NewGeminiService(apiKey, model, instruction string, logger *slog.Logger) *GeminiService {
	s := &GeminiService{
		model:       model,
		instruction: instruction,
		logger:      logger,
		ready:       make(chan struct{}),
	}
	go s.initialize(apiKey)
	return s
}

func (s *GeminiService) initialize(apiKey string) {
	defer close(s.ready)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		s.initErr = fmt.Errorf("create gemini client: %w", err)
		s.logger.Error("gemini client initialization failed", "error", err)
		return
	}

	s.client = client
	s.logger.Info("gemini client ready", "model", s.model)
}

// GenerateReply issues one generation call for the user's text. Backend
// failures are converted into FallbackReply so the conversation continues;
// only an unready client surfaces as an error.
func (s *GeminiService) GenerateReply(ctx context.Context, userText string) (string, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if s.initErr != nil || s.client == nil {
		return "", ErrClientNotReady
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(s.instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.6),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(userText), config)
	if err != nil {
		s.logger.Error("generation failed, falling back to apology", "error", err)
		return FallbackReply, nil
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		s.logger.Error("generation returned no text, falling back to apology")
		return FallbackReply, nil
	}

	return reply, nil
}
