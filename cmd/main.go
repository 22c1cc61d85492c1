package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"project_eventbot/internal/infrastructure"
	"project_eventbot/internal/interfaces/http"
	"project_eventbot/internal/usecases"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	// Required configuration - refuse to start without credentials
	geminiAPIKey := mustEnv("GEMINI_API_KEY", logger)
	vonageAPIKey := mustEnv("VONAGE_API_KEY", logger)
	vonageAPISecret := mustEnv("VONAGE_API_SECRET", logger)
	whatsappNumber := mustEnv("WHATSAPP_NUMBER", logger)

	geminiModel := envOr("GEMINI_MODEL", "gemini-2.0-flash")
	knowledgePath := envOr("KNOWLEDGE_BASE_PATH", "data/knowledge_base.json")
	port := envOr("PORT", "8080")

	// Knowledge base & system instruction (built once, immutable afterwards)
	kb := infrastructure.LoadKnowledgeBase(knowledgePath, logger.With("component", "knowledge"))
	instruction := infrastructure.BuildSystemInstruction(kb)

	// Clients
	geminiService := infrastructure.NewGeminiService(geminiAPIKey, geminiModel, instruction, logger.With("component", "gemini"))
	vonageClient := infrastructure.NewVonageClient(vonageAPIKey, vonageAPISecret, whatsappNumber, logger.With("component", "vonage"))

	messageService := usecases.NewMessageService(geminiService, vonageClient, logger.With("component", "pipeline"))

	// HTTP server
	jwtSecret := os.Getenv("JWT_SECRET")
	signatureSecret := os.Getenv("VONAGE_SIGNATURE_SECRET")
	middleware := http.NewMiddleware(jwtSecret, signatureSecret)

	routeCfg := http.RouteConfig{
		VerifyWebhookSignature: signatureSecret != "",
		EnableSendAPI:          jwtSecret != "",
	}
	if !routeCfg.VerifyWebhookSignature {
		logger.Info("webhook signature verification disabled (VONAGE_SIGNATURE_SECRET not set)")
	}
	if !routeCfg.EnableSendAPI {
		logger.Info("template send API disabled (JWT_SECRET not set)")
	}

	r := gin.Default()
	http.SetupRoutes(r, messageService, vonageClient, middleware, routeCfg, logger.With("component", "webhook"))

	logger.Info("starting server", "port", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		logger.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
}

func mustEnv(key string, logger *slog.Logger) string {
	v := os.Getenv(key)
	if v == "" {
		logger.Error("missing required environment variable", "key", key)
		os.Exit(1)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
