package infrastructure

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

const instructionTemplate = `You are the official WhatsApp assistant for our event. Answer guest questions in a short, friendly tone.

Rules:
- Answer from the reference information below whenever it covers the question.
- For anything not covered (directions, weather, current news), you may use web search.
- Never invent prices, dates, or policies that are not in the reference information.
- Keep replies under a few sentences; this is a chat conversation.

Reference information:
%s`

// LoadKnowledgeBase reads the knowledge-base JSON file. A missing or corrupt
// file is not fatal: the bot runs with an empty knowledge base and the system
// instruction carries no domain facts.
func LoadKnowledgeBase(path string, logger *slog.Logger) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("knowledge base not loaded, continuing with empty knowledge", "path", path, "error", err)
		return map[string]any{}
	}

	var kb map[string]any
	if err := json.Unmarshal(data, &kb); err != nil {
		logger.Warn("knowledge base file is not valid JSON, continuing with empty knowledge", "path", path, "error", err)
		return map[string]any{}
	}

	logger.Info("knowledge base loaded", "path", path, "entries", len(kb))
	return kb
}

// BuildSystemInstruction serializes the knowledge base into the fixed prompt
// template. Computed once at startup; immutable for the process lifetime.
func BuildSystemInstruction(kb map[string]any) string {
	serialized, err := json.MarshalIndent(kb, "", "  ")
	if err != nil {
		serialized = []byte("{}")
	}
	return fmt.Sprintf(instructionTemplate, string(serialized))
}
