package openai

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"offerfit-backend/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const (
	systemPromptPhrase  = "You are a copy editor for a sales diagnostic. Respond with JSON only. Output must match the schema exactly."
	systemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."
)

// BuildPhrasePrompt creates the chat messages for a phrasing request.
func BuildPhrasePrompt(input llm.PhraseInput, model string) []Message {
	_, developer := resolvePromptTemplate(input.PromptVersion, model)
	return []Message{
		{Role: "system", Content: systemPromptPhrase},
		{Role: "developer", Content: developer},
		{Role: "user", Content: buildUserPrompt(input)},
	}
}

func buildFixPrompt(input llm.PhraseInput, model string, raw []byte) []Message {
	_, developer := resolvePromptTemplate(input.PromptVersion, model)
	return []Message{
		{Role: "system", Content: systemPromptFixJSON},
		{Role: "developer", Content: developer},
		{Role: "user", Content: fixUserPrompt(raw)},
	}
}

func resolvePromptTemplate(promptVersion, model string) (string, string) {
	version := strings.TrimSpace(promptVersion)
	template, ok := llm.PromptTemplate(version)
	usedVersion := version
	if !ok {
		log.Printf("unknown prompt version %q, defaulting to phrase_v1", version)
		usedVersion = "phrase_v1"
		template, _ = llm.PromptTemplate(usedVersion)
	}

	replacer := strings.NewReplacer(
		"{{PROMPT_VERSION}}", usedVersion,
		"{{MODEL}}", model,
	)
	return usedVersion, replacer.Replace(template)
}

func buildUserPrompt(input llm.PhraseInput) string {
	seeds, err := json.MarshalIndent(input.Recommendations, "", "  ")
	if err != nil {
		seeds = []byte("[]")
	}
	return fmt.Sprintf(
		"Verdict: %s (alignment %d/100)\nLimiting dimension: %s\nCustomer vertical: %s\n\nRecommendations:\n%s",
		input.Readiness, input.Alignment, input.BottleneckLabel, input.Vertical, string(seeds),
	)
}

func fixUserPrompt(raw []byte) string {
	return fmt.Sprintf("Fix this JSON to match the schema exactly. Output JSON only:\n%s", string(raw))
}
