package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/llm"
	openai "offerfit-backend/internal/llm/openai"
	"offerfit-backend/internal/offer"
	"offerfit-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	configPath := flag.String("config", "", "Path to offer configuration JSON")
	promptVersion := flag.String("prompt-version", cfg.PromptVersion, "Prompt version")
	outPath := flag.String("out", "", "Path to write raw JSON output (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	dryRun := flag.Bool("dry-run", false, "Print the rendered prompt instead of calling the provider")
	flag.Parse()

	if strings.TrimSpace(*configPath) == "" {
		exitErr("config path is required")
	}

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		exitErr(fmt.Sprintf("read config: %v", err))
	}

	var offerCfg offer.Configuration
	if err := json.Unmarshal(raw, &offerCfg); err != nil {
		exitErr(fmt.Sprintf("decode config: %v", err))
	}
	if err := offerCfg.Validate(); err != nil {
		exitErr(fmt.Sprintf("invalid config: %v", err))
	}

	result, err := engine.Evaluate(offerCfg, ruleset.Default())
	if err != nil {
		exitErr(fmt.Sprintf("evaluate: %v", err))
	}

	input := buildInput(offerCfg, result, *promptVersion)

	if *dryRun {
		for _, msg := range openai.BuildPhrasePrompt(input, *model) {
			fmt.Printf("--- %s ---\n%s\n\n", msg.Role, msg.Content)
		}
		return
	}

	client, err := buildClient(*provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	phrased, err := client.PhraseRecommendations(context.Background(), input)
	if err != nil {
		exitErr(fmt.Sprintf("llm phrase: %v", err))
	}

	pretty, err := prettyJSON(phrased)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func buildInput(offerCfg offer.Configuration, result *engine.Result, promptVersion string) llm.PhraseInput {
	seeds := make([]llm.Seed, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		seeds = append(seeds, llm.Seed{
			Fix:         string(rec.Fix),
			Headline:    rec.Headline,
			Explanation: rec.Explanation,
			Steps:       rec.Steps,
			EndState:    rec.EndState,
		})
	}
	return llm.PhraseInput{
		Readiness:       string(result.Readiness),
		Alignment:       result.Alignment,
		BottleneckLabel: strings.ReplaceAll(string(result.Bottleneck.Dimension), "_", " "),
		Vertical:        string(offerCfg.Vertical),
		PromptVersion:   promptVersion,
		Recommendations: seeds,
	}
}

func buildClient(provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
