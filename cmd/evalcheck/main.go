package main

// Evaluate an offer configuration from the command line:
//   go run ./cmd/evalcheck -config testdata/offer.json

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"offerfit-backend/internal/engine"
	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/offer"
)

func main() {
	configPath := flag.String("config", "", "Path to offer configuration JSON")
	topK := flag.Int("top-k", 0, "Recommendation count (0 uses the rule set default)")
	withTrace := flag.Bool("trace", false, "Include the pipeline trace in the output")
	outPath := flag.String("out", "", "Path to write the result JSON (optional)")
	flag.Parse()

	if strings.TrimSpace(*configPath) == "" {
		exitErr("config path is required")
	}

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		exitErr(fmt.Sprintf("read config: %v", err))
	}

	var cfg offer.Configuration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		exitErr(fmt.Sprintf("decode config: %v", err))
	}

	result, err := engine.EvaluateTopK(cfg, ruleset.Default(), *topK)
	if err != nil {
		exitErr(fmt.Sprintf("evaluate: %v", err))
	}
	if !*withTrace {
		result.Trace = nil
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("format result: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	fmt.Fprintf(os.Stderr, "readiness=%s alignment=%d bottleneck=%s ruleset=%s\n",
		result.Readiness, result.Alignment, result.Bottleneck.Dimension, result.RulesetVersion)

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	_, _ = os.Stdout.Write([]byte("\n"))
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
