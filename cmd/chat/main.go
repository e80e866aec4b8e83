// Interactive terminal client for the BFSI assistant. Drives the pipeline
// directly (no HTTP hop) and prints the tier badge plus debug scores for
// every answer.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bfsi-assistant-be/internal/bootstrap"
	"bfsi-assistant-be/internal/config"
	"bfsi-assistant-be/internal/constant"
	"bfsi-assistant-be/pkg/pipeline"

	"github.com/fatih/color"
)

var tierBadges = map[string]*color.Color{
	constant.TierDataset:   color.New(color.FgGreen, color.Bold),
	constant.TierSLM:       color.New(color.FgBlue, color.Bold),
	constant.TierRAG:       color.New(color.FgMagenta, color.Bold),
	constant.TierGuardrail: color.New(color.FgRed, color.Bold),
}

var tierLabels = map[string]string{
	constant.TierDataset:   "Tier 1 · Dataset Match",
	constant.TierSLM:       "Tier 2 · SLM Generation",
	constant.TierRAG:       "Tier 3 · RAG Augmented",
	constant.TierGuardrail: "Guardrail Filtered",
}

func main() {
	showDebug := flag.Bool("debug", true, "Show tier and score details per answer")
	flag.Parse()

	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)

	ctx := context.Background()

	fmt.Println("BFSI Call Center Assistant - ask a banking, finance, or insurance question (type 'exit' to quit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			break
		}
		if input == "" {
			continue
		}

		start := time.Now()
		state := container.Pipeline.Run(ctx, input)
		elapsed := time.Since(start)

		printAnswer(state, elapsed, *showDebug)
	}
}

func printAnswer(state *pipeline.State, elapsed time.Duration, showDebug bool) {
	if showDebug {
		badge := tierBadges[state.TierUsed]
		label := tierLabels[state.TierUsed]
		if badge == nil {
			badge = color.New(color.FgWhite)
			label = state.TierUsed
		}
		badge.Printf("[%s]\n", label)
	}

	fmt.Println(state.Response)

	if showDebug {
		faint := color.New(color.Faint)
		faint.Printf("dataset_score=%.4f rag_score=%.4f elapsed=%s\n",
			state.DatasetScore, state.RagScore, elapsed.Round(time.Millisecond))
	}
}
