// Command llmchat is an interactive terminal chat over llmbridge.
// Configuration comes from llmchat.yaml or LLMBRIDGE_* environment
// variables; the API key is read here, never inside the library.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/llmbridge"
	"github.com/HerbHall/llmbridge/internal/config"
	"github.com/HerbHall/llmbridge/pkg/llm"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	v, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var provider llmbridge.Provider
	switch name := v.GetString("provider"); name {
	case "anthropic":
		provider = llmbridge.Anthropic
	case "openai":
		provider = llmbridge.OpenAI
	default:
		fmt.Fprintf(os.Stderr, "unknown provider %q (want anthropic or openai)\n", name)
		os.Exit(1)
	}

	apiKey := v.GetString("api_key")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "api key not set: set LLMBRIDGE_API_KEY or api_key in llmchat.yaml")
		os.Exit(1)
	}

	client, err := llmbridge.New(provider, apiKey, llmbridge.WithLogger(logger.Named("llmbridge")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create client: %v\n", err)
		os.Exit(1)
	}

	var opts []llmbridge.ConversationOption
	if model := v.GetString("model"); model != "" {
		opts = append(opts, llmbridge.WithModel(model))
	}
	if prompt := v.GetString("system_prompt"); prompt != "" {
		opts = append(opts, llmbridge.WithSystemPrompt(prompt))
	}
	opts = append(opts,
		llmbridge.WithMaxTokens(v.GetInt("max_tokens")),
		llmbridge.WithTemperature(v.GetFloat64("temperature")),
	)

	conv := client.NewConversation(opts...)
	logger.Info("conversation started",
		zap.String("provider", provider.String()),
		zap.String("conversation_id", conv.ID()),
	)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	var totalUsage llm.Usage

	fmt.Println("llmchat -- type a message, /quit to exit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}

		if err := conv.Add(ctx, line); err != nil {
			logger.Error("exchange failed", zap.Error(err))
			continue
		}

		resp := conv.Last()
		totalUsage.InputTokens += resp.Usage.InputTokens
		totalUsage.OutputTokens += resp.Usage.OutputTokens

		if resp.StopReason == llm.StopToolUse {
			for _, use := range resp.ToolUses() {
				fmt.Printf("[tool call] %s(%v)\n", use.Name, use.Input)
			}
			continue
		}
		fmt.Println(conv.LastResponse())
	}

	fmt.Printf("session usage: %d input tokens, %d output tokens over %d turns\n",
		totalUsage.InputTokens, totalUsage.OutputTokens, len(conv.Dialog())/2)
}
