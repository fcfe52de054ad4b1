// Command supportbot is a customer support agent for Thoughtful AI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/custodia-labs/supportbot/internal/adapters/driven/ai"
	"github.com/custodia-labs/supportbot/internal/adapters/driven/config/file"
	"github.com/custodia-labs/supportbot/internal/adapters/driven/knowledge"
	"github.com/custodia-labs/supportbot/internal/adapters/driving/cli"
	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
	"github.com/custodia-labs/supportbot/internal/core/services"
	"github.com/custodia-labs/supportbot/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a startup or command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrConfiguration):
		return 2
	default:
		return 1
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	prompts, err := file.NewPromptStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open prompts: %v\n", err)
		return err
	}

	source := knowledge.NewSource(os.Getenv(cli.EnvKnowledgeFile))

	var (
		mu          sync.Mutex
		initResults []*ai.InitResult
	)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, r := range initResults {
			r.Close()
		}
	}()

	newAgent := func(ctx context.Context) (driving.SupportAgent, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		cli.ApplyEnvironment(settings, os.Getenv)

		kb, err := source.Load()
		if err != nil {
			return nil, err
		}
		logger.Debug("knowledge base: %s (%d entries)", source.Origin(), len(kb.Entries))

		result := ai.Initialise(*settings)
		for _, w := range result.Warnings {
			logger.Warn("%s", w)
		}
		mu.Lock()
		initResults = append(initResults, result)
		mu.Unlock()

		session, err := services.BuildSession(ctx, services.SessionDeps{
			KnowledgeBase: kb,
			Embedder:      result.EmbeddingService,
			LLM:           result.LLMService,
			Prompts:       prompts,
			Settings:      *settings,
		})
		if err != nil {
			return nil, err
		}
		return session, nil
	}

	watchPrompts := func(ctx context.Context) {
		watcher, err := file.NewPromptWatcher(prompts)
		if err != nil {
			logger.Warn("prompt hot-reload disabled: %v", err)
			return
		}
		defer watcher.Close()
		watcher.Run(ctx)
	}

	cli.SetVersion(version)
	cli.Configure(cli.Config{
		Settings:   settingsService,
		NewAgent:   newAgent,
		Knowledge:  source.Load,
		Background: watchPrompts,
	})

	return cli.ExecuteContext(ctx)
}
