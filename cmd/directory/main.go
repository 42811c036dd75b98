// Package main provides the entry point for the directory server: an
// interactive search prompt over the alumni corpus.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/openstage/directory-server/internal/config"
	"github.com/openstage/directory-server/internal/di"
	"github.com/openstage/directory-server/internal/di/providers"
	"github.com/openstage/directory-server/internal/logger"
	"github.com/openstage/directory-server/internal/query"
	"github.com/openstage/directory-server/internal/rank"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	corpus := do.MustInvoke[*providers.CorpusHandle](injector)

	ctrl := query.New(corpus.Engine(), printResult, query.Options{
		DebounceInterval: cfg.Search.DebounceInterval,
		Search: rank.Options{
			MaxSecondary:   cfg.Search.MaxSecondary,
			ShowAllIfEmpty: cfg.Search.ShowAllIfEmpty,
		},
		Logger: log.Logger,
	})
	corpus.OnSwap(ctrl.SetEngine)

	// Read queries line by line; each line is evaluated once the debounce
	// interval passes without further input.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			ctrl.SetQuery(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			log.Error("stdin read failed", "error", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")
	ctrl.Stop()

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Directory server stopped")
}

func printResult(raw string, res *rank.Result, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "query %q failed: %v\n", raw, err)
		return
	}

	fmt.Printf("query: %q (normalized: %q)\n", raw, res.NormalizedQuery)
	for i, p := range res.Primary {
		fmt.Printf("  %2d. %-30s score=%-5d coverage=%.2f\n",
			i+1, p.Record.Name, p.Score, p.Coverage)
	}
	if len(res.Secondary) > 0 {
		fmt.Printf("  more matches:\n")
		for _, s := range res.Secondary {
			fmt.Printf("      %s\n", s.Name)
		}
	}
	if len(res.Primary) == 0 && len(res.Secondary) == 0 {
		fmt.Println("  no matches")
		if len(res.Suggestions) > 0 {
			fmt.Printf("  did you mean: %v\n", res.Suggestions)
		}
	}
}
