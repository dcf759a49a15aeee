// Command list-campaigns inspects a campaign store. With no arguments it lists
// every owner; given an owner it prints a summary of each of their campaigns.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/mythweaver/internal/config"
	"github.com/KirkDiggler/mythweaver/internal/repositories/campaigns"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opened, err := campaigns.OpenStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer func() {
		if closeErr := opened.Close(); closeErr != nil {
			log.Printf("Failed to close store: %v", closeErr)
		}
	}()

	if len(os.Args) < 2 {
		listOwners(ctx, opened)
		return
	}
	showOwner(ctx, opened, os.Args[1])
}

func listOwners(ctx context.Context, opened *campaigns.OpenedStore) {
	owners, err := opened.Owners(ctx)
	if err != nil {
		log.Fatalf("Failed to list owners: %v", err)
	}

	fmt.Printf("Found %d owners in %s store:\n", len(owners), opened.Backend)
	for _, owner := range owners {
		list, loadErr := opened.Store.Load(ctx, owner)
		if loadErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", owner, loadErr)
			continue
		}
		fmt.Printf("  %s: %d campaigns\n", owner, len(list))
	}
}

func showOwner(ctx context.Context, opened *campaigns.OpenedStore, owner string) {
	list, err := opened.Store.Load(ctx, owner)
	if err != nil {
		log.Fatalf("Failed to load campaigns for %s: %v", owner, err)
	}

	fmt.Printf("%s has %d campaigns:\n", owner, len(list))
	for _, c := range list {
		fmt.Println()
		for _, line := range c.Summary() {
			fmt.Printf("  %s\n", line)
		}
		fmt.Printf("  Last played %s\n", c.LastPlayed.Format("2006-01-02 15:04"))
		if len(c.RulesLog) > 0 {
			fmt.Printf("  Last roll: %s\n", strings.TrimSpace(c.RulesLog[len(c.RulesLog)-1]))
		}
	}
}
