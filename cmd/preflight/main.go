// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magnetlabs/watchtower/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	targets, err := config.LoadTargets(cfg.TargetsFile)
	if err != nil {
		fail(fmt.Sprintf("target list unusable: %v", err))
	}
	ok(fmt.Sprintf("%d targets loaded from %s", len(targets), cfg.TargetsFile))

	seen := map[string]bool{}
	for _, t := range targets {
		if seen[t.Name] {
			warn("duplicate target name: " + t.Name)
		}
		seen[t.Name] = true
	}

	if cfg.WebhookURL == "" {
		warn("SLACK_WEBHOOK_URL empty — failures will be logged but nobody gets alerted.")
	} else if !strings.HasPrefix(cfg.WebhookURL, "https://") {
		warn("SLACK_WEBHOOK_URL is not https.")
	} else {
		ok("SLACK_WEBHOOK_URL present")
	}

	if len(cfg.APIKeys) == 0 {
		warn("API_KEYS empty — /api/check is open to anyone who can reach it.")
	} else {
		ok(fmt.Sprintf("%d API keys configured", len(cfg.APIKeys)))
	}

	if os.Getenv("ADDR") == "" {
		warn("ADDR is empty; default " + cfg.Addr + " will be used.")
	} else {
		ok("ADDR=" + cfg.Addr)
	}

	ok("preflight passed")
}
