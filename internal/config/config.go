package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr        string   // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir      string   // logs directory
	TargetsFile string   // path to the YAML target list
	WebhookURL  string   // Slack incoming-webhook URL; empty disables alerting
	UserAgent   string   // user agent sent with every probe
	APIKeys     []string // API keys accepted by /api/check; empty allows all (dev)
	RateRPM     int      // per-client requests per minute for the API; 0 disables limiting
	RateBurst   int      // burst allowance on top of RateRPM
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	targetsFile := os.Getenv("TARGETS_FILE")
	if targetsFile == "" {
		targetsFile = "domains.yaml"
	}

	ua := os.Getenv("USER_AGENT")
	if ua == "" {
		ua = "Watchtower/1.0"
	}

	rpm := 120
	if v := os.Getenv("RATE_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			rpm = n
		}
	}

	burst := 30
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			burst = n
		}
	}

	return Config{
		Addr:        addr,
		LogDir:      logDir,
		TargetsFile: targetsFile,
		WebhookURL:  os.Getenv("SLACK_WEBHOOK_URL"),
		UserAgent:   ua,
		APIKeys:     splitKeys(os.Getenv("API_KEYS")),
		RateRPM:     rpm,
		RateBurst:   burst,
	}
}

func splitKeys(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
