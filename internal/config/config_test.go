package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MLIT_SUMMARY_CONFIG", "")
	t.Setenv("MLIT_PRESS_RSS", "")
	t.Setenv("MLIT_DAYS_BACK", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("DELIVERY", "")

	cfg := Load()

	if cfg.Sources.PressRSSURL != "https://www.mlit.go.jp/pressrelease.rdf" {
		t.Fatalf("unexpected default rss url: %s", cfg.Sources.PressRSSURL)
	}
	if cfg.Sources.InterviewURL != "https://www.mlit.go.jp/report/interview/daijin.html" {
		t.Fatalf("unexpected default interview url: %s", cfg.Sources.InterviewURL)
	}
	if cfg.Sources.FeedLimit != 20 || cfg.Sources.InterviewLimit != 5 {
		t.Fatalf("unexpected source limits: %+v", cfg.Sources)
	}
	if cfg.Window.DaysBack != 1 || !cfg.Window.WeekendRollback {
		t.Fatalf("unexpected window defaults: %+v", cfg.Window)
	}
	if cfg.Window.Location().String() != "Asia/Tokyo" {
		t.Fatalf("unexpected default timezone: %s", cfg.Window.Location())
	}
	if cfg.Provider.Kind != ProviderOpenAI {
		t.Fatalf("unexpected default provider: %s", cfg.Provider.Kind)
	}
	if cfg.Delivery != DeliverySlack {
		t.Fatalf("unexpected default delivery: %s", cfg.Delivery)
	}
	if cfg.Artifact != "latest_summary.md" {
		t.Fatalf("unexpected default artifact path: %s", cfg.Artifact)
	}
	if cfg.SMTP.Port != 465 {
		t.Fatalf("unexpected default smtp port: %d", cfg.SMTP.Port)
	}
	if cfg.SMTP.Enabled() {
		t.Fatalf("expected smtp disabled without credentials")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MLIT_SUMMARY_CONFIG", "")
	t.Setenv("MLIT_PRESS_RSS", "https://example.org/feed")
	t.Setenv("MLIT_DAYS_BACK", "3")
	t.Setenv("AI_PROVIDER", ProviderClaude)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C999")
	t.Setenv("SLACK_DEBUG_MODE", "true")
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_USER", "bot@example.org")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_TO", "team@example.org")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("DELIVERY", DeliveryBoth)

	cfg := Load()

	if cfg.Sources.PressRSSURL != "https://example.org/feed" {
		t.Fatalf("rss url override not applied: %s", cfg.Sources.PressRSSURL)
	}
	if cfg.Window.DaysBack != 3 {
		t.Fatalf("days back override not applied: %d", cfg.Window.DaysBack)
	}
	if cfg.Provider.Kind != ProviderClaude || cfg.Provider.Claude.APIKey != "sk-test" {
		t.Fatalf("provider override not applied: %+v", cfg.Provider)
	}
	if cfg.Slack.BotToken != "xoxb-test" || cfg.Slack.ChannelID != "C999" || !cfg.Slack.DebugMode {
		t.Fatalf("slack overrides not applied: %+v", cfg.Slack)
	}
	if !cfg.SMTP.Enabled() {
		t.Fatalf("expected smtp enabled: %+v", cfg.SMTP)
	}
	if cfg.SMTP.From != "bot@example.org" {
		t.Fatalf("expected from address to default to user, got %s", cfg.SMTP.From)
	}
	if cfg.Delivery != DeliveryBoth {
		t.Fatalf("delivery override not applied: %s", cfg.Delivery)
	}
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
window:
  daysBack: 7
  timezone: UTC
delivery: email
slack:
  channelId: CFILE
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("MLIT_SUMMARY_CONFIG", path)
	t.Setenv("MLIT_DAYS_BACK", "")
	t.Setenv("SLACK_CHANNEL_ID", "CENV")
	t.Setenv("DELIVERY", "")

	cfg := Load()

	if cfg.Window.DaysBack != 7 {
		t.Fatalf("yaml daysBack not applied: %d", cfg.Window.DaysBack)
	}
	if cfg.Window.Location().String() != "UTC" {
		t.Fatalf("yaml timezone not applied: %s", cfg.Window.Location())
	}
	if cfg.Delivery != DeliveryEmail {
		t.Fatalf("yaml delivery not applied: %s", cfg.Delivery)
	}
	// Env wins over the file.
	if cfg.Slack.ChannelID != "CENV" {
		t.Fatalf("expected env to win over yaml, got %s", cfg.Slack.ChannelID)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("MLIT_SUMMARY_CONFIG", "")
	t.Setenv("MLIT_DAYS_BACK", "tomorrow")
	t.Setenv("MLIT_TIMEZONE", "Mars/Olympus")

	cfg := Load()

	if cfg.Window.DaysBack != 1 {
		t.Fatalf("expected non-integer override ignored, got %d", cfg.Window.DaysBack)
	}
	if cfg.Window.Location().String() != "Asia/Tokyo" {
		t.Fatalf("expected unknown timezone to revert, got %s", cfg.Window.Location())
	}
}
