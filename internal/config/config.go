package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "Asia/Tokyo"
	defaultRSSURL     = "https://www.mlit.go.jp/pressrelease.rdf"
	defaultListingURL = "https://www.mlit.go.jp/report/interview/daijin.html"

	configPathEnv = "MLIT_SUMMARY_CONFIG"
)

// Delivery modes gate which outbound branches run at all.
const (
	DeliverySlack = "slack"
	DeliveryEmail = "email"
	DeliveryBoth  = "both"
)

// Provider kinds selectable for summarization.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

// Config holds all settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Sources   SourceConfig    `yaml:"sources"`
	Window    WindowConfig    `yaml:"window"`
	Provider  ProviderConfig  `yaml:"provider"`
	Slack     SlackConfig     `yaml:"slack"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Delivery  string          `yaml:"delivery"`
	Artifact  string          `yaml:"artifact"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig points at the two MLIT sources.
type SourceConfig struct {
	PressRSSURL    string `yaml:"pressRssUrl"`
	InterviewURL   string `yaml:"interviewListUrl"`
	FeedLimit      int    `yaml:"feedLimit"`
	InterviewLimit int    `yaml:"interviewLimit"`
}

// WindowConfig defines the days-back filter window.
type WindowConfig struct {
	DaysBack        int    `yaml:"daysBack"`
	Timezone        string `yaml:"timezone"`
	WeekendRollback bool   `yaml:"weekendRollback"`

	location *time.Location `yaml:"-"`
}

// Location resolves the window timezone string to a time.Location.
func (w WindowConfig) Location() *time.Location {
	if w.location != nil {
		return w.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// ProviderConfig selects and credentials the summarization backend.
type ProviderConfig struct {
	Kind   string       `yaml:"kind"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Claude ClaudeConfig `yaml:"claude"`
	Gemini GeminiConfig `yaml:"gemini"`
}

// OpenAIConfig defines how to contact the OpenAI API.
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// ClaudeConfig defines how to contact the Anthropic API.
type ClaudeConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// GeminiConfig defines how to contact the Gemini API.
type GeminiConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// SlackConfig wires delivery targets and auth.
type SlackConfig struct {
	BotToken       string `yaml:"botToken"`
	ChannelID      string `yaml:"channelId"`
	DebugChannelID string `yaml:"debugChannelId"`
	DebugUserID    string `yaml:"debugUserId"`
	DebugMode      bool   `yaml:"debugMode"`
}

// SMTPConfig describes the optional email branch. Empty Host disables it.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
	From     string `yaml:"from"`
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.User != "" && s.Password != "" && s.To != ""
}

// SchedulerConfig defines recurring runs; empty expression means run once.
type SchedulerConfig struct {
	CronExpression string `yaml:"cronExpression"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Sources.PressRSSURL, "MLIT_PRESS_RSS")
	setString(&c.Sources.InterviewURL, "MLIT_INTERVIEW_LIST")
	setInt(&c.Window.DaysBack, "MLIT_DAYS_BACK")
	setString(&c.Window.Timezone, "MLIT_TIMEZONE")

	setString(&c.Provider.Kind, "AI_PROVIDER")
	setString(&c.Provider.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.Provider.OpenAI.Model, "OPENAI_MODEL")
	setString(&c.Provider.Claude.APIKey, "ANTHROPIC_API_KEY")
	setString(&c.Provider.Claude.Model, "ANTHROPIC_MODEL")
	setString(&c.Provider.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Provider.Gemini.Model, "GEMINI_MODEL")

	setString(&c.Slack.BotToken, "SLACK_BOT_TOKEN")
	setString(&c.Slack.ChannelID, "SLACK_CHANNEL_ID")
	setString(&c.Slack.DebugChannelID, "SLACK_DEBUG_CHANNEL_ID")
	setString(&c.Slack.DebugUserID, "SLACK_DEBUG_USER_ID")
	setBool(&c.Slack.DebugMode, "SLACK_DEBUG_MODE")

	setString(&c.SMTP.Host, "SMTP_HOST")
	setInt(&c.SMTP.Port, "SMTP_PORT")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Password, "SMTP_PASS")
	setString(&c.SMTP.To, "SMTP_TO")
	setString(&c.SMTP.From, "SMTP_FROM")
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.User
	}

	setString(&c.Delivery, "DELIVERY")
}

func (c *Config) bindTimezone() {
	tz := c.Window.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Window.location = loc
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		} else {
			log.Printf("config: %s=%q is not an integer, ignoring", env, v)
		}
	}
}

func setBool(dst *bool, env string) {
	if v := os.Getenv(env); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			*dst = true
		default:
			*dst = false
		}
	}
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Sources: SourceConfig{
			PressRSSURL:    defaultRSSURL,
			InterviewURL:   defaultListingURL,
			FeedLimit:      20,
			InterviewLimit: 5,
		},
		Window: WindowConfig{
			DaysBack:        1,
			Timezone:        defaultTimezone,
			WeekendRollback: true,
			location:        tz,
		},
		Provider: ProviderConfig{
			Kind: ProviderOpenAI,
			OpenAI: OpenAIConfig{
				Endpoint: "https://api.openai.com/v1/chat/completions",
				Model:    "gpt-4.1-mini",
			},
			Claude: ClaudeConfig{
				Endpoint: "https://api.anthropic.com/v1/messages",
				Model:    "claude-3-5-sonnet-latest",
			},
			Gemini: GeminiConfig{
				Endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
				Model:    "gemini-2.5-pro",
			},
		},
		SMTP:     SMTPConfig{Port: 465},
		Delivery: DeliverySlack,
		Artifact: "latest_summary.md",
	}
}
