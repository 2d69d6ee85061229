package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "REVIEW_INSIGHTS_CONFIG"
	databasePathEnv   = "DATABASE_PATH"
	inferenceKeyEnv   = "INFERENCE_API_KEY"
	openAIKeyEnv      = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	reviewsCSVPathEnv = "REVIEWS_CSV_PATH"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Inference     InferenceConfig    `yaml:"inference"`
	Analysis      AnalysisConfig     `yaml:"analysis"`
	Notifications NotificationConfig `yaml:"notifications"`
	OpenAI        OpenAIConfig       `yaml:"openai"`
	Input         InputConfig        `yaml:"input"`
	Banks         []string           `yaml:"banks"`
	Stores        []StoreConfig      `yaml:"stores"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines when scheduled batch runs fire.
type SchedulerConfig struct {
	Enabled        bool           `yaml:"enabled"`
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// InferenceConfig describes the sentiment and translation service endpoints.
type InferenceConfig struct {
	SentimentURL string `yaml:"sentimentUrl"`
	TranslateURL string `yaml:"translateUrl"`
	APIKey       string `yaml:"apiKey"`
}

// AnalysisConfig tunes keyword extraction and insight generation.
type AnalysisConfig struct {
	TopKeywords    int               `yaml:"topKeywords"`
	TopThemes      int               `yaml:"topThemes"`
	EmojiOverrides map[string]string `yaml:"emojiOverrides"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// OpenAIConfig defines how to request improvement recommendations.
type OpenAIConfig struct {
	BaseURL      string `yaml:"baseUrl"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// InputConfig selects a CSV batch file instead of live scraping and an
// optional raw-batch dump location.
type InputConfig struct {
	CSVPath     string `yaml:"csvPath"`
	RawDumpPath string `yaml:"rawDumpPath"`
}

// StoreConfig describes a review store with its scraper strategy.
type StoreConfig struct {
	Name              string            `yaml:"name"`
	Scraper           string            `yaml:"scraper"`
	MinReviewsPerBank int               `yaml:"minReviewsPerBank"`
	Apps              []AppConfig       `yaml:"apps"`
	Options           map[string]string `yaml:"options"`
}

// AppConfig holds one bank's app listing URL on a store.
type AppConfig struct {
	Bank string `yaml:"bank"`
	URL  string `yaml:"url"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Banks) == 0 {
		cfg.Banks = defaultConfig().Banks
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(inferenceKeyEnv); v != "" {
		c.Inference.APIKey = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(reviewsCSVPathEnv); v != "" {
		c.Input.CSVPath = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Inference.SentimentURL != "" {
		base.Inference.SentimentURL = override.Inference.SentimentURL
	}
	if override.Inference.TranslateURL != "" {
		base.Inference.TranslateURL = override.Inference.TranslateURL
	}
	if override.Inference.APIKey != "" {
		base.Inference.APIKey = override.Inference.APIKey
	}

	if override.Analysis.TopKeywords > 0 {
		base.Analysis.TopKeywords = override.Analysis.TopKeywords
	}
	if override.Analysis.TopThemes > 0 {
		base.Analysis.TopThemes = override.Analysis.TopThemes
	}
	if len(override.Analysis.EmojiOverrides) > 0 {
		base.Analysis.EmojiOverrides = override.Analysis.EmojiOverrides
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.OpenAI.BaseURL != "" {
		base.OpenAI.BaseURL = override.OpenAI.BaseURL
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.SystemPrompt != "" {
		base.OpenAI.SystemPrompt = override.OpenAI.SystemPrompt
	}

	if override.Input.CSVPath != "" {
		base.Input.CSVPath = override.Input.CSVPath
	}
	if override.Input.RawDumpPath != "" {
		base.Input.RawDumpPath = override.Input.RawDumpPath
	}

	if len(override.Banks) > 0 {
		base.Banks = override.Banks
	}
	if len(override.Stores) > 0 {
		base.Stores = override.Stores
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Database:  DatabaseConfig{Path: "reviews.db"},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *", Timezone: defaultTimezone, location: tz},
		Inference: InferenceConfig{
			SentimentURL: "http://localhost:8081",
			TranslateURL: "",
		},
		Analysis: AnalysisConfig{TopKeywords: 5, TopThemes: 3},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		OpenAI: OpenAIConfig{
			Model:        "gpt-4o-mini",
			SystemPrompt: "You turn mobile banking review insights into concrete product recommendations.",
		},
		Banks: []string{"CBE", "BOA", "Dashen"},
		Stores: []StoreConfig{
			{
				Name:              "Google Play",
				Scraper:           "playstore",
				MinReviewsPerBank: 400,
				Apps: []AppConfig{
					{Bank: "CBE", URL: "https://play.google.com/store/apps/details?id=com.combanketh.mobilebanking"},
					{Bank: "BOA", URL: "https://play.google.com/store/apps/details?id=com.boa.boaMobileBanking"},
					{Bank: "Dashen", URL: "https://play.google.com/store/apps/details?id=com.dashen.dashensuperapp"},
				},
			},
		},
	}
}
