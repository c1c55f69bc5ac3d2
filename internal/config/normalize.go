package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// envOverlay carries secrets that may arrive through the environment instead
// of the config file. File values win; the environment fills gaps.
type envOverlay struct {
	LLMAPIKey         string `env:"SHUTTLE_LLM_API_KEY"`
	DeepgramAPIKey    string `env:"SHUTTLE_DEEPGRAM_API_KEY"`
	DeepgramAPIKeyAlt string `env:"DEEPGRAM_API_KEY"`
}

func (c *Config) normalize() error {
	var overlay envOverlay
	if err := envconfig.Process(context.Background(), &overlay); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM(overlay)
	c.normalizeDeepgram(overlay)
	c.normalizeSegmentation()
	c.normalizeChunking()
	if err := c.normalizePrompts(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM(overlay envOverlay) {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = strings.TrimSpace(overlay.LLMAPIKey)
	}
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	c.LLM.APIFormat = strings.ToLower(strings.TrimSpace(c.LLM.APIFormat))
	if c.LLM.APIFormat == "" {
		c.LLM.APIFormat = defaultLLMAPIFormat
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = defaultLLMTemperature
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = defaultLLMMaxTokens
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeDeepgram(overlay envOverlay) {
	c.Deepgram.APIKey = strings.TrimSpace(c.Deepgram.APIKey)
	if c.Deepgram.APIKey == "" {
		c.Deepgram.APIKey = strings.TrimSpace(overlay.DeepgramAPIKey)
	}
	if c.Deepgram.APIKey == "" {
		c.Deepgram.APIKey = strings.TrimSpace(overlay.DeepgramAPIKeyAlt)
	}
}

func (c *Config) normalizeSegmentation() {
	if c.Segmentation.MaxSizeMB <= 0 {
		c.Segmentation.MaxSizeMB = defaultMaxSizeMB
	}
	if c.Segmentation.MaxDeviationSeconds <= 0 {
		c.Segmentation.MaxDeviationSeconds = defaultMaxDeviationSeconds
	}
	if c.Segmentation.SilenceNoiseDB == 0 {
		c.Segmentation.SilenceNoiseDB = defaultSilenceNoiseDB
	}
	if c.Segmentation.SilenceMinDuration <= 0 {
		c.Segmentation.SilenceMinDuration = defaultSilenceMinDuration
	}
}

func (c *Config) normalizeChunking() {
	if c.Chunking.ChunkSize <= 0 {
		c.Chunking.ChunkSize = defaultChunkSize
	}
}

func (c *Config) normalizePrompts() error {
	c.Prompts.Dir = strings.TrimSpace(c.Prompts.Dir)
	if c.Prompts.Dir == "" {
		return nil
	}
	var err error
	if c.Prompts.Dir, err = expandPath(c.Prompts.Dir); err != nil {
		return fmt.Errorf("prompts.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
