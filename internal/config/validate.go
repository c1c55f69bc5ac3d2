package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Credentials are checked at
// the point of use so metadata-only commands can run without them.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateSegmentation(); err != nil {
		return err
	}
	if err := c.validateChunking(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.APIFormat {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("llm.api_format must be %q or %q, got %q", "openai", "anthropic", c.LLM.APIFormat)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if err := ensurePositiveMap(map[string]int{
		"llm.max_tokens":      c.LLM.MaxTokens,
		"llm.timeout_seconds": c.LLM.TimeoutSeconds,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSegmentation() error {
	if c.Segmentation.MaxSizeMB <= 0 {
		return errors.New("segmentation.max_size_mb must be positive")
	}
	if c.Segmentation.MaxDeviationSeconds <= 0 {
		return errors.New("segmentation.max_deviation_seconds must be positive")
	}
	if c.Segmentation.SilenceNoiseDB >= 0 {
		return errors.New("segmentation.silence_noise_db must be negative (decibels relative to full scale)")
	}
	if c.Segmentation.SilenceMinDuration <= 0 {
		return errors.New("segmentation.silence_min_duration must be positive")
	}
	return nil
}

func (c *Config) validateChunking() error {
	if c.Chunking.ChunkSize <= 0 {
		return errors.New("chunking.chunk_size must be positive")
	}
	return nil
}

// RequireLLM verifies that the transformation API is fully configured.
func (c *Config) RequireLLM() error {
	llm := c.GetLLM()
	if llm.APIKey == "" || llm.BaseURL == "" || llm.Model == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shuttle/config.toml"
		}
		return fmt.Errorf("llm.api_key, llm.base_url, and llm.model must be set. Set SHUTTLE_LLM_API_KEY env var or edit %s (create with 'shuttle config init')", defaultPath)
	}
	return nil
}

// RequireDeepgram verifies that Deepgram credentials are present.
func (c *Config) RequireDeepgram() error {
	if c.Deepgram.APIKey == "" {
		return errors.New("deepgram.api_key must be set (or export SHUTTLE_DEEPGRAM_API_KEY)")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
