package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shuttle/internal/config"
	"shuttle/internal/logging"
	"shuttle/internal/prompts"
	"shuttle/internal/services/transform"
	"shuttle/internal/workarea"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger once. Flag overrides win over the
// config file so one run can be made verbose without editing anything.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}

		logCfg := *cfg
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			logCfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			logCfg.Logging.Format = strings.TrimSpace(*c.logFormatFlag)
		}

		logger, err := logging.NewFromConfig(&logCfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, cfg.Paths.LogDir,
			filepath.Join(cfg.Paths.LogDir, "shuttle.log"))
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// transformClient builds the chunk transformation client. It fails when the
// API credentials are not configured, so commands that never call the API
// must not invoke it.
func (c *commandContext) transformClient() (transform.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireLLM(); err != nil {
		return nil, err
	}
	llm := cfg.GetLLM()
	return transform.NewClient(transform.Config{
		APIKey:         llm.APIKey,
		BaseURL:        llm.BaseURL,
		Model:          llm.Model,
		APIFormat:      llm.APIFormat,
		Temperature:    llm.Temperature,
		MaxTokens:      llm.MaxTokens,
		TimeoutSeconds: llm.TimeoutSeconds,
	})
}

func (c *commandContext) promptLibrary() (*prompts.Library, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return prompts.NewLibrary(cfg.Prompts.Dir), nil
}

// withWorkAreaLock runs fn while holding the advisory lock for dir. The
// manifest mutating commands all go through here; readers do not.
func withWorkAreaLock(dir string, fn func() error) error {
	lock := workarea.NewLock(dir)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()
	return fn()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
