package config

const (
	defaultLogDir                 = "~/.local/share/shuttle/logs"
	defaultLogRetentionDays       = 60
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultLLMAPIFormat           = "openai"
	defaultLLMTemperature         = 0.3
	defaultLLMMaxTokens           = 8192
	defaultLLMTimeoutSeconds      = 120
	defaultMaxSizeMB              = 10.0
	defaultMaxDeviationSeconds    = 60.0
	defaultSilenceNoiseDB         = -30.0
	defaultSilenceMinDuration     = 0.5
	defaultChunkSize              = 8000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		LLM: LLM{
			APIFormat:      defaultLLMAPIFormat,
			Temperature:    defaultLLMTemperature,
			MaxTokens:      defaultLLMMaxTokens,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Segmentation: Segmentation{
			MaxSizeMB:           defaultMaxSizeMB,
			MaxDeviationSeconds: defaultMaxDeviationSeconds,
			SilenceNoiseDB:      defaultSilenceNoiseDB,
			SilenceMinDuration:  defaultSilenceMinDuration,
		},
		Chunking: Chunking{
			ChunkSize: defaultChunkSize,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
