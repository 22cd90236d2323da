package config

const (
	defaultStagingDir        = "~/.local/share/clipforge/staging"
	defaultOutputDir         = "~/.local/share/clipforge/output"
	defaultLogDir            = "~/.local/share/clipforge/logs"
	defaultEncodeTimeout     = 600
	defaultCRFMin            = 15
	defaultCRFMax            = 45
	defaultStderrLimitBytes  = 4096
	defaultMaxClips          = 20
	defaultTransitionEpsilon = 0.1
	defaultThumbnailOffset   = 1.0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Encode: Encode{
			TimeoutSeconds:   defaultEncodeTimeout,
			CRFMin:           defaultCRFMin,
			CRFMax:           defaultCRFMax,
			StderrLimitBytes: defaultStderrLimitBytes,
		},
		Timeline: Timeline{
			MaxClips:          defaultMaxClips,
			TransitionEpsilon: defaultTransitionEpsilon,
		},
		Thumbnail: Thumbnail{
			Enabled:       true,
			OffsetSeconds: defaultThumbnailOffset,
		},
		JobLog: JobLog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
