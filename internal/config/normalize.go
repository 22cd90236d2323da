package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeEncode()
	c.normalizeTimeline()
	c.normalizeThumbnail()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)
	c.Tools.FFprobeBinary = strings.TrimSpace(c.Tools.FFprobeBinary)
}

func (c *Config) normalizeEncode() {
	if c.Encode.TimeoutSeconds == 0 {
		c.Encode.TimeoutSeconds = defaultEncodeTimeout
	}
	if c.Encode.CRFMin == 0 && c.Encode.CRFMax == 0 {
		c.Encode.CRFMin = defaultCRFMin
		c.Encode.CRFMax = defaultCRFMax
	}
	if c.Encode.StderrLimitBytes == 0 {
		c.Encode.StderrLimitBytes = defaultStderrLimitBytes
	}
}

func (c *Config) normalizeTimeline() {
	if c.Timeline.MaxClips == 0 {
		c.Timeline.MaxClips = defaultMaxClips
	}
	if c.Timeline.TransitionEpsilon == 0 {
		c.Timeline.TransitionEpsilon = defaultTransitionEpsilon
	}
}

func (c *Config) normalizeThumbnail() {
	if c.Thumbnail.OffsetSeconds == 0 {
		c.Thumbnail.OffsetSeconds = defaultThumbnailOffset
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
