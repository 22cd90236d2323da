package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateThumbnail(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateEncode() error {
	if c.Encode.TimeoutSeconds <= 0 {
		return errors.New("encode.timeout_seconds must be positive")
	}
	if c.Encode.Concurrency < 0 {
		return errors.New("encode.concurrency must not be negative")
	}
	if c.Encode.CRFMin < 0 || c.Encode.CRFMax < 0 {
		return errors.New("encode.crf_min and encode.crf_max must not be negative")
	}
	if c.Encode.CRFMin >= c.Encode.CRFMax {
		return fmt.Errorf("encode.crf_min (%d) must be below encode.crf_max (%d)", c.Encode.CRFMin, c.Encode.CRFMax)
	}
	if c.Encode.StderrLimitBytes <= 0 {
		return errors.New("encode.stderr_limit_bytes must be positive")
	}
	return nil
}

func (c *Config) validateTimeline() error {
	if c.Timeline.MaxClips <= 0 {
		return errors.New("timeline.max_clips must be positive")
	}
	if c.Timeline.TransitionEpsilon <= 0 {
		return errors.New("timeline.transition_epsilon must be positive")
	}
	return nil
}

func (c *Config) validateThumbnail() error {
	if c.Thumbnail.OffsetSeconds < 0 {
		return errors.New("thumbnail.offset_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
