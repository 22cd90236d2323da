package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks a malformed job: bad clip list, trim ordering,
	// unknown transition, out-of-range quality or focus values.
	ErrValidation = errors.New("validation error")
	// ErrEncoderUnavailable marks a missing encoder or probe binary on the host.
	ErrEncoderUnavailable = errors.New("encoder unavailable")
	// ErrTimeout marks an encode attempt that exceeded its wall-clock deadline.
	ErrTimeout = errors.New("encode timeout")
	// ErrEncodeFailed marks a non-zero encoder exit.
	ErrEncodeFailed = errors.New("encode failed")
	// ErrEmptyOutput marks an encoder run that exited zero but produced a
	// missing or zero-byte file.
	ErrEmptyOutput = errors.New("empty output")
	// ErrConfiguration marks invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a missing source clip or output file.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks failures worth retrying without operator action.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether the orchestrator may advance the fallback list
// after this error. Validation and empty-output failures are final: a
// different strategy cannot fix bad inputs, and retrying the strategy that
// silently produced nothing is unlikely to help.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrConfiguration),
		errors.Is(err, ErrEncoderUnavailable),
		errors.Is(err, ErrEmptyOutput),
		errors.Is(err, ErrNotFound):
		return false
	default:
		return true
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
