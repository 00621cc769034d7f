package fault

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMacroName = errors.New("invalid macro name")
	ErrInvalidFileName  = errors.New("invalid file name")
	ErrInvalidSplitMode = errors.New("invalid split mode")
	ErrConfiguration    = errors.New("configuration error")
	ErrFilesystem       = errors.New("filesystem error")
	ErrLocked           = errors.New("output locked")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker. The marker should be one of the exported sentinel errors
// above; nil falls back to ErrFilesystem.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsValidation reports whether err stems from rejected input rather than an
// I/O failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidMacroName) ||
		errors.Is(err, ErrInvalidFileName) ||
		errors.Is(err, ErrInvalidSplitMode) ||
		errors.Is(err, ErrConfiguration)
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
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
