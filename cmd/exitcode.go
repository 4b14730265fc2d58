package cmd

import (
	"errors"

	"github.com/Lumos-Labs-HQ/synthgen/internal/config"
	"github.com/Lumos-Labs-HQ/synthgen/internal/entity"
	"github.com/Lumos-Labs-HQ/synthgen/internal/export"
)

const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitConfig    = 2
	ExitInvariant = 3
	ExitWrite     = 4
)

// ExitCode maps an error from Execute to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		return ExitConfig
	}
	var iv *entity.InvariantViolation
	if errors.As(err, &iv) {
		return ExitInvariant
	}
	var we *export.WriteError
	if errors.As(err, &we) {
		return ExitWrite
	}
	return ExitFailure
}
