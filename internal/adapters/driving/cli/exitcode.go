package cli

import (
	"context"
	"errors"

	"github.com/surmado/surmado-go/internal/core/domain"
)

// Exit codes, one per error kind so scripts can branch on the outcome.
const (
	ExitOK                  = 0
	ExitError               = 1
	ExitValidation          = 2
	ExitAuthentication      = 3
	ExitInsufficientCredits = 4
	ExitNotFound            = 5
	ExitRateLimit           = 6
	ExitService             = 7
	ExitReportFailed        = 8
	ExitTimeout             = 9
	ExitInterrupted         = 130
)

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return ExitValidation
	case domain.KindAuthentication:
		return ExitAuthentication
	case domain.KindInsufficientCredits:
		return ExitInsufficientCredits
	case domain.KindNotFound:
		return ExitNotFound
	case domain.KindRateLimit:
		return ExitRateLimit
	case domain.KindService:
		return ExitService
	case domain.KindReportFailed:
		return ExitReportFailed
	case domain.KindTimeout:
		return ExitTimeout
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	return ExitError
}
