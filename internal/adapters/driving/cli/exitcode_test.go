package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surmado/surmado-go/internal/core/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitError},
		{"validation", domain.FieldRequired("email"), ExitValidation},
		{"missing key", domain.MissingAPIKey(), ExitAuthentication},
		{"credits", &domain.Error{Kind: domain.KindInsufficientCredits}, ExitInsufficientCredits},
		{"not found", &domain.Error{Kind: domain.KindNotFound}, ExitNotFound},
		{"rate limit", &domain.Error{Kind: domain.KindRateLimit}, ExitRateLimit},
		{"service", &domain.Error{Kind: domain.KindService}, ExitService},
		{"report failed", &domain.Error{Kind: domain.KindReportFailed}, ExitReportFailed},
		{"timeout", &domain.Error{Kind: domain.KindTimeout}, ExitTimeout},
		{"wrapped", fmt.Errorf("submit: %w", &domain.Error{Kind: domain.KindNotFound}), ExitNotFound},
		{"interrupted", context.Canceled, ExitInterrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
