package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surmado/surmado-go/internal/core/domain"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   domain.ErrorKind
	}{
		{400, domain.KindValidation},
		{422, domain.KindValidation},
		{401, domain.KindAuthentication},
		{402, domain.KindInsufficientCredits},
		{404, domain.KindNotFound},
		{429, domain.KindRateLimit},
		{500, domain.KindService},
		{502, domain.KindService},
		{503, domain.KindService},
		{403, domain.KindService},
		{409, domain.KindService},
		{302, domain.KindService},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForStatus(tt.status))
		})
	}
}

func TestMapError_PreservesStatusAndBody(t *testing.T) {
	body := []byte(`{"message":"Invalid tier for product","code":"bad_tier"}`)

	e := MapError(400, nil, body, time.Now())

	assert.Equal(t, domain.KindValidation, e.Kind)
	assert.Equal(t, 400, e.StatusCode)
	assert.Equal(t, body, e.Body)
	assert.Equal(t, "bad_tier", e.Response["code"])
	assert.Equal(t, "Invalid tier for product", e.Message)
	assert.Equal(t, "surmado: Invalid tier for product (status 400)", e.Error())
	assert.True(t, domain.IsValidation(e))
}

func TestMapError_Messages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", 401, `{"detail":"Invalid API key"}`, "Invalid API key"},
		{"detail list", 422, `{"detail":[{"loc":["body","email"],"msg":"field required"},{"loc":["body","url"],"msg":"invalid url"}]}`, "email: field required; url: invalid url"},
		{"error string", 402, `{"error":"Not enough credits"}`, "Not enough credits"},
		{"error object", 500, `{"error":{"message":"upstream failed"}}`, "upstream failed"},
		{"plain text body", 502, `Bad Gateway`, "bad gateway"},
		{"empty body", 404, ``, "not found"},
		{"empty json", 401, `{}`, "invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := MapError(tt.status, nil, []byte(tt.body), time.Now())
			assert.Equal(t, tt.want, e.Message)
			assert.Equal(t, []byte(tt.body), e.Body)
		})
	}
}

func TestMapError_RetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	h := http.Header{}
	h.Set("Retry-After", "7")
	e := MapError(429, h, nil, now)
	assert.Equal(t, 7*time.Second, e.RetryAfter)
	assert.True(t, domain.IsRateLimited(e))

	h.Set("Retry-After", now.Add(time.Minute).Format(http.TimeFormat))
	e = MapError(429, h, nil, now)
	assert.Equal(t, time.Minute, e.RetryAfter)

	e = MapError(503, h, nil, now)
	assert.Zero(t, e.RetryAfter)
}

func TestMapError_EveryStatusMapsToOneKind(t *testing.T) {
	for status := 300; status < 600; status++ {
		e := MapError(status, nil, nil, time.Now())
		require.NotEqual(t, domain.KindUnknown, e.Kind, "status %d", status)
		assert.Equal(t, KindForStatus(status), domain.KindOf(e))
	}
}
