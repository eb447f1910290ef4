package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignal() SignalRequest {
	return SignalRequest{
		URL:               "https://acme.com",
		BrandName:         "Acme Corp",
		Email:             "you@acme.com",
		Industry:          "B2B SaaS",
		Location:          "United States",
		Persona:           "CTOs at mid-market companies",
		PainPoints:        "Integration challenges, lack of visibility",
		BrandDetails:      "Modern, dev-focused tooling",
		DirectCompetitors: "Asana, Monday.com",
	}
}

func TestSignalRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validSignal().Validate())
	})

	required := []struct {
		field string
		clear func(*SignalRequest)
	}{
		{"url", func(r *SignalRequest) { r.URL = "" }},
		{"brand_name", func(r *SignalRequest) { r.BrandName = "" }},
		{"email", func(r *SignalRequest) { r.Email = "" }},
		{"industry", func(r *SignalRequest) { r.Industry = "" }},
		{"location", func(r *SignalRequest) { r.Location = "" }},
		{"persona", func(r *SignalRequest) { r.Persona = "" }},
		{"pain_points", func(r *SignalRequest) { r.PainPoints = "" }},
		{"brand_details", func(r *SignalRequest) { r.BrandDetails = "" }},
		{"direct_competitors", func(r *SignalRequest) { r.DirectCompetitors = "" }},
	}
	for _, tt := range required {
		t.Run("missing "+tt.field, func(t *testing.T) {
			req := validSignal()
			tt.clear(&req)

			e, ok := AsError(req.Validate())
			require.True(t, ok)
			assert.Equal(t, tt.field, e.Field)
		})
	}

	t.Run("keywords over limit", func(t *testing.T) {
		req := validSignal()
		req.Keywords = strings.Repeat("k", 501)

		e, ok := AsError(req.Validate())
		require.True(t, ok)
		assert.Equal(t, "keywords", e.Field)
		assert.Equal(t, 500, e.Limit)
	})

	t.Run("premium is a scan tier", func(t *testing.T) {
		req := validSignal()
		req.TierLevel = TierPremium

		e, ok := AsError(req.Validate())
		require.True(t, ok)
		assert.Equal(t, "tier", e.Field)
	})

	t.Run("relative url", func(t *testing.T) {
		req := validSignal()
		req.URL = "acme.com"
		assert.True(t, IsValidation(req.Validate()))
	})

	t.Run("business scale", func(t *testing.T) {
		req := validSignal()
		req.BusinessScale = "huge"
		assert.True(t, IsValidation(req.Validate()))
		req.BusinessScale = "large"
		assert.NoError(t, req.Validate())
	})
}

func TestSignalRequest_Body(t *testing.T) {
	req := validSignal()
	req.Keywords = "ai visibility"

	data, err := json.Marshal(req.Body())
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "basic", body["tier"])
	assert.Equal(t, "Acme Corp", body["brand_name"])
	assert.Equal(t, "ai visibility", body["keywords"])
	assert.NotContains(t, body, "indirect_competitors")
	assert.NotContains(t, body, "webhook_url")
}

func TestScanRequest_Validate(t *testing.T) {
	valid := ScanRequest{URL: "https://acme.com", BrandName: "Acme", Email: "you@acme.com"}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, TierBasic, valid.Tier())

	t.Run("pro is a signal tier", func(t *testing.T) {
		req := valid
		req.TierLevel = TierPro
		assert.True(t, IsValidation(req.Validate()))
	})

	t.Run("premium", func(t *testing.T) {
		req := valid
		req.TierLevel = TierPremium
		assert.NoError(t, req.Validate())
		assert.Equal(t, 2, req.Tier().Credits())
	})

	t.Run("bad competitor url", func(t *testing.T) {
		req := valid
		req.CompetitorURLs = []string{"https://competitor1.com", "ftp://competitor2.com"}

		e, ok := AsError(req.Validate())
		require.True(t, ok)
		assert.Equal(t, "competitor_urls", e.Field)
	})

	t.Run("report style", func(t *testing.T) {
		req := valid
		req.ReportStyle = "poetic"
		assert.True(t, IsValidation(req.Validate()))
	})

	t.Run("insecure webhook", func(t *testing.T) {
		req := valid
		req.WebhookURL = "http://hooks.acme.com"

		e, ok := AsError(req.Validate())
		require.True(t, ok)
		assert.Equal(t, "webhook_url", e.Field)
	})
}

func TestRerunRequests(t *testing.T) {
	t.Run("signal rerun persona optional", func(t *testing.T) {
		req := SignalRerunRequest{BrandSlug: "acme_corp", Email: "you@acme.com"}
		assert.NoError(t, req.Validate())
		assert.True(t, req.IsRerun())
		assert.Equal(t, ProductSignal, req.Product())

		data, err := json.Marshal(req.Body())
		require.NoError(t, err)
		assert.JSONEq(t, `{"brand_slug":"acme_corp","email":"you@acme.com","tier":"basic"}`, string(data))
	})

	t.Run("signal rerun requires brand slug", func(t *testing.T) {
		e, ok := AsError(SignalRerunRequest{Email: "you@acme.com"}.Validate())
		require.True(t, ok)
		assert.Equal(t, "brand_slug", e.Field)
	})

	t.Run("scan rerun tier", func(t *testing.T) {
		req := ScanRerunRequest{BrandSlug: "acme_corp", Email: "you@acme.com", TierLevel: TierPremium}
		assert.NoError(t, req.Validate())
		req.TierLevel = TierPro
		assert.True(t, IsValidation(req.Validate()))
	})
}
