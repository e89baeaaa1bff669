// internal/capabilities/provider.go
// Package capabilities holds the concrete provider and source
// implementations assembled into the pipeline's capability lists.
package capabilities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"brandsignal/internal/common/config"
	"brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/common/validation"
)

// HTTPProvider calls a text-generation API over HTTP. One instance per
// configured provider; instances are immutable after construction.
type HTTPProvider struct {
	name   string
	config config.ProviderConfig
	client *http.Client
	logger logger.Logger
}

func NewHTTPProvider(name string, cfg config.ProviderConfig, log logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		name:   name,
		config: cfg,
		// No client timeout; the pipeline bounds every call through context.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{
			"provider": name,
		}),
	}
}

func (p *HTTPProvider) Name() string { return p.name }

// Viable reports whether the provider can be dispatched to: enabled, with a
// base URL and an API key present.
func (p *HTTPProvider) Viable() bool {
	return p.config.Enabled && p.config.BaseURL != "" && p.config.APIKey != ""
}

type generateRequest struct {
	Model       string  `json:"model,omitempty"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Generate sends one prompt and returns the raw response text. The response
// shape is validated before the text is extracted so a malformed upstream
// payload fails loudly instead of being scored as empty signal.
func (p *HTTPProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:       p.config.Model,
		Prompt:      prompt,
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", errors.NewProviderCallFailedError(p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	started := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.NewProviderTimeoutError(p.name)
		}
		return "", errors.NewProviderCallFailedError(p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", errors.NewProviderUnauthorizedError(p.name)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.NewProviderCallFailedError(p.name, fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.NewProviderBadPayloadError(p.name, err.Error())
	}
	if err := validation.ValidateProviderPayload(payload); err != nil {
		return "", errors.NewProviderBadPayloadError(p.name, err.Error())
	}

	text, _ := payload["text"].(string)
	if strings.TrimSpace(text) == "" {
		return "", errors.NewProviderBadPayloadError(p.name, "empty response text")
	}

	p.logger.Debug("generate completed", map[string]interface{}{
		"latencyMs": time.Since(started).Milliseconds(),
		"chars":     len(text),
	})
	return text, nil
}
