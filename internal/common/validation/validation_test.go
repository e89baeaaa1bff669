// internal/common/validation/validation_test.go
package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBrandName(t *testing.T) {
	tests := []struct {
		name  string
		brand string
		valid bool
	}{
		{"plain name", "Tesla", true},
		{"name with spaces", "Coca Cola", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBrandName(tt.brand)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestValidateCompetitors(t *testing.T) {
	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = "brand"
	}

	tests := []struct {
		name        string
		competitors []string
		valid       bool
	}{
		{"one competitor", []string{"Rivian"}, true},
		{"ten competitors", append(make([]string, 0, 10), eleven[:10]...), true},
		{"none", nil, false},
		{"eleven", eleven, false},
		{"blank entry", []string{"Rivian", " "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCompetitors(tt.competitors)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"minimum length", strings.Repeat("a", MinContentLength), true},
		{"maximum length", strings.Repeat("a", MaxContentLength), true},
		{"too short", "short", false},
		{"too long", strings.Repeat("a", MaxContentLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateContent(tt.content)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestValidateKeywords(t *testing.T) {
	tooMany := make([]string, MaxKeywords+1)

	tests := []struct {
		name     string
		keywords []string
		valid    bool
	}{
		{"one keyword", []string{"electric"}, true},
		{"none", nil, false},
		{"too many", tooMany, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateKeywords(tt.keywords)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestErrorString(t *testing.T) {
	result := ValidateCompetitors([]string{"Rivian", ""})
	require.False(t, result.Valid)
	assert.Contains(t, result.ErrorString(), "competitors[1]: competitor name must not be empty")
}

func TestValidateProviderPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		wantErr bool
	}{
		{"text present", map[string]interface{}{"text": "Tesla leads the market"}, false},
		{"text empty", map[string]interface{}{"text": ""}, true},
		{"text missing", map[string]interface{}{"other": "value"}, true},
		{"text wrong type", map[string]interface{}{"text": 42}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProviderPayload(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSourceItem(t *testing.T) {
	tests := []struct {
		name    string
		item    map[string]interface{}
		wantErr bool
	}{
		{"full item", map[string]interface{}{"url": "https://example.com", "title": "t", "content": "body"}, false},
		{"content only", map[string]interface{}{"content": "body"}, false},
		{"content missing", map[string]interface{}{"url": "https://example.com"}, true},
		{"content empty", map[string]interface{}{"content": ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceItem(tt.item)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
