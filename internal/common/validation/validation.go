// internal/common/validation/validation.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	MinContentLength = 10
	MaxContentLength = 10000
	MaxCompetitors   = 10
	MaxKeywords      = 20
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (r *ValidationResult) ErrorString() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// ValidateBrandName rejects empty or whitespace-only brand names.
func ValidateBrandName(brand string) *ValidationResult {
	errs := []ValidationError{}
	if strings.TrimSpace(brand) == "" {
		errs = append(errs, ValidationError{
			Field:   "brandName",
			Message: "brand name must not be empty",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	}
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateCompetitors enforces the 1..10 competitor bound.
func ValidateCompetitors(competitors []string) *ValidationResult {
	errs := []ValidationError{}
	if len(competitors) == 0 {
		errs = append(errs, ValidationError{
			Field:   "competitors",
			Message: "at least one competitor is required",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	}
	if len(competitors) > MaxCompetitors {
		errs = append(errs, ValidationError{
			Field:   "competitors",
			Message: fmt.Sprintf("at most %d competitors are allowed", MaxCompetitors),
			Code:    "MAX_ITEMS_VIOLATION",
		})
	}
	for i, c := range competitors {
		if strings.TrimSpace(c) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("competitors[%d]", i),
				Message: "competitor name must not be empty",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateContent enforces the content length contract.
func ValidateContent(content string) *ValidationResult {
	errs := []ValidationError{}
	if len(content) < MinContentLength {
		errs = append(errs, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must be at least %d characters", MinContentLength),
			Code:    "MIN_LENGTH_VIOLATION",
		})
	}
	if len(content) > MaxContentLength {
		errs = append(errs, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must be at most %d characters", MaxContentLength),
			Code:    "MAX_LENGTH_VIOLATION",
		})
	}
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateKeywords enforces the 1..20 keyword bound.
func ValidateKeywords(keywords []string) *ValidationResult {
	errs := []ValidationError{}
	if len(keywords) == 0 {
		errs = append(errs, ValidationError{
			Field:   "keywords",
			Message: "at least one keyword is required",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	}
	if len(keywords) > MaxKeywords {
		errs = append(errs, ValidationError{
			Field:   "keywords",
			Message: fmt.Sprintf("at most %d keywords are allowed", MaxKeywords),
			Code:    "MAX_ITEMS_VIOLATION",
		})
	}
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// providerPayloadSchema describes the minimal shape a provider response item
// must have before it is scored.
var providerPayloadSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"text": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required": []interface{}{"text"},
}

// sourceItemSchema describes the minimal shape of a raw crawled item.
var sourceItemSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"url":     map[string]interface{}{"type": "string"},
		"title":   map[string]interface{}{"type": "string"},
		"content": map[string]interface{}{"type": "string", "minLength": 1},
	},
	"required": []interface{}{"content"},
}

// ValidateProviderPayload checks a decoded provider response against the
// payload schema.
func ValidateProviderPayload(data map[string]interface{}) error {
	return validateAgainst(providerPayloadSchema, data)
}

// ValidateSourceItem checks a decoded raw item against the item schema.
func ValidateSourceItem(data map[string]interface{}) error {
	return validateAgainst(sourceItemSchema, data)
}

func validateAgainst(schema, data map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("payload validation failed: %v", errs)
	}

	return nil
}
