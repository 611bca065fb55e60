package tree

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for static tree files
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of tree validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate checks a tree file against the schema, then decodes it to catch
// what the schema cannot express (duplicate flags once dashes are stripped).
func Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("tree file not found: %s", path)
	}

	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	raw, err := ReadRaw(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: err.Error(),
		})
		return result, nil
	}

	return validateRaw(raw, result)
}

// ValidateDocument validates an already parsed document
func ValidateDocument(raw map[string]interface{}) (*ValidationResult, error) {
	return validateRaw(raw, &ValidationResult{Valid: true, Errors: []ValidationError{}})
}

func validateRaw(raw map[string]interface{}, result *ValidationResult) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(raw)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		result.Valid = false
		for _, err := range validationResult.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   err.Field(),
				Message: err.Description(),
			})
		}
		return result, nil
	}

	if _, err := Decode(raw); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "tree",
			Message: err.Error(),
		})
	}

	return result, nil
}
