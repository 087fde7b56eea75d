// Package errors provides the error taxonomy used throughout PreApply.
package errors

import (
	"fmt"
	"strings"
)

// ErrorCode identifies the fixed error taxonomy.
type ErrorCode string

const (
	// CodePlanLoad covers file-system/JSON/shape failures while reading the plan document.
	CodePlanLoad ErrorCode = "PLAN_LOAD_ERROR"
	// CodePlanStructure covers a plan document missing required top-level keys.
	CodePlanStructure ErrorCode = "PLAN_STRUCTURE_ERROR"
	// CodeConfigLoad covers a missing, malformed, or schema-invalid configuration file.
	CodeConfigLoad ErrorCode = "CONFIG_LOAD_ERROR"
	// CodePolicyLoad covers a missing or malformed policy document.
	CodePolicyLoad ErrorCode = "POLICY_LOAD_ERROR"
	// CodeInternalInvariant covers a violated internal graph or plan invariant.
	CodeInternalInvariant ErrorCode = "INTERNAL_INVARIANT_ERROR"
)

// PreApplyError is the base error type for all fatal PreApply failures.
type PreApplyError struct {
	Code        ErrorCode
	Message     string
	Context     map[string]any
	Underlying  error
	Suggestions []string
}

// Error implements the error interface.
func (e *PreApplyError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Underlying.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PreApplyError) Unwrap() error {
	return e.Underlying
}

// WithContext attaches a key/value pair of diagnostic context.
func (e *PreApplyError) WithContext(key string, value any) *PreApplyError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion appends a remediation suggestion.
func (e *PreApplyError) WithSuggestion(suggestion string) *PreApplyError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// FormatUserMessage renders a multi-line, human-readable error report.
func (e *PreApplyError) FormatUserMessage() string {
	parts := []string{fmt.Sprintf("error [%s]: %s", e.Code, e.Message)}

	if len(e.Context) > 0 {
		parts = append(parts, "details:")
		for key, value := range e.Context {
			parts = append(parts, fmt.Sprintf("  %s: %v", key, value))
		}
	}

	if len(e.Suggestions) > 0 {
		parts = append(parts, "suggestions:")
		for _, suggestion := range e.Suggestions {
			parts = append(parts, fmt.Sprintf("  - %s", suggestion))
		}
	}

	if e.Underlying != nil {
		parts = append(parts, fmt.Sprintf("caused by: %s", e.Underlying.Error()))
	}

	return strings.Join(parts, "\n")
}
