package runtime

// ComponentError wraps component execution errors with metadata.
// Components can attach execution metadata alongside errors for:
// - Retry hints (retryable, retry_after)
// - Error categorization (type: transient, permanent, user_error)
// - Warnings without errors (Err = nil, Metadata with warnings)
type ComponentError struct {
	Err      error          // The underlying error (can be nil for warnings-only)
	Metadata map[string]any // Execution metadata (warnings, retry hints, etc.)
}

// Error implements the error interface
func (e *ComponentError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "component completed with metadata"
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *ComponentError) Unwrap() error {
	return e.Err
}

// NewComponentError creates a new component error with the given underlying error
func NewComponentError(err error) *ComponentError {
	return &ComponentError{
		Err:      err,
		Metadata: make(map[string]any),
	}
}

// WithMetadata adds metadata to the error
func (e *ComponentError) WithMetadata(key string, value any) *ComponentError {
	e.Metadata[key] = value
	return e
}

// WithRetryHint adds retry hint metadata
func (e *ComponentError) WithRetryHint(retryable bool, retryAfter string) *ComponentError {
	e.Metadata["retryable"] = retryable
	if retryAfter != "" {
		e.Metadata["retry_after"] = retryAfter
	}
	return e
}

// WithType sets the error type (e.g., "transient", "permanent", "user_error")
func (e *ComponentError) WithType(errorType string) *ComponentError {
	e.Metadata["type"] = errorType
	return e
}

// IsRetryable checks if the error is marked as retryable
func (e *ComponentError) IsRetryable() bool {
	if val, ok := e.Metadata["retryable"]; ok {
		if retryable, ok := val.(bool); ok {
			return retryable
		}
	}
	return false
}

// GetType returns the error type if set
func (e *ComponentError) GetType() string {
	if val, ok := e.Metadata["type"]; ok {
		if errorType, ok := val.(string); ok {
			return errorType
		}
	}
	return ""
}
