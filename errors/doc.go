// Package errors provides structured error types for the editor binding.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a detail message, an optional field path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConfig, errors.KindInvalidInput).
//		Path("model", "main", "path").
//		Detail("duplicate model path %q", path).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseContext, "context", token.Name())
//	err := errors.LoadFailed(cause)
//
// IsCanceled classifies the cancellation errors produced by engine loaders,
// which are expected and never reported.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
