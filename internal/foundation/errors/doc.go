// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category (config, validation, theme, render, ...),
// a severity, a retry hint, structured context and an optional list of
// individual problems. Validation collects every structural problem of a site
// definition into one error so a single run reports all of them.
//
// Example usage:
//
//	err := errors.ValidationError("site configuration is invalid").
//		WithContext("file", path).
//		WithDetails(problems...).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
