package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docsite.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "docsite.yaml" {
			t.Errorf("expected context file=docsite.yaml, got %v", file)
		}
	})

	t.Run("Details are listed one per line", func(t *testing.T) {
		err := ValidationError("site configuration is invalid").
			WithDetails("nav: duplicate label \"Home\"", "base: must end with /").
			Build()

		want := "[validation:fatal] site configuration is invalid\n  - nav: duplicate label \"Home\"\n  - base: must end with /"
		if err.Error() != want {
			t.Errorf("unexpected message:\n%s", err.Error())
		}
		if len(err.Details()) != 2 {
			t.Errorf("expected 2 details, got %d", len(err.Details()))
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := ThemeError("component not found").Build()
		wrapped := fmt.Errorf("enhance app: %w", inner)

		if !IsClassified(wrapped) {
			t.Fatal("expected wrapped error to be classified")
		}
		if GetCategory(wrapped) != CategoryTheme {
			t.Errorf("expected theme category, got %s", GetCategory(wrapped))
		}
		if !HasSeverity(wrapped, SeverityFatal) {
			t.Error("expected fatal severity")
		}
	})

	t.Run("Unclassified errors default to internal", func(t *testing.T) {
		if GetCategory(errors.New("boom")) != CategoryInternal {
			t.Error("expected internal category")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := WrapError(originalErr, CategoryFileSystem, "write artifact").
		Warning().
		Retryable().
		WithContext("path", ".vitepress/config.json").
		Build()

	if !errors.Is(err, originalErr) {
		t.Error("expected error to wrap original error")
	}
	if !err.CanRetry() {
		t.Error("expected retryable error")
	}
	if err.IsFatal() {
		t.Error("warning must not be fatal")
	}

	withMore := err.WithContext("attempt", 2)
	if _, ok := err.Context().Get("attempt"); ok {
		t.Error("WithContext must not mutate the receiver")
	}
	if v, _ := withMore.Context().Get("attempt"); v != 2 {
		t.Errorf("expected attempt=2, got %v", v)
	}
}

func TestClassifiedErrorIs(t *testing.T) {
	a := NotFoundError("page missing").Build()
	b := NotFoundError("page missing").Build()
	c := NotFoundError("other").Build()

	if !errors.Is(a, b) {
		t.Error("expected same category and message to match")
	}
	if errors.Is(a, c) {
		t.Error("expected different messages not to match")
	}
}

func TestErrorContextMerge(t *testing.T) {
	var nilCtx ErrorContext
	other := ErrorContext{"a": 1}
	if got := nilCtx.Merge(other); got["a"] != 1 {
		t.Errorf("expected merge into nil to return other, got %v", got)
	}
	base := ErrorContext{"a": 1, "b": 2}
	merged := base.Merge(ErrorContext{"b": 3})
	if merged["a"] != 1 || merged["b"] != 3 {
		t.Errorf("unexpected merge result %v", merged)
	}
}
