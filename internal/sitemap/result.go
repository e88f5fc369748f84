package sitemap

import (
	"go.uber.org/zap"

	"github.com/jonathan/fractional-sitemap/internal/types"
)

// Result is the outcome of one content read: a value or the reason it failed
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful read
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failed read
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the read succeeded
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Unwrap returns the value and error
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// mapResult applies fn to a successful value and passes errors through
func mapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// settle is the single join-point combinator: a failed read becomes the zero
// value (an empty section) plus a diagnostic on the manifest.
func settle[T any](r Result[T], section string, m *types.Manifest, logger *zap.Logger) (T, bool) {
	if r.err == nil {
		return r.value, false
	}

	m.Diagnostics = append(m.Diagnostics, types.Diagnostic{Section: section, Message: r.err.Error()})
	logger.Warn("content read failed, section left empty",
		zap.String("section", section),
		zap.Error(r.err),
	)

	var zero T
	return zero, true
}
