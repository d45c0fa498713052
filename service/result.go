package service

// Kind classifies why an operation did not succeed.
type Kind string

const (
	KindUnauthorized       Kind = "unauthorized"
	KindNotFound           Kind = "not_found"
	KindInvalidState       Kind = "invalid_state"
	KindDistributionFailed Kind = "distribution_failed"
	KindValidation         Kind = "validation"
	KindInternal           Kind = "internal"
)

// Failure is the error branch of a Result.
type Failure struct {
	Kind    Kind
	Message string
}

func (f Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// Result holds either a value or a Failure, never both.
type Result[T any] struct {
	value   T
	failure *Failure
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Fail[T any](kind Kind, message string) Result[T] {
	return Result[T]{failure: &Failure{Kind: kind, Message: message}}
}

func (r Result[T]) IsOk() bool {
	return r.failure == nil
}

// Unwrap returns the value and a nil failure, or the zero value and the failure.
func (r Result[T]) Unwrap() (T, *Failure) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}
