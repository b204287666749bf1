package apierr

// Response is the uniform envelope returned by every client operation.
// Exactly one of Value or Err is meaningful: when Err is nil the call
// succeeded and Value holds the result.
type Response[T any] struct {
	// StatusCode is the HTTP status of the underlying call, or 0 when the
	// operation failed before reaching the service.
	StatusCode int

	// Value is the operation result. Zero when Err is set.
	Value T

	// Err describes the failure, nil on success.
	Err *Error
}

// Ok reports whether the operation succeeded.
func (r Response[T]) Ok() bool {
	return r.Err == nil
}

// Success builds a successful response.
func Success[T any](status int, value T) Response[T] {
	return Response[T]{StatusCode: status, Value: value}
}

// Failure builds a failed response.
func Failure[T any](status int, err *Error) Response[T] {
	return Response[T]{StatusCode: status, Err: err}
}

// FailureOf converts any error into a failed response, wrapping foreign
// errors under the fallback code.
func FailureOf[T any](status int, err error, fallback Code) Response[T] {
	return Response[T]{StatusCode: status, Err: AsError(err, fallback)}
}
