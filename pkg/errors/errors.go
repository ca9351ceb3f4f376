// Package errors classifies the failures minegate can run into. The type of
// an error decides the HTTP status a caller sees, its message is the only
// text that reaches the caller, and its cause stays in the logs.
package errors

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
	"syscall"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeValidation represents malformed or out-of-range input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeDeclined represents an explicit failure reported by the miner service
	ErrorTypeDeclined ErrorType = "declined"
	// ErrorTypeContract represents a miner reply that claims success but omits required data
	ErrorTypeContract ErrorType = "contract"
	// ErrorTypeUnavailable represents an unreachable miner service
	ErrorTypeUnavailable ErrorType = "unavailable"
	// ErrorTypeTransport represents any other RPC transport failure
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeNotFound represents a status query for an unknown session
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeRateLimited represents a caller that exceeded its request budget
	ErrorTypeRateLimited ErrorType = "rate_limited"
	// ErrorTypeStorage represents failures of optional side stores (postgres, redis, influx)
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeKafka represents Kafka messaging errors
	ErrorTypeKafka ErrorType = "kafka"
	// ErrorTypeInternal represents internal/unknown errors
	ErrorTypeInternal ErrorType = "internal"
)

// transientTypes are worth retrying whatever caused them
var transientTypes = map[ErrorType]bool{
	ErrorTypeUnavailable: true,
	ErrorTypeKafka:       true,
}

// ServiceError is a classified failure. Message is safe to show to API
// callers; Cause is kept for logs only.
type ServiceError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
	Context   map[string]any
	Retryable bool
}

// Error renders "<type> <op>: <message>", followed by the cause when there is one
func (e *ServiceError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	if e.Operation != "" {
		b.WriteByte(' ')
		b.WriteString(e.Operation)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error unwrapping
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair that is logged with the error
func (e *ServiceError) WithContext(key string, value any) *ServiceError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a ServiceError without a cause
func New(errorType ErrorType, operation, message string) *ServiceError {
	return &ServiceError{
		Type:      errorType,
		Operation: operation,
		Message:   message,
		Retryable: transientTypes[errorType],
	}
}

// Wrap classifies err. A nil err stays nil. Wrapping a ServiceError keeps
// its retry verdict unless the new type is transient on its own.
func Wrap(err error, errorType ErrorType, operation, message string) *ServiceError {
	if err == nil {
		return nil
	}

	se := New(errorType, operation, message)
	se.Cause = err

	var inner *ServiceError
	if errors.As(err, &inner) {
		se.Retryable = se.Retryable || inner.Retryable
	} else {
		se.Retryable = se.Retryable || isTransient(err)
	}
	return se
}

// transientMessages catches drivers that flatten network failures into text
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"network unreachable",
	"timeout",
	"temporary failure",
	"too many connections",
}

// isTransient reports whether an unclassified error looks like a passing
// network condition. Cancellation never is.
func isTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// IsType reports whether the outermost ServiceError in the chain has the given type
func IsType(err error, errorType ErrorType) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Type == errorType
}

// TypeOf returns the type of the outermost ServiceError in the chain,
// or ErrorTypeInternal for anything unclassified.
func TypeOf(err error) ErrorType {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Type
	}
	return ErrorTypeInternal
}

// PublicMessage returns the caller-facing message of err. Unclassified
// errors never leak their text.
func PublicMessage(err error, fallback string) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// IsRetryable reports whether another attempt could succeed
func IsRetryable(err error) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return isTransient(err)
}

// GetContext returns the context of the outermost ServiceError
func GetContext(err error) map[string]any {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Context
	}
	return nil
}

// Fields flattens the classification of err into logger key/value pairs.
// Context keys from every ServiceError in the chain are included, outer
// values winning.
func Fields(err error) []any {
	var se *ServiceError
	if !errors.As(err, &se) {
		return nil
	}

	fields := []any{"error_type", string(se.Type)}
	if se.Operation != "" {
		fields = append(fields, "operation", se.Operation)
	}

	merged := make(map[string]any)
	for cur := error(se); cur != nil; cur = errors.Unwrap(cur) {
		layer, ok := cur.(*ServiceError)
		if !ok {
			continue
		}
		for k, v := range layer.Context {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, k, merged[k])
	}
	return fields
}
